package persistence

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunMigrationsWithoutPool(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, zap.NewNop()))
}

func TestEmployeeTaskUniqueness(t *testing.T) {
	raw, err := fs.ReadFile(migrationFiles, migrationsDir+"/0001_offboarding.sql")
	require.NoError(t, err)
	schema := string(raw)

	start := strings.Index(schema, "CREATE TABLE IF NOT EXISTS offboarding_employee_tasks")
	require.NotEqual(t, -1, start)
	table := schema[start:]
	table = table[:strings.Index(table, ");")]

	// GetOrCreate relies on this constraint as its ON CONFLICT target.
	assert.Contains(t, table, "CONSTRAINT uq_employee_task UNIQUE (enrollment_id, task_id)")
}
