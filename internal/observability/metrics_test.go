package observability

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecordSubmission(t *testing.T) {
	m := NewMetrics("offboarding")
	m.RecordSubmission("note", "saved")
	m.RecordSubmission("note", "saved")
	m.RecordSubmission("task", "invalid")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissions.WithLabelValues("note", "saved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissions.WithLabelValues("task", "invalid")))
}

func TestMetricsRecordRequest(t *testing.T) {
	m := NewMetrics("offboarding")
	m.RecordRequest("/api/v1/tasks", "POST", 201, 15*time.Millisecond)

	expected := `
# HELP offboarding_http_requests_total HTTP requests by route, method and status.
# TYPE offboarding_http_requests_total counter
offboarding_http_requests_total{method="POST",path="/api/v1/tasks",status="201"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "offboarding_http_requests_total"))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "INTERNAL_ERROR")
	m.RecordSubmission("offboarding", "saved")
	assert.Nil(t, m.Registry())
}
