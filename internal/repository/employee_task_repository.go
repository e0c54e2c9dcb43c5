package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/offboarding-service/internal/domain"
)

// EmployeeTaskRepository persists task assignments.
type EmployeeTaskRepository interface {
	GetOrCreate(ctx context.Context, enrollmentID, taskID string) (*domain.EmployeeTask, bool, error)
	GetByID(ctx context.Context, id string) (*domain.EmployeeTask, error)
	UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) error
	ListByTask(ctx context.Context, taskID string) ([]domain.EmployeeTask, error)
}

type employeeTaskRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeTaskRepository instantiates repository.
func NewEmployeeTaskRepository(pool *pgxpool.Pool) EmployeeTaskRepository {
	return &employeeTaskRepository{pool: pool}
}

const employeeTaskColumns = `id::text, enrollment_id::text, task_id::text, status, description, created_at, updated_at`

// GetOrCreate inserts the (enrollment, task) pair unless the unique constraint
// already holds a row for it, in which case the existing row is returned and
// created is false.
func (r *employeeTaskRepository) GetOrCreate(ctx context.Context, enrollmentID, taskID string) (*domain.EmployeeTask, bool, error) {
	const insert = `
        INSERT INTO offboarding_employee_tasks (enrollment_id, task_id, status)
        VALUES ($1,$2,$3)
        ON CONFLICT (enrollment_id, task_id) DO NOTHING
        RETURNING ` + employeeTaskColumns
	et, err := scanEmployeeTask(r.pool.QueryRow(ctx, insert, enrollmentID, taskID, domain.TaskStatusTodo))
	if err == nil {
		return et, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	const existing = `
        SELECT ` + employeeTaskColumns + `
        FROM offboarding_employee_tasks WHERE enrollment_id=$1 AND task_id=$2`
	et, err = scanEmployeeTask(r.pool.QueryRow(ctx, existing, enrollmentID, taskID))
	if err != nil {
		return nil, false, err
	}
	return et, false, nil
}

func (r *employeeTaskRepository) GetByID(ctx context.Context, id string) (*domain.EmployeeTask, error) {
	query := `SELECT ` + employeeTaskColumns + ` FROM offboarding_employee_tasks WHERE id=$1`
	return scanEmployeeTask(r.pool.QueryRow(ctx, query, id))
}

func (r *employeeTaskRepository) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) error {
	const query = `UPDATE offboarding_employee_tasks SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeTaskRepository) ListByTask(ctx context.Context, taskID string) ([]domain.EmployeeTask, error) {
	query := `SELECT ` + employeeTaskColumns + ` FROM offboarding_employee_tasks WHERE task_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.EmployeeTask
	for rows.Next() {
		et, err := scanEmployeeTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *et)
	}
	return result, rows.Err()
}

func scanEmployeeTask(row pgx.Row) (*domain.EmployeeTask, error) {
	var et domain.EmployeeTask
	if err := row.Scan(
		&et.ID,
		&et.EnrollmentID,
		&et.TaskID,
		&et.Status,
		&et.Description,
		&et.CreatedAt,
		&et.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &et, nil
}
