package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/offboarding-service/internal/domain"
)

// TaskRepository persists offboarding tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
}

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository instantiates repository.
func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	const query = `
        INSERT INTO offboarding_tasks (title, stage_id, managers, status)
        VALUES ($1,$2::uuid,$3::uuid[],$4)
        RETURNING id::text, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		task.Title,
		task.StageID,
		nonNil(task.Managers),
		task.Status,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

// Update leaves status alone; it is driven by assignment progress, not by the task form.
func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	const query = `
        UPDATE offboarding_tasks SET title=$1, stage_id=$2::uuid, managers=$3::uuid[], updated_at=NOW()
        WHERE id=$4
        RETURNING status, updated_at`
	return r.pool.QueryRow(ctx, query,
		task.Title,
		task.StageID,
		nonNil(task.Managers),
		task.ID,
	).Scan(&task.Status, &task.UpdatedAt)
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	const query = `
        SELECT id::text, title, stage_id::text, managers::text[], status, created_at, updated_at
        FROM offboarding_tasks WHERE id=$1`
	var task domain.Task
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&task.ID,
		&task.Title,
		&task.StageID,
		&task.Managers,
		&task.Status,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &task, nil
}
