package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/offboarding-service/internal/domain"
)

// StageRepository persists pipeline stages.
type StageRepository interface {
	Create(ctx context.Context, stage *domain.Stage) error
	Update(ctx context.Context, stage *domain.Stage) error
	GetByID(ctx context.Context, id string) (*domain.Stage, error)
	ListByOffboarding(ctx context.Context, offboardingID string) ([]domain.Stage, error)
	List(ctx context.Context) ([]domain.Stage, error)
}

type stageRepository struct {
	pool *pgxpool.Pool
}

// NewStageRepository instantiates repository.
func NewStageRepository(pool *pgxpool.Pool) StageRepository {
	return &stageRepository{pool: pool}
}

func (r *stageRepository) Create(ctx context.Context, stage *domain.Stage) error {
	const query = `
        INSERT INTO offboarding_stages (offboarding_id, title, type, managers, sequence, is_active)
        VALUES ($1,$2,$3,$4::uuid[],$5,$6)
        RETURNING id::text, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		stage.OffboardingID,
		stage.Title,
		stage.Type,
		nonNil(stage.Managers),
		stage.Sequence,
		stage.IsActive,
	).Scan(&stage.ID, &stage.CreatedAt, &stage.UpdatedAt)
}

// Update never touches offboarding_id; a stage stays in the process it was created in.
func (r *stageRepository) Update(ctx context.Context, stage *domain.Stage) error {
	const query = `
        UPDATE offboarding_stages SET title=$1, type=$2, managers=$3::uuid[], sequence=$4, is_active=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		stage.Title,
		stage.Type,
		nonNil(stage.Managers),
		stage.Sequence,
		stage.IsActive,
		stage.ID,
	).Scan(&stage.UpdatedAt)
}

func (r *stageRepository) GetByID(ctx context.Context, id string) (*domain.Stage, error) {
	const query = `
        SELECT id::text, offboarding_id::text, title, type, managers::text[], sequence, is_active, created_at, updated_at
        FROM offboarding_stages WHERE id=$1`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result, err := scanStages(rows)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &result[0], nil
}

func (r *stageRepository) ListByOffboarding(ctx context.Context, offboardingID string) ([]domain.Stage, error) {
	if offboardingID == "" {
		return nil, nil
	}
	const query = `
        SELECT id::text, offboarding_id::text, title, type, managers::text[], sequence, is_active, created_at, updated_at
        FROM offboarding_stages WHERE offboarding_id=$1
        ORDER BY sequence, created_at`
	rows, err := r.pool.Query(ctx, query, offboardingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStages(rows)
}

func (r *stageRepository) List(ctx context.Context) ([]domain.Stage, error) {
	const query = `
        SELECT id::text, offboarding_id::text, title, type, managers::text[], sequence, is_active, created_at, updated_at
        FROM offboarding_stages
        ORDER BY offboarding_id, sequence, created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStages(rows)
}

func scanStages(rows pgx.Rows) ([]domain.Stage, error) {
	var result []domain.Stage
	for rows.Next() {
		var stage domain.Stage
		if err := rows.Scan(
			&stage.ID,
			&stage.OffboardingID,
			&stage.Title,
			&stage.Type,
			&stage.Managers,
			&stage.Sequence,
			&stage.IsActive,
			&stage.CreatedAt,
			&stage.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, stage)
	}
	return result, rows.Err()
}
