package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/offboarding-service/internal/domain"
)

// OffboardingRepository persists offboarding processes.
type OffboardingRepository interface {
	Create(ctx context.Context, offboarding *domain.Offboarding) error
	Update(ctx context.Context, offboarding *domain.Offboarding) error
	GetByID(ctx context.Context, id string) (*domain.Offboarding, error)
	List(ctx context.Context) ([]domain.Offboarding, error)
}

type offboardingRepository struct {
	pool *pgxpool.Pool
}

// NewOffboardingRepository instantiates repository.
func NewOffboardingRepository(pool *pgxpool.Pool) OffboardingRepository {
	return &offboardingRepository{pool: pool}
}

func (r *offboardingRepository) Create(ctx context.Context, offboarding *domain.Offboarding) error {
	const query = `
        INSERT INTO offboardings (title, description, managers, status, is_active)
        VALUES ($1,$2,$3::uuid[],$4,$5)
        RETURNING id::text, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		offboarding.Title,
		offboarding.Description,
		nonNil(offboarding.Managers),
		offboarding.Status,
		offboarding.IsActive,
	).Scan(&offboarding.ID, &offboarding.CreatedAt, &offboarding.UpdatedAt)
}

func (r *offboardingRepository) Update(ctx context.Context, offboarding *domain.Offboarding) error {
	const query = `
        UPDATE offboardings SET title=$1, description=$2, managers=$3::uuid[], status=$4, is_active=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		offboarding.Title,
		offboarding.Description,
		nonNil(offboarding.Managers),
		offboarding.Status,
		offboarding.IsActive,
		offboarding.ID,
	).Scan(&offboarding.UpdatedAt)
	return err
}

func (r *offboardingRepository) GetByID(ctx context.Context, id string) (*domain.Offboarding, error) {
	const query = `
        SELECT id::text, title, description, managers::text[], status, is_active, created_at, updated_at
        FROM offboardings WHERE id=$1`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result, err := scanOffboardings(rows)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &result[0], nil
}

func (r *offboardingRepository) List(ctx context.Context) ([]domain.Offboarding, error) {
	const query = `
        SELECT id::text, title, description, managers::text[], status, is_active, created_at, updated_at
        FROM offboardings ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOffboardings(rows)
}

func scanOffboardings(rows pgx.Rows) ([]domain.Offboarding, error) {
	var result []domain.Offboarding
	for rows.Next() {
		var o domain.Offboarding
		if err := rows.Scan(
			&o.ID,
			&o.Title,
			&o.Description,
			&o.Managers,
			&o.Status,
			&o.IsActive,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

// nonNil keeps NOT NULL array columns from receiving SQL NULL.
func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
