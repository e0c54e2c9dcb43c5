package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/offboarding-service/internal/domain"
)

// OffboardingEmployeeRepository persists employee enrollments.
type OffboardingEmployeeRepository interface {
	Create(ctx context.Context, enrollment *domain.OffboardingEmployee) error
	Update(ctx context.Context, enrollment *domain.OffboardingEmployee) error
	UpdateStage(ctx context.Context, enrollmentID, stageID string) error
	GetByID(ctx context.Context, id string) (*domain.OffboardingEmployee, error)
	List(ctx context.Context) ([]domain.OffboardingEmployee, error)
	ListByOffboarding(ctx context.Context, offboardingID string) ([]domain.OffboardingEmployee, error)
}

type offboardingEmployeeRepository struct {
	pool *pgxpool.Pool
}

// NewOffboardingEmployeeRepository instantiates repository.
func NewOffboardingEmployeeRepository(pool *pgxpool.Pool) OffboardingEmployeeRepository {
	return &offboardingEmployeeRepository{pool: pool}
}

const enrollmentColumns = `
        oe.id::text, oe.employee_id::text, e.name, COALESCE(oe.stage_id::text, ''), oe.notice_period, oe.unit,
        oe.notice_period_starts, oe.notice_period_ends, oe.created_at, oe.updated_at`

func (r *offboardingEmployeeRepository) Create(ctx context.Context, enrollment *domain.OffboardingEmployee) error {
	const query = `
        INSERT INTO offboarding_employees (employee_id, stage_id, notice_period, unit, notice_period_starts, notice_period_ends)
        VALUES ($1, NULLIF($2,'')::uuid, $3, $4, $5, $6)
        RETURNING id::text, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		enrollment.EmployeeID,
		enrollment.StageID,
		enrollment.NoticePeriod,
		enrollment.Unit,
		enrollment.NoticePeriodStarts,
		enrollment.NoticePeriodEnds,
	).Scan(&enrollment.ID, &enrollment.CreatedAt, &enrollment.UpdatedAt)
}

func (r *offboardingEmployeeRepository) Update(ctx context.Context, enrollment *domain.OffboardingEmployee) error {
	const query = `
        UPDATE offboarding_employees SET employee_id=$1, stage_id=NULLIF($2,'')::uuid, notice_period=$3, unit=$4,
            notice_period_starts=$5, notice_period_ends=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		enrollment.EmployeeID,
		enrollment.StageID,
		enrollment.NoticePeriod,
		enrollment.Unit,
		enrollment.NoticePeriodStarts,
		enrollment.NoticePeriodEnds,
		enrollment.ID,
	).Scan(&enrollment.UpdatedAt)
}

func (r *offboardingEmployeeRepository) UpdateStage(ctx context.Context, enrollmentID, stageID string) error {
	const query = `UPDATE offboarding_employees SET stage_id=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, stageID, enrollmentID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *offboardingEmployeeRepository) GetByID(ctx context.Context, id string) (*domain.OffboardingEmployee, error) {
	query := `SELECT ` + enrollmentColumns + `
        FROM offboarding_employees oe JOIN employees e ON e.id = oe.employee_id
        WHERE oe.id=$1`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result, err := scanEnrollments(rows)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &result[0], nil
}

func (r *offboardingEmployeeRepository) List(ctx context.Context) ([]domain.OffboardingEmployee, error) {
	query := `SELECT ` + enrollmentColumns + `
        FROM offboarding_employees oe JOIN employees e ON e.id = oe.employee_id
        ORDER BY e.name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEnrollments(rows)
}

func (r *offboardingEmployeeRepository) ListByOffboarding(ctx context.Context, offboardingID string) ([]domain.OffboardingEmployee, error) {
	query := `SELECT ` + enrollmentColumns + `
        FROM offboarding_employees oe
        JOIN employees e ON e.id = oe.employee_id
        JOIN offboarding_stages s ON s.id = oe.stage_id
        WHERE s.offboarding_id=$1
        ORDER BY e.name`
	rows, err := r.pool.Query(ctx, query, offboardingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEnrollments(rows)
}

func scanEnrollments(rows pgx.Rows) ([]domain.OffboardingEmployee, error) {
	var result []domain.OffboardingEmployee
	for rows.Next() {
		var oe domain.OffboardingEmployee
		if err := rows.Scan(
			&oe.ID,
			&oe.EmployeeID,
			&oe.EmployeeName,
			&oe.StageID,
			&oe.NoticePeriod,
			&oe.Unit,
			&oe.NoticePeriodStarts,
			&oe.NoticePeriodEnds,
			&oe.CreatedAt,
			&oe.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, oe)
	}
	return result, rows.Err()
}
