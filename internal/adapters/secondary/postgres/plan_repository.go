package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkaral/testplan-backend/internal/core/domain"
	apperrors "github.com/mkaral/testplan-backend/internal/core/errors"
	"github.com/mkaral/testplan-backend/internal/core/ports"
	"github.com/mkaral/testplan-backend/internal/core/utils"
)

// PlanRepository is the secondary adapter for test plan persistence.
type PlanRepository struct {
	pool *pgxpool.Pool
}

var _ ports.PlanRepository = (*PlanRepository)(nil)

// NewPlanRepository creates a new plan repository.
func NewPlanRepository(pool *pgxpool.Pool) ports.PlanRepository {
	return &PlanRepository{pool: pool}
}

const planColumns = `id, project_id, name, description, start_at, end_at, creator_id, created_at, updated_at`

func scanPlan(row pgx.Row) (*domain.TestPlan, error) {
	var (
		id          pgtype.UUID
		projectID   pgtype.UUID
		creatorID   pgtype.UUID
		description pgtype.Text
		plan        domain.TestPlan
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)

	err := row.Scan(&id, &projectID, &plan.Name, &description, &plan.StartAt, &plan.EndAt, &creatorID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	plan.ID = id.Bytes
	plan.ProjectID = projectID.Bytes
	plan.CreatorID = creatorID.Bytes
	plan.Description = utils.FromString(description)
	plan.CreatedAt = createdAt.Time
	if updatedAt.Valid {
		plan.UpdatedAt = &updatedAt.Time
	}

	return &plan, nil
}

// Create persists a new test plan entity.
func (r *PlanRepository) Create(ctx context.Context, plan *domain.TestPlan) (*domain.TestPlan, error) {
	query := `
		INSERT INTO test_plans (id, project_id, name, description, start_at, end_at, creator_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + planColumns

	row := GetDBTX(ctx, r.pool).QueryRow(ctx, query,
		pgtype.UUID{Bytes: plan.ID, Valid: true},
		pgtype.UUID{Bytes: plan.ProjectID, Valid: true},
		plan.Name,
		utils.ToString(plan.Description),
		plan.StartAt,
		plan.EndAt,
		pgtype.UUID{Bytes: plan.CreatorID, Valid: true},
		plan.CreatedAt,
	)

	return scanPlan(row)
}

// GetByID retrieves a single plan by its ID.
func (r *PlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TestPlan, error) {
	query := `SELECT ` + planColumns + ` FROM test_plans WHERE id = $1`

	plan, err := scanPlan(r.pool.QueryRow(ctx, query, pgtype.UUID{Bytes: id, Valid: true}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// Update persists changes to an existing plan entity.
func (r *PlanRepository) Update(ctx context.Context, plan *domain.TestPlan) (*domain.TestPlan, error) {
	query := `
		UPDATE test_plans
		SET name = $2, description = $3, start_at = $4, end_at = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + planColumns

	row := GetDBTX(ctx, r.pool).QueryRow(ctx, query,
		pgtype.UUID{Bytes: plan.ID, Valid: true},
		plan.Name,
		utils.ToString(plan.Description),
		plan.StartAt,
		plan.EndAt,
	)

	updated, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPlanNotFound
		}
		return nil, err
	}
	return updated, nil
}

// ListPaginated retrieves plans with pagination and an optional project filter.
func (r *PlanRepository) ListPaginated(ctx context.Context, params ports.ListPlansParams) ([]*domain.TestPlan, error) {
	query := `
		SELECT ` + planColumns + `
		FROM test_plans
		WHERE ($1::uuid IS NULL OR project_id = $1)
		ORDER BY start_at DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	projectID := pgtype.UUID{}
	if params.ProjectID != nil {
		projectID = pgtype.UUID{Bytes: *params.ProjectID, Valid: true}
	}

	rows, err := r.pool.Query(ctx, query, projectID, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]*domain.TestPlan, 0)
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}
