package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkaral/testplan-backend/internal/core/domain"
	apperrors "github.com/mkaral/testplan-backend/internal/core/errors"
	"github.com/mkaral/testplan-backend/internal/core/ports"
)

// CaseRepository is the secondary adapter for functional case persistence.
type CaseRepository struct {
	pool *pgxpool.Pool
}

var _ ports.CaseRepository = (*CaseRepository)(nil)

// NewCaseRepository creates a new case repository.
func NewCaseRepository(pool *pgxpool.Pool) ports.CaseRepository {
	return &CaseRepository{pool: pool}
}

const caseColumns = `id, plan_id, title, test_result, review_status, assignee_id, tester_id,
	deadline_at, created_at, updated_at, handled_at, eval_workload, actual_workload, saving_workload`

func scanCase(row pgx.Row) (*domain.FunctionalCase, error) {
	var (
		id         pgtype.UUID
		planID     pgtype.UUID
		assigneeID pgtype.UUID
		testerID   pgtype.UUID
		result     string
		review     string
		deadlineAt pgtype.Timestamptz
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
		handledAt  pgtype.Timestamptz
		c          domain.FunctionalCase
	)

	err := row.Scan(&id, &planID, &c.Title, &result, &review, &assigneeID, &testerID,
		&deadlineAt, &createdAt, &updatedAt, &handledAt,
		&c.EvalWorkload, &c.ActualWorkload, &c.SavingWorkload)
	if err != nil {
		return nil, err
	}

	c.ID = id.Bytes
	c.PlanID = planID.Bytes
	c.TestResult = domain.TestResult(result)
	c.ReviewStatus = domain.ReviewStatus(review)
	c.CreatedAt = createdAt.Time

	if assigneeID.Valid {
		value := uuid.UUID(assigneeID.Bytes)
		c.AssigneeID = &value
	}
	if testerID.Valid {
		value := uuid.UUID(testerID.Bytes)
		c.TesterID = &value
	}
	if deadlineAt.Valid {
		c.DeadlineAt = &deadlineAt.Time
	}
	if updatedAt.Valid {
		c.UpdatedAt = &updatedAt.Time
	}
	if handledAt.Valid {
		c.HandledAt = &handledAt.Time
	}

	return &c, nil
}

func toNullUUID(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

func toNullTime(ts *time.Time) pgtype.Timestamptz {
	if ts == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *ts, Valid: true}
}

// Create persists a new functional case entity.
func (r *CaseRepository) Create(ctx context.Context, c *domain.FunctionalCase) (*domain.FunctionalCase, error) {
	query := `
		INSERT INTO functional_cases (id, plan_id, title, test_result, review_status, tester_id,
			deadline_at, created_at, eval_workload)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + caseColumns

	row := GetDBTX(ctx, r.pool).QueryRow(ctx, query,
		pgtype.UUID{Bytes: c.ID, Valid: true},
		pgtype.UUID{Bytes: c.PlanID, Valid: true},
		c.Title,
		string(c.TestResult),
		string(c.ReviewStatus),
		toNullUUID(c.TesterID),
		toNullTime(c.DeadlineAt),
		c.CreatedAt,
		c.EvalWorkload,
	)

	return scanCase(row)
}

// GetByID retrieves a single case by its ID.
func (r *CaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.FunctionalCase, error) {
	query := `SELECT ` + caseColumns + ` FROM functional_cases WHERE id = $1`

	c, err := scanCase(r.pool.QueryRow(ctx, query, pgtype.UUID{Bytes: id, Valid: true}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCaseNotFound
		}
		return nil, err
	}
	return c, nil
}

// Update persists changes to an existing case entity.
func (r *CaseRepository) Update(ctx context.Context, c *domain.FunctionalCase) (*domain.FunctionalCase, error) {
	query := `
		UPDATE functional_cases
		SET test_result = $2, review_status = $3, assignee_id = $4,
			updated_at = $5, handled_at = $6,
			actual_workload = $7, saving_workload = $8
		WHERE id = $1
		RETURNING ` + caseColumns

	row := GetDBTX(ctx, r.pool).QueryRow(ctx, query,
		pgtype.UUID{Bytes: c.ID, Valid: true},
		string(c.TestResult),
		string(c.ReviewStatus),
		toNullUUID(c.AssigneeID),
		toNullTime(c.UpdatedAt),
		toNullTime(c.HandledAt),
		c.ActualWorkload,
		c.SavingWorkload,
	)

	updated, err := scanCase(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCaseNotFound
		}
		return nil, err
	}
	return updated, nil
}

// ListPaginated retrieves a plan's cases with pagination and optional filters.
func (r *CaseRepository) ListPaginated(ctx context.Context, params ports.ListCasesParams) ([]*domain.FunctionalCase, error) {
	query := `
		SELECT ` + caseColumns + `
		FROM functional_cases
		WHERE plan_id = $1
		  AND ($2::text IS NULL OR test_result = $2)
		  AND ($3::uuid IS NULL OR tester_id = $3)
		ORDER BY created_at DESC, id
		LIMIT $4 OFFSET $5
	`

	testResult := pgtype.Text{}
	if params.TestResult != nil {
		testResult = pgtype.Text{String: *params.TestResult, Valid: true}
	}

	rows, err := r.pool.Query(ctx, query,
		pgtype.UUID{Bytes: params.PlanID, Valid: true},
		testResult,
		toNullUUID(params.TesterID),
		params.Limit,
		params.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cases := make([]*domain.FunctionalCase, 0)
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cases, nil
}

// ListRecordsByPlan loads the analytics snapshot for a plan. Overdue is
// resolved in SQL against the supplied now: an unfinished case past its
// deadline, or a finished one completed after it.
func (r *CaseRepository) ListRecordsByPlan(ctx context.Context, planID uuid.UUID, now time.Time) ([]domain.CaseRecord, error) {
	query := `
		SELECT id, plan_id, assignee_id, tester_id, test_result, review_status,
			CASE
				WHEN deadline_at IS NULL THEN FALSE
				WHEN handled_at IS NOT NULL THEN handled_at > deadline_at
				ELSE deadline_at < $2
			END AS overdue,
			deadline_at, created_at, handled_at,
			eval_workload, actual_workload, saving_workload
		FROM functional_cases
		WHERE plan_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, pgtype.UUID{Bytes: planID, Valid: true}, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]domain.CaseRecord, 0)
	for rows.Next() {
		var (
			id         pgtype.UUID
			recPlanID  pgtype.UUID
			assigneeID pgtype.UUID
			testerID   pgtype.UUID
			result     string
			review     string
			deadlineAt pgtype.Timestamptz
			createdAt  pgtype.Timestamptz
			handledAt  pgtype.Timestamptz
			record     domain.CaseRecord
		)

		err := rows.Scan(&id, &recPlanID, &assigneeID, &testerID, &result, &review,
			&record.Overdue, &deadlineAt, &createdAt, &handledAt,
			&record.EvalWorkload, &record.ActualWorkload, &record.SavingWorkload)
		if err != nil {
			return nil, err
		}

		record.ID = id.Bytes
		record.PlanID = recPlanID.Bytes
		record.TestResult = domain.TestResult(result)
		record.ReviewStatus = domain.ReviewStatus(review)

		if assigneeID.Valid {
			value := uuid.UUID(assigneeID.Bytes)
			record.AssigneeID = &value
		}
		if testerID.Valid {
			value := uuid.UUID(testerID.Bytes)
			record.TesterID = &value
		}
		if deadlineAt.Valid {
			record.DeadlineAt = &deadlineAt.Time
		}
		if createdAt.Valid {
			record.CreatedAt = &createdAt.Time
		}
		if handledAt.Valid {
			record.HandledAt = &handledAt.Time
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
