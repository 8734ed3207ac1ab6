package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkaral/testplan-backend/internal/core/domain"
	"github.com/mkaral/testplan-backend/internal/core/ports"
)

// CaseEventRepository handles persistence for case activity entries.
type CaseEventRepository struct {
	pool *pgxpool.Pool
}

var _ ports.CaseEventRepository = (*CaseEventRepository)(nil)

// NewCaseEventRepository creates a new case event repository.
func NewCaseEventRepository(pool *pgxpool.Pool) ports.CaseEventRepository {
	return &CaseEventRepository{pool: pool}
}

// Create persists a new case event.
func (r *CaseEventRepository) Create(ctx context.Context, event *domain.CaseEvent) (*domain.CaseEvent, error) {
	query := `
		INSERT INTO case_events (case_id, plan_id, type, payload, actor_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	created := *event
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, query,
		pgtype.UUID{Bytes: event.CaseID, Valid: true},
		pgtype.UUID{Bytes: event.PlanID, Valid: true},
		string(event.Type),
		[]byte(event.Payload),
		pgtype.UUID{Bytes: event.ActorID, Valid: true},
	)

	var createdAt pgtype.Timestamptz
	if err := row.Scan(&created.ID, &createdAt); err != nil {
		return nil, err
	}
	created.CreatedAt = createdAt.Time

	return &created, nil
}

// ListByCaseID retrieves events for a case after a cursor.
func (r *CaseEventRepository) ListByCaseID(ctx context.Context, caseID uuid.UUID, afterID int64, limit int) ([]*domain.CaseEvent, error) {
	query := `
		SELECT id, case_id, plan_id, type, payload, actor_id, created_at
		FROM case_events
		WHERE case_id = $1 AND id > $2
		ORDER BY id
		LIMIT $3
	`

	rows, err := GetDBTX(ctx, r.pool).Query(ctx, query,
		pgtype.UUID{Bytes: caseID, Valid: true},
		afterID,
		int32(limit),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.CaseEvent, 0)
	for rows.Next() {
		var (
			event     domain.CaseEvent
			eventID   pgtype.UUID
			planID    pgtype.UUID
			eventType string
			payload   []byte
			actorID   pgtype.UUID
			createdAt pgtype.Timestamptz
		)

		err := rows.Scan(&event.ID, &eventID, &planID, &eventType, &payload, &actorID, &createdAt)
		if err != nil {
			return nil, err
		}

		event.CaseID = eventID.Bytes
		event.PlanID = planID.Bytes
		event.Type = domain.EventType(eventType)
		event.Payload = json.RawMessage(payload)
		if actorID.Valid {
			event.ActorID = actorID.Bytes
		}
		event.CreatedAt = createdAt.Time

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
