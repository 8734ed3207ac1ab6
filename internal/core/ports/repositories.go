package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mkaral/testplan-backend/internal/core/domain"
)

// UserRepository defines the port for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListTesters(ctx context.Context, orgID uuid.UUID) ([]*domain.User, error)
}

// AuthorizationRepository defines the port for RBAC lookups.
type AuthorizationRepository interface {
	GetUserPermissions(ctx context.Context, userID uuid.UUID) ([]string, error)
	AssignRole(ctx context.Context, userID uuid.UUID, roleName string) error
}

// ListPlansParams defines the repository input for listing plans.
type ListPlansParams struct {
	ProjectID *uuid.UUID
	Limit     int32
	Offset    int32
}

// PlanRepository defines the port for test plan persistence.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.TestPlan) (*domain.TestPlan, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TestPlan, error)
	Update(ctx context.Context, plan *domain.TestPlan) (*domain.TestPlan, error)
	ListPaginated(ctx context.Context, params ListPlansParams) ([]*domain.TestPlan, error)
}

// ListCasesParams defines the repository input for listing cases.
type ListCasesParams struct {
	PlanID     uuid.UUID
	Limit      int32
	Offset     int32
	TestResult *string
	TesterID   *uuid.UUID
}

// CaseRepository defines the port for functional case persistence.
type CaseRepository interface {
	Create(ctx context.Context, c *domain.FunctionalCase) (*domain.FunctionalCase, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FunctionalCase, error)
	Update(ctx context.Context, c *domain.FunctionalCase) (*domain.FunctionalCase, error)
	ListPaginated(ctx context.Context, params ListCasesParams) ([]*domain.FunctionalCase, error)

	// ListRecordsByPlan loads the analytics snapshot for a plan. The overdue
	// flag on each record is resolved against now at load time.
	ListRecordsByPlan(ctx context.Context, planID uuid.UUID, now time.Time) ([]domain.CaseRecord, error)
}

// CaseEventRepository defines the port for case activity persistence.
type CaseEventRepository interface {
	Create(ctx context.Context, event *domain.CaseEvent) (*domain.CaseEvent, error)
	ListByCaseID(ctx context.Context, caseID uuid.UUID, afterID int64, limit int) ([]*domain.CaseEvent, error)
}

// EventBroadcaster defines the port for pushing real-time events to
// connected clients.
type EventBroadcaster interface {
	Broadcast(event domain.Event) error
}
