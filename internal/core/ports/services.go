package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mkaral/testplan-backend/internal/core/domain"
)

// AuthService defines the port for authentication business logic.
type AuthService interface {
	Register(ctx context.Context, fullName, email, password, role string, orgID uuid.UUID) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
}

// AuthorizationService defines the port for checking user permissions.
type AuthorizationService interface {
	Can(ctx context.Context, userID uuid.UUID, permission string) (bool, error)
	GetPermissions(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// TesterService defines the port for listing users cases can be routed to.
type TesterService interface {
	ListTesters(ctx context.Context, actorID uuid.UUID, orgID uuid.UUID) ([]*domain.User, error)
}

// CreatePlanParams defines the required input for creating a test plan.
type CreatePlanParams struct {
	ProjectID   uuid.UUID
	Name        string
	Description string
	StartAt     time.Time
	EndAt       time.Time
	CreatorID   uuid.UUID
}

// ListPlansServiceParams defines the input for listing plans.
type ListPlansServiceParams struct {
	ViewerID  uuid.UUID
	ProjectID *uuid.UUID
	Limit     int
	Offset    int
}

// PlanService defines the core business operations for managing test plans.
type PlanService interface {
	CreatePlan(ctx context.Context, params CreatePlanParams) (*domain.TestPlan, error)
	GetPlan(ctx context.Context, planID, viewerID uuid.UUID) (*domain.TestPlan, error)
	ListPlans(ctx context.Context, params ListPlansServiceParams) ([]*domain.TestPlan, error)
}

// CreateCaseParams defines the required input for creating a functional case.
type CreateCaseParams struct {
	PlanID       uuid.UUID
	Title        string
	EvalWorkload float64
	DeadlineAt   *time.Time
	TesterID     *uuid.UUID
	ActorID      uuid.UUID
}

// UpdateResultParams defines the input for changing a case's test result.
type UpdateResultParams struct {
	CaseID         uuid.UUID
	Result         domain.TestResult
	ActualWorkload float64
	ActorID        uuid.UUID
}

// UpdateReviewParams defines the input for changing a case's review status.
type UpdateReviewParams struct {
	CaseID  uuid.UUID
	Status  domain.ReviewStatus
	ActorID uuid.UUID
}

// AssignCaseParams defines the input for assigning a case.
type AssignCaseParams struct {
	CaseID     uuid.UUID
	AssigneeID uuid.UUID
	ActorID    uuid.UUID
}

// ListCasesServiceParams defines the input for listing cases in a plan.
type ListCasesServiceParams struct {
	PlanID     uuid.UUID
	ViewerID   uuid.UUID
	Limit      int
	Offset     int
	TestResult *string
	TesterID   *uuid.UUID
}

// ListCaseEventsParams defines the input for listing case activity.
type ListCaseEventsParams struct {
	CaseID   uuid.UUID
	ViewerID uuid.UUID
	AfterID  int64
	Limit    int
}

// NotificationParams defines the input for sending a notification.
type NotificationParams struct {
	RecipientUserID uuid.UUID
	Subject         string
	Message         string
	CaseID          uuid.UUID
}

// CaseService defines the core business operations for managing cases.
type CaseService interface {
	CreateCase(ctx context.Context, params CreateCaseParams) (*domain.FunctionalCase, error)
	GetCase(ctx context.Context, caseID, viewerID uuid.UUID) (*domain.FunctionalCase, error)
	UpdateResult(ctx context.Context, params UpdateResultParams) (*domain.FunctionalCase, error)
	UpdateReview(ctx context.Context, params UpdateReviewParams) (*domain.FunctionalCase, error)
	AssignCase(ctx context.Context, params AssignCaseParams) (*domain.FunctionalCase, error)
	ListCases(ctx context.Context, params ListCasesServiceParams) ([]*domain.FunctionalCase, error)
	Shutdown()
}

// PlanOverviewParams defines the input for composing a plan overview.
type PlanOverviewParams struct {
	PlanID   uuid.UUID
	ViewerID uuid.UUID
	ByTester bool
}

// PlanBurndownParams defines the input for projecting a plan burndown.
type PlanBurndownParams struct {
	PlanID   uuid.UUID
	ViewerID uuid.UUID
	StartAt  *time.Time
	EndAt    *time.Time
}

// AnalyticsService defines the port for plan efficiency reporting.
type AnalyticsService interface {
	GetPlanOverview(ctx context.Context, params PlanOverviewParams) (*domain.PlanOverview, error)
	GetPlanBurndown(ctx context.Context, params PlanBurndownParams) (map[domain.BurndownMetric]domain.BurndownSeries, error)
}

// EventService defines the port for case activity queries.
type EventService interface {
	ListCaseEvents(ctx context.Context, params ListCaseEventsParams) ([]*domain.CaseEvent, error)
}

// UserLookupService defines the port for resolving display details of users.
type UserLookupService interface {
	GetUserInfo(ctx context.Context, orgID uuid.UUID, userIDs []uuid.UUID) (map[uuid.UUID]domain.UserInfo, error)
}

// Notifier defines the port for sending asynchronous notifications.
type Notifier interface {
	Notify(ctx context.Context, params NotificationParams)
}

// TransactionManager defines the port for running atomic operations.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
