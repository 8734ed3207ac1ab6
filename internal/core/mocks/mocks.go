package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mkaral/testplan-backend/internal/core/domain"
	"github.com/mkaral/testplan-backend/internal/core/ports"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of ports.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListTesters(ctx context.Context, orgID uuid.UUID) ([]*domain.User, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

// MockAuthorizationRepository is a mock implementation of ports.AuthorizationRepository
type MockAuthorizationRepository struct {
	mock.Mock
}

func NewMockAuthorizationRepository() *MockAuthorizationRepository {
	return &MockAuthorizationRepository{}
}

func (m *MockAuthorizationRepository) GetUserPermissions(ctx context.Context, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAuthorizationRepository) AssignRole(ctx context.Context, userID uuid.UUID, roleName string) error {
	args := m.Called(ctx, userID, roleName)
	return args.Error(0)
}

// MockPlanRepository is a mock implementation of ports.PlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func NewMockPlanRepository() *MockPlanRepository {
	return &MockPlanRepository{}
}

func (m *MockPlanRepository) Create(ctx context.Context, plan *domain.TestPlan) (*domain.TestPlan, error) {
	args := m.Called(ctx, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TestPlan), args.Error(1)
}

func (m *MockPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TestPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TestPlan), args.Error(1)
}

func (m *MockPlanRepository) Update(ctx context.Context, plan *domain.TestPlan) (*domain.TestPlan, error) {
	args := m.Called(ctx, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TestPlan), args.Error(1)
}

func (m *MockPlanRepository) ListPaginated(ctx context.Context, params ports.ListPlansParams) ([]*domain.TestPlan, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TestPlan), args.Error(1)
}

// MockCaseRepository is a mock implementation of ports.CaseRepository
type MockCaseRepository struct {
	mock.Mock
}

func NewMockCaseRepository() *MockCaseRepository {
	return &MockCaseRepository{}
}

func (m *MockCaseRepository) Create(ctx context.Context, c *domain.FunctionalCase) (*domain.FunctionalCase, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FunctionalCase), args.Error(1)
}

func (m *MockCaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.FunctionalCase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FunctionalCase), args.Error(1)
}

func (m *MockCaseRepository) Update(ctx context.Context, c *domain.FunctionalCase) (*domain.FunctionalCase, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FunctionalCase), args.Error(1)
}

func (m *MockCaseRepository) ListPaginated(ctx context.Context, params ports.ListCasesParams) ([]*domain.FunctionalCase, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FunctionalCase), args.Error(1)
}

func (m *MockCaseRepository) ListRecordsByPlan(ctx context.Context, planID uuid.UUID, now time.Time) ([]domain.CaseRecord, error) {
	args := m.Called(ctx, planID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CaseRecord), args.Error(1)
}

// MockCaseEventRepository is a mock implementation of ports.CaseEventRepository
type MockCaseEventRepository struct {
	mock.Mock
}

func NewMockCaseEventRepository() *MockCaseEventRepository {
	return &MockCaseEventRepository{}
}

func (m *MockCaseEventRepository) Create(ctx context.Context, event *domain.CaseEvent) (*domain.CaseEvent, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CaseEvent), args.Error(1)
}

func (m *MockCaseEventRepository) ListByCaseID(ctx context.Context, caseID uuid.UUID, afterID int64, limit int) ([]*domain.CaseEvent, error) {
	args := m.Called(ctx, caseID, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CaseEvent), args.Error(1)
}

// MockAuthorizationService is a mock implementation of ports.AuthorizationService
type MockAuthorizationService struct {
	mock.Mock
}

func NewMockAuthorizationService() *MockAuthorizationService {
	return &MockAuthorizationService{}
}

func (m *MockAuthorizationService) Can(ctx context.Context, userID uuid.UUID, permission string) (bool, error) {
	args := m.Called(ctx, userID, permission)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthorizationService) GetPermissions(ctx context.Context, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockPlanService is a mock implementation of ports.PlanService
type MockPlanService struct {
	mock.Mock
}

func NewMockPlanService() *MockPlanService {
	return &MockPlanService{}
}

func (m *MockPlanService) CreatePlan(ctx context.Context, params ports.CreatePlanParams) (*domain.TestPlan, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TestPlan), args.Error(1)
}

func (m *MockPlanService) GetPlan(ctx context.Context, planID, viewerID uuid.UUID) (*domain.TestPlan, error) {
	args := m.Called(ctx, planID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TestPlan), args.Error(1)
}

func (m *MockPlanService) ListPlans(ctx context.Context, params ports.ListPlansServiceParams) ([]*domain.TestPlan, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TestPlan), args.Error(1)
}

// MockCaseService is a mock implementation of ports.CaseService
type MockCaseService struct {
	mock.Mock
}

func NewMockCaseService() *MockCaseService {
	return &MockCaseService{}
}

func (m *MockCaseService) CreateCase(ctx context.Context, params ports.CreateCaseParams) (*domain.FunctionalCase, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FunctionalCase), args.Error(1)
}

func (m *MockCaseService) GetCase(ctx context.Context, caseID, viewerID uuid.UUID) (*domain.FunctionalCase, error) {
	args := m.Called(ctx, caseID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FunctionalCase), args.Error(1)
}

func (m *MockCaseService) UpdateResult(ctx context.Context, params ports.UpdateResultParams) (*domain.FunctionalCase, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FunctionalCase), args.Error(1)
}

func (m *MockCaseService) UpdateReview(ctx context.Context, params ports.UpdateReviewParams) (*domain.FunctionalCase, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FunctionalCase), args.Error(1)
}

func (m *MockCaseService) AssignCase(ctx context.Context, params ports.AssignCaseParams) (*domain.FunctionalCase, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FunctionalCase), args.Error(1)
}

func (m *MockCaseService) ListCases(ctx context.Context, params ports.ListCasesServiceParams) ([]*domain.FunctionalCase, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FunctionalCase), args.Error(1)
}

func (m *MockCaseService) Shutdown() {
	m.Called()
}

// MockAnalyticsService is a mock implementation of ports.AnalyticsService
type MockAnalyticsService struct {
	mock.Mock
}

func NewMockAnalyticsService() *MockAnalyticsService {
	return &MockAnalyticsService{}
}

func (m *MockAnalyticsService) GetPlanOverview(ctx context.Context, params ports.PlanOverviewParams) (*domain.PlanOverview, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlanOverview), args.Error(1)
}

func (m *MockAnalyticsService) GetPlanBurndown(ctx context.Context, params ports.PlanBurndownParams) (map[domain.BurndownMetric]domain.BurndownSeries, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.BurndownMetric]domain.BurndownSeries), args.Error(1)
}

// MockTesterService is a mock implementation of ports.TesterService
type MockTesterService struct {
	mock.Mock
}

func NewMockTesterService() *MockTesterService {
	return &MockTesterService{}
}

func (m *MockTesterService) ListTesters(ctx context.Context, actorID uuid.UUID, orgID uuid.UUID) ([]*domain.User, error) {
	args := m.Called(ctx, actorID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

// MockNotifier is a mock implementation of ports.Notifier
type MockNotifier struct {
	mock.Mock
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Notify(ctx context.Context, params ports.NotificationParams) {
	m.Called(ctx, params)
}

// MockEventBroadcaster is a mock implementation of ports.EventBroadcaster
type MockEventBroadcaster struct {
	mock.Mock
}

func NewMockEventBroadcaster() *MockEventBroadcaster {
	return &MockEventBroadcaster{}
}

func (m *MockEventBroadcaster) Broadcast(event domain.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
