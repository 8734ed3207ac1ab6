package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mkaral/testplan-backend/internal/core/analytics"
	"github.com/mkaral/testplan-backend/internal/core/domain"
	apperrors "github.com/mkaral/testplan-backend/internal/core/errors"
	"github.com/mkaral/testplan-backend/internal/core/mocks"
	"github.com/mkaral/testplan-backend/internal/core/ports"
	"github.com/mkaral/testplan-backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var analyticsNow = time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)

func fixedAnalyticsNow() time.Time { return analyticsNow }

func newAnalyticsService(
	planRepo *mocks.MockPlanRepository,
	caseRepo *mocks.MockCaseRepository,
	authz *mocks.MockAuthorizationService,
) ports.AnalyticsService {
	composer := analytics.NewComposer(analytics.Options{Now: fixedAnalyticsNow})
	return services.NewAnalyticsService(planRepo, caseRepo, authz, composer, fixedAnalyticsNow)
}

func TestAnalyticsService_GetPlanOverview(t *testing.T) {
	ctx := context.Background()
	viewerID := uuid.New()
	planID := uuid.New()

	plan := &domain.TestPlan{
		ID:      planID,
		Name:    "Release 2.4 regression",
		StartAt: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	}

	t.Run("success", func(t *testing.T) {
		mockPlans := mocks.NewMockPlanRepository()
		mockCases := mocks.NewMockCaseRepository()
		mockAuthz := mocks.NewMockAuthorizationService()

		svc := newAnalyticsService(mockPlans, mockCases, mockAuthz)

		handledAt := time.Date(2025, 3, 11, 16, 0, 0, 0, time.UTC)
		createdAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
		records := []domain.CaseRecord{
			{
				TestResult:     domain.ResultPassed,
				ReviewStatus:   domain.ReviewPassed,
				EvalWorkload:   4,
				ActualWorkload: 4,
				CreatedAt:      &createdAt,
				HandledAt:      &handledAt,
			},
			{
				TestResult:   domain.ResultPending,
				ReviewStatus: domain.ReviewPending,
				EvalWorkload: 4,
				CreatedAt:    &createdAt,
			},
		}

		mockAuthz.On("Can", ctx, viewerID, "analytics:read").Return(true, nil)
		mockPlans.On("GetByID", ctx, planID).Return(plan, nil)
		mockCases.On("ListRecordsByPlan", ctx, planID, analyticsNow).Return(records, nil)

		overview, err := svc.GetPlanOverview(ctx, ports.PlanOverviewParams{
			PlanID:   planID,
			ViewerID: viewerID,
		})

		require.NoError(t, err)
		assert.Equal(t, 2, overview.Progress.TotalNum)
		assert.Equal(t, 1, overview.Progress.CompletedNum)
		assert.Equal(t, 50.0, overview.Progress.CompletedRate)
		assert.Len(t, overview.Delivery, 3)
		assert.Nil(t, overview.Testers)
	})

	t.Run("forbidden without analytics permission", func(t *testing.T) {
		mockPlans := mocks.NewMockPlanRepository()
		mockCases := mocks.NewMockCaseRepository()
		mockAuthz := mocks.NewMockAuthorizationService()

		svc := newAnalyticsService(mockPlans, mockCases, mockAuthz)

		mockAuthz.On("Can", ctx, viewerID, "analytics:read").Return(false, nil)

		overview, err := svc.GetPlanOverview(ctx, ports.PlanOverviewParams{
			PlanID:   planID,
			ViewerID: viewerID,
		})

		assert.Nil(t, overview)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		mockCases.AssertNotCalled(t, "ListRecordsByPlan")
	})

	t.Run("unknown plan", func(t *testing.T) {
		mockPlans := mocks.NewMockPlanRepository()
		mockCases := mocks.NewMockCaseRepository()
		mockAuthz := mocks.NewMockAuthorizationService()

		svc := newAnalyticsService(mockPlans, mockCases, mockAuthz)

		mockAuthz.On("Can", ctx, viewerID, "analytics:read").Return(true, nil)
		mockPlans.On("GetByID", ctx, planID).Return(nil, apperrors.ErrPlanNotFound)

		overview, err := svc.GetPlanOverview(ctx, ports.PlanOverviewParams{
			PlanID:   planID,
			ViewerID: viewerID,
		})

		assert.Nil(t, overview)
		assert.ErrorIs(t, err, apperrors.ErrPlanNotFound)
		mockCases.AssertNotCalled(t, "ListRecordsByPlan")
	})

	t.Run("per tester partitions", func(t *testing.T) {
		mockPlans := mocks.NewMockPlanRepository()
		mockCases := mocks.NewMockCaseRepository()
		mockAuthz := mocks.NewMockAuthorizationService()

		svc := newAnalyticsService(mockPlans, mockCases, mockAuthz)

		testerID := uuid.New()
		createdAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
		records := []domain.CaseRecord{
			{TestResult: domain.ResultPending, ReviewStatus: domain.ReviewPending, TesterID: &testerID, EvalWorkload: 2, CreatedAt: &createdAt},
			{TestResult: domain.ResultPending, ReviewStatus: domain.ReviewPending, EvalWorkload: 3, CreatedAt: &createdAt},
		}

		mockAuthz.On("Can", ctx, viewerID, "analytics:read").Return(true, nil)
		mockPlans.On("GetByID", ctx, planID).Return(plan, nil)
		mockCases.On("ListRecordsByPlan", ctx, planID, analyticsNow).Return(records, nil)

		overview, err := svc.GetPlanOverview(ctx, ports.PlanOverviewParams{
			PlanID:   planID,
			ViewerID: viewerID,
			ByTester: true,
		})

		require.NoError(t, err)
		require.Len(t, overview.Testers, 1)
		assert.Equal(t, testerID, overview.Testers[0].TesterID)
		assert.Equal(t, 1, overview.Testers[0].Overview.Progress.TotalNum)
	})
}

func TestAnalyticsService_GetPlanBurndown(t *testing.T) {
	ctx := context.Background()
	viewerID := uuid.New()
	planID := uuid.New()

	plan := &domain.TestPlan{
		ID:      planID,
		Name:    "Release 2.4 regression",
		StartAt: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
	}

	t.Run("defaults to the plan window", func(t *testing.T) {
		mockPlans := mocks.NewMockPlanRepository()
		mockCases := mocks.NewMockCaseRepository()
		mockAuthz := mocks.NewMockAuthorizationService()

		svc := newAnalyticsService(mockPlans, mockCases, mockAuthz)

		createdAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
		records := []domain.CaseRecord{
			{TestResult: domain.ResultPending, ReviewStatus: domain.ReviewPending, EvalWorkload: 4, CreatedAt: &createdAt},
		}

		mockAuthz.On("Can", ctx, viewerID, "analytics:read").Return(true, nil)
		mockPlans.On("GetByID", ctx, planID).Return(plan, nil)
		mockCases.On("ListRecordsByPlan", ctx, planID, analyticsNow).Return(records, nil)

		series, err := svc.GetPlanBurndown(ctx, ports.PlanBurndownParams{
			PlanID:   planID,
			ViewerID: viewerID,
		})

		require.NoError(t, err)
		require.Len(t, series, 2)
		assert.Len(t, series[domain.BurndownNum].Expected, 3)
		assert.Len(t, series[domain.BurndownWorkload].Remaining, 3)
	})

	t.Run("caller can narrow the window", func(t *testing.T) {
		mockPlans := mocks.NewMockPlanRepository()
		mockCases := mocks.NewMockCaseRepository()
		mockAuthz := mocks.NewMockAuthorizationService()

		svc := newAnalyticsService(mockPlans, mockCases, mockAuthz)

		start := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

		mockAuthz.On("Can", ctx, viewerID, "analytics:read").Return(true, nil)
		mockPlans.On("GetByID", ctx, planID).Return(plan, nil)
		mockCases.On("ListRecordsByPlan", ctx, planID, analyticsNow).Return([]domain.CaseRecord{}, nil)

		series, err := svc.GetPlanBurndown(ctx, ports.PlanBurndownParams{
			PlanID:   planID,
			ViewerID: viewerID,
			StartAt:  &start,
			EndAt:    &end,
		})

		require.NoError(t, err)
		assert.Len(t, series[domain.BurndownNum].Expected, 2)
	})
}
