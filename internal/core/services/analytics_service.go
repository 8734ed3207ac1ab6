package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mkaral/testplan-backend/internal/core/analytics"
	"github.com/mkaral/testplan-backend/internal/core/domain"
	apperrors "github.com/mkaral/testplan-backend/internal/core/errors"
	"github.com/mkaral/testplan-backend/internal/core/ports"
)

// AnalyticsService composes efficiency reports over a plan's case snapshot.
type AnalyticsService struct {
	planRepo ports.PlanRepository
	caseRepo ports.CaseRepository
	authzSvc ports.AuthorizationService
	composer *analytics.Composer
	now      func() time.Time
}

var _ ports.AnalyticsService = (*AnalyticsService)(nil)

// NewAnalyticsService creates a new analytics service. A nil composer falls
// back to the engine defaults; a nil clock falls back to time.Now.
func NewAnalyticsService(
	planRepo ports.PlanRepository,
	caseRepo ports.CaseRepository,
	authzSvc ports.AuthorizationService,
	composer *analytics.Composer,
	now func() time.Time,
) ports.AnalyticsService {
	if now == nil {
		now = time.Now
	}
	if composer == nil {
		composer = analytics.NewComposer(analytics.Options{Now: now})
	}
	return &AnalyticsService{
		planRepo: planRepo,
		caseRepo: caseRepo,
		authzSvc: authzSvc,
		composer: composer,
		now:      now,
	}
}

// GetPlanOverview loads the plan's snapshot and composes the full overview.
func (s *AnalyticsService) GetPlanOverview(ctx context.Context, params ports.PlanOverviewParams) (*domain.PlanOverview, error) {
	records, err := s.loadSnapshot(ctx, params.PlanID, params.ViewerID)
	if err != nil {
		return nil, err
	}

	overview := s.composer.Overview(records, params.ByTester)
	return &overview, nil
}

// GetPlanBurndown projects the burndown series over the plan window, or a
// caller-supplied override of it.
func (s *AnalyticsService) GetPlanBurndown(ctx context.Context, params ports.PlanBurndownParams) (map[domain.BurndownMetric]domain.BurndownSeries, error) {
	canRead, err := s.authzSvc.Can(ctx, params.ViewerID, "analytics:read")
	if err != nil {
		return nil, err
	}
	if !canRead {
		return nil, apperrors.ErrForbidden
	}

	plan, err := s.planRepo.GetByID(ctx, params.PlanID)
	if err != nil {
		return nil, err
	}

	start, end := plan.StartAt, plan.EndAt
	if params.StartAt != nil {
		start = *params.StartAt
	}
	if params.EndAt != nil {
		end = *params.EndAt
	}

	records, err := s.caseRepo.ListRecordsByPlan(ctx, params.PlanID, s.now())
	if err != nil {
		return nil, err
	}

	return s.composer.Burndown(records, start, end), nil
}

func (s *AnalyticsService) loadSnapshot(ctx context.Context, planID, viewerID uuid.UUID) ([]domain.CaseRecord, error) {
	canRead, err := s.authzSvc.Can(ctx, viewerID, "analytics:read")
	if err != nil {
		return nil, err
	}
	if !canRead {
		return nil, apperrors.ErrForbidden
	}

	// Ensure the plan exists before aggregating against it.
	if _, err := s.planRepo.GetByID(ctx, planID); err != nil {
		return nil, err
	}

	return s.caseRepo.ListRecordsByPlan(ctx, planID, s.now())
}
