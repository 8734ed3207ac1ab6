package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/mkaral/testplan-backend/internal/core/domain"
	apperrors "github.com/mkaral/testplan-backend/internal/core/errors"
	"github.com/mkaral/testplan-backend/internal/core/ports"
)

// PlanService implements business logic for test plan management
type PlanService struct {
	planRepo ports.PlanRepository
	authzSvc ports.AuthorizationService
}

var _ ports.PlanService = (*PlanService)(nil)

// NewPlanService creates a new plan service
func NewPlanService(planRepo ports.PlanRepository, authzSvc ports.AuthorizationService) ports.PlanService {
	return &PlanService{
		planRepo: planRepo,
		authzSvc: authzSvc,
	}
}

// CreatePlan handles the use case for opening a new test plan
func (s *PlanService) CreatePlan(ctx context.Context, params ports.CreatePlanParams) (*domain.TestPlan, error) {
	// 1. Authorization Check
	canCreate, err := s.authzSvc.Can(ctx, params.CreatorID, "plans:create")
	if err != nil {
		return nil, err
	}
	if !canCreate {
		return nil, apperrors.ErrForbidden
	}

	// 2. Create domain entity with validation
	plan, err := domain.NewTestPlan(domain.PlanParams{
		ProjectID:   params.ProjectID,
		Name:        params.Name,
		Description: params.Description,
		StartAt:     params.StartAt,
		EndAt:       params.EndAt,
		CreatorID:   params.CreatorID,
	})
	if err != nil {
		return nil, err // Validation errors are returned here
	}

	// 3. Persist the plan
	return s.planRepo.Create(ctx, plan)
}

// GetPlan retrieves a specific plan with authorization
func (s *PlanService) GetPlan(ctx context.Context, planID, viewerID uuid.UUID) (*domain.TestPlan, error) {
	canRead, err := s.authzSvc.Can(ctx, viewerID, "plans:read")
	if err != nil {
		return nil, err
	}
	if !canRead {
		return nil, apperrors.ErrForbidden
	}

	return s.planRepo.GetByID(ctx, planID)
}

// ListPlans retrieves plans visible to the viewer
func (s *PlanService) ListPlans(ctx context.Context, params ports.ListPlansServiceParams) ([]*domain.TestPlan, error) {
	canRead, err := s.authzSvc.Can(ctx, params.ViewerID, "plans:read")
	if err != nil {
		return nil, err
	}
	if !canRead {
		return nil, apperrors.ErrForbidden
	}

	return s.planRepo.ListPaginated(ctx, ports.ListPlansParams{
		ProjectID: params.ProjectID,
		Limit:     int32(params.Limit),
		Offset:    int32(params.Offset),
	})
}
