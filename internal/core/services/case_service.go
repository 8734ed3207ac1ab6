package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mkaral/testplan-backend/internal/core/domain"
	apperrors "github.com/mkaral/testplan-backend/internal/core/errors"
	"github.com/mkaral/testplan-backend/internal/core/ports"
)

// CaseService implements business logic for functional case management
type CaseService struct {
	caseRepo    ports.CaseRepository
	eventRepo   ports.CaseEventRepository
	authzSvc    ports.AuthorizationService
	notifier    ports.Notifier
	broadcaster ports.EventBroadcaster
	txManager   ports.TransactionManager
	wg          sync.WaitGroup
}

var _ ports.CaseService = (*CaseService)(nil)

// NewCaseService creates a new case service. txManager may be nil, in which
// case writes and their activity entries are not committed atomically.
func NewCaseService(
	caseRepo ports.CaseRepository,
	eventRepo ports.CaseEventRepository,
	authzSvc ports.AuthorizationService,
	notifier ports.Notifier,
	broadcaster ports.EventBroadcaster,
	txManager ports.TransactionManager,
) ports.CaseService {
	return &CaseService{
		caseRepo:    caseRepo,
		eventRepo:   eventRepo,
		authzSvc:    authzSvc,
		notifier:    notifier,
		broadcaster: broadcaster,
		txManager:   txManager,
	}
}

// withTx runs fn inside a transaction when a manager is configured.
func (s *CaseService) withTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.txManager == nil {
		return fn(ctx)
	}
	return s.txManager.WithTransaction(ctx, fn)
}

// CreateCase handles the use case for adding a case to a plan
func (s *CaseService) CreateCase(ctx context.Context, params ports.CreateCaseParams) (*domain.FunctionalCase, error) {
	// 1. Authorization Check
	canCreate, err := s.authzSvc.Can(ctx, params.ActorID, "cases:create")
	if err != nil {
		return nil, err
	}
	if !canCreate {
		return nil, apperrors.ErrForbidden
	}

	// 2. Create domain entity with validation
	c, err := domain.NewFunctionalCase(domain.CaseParams{
		PlanID:       params.PlanID,
		Title:        params.Title,
		EvalWorkload: params.EvalWorkload,
		DeadlineAt:   params.DeadlineAt,
		TesterID:     params.TesterID,
	})
	if err != nil {
		return nil, err // Validation errors are returned here
	}

	// 3. Persist the case together with its first activity entry
	var created *domain.FunctionalCase
	err = s.withTx(ctx, func(ctx context.Context) error {
		var txErr error
		created, txErr = s.caseRepo.Create(ctx, c)
		if txErr != nil {
			return txErr
		}
		s.recordActivity(ctx, created, domain.EventCaseCreated, params.ActorID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// GetCase retrieves a specific case with authorization
func (s *CaseService) GetCase(ctx context.Context, caseID, viewerID uuid.UUID) (*domain.FunctionalCase, error) {
	canRead, err := s.authzSvc.Can(ctx, viewerID, "cases:read")
	if err != nil {
		return nil, err
	}
	if !canRead {
		return nil, apperrors.ErrForbidden
	}

	return s.caseRepo.GetByID(ctx, caseID)
}

// UpdateResult changes a case's test result with business rule enforcement
func (s *CaseService) UpdateResult(ctx context.Context, params ports.UpdateResultParams) (*domain.FunctionalCase, error) {
	// 1. Authorization Check
	canUpdate, err := s.authzSvc.Can(ctx, params.ActorID, "cases:update:result")
	if err != nil {
		return nil, err
	}
	if !canUpdate {
		return nil, apperrors.ErrForbidden
	}

	// 2. Fetch and update domain entity
	c, err := s.caseRepo.GetByID(ctx, params.CaseID)
	if err != nil {
		return nil, err
	}

	// 3. Apply result change (domain validates the transition)
	if err := c.UpdateResult(params.Result, params.ActualWorkload); err != nil {
		return nil, err
	}

	// 4. Persist changes and the activity entry atomically
	var updated *domain.FunctionalCase
	err = s.withTx(ctx, func(ctx context.Context) error {
		var txErr error
		updated, txErr = s.caseRepo.Update(ctx, c)
		if txErr != nil {
			return txErr
		}
		s.recordActivity(ctx, updated, domain.EventResultUpdated, params.ActorID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 5. Send notification (async, in background context)
	if updated.TesterID != nil && *updated.TesterID != params.ActorID {
		s.notifyResultUpdate(updated)
	}

	// 6. Broadcast real-time event (async)
	go s.broadcastUpdate(updated, domain.EventResultUpdated)

	return updated, nil
}

// UpdateReview changes a case's review status
func (s *CaseService) UpdateReview(ctx context.Context, params ports.UpdateReviewParams) (*domain.FunctionalCase, error) {
	canReview, err := s.authzSvc.Can(ctx, params.ActorID, "cases:update:review")
	if err != nil {
		return nil, err
	}
	if !canReview {
		return nil, apperrors.ErrForbidden
	}

	c, err := s.caseRepo.GetByID(ctx, params.CaseID)
	if err != nil {
		return nil, err
	}

	if err := c.UpdateReview(params.Status); err != nil {
		return nil, err
	}

	var updated *domain.FunctionalCase
	err = s.withTx(ctx, func(ctx context.Context) error {
		var txErr error
		updated, txErr = s.caseRepo.Update(ctx, c)
		if txErr != nil {
			return txErr
		}
		s.recordActivity(ctx, updated, domain.EventReviewUpdated, params.ActorID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.broadcastUpdate(updated, domain.EventReviewUpdated)

	return updated, nil
}

// AssignCase routes a case to an assignee
func (s *CaseService) AssignCase(ctx context.Context, params ports.AssignCaseParams) (*domain.FunctionalCase, error) {
	canAssign, err := s.authzSvc.Can(ctx, params.ActorID, "cases:assign")
	if err != nil {
		return nil, err
	}
	if !canAssign {
		return nil, apperrors.ErrForbidden
	}

	c, err := s.caseRepo.GetByID(ctx, params.CaseID)
	if err != nil {
		return nil, err
	}

	// Domain validates business rules
	if err := c.Assign(params.AssigneeID); err != nil {
		return nil, err
	}

	var updated *domain.FunctionalCase
	err = s.withTx(ctx, func(ctx context.Context) error {
		var txErr error
		updated, txErr = s.caseRepo.Update(ctx, c)
		if txErr != nil {
			return txErr
		}
		s.recordActivity(ctx, updated, domain.EventCaseAssigned, params.ActorID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// ListCases retrieves cases in a plan based on user permissions
func (s *CaseService) ListCases(ctx context.Context, params ports.ListCasesServiceParams) ([]*domain.FunctionalCase, error) {
	canRead, err := s.authzSvc.Can(ctx, params.ViewerID, "cases:read")
	if err != nil {
		return nil, err
	}
	if !canRead {
		return nil, apperrors.ErrForbidden
	}

	return s.caseRepo.ListPaginated(ctx, ports.ListCasesParams{
		PlanID:     params.PlanID,
		Limit:      int32(params.Limit),
		Offset:     int32(params.Offset),
		TestResult: params.TestResult,
		TesterID:   params.TesterID,
	})
}

// notifyResultUpdate sends email notification for result changes
func (s *CaseService) notifyResultUpdate(c *domain.FunctionalCase) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		// Use background context since the HTTP request may be done
		ctx := context.Background()

		s.notifier.Notify(ctx, ports.NotificationParams{
			RecipientUserID: *c.TesterID,
			Subject:         fmt.Sprintf("Test result updated: %s", c.Title),
			Message:         fmt.Sprintf("The result of case '%s' was changed to %s.", c.Title, c.TestResult),
			CaseID:          c.ID,
		})
	}()
}

// broadcastUpdate sends a real-time event to the case's plan room
func (s *CaseService) broadcastUpdate(c *domain.FunctionalCase, eventType domain.EventType) {
	event := domain.Event{
		Type:    eventType,
		Payload: domain.NewCaseSnapshot(c),
		PlanID:  c.PlanID,
	}
	_ = s.broadcaster.Broadcast(event)
}

// recordActivity appends a persisted activity entry. Failures are logged by
// the repository layer and never fail the main operation.
func (s *CaseService) recordActivity(ctx context.Context, c *domain.FunctionalCase, eventType domain.EventType, actorID uuid.UUID) {
	payload, err := marshalEventPayload(domain.NewCaseSnapshot(c))
	if err != nil {
		return
	}

	_, _ = s.eventRepo.Create(ctx, &domain.CaseEvent{
		CaseID:  c.ID,
		PlanID:  c.PlanID,
		Type:    eventType,
		Payload: payload,
		ActorID: actorID,
	})
}

func (s *CaseService) Shutdown() {
	s.wg.Wait()
}
