package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/mkaral/testplan-backend/internal/core/domain"
	apperrors "github.com/mkaral/testplan-backend/internal/core/errors"
	"github.com/mkaral/testplan-backend/internal/core/ports"
)

// TesterService implements business logic for listing users cases can be
// routed to.
type TesterService struct {
	userRepo ports.UserRepository
	authzSvc ports.AuthorizationService
}

var _ ports.TesterService = (*TesterService)(nil)

// NewTesterService creates a new tester service.
func NewTesterService(userRepo ports.UserRepository, authzSvc ports.AuthorizationService) ports.TesterService {
	return &TesterService{
		userRepo: userRepo,
		authzSvc: authzSvc,
	}
}

// ListTesters returns users eligible for case assignment within the org.
func (s *TesterService) ListTesters(ctx context.Context, actorID uuid.UUID, orgID uuid.UUID) ([]*domain.User, error) {
	canAssign, err := s.authzSvc.Can(ctx, actorID, "cases:assign")
	if err != nil {
		return nil, err
	}
	if !canAssign {
		return nil, apperrors.ErrForbidden
	}

	return s.userRepo.ListTesters(ctx, orgID)
}
