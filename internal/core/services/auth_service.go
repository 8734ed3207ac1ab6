package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mkaral/testplan-backend/internal/core/domain"
	apperrors "github.com/mkaral/testplan-backend/internal/core/errors"
	"github.com/mkaral/testplan-backend/internal/core/ports"
)

// AuthService implements authentication business logic
type AuthService struct {
	userRepo     ports.UserRepository
	authzRepo    ports.AuthorizationRepository
	defaultOrgID uuid.UUID
}

var _ ports.AuthService = (*AuthService)(nil)

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo ports.UserRepository,
	authzRepo ports.AuthorizationRepository,
	defaultOrgID uuid.UUID,
) ports.AuthService {
	return &AuthService{
		userRepo:     userRepo,
		authzRepo:    authzRepo,
		defaultOrgID: defaultOrgID,
	}
}

// Register creates a new user account with validated credentials
func (s *AuthService) Register(ctx context.Context, fullName, email, password, role string, orgID uuid.UUID) (*domain.User, error) {
	// Validate registration parameters
	params := domain.UserRegistrationParams{
		FullName: fullName,
		Email:    email,
		Password: password,
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	// Check if user already exists
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, apperrors.ErrUserExists
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err // An actual DB error occurred
	}

	// Determine organization ID
	targetOrgID := orgID
	if targetOrgID == uuid.Nil {
		targetOrgID = s.defaultOrgID
	}

	// Create user with validated params
	user, err := domain.NewUser(params, targetOrgID)
	if err != nil {
		return nil, err
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if role == "" {
		role = "tester"
	}
	if err := s.authzRepo.AssignRole(ctx, created.ID, role); err != nil &&
		!errors.Is(err, apperrors.ErrRoleAlreadyAssigned) {
		return nil, err
	}

	return created, nil
}

// Login authenticates a user with email and password
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	// Basic validation
	if email == "" {
		return nil, apperrors.ErrEmailRequired
	}
	if password == "" {
		return nil, apperrors.ErrPasswordRequired
	}

	// Find user by email
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Don't reveal whether email exists
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	// Verify password
	if !user.CheckPassword(password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}
