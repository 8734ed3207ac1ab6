package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Pre-defined errors for plan-specific validation.
var (
	ErrPlanNameRequired  = errors.New("plan name is required")
	ErrPlanNameTooLong   = errors.New("plan name exceeds maximum length")
	ErrPlanDatesInverted = errors.New("plan end date is before its start date")
)

const (
	MaxPlanNameLength        = 255
	MaxPlanDescriptionLength = 4000
)

// TestPlan groups functional cases under one delivery window.
type TestPlan struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	Name        string
	Description string
	StartAt     time.Time
	EndAt       time.Time
	CreatorID   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// PlanParams holds validated input for creating a test plan.
type PlanParams struct {
	ProjectID   uuid.UUID
	Name        string
	Description string
	StartAt     time.Time
	EndAt       time.Time
	CreatorID   uuid.UUID
}

// NewTestPlan is a factory function to create a valid new plan.
func NewTestPlan(params PlanParams) (*TestPlan, error) {
	if params.Name == "" {
		return nil, ErrPlanNameRequired
	}
	if len(params.Name) > MaxPlanNameLength {
		return nil, ErrPlanNameTooLong
	}
	if params.EndAt.Before(params.StartAt) {
		return nil, ErrPlanDatesInverted
	}

	return &TestPlan{
		ID:          uuid.New(),
		ProjectID:   params.ProjectID,
		Name:        params.Name,
		Description: params.Description,
		StartAt:     params.StartAt,
		EndAt:       params.EndAt,
		CreatorID:   params.CreatorID,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// ContainsDay reports whether the given day falls inside the plan window.
func (p *TestPlan) ContainsDay(ts time.Time) bool {
	day := ts.Truncate(24 * time.Hour)
	return !day.Before(p.StartAt.Truncate(24*time.Hour)) &&
		!day.After(p.EndAt.Truncate(24*time.Hour))
}
