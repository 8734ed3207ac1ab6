package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Pre-defined errors for case-specific validation.
var (
	ErrCaseTitleRequired      = errors.New("case title is required")
	ErrCaseTitleTooLong       = errors.New("case title exceeds maximum length")
	ErrInvalidResultChange    = errors.New("invalid test result change")
	ErrInvalidReviewChange    = errors.New("invalid review status change")
	ErrCannotAssignCanceled   = errors.New("cannot assign a canceled case")
	ErrNegativeWorkload       = errors.New("workload must not be negative")
	ErrCaseWithoutPlan        = errors.New("case must belong to a plan")
	ErrResultRequiresWorkload = errors.New("a passed case requires an actual workload")
)

const MaxCaseTitleLength = 255

// FunctionalCase is the persistent form of a case record: what testers
// create, execute and review inside a plan.
type FunctionalCase struct {
	ID           uuid.UUID
	PlanID       uuid.UUID
	Title        string
	TestResult   TestResult
	ReviewStatus ReviewStatus
	AssigneeID   *uuid.UUID
	TesterID     *uuid.UUID
	DeadlineAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	HandledAt    *time.Time

	EvalWorkload   float64
	ActualWorkload float64
	SavingWorkload float64
}

// CaseParams holds validated input for creating a functional case.
type CaseParams struct {
	PlanID       uuid.UUID
	Title        string
	EvalWorkload float64
	DeadlineAt   *time.Time
	TesterID     *uuid.UUID
}

// NewFunctionalCase is a factory function to create a valid new case.
func NewFunctionalCase(params CaseParams) (*FunctionalCase, error) {
	if params.PlanID == uuid.Nil {
		return nil, ErrCaseWithoutPlan
	}
	if params.Title == "" {
		return nil, ErrCaseTitleRequired
	}
	if len(params.Title) > MaxCaseTitleLength {
		return nil, ErrCaseTitleTooLong
	}
	if params.EvalWorkload < 0 {
		return nil, ErrNegativeWorkload
	}

	return &FunctionalCase{
		ID:           uuid.New(),
		PlanID:       params.PlanID,
		Title:        params.Title,
		TestResult:   ResultPending,
		ReviewStatus: ReviewPending,
		EvalWorkload: params.EvalWorkload,
		DeadlineAt:   params.DeadlineAt,
		TesterID:     params.TesterID,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// UpdateResult moves the case to a new test result, enforcing that a
// canceled case is terminal and that completion stamps HandledAt.
func (c *FunctionalCase) UpdateResult(result TestResult, actualWorkload float64) error {
	if c.TestResult.IsCanceled() {
		return ErrInvalidResultChange
	}
	if actualWorkload < 0 {
		return ErrNegativeWorkload
	}
	if result.IsPassed() && actualWorkload == 0 {
		return ErrResultRequiresWorkload
	}

	now := time.Now().UTC()
	c.TestResult = result
	c.UpdatedAt = &now

	if result.IsFinished() {
		c.HandledAt = &now
		c.ActualWorkload = actualWorkload
		if saving := c.EvalWorkload - actualWorkload; saving > 0 {
			c.SavingWorkload = saving
		} else {
			c.SavingWorkload = 0
		}
	} else {
		// Reopening an unfinished case clears its completion stamp.
		c.HandledAt = nil
		c.ActualWorkload = 0
		c.SavingWorkload = 0
	}

	return nil
}

// UpdateReview moves the case to a new review status. A case whose review
// already passed cannot drop back to pending.
func (c *FunctionalCase) UpdateReview(status ReviewStatus) error {
	if c.ReviewStatus == ReviewPassed && status == ReviewPending {
		return ErrInvalidReviewChange
	}

	now := time.Now().UTC()
	c.ReviewStatus = status
	c.UpdatedAt = &now
	return nil
}

// Assign sets or changes the assignee of the case.
func (c *FunctionalCase) Assign(assigneeID uuid.UUID) error {
	if c.TestResult.IsCanceled() {
		return ErrCannotAssignCanceled
	}
	c.AssigneeID = &assigneeID
	now := time.Now().UTC()
	c.UpdatedAt = &now
	return nil
}

// Record projects the case into the analytics snapshot shape. Overdue is
// the caller's call: it is computed against "now" when the snapshot loads.
func (c *FunctionalCase) Record(overdue bool) CaseRecord {
	createdAt := c.CreatedAt
	return CaseRecord{
		ID:             c.ID,
		PlanID:         c.PlanID,
		AssigneeID:     c.AssigneeID,
		TesterID:       c.TesterID,
		TestResult:     c.TestResult,
		ReviewStatus:   c.ReviewStatus,
		Overdue:        overdue,
		DeadlineAt:     c.DeadlineAt,
		CreatedAt:      &createdAt,
		HandledAt:      c.HandledAt,
		EvalWorkload:   c.EvalWorkload,
		ActualWorkload: c.ActualWorkload,
		SavingWorkload: c.SavingWorkload,
	}
}
