package domain

import (
	"time"

	"github.com/google/uuid"
)

// TestResult represents the execution outcome of a functional case.
type TestResult string

const (
	ResultPending  TestResult = "PENDING"
	ResultUnderway TestResult = "UNDERWAY"
	ResultPassed   TestResult = "PASSED"
	ResultFailed   TestResult = "FAILED"
	ResultCanceled TestResult = "CANCELED"
)

// TestResults lists every test result in display order. Aggregations that
// key on the result iterate this set so absent values still appear.
var TestResults = []TestResult{
	ResultPending,
	ResultUnderway,
	ResultPassed,
	ResultFailed,
	ResultCanceled,
}

// IsCanceled reports whether the case was withdrawn from the plan.
func (r TestResult) IsCanceled() bool {
	return r == ResultCanceled
}

// IsPassed reports whether the case completed successfully.
func (r TestResult) IsPassed() bool {
	return r == ResultPassed
}

// IsFinished reports whether the case reached a terminal result.
func (r TestResult) IsFinished() bool {
	return r == ResultPassed || r == ResultFailed || r == ResultCanceled
}

// ReviewStatus represents the review state of a functional case.
type ReviewStatus string

const (
	ReviewPending     ReviewStatus = "PENDING"
	ReviewUnderReview ReviewStatus = "UNDER_REVIEW"
	ReviewPassed      ReviewStatus = "PASSED"
	ReviewFailed      ReviewStatus = "FAILED"
)

// ReviewStatuses lists every review status in display order.
var ReviewStatuses = []ReviewStatus{
	ReviewPending,
	ReviewUnderReview,
	ReviewPassed,
	ReviewFailed,
}

// CaseRecord is the read-only snapshot of a functional case consumed by the
// analytics engine. A snapshot is loaded once per request, already scoped to
// the caller's plan, and is never mutated by any aggregator.
type CaseRecord struct {
	ID           uuid.UUID
	PlanID       uuid.UUID
	AssigneeID   *uuid.UUID
	TesterID     *uuid.UUID
	TestResult   TestResult
	ReviewStatus ReviewStatus

	// Overdue is set upstream when the record is loaded; the engine never
	// derives it from the deadline.
	Overdue bool

	DeadlineAt *time.Time
	CreatedAt  *time.Time

	// HandledAt is the completion timestamp. It is present exactly when the
	// result is finished with a recorded completion.
	HandledAt *time.Time

	EvalWorkload   float64
	ActualWorkload float64
	SavingWorkload float64
}
