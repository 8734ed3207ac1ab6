package domain

import "time"

// CaseSnapshot matches the API response shape for functional cases.
type CaseSnapshot struct {
	ID             string  `json:"id"`
	PlanID         string  `json:"planId"`
	Title          string  `json:"title"`
	TestResult     string  `json:"testResult"`
	ReviewStatus   string  `json:"reviewStatus"`
	AssigneeID     *string `json:"assigneeId"`
	TesterID       *string `json:"testerId"`
	EvalWorkload   float64 `json:"evalWorkload"`
	ActualWorkload float64 `json:"actualWorkload"`
	SavingWorkload float64 `json:"savingWorkload"`
	DeadlineAt     *string `json:"deadlineAt"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      *string `json:"updatedAt"`
	HandledAt      *string `json:"handledAt"`
}

// NewCaseSnapshot builds a case snapshot from a domain case.
func NewCaseSnapshot(c *FunctionalCase) CaseSnapshot {
	var assigneeID, testerID *string
	if c.AssigneeID != nil {
		value := c.AssigneeID.String()
		assigneeID = &value
	}
	if c.TesterID != nil {
		value := c.TesterID.String()
		testerID = &value
	}

	var deadlineAt, updatedAt, handledAt *string
	if c.DeadlineAt != nil {
		value := c.DeadlineAt.UTC().Format(time.RFC3339)
		deadlineAt = &value
	}
	if c.UpdatedAt != nil {
		value := c.UpdatedAt.UTC().Format(time.RFC3339)
		updatedAt = &value
	}
	if c.HandledAt != nil {
		value := c.HandledAt.UTC().Format(time.RFC3339)
		handledAt = &value
	}

	return CaseSnapshot{
		ID:             c.ID.String(),
		PlanID:         c.PlanID.String(),
		Title:          c.Title,
		TestResult:     string(c.TestResult),
		ReviewStatus:   string(c.ReviewStatus),
		AssigneeID:     assigneeID,
		TesterID:       testerID,
		EvalWorkload:   c.EvalWorkload,
		ActualWorkload: c.ActualWorkload,
		SavingWorkload: c.SavingWorkload,
		DeadlineAt:     deadlineAt,
		CreatedAt:      c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      updatedAt,
		HandledAt:      handledAt,
	}
}
