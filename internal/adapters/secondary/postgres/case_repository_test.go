package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mkaral/testplan-backend/internal/core/domain"
	"github.com/mkaral/testplan-backend/internal/core/errors"
	"github.com/mkaral/testplan-backend/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCase(t *testing.T, ctx context.Context, caseRepo ports.CaseRepository, planID uuid.UUID, title string, eval float64, deadline *time.Time) *domain.FunctionalCase {
	fc, err := domain.NewFunctionalCase(domain.CaseParams{
		PlanID:       planID,
		Title:        title,
		EvalWorkload: eval,
		DeadlineAt:   deadline,
	})
	require.NoError(t, err)

	created, err := caseRepo.Create(ctx, fc)
	require.NoError(t, err)
	return created
}

func TestCaseRepository_CreateGet(t *testing.T) {
	ctx := context.Background()
	planRepo, caseRepo, userRepo := newTestRepos(t)

	creator := createTestUser(t, ctx, userRepo)
	plan := createTestPlan(t, ctx, planRepo, creator.ID, uuid.New())

	deadline := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	created := createTestCase(t, ctx, caseRepo, plan.ID, "Checkout happy path", 4, &deadline)

	found, err := caseRepo.GetByID(ctx, created.ID)
	require.NoError(t, err, "Failed to get case by ID")

	assert.Equal(t, "Checkout happy path", found.Title)
	assert.Equal(t, domain.ResultPending, found.TestResult)
	assert.Equal(t, domain.ReviewPending, found.ReviewStatus)
	assert.Equal(t, 4.0, found.EvalWorkload)
	require.NotNil(t, found.DeadlineAt)
	assert.True(t, found.DeadlineAt.Equal(deadline))
	assert.Nil(t, found.HandledAt)
}

func TestCaseRepository_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	_, caseRepo, _ := newTestRepos(t)

	_, err := caseRepo.GetByID(ctx, uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrCaseNotFound)
}

func TestCaseRepository_UpdateResult(t *testing.T) {
	ctx := context.Background()
	planRepo, caseRepo, userRepo := newTestRepos(t)

	creator := createTestUser(t, ctx, userRepo)
	plan := createTestPlan(t, ctx, planRepo, creator.ID, uuid.New())
	created := createTestCase(t, ctx, caseRepo, plan.ID, "Refund flow", 8, nil)

	require.NoError(t, created.UpdateResult(domain.ResultPassed, 6))

	updated, err := caseRepo.Update(ctx, created)
	require.NoError(t, err)

	assert.Equal(t, domain.ResultPassed, updated.TestResult)
	assert.Equal(t, 6.0, updated.ActualWorkload)
	assert.Equal(t, 2.0, updated.SavingWorkload)
	require.NotNil(t, updated.HandledAt)
}

func TestCaseRepository_ListPaginated(t *testing.T) {
	ctx := context.Background()
	planRepo, caseRepo, userRepo := newTestRepos(t)

	creator := createTestUser(t, ctx, userRepo)
	tester := createTestUser(t, ctx, userRepo)
	plan := createTestPlan(t, ctx, planRepo, creator.ID, uuid.New())

	c1 := createTestCase(t, ctx, caseRepo, plan.ID, "C1", 2, nil)
	require.NoError(t, c1.UpdateResult(domain.ResultPassed, 2))
	_, err := caseRepo.Update(ctx, c1)
	require.NoError(t, err)

	createTestCase(t, ctx, caseRepo, plan.ID, "C2", 2, nil)

	c3, err := domain.NewFunctionalCase(domain.CaseParams{
		PlanID:       plan.ID,
		Title:        "C3",
		EvalWorkload: 2,
		TesterID:     &tester.ID,
	})
	require.NoError(t, err)
	_, err = caseRepo.Create(ctx, c3)
	require.NoError(t, err)

	// All cases in the plan
	all, err := caseRepo.ListPaginated(ctx, ports.ListCasesParams{PlanID: plan.ID, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Filter by result
	passed := string(domain.ResultPassed)
	passedCases, err := caseRepo.ListPaginated(ctx, ports.ListCasesParams{PlanID: plan.ID, Limit: 10, TestResult: &passed})
	require.NoError(t, err)
	require.Len(t, passedCases, 1)
	assert.Equal(t, "C1", passedCases[0].Title)

	// Filter by tester
	testerCases, err := caseRepo.ListPaginated(ctx, ports.ListCasesParams{PlanID: plan.ID, Limit: 10, TesterID: &tester.ID})
	require.NoError(t, err)
	require.Len(t, testerCases, 1)
	assert.Equal(t, "C3", testerCases[0].Title)
}

func TestCaseRepository_ListRecordsByPlan(t *testing.T) {
	ctx := context.Background()
	planRepo, caseRepo, userRepo := newTestRepos(t)

	creator := createTestUser(t, ctx, userRepo)
	plan := createTestPlan(t, ctx, planRepo, creator.ID, uuid.New())

	now := time.Now().UTC()
	pastDeadline := now.Add(-48 * time.Hour)
	futureDeadline := now.Add(48 * time.Hour)

	createTestCase(t, ctx, caseRepo, plan.ID, "Past deadline, still open", 4, &pastDeadline)
	createTestCase(t, ctx, caseRepo, plan.ID, "Future deadline", 4, &futureDeadline)
	createTestCase(t, ctx, caseRepo, plan.ID, "No deadline", 4, nil)

	late := createTestCase(t, ctx, caseRepo, plan.ID, "Completed late", 4, &pastDeadline)
	require.NoError(t, late.UpdateResult(domain.ResultPassed, 4))
	_, err := caseRepo.Update(ctx, late)
	require.NoError(t, err)

	records, err := caseRepo.ListRecordsByPlan(ctx, plan.ID, now)
	require.NoError(t, err)
	require.Len(t, records, 4)

	byTitle := map[string]domain.CaseRecord{}
	for _, record := range records {
		fc, err := caseRepo.GetByID(ctx, record.ID)
		require.NoError(t, err)
		byTitle[fc.Title] = record
	}

	assert.True(t, byTitle["Past deadline, still open"].Overdue)
	assert.False(t, byTitle["Future deadline"].Overdue)
	assert.False(t, byTitle["No deadline"].Overdue)
	assert.True(t, byTitle["Completed late"].Overdue)

	require.NotNil(t, byTitle["Completed late"].HandledAt)
	require.NotNil(t, byTitle["No deadline"].CreatedAt)
}
