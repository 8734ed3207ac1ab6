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

// Helper to create a user for plan and case tests
func createTestUser(t *testing.T, ctx context.Context, userRepo ports.UserRepository) *domain.User {
	user := &domain.User{
		ID:             uuid.New(),
		FullName:       "Plan Creator",
		Email:          uuid.NewString() + "@example.com", // Ensure unique email
		HashedPassword: "testpassword",
		OrganizationID: uuid.New(),
	}
	createdUser, err := userRepo.Create(ctx, user)
	require.NoError(t, err)
	return createdUser
}

// Helper to create a plan for tests
func createTestPlan(t *testing.T, ctx context.Context, planRepo ports.PlanRepository, creatorID uuid.UUID, projectID uuid.UUID) *domain.TestPlan {
	plan, err := domain.NewTestPlan(domain.PlanParams{
		ProjectID: projectID,
		Name:      "Release regression",
		StartAt:   time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		CreatorID: creatorID,
	})
	require.NoError(t, err)

	created, err := planRepo.Create(ctx, plan)
	require.NoError(t, err)
	return created
}

func TestPlanRepository_CreateGet(t *testing.T) {
	ctx := context.Background()
	planRepo, _, userRepo := newTestRepos(t)

	creator := createTestUser(t, ctx, userRepo)

	plan, err := domain.NewTestPlan(domain.PlanParams{
		ProjectID:   uuid.New(),
		Name:        "Sprint 12 verification",
		Description: "Covers the checkout flow",
		StartAt:     time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		EndAt:       time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		CreatorID:   creator.ID,
	})
	require.NoError(t, err)

	created, err := planRepo.Create(ctx, plan)
	require.NoError(t, err, "Failed to create plan")
	assert.Equal(t, plan.ID, created.ID)

	found, err := planRepo.GetByID(ctx, created.ID)
	require.NoError(t, err, "Failed to get plan by ID")

	assert.Equal(t, "Sprint 12 verification", found.Name)
	assert.Equal(t, "Covers the checkout flow", found.Description)
	assert.Equal(t, creator.ID, found.CreatorID)
	assert.True(t, found.StartAt.Equal(plan.StartAt))
	assert.True(t, found.EndAt.Equal(plan.EndAt))
	assert.Nil(t, found.UpdatedAt)
}

func TestPlanRepository_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	planRepo, _, _ := newTestRepos(t)

	_, err := planRepo.GetByID(ctx, uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrPlanNotFound)
}

func TestPlanRepository_Update(t *testing.T) {
	ctx := context.Background()
	planRepo, _, userRepo := newTestRepos(t)

	creator := createTestUser(t, ctx, userRepo)
	plan := createTestPlan(t, ctx, planRepo, creator.ID, uuid.New())

	plan.Name = "Release regression (revised)"
	plan.EndAt = plan.EndAt.Add(7 * 24 * time.Hour)

	updated, err := planRepo.Update(ctx, plan)
	require.NoError(t, err)
	assert.Equal(t, "Release regression (revised)", updated.Name)
	assert.NotNil(t, updated.UpdatedAt)
}

func TestPlanRepository_ListPaginated(t *testing.T) {
	ctx := context.Background()
	planRepo, _, userRepo := newTestRepos(t)

	creator := createTestUser(t, ctx, userRepo)
	projectID := uuid.New()
	otherProjectID := uuid.New()

	createTestPlan(t, ctx, planRepo, creator.ID, projectID)
	createTestPlan(t, ctx, planRepo, creator.ID, projectID)
	createTestPlan(t, ctx, planRepo, creator.ID, otherProjectID)

	// Filtered by project
	plans, err := planRepo.ListPaginated(ctx, ports.ListPlansParams{
		ProjectID: &projectID,
		Limit:     10,
		Offset:    0,
	})
	require.NoError(t, err)
	assert.Len(t, plans, 2)

	// Pagination within the project
	page, err := planRepo.ListPaginated(ctx, ports.ListPlansParams{
		ProjectID: &projectID,
		Limit:     1,
		Offset:    1,
	})
	require.NoError(t, err)
	assert.Len(t, page, 1)
}
