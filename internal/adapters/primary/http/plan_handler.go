package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	mw "github.com/mkaral/testplan-backend/internal/adapters/primary/http/middleware"
	"github.com/mkaral/testplan-backend/internal/adapters/primary/validation"
	"github.com/mkaral/testplan-backend/internal/auth"
	"github.com/mkaral/testplan-backend/internal/core/domain"
	"github.com/mkaral/testplan-backend/internal/core/ports"
)

const maxPlansPerPage = 100

// PlanHandler handles HTTP requests for test plans
type PlanHandler struct {
	planService      ports.PlanService
	caseHandler      *CaseHandler
	analyticsHandler *AnalyticsHandler
	errorHandler     *ErrorHandler
	logger           *slog.Logger
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(
	planService ports.PlanService,
	caseHandler *CaseHandler,
	analyticsHandler *AnalyticsHandler,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *PlanHandler {
	return &PlanHandler{
		planService:      planService,
		caseHandler:      caseHandler,
		analyticsHandler: analyticsHandler,
		errorHandler:     errorHandler,
		logger:           logger.With("handler", "plan"),
	}
}

// Router sets up a new chi Router for all plan-related routes.
func (h *PlanHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for all plan endpoints.
func (h *PlanHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListPlans)
	r.Post("/", h.HandleCreatePlan)

	// Routes for a specific plan
	r.Route("/{planID}", func(r chi.Router) {
		r.Get("/", h.HandleGetPlan)

		// Cases live nested under /plans/{planID}
		if h.caseHandler != nil {
			r.Get("/cases", h.caseHandler.HandleListCases)
			r.Post("/cases", h.caseHandler.HandleCreateCase)
		}

		if h.analyticsHandler != nil {
			r.Get("/overview", h.analyticsHandler.HandleGetOverview)
			r.Get("/burndown", h.analyticsHandler.HandleGetBurndown)
		}
	})
}

// --- Request/Response DTOs ---

// CreatePlanRequest defines the expected JSON body for creating a plan
type CreatePlanRequest struct {
	ProjectID   string `json:"projectId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartAt     string `json:"startAt"`
	EndAt       string `json:"endAt"`
}

// Validate validates the create plan request
func (r *CreatePlanRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("projectId", r.ProjectID).
		UUID("projectId", r.ProjectID)

	v.Required("name", r.Name).
		MaxLength("name", r.Name, domain.MaxPlanNameLength)

	v.MaxLength("description", r.Description, domain.MaxPlanDescriptionLength)

	v.Required("startAt", r.StartAt)
	v.Required("endAt", r.EndAt)

	if r.StartAt != "" {
		if _, err := parseDateOrTime(r.StartAt); err != nil {
			v.Custom("startAt", false, "Must be a valid date or timestamp")
		}
	}
	if r.EndAt != "" {
		if _, err := parseDateOrTime(r.EndAt); err != nil {
			v.Custom("endAt", false, "Must be a valid date or timestamp")
		}
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// PlanDTO defines the JSON response for test plans.
type PlanDTO struct {
	ID          string  `json:"id"`
	ProjectID   string  `json:"projectId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	StartAt     string  `json:"startAt"`
	EndAt       string  `json:"endAt"`
	CreatorID   string  `json:"creatorId"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   *string `json:"updatedAt"`
}

func toPlanDTO(plan *domain.TestPlan) PlanDTO {
	var updatedAt *string
	if plan.UpdatedAt != nil {
		value := plan.UpdatedAt.Format(time.RFC3339)
		updatedAt = &value
	}

	return PlanDTO{
		ID:          plan.ID.String(),
		ProjectID:   plan.ProjectID.String(),
		Name:        plan.Name,
		Description: plan.Description,
		StartAt:     plan.StartAt.Format(time.RFC3339),
		EndAt:       plan.EndAt.Format(time.RFC3339),
		CreatorID:   plan.CreatorID.String(),
		CreatedAt:   plan.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   updatedAt,
	}
}

func toPlanDTOs(plans []*domain.TestPlan) []PlanDTO {
	response := make([]PlanDTO, 0, len(plans))
	for _, plan := range plans {
		response = append(response, toPlanDTO(plan))
	}
	return response
}

// --- Handlers ---

// HandleListPlans handles GET /plans
func (h *PlanHandler) HandleListPlans(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	// Parse pagination
	pagination := validation.ParsePagination(r, maxPlansPerPage)

	v := validation.NewValidator()

	var projectID *uuid.UUID
	if projectIDStr := r.URL.Query().Get("projectId"); projectIDStr != "" {
		parsedProjectID, err := uuid.Parse(projectIDStr)
		if err != nil {
			v.Custom("projectId", false, "Must be a valid UUID")
		} else {
			projectID = &parsedProjectID
		}
	}

	if v.HasErrors() {
		h.errorHandler.Handle(w, r, v.Errors())
		return
	}

	params := ports.ListPlansServiceParams{
		ViewerID:  claims.UserID,
		ProjectID: projectID,
		Limit:     pagination.Limit + 1,
		Offset:    pagination.Offset,
	}

	plans, err := h.planService.ListPlans(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	// Use simple pagination (without total count for performance)
	WritePaginatedSimple(w, toPlanDTOs(plans), pagination.Limit, pagination.Offset)
}

// HandleCreatePlan handles POST /plans
func (h *PlanHandler) HandleCreatePlan(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[CreatePlanRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	startAt, _ := parseDateOrTime(req.StartAt)
	endAt, _ := parseDateOrTime(req.EndAt)

	params := ports.CreatePlanParams{
		ProjectID:   projectID,
		Name:        req.Name,
		Description: req.Description,
		StartAt:     startAt,
		EndAt:       endAt,
		CreatorID:   claims.UserID,
	}

	plan, err := h.planService.CreatePlan(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("plan created",
		"plan_id", plan.ID,
		"user_id", claims.UserID,
	)

	WriteCreated(w, toPlanDTO(plan))
}

// HandleGetPlan handles GET /plans/{planID}
func (h *PlanHandler) HandleGetPlan(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	planID, err := parsePlanID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	plan, err := h.planService.GetPlan(r.Context(), planID, claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toPlanDTO(plan))
}

// --- Helper methods ---

// getClaims extracts and validates user claims from the request context
func (h *PlanHandler) getClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := mw.GetClaims(r.Context())
	if !ok {
		WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: "Not authorized",
			Code:  "UNAUTHORIZED",
		})
		return nil, false
	}
	return claims, true
}

// parsePlanID extracts and validates the plan ID from the URL
func parsePlanID(r *http.Request) (uuid.UUID, error) {
	planIDStr := chi.URLParam(r, "planID")
	planID, err := uuid.Parse(planIDStr)
	if err != nil {
		v := validation.NewValidator()
		v.Custom("planID", false, "Invalid plan ID")
		return uuid.Nil, v.Errors()
	}
	return planID, nil
}

// parseDateOrTime accepts RFC3339 timestamps or bare YYYY-MM-DD dates.
func parseDateOrTime(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02", value)
}
