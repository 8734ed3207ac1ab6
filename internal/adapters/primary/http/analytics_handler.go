package http

import (
	"log/slog"
	"net/http"
	"time"

	mw "github.com/mkaral/testplan-backend/internal/adapters/primary/http/middleware"
	"github.com/mkaral/testplan-backend/internal/adapters/primary/validation"
	"github.com/mkaral/testplan-backend/internal/auth"
	"github.com/mkaral/testplan-backend/internal/core/ports"
)

// AnalyticsHandler handles HTTP requests for plan efficiency reporting
type AnalyticsHandler struct {
	analyticsService ports.AnalyticsService
	errorHandler     *ErrorHandler
	logger           *slog.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(
	analyticsService ports.AnalyticsService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		errorHandler:     errorHandler,
		logger:           logger.With("handler", "analytics"),
	}
}

// HandleGetOverview handles GET /plans/{planID}/overview
func (h *AnalyticsHandler) HandleGetOverview(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	planID, err := parsePlanID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	byTester := validation.ParseBoolQueryParam(r, "byTester", false)

	params := ports.PlanOverviewParams{
		PlanID:   planID,
		ViewerID: claims.UserID,
		ByTester: byTester,
	}

	overview, err := h.analyticsService.GetPlanOverview(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, overview)
}

// HandleGetBurndown handles GET /plans/{planID}/burndown
func (h *AnalyticsHandler) HandleGetBurndown(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	planID, err := parsePlanID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	v := validation.NewValidator()

	startAt, err := validation.ParseTimeQueryParam(r, "startAt")
	if err != nil {
		v.Custom("startAt", false, "Must be a valid date or timestamp")
	}

	endAt, err := validation.ParseTimeQueryParam(r, "endAt")
	if err != nil {
		v.Custom("endAt", false, "Must be a valid date or timestamp")
	}

	var startTime, endTime *time.Time
	if startAt != nil {
		startTime = &startAt.Time
	}
	if endAt != nil {
		endTime = &endAt.Time
	}

	if startTime != nil && endTime != nil && startTime.After(*endTime) {
		v.Custom("startAt", false, "Must be before endAt")
	}

	if v.HasErrors() {
		h.errorHandler.Handle(w, r, v.Errors())
		return
	}

	params := ports.PlanBurndownParams{
		PlanID:   planID,
		ViewerID: claims.UserID,
		StartAt:  startTime,
		EndAt:    endTime,
	}

	series, err := h.analyticsService.GetPlanBurndown(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, series)
}

// getClaims extracts and validates user claims from the request context
func (h *AnalyticsHandler) getClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
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
