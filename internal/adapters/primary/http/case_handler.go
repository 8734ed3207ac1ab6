package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	mw "github.com/mkaral/testplan-backend/internal/adapters/primary/http/middleware"
	"github.com/mkaral/testplan-backend/internal/adapters/primary/validation"
	"github.com/mkaral/testplan-backend/internal/auth"
	"github.com/mkaral/testplan-backend/internal/core/domain"
	"github.com/mkaral/testplan-backend/internal/core/ports"
)

const (
	maxCasesPerPage    = 100
	defaultEventsLimit = 50
	maxEventsLimit     = 200
)

// CaseHandler handles HTTP requests for functional cases
type CaseHandler struct {
	caseService  ports.CaseService
	eventService ports.EventService
	userLookup   ports.UserLookupService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewCaseHandler creates a new case handler. userLookup may be nil, in which
// case detail responses omit the resolved tester and assignee info.
func NewCaseHandler(
	caseService ports.CaseService,
	eventService ports.EventService,
	userLookup ports.UserLookupService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *CaseHandler {
	return &CaseHandler{
		caseService:  caseService,
		eventService: eventService,
		userLookup:   userLookup,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "case"),
	}
}

// Router sets up a new chi Router for case routes addressed by case ID.
// Creation and listing live under the plan routes instead.
func (h *CaseHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for all case endpoints.
func (h *CaseHandler) RegisterRoutes(r chi.Router) {
	r.Route("/{caseID}", func(r chi.Router) {
		r.Get("/", h.HandleGetCase)
		r.Patch("/result", h.HandleUpdateResult)
		r.Patch("/review", h.HandleUpdateReview)
		r.Patch("/assignee", h.HandleAssignCase)
		r.Get("/events", h.HandleListCaseEvents)
	})
}

// --- Request/Response DTOs ---

// CreateCaseRequest defines the expected JSON body for creating a case
type CreateCaseRequest struct {
	Title        string  `json:"title"`
	EvalWorkload float64 `json:"evalWorkload"`
	DeadlineAt   *string `json:"deadlineAt"`
	TesterID     *string `json:"testerId"`
}

// Validate validates the create case request
func (r *CreateCaseRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("title", r.Title).
		MaxLength("title", r.Title, domain.MaxCaseTitleLength)

	v.Custom("evalWorkload", r.EvalWorkload >= 0, "Must not be negative")

	if r.DeadlineAt != nil {
		if _, err := parseDateOrTime(*r.DeadlineAt); err != nil {
			v.Custom("deadlineAt", false, "Must be a valid date or timestamp")
		}
	}

	if r.TesterID != nil {
		v.UUID("testerId", *r.TesterID)
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// UpdateResultRequest defines the expected JSON body for result updates
type UpdateResultRequest struct {
	Result         string  `json:"result"`
	ActualWorkload float64 `json:"actualWorkload"`
}

// Validate validates the update result request
func (r *UpdateResultRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("result", r.Result).
		OneOf("result", r.Result, []string{"PENDING", "UNDERWAY", "PASSED", "FAILED", "CANCELED"})

	v.Custom("actualWorkload", r.ActualWorkload >= 0, "Must not be negative")

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// UpdateReviewRequest defines the expected JSON body for review updates
type UpdateReviewRequest struct {
	Status string `json:"status"`
}

// Validate validates the update review request
func (r *UpdateReviewRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("status", r.Status).
		OneOf("status", r.Status, []string{"PENDING", "UNDER_REVIEW", "PASSED", "FAILED"})

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// AssignCaseRequest defines the expected JSON body for assigning a case
type AssignCaseRequest struct {
	AssigneeID string `json:"assigneeId"`
}

// Validate validates the assign case request
func (r *AssignCaseRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("assigneeId", r.AssigneeID).
		UUID("assigneeId", r.AssigneeID)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// CaseDTO defines the JSON response for functional cases.
type CaseDTO struct {
	ID             string  `json:"id"`
	PlanID         string  `json:"planId"`
	Title          string  `json:"title"`
	TestResult     string  `json:"testResult"`
	ReviewStatus   string  `json:"reviewStatus"`
	AssigneeID     *string `json:"assigneeId"`
	TesterID       *string `json:"testerId"`
	DeadlineAt     *string `json:"deadlineAt"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      *string `json:"updatedAt"`
	HandledAt      *string `json:"handledAt"`
	EvalWorkload   float64 `json:"evalWorkload"`
	ActualWorkload float64 `json:"actualWorkload"`
	SavingWorkload float64 `json:"savingWorkload"`
}

func toCaseDTO(c *domain.FunctionalCase) CaseDTO {
	formatUUID := func(id *uuid.UUID) *string {
		if id == nil {
			return nil
		}
		value := id.String()
		return &value
	}
	formatTime := func(ts *time.Time) *string {
		if ts == nil {
			return nil
		}
		value := ts.Format(time.RFC3339)
		return &value
	}

	return CaseDTO{
		ID:             c.ID.String(),
		PlanID:         c.PlanID.String(),
		Title:          c.Title,
		TestResult:     string(c.TestResult),
		ReviewStatus:   string(c.ReviewStatus),
		AssigneeID:     formatUUID(c.AssigneeID),
		TesterID:       formatUUID(c.TesterID),
		DeadlineAt:     formatTime(c.DeadlineAt),
		CreatedAt:      c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      formatTime(c.UpdatedAt),
		HandledAt:      formatTime(c.HandledAt),
		EvalWorkload:   c.EvalWorkload,
		ActualWorkload: c.ActualWorkload,
		SavingWorkload: c.SavingWorkload,
	}
}

func toCaseDTOs(cases []*domain.FunctionalCase) []CaseDTO {
	response := make([]CaseDTO, 0, len(cases))
	for _, c := range cases {
		response = append(response, toCaseDTO(c))
	}
	return response
}

// CaseDetailDTO is the single-case response, with tester and assignee
// references resolved to display info where possible.
type CaseDetailDTO struct {
	CaseDTO
	Tester   *UserInfoDTO `json:"tester,omitempty"`
	Assignee *UserInfoDTO `json:"assignee,omitempty"`
}

func (h *CaseHandler) toCaseDetailDTO(r *http.Request, claims *auth.Claims, c *domain.FunctionalCase) CaseDetailDTO {
	dto := CaseDetailDTO{CaseDTO: toCaseDTO(c)}

	var userIDs []uuid.UUID
	if c.TesterID != nil {
		userIDs = append(userIDs, *c.TesterID)
	}
	if c.AssigneeID != nil {
		userIDs = append(userIDs, *c.AssigneeID)
	}

	users, err := buildUserInfoDTOMap(r.Context(), h.userLookup, claims.OrgID, userIDs)
	if err != nil {
		// Display info is best effort; the case itself is still returned.
		h.logger.Warn("failed to resolve user info", "case_id", c.ID, "error", err)
		return dto
	}

	if c.TesterID != nil {
		if info, ok := users[*c.TesterID]; ok {
			dto.Tester = &info
		}
	}
	if c.AssigneeID != nil {
		if info, ok := users[*c.AssigneeID]; ok {
			dto.Assignee = &info
		}
	}
	return dto
}

// --- Handlers ---

// HandleListCases handles GET /plans/{planID}/cases
func (h *CaseHandler) HandleListCases(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	planID, err := parsePlanID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	// Parse pagination
	pagination := validation.ParsePagination(r, maxCasesPerPage)

	// Parse optional filters
	testResult := validation.ParseStringQueryParam(r, "testResult")

	v := validation.NewValidator()

	var testerID *uuid.UUID
	if testerIDStr := r.URL.Query().Get("testerId"); testerIDStr != "" {
		parsedTesterID, err := uuid.Parse(testerIDStr)
		if err != nil {
			v.Custom("testerId", false, "Must be a valid UUID")
		} else {
			testerID = &parsedTesterID
		}
	}

	if v.HasErrors() {
		h.errorHandler.Handle(w, r, v.Errors())
		return
	}

	params := ports.ListCasesServiceParams{
		PlanID:     planID,
		ViewerID:   claims.UserID,
		Limit:      pagination.Limit + 1,
		Offset:     pagination.Offset,
		TestResult: testResult,
		TesterID:   testerID,
	}

	cases, err := h.caseService.ListCases(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	// Use simple pagination (without total count for performance)
	WritePaginatedSimple(w, toCaseDTOs(cases), pagination.Limit, pagination.Offset)
}

// HandleCreateCase handles POST /plans/{planID}/cases
func (h *CaseHandler) HandleCreateCase(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	planID, err := parsePlanID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[CreateCaseRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	var deadlineAt *time.Time
	if req.DeadlineAt != nil {
		parsed, err := parseDateOrTime(*req.DeadlineAt)
		if err != nil {
			h.errorHandler.Handle(w, r, err)
			return
		}
		deadlineAt = &parsed
	}

	var testerID *uuid.UUID
	if req.TesterID != nil {
		parsed, err := uuid.Parse(*req.TesterID)
		if err != nil {
			h.errorHandler.Handle(w, r, err)
			return
		}
		testerID = &parsed
	}

	params := ports.CreateCaseParams{
		PlanID:       planID,
		Title:        req.Title,
		EvalWorkload: req.EvalWorkload,
		DeadlineAt:   deadlineAt,
		TesterID:     testerID,
		ActorID:      claims.UserID,
	}

	created, err := h.caseService.CreateCase(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("case created",
		"case_id", created.ID,
		"plan_id", planID,
		"user_id", claims.UserID,
	)

	WriteCreated(w, toCaseDTO(created))
}

// HandleGetCase handles GET /cases/{caseID}
func (h *CaseHandler) HandleGetCase(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	caseID, err := h.parseCaseID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	fc, err := h.caseService.GetCase(r.Context(), caseID, claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, h.toCaseDetailDTO(r, claims, fc))
}

// HandleUpdateResult handles PATCH /cases/{caseID}/result
func (h *CaseHandler) HandleUpdateResult(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	caseID, err := h.parseCaseID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[UpdateResultRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.UpdateResultParams{
		CaseID:         caseID,
		Result:         domain.TestResult(req.Result),
		ActualWorkload: req.ActualWorkload,
		ActorID:        claims.UserID,
	}

	fc, err := h.caseService.UpdateResult(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("case result updated",
		"case_id", caseID,
		"new_result", req.Result,
		"user_id", claims.UserID,
	)

	WriteJSON(w, http.StatusOK, toCaseDTO(fc))
}

// HandleUpdateReview handles PATCH /cases/{caseID}/review
func (h *CaseHandler) HandleUpdateReview(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	caseID, err := h.parseCaseID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[UpdateReviewRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.UpdateReviewParams{
		CaseID:  caseID,
		Status:  domain.ReviewStatus(req.Status),
		ActorID: claims.UserID,
	}

	fc, err := h.caseService.UpdateReview(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("case review updated",
		"case_id", caseID,
		"new_status", req.Status,
		"user_id", claims.UserID,
	)

	WriteJSON(w, http.StatusOK, toCaseDTO(fc))
}

// HandleAssignCase handles PATCH /cases/{caseID}/assignee
func (h *CaseHandler) HandleAssignCase(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	caseID, err := h.parseCaseID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[AssignCaseRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	assigneeID, err := uuid.Parse(req.AssigneeID)
	if err != nil {
		// This shouldn't happen since we validated the UUID format
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.AssignCaseParams{
		CaseID:     caseID,
		AssigneeID: assigneeID,
		ActorID:    claims.UserID,
	}

	fc, err := h.caseService.AssignCase(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("case assigned",
		"case_id", caseID,
		"assignee_id", assigneeID,
		"user_id", claims.UserID,
	)

	WriteJSON(w, http.StatusOK, toCaseDTO(fc))
}

// CaseEventsResponse defines the JSON response for case activity.
type CaseEventsResponse struct {
	Data       []*domain.CaseEvent `json:"data"`
	NextCursor *int64              `json:"nextCursor,omitempty"`
}

// HandleListCaseEvents handles GET /cases/{caseID}/events
func (h *CaseHandler) HandleListCaseEvents(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	caseID, err := h.parseCaseID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	afterID, limit, err := h.parseEventQuery(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.ListCaseEventsParams{
		CaseID:   caseID,
		ViewerID: claims.UserID,
		AfterID:  afterID,
		Limit:    limit,
	}

	events, err := h.eventService.ListCaseEvents(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	var nextCursor *int64
	if len(events) > 0 {
		cursor := events[len(events)-1].ID
		nextCursor = &cursor
	}

	WriteJSON(w, http.StatusOK, CaseEventsResponse{
		Data:       events,
		NextCursor: nextCursor,
	})
}

// --- Helper methods ---

// getClaims extracts and validates user claims from the request context
func (h *CaseHandler) getClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
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

// parseCaseID extracts and validates the case ID from the URL
func (h *CaseHandler) parseCaseID(r *http.Request) (uuid.UUID, error) {
	caseIDStr := chi.URLParam(r, "caseID")
	caseID, err := uuid.Parse(caseIDStr)
	if err != nil {
		v := validation.NewValidator()
		v.Custom("caseID", false, "Invalid case ID")
		return uuid.Nil, v.Errors()
	}
	return caseID, nil
}

func (h *CaseHandler) parseEventQuery(r *http.Request) (int64, int, error) {
	v := validation.NewValidator()

	afterID := int64(0)
	if afterStr := r.URL.Query().Get("after"); afterStr != "" {
		parsed, err := strconv.ParseInt(afterStr, 10, 64)
		if err != nil || parsed < 0 {
			v.Custom("after", false, "after must be a positive integer")
		} else {
			afterID = parsed
		}
	}

	limit := defaultEventsLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			v.Custom("limit", false, "limit must be a positive integer")
		} else {
			limit = parsed
		}
	}

	if limit > maxEventsLimit {
		v.Custom("limit", false, "limit exceeds maximum")
	}

	if v.HasErrors() {
		return 0, 0, v.Errors()
	}

	return afterID, limit, nil
}
