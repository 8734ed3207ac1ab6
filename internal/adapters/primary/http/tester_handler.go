package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	mw "github.com/mkaral/testplan-backend/internal/adapters/primary/http/middleware"
	"github.com/mkaral/testplan-backend/internal/auth"
	"github.com/mkaral/testplan-backend/internal/core/domain"
	"github.com/mkaral/testplan-backend/internal/core/ports"
)

// TesterDTO represents a user that cases can be routed to.
type TesterDTO struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// TesterHandler handles HTTP requests for listing testers.
type TesterHandler struct {
	testerService ports.TesterService
	errorHandler  *ErrorHandler
	logger        *slog.Logger
}

// NewTesterHandler creates a new TesterHandler.
func NewTesterHandler(
	testerService ports.TesterService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *TesterHandler {
	return &TesterHandler{
		testerService: testerService,
		errorHandler:  errorHandler,
		logger:        logger.With("handler", "testers"),
	}
}

// RegisterRoutes registers the /testers routes.
func (h *TesterHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListTesters)
}

// HandleListTesters handles GET /testers.
func (h *TesterHandler) HandleListTesters(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.getClaims(w, r)
	if !ok {
		return
	}

	users, err := h.testerService.ListTesters(r.Context(), claims.UserID, claims.OrgID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, mapTesters(users))
}

func mapTesters(users []*domain.User) []TesterDTO {
	testers := make([]TesterDTO, 0, len(users))
	for _, user := range users {
		testers = append(testers, TesterDTO{
			ID:       user.ID.String(),
			FullName: user.FullName,
			Email:    user.Email,
		})
	}
	return testers
}

// getClaims extracts and validates user claims from the request context.
func (h *TesterHandler) getClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
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
