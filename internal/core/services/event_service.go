package services

import (
	"context"

	"github.com/mkaral/testplan-backend/internal/core/domain"
	"github.com/mkaral/testplan-backend/internal/core/ports"
)

// EventService handles case activity queries.
type EventService struct {
	eventRepo ports.CaseEventRepository
	caseSvc   ports.CaseService
}

var _ ports.EventService = (*EventService)(nil)

// NewEventService creates a new event service.
func NewEventService(
	eventRepo ports.CaseEventRepository,
	caseSvc ports.CaseService,
) ports.EventService {
	return &EventService{
		eventRepo: eventRepo,
		caseSvc:   caseSvc,
	}
}

// ListCaseEvents retrieves activity for a case after the given cursor.
func (s *EventService) ListCaseEvents(ctx context.Context, params ports.ListCaseEventsParams) ([]*domain.CaseEvent, error) {
	// Reuse case service authorization logic.
	if _, err := s.caseSvc.GetCase(ctx, params.CaseID, params.ViewerID); err != nil {
		return nil, err
	}

	return s.eventRepo.ListByCaseID(ctx, params.CaseID, params.AfterID, params.Limit)
}
