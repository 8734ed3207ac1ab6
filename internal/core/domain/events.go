package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType defines the type of real-time event.
type EventType string

const (
	EventCaseCreated   EventType = "CASE_CREATED"
	EventResultUpdated EventType = "RESULT_UPDATED"
	EventReviewUpdated EventType = "REVIEW_UPDATED"
	EventCaseAssigned  EventType = "CASE_ASSIGNED"
)

// Event is the payload sent over WebSocket.
type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload"`
	PlanID  uuid.UUID   `json:"planId"` // Used for routing to specific plan "rooms"
}

// CaseEvent is a persisted activity entry on a functional case.
type CaseEvent struct {
	ID        int64           `json:"id"`
	CaseID    uuid.UUID       `json:"caseId"`
	PlanID    uuid.UUID       `json:"planId"`
	Type      EventType       `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	ActorID   uuid.UUID       `json:"actorId"`
	CreatedAt time.Time       `json:"createdAt"`
}
