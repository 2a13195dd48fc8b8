package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventProjectCreated              EventType = "project_created"
	EventProjectDeleted              EventType = "project_deleted"
	EventServiceOrderCreated         EventType = "service_order_created"
	EventServiceOrderApprovalToggled EventType = "service_order_approval_toggled"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  int64       `json:"entity_id"`
	ActorID   int64       `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ProjectCreatedPayload payload.
type ProjectCreatedPayload struct {
	Name string `json:"name"`
}

// ProjectDeletedPayload payload.
type ProjectDeletedPayload struct {
	Name string `json:"name"`
}

// ServiceOrderCreatedPayload payload.
type ServiceOrderCreatedPayload struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	ProjectID int64  `json:"project_id"`
}

// ServiceOrderApprovalToggledPayload payload.
type ServiceOrderApprovalToggledPayload struct {
	IsApproved bool `json:"is_approved"`
}
