package events

import (
	"time"

	"github.com/spec-kit/classroom-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventContactCreated       EventType = "contact_created"
	EventContactStatusChanged EventType = "contact_status_changed"
	EventUserCreated          EventType = "user_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ContactID string      `json:"contact_id,omitempty"`
	ActorID   string      `json:"actor_id"`
	ActorRole domain.Role `json:"actor_role"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ContactCreatedPayload payload.
type ContactCreatedPayload struct {
	StudentID string  `json:"student_id"`
	TeacherID *string `json:"teacher_id,omitempty"`
	Subject   string  `json:"subject"`
}

// ContactStatusChangedPayload payload.
type ContactStatusChangedPayload struct {
	Status       domain.ContactStatus `json:"status"`
	NotesUpdated bool                 `json:"notes_updated"`
}

// UserCreatedPayload payload.
type UserCreatedPayload struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}
