package dto

import (
	"time"

	"github.com/spec-kit/classroom-service/internal/domain"
)

// CreateContactRequest payload. StudentID is required for staff callers and
// ignored for students.
type CreateContactRequest struct {
	StudentID string `json:"student_id"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

// UpdateContactRequest payload. Empty status/notes mean "leave unchanged";
// notes cannot be cleared, only overwritten.
type UpdateContactRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// ContactResponse represents a contact message. Staff-only fields are
// omitted when empty.
type ContactResponse struct {
	ID            string               `json:"id"`
	StudentID     string               `json:"student_id"`
	TeacherID     *string              `json:"teacher_id,omitempty"`
	Subject       string               `json:"subject"`
	Message       string               `json:"message"`
	Status        domain.ContactStatus `json:"status"`
	Notes         string               `json:"notes,omitempty"`
	StudentName   string               `json:"student_name,omitempty"`
	StudentNumber string               `json:"student_number,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// ContactListResponse envelope for GET /contacts.
type ContactListResponse struct {
	Success bool              `json:"success"`
	Data    []ContactResponse `json:"data"`
}

// ContactEnvelope envelope for single-contact responses.
type ContactEnvelope struct {
	Success bool            `json:"success"`
	Data    ContactResponse `json:"data"`
}
