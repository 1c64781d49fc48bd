package domain

import "time"

// ContactStatus enumerates lifecycle states for contact messages.
// Transitions are intentionally unordered: staff may set any status at any
// time, matching how the inbox UI drives them.
type ContactStatus string

const (
	ContactStatusUnread     ContactStatus = "unread"
	ContactStatusRead       ContactStatus = "read"
	ContactStatusInProgress ContactStatus = "in-progress"
	ContactStatusResolved   ContactStatus = "resolved"
)

// ValidContactStatus reports whether the value is a known status.
func ValidContactStatus(s ContactStatus) bool {
	switch s {
	case ContactStatusUnread, ContactStatusRead, ContactStatusInProgress, ContactStatusResolved:
		return true
	}
	return false
}

// ContactMessage is a unit of communication between a student and staff.
// StudentID is the author for student-created messages and the recipient for
// teacher-created ones. Notes are staff-only and never shown to students.
type ContactMessage struct {
	ID        string
	StudentID string
	TeacherID *string
	Subject   string
	Message   string
	Status    ContactStatus
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContactWithStudent is a contact message joined with display fields of the
// referenced student, used for the staff inbox view.
type ContactWithStudent struct {
	ContactMessage
	StudentName   string
	StudentNumber string
}
