package domain

import "time"

// Role enumerates account privilege levels.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// IsStaff reports whether the role may act on any student's contacts.
func (r Role) IsStaff() bool {
	return r == RoleTeacher || r == RoleAdmin
}

// ValidRole reports whether the value is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// Profile is the account record backing every authenticated identity.
type Profile struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  string
	Role          Role
	StudentNumber string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
