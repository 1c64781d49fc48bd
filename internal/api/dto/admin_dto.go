package dto

import "github.com/spec-kit/classroom-service/internal/domain"

// AccountResponse is the admin directory projection of an account.
type AccountResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	StudentID string      `json:"student_id"`
}

// CreateUserRequest payload for the admin create-user endpoint.
type CreateUserRequest struct {
	Email    string              `json:"email"`
	Password string              `json:"password"`
	Metadata *CreateUserMetadata `json:"metadata,omitempty"`
}

// CreateUserMetadata carries optional account fields.
type CreateUserMetadata struct {
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	StudentID string      `json:"student_id"`
}

// ResetPasswordRequest payload for the admin password overwrite.
type ResetPasswordRequest struct {
	UserID      string `json:"userId"`
	NewPassword string `json:"newPassword"`
}
