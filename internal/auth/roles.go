package auth

import (
	"github.com/spec-kit/classroom-service/internal/domain"
	apperrors "github.com/spec-kit/classroom-service/pkg/util"
)

// RequireRole is the single policy gate shared by every role-checked
// operation. The message names the privilege the endpoint requires, since
// the contact and admin surfaces deliberately accept different role sets.
func RequireRole(role domain.Role, message string, allowed ...domain.Role) error {
	for _, candidate := range allowed {
		if role == candidate {
			return nil
		}
	}
	return apperrors.NewForbidden(message)
}
