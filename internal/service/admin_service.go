package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/classroom-service/internal/auth"
	"github.com/spec-kit/classroom-service/internal/domain"
	"github.com/spec-kit/classroom-service/internal/events"
	"github.com/spec-kit/classroom-service/internal/repository"
	apperrors "github.com/spec-kit/classroom-service/pkg/util"
)

const adminRequiredMessage = "Admin privileges required"

// AdminService implements the admin-only user directory operations. Unlike
// the contact surface, teacher is not a sufficient role here.
type AdminService struct {
	profiles   repository.ProfileRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// AdminDependencies bundles collaborators for the admin service.
type AdminDependencies struct {
	ProfileRepo repository.ProfileRepository
	Dispatcher  events.Dispatcher
	BcryptCost  int
}

// AdminCreateUserInput describes account creation payload. Metadata fields
// are optional; Role defaults to student.
type AdminCreateUserInput struct {
	Email         string
	Password      string
	Name          string
	Role          domain.Role
	StudentNumber string
}

// NewAdminService constructs the service.
func NewAdminService(deps AdminDependencies) *AdminService {
	return &AdminService{
		profiles:   deps.ProfileRepo,
		dispatcher: deps.Dispatcher,
		bcryptCost: deps.BcryptCost,
	}
}

// ListUsers returns every account, newest first.
func (s *AdminService) ListUsers(ctx context.Context, callerID string) ([]domain.Profile, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	users, err := s.profiles.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// CreateUser provisions a new account, usable immediately.
func (s *AdminService) CreateUser(ctx context.Context, callerID string, input AdminCreateUserInput) (*domain.Profile, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("Email and password are required")
	}

	role := input.Role
	if role == "" {
		role = domain.RoleStudent
	}
	if !domain.ValidRole(role) {
		return nil, apperrors.NewValidationError("Invalid role")
	}

	if _, err := s.profiles.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewValidationError("Email already registered")
	} else if err != pgx.ErrNoRows {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	profile := &domain.Profile{
		Name:          strings.TrimSpace(input.Name),
		Email:         email,
		PasswordHash:  hash,
		Role:          role,
		StudentNumber: input.StudentNumber,
	}
	if profile.Role == domain.RoleStudent && profile.StudentNumber == "" {
		profile.StudentNumber = GenerateStudentNumber()
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserCreated,
			ActorID:   callerID,
			ActorRole: domain.RoleAdmin,
			Timestamp: time.Now(),
			Payload: events.UserCreatedPayload{
				UserID: profile.ID,
				Email:  profile.Email,
				Role:   profile.Role,
			},
		})
	}
	return profile, nil
}

// ResetUserPassword overwrites the target account's password. There is no
// old-password check; this is an admin recovery tool.
func (s *AdminService) ResetUserPassword(ctx context.Context, callerID, userID, newPassword string) error {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return err
	}
	if userID == "" || newPassword == "" {
		return apperrors.NewValidationError("User id and new password are required")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := s.profiles.UpdatePassword(ctx, userID, hash); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user")
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *AdminService) requireAdmin(ctx context.Context, callerID string) error {
	role, err := resolveRole(ctx, s.profiles, callerID)
	if err != nil {
		role = domain.RoleStudent
	}
	return auth.RequireRole(role, adminRequiredMessage, domain.RoleAdmin)
}

// GenerateStudentNumber produces a short display identifier for student
// accounts.
func GenerateStudentNumber() string {
	return "STU-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
