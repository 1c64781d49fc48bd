package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/classroom-service/internal/auth"
	"github.com/spec-kit/classroom-service/internal/domain"
	"github.com/spec-kit/classroom-service/internal/events"
	"github.com/spec-kit/classroom-service/internal/repository"
	apperrors "github.com/spec-kit/classroom-service/pkg/util"
)

// ContactService implements the contact message operations and their
// authorization policy.
type ContactService struct {
	contacts   repository.ContactRepository
	profiles   repository.ProfileRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ContactDependencies bundles collaborators for the contact service.
type ContactDependencies struct {
	ContactRepo repository.ContactRepository
	ProfileRepo repository.ProfileRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// ContactCreateInput describes contact creation payload. StudentID is only
// honored for staff callers.
type ContactCreateInput struct {
	StudentID string
	Subject   string
	Message   string
}

// ContactUpdateInput describes a partial status/notes update. Nil fields
// leave the stored values untouched.
type ContactUpdateInput struct {
	ID     string
	Status *domain.ContactStatus
	Notes  *string
}

// NewContactService constructs the service.
func NewContactService(deps ContactDependencies) *ContactService {
	return &ContactService{
		contacts:   deps.ContactRepo,
		profiles:   deps.ProfileRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// List returns contact messages visible to the caller, newest first. Staff
// see every message joined with the student's display fields; students see
// only their own rows with staff notes stripped. A failed role lookup falls
// back to the student-scoped view rather than erroring.
func (s *ContactService) List(ctx context.Context, callerID string) ([]domain.ContactWithStudent, error) {
	role, err := resolveRole(ctx, s.profiles, callerID)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("role lookup failed, defaulting to student view",
				zap.String("caller_id", callerID), zap.Error(err))
		}
		role = domain.RoleStudent
	}

	if role.IsStaff() {
		items, err := s.contacts.ListAll(ctx)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		return items, nil
	}

	msgs, err := s.contacts.ListByStudent(ctx, callerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	items := make([]domain.ContactWithStudent, 0, len(msgs))
	for _, msg := range msgs {
		msg.Notes = ""
		items = append(items, domain.ContactWithStudent{ContactMessage: msg})
	}
	return items, nil
}

// Create stores a new contact message. Staff callers address a named student
// and the message starts unread; student callers always author for
// themselves regardless of any supplied student id.
func (s *ContactService) Create(ctx context.Context, callerID string, input ContactCreateInput) (*domain.ContactMessage, error) {
	role, err := resolveRole(ctx, s.profiles, callerID)
	if err != nil {
		role = domain.RoleStudent
	}

	msg := &domain.ContactMessage{
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
		Status:  domain.ContactStatusUnread,
	}

	if role.IsStaff() {
		studentID := strings.TrimSpace(input.StudentID)
		if studentID == "" || msg.Subject == "" || msg.Message == "" {
			return nil, apperrors.NewValidationError("Student ID, subject and message are required")
		}
		teacherID := callerID
		msg.StudentID = studentID
		msg.TeacherID = &teacherID
	} else {
		if msg.Subject == "" || msg.Message == "" {
			return nil, apperrors.NewValidationError("Subject and message are required")
		}
		msg.StudentID = callerID
	}

	if err := s.contacts.Create(ctx, msg); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventContactCreated,
		ContactID: msg.ID,
		ActorID:   callerID,
		ActorRole: role,
		Payload: events.ContactCreatedPayload{
			StudentID: msg.StudentID,
			TeacherID: msg.TeacherID,
			Subject:   msg.Subject,
		},
	})
	return msg, nil
}

// UpdateStatusAndNotes applies a staff-only partial update. updated_at is
// refreshed even when neither field is supplied.
func (s *ContactService) UpdateStatusAndNotes(ctx context.Context, callerID string, input ContactUpdateInput) (*domain.ContactMessage, error) {
	role, err := resolveRole(ctx, s.profiles, callerID)
	if err != nil {
		role = domain.RoleStudent
	}
	if err := auth.RequireRole(role, "Only teachers can update contacts", domain.RoleTeacher, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if input.ID == "" {
		return nil, apperrors.NewValidationError("Contact id is required")
	}
	if input.Status != nil && !domain.ValidContactStatus(*input.Status) {
		return nil, apperrors.NewValidationError("Invalid status")
	}

	updated, err := s.contacts.UpdateStatusNotes(ctx, input.ID, repository.ContactUpdate{
		Status: input.Status,
		Notes:  input.Notes,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if input.Status != nil {
		s.publish(ctx, events.Event{
			Type:      events.EventContactStatusChanged,
			ContactID: updated.ID,
			ActorID:   callerID,
			ActorRole: role,
			Payload: events.ContactStatusChangedPayload{
				Status:       updated.Status,
				NotesUpdated: input.Notes != nil,
			},
		})
	}
	return updated, nil
}

func (s *ContactService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// resolveRole reads the caller's role from the profiles table. Token claims
// are never trusted for policy decisions.
func resolveRole(ctx context.Context, profiles repository.ProfileRepository, callerID string) (domain.Role, error) {
	profile, err := profiles.GetByID(ctx, callerID)
	if err != nil {
		return "", err
	}
	return profile.Role, nil
}
