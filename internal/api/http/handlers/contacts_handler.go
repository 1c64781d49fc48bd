package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/classroom-service/internal/api/dto"
	"github.com/spec-kit/classroom-service/internal/auth"
	"github.com/spec-kit/classroom-service/internal/domain"
	"github.com/spec-kit/classroom-service/internal/service"
	apperrors "github.com/spec-kit/classroom-service/pkg/util"
)

// ContactsHandler manages the contact message endpoints.
type ContactsHandler struct {
	service *service.ContactService
}

// NewContactsHandler constructs handler.
func NewContactsHandler(contactService *service.ContactService) *ContactsHandler {
	return &ContactsHandler{service: contactService}
}

// List GET /contacts.
func (h *ContactsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	items, err := h.service.List(c.UserContext(), principal.ID)
	if err != nil {
		return err
	}
	data := make([]dto.ContactResponse, 0, len(items))
	for i := range items {
		data = append(data, contactWithStudentResponse(&items[i]))
	}
	return c.JSON(dto.ContactListResponse{Success: true, Data: data})
}

// Create POST /contacts.
func (h *ContactsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	var req dto.CreateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}

	msg, err := h.service.Create(c.UserContext(), principal.ID, service.ContactCreateInput{
		StudentID: req.StudentID,
		Subject:   req.Subject,
		Message:   req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.ContactEnvelope{Success: true, Data: contactResponse(msg)})
}

// Update PUT /contacts.
func (h *ContactsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	var req dto.UpdateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}

	input := service.ContactUpdateInput{ID: req.ID}
	if req.Status != "" {
		status := domain.ContactStatus(req.Status)
		input.Status = &status
	}
	if req.Notes != "" {
		notes := req.Notes
		input.Notes = &notes
	}

	updated, err := h.service.UpdateStatusAndNotes(c.UserContext(), principal.ID, input)
	if err != nil {
		return err
	}
	return c.JSON(dto.ContactEnvelope{Success: true, Data: contactResponse(updated)})
}

func contactResponse(msg *domain.ContactMessage) dto.ContactResponse {
	return dto.ContactResponse{
		ID:        msg.ID,
		StudentID: msg.StudentID,
		TeacherID: msg.TeacherID,
		Subject:   msg.Subject,
		Message:   msg.Message,
		Status:    msg.Status,
		Notes:     msg.Notes,
		CreatedAt: msg.CreatedAt,
		UpdatedAt: msg.UpdatedAt,
	}
}

func contactWithStudentResponse(item *domain.ContactWithStudent) dto.ContactResponse {
	resp := contactResponse(&item.ContactMessage)
	resp.StudentName = item.StudentName
	resp.StudentNumber = item.StudentNumber
	return resp
}
