package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/classroom-service/internal/api/dto"
	"github.com/spec-kit/classroom-service/internal/auth"
	"github.com/spec-kit/classroom-service/internal/domain"
	"github.com/spec-kit/classroom-service/internal/service"
	apperrors "github.com/spec-kit/classroom-service/pkg/util"
)

// AdminUsersHandler exposes the admin user-management endpoints.
type AdminUsersHandler struct {
	service *service.AdminService
}

// NewAdminUsersHandler constructs handler.
func NewAdminUsersHandler(adminService *service.AdminService) *AdminUsersHandler {
	return &AdminUsersHandler{service: adminService}
}

// ListUsers GET /admin/users.
func (h *AdminUsersHandler) ListUsers(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	users, err := h.service.ListUsers(c.UserContext(), principal.ID)
	if err != nil {
		return err
	}
	resp := make([]dto.AccountResponse, 0, len(users))
	for i := range users {
		resp = append(resp, accountResponse(&users[i]))
	}
	return c.JSON(resp)
}

// CreateUser POST /admin/create-user.
func (h *AdminUsersHandler) CreateUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}

	input := service.AdminCreateUserInput{
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Metadata != nil {
		input.Name = req.Metadata.Name
		input.Role = req.Metadata.Role
		input.StudentNumber = req.Metadata.StudentID
	}

	profile, err := h.service.CreateUser(c.UserContext(), principal.ID, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": accountResponse(profile)})
}

// ResetPassword POST /admin/reset-password.
func (h *AdminUsersHandler) ResetPassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}

	if err := h.service.ResetUserPassword(c.UserContext(), principal.ID, req.UserID, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

func accountResponse(profile *domain.Profile) dto.AccountResponse {
	return dto.AccountResponse{
		ID:        profile.ID,
		Email:     profile.Email,
		Name:      profile.Name,
		Role:      profile.Role,
		StudentID: profile.StudentNumber,
	}
}
