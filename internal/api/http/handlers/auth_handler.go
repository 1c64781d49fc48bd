package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/classroom-service/internal/api/dto"
	"github.com/spec-kit/classroom-service/internal/service"
	apperrors "github.com/spec-kit/classroom-service/pkg/util"
)

// AuthHandler exposes signup, login and logout endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}

	profile, token, exp, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"id":    profile.ID,
				"name":  profile.Name,
				"email": profile.Email,
				"role":  profile.Role,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("Email and password are required")
	}

	profile, token, exp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"id":    profile.ID,
				"name":  profile.Name,
				"email": profile.Email,
				"role":  profile.Role,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Logout handles POST /auth/logout. The presented bearer token is revoked
// for the remainder of its lifetime.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return apperrors.NewUnauthorized("Unauthorized")
	}
	if err := h.auth.Logout(c.UserContext(), parts[1]); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
