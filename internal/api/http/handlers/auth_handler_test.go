package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/classroom-service/internal/api/dto"
	"github.com/spec-kit/classroom-service/internal/domain"
)

type authBody struct {
	Data struct {
		User struct {
			ID    string      `json:"id"`
			Email string      `json:"email"`
			Role  domain.Role `json:"role"`
		} `json:"user"`
		Auth dto.AuthResponse `json:"auth"`
	} `json:"data"`
}

func TestRegisterLoginLogoutFlow(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, fiber.MethodPost, "/auth/register", "", dto.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@school.test",
		Password: "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var registered authBody
	decodeBody(t, resp, &registered)
	assert.Equal(t, domain.RoleStudent, registered.Data.User.Role)
	assert.NotEmpty(t, registered.Data.Auth.Token)

	resp = env.request(t, fiber.MethodPost, "/auth/login", "", dto.LoginRequest{
		Email:    "alice@school.test",
		Password: "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var logged authBody
	decodeBody(t, resp, &logged)
	token := logged.Data.Auth.Token
	require.NotEmpty(t, token)

	// token works before logout
	resp = env.request(t, fiber.MethodGet, "/contacts", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.request(t, fiber.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var logout map[string]bool
	decodeBody(t, resp, &logout)
	assert.True(t, logout["success"])

	// revoked token is rejected afterwards
	resp = env.request(t, fiber.MethodGet, "/contacts", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Unauthorized", body["error"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, domain.RoleStudent, "Alice", "alice@school.test")

	resp := env.request(t, fiber.MethodPost, "/auth/login", "", dto.LoginRequest{
		Email:    "alice@school.test",
		Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Invalid email or password", body["error"])
}

func TestRegisterValidationOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, fiber.MethodPost, "/auth/register", "", dto.RegisterRequest{
		Email: "alice@school.test",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Name, email and password are required", body["error"])

	resp = env.request(t, fiber.MethodPost, "/auth/register", "", dto.RegisterRequest{
		Name: "Eve", Email: "eve@school.test", Password: "pw", Role: domain.RoleAdmin,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decodeBody(t, resp, &body)
	assert.Equal(t, "Role must be student or teacher", body["error"])
}
