package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/classroom-service/internal/api/http/handlers"
	"github.com/spec-kit/classroom-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Contacts       *handlers.ContactsHandler
	AdminUsers     *handlers.AdminUsersHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Role checks live in the services, not in
// the router: the contact surface admits students, the admin surface does
// not, and both resolve roles from the profiles table.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	contacts := app.Group("/contacts", cfg.AuthMiddleware.Handle)
	contacts.Get("", cfg.Contacts.List)
	contacts.Post("", cfg.Contacts.Create)
	contacts.Put("", cfg.Contacts.Update)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle)
	admin.Get("/users", cfg.AdminUsers.ListUsers)
	admin.Post("/create-user", cfg.AdminUsers.CreateUser)
	admin.Post("/reset-password", cfg.AdminUsers.ResetPassword)
}
