package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler, p *PostHandler, health *HealthHandler) {
	requireAuth := RequireAuth(h.userService, h.logger)

	api := app.Group("/api/v1")
	api.Get("/healthz", health.Check)
	api.Post("/token", h.Login)
	api.Post("/auth/register", h.Register)
	api.Get("/users/me", requireAuth, h.Me)
	api.Delete("/session", requireAuth, h.Logout)

	api.Get("/blogs", p.List)
	api.Get("/blog/:id", p.Get)
	api.Post("/blog/create", requireAuth, p.Create)
	api.Put("/blog/update/:id", requireAuth, p.Update)
}
