package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HealthCheck pings one backing service.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]HealthCheck
	logger *zap.Logger
}

func NewHealthHandler(checks map[string]HealthCheck, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{checks: checks, logger: logger}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := fiber.Map{}
	healthy := true

	for name, check := range h.checks {
		if err := check(c.UserContext()); err != nil {
			h.logger.Warn("health check failed", zap.String("dependency", name), zap.Error(err))
			status[name] = "down"
			healthy = false
			continue
		}
		status[name] = "ok"
	}

	if !healthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "checks": status})
	}
	return c.JSON(fiber.Map{"status": "ok", "checks": status})
}
