package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/AnthoniusHendriyanto/blog-service/internal/auth/service"
	autherror "github.com/AnthoniusHendriyanto/blog-service/internal/errors"
	"github.com/AnthoniusHendriyanto/blog-service/pkg/constant"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"go.uber.org/zap"
)

// RequireAuth resolves the bearer token to a user and stores both in Locals.
func RequireAuth(userService *service.UserService, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return writeError(c, logger, autherror.ErrUnauthorized)
		}

		user, err := userService.Authenticate(c.UserContext(), token)
		if err != nil {
			return writeError(c, logger, err)
		}

		c.Locals(constant.LocalsIdentityKey, user)
		c.Locals(constant.LocalsTokenKey, token)
		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// RequestTimeout bounds the user context every handler passes downstream.
// Handlers answer through writeError, so a store deadline still surfaces as
// a 500 rather than fiber's 408.
func RequestTimeout(d time.Duration) fiber.Handler {
	next := func(c *fiber.Ctx) error { return c.Next() }
	if d <= 0 {
		return next
	}
	return timeout.NewWithContext(next, d)
}

func RequestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)))

		return err
	}
}
