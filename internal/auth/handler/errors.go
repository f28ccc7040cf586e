package handler

import (
	"errors"

	autherror "github.com/AnthoniusHendriyanto/blog-service/internal/errors"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// writeError is the only place service errors become HTTP responses.
func writeError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	var ve *autherror.ValidationError
	var ce *autherror.ConflictError

	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": ve.Message,
			"field": ve.Field,
		})
	case errors.As(err, &ce):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": ce.Error(),
			"field": ce.Field,
		})
	case errors.Is(err, autherror.ErrInvalidCredentials), errors.Is(err, autherror.ErrUnauthorized):
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": autherror.ErrUnauthorized.Error(),
		})
	case errors.Is(err, autherror.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": autherror.ErrForbidden.Error(),
		})
	case errors.Is(err, autherror.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": autherror.ErrNotFound.Error(),
		})
	case errors.Is(err, autherror.ErrRevocationDisabled):
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{
			"error": autherror.ErrRevocationDisabled.Error(),
		})
	}

	logger.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}

func badRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "invalid input",
	})
}
