package handler

import (
	"github.com/AnthoniusHendriyanto/blog-service/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/blog-service/internal/auth/dto"
	"github.com/AnthoniusHendriyanto/blog-service/internal/auth/service"
	autherror "github.com/AnthoniusHendriyanto/blog-service/internal/errors"
	"github.com/AnthoniusHendriyanto/blog-service/pkg/constant"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	userService *service.UserService
	logger      *zap.Logger
}

func NewAuthHandler(userService *service.UserService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{userService: userService, logger: logger}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c)
	}

	out, err := h.userService.Register(c.UserContext(), input)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login accepts the credentials as JSON or as an OAuth2 password form.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c)
	}

	token, err := h.userService.Login(c.UserContext(), input)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(fiber.StatusOK).JSON(token)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := identity(c)
	if !ok {
		return writeError(c, h.logger, autherror.ErrUnauthorized)
	}

	return c.JSON(dto.NewUserOutput(user))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token, _ := c.Locals(constant.LocalsTokenKey).(string)

	if err := h.userService.Logout(c.UserContext(), token); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func identity(c *fiber.Ctx) (*domain.User, bool) {
	user, ok := c.Locals(constant.LocalsIdentityKey).(*domain.User)
	return user, ok && user != nil
}
