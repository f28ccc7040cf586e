package handler

import (
	"github.com/AnthoniusHendriyanto/blog-service/internal/auth/dto"
	"github.com/AnthoniusHendriyanto/blog-service/internal/auth/service"
	autherror "github.com/AnthoniusHendriyanto/blog-service/internal/errors"
	"github.com/AnthoniusHendriyanto/blog-service/pkg/constant"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PostHandler struct {
	postService *service.PostService
	logger      *zap.Logger
}

func NewPostHandler(postService *service.PostService, logger *zap.Logger) *PostHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostHandler{postService: postService, logger: logger}
}

func (h *PostHandler) List(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", constant.DefaultPostLimit)

	posts, err := h.postService.List(c.UserContext(), skip, limit)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(dto.NewPostOutputs(posts))
}

func (h *PostHandler) Get(c *fiber.Ctx) error {
	id, err := postID(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	post, err := h.postService.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(dto.NewPostOutput(post))
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	user, ok := identity(c)
	if !ok {
		return writeError(c, h.logger, autherror.ErrUnauthorized)
	}

	var input dto.PostInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c)
	}

	post, err := h.postService.Create(c.UserContext(), user, input)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewPostOutput(post))
}

func (h *PostHandler) Update(c *fiber.Ctx) error {
	user, ok := identity(c)
	if !ok {
		return writeError(c, h.logger, autherror.ErrUnauthorized)
	}

	id, err := postID(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	var input dto.PostInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c)
	}

	post, err := h.postService.Update(c.UserContext(), user, id, input)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(dto.NewPostOutput(post))
}

func postID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, autherror.NewValidationError("id", "must be a positive integer")
	}
	return int64(id), nil
}
