package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/AnthoniusHendriyanto/blog-service/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/blog-service/internal/auth/dto"
	autherror "github.com/AnthoniusHendriyanto/blog-service/internal/errors"
	"github.com/AnthoniusHendriyanto/blog-service/pkg/constant"
	"go.uber.org/zap"
)

type PostService struct {
	repo   domain.PostRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewPostService(repo domain.PostRepository, opts ...Option) *PostService {
	s := applyOptions(opts)

	return &PostService{
		repo:   repo,
		logger: s.logger,
		now:    s.now,
	}
}

// List pages through posts. A non-positive limit uses DefaultPostLimit and
// larger limits are capped at MaxPostLimit.
func (s *PostService) List(ctx context.Context, skip, limit int) ([]domain.Post, error) {
	if skip < 0 {
		return nil, autherror.NewValidationError("skip", "must not be negative")
	}
	if limit <= 0 {
		limit = constant.DefaultPostLimit
	}
	if limit > constant.MaxPostLimit {
		limit = constant.MaxPostLimit
	}

	posts, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		err = asStoreError("list posts", err)
		s.logger.Error("failed to list posts", zap.Int("skip", skip), zap.Int("limit", limit), zap.Error(err))
		return nil, err
	}

	return posts, nil
}

func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		err = asStoreError("get post", err)
		s.logger.Error("failed to get post", zap.Int64("post_id", id), zap.Error(err))
		return nil, err
	}
	if post == nil {
		return nil, autherror.ErrNotFound
	}

	return post, nil
}

func (s *PostService) Create(ctx context.Context, author *domain.User, input dto.PostInput) (*domain.Post, error) {
	if author == nil {
		return nil, autherror.ErrUnauthorized
	}

	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := s.now()
	post := &domain.Post{
		Name:      input.Name,
		Text:      input.Text,
		AuthorID:  author.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		err = asStoreError("create post", err)
		s.logger.Error("failed to create post", zap.Int64("author_id", author.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("post created", zap.Int64("post_id", post.ID), zap.Int64("author_id", author.ID))
	return post, nil
}

// Update rewrites name and text. Only the author may update a post.
func (s *PostService) Update(ctx context.Context, identity *domain.User, id int64, input dto.PostInput) (*domain.Post, error) {
	if identity == nil {
		return nil, autherror.ErrUnauthorized
	}

	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !AuthorizeMutation(identity, post.AuthorID).Allowed() {
		s.logger.Info("post update denied",
			zap.Int64("post_id", id),
			zap.Int64("author_id", post.AuthorID),
			zap.Int64("user_id", identity.ID))
		return nil, autherror.ErrForbidden
	}

	post.Name = input.Name
	post.Text = input.Text
	post.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, post); err != nil {
		if errors.Is(err, autherror.ErrNotFound) {
			return nil, err
		}
		err = asStoreError("update post", err)
		s.logger.Error("failed to update post", zap.Int64("post_id", id), zap.Error(err))
		return nil, err
	}

	return post, nil
}
