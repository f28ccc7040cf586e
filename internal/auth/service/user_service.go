package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AnthoniusHendriyanto/blog-service/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/blog-service/internal/auth/dto"
	autherror "github.com/AnthoniusHendriyanto/blog-service/internal/errors"
	"github.com/AnthoniusHendriyanto/blog-service/pkg/constant"
	"go.uber.org/zap"
)

// UserService is the auth gateway: registration, login and per-request
// authentication.
type UserService struct {
	repo         domain.UserRepository
	directory    *UserDirectory
	tokenService TokenGenerator
	hasher       *PasswordHasher
	revocations  domain.TokenRevocationStore
	logger       *zap.Logger
	now          func() time.Time
}

func NewUserService(repo domain.UserRepository, tokenService TokenGenerator, hasher *PasswordHasher, opts ...Option) *UserService {
	s := applyOptions(opts)

	return &UserService{
		repo:         repo,
		directory:    NewUserDirectory(repo),
		tokenService: tokenService,
		hasher:       hasher,
		revocations:  s.revocations,
		logger:       s.logger,
		now:          s.now,
	}
}

func (s *UserService) RevocationEnabled() bool {
	return s.revocations != nil
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*dto.RegisterOutput, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := checkPassword(input.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := s.hasher.Hash(ctx, input.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, autherror.ErrConflict) {
			s.logger.Info("registration conflict", zap.String("username", input.Username), zap.Error(err))
			return nil, err
		}
		err = asStoreError("create user", err)
		s.logger.Error("failed to create user", zap.String("username", input.Username), zap.Error(err))
		return nil, err
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))

	return &dto.RegisterOutput{
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// Login never tells an unknown username apart from a wrong password.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	input.Username = strings.TrimSpace(input.Username)

	user, err := s.directory.FindByUsername(ctx, input.Username)
	if errors.Is(err, autherror.ErrNotFound) {
		if err := s.hasher.VerifyDummy(ctx, input.Password); err != nil {
			return nil, err
		}
		s.logger.Info("login failed", zap.String("username", input.Username))
		return nil, autherror.ErrInvalidCredentials
	}
	if err != nil {
		s.logger.Error("failed to look up user for login", zap.String("username", input.Username), zap.Error(err))
		return nil, err
	}

	ok, err := s.hasher.Verify(ctx, input.Password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Info("login failed", zap.String("username", input.Username))
		return nil, autherror.ErrInvalidCredentials
	}

	expiry := s.tokenService.GetAccessTokenExpiry()

	accessToken, err := s.tokenService.Issue(user.Username, expiry)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   constant.DefaultTokenType,
		ExpiresIn:   int(expiry.Seconds()),
	}, nil
}

// Authenticate resolves a bearer token to the current identity.
func (s *UserService) Authenticate(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := s.tokenService.Validate(tokenString)
	if err != nil {
		s.logger.Debug("token rejected", zap.Error(err))
		return nil, autherror.ErrUnauthorized
	}

	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}

	user, err := s.directory.FindByUsername(ctx, claims.Subject)
	if errors.Is(err, autherror.ErrNotFound) {
		s.logger.Debug("token subject no longer exists", zap.String("username", claims.Subject))
		return nil, autherror.ErrUnauthorized
	}
	if err != nil {
		s.logger.Error("failed to resolve token subject", zap.String("username", claims.Subject), zap.Error(err))
		return nil, err
	}

	return user, nil
}

// Logout revokes the token until its natural expiry.
func (s *UserService) Logout(ctx context.Context, tokenString string) error {
	if s.revocations == nil {
		return autherror.ErrRevocationDisabled
	}

	claims, err := s.tokenService.Validate(tokenString)
	if err != nil || claims.ID == "" || claims.ExpiresAt == nil {
		return autherror.ErrUnauthorized
	}

	if err := s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		err = asStoreError("revoke token", err)
		s.logger.Error("failed to revoke token", zap.String("username", claims.Subject), zap.Error(err))
		return err
	}

	s.logger.Info("token revoked", zap.String("username", claims.Subject))
	return nil
}

func (s *UserService) checkRevoked(ctx context.Context, claims *Claims) error {
	if s.revocations == nil || claims.ID == "" {
		return nil
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		err = asStoreError("check token revocation", err)
		s.logger.Error("failed to check token revocation", zap.Error(err))
		return err
	}
	if revoked {
		return autherror.ErrUnauthorized
	}

	return nil
}

// checkPassword applies the length rules to the password as given. The
// password itself is never trimmed.
func checkPassword(password string) error {
	switch {
	case strings.TrimSpace(password) == "":
		return autherror.NewValidationError("password", "must not be blank")
	case utf8.RuneCountInString(password) < constant.MinPasswordLength:
		return autherror.NewValidationError("password",
			fmt.Sprintf("must be at least %d characters", constant.MinPasswordLength))
	case len(password) > constant.MaxPasswordBytes:
		return autherror.NewValidationError("password",
			fmt.Sprintf("must be at most %d bytes", constant.MaxPasswordBytes))
	}
	return nil
}
