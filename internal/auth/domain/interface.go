package domain

//go:generate mockgen -destination=../../mocks/mock_repository.go -package=mocks github.com/AnthoniusHendriyanto/blog-service/internal/auth/domain UserRepository,PostRepository,TokenRevocationStore

import (
	"context"
	"time"
)

// UserRepository returns (nil, nil) from GetByUsername when no user matches.
// Create assigns user.ID and reports unique violations as a ConflictError.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, user *User) error
}

type PostRepository interface {
	List(ctx context.Context, offset, limit int) ([]Post, error)
	GetByID(ctx context.Context, id int64) (*Post, error)
	Create(ctx context.Context, post *Post) error
	Update(ctx context.Context, post *Post) error
}

// TokenRevocationStore remembers revoked token IDs until their expiry.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
