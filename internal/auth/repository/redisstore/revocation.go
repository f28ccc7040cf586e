// Package redisstore keeps revoked access token IDs in Redis.
package redisstore

import (
	"context"
	"time"

	autherror "github.com/AnthoniusHendriyanto/blog-service/internal/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "revoked_token:"

type RevocationStore struct {
	rdb redis.Cmdable
	now func() time.Time
}

func NewRevocationStore(rdb redis.Cmdable) *RevocationStore {
	return &RevocationStore{rdb: rdb, now: time.Now}
}

func key(tokenID string) string {
	return keyPrefix + tokenID
}

// Revoke marks tokenID as revoked. The entry expires together with the token,
// so a token already past expiresAt is not stored at all.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}

	if err := s.rdb.Set(ctx, key(tokenID), 1, ttl).Err(); err != nil {
		return autherror.NewStoreError("revoke token", err)
	}
	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key(tokenID)).Result()
	if err != nil {
		return false, autherror.NewStoreError("check token revocation", err)
	}
	return n > 0, nil
}
