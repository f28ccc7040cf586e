package service

import (
	"time"

	"github.com/AnthoniusHendriyanto/blog-service/internal/auth/domain"
	"go.uber.org/zap"
)

type settings struct {
	now         func() time.Time
	logger      *zap.Logger
	revocations domain.TokenRevocationStore
}

// Option configures optional collaborators shared by the services.
type Option func(*settings)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRevocationStore enables logout. Without it tokens only expire by time.
func WithRevocationStore(store domain.TokenRevocationStore) Option {
	return func(s *settings) {
		s.revocations = store
	}
}

func applyOptions(opts []Option) settings {
	s := settings{now: time.Now, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
