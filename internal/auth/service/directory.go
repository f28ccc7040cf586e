package service

import (
	"context"
	"errors"

	"github.com/AnthoniusHendriyanto/blog-service/internal/auth/domain"
	autherror "github.com/AnthoniusHendriyanto/blog-service/internal/errors"
)

// UserDirectory resolves identities by username.
type UserDirectory struct {
	repo domain.UserRepository
}

func NewUserDirectory(repo domain.UserRepository) *UserDirectory {
	return &UserDirectory{repo: repo}
}

// FindByUsername returns ErrNotFound for an unknown username and a StoreError
// for any repository failure.
func (d *UserDirectory) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := d.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, asStoreError("find user by username", err)
	}
	if user == nil {
		return nil, autherror.ErrNotFound
	}
	return user, nil
}

func asStoreError(op string, err error) error {
	if errors.Is(err, autherror.ErrStore) {
		return err
	}
	return autherror.NewStoreError(op, err)
}
