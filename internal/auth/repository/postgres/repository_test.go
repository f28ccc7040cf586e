package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/AnthoniusHendriyanto/blog-service/internal/auth/domain"
	repo "github.com/AnthoniusHendriyanto/blog-service/internal/auth/repository/postgres"
	autherror "github.com/AnthoniusHendriyanto/blog-service/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetByUsername covers the GetByUsername repository method.
func TestGetByUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	columns := []string{"id", "username", "email", "password_hash", "is_active", "is_superuser", "is_verified", "created_at", "updated_at"}
	now := time.Now()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username, email").
			WithArgs("alice").
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(int64(1), "alice", "alice@example.com", "hash", true, false, false, now, now))

		user, err := r.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "hash", user.PasswordHash)
		assert.True(t, user.IsActive)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username, email").
			WithArgs("ghost").
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByUsername(ctx, "ghost")
		require.NoError(t, err) // Should return nil user, nil error
		assert.Nil(t, user)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username, email").
			WithArgs("alice").
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.GetByUsername(ctx, "alice")
		assert.ErrorIs(t, err, autherror.ErrStore)
	})

	t.Run("timeout", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username, email").
			WithArgs("alice").
			WillReturnError(context.DeadlineExceeded)

		_, err := r.GetByUsername(ctx, "alice")
		assert.ErrorIs(t, err, autherror.ErrStore)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCreate covers the Create repository method.
func TestCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ctx := context.Background()

	r := repo.NewPostgresRepository(mock)
	now := time.Now()
	newUser := func() *domain.User {
		return &domain.User{
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: "new-hash",
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}
	args := []interface{}{"alice", "alice@example.com", "new-hash", true, false, false, now, now}

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(args...).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))

		user := newUser()
		err := r.Create(ctx, user)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), user.ID)
	})

	t.Run("duplicate username", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(args...).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

		err := r.Create(ctx, newUser())
		assert.ErrorIs(t, err, autherror.ErrConflict)

		var ce *autherror.ConflictError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "username", ce.Field)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(args...).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		err := r.Create(ctx, newUser())

		var ce *autherror.ConflictError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "email", ce.Field)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(args...).
			WillReturnError(fmt.Errorf("db error"))

		err := r.Create(ctx, newUser())
		assert.ErrorIs(t, err, autherror.ErrStore)
		assert.NotErrorIs(t, err, autherror.ErrConflict)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
