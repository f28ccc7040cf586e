package postgres

import (
	"context"
	"errors"

	"github.com/AnthoniusHendriyanto/blog-service/internal/auth/domain"
	autherror "github.com/AnthoniusHendriyanto/blog-service/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// DBTX is the subset of *pgxpool.Pool the repositories need.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DBTX
}

func NewPostgresRepository(db DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByUsername returns (nil, nil) when no user matches.
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, email, password_hash, is_active, is_superuser, is_verified, created_at, updated_at
		FROM users
		WHERE username = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, username)

	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.IsActive, &user.IsSuperuser, &user.IsVerified, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, autherror.NewStoreError("get user by username", err)
	}

	return &user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, is_active, is_superuser, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id;
	`
	err := r.db.QueryRow(ctx, query,
		user.Username, user.Email, user.PasswordHash,
		user.IsActive, user.IsSuperuser, user.IsVerified,
		user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		if field, ok := conflictField(err); ok {
			return autherror.NewConflictError(field)
		}
		return autherror.NewStoreError("create user", err)
	}

	return nil
}

// conflictField maps a unique violation to the offending column.
func conflictField(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return "", false
	}

	switch pgErr.ConstraintName {
	case "users_email_key":
		return "email", true
	default:
		return "username", true
	}
}
