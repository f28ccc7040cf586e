package postgres

import (
	"context"
	"errors"

	"github.com/AnthoniusHendriyanto/blog-service/internal/auth/domain"
	autherror "github.com/AnthoniusHendriyanto/blog-service/internal/errors"
	"github.com/jackc/pgx/v5"
)

type PostRepository struct {
	db DBTX
}

func NewPostRepository(db DBTX) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) List(ctx context.Context, offset, limit int) ([]domain.Post, error) {
	query := `
		SELECT id, name, text, author_id, created_at, updated_at
		FROM posts
		ORDER BY id
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, autherror.NewStoreError("list posts", err)
	}
	defer rows.Close()

	posts := make([]domain.Post, 0, limit)
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.Name, &p.Text, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, autherror.NewStoreError("scan post", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, autherror.NewStoreError("list posts", err)
	}

	return posts, nil
}

// GetByID returns (nil, nil) when the post does not exist.
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	query := `
		SELECT id, name, text, author_id, created_at, updated_at
		FROM posts
		WHERE id = $1;
	`
	var p domain.Post
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Text, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, autherror.NewStoreError("get post", err)
	}

	return &p, nil
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (name, text, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`
	err := r.db.QueryRow(ctx, query, post.Name, post.Text, post.AuthorID, post.CreatedAt, post.UpdatedAt).Scan(&post.ID)
	if err != nil {
		return autherror.NewStoreError("create post", err)
	}

	return nil
}

// Update matches on id and author_id. No affected row reports ErrNotFound.
func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	query := `
		UPDATE posts
		SET name = $1, text = $2, updated_at = $3
		WHERE id = $4 AND author_id = $5;
	`
	tag, err := r.db.Exec(ctx, query, post.Name, post.Text, post.UpdatedAt, post.ID, post.AuthorID)
	if err != nil {
		return autherror.NewStoreError("update post", err)
	}
	if tag.RowsAffected() == 0 {
		return autherror.ErrNotFound
	}

	return nil
}
