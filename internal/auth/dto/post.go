package dto

import (
	"time"

	"github.com/AnthoniusHendriyanto/blog-service/internal/auth/domain"
)

type PostInput struct {
	Name string `json:"name" validate:"required,max=255"`
	Text string `json:"text" validate:"required"`
}

type PostOutput struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Text      string    `json:"text"`
	AuthorID  int64     `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewPostOutput(p *domain.Post) PostOutput {
	return PostOutput{
		ID:        p.ID,
		Name:      p.Name,
		Text:      p.Text,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func NewPostOutputs(posts []domain.Post) []PostOutput {
	out := make([]PostOutput, 0, len(posts))
	for i := range posts {
		out = append(out, NewPostOutput(&posts[i]))
	}
	return out
}
