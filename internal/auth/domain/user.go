package domain

import "time"

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	IsSuperuser  bool
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Post struct {
	ID        int64
	Name      string
	Text      string
	AuthorID  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
