package service

import "github.com/AnthoniusHendriyanto/blog-service/internal/auth/domain"

type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) Allowed() bool {
	return d == Allow
}

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// AuthorizeMutation allows a write only when identity authored the record.
func AuthorizeMutation(identity *domain.User, authorID int64) Decision {
	if identity != nil && identity.ID == authorID {
		return Allow
	}
	return Deny
}
