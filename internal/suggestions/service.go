// internal/suggestions/service.go
package suggestions

import (
	"context"

	"libris/internal/authors"
)

// Service defines the interface for the author suggestions service.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*Suggestion, error)
	List(ctx context.Context, status Status) ([]*Suggestion, error)
	Get(ctx context.Context, id string) (*Suggestion, error)
	Approve(ctx context.Context, id string) (*authors.Author, error)
	Reject(ctx context.Context, id string) (*Suggestion, error)
	Delete(ctx context.Context, id string, isAdmin bool) error
}

// AuthorRegistry creates authors from approved suggestions. Satisfied by
// clients.AuthorsClient.
type AuthorRegistry interface {
	CreateAuthor(ctx context.Context, params authors.CreateParams) (*authors.Author, error)
}
