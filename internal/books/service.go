// internal/books/service.go
package books

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the books service.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*Book, error)
	List(ctx context.Context, q ListQuery) (*Page, error)
	Get(ctx context.Context, id string) (*Book, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Book, error)
	Delete(ctx context.Context, id string) error
	Available(ctx context.Context) ([]*Book, error)
	Unavailable(ctx context.Context) ([]*Book, error)
	TopRated(ctx context.Context, limit int) ([]*Book, error)
	RecentlyAdded(ctx context.Context, days int) ([]*Book, error)
}

// AuthorDirectory resolves author references. The authors service HTTP client
// is the production implementation.
type AuthorDirectory interface {
	AuthorExists(ctx context.Context, id uuid.UUID) error
}

// CategoryDirectory resolves category references.
type CategoryDirectory interface {
	CategoryExists(ctx context.Context, id uuid.UUID) error
}
