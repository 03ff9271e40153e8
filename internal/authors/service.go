// internal/authors/service.go
package authors

import "context"

// Service defines the interface for the authors service.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*Author, error)
	List(ctx context.Context, search string, page, limit int) (*Page, error)
	Get(ctx context.Context, id string) (*Author, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Author, error)
	Delete(ctx context.Context, id string) error
}
