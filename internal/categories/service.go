// internal/categories/service.go
package categories

import "context"

// Service defines the interface for the categories service.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*Category, error)
	List(ctx context.Context, search string, page, limit int) (*Page, error)
	Get(ctx context.Context, id string) (*Category, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Category, error)
	Delete(ctx context.Context, id string) error
}
