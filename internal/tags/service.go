// internal/tags/service.go
package tags

import "context"

// Service defines the interface for the tags service.
type Service interface {
	Create(ctx context.Context, name string) (*Tag, error)
	List(ctx context.Context) ([]*Tag, error)
	Get(ctx context.Context, id string) (*Tag, error)
	Update(ctx context.Context, id, name string) (*Tag, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]*Tag, error)
}
