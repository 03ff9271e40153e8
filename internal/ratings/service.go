// internal/ratings/service.go
package ratings

import "context"

// Service defines the interface for the ratings service.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*Rating, error)
	List(ctx context.Context, page, limit int) (*Page, error)
	Get(ctx context.Context, id string) (*Rating, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Rating, error)
	Delete(ctx context.Context, id string) error
}
