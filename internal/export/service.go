// internal/export/service.go
package export

import "context"

// Report is a rendered document ready to be served.
type Report struct {
	Body        []byte
	ContentType string
}

// Service defines the interface for the export service.
type Service interface {
	BooksReport(ctx context.Context) (*Report, error)
	AuthorsReport(ctx context.Context) (*Report, error)
	OrdersReport(ctx context.Context) (*Report, error)
}
