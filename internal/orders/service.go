// internal/orders/service.go
package orders

import (
	"context"

	"github.com/google/uuid"

	"libris/internal/books"
)

// Service is the order lifecycle manager.
type Service interface {
	PlaceOrder(ctx context.Context, userID string, items []ItemRequest) (*Order, error)
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	ListOrdersForUser(ctx context.Context, userID string) ([]*Order, error)
	ListOrders(ctx context.Context, q ListQuery) (*Page, error)
	UpdateStatus(ctx context.Context, orderID, status string) (*Order, error)
	CancelOrder(ctx context.Context, orderID string) (*Order, error)
	ReturnOrder(ctx context.Context, orderID string) (*Order, error)
}

// BookCatalog resolves book references. The books service HTTP client is the
// production implementation; the order manager only needs existence and the
// fields it echoes back on populated items.
type BookCatalog interface {
	GetBook(ctx context.Context, id uuid.UUID) (*books.Book, error)
}
