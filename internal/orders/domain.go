// internal/orders/domain.go
package orders

import (
	"time"

	"github.com/google/uuid"

	"libris/internal/apperr"
	"libris/internal/books"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusDeclined  Status = "DECLINED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusReturned  Status = "RETURNED"
)

// ParseStatus validates a caller-supplied status value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusDeclined, StatusCompleted, StatusCancelled, StatusReturned:
		return Status(s), nil
	}
	return "", apperr.Validationf("invalid order status: %s", s)
}

// Order is a placed request by a user for one or more books. Items are fixed
// at creation; only the status changes afterwards.
type Order struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"userId"`
	Status    Status    `json:"status"`
	Items     []*Item   `json:"items"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Item is a (book, quantity) line within an order. Book is populated from the
// books service and left null when the reference no longer resolves.
type Item struct {
	ID       uuid.UUID   `json:"id"`
	OrderID  uuid.UUID   `json:"orderId"`
	BookID   uuid.UUID   `json:"bookId"`
	Quantity int         `json:"quantity"`
	Book     *books.Book `json:"book,omitempty"`
}

// ItemRequest is one requested line in a new order.
type ItemRequest struct {
	BookID   string `json:"bookId"`
	Quantity int    `json:"quantity"`
}

// ValidateItems checks the shape of a new order's item list: non-empty, every
// book ID well-formed, every quantity at least 1, no duplicate book within
// the order. Returns the parsed book IDs in item order.
func ValidateItems(items []ItemRequest) ([]uuid.UUID, error) {
	if len(items) == 0 {
		return nil, apperr.Validation("order must contain at least one item")
	}

	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if item.BookID == "" {
			return nil, apperr.Validation("book ID must be provided")
		}
		id, err := uuid.Parse(item.BookID)
		if err != nil {
			return nil, apperr.Validationf("invalid book ID: %s", item.BookID)
		}
		if item.Quantity < 1 {
			return nil, apperr.Validation("item quantity must be at least 1")
		}
		if _, dup := seen[id]; dup {
			return nil, apperr.Validation("duplicate books are not allowed in the same order")
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return ids, nil
}

// CanTransition applies the generic status-update guard: a cancelled order is
// terminal, and a returned order may only be reset to PENDING. Specific
// operations (cancel, return) carry their own stricter guards.
func CanTransition(current, next Status) error {
	if current == StatusCancelled {
		return apperr.Conflict("cannot update a cancelled order")
	}
	if current == StatusReturned && next != StatusPending {
		return apperr.Conflict("returned orders can only be reset to PENDING")
	}
	return nil
}

// CanCancel guards the cancel operation.
func CanCancel(current Status) error {
	if current == StatusCancelled || current == StatusCompleted {
		return apperr.Conflictf("cannot cancel order with status: %s", current)
	}
	return nil
}

// CanReturn guards the return operation.
func CanReturn(current Status) error {
	if current != StatusCompleted {
		return apperr.Conflictf("only completed orders can be returned, current status: %s", current)
	}
	return nil
}

// ListQuery drives the admin order listing.
type ListQuery struct {
	Page     int
	Limit    int
	Status   string
	UserID   string
	DateFrom string
	DateTo   string
}

// Page is a paginated order listing.
type Page struct {
	Data []*Order `json:"data"`
	Meta Meta     `json:"meta"`
}

type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}
