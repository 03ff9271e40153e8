// internal/orders/implementation.go
package orders

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"libris/internal/apperr"
	"libris/internal/messaging"
)

// service implements the Service interface.
type service struct {
	db        *sql.DB
	catalog   BookCatalog
	publisher messaging.Publisher
	tracer    trace.Tracer
}

// NewService creates a new order lifecycle manager.
func NewService(db *sql.DB, catalog BookCatalog, publisher messaging.Publisher) Service {
	return &service{
		db:        db,
		catalog:   catalog,
		publisher: publisher,
		tracer:    otel.Tracer("libris/orders"),
	}
}

// PlaceOrder validates the item list, resolves every referenced book, and
// persists the order with status PENDING. One book.borrowed message is
// emitted per item; emission is best effort and never fails the operation.
func (s *service) PlaceOrder(ctx context.Context, userID string, items []ItemRequest) (*Order, error) {
	ctx, span := s.tracer.Start(ctx, "orders.place",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Int("item.count", len(items)),
		),
	)
	defer span.End()

	if userID == "" {
		return nil, apperr.Validation("user ID must be provided")
	}

	bookIDs, err := ValidateItems(items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &Order{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i, req := range items {
		book, err := s.catalog.GetBook(ctx, bookIDs[i])
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, &Item{
			ID:       uuid.New(),
			OrderID:  order.ID,
			BookID:   bookIDs[i],
			Quantity: req.Quantity,
			Book:     book,
		})
	}

	if err := s.insertOrder(ctx, order); err != nil {
		return nil, apperr.Internal("failed to create order", err)
	}

	s.announceAvailability(ctx, messaging.TopicBookBorrowed, false, order.Items)

	return order, nil
}

func (s *service) insertOrder(ctx context.Context, order *Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, order.ID, order.UserID, order.Status, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return err
	}

	for pos, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, book_id, quantity, position)
			VALUES ($1, $2, $3, $4, $5)
		`, item.ID, item.OrderID, item.BookID, item.Quantity, pos)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetOrder retrieves an order with its items and referenced books populated.
func (s *service) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.populateBooks(ctx, order)
	return order, nil
}

func (s *service) loadOrder(ctx context.Context, orderID string) (*Order, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, apperr.Validation("invalid order ID")
	}

	order := &Order{}
	err = s.db.QueryRowContext(ctx,
		`SELECT id, user_id, status, created_at, updated_at FROM orders WHERE id = $1`, id).
		Scan(&order.ID, &order.UserID, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("order with ID %s not found", orderID)
	}
	if err != nil {
		return nil, apperr.Internal("failed to get order", err)
	}

	if err := s.loadItems(ctx, order); err != nil {
		return nil, apperr.Internal("failed to get order", err)
	}

	return order, nil
}

func (s *service) loadItems(ctx context.Context, order *Order) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, order_id, book_id, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY position
	`, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	order.Items = nil
	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.BookID, &item.Quantity); err != nil {
			return err
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

// populateBooks attaches book details to each item. Existence is only
// enforced at placement time: an item whose book no longer resolves keeps a
// null book rather than failing the read.
func (s *service) populateBooks(ctx context.Context, order *Order) {
	for _, item := range order.Items {
		book, err := s.catalog.GetBook(ctx, item.BookID)
		if err != nil {
			if !errors.Is(err, apperr.ErrNotFound) {
				log.Printf("orders: populate book %s: %v", item.BookID, err)
			}
			continue
		}
		item.Book = book
	}
}

// ListOrdersForUser returns the user's orders, newest first. A user with no
// orders gets an empty list, not an error.
func (s *service) ListOrdersForUser(ctx context.Context, userID string) ([]*Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, status, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, apperr.Internal("failed to list orders", err)
	}
	defer rows.Close()

	result := []*Order{}
	for rows.Next() {
		order := &Order{}
		if err := rows.Scan(&order.ID, &order.UserID, &order.Status, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, apperr.Internal("failed to list orders", err)
		}
		result = append(result, order)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to list orders", err)
	}

	for _, order := range result {
		if err := s.loadItems(ctx, order); err != nil {
			return nil, apperr.Internal("failed to list orders", err)
		}
		s.populateBooks(ctx, order)
	}

	return result, nil
}

// ListOrders is the admin listing with pagination and optional status, user
// and creation-date filters.
func (s *service) ListOrders(ctx context.Context, q ListQuery) (*Page, error) {
	page, limit := q.Page, q.Limit
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = 10
	}
	if page < 1 {
		return nil, apperr.Validation("page must be positive")
	}
	if limit < 1 || limit > 100 {
		return nil, apperr.Validation("limit must be between 1 and 100")
	}

	where := ""
	args := []any{}
	var clauses []string
	if q.Status != "" {
		status, err := ParseStatus(q.Status)
		if err != nil {
			return nil, err
		}
		args = append(args, status)
		clauses = append(clauses, "status = $"+strconv.Itoa(len(args)))
	}
	if q.UserID != "" {
		args = append(args, q.UserID)
		clauses = append(clauses, "user_id = $"+strconv.Itoa(len(args)))
	}
	if q.DateFrom != "" {
		from, err := parseDate(q.DateFrom)
		if err != nil {
			return nil, apperr.Validation("invalid dateFrom")
		}
		args = append(args, from)
		clauses = append(clauses, "created_at >= $"+strconv.Itoa(len(args)))
	}
	if q.DateTo != "" {
		to, err := parseDate(q.DateTo)
		if err != nil {
			return nil, apperr.Validation("invalid dateTo")
		}
		args = append(args, to)
		clauses = append(clauses, "created_at <= $"+strconv.Itoa(len(args)))
	}
	for i, c := range clauses {
		if i == 0 {
			where = "WHERE " + c
		} else {
			where += " AND " + c
		}
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders `+where, args...).Scan(&total); err != nil {
		return nil, apperr.Internal("failed to list orders", err)
	}

	args = append(args, limit, (page-1)*limit)
	query := `SELECT id, user_id, status, created_at, updated_at FROM orders ` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Internal("failed to list orders", err)
	}
	defer rows.Close()

	data := []*Order{}
	for rows.Next() {
		order := &Order{}
		if err := rows.Scan(&order.ID, &order.UserID, &order.Status, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, apperr.Internal("failed to list orders", err)
		}
		data = append(data, order)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to list orders", err)
	}

	for _, order := range data {
		if err := s.loadItems(ctx, order); err != nil {
			return nil, apperr.Internal("failed to list orders", err)
		}
		s.populateBooks(ctx, order)
	}

	return &Page{
		Data: data,
		Meta: Meta{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: (total + limit - 1) / limit,
		},
	}, nil
}

// UpdateStatus applies the generic transition guard and persists the new
// status. Completing an order emits one book.returned message per item.
func (s *service) UpdateStatus(ctx context.Context, orderID, status string) (*Order, error) {
	ctx, span := s.tracer.Start(ctx, "orders.update_status",
		trace.WithAttributes(
			attribute.String("order.id", orderID),
			attribute.String("order.next_status", status),
		),
	)
	defer span.End()

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	next, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}

	if err := CanTransition(order.Status, next); err != nil {
		return nil, err
	}

	if err := s.setStatus(ctx, order, next); err != nil {
		return nil, apperr.Internal("failed to update order status", err)
	}

	if next == StatusCompleted {
		s.announceAvailability(ctx, messaging.TopicBookReturned, true, order.Items)
	}

	s.populateBooks(ctx, order)
	return order, nil
}

// CancelOrder moves an order to CANCELLED unless it is already cancelled or
// completed. Emits one book.returned message per item.
func (s *service) CancelOrder(ctx context.Context, orderID string) (*Order, error) {
	ctx, span := s.tracer.Start(ctx, "orders.cancel",
		trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := CanCancel(order.Status); err != nil {
		return nil, err
	}

	if err := s.setStatus(ctx, order, StatusCancelled); err != nil {
		return nil, apperr.Internal("failed to cancel order", err)
	}

	s.announceAvailability(ctx, messaging.TopicBookReturned, true, order.Items)

	s.populateBooks(ctx, order)
	return order, nil
}

// ReturnOrder resets a completed order to PENDING. Emits one book.returned
// message per item.
func (s *service) ReturnOrder(ctx context.Context, orderID string) (*Order, error) {
	ctx, span := s.tracer.Start(ctx, "orders.return",
		trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := CanReturn(order.Status); err != nil {
		return nil, err
	}

	if err := s.setStatus(ctx, order, StatusPending); err != nil {
		return nil, apperr.Internal("failed to return order", err)
	}

	s.announceAvailability(ctx, messaging.TopicBookReturned, true, order.Items)

	s.populateBooks(ctx, order)
	return order, nil
}

// setStatus is the single persistence write of a transition.
func (s *service) setStatus(ctx context.Context, order *Order, next Status) error {
	now := time.Now()
	_, err := s.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`, next, now, order.ID)
	if err != nil {
		return err
	}
	order.Status = next
	order.UpdatedAt = now
	return nil
}

// announceAvailability publishes one availability message per order item.
// Delivery is best effort: failures are logged and dropped, never surfaced
// to the caller.
func (s *service) announceAvailability(ctx context.Context, topic string, available bool, items []*Item) {
	for _, item := range items {
		msg := messaging.BookAvailability{
			BookID:      item.BookID.String(),
			IsAvailable: available,
			Timestamp:   time.Now(),
		}
		if err := s.publisher.Publish(ctx, topic, msg); err != nil {
			log.Printf("orders: publish %s for book %s failed: %v", topic, item.BookID, err)
		}
	}
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
