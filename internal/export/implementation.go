// internal/export/implementation.go
package export

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"libris/internal/apperr"
)

// service implements the Service interface.
type service struct {
	db       *sql.DB
	renderer Renderer
}

// NewService creates a new export service instance.
func NewService(db *sql.DB, renderer Renderer) Service {
	return &service{db: db, renderer: renderer}
}

// BooksReport renders the full book inventory.
func (s *service) BooksReport(ctx context.Context) (*Report, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, year, is_available, created_at FROM books ORDER BY name
	`)
	if err != nil {
		return nil, apperr.Internal("failed to build books report", err)
	}
	defer rows.Close()

	data := [][]string{}
	for rows.Next() {
		var (
			name      string
			year      int
			available bool
			createdAt time.Time
		)
		if err := rows.Scan(&name, &year, &available, &createdAt); err != nil {
			return nil, apperr.Internal("failed to build books report", err)
		}
		data = append(data, []string{
			name, strconv.Itoa(year), strconv.FormatBool(available), createdAt.Format("2006-01-02"),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to build books report", err)
	}

	return s.render("Books", []string{"NAME", "YEAR", "AVAILABLE", "ADDED"}, data)
}

// AuthorsReport renders the author catalog.
func (s *service) AuthorsReport(ctx context.Context) (*Report, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, lit_period, born_date, death_date FROM authors ORDER BY name
	`)
	if err != nil {
		return nil, apperr.Internal("failed to build authors report", err)
	}
	defer rows.Close()

	data := [][]string{}
	for rows.Next() {
		var name, litPeriod, bornDate, deathDate string
		if err := rows.Scan(&name, &litPeriod, &bornDate, &deathDate); err != nil {
			return nil, apperr.Internal("failed to build authors report", err)
		}
		data = append(data, []string{name, litPeriod, bornDate, deathDate})
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to build authors report", err)
	}

	return s.render("Authors", []string{"NAME", "PERIOD", "BORN", "DIED"}, data)
}

// OrdersReport renders recent orders with their item counts, newest first.
func (s *service) OrdersReport(ctx context.Context) (*Report, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.user_id, o.status, o.created_at, COUNT(i.id)
		FROM orders o LEFT JOIN order_items i ON i.order_id = o.id
		GROUP BY o.id, o.user_id, o.status, o.created_at
		ORDER BY o.created_at DESC
	`)
	if err != nil {
		return nil, apperr.Internal("failed to build orders report", err)
	}
	defer rows.Close()

	data := [][]string{}
	for rows.Next() {
		var (
			id, userID, status string
			createdAt          time.Time
			items              int
		)
		if err := rows.Scan(&id, &userID, &status, &createdAt, &items); err != nil {
			return nil, apperr.Internal("failed to build orders report", err)
		}
		data = append(data, []string{
			id, userID, status, strconv.Itoa(items), createdAt.Format(time.RFC3339),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to build orders report", err)
	}

	return s.render("Orders", []string{"ID", "USER", "STATUS", "ITEMS", "PLACED"}, data)
}

func (s *service) render(title string, headers []string, rows [][]string) (*Report, error) {
	body, err := s.renderer.Render(title, headers, rows)
	if err != nil {
		return nil, apperr.Internal("failed to render report", err)
	}
	return &Report{Body: body, ContentType: s.renderer.ContentType()}, nil
}
