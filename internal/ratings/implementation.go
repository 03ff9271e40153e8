// internal/ratings/implementation.go
package ratings

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"libris/internal/apperr"
)

// service implements the Service interface.
type service struct {
	db *sql.DB
}

// NewService creates a new ratings service instance.
func NewService(db *sql.DB) Service {
	return &service{db: db}
}

func validateValue(value int) error {
	if value < 1 || value > 5 {
		return apperr.Validation("rating value must be between 1 and 5")
	}
	return nil
}

// Create adds a rating. The book reference must be well-formed; existence is
// not checked here.
func (s *service) Create(ctx context.Context, params CreateParams) (*Rating, error) {
	bookID, err := uuid.Parse(params.BookID)
	if err != nil {
		return nil, apperr.Validation("invalid book ID")
	}
	if err := validateValue(params.Value); err != nil {
		return nil, err
	}

	now := time.Now()
	rating := &Rating{
		ID:        uuid.New(),
		BookID:    bookID,
		Value:     params.Value,
		Comment:   params.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ratings (id, book_id, value, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rating.ID, rating.BookID, rating.Value, rating.Comment, rating.CreatedAt, rating.UpdatedAt)
	if err != nil {
		return nil, apperr.Internal("failed to create rating", err)
	}

	return rating, nil
}

// List returns a page of ratings, newest first. Zero matches is a valid
// empty page.
func (s *service) List(ctx context.Context, page, limit int) (*Page, error) {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = 10
	}
	if page < 1 || limit < 1 {
		return nil, apperr.Validation("page and limit must be positive")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ratings`).Scan(&total); err != nil {
		return nil, apperr.Internal("failed to list ratings", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, book_id, value, comment, created_at, updated_at
		FROM ratings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, (page-1)*limit)
	if err != nil {
		return nil, apperr.Internal("failed to list ratings", err)
	}
	defer rows.Close()

	data := []*Rating{}
	for rows.Next() {
		rating := &Rating{}
		if err := rows.Scan(&rating.ID, &rating.BookID, &rating.Value, &rating.Comment,
			&rating.CreatedAt, &rating.UpdatedAt); err != nil {
			return nil, apperr.Internal("failed to list ratings", err)
		}
		data = append(data, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to list ratings", err)
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

// Get retrieves a rating by ID.
func (s *service) Get(ctx context.Context, id string) (*Rating, error) {
	ratingID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid rating ID")
	}

	rating := &Rating{}
	err = s.db.QueryRowContext(ctx, `
		SELECT id, book_id, value, comment, created_at, updated_at
		FROM ratings WHERE id = $1
	`, ratingID).Scan(&rating.ID, &rating.BookID, &rating.Value, &rating.Comment,
		&rating.CreatedAt, &rating.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("rating %s not found", id)
	}
	if err != nil {
		return nil, apperr.Internal("failed to get rating", err)
	}

	return rating, nil
}

// Update applies partial changes to a rating.
func (s *service) Update(ctx context.Context, id string, params UpdateParams) (*Rating, error) {
	rating, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Value != nil {
		if err := validateValue(*params.Value); err != nil {
			return nil, err
		}
		rating.Value = *params.Value
	}
	if params.Comment != nil {
		rating.Comment = *params.Comment
	}
	rating.UpdatedAt = time.Now()

	_, err = s.db.ExecContext(ctx, `
		UPDATE ratings SET value = $1, comment = $2, updated_at = $3 WHERE id = $4
	`, rating.Value, rating.Comment, rating.UpdatedAt, rating.ID)
	if err != nil {
		return nil, apperr.Internal("failed to update rating", err)
	}

	return rating, nil
}

// Delete removes a rating by ID.
func (s *service) Delete(ctx context.Context, id string) error {
	rating, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM ratings WHERE id = $1`, rating.ID); err != nil {
		return apperr.Internal("failed to delete rating", err)
	}
	return nil
}
