// internal/books/implementation.go
package books

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"libris/internal/apperr"
)

// service implements the Service interface.
type service struct {
	db         *sql.DB
	authors    AuthorDirectory
	categories CategoryDirectory
}

// NewService creates a new books service instance.
func NewService(db *sql.DB, authors AuthorDirectory, categories CategoryDirectory) Service {
	return &service{db: db, authors: authors, categories: categories}
}

const bookColumns = `id, name, description, year, is_available, author_id, category_id, created_at, updated_at`

// Create adds a book after validating its author and optional category exist
// and that the (name, author) pair is unique.
func (s *service) Create(ctx context.Context, params CreateParams) (*Book, error) {
	if params.Name == "" {
		return nil, apperr.Validation("book name is required")
	}

	authorID, err := uuid.Parse(params.AuthorID)
	if err != nil {
		return nil, apperr.Validation("invalid author ID")
	}
	if err := s.authors.AuthorExists(ctx, authorID); err != nil {
		return nil, err
	}

	var categoryID *uuid.UUID
	if params.CategoryID != "" {
		id, err := uuid.Parse(params.CategoryID)
		if err != nil {
			return nil, apperr.Validation("invalid category ID")
		}
		if err := s.categories.CategoryExists(ctx, id); err != nil {
			return nil, err
		}
		categoryID = &id
	}

	var exists bool
	err = s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM books WHERE name = $1 AND author_id = $2)`,
		params.Name, authorID).Scan(&exists)
	if err != nil {
		return nil, apperr.Internal("failed to create book", err)
	}
	if exists {
		return nil, apperr.Conflictf("book %q by this author already exists", params.Name)
	}

	now := time.Now()
	book := &Book{
		ID:          uuid.New(),
		Name:        params.Name,
		Description: params.Description,
		Year:        params.Year,
		IsAvailable: true,
		AuthorID:    authorID,
		CategoryID:  categoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO books (id, name, description, year, is_available, author_id, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, book.ID, book.Name, book.Description, book.Year, book.IsAvailable, book.AuthorID, book.CategoryID, book.CreatedAt, book.UpdatedAt)
	if err != nil {
		return nil, apperr.Internal("failed to create book", err)
	}

	return book, nil
}

// List returns a page of books, optionally filtered by a case-insensitive
// search over name and description. An empty result set is a NotFound error.
func (s *service) List(ctx context.Context, q ListQuery) (*Page, error) {
	page, limit := q.Page, q.Limit
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = 10
	}
	if page < 1 {
		return nil, apperr.Validation("page must be a positive integer")
	}
	if limit < 1 || limit > 100 {
		return nil, apperr.Validation("limit must be between 1 and 100")
	}

	where := ""
	args := []any{}
	if q.Search != "" {
		where = `WHERE name ILIKE $1 OR description ILIKE $1`
		args = append(args, "%"+q.Search+"%")
	}

	var total int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books `+where, args...).Scan(&total)
	if err != nil {
		return nil, apperr.Internal("failed to list books", err)
	}
	if total == 0 {
		return nil, apperr.NotFound("no books found")
	}

	query := fmt.Sprintf(`
		SELECT %s FROM books %s
		ORDER BY created_at DESC
		LIMIT %d OFFSET %d
	`, bookColumns, where, limit, (page-1)*limit)

	items, err := s.queryBooks(ctx, query, args...)
	if err != nil {
		return nil, apperr.Internal("failed to list books", err)
	}

	return &Page{
		Data:     items,
		Total:    total,
		Page:     page,
		LastPage: (total + limit - 1) / limit,
	}, nil
}

// Get retrieves a book by ID.
func (s *service) Get(ctx context.Context, id string) (*Book, error) {
	bookID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid book ID")
	}

	book := &Book{}
	err = s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = $1`, bookID).
		Scan(&book.ID, &book.Name, &book.Description, &book.Year, &book.IsAvailable,
			&book.AuthorID, &book.CategoryID, &book.CreatedAt, &book.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("book with ID %s not found", id)
	}
	if err != nil {
		return nil, apperr.Internal("failed to get book", err)
	}

	return book, nil
}

// Update applies partial changes to a book. A name change is re-checked for
// uniqueness against the same author.
func (s *service) Update(ctx context.Context, id string, params UpdateParams) (*Book, error) {
	book, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if *params.Name == "" {
			return nil, apperr.Validation("book name cannot be empty")
		}
		var exists bool
		err := s.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM books WHERE name = $1 AND author_id = $2 AND id <> $3)`,
			*params.Name, book.AuthorID, book.ID).Scan(&exists)
		if err != nil {
			return nil, apperr.Internal("failed to update book", err)
		}
		if exists {
			return nil, apperr.Conflictf("book %q by this author already exists", *params.Name)
		}
		book.Name = *params.Name
	}
	if params.Description != nil {
		book.Description = *params.Description
	}
	if params.Year != nil {
		book.Year = *params.Year
	}
	if params.IsAvailable != nil {
		book.IsAvailable = *params.IsAvailable
	}
	book.UpdatedAt = time.Now()

	_, err = s.db.ExecContext(ctx, `
		UPDATE books
		SET name = $1, description = $2, year = $3, is_available = $4, updated_at = $5
		WHERE id = $6
	`, book.Name, book.Description, book.Year, book.IsAvailable, book.UpdatedAt, book.ID)
	if err != nil {
		return nil, apperr.Internal("failed to update book", err)
	}

	return book, nil
}

// Delete removes a book by ID.
func (s *service) Delete(ctx context.Context, id string) error {
	book, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, book.ID); err != nil {
		return apperr.Internal("failed to delete book", err)
	}
	return nil
}

// Available lists books currently marked available.
func (s *service) Available(ctx context.Context) ([]*Book, error) {
	return s.availability(ctx, true, "no available books found")
}

// Unavailable lists books currently marked unavailable.
func (s *service) Unavailable(ctx context.Context) ([]*Book, error) {
	return s.availability(ctx, false, "no unavailable books found")
}

func (s *service) availability(ctx context.Context, available bool, emptyMsg string) ([]*Book, error) {
	items, err := s.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE is_available = $1 ORDER BY created_at DESC`, available)
	if err != nil {
		return nil, apperr.Internal("failed to list books", err)
	}
	if len(items) == 0 {
		return nil, apperr.NotFound(emptyMsg)
	}
	return items, nil
}

// TopRated lists books ordered by average rating.
func (s *service) TopRated(ctx context.Context, limit int) ([]*Book, error) {
	if limit == 0 {
		limit = 10
	}
	if limit < 1 || limit > 50 {
		return nil, apperr.Validation("limit must be between 1 and 50")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT b.id, b.name, b.description, b.year, b.is_available, b.author_id, b.category_id,
		       b.created_at, b.updated_at, COALESCE(AVG(r.value), 0) AS avg_rating
		FROM books b
		LEFT JOIN ratings r ON r.book_id = b.id
		GROUP BY b.id
		HAVING COUNT(r.id) > 0
		ORDER BY avg_rating DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, apperr.Internal("failed to list top rated books", err)
	}
	defer rows.Close()

	var items []*Book
	for rows.Next() {
		book := &Book{}
		if err := rows.Scan(&book.ID, &book.Name, &book.Description, &book.Year, &book.IsAvailable,
			&book.AuthorID, &book.CategoryID, &book.CreatedAt, &book.UpdatedAt, &book.AvgRating); err != nil {
			return nil, apperr.Internal("failed to list top rated books", err)
		}
		items = append(items, book)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to list top rated books", err)
	}
	if len(items) == 0 {
		return nil, apperr.NotFound("no top rated books found")
	}

	return items, nil
}

// RecentlyAdded lists books created within the last N days.
func (s *service) RecentlyAdded(ctx context.Context, days int) ([]*Book, error) {
	if days == 0 {
		days = 7
	}
	if days < 1 || days > 365 {
		return nil, apperr.Validation("days must be between 1 and 365")
	}

	since := time.Now().AddDate(0, 0, -days)
	items, err := s.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE created_at > $1 ORDER BY created_at DESC`, since)
	if err != nil {
		return nil, apperr.Internal("failed to list recently added books", err)
	}
	if len(items) == 0 {
		return nil, apperr.NotFound("no recently added books found")
	}

	return items, nil
}

func (s *service) queryBooks(ctx context.Context, query string, args ...any) ([]*Book, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Book
	for rows.Next() {
		book := &Book{}
		if err := rows.Scan(&book.ID, &book.Name, &book.Description, &book.Year, &book.IsAvailable,
			&book.AuthorID, &book.CategoryID, &book.CreatedAt, &book.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, book)
	}
	return items, rows.Err()
}
