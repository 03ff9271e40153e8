// internal/categories/implementation.go
package categories

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

// NewService creates a new categories service instance.
func NewService(db *sql.DB) Service {
	return &service{db: db}
}

func validateName(name string, required bool) error {
	if name == "" {
		if required {
			return apperr.Validation("category name is required")
		}
		return nil
	}
	if len(name) > 100 {
		return apperr.Validation("category name must be less than 100 characters")
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) > 500 {
		return apperr.Validation("description must be less than 500 characters")
	}
	return nil
}

// Create adds a category after checking field constraints.
func (s *service) Create(ctx context.Context, params CreateParams) (*Category, error) {
	if err := validateName(params.Name, true); err != nil {
		return nil, err
	}
	if err := validateDescription(params.Description); err != nil {
		return nil, err
	}

	now := time.Now()
	category := &Category{
		ID:          uuid.New(),
		Name:        params.Name,
		Description: params.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, category.ID, category.Name, category.Description, category.CreatedAt, category.UpdatedAt)
	if err != nil {
		return nil, apperr.Internal("failed to create category", err)
	}

	return category, nil
}

// List returns a page of categories, optionally filtered by search over name
// and description. Zero matches is a valid empty page.
func (s *service) List(ctx context.Context, search string, page, limit int) (*Page, error) {
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
	if search != "" {
		where = `WHERE name ILIKE $1 OR description ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories `+where, args...).Scan(&total); err != nil {
		return nil, apperr.Internal("failed to list categories", err)
	}

	query := `SELECT id, name, description, created_at, updated_at FROM categories ` + where +
		` ORDER BY created_at DESC`
	if search != "" {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}
	args = append(args, limit, (page-1)*limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Internal("failed to list categories", err)
	}
	defer rows.Close()

	data := []*Category{}
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, apperr.Internal("failed to list categories", err)
		}
		data = append(data, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to list categories", err)
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

// Get retrieves a category by ID.
func (s *service) Get(ctx context.Context, id string) (*Category, error) {
	categoryID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid category ID")
	}

	c := &Category{}
	err = s.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM categories WHERE id = $1`, categoryID).
		Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("category with ID %s not found", id)
	}
	if err != nil {
		return nil, apperr.Internal("failed to get category", err)
	}

	return c, nil
}

// Update applies partial changes with the same field constraints as Create.
func (s *service) Update(ctx context.Context, id string, params UpdateParams) (*Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if *params.Name == "" {
			return nil, apperr.Validation("category name cannot be empty")
		}
		if err := validateName(*params.Name, false); err != nil {
			return nil, err
		}
		category.Name = *params.Name
	}
	if params.Description != nil {
		if err := validateDescription(*params.Description); err != nil {
			return nil, err
		}
		category.Description = *params.Description
	}
	category.UpdatedAt = time.Now()

	_, err = s.db.ExecContext(ctx, `
		UPDATE categories SET name = $1, description = $2, updated_at = $3 WHERE id = $4
	`, category.Name, category.Description, category.UpdatedAt, category.ID)
	if err != nil {
		return nil, apperr.Internal("failed to update category", err)
	}

	return category, nil
}

// Delete removes a category by ID.
func (s *service) Delete(ctx context.Context, id string) error {
	category, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, category.ID); err != nil {
		return apperr.Internal("failed to delete category", err)
	}
	return nil
}
