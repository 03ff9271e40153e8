// internal/tags/implementation.go
package tags

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"libris/internal/apperr"
)

// service implements the Service interface.
type service struct {
	db *sql.DB
}

// NewService creates a new tags service instance.
func NewService(db *sql.DB) Service {
	return &service{db: db}
}

// Create adds a tag. Duplicate names are rejected as a validation error, not
// a conflict; that asymmetry with authors and books is deliberate and
// mirrors the public API contract.
func (s *service) Create(ctx context.Context, name string) (*Tag, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("tag name is required")
	}

	taken, err := s.nameTaken(ctx, name, uuid.Nil)
	if err != nil {
		return nil, apperr.Internal("failed to create tag", err)
	}
	if taken {
		return nil, apperr.Validationf("tag with name %q already exists", name)
	}

	now := time.Now()
	tag := &Tag{ID: uuid.New(), Name: name, CreatedAt: now, UpdatedAt: now}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tags (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)
	`, tag.ID, tag.Name, tag.CreatedAt, tag.UpdatedAt)
	if err != nil {
		return nil, apperr.Internal("failed to create tag", err)
	}

	return tag, nil
}

func (s *service) nameTaken(ctx context.Context, name string, exclude uuid.UUID) (bool, error) {
	var taken bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM tags WHERE name = $1 AND id <> $2)`, name, exclude).Scan(&taken)
	return taken, err
}

// List returns all tags.
func (s *service) List(ctx context.Context) ([]*Tag, error) {
	return s.queryTags(ctx, `SELECT id, name, created_at, updated_at FROM tags ORDER BY name`)
}

// Get retrieves a tag by ID.
func (s *service) Get(ctx context.Context, id string) (*Tag, error) {
	tagID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid tag ID")
	}

	tag := &Tag{}
	err = s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM tags WHERE id = $1`, tagID).
		Scan(&tag.ID, &tag.Name, &tag.CreatedAt, &tag.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("tag %s not found", id)
	}
	if err != nil {
		return nil, apperr.Internal("failed to get tag", err)
	}

	return tag, nil
}

// Update renames a tag, keeping names unique.
func (s *service) Update(ctx context.Context, id, name string) (*Tag, error) {
	tag, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		taken, err := s.nameTaken(ctx, name, tag.ID)
		if err != nil {
			return nil, apperr.Internal("failed to update tag", err)
		}
		if taken {
			return nil, apperr.Validationf("tag with name %q already exists", name)
		}
		tag.Name = name
	}
	tag.UpdatedAt = time.Now()

	_, err = s.db.ExecContext(ctx,
		`UPDATE tags SET name = $1, updated_at = $2 WHERE id = $3`, tag.Name, tag.UpdatedAt, tag.ID)
	if err != nil {
		return nil, apperr.Internal("failed to update tag", err)
	}

	return tag, nil
}

// Delete removes a tag by ID.
func (s *service) Delete(ctx context.Context, id string) error {
	tag, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, tag.ID); err != nil {
		return apperr.Internal("failed to delete tag", err)
	}
	return nil
}

// Search lists tags whose name contains the query, case-insensitive.
func (s *service) Search(ctx context.Context, query string) ([]*Tag, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperr.Validation("search query cannot be empty")
	}
	return s.queryTags(ctx,
		`SELECT id, name, created_at, updated_at FROM tags WHERE name ILIKE $1 ORDER BY name`,
		"%"+query+"%")
}

func (s *service) queryTags(ctx context.Context, query string, args ...any) ([]*Tag, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Internal("failed to list tags", err)
	}
	defer rows.Close()

	result := []*Tag{}
	for rows.Next() {
		tag := &Tag{}
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.CreatedAt, &tag.UpdatedAt); err != nil {
			return nil, apperr.Internal("failed to list tags", err)
		}
		result = append(result, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to list tags", err)
	}
	return result, nil
}
