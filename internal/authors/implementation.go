// internal/authors/implementation.go
package authors

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

// NewService creates a new authors service instance.
func NewService(db *sql.DB) Service {
	return &service{db: db}
}

const authorColumns = `id, name, bio, lit_period, author_image, born_date, death_date, created_at, updated_at`

// Create adds an author. The (name, born date) pair must be unique.
func (s *service) Create(ctx context.Context, params CreateParams) (*Author, error) {
	if params.Name == "" {
		return nil, apperr.Validation("author name is required")
	}

	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM authors WHERE name = $1 AND born_date = $2)`,
		params.Name, params.BornDate).Scan(&exists)
	if err != nil {
		return nil, apperr.Internal("failed to create author", err)
	}
	if exists {
		return nil, apperr.Conflictf("author %q (born %s) already exists", params.Name, params.BornDate)
	}

	now := time.Now()
	author := &Author{
		ID:          uuid.New(),
		Name:        params.Name,
		Bio:         params.Bio,
		LitPeriod:   params.LitPeriod,
		AuthorImage: params.AuthorImage,
		BornDate:    params.BornDate,
		DeathDate:   params.DeathDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO authors (id, name, bio, lit_period, author_image, born_date, death_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, author.ID, author.Name, author.Bio, author.LitPeriod, author.AuthorImage,
		author.BornDate, author.DeathDate, author.CreatedAt, author.UpdatedAt)
	if err != nil {
		return nil, apperr.Internal("failed to create author", err)
	}

	return author, nil
}

// List returns a page of authors filtered by a case-insensitive name search.
// An empty result set is a NotFound error.
func (s *service) List(ctx context.Context, search string, page, limit int) (*Page, error) {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = 10
	}
	if page < 1 || limit < 1 {
		return nil, apperr.Validation("page and limit must be greater than 0")
	}

	where := ""
	args := []any{}
	if search != "" {
		where = `WHERE name ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM authors `+where, args...).Scan(&total); err != nil {
		return nil, apperr.Internal("failed to list authors", err)
	}
	if total == 0 {
		if search != "" {
			return nil, apperr.NotFoundf("no authors found matching %q", search)
		}
		return nil, apperr.NotFound("no authors found")
	}

	args = append(args, limit, (page-1)*limit)
	query := `SELECT ` + authorColumns + ` FROM authors ` + where + ` ORDER BY created_at DESC`
	if search != "" {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Internal("failed to list authors", err)
	}
	defer rows.Close()

	var data []*Author
	for rows.Next() {
		author := &Author{}
		if err := scanAuthor(rows.Scan, author); err != nil {
			return nil, apperr.Internal("failed to list authors", err)
		}
		data = append(data, author)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to list authors", err)
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

// Get retrieves an author by ID.
func (s *service) Get(ctx context.Context, id string) (*Author, error) {
	authorID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid author ID")
	}

	author := &Author{}
	err = scanAuthor(s.db.QueryRowContext(ctx,
		`SELECT `+authorColumns+` FROM authors WHERE id = $1`, authorID).Scan, author)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("author %s not found", id)
	}
	if err != nil {
		return nil, apperr.Internal("failed to get author", err)
	}

	return author, nil
}

// Update applies partial changes. A changed (name, born date) pair is
// re-checked for uniqueness.
func (s *service) Update(ctx context.Context, id string, params UpdateParams) (*Author, error) {
	author, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		author.Name = *params.Name
	}
	if params.BornDate != nil {
		author.BornDate = *params.BornDate
	}
	if params.Name != nil || params.BornDate != nil {
		var exists bool
		err := s.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM authors WHERE name = $1 AND born_date = $2 AND id <> $3)`,
			author.Name, author.BornDate, author.ID).Scan(&exists)
		if err != nil {
			return nil, apperr.Internal("failed to update author", err)
		}
		if exists {
			return nil, apperr.Conflictf("another author with name %q and born date %q already exists",
				author.Name, author.BornDate)
		}
	}
	if params.Bio != nil {
		author.Bio = *params.Bio
	}
	if params.LitPeriod != nil {
		author.LitPeriod = *params.LitPeriod
	}
	if params.AuthorImage != nil {
		author.AuthorImage = *params.AuthorImage
	}
	if params.DeathDate != nil {
		author.DeathDate = *params.DeathDate
	}
	author.UpdatedAt = time.Now()

	_, err = s.db.ExecContext(ctx, `
		UPDATE authors
		SET name = $1, bio = $2, lit_period = $3, author_image = $4, born_date = $5, death_date = $6, updated_at = $7
		WHERE id = $8
	`, author.Name, author.Bio, author.LitPeriod, author.AuthorImage,
		author.BornDate, author.DeathDate, author.UpdatedAt, author.ID)
	if err != nil {
		return nil, apperr.Internal("failed to update author", err)
	}

	return author, nil
}

// Delete removes an author by ID.
func (s *service) Delete(ctx context.Context, id string) error {
	author, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM authors WHERE id = $1`, author.ID); err != nil {
		return apperr.Internal("failed to delete author", err)
	}
	return nil
}

func scanAuthor(scan func(dest ...any) error, a *Author) error {
	return scan(&a.ID, &a.Name, &a.Bio, &a.LitPeriod, &a.AuthorImage,
		&a.BornDate, &a.DeathDate, &a.CreatedAt, &a.UpdatedAt)
}
