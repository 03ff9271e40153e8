// internal/suggestions/implementation.go
package suggestions

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"libris/internal/apperr"
	"libris/internal/authors"
)

// service implements the Service interface.
type service struct {
	db       *sql.DB
	registry AuthorRegistry
	limiter  *rate.Limiter
}

// NewService creates a new suggestions service instance. Submissions are
// rate limited because the endpoint accepts anonymous traffic.
func NewService(db *sql.DB, registry AuthorRegistry) Service {
	return &service{
		db:       db,
		registry: registry,
		limiter:  rate.NewLimiter(rate.Every(1*time.Minute), 5), // 5 submissions per minute
	}
}

// Create submits a new author suggestion in the PENDING state.
func (s *service) Create(ctx context.Context, params CreateParams) (*Suggestion, error) {
	if !s.limiter.Allow() {
		return nil, apperr.ErrRateLimited
	}

	if params.Name == "" || params.LitPeriod == "" || params.BornDate == "" {
		return nil, apperr.Validation("missing required fields: name, litPeriod, bornDate")
	}
	if params.SuggestedByName == "" {
		return nil, apperr.Validation("suggestedByName is required")
	}

	now := time.Now()
	suggestion := &Suggestion{
		ID:              uuid.New(),
		Name:            params.Name,
		Bio:             params.Bio,
		LitPeriod:       params.LitPeriod,
		AuthorImage:     params.AuthorImage,
		BornDate:        params.BornDate,
		DeathDate:       params.DeathDate,
		SuggestedByName: params.SuggestedByName,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO suggestions (id, name, bio, lit_period, author_image, born_date, death_date, suggested_by_name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, suggestion.ID, suggestion.Name, suggestion.Bio, suggestion.LitPeriod, suggestion.AuthorImage,
		suggestion.BornDate, suggestion.DeathDate, suggestion.SuggestedByName, suggestion.Status,
		suggestion.CreatedAt, suggestion.UpdatedAt)
	if err != nil {
		return nil, apperr.Internal("failed to create suggestion", err)
	}

	return suggestion, nil
}

// List returns suggestions newest first, optionally filtered by status.
func (s *service) List(ctx context.Context, status Status) ([]*Suggestion, error) {
	query := `
		SELECT id, name, bio, lit_period, author_image, born_date, death_date, suggested_by_name, status, created_at, updated_at
		FROM suggestions`
	args := []any{}
	if status != "" {
		if !status.Valid() {
			return nil, apperr.Validationf("invalid status %q", status)
		}
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Internal("failed to list suggestions", err)
	}
	defer rows.Close()

	result := []*Suggestion{}
	for rows.Next() {
		sg := &Suggestion{}
		if err := rows.Scan(&sg.ID, &sg.Name, &sg.Bio, &sg.LitPeriod, &sg.AuthorImage,
			&sg.BornDate, &sg.DeathDate, &sg.SuggestedByName, &sg.Status, &sg.CreatedAt, &sg.UpdatedAt); err != nil {
			return nil, apperr.Internal("failed to list suggestions", err)
		}
		result = append(result, sg)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to list suggestions", err)
	}
	return result, nil
}

// Get retrieves a suggestion by ID.
func (s *service) Get(ctx context.Context, id string) (*Suggestion, error) {
	suggestionID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid suggestion ID")
	}

	sg := &Suggestion{}
	err = s.db.QueryRowContext(ctx, `
		SELECT id, name, bio, lit_period, author_image, born_date, death_date, suggested_by_name, status, created_at, updated_at
		FROM suggestions WHERE id = $1
	`, suggestionID).Scan(&sg.ID, &sg.Name, &sg.Bio, &sg.LitPeriod, &sg.AuthorImage,
		&sg.BornDate, &sg.DeathDate, &sg.SuggestedByName, &sg.Status, &sg.CreatedAt, &sg.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("author suggestion not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to get suggestion", err)
	}

	return sg, nil
}

// Approve marks a PENDING suggestion APPROVED and registers the suggested
// author. The status is persisted before the author is created, so a
// registry failure leaves an approved suggestion without an author rather
// than a duplicate author on retry.
func (s *service) Approve(ctx context.Context, id string) (*authors.Author, error) {
	sg, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sg.Status != StatusPending {
		return nil, apperr.Validation("only PENDING suggestions can be approved")
	}

	if err := s.setStatus(ctx, sg.ID, StatusApproved); err != nil {
		return nil, err
	}

	return s.registry.CreateAuthor(ctx, authors.CreateParams{
		Name:        sg.Name,
		Bio:         sg.Bio,
		LitPeriod:   sg.LitPeriod,
		AuthorImage: sg.AuthorImage,
		BornDate:    sg.BornDate,
		DeathDate:   sg.DeathDate,
	})
}

// Reject marks a PENDING suggestion REJECTED.
func (s *service) Reject(ctx context.Context, id string) (*Suggestion, error) {
	sg, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sg.Status != StatusPending {
		return nil, apperr.Validation("only PENDING suggestions can be rejected")
	}

	if err := s.setStatus(ctx, sg.ID, StatusRejected); err != nil {
		return nil, err
	}
	sg.Status = StatusRejected
	return sg, nil
}

func (s *service) setStatus(ctx context.Context, id uuid.UUID, status Status) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE suggestions SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now(), id)
	if err != nil {
		return apperr.Internal("failed to update suggestion status", err)
	}
	return nil
}

// Delete removes a suggestion. Only admins may delete; the existence check
// runs first so missing IDs report NotFound even for non-admins.
func (s *service) Delete(ctx context.Context, id string, isAdmin bool) error {
	sg, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin {
		return apperr.Forbidden("you do not have permission to delete this suggestion")
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM suggestions WHERE id = $1`, sg.ID); err != nil {
		return apperr.Internal("failed to delete suggestion", err)
	}
	return nil
}
