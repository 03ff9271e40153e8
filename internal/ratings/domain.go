// internal/ratings/domain.go
package ratings

import (
	"time"

	"github.com/google/uuid"
)

// Rating is a user score for a book.
type Rating struct {
	ID        uuid.UUID `json:"id"`
	BookID    uuid.UUID `json:"bookId"`
	Value     int       `json:"value"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateParams is the payload for adding a rating.
type CreateParams struct {
	BookID  string `json:"bookId"`
	Value   int    `json:"value"`
	Comment string `json:"comment"`
}

// UpdateParams carries optional field changes for a rating.
type UpdateParams struct {
	Value   *int    `json:"value"`
	Comment *string `json:"comment"`
}

// Page is a paginated result set.
type Page struct {
	Data []*Rating `json:"data"`
	Meta Meta      `json:"meta"`
}

type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}
