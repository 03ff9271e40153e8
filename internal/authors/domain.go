// internal/authors/domain.go
package authors

import (
	"time"

	"github.com/google/uuid"
)

// Author represents a writer in the catalog. Born and death dates are kept as
// ISO dates (YYYY-MM-DD) straight from the client.
type Author struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Bio         string    `json:"bio,omitempty"`
	LitPeriod   string    `json:"litPeriod,omitempty"`
	AuthorImage string    `json:"authorImage,omitempty"`
	BornDate    string    `json:"bornDate"`
	DeathDate   string    `json:"deathDate,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateParams is the payload for adding an author.
type CreateParams struct {
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	LitPeriod   string `json:"litPeriod"`
	AuthorImage string `json:"authorImage"`
	BornDate    string `json:"bornDate"`
	DeathDate   string `json:"deathDate"`
}

// UpdateParams carries optional field changes for an author.
type UpdateParams struct {
	Name        *string `json:"name"`
	Bio         *string `json:"bio"`
	LitPeriod   *string `json:"litPeriod"`
	AuthorImage *string `json:"authorImage"`
	BornDate    *string `json:"bornDate"`
	DeathDate   *string `json:"deathDate"`
}

// Page is a paginated result set.
type Page struct {
	Data []*Author `json:"data"`
	Meta Meta      `json:"meta"`
}

// Meta describes pagination state.
type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}
