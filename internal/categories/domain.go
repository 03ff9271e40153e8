// internal/categories/domain.go
package categories

import (
	"time"

	"github.com/google/uuid"
)

// Category groups books by genre or theme.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateParams is the payload for adding a category.
type CreateParams struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateParams carries optional field changes for a category.
type UpdateParams struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Page is a paginated result set. An empty page is a valid result here,
// unlike the books and authors listings.
type Page struct {
	Data []*Category `json:"data"`
	Meta Meta        `json:"meta"`
}

type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}
