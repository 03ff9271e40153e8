// internal/books/domain.go
package books

import (
	"time"

	"github.com/google/uuid"
)

// Book represents a title in the library catalog.
type Book struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Year        int        `json:"year,omitempty"`
	IsAvailable bool       `json:"isAvailable"`
	AuthorID    uuid.UUID  `json:"authorId"`
	CategoryID  *uuid.UUID `json:"categoryId,omitempty"`
	AvgRating   float64    `json:"avgRating,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CreateParams is the payload for adding a book.
type CreateParams struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Year        int    `json:"year"`
	AuthorID    string `json:"authorId"`
	CategoryID  string `json:"categoryId"`
}

// UpdateParams carries optional field changes for a book.
type UpdateParams struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Year        *int    `json:"year"`
	IsAvailable *bool   `json:"isAvailable"`
}

// ListQuery drives the paginated catalog listing.
type ListQuery struct {
	Search string
	Page   int
	Limit  int
}

// Page is a paginated result set.
type Page struct {
	Data     []*Book `json:"data"`
	Total    int     `json:"total"`
	Page     int     `json:"page"`
	LastPage int     `json:"lastPage"`
}
