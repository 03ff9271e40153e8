// internal/suggestions/domain.go
package suggestions

import (
	"time"

	"github.com/google/uuid"
)

// Status is the review state of an author suggestion.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Valid reports whether s is a known suggestion status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Suggestion is an author proposal submitted by a reader. Suggestions start
// PENDING and move to APPROVED or REJECTED exactly once.
type Suggestion struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Bio             string    `json:"bio,omitempty"`
	LitPeriod       string    `json:"litPeriod"`
	AuthorImage     string    `json:"authorImage,omitempty"`
	BornDate        string    `json:"bornDate"`
	DeathDate       string    `json:"deathDate,omitempty"`
	SuggestedByName string    `json:"suggestedByName"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CreateParams is the payload for submitting a suggestion.
type CreateParams struct {
	Name            string `json:"name"`
	Bio             string `json:"bio"`
	LitPeriod       string `json:"litPeriod"`
	AuthorImage     string `json:"authorImage"`
	BornDate        string `json:"bornDate"`
	DeathDate       string `json:"deathDate"`
	SuggestedByName string `json:"suggestedByName"`
}
