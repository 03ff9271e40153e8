// internal/notifications/domain.go
package notifications

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a message addressed to a user, either by internal user ID
// or by email depending on which collaborator created it.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	UserEmail string    `json:"userEmail,omitempty"`
	Message   string    `json:"message"`
	Type      string    `json:"type,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateParams is the payload for an in-app notification keyed by user ID.
type CreateParams struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// OrderParams is the payload for an order notification keyed by email.
type OrderParams struct {
	UserEmail string `json:"userEmail"`
	Message   string `json:"message"`
	Type      string `json:"type"`
}
