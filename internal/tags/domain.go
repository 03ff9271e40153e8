// internal/tags/domain.go
package tags

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a free-form label attached to books. Names are unique.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
