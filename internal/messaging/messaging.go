// internal/messaging/messaging.go
package messaging

import (
	"context"
	"time"
)

// Topics announced on the broker.
const (
	TopicBookBorrowed        = "book.borrowed"
	TopicBookReturned        = "book.returned"
	TopicNotificationCreated = "notification.created"
	TopicNotificationRead    = "notification.read"
)

// BookAvailability is the payload for book.borrowed and book.returned,
// emitted once per order item.
type BookAvailability struct {
	BookID      string    `json:"bookId"`
	IsAvailable bool      `json:"isAvailable"`
	Timestamp   time.Time `json:"timestamp"`
}

// Publisher sends messages to the broker. Implementations may deliver
// synchronously, asynchronously or via a queue; callers that emit lifecycle
// events discard the outcome either way.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// Nop is a Publisher that drops everything. Used when a service runs without
// a broker.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }
