// internal/notifications/service.go
package notifications

import "context"

// Service defines the interface for the notifications service.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*Notification, error)
	CreateOrderNotification(ctx context.Context, params OrderParams) (*Notification, error)
	CreateReturnNotification(ctx context.Context, params OrderParams) (*Notification, error)
	FindByUser(ctx context.Context, userID string) ([]*Notification, error)
	MarkAsRead(ctx context.Context, id string) (*Notification, error)
}
