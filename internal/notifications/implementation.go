// internal/notifications/implementation.go
package notifications

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"libris/internal/apperr"
	"libris/internal/messaging"
)

// service implements the Service interface. Unlike the order lifecycle
// announcements, notification events are part of the operation contract:
// a publish failure fails the request.
type service struct {
	db        *sql.DB
	publisher messaging.Publisher
}

// NewService creates a new notifications service instance.
func NewService(db *sql.DB, publisher messaging.Publisher) Service {
	return &service{db: db, publisher: publisher}
}

// Create stores an in-app notification keyed by user ID and announces it.
func (s *service) Create(ctx context.Context, params CreateParams) (*Notification, error) {
	if params.UserID == "" || params.Message == "" {
		return nil, apperr.Validation("userId and message are required")
	}
	return s.save(ctx, &Notification{
		ID:      uuid.New(),
		UserID:  params.UserID,
		Message: params.Message,
		Type:    params.Type,
	})
}

// CreateOrderNotification stores an order notification keyed by email.
func (s *service) CreateOrderNotification(ctx context.Context, params OrderParams) (*Notification, error) {
	if params.UserEmail == "" || params.Message == "" {
		return nil, apperr.Validation("userEmail and message are required")
	}
	return s.save(ctx, &Notification{
		ID:        uuid.New(),
		UserEmail: params.UserEmail,
		Message:   params.Message,
		Type:      params.Type,
	})
}

// CreateReturnNotification stores a return notification keyed by email.
func (s *service) CreateReturnNotification(ctx context.Context, params OrderParams) (*Notification, error) {
	if params.UserEmail == "" || params.Message == "" {
		return nil, apperr.Validation("userEmail and message are required")
	}
	return s.save(ctx, &Notification{
		ID:        uuid.New(),
		UserEmail: params.UserEmail,
		Message:   params.Message,
		Type:      params.Type,
	})
}

func (s *service) save(ctx context.Context, n *Notification) (*Notification, error) {
	now := time.Now()
	n.CreatedAt = now
	n.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, user_email, message, type, is_read, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, n.ID, n.UserID, n.UserEmail, n.Message, n.Type, n.IsRead, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return nil, apperr.Internal("failed to create notification", err)
	}

	err = s.publisher.Publish(ctx, messaging.TopicNotificationCreated, map[string]any{
		"id":        n.ID.String(),
		"userId":    n.UserID,
		"userEmail": n.UserEmail,
		"message":   n.Message,
		"type":      n.Type,
	})
	if err != nil {
		return nil, apperr.Internal("failed to create notification", err)
	}

	return n, nil
}

// FindByUser returns a user's notifications newest first. No notifications
// is a valid empty result.
func (s *service) FindByUser(ctx context.Context, userID string) ([]*Notification, error) {
	if userID == "" {
		return nil, apperr.Validation("userId is required")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, user_email, message, type, is_read, created_at, updated_at
		FROM notifications WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch notifications", err)
	}
	defer rows.Close()

	result := []*Notification{}
	for rows.Next() {
		n := &Notification{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.UserEmail, &n.Message, &n.Type,
			&n.IsRead, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, apperr.Internal("failed to fetch notifications", err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to fetch notifications", err)
	}
	return result, nil
}

// MarkAsRead flags a notification read and announces the change.
func (s *service) MarkAsRead(ctx context.Context, id string) (*Notification, error) {
	notificationID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid notification ID")
	}

	n := &Notification{}
	err = s.db.QueryRowContext(ctx, `
		UPDATE notifications SET is_read = TRUE, updated_at = $1 WHERE id = $2
		RETURNING id, user_id, user_email, message, type, is_read, created_at, updated_at
	`, time.Now(), notificationID).Scan(&n.ID, &n.UserID, &n.UserEmail, &n.Message, &n.Type,
		&n.IsRead, &n.CreatedAt, &n.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("notification not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to update notification", err)
	}

	err = s.publisher.Publish(ctx, messaging.TopicNotificationRead, map[string]any{
		"id":        n.ID.String(),
		"isRead":    true,
		"updatedAt": n.UpdatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return nil, apperr.Internal("failed to update notification", err)
	}

	return n, nil
}
