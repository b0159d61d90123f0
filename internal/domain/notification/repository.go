package notification

import (
	"context"

	"github.com/google/uuid"
)

// NotificationRepository defines persistence operations for notifications
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error

	// FindByUser returns the user's notifications, newest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Notification, error)

	// MarkAllRead marks every unread notification for the user as read and
	// returns the number of rows affected
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)

	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}
