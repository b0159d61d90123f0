package notification

import (
	"context"
	"time"

	"github.com/farmmarket/backend/internal/domain/notification"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationView is the public view of a notification
type NotificationView struct {
	ID        uuid.UUID  `json:"id"`
	Message   string     `json:"message"`
	IsRead    bool       `json:"is_read"`
	OrderID   *uuid.UUID `json:"order_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// MarkReadResult reports how many notifications a mark-all-read touched
type MarkReadResult struct {
	MarkedRead int64 `json:"marked_read"`
}

// UnreadCountResult carries the unread notification tally
type UnreadCountResult struct {
	Unread int64 `json:"unread"`
}

// NotificationService handles a user's notification feed
type NotificationService struct {
	repo   notification.NotificationRepository
	logger *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo notification.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{repo: repo, logger: logger}
}

// List returns the user's notifications, newest first
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID) ([]NotificationView, error) {
	notifications, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load notifications", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load notifications")
	}

	views := make([]NotificationView, 0, len(notifications))
	for i := range notifications {
		views = append(views, NotificationView{
			ID:        notifications[i].ID,
			Message:   notifications[i].Message,
			IsRead:    notifications[i].IsRead,
			OrderID:   notifications[i].OrderID,
			CreatedAt: notifications[i].CreatedAt,
		})
	}
	return views, nil
}

// MarkAllRead marks the user's unread notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (*MarkReadResult, error) {
	marked, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to mark notifications read", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to mark notifications read")
	}
	return &MarkReadResult{MarkedRead: marked}, nil
}

// UnreadCount returns the user's unread notification tally
func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (*UnreadCountResult, error) {
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to count unread notifications", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count notifications")
	}
	return &UnreadCountResult{Unread: unread}, nil
}
