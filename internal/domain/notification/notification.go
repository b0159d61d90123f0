package notification

import (
	"strings"
	"time"

	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Notification is a message delivered to a single user. Notifications are
// written in the same transaction as the event that caused them; there is no
// background delivery pipeline.
type Notification struct {
	shared.BaseEntity
	UserID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Message string     `gorm:"type:varchar(255);not null"`
	IsRead  bool       `gorm:"not null;default:false"`
	OrderID *uuid.UUID `gorm:"type:uuid;index"` // set when the notification refers to an order
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// New creates an unread notification for the given user
func New(userID uuid.UUID, message string) (*Notification, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Notification message is required")
	}
	if len(message) > 255 {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Notification message must be at most 255 characters")
	}

	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Message:    message,
		IsRead:     false,
	}, nil
}

// ForOrder creates an unread notification linked to an order, so the
// notification is removed if the order is ever deleted
func ForOrder(userID, orderID uuid.UUID, message string) (*Notification, error) {
	n, err := New(userID, message)
	if err != nil {
		return nil, err
	}
	n.OrderID = &orderID
	return n, nil
}

// MarkRead flips the notification to read
func (n *Notification) MarkRead() {
	n.IsRead = true
	n.UpdatedAt = time.Now()
}
