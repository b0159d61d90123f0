package trade

import (
	"time"

	"github.com/farmmarket/backend/internal/domain/catalog"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfillment state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
)

// statusRank orders the lifecycle; transitions must move strictly forward
var statusRank = map[OrderStatus]int{
	OrderStatusPending:   0,
	OrderStatusShipped:   1,
	OrderStatusDelivered: 2,
}

// ParseOrderStatus converts a string to an OrderStatus, rejecting values
// outside the allowed set
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered:
		return OrderStatus(s), nil
	}
	return "", shared.NewDomainError("INVALID_STATUS", "Status must be one of Pending, Shipped, Delivered")
}

// IsValid reports whether the status is a member of the allowed set
func (s OrderStatus) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

func (s OrderStatus) String() string {
	return string(s)
}

// Order represents a purchase of a product by a buyer.
// The order date is set once at creation and never changes.
type Order struct {
	shared.BaseAggregateRoot
	BuyerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"` // product price at purchase time
	OrderDate time.Time       `gorm:"not null"`
	Status    OrderStatus     `gorm:"type:varchar(20);not null;default:'Pending'"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a pending order against the given product, capturing the
// unit price at purchase time. Stock sufficiency is enforced by the
// repository's conditional decrement, not here.
func NewOrder(buyerID uuid.UUID, product *catalog.Product, quantity int) (*Order, error) {
	if product == nil {
		return nil, shared.ErrNotFound
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Order quantity must be greater than zero")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BuyerID:           buyerID,
		ProductID:         product.ID,
		Quantity:          quantity,
		UnitPrice:         product.Price,
		OrderDate:         time.Now(),
		Status:            OrderStatusPending,
	}, nil
}

// TransitionTo moves the order to a new status. Transitions are strictly
// forward-only: Pending -> Shipped -> Delivered.
func (o *Order) TransitionTo(status OrderStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Status must be one of Pending, Shipped, Delivered")
	}
	if statusRank[status] <= statusRank[o.Status] {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "Order status can only move forward")
	}

	o.Status = status
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Total returns quantity times the captured unit price
func (o *Order) Total() decimal.Decimal {
	return o.UnitPrice.Mul(decimal.NewFromInt(int64(o.Quantity)))
}
