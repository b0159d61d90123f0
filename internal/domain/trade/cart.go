package trade

import (
	"time"

	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem holds a product a buyer intends to purchase. One row per
// (user, product); adding again replaces the quantity.
type CartItem struct {
	shared.BaseEntity
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product,priority:2"`
	Quantity  int       `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// NewCartItem creates a cart entry
func NewCartItem(userID, productID uuid.UUID, quantity int) (*CartItem, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Cart quantity must be greater than zero")
	}
	return &CartItem{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ProductID:  productID,
		Quantity:   quantity,
	}, nil
}

// SetQuantity replaces the quantity of an existing entry
func (c *CartItem) SetQuantity(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Cart quantity must be greater than zero")
	}
	c.Quantity = quantity
	c.UpdatedAt = time.Now()
	return nil
}

// LineTotal returns the entry total at the given unit price
func (c *CartItem) LineTotal(unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(c.Quantity)))
}
