package trade

import (
	"context"

	"github.com/farmmarket/backend/internal/domain/catalog"
	"github.com/farmmarket/backend/internal/domain/notification"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSales is a per-product sales rollup for a farmer
type ProductSales struct {
	ProductID uuid.UUID
	Name      string
	UnitsSold int64
	Revenue   decimal.Decimal
}

// CategorySales is a per-category sales rollup for a farmer
type CategorySales struct {
	Category  catalog.Category
	UnitsSold int64
	Revenue   decimal.Decimal
}

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForFarmer loads the order only if its product belongs to the
	// given farmer. A missing order and an order on someone else's product
	// are both reported as not found.
	FindByIDForFarmer(ctx context.Context, orderID, farmerID uuid.UUID) (*Order, error)

	// FindByBuyer returns the buyer's orders, newest first
	FindByBuyer(ctx context.Context, buyerID uuid.UUID) ([]Order, error)

	// FindIncomingForFarmer returns orders placed against the farmer's
	// products, newest first
	FindIncomingForFarmer(ctx context.Context, farmerID uuid.UUID) ([]Order, error)

	// CreateWithStockDecrement inserts the order, decrements the product's
	// stock and writes the farmer notification in one transaction. The
	// decrement is conditional on sufficient remaining stock; when stock is
	// short nothing is written and ErrInsufficientStock is returned.
	CreateWithStockDecrement(ctx context.Context, order *Order, notif *notification.Notification) error

	// UpdateStatus persists a status change together with the buyer
	// notification in one transaction
	UpdateStatus(ctx context.Context, order *Order, notif *notification.Notification) error

	// HasPurchased reports whether the buyer has at least one order for the
	// product, in any status
	HasPurchased(ctx context.Context, buyerID, productID uuid.UUID) (bool, error)

	// SalesByProduct aggregates units sold and revenue per product for the
	// farmer, ordered by revenue descending then product name ascending
	SalesByProduct(ctx context.Context, farmerID uuid.UUID) ([]ProductSales, error)

	// SalesByCategory aggregates units sold and revenue per category for the
	// farmer, ordered by revenue descending then category ascending
	SalesByCategory(ctx context.Context, farmerID uuid.UUID) ([]CategorySales, error)

	Count(ctx context.Context) (int64, error)
}

// CartRepository defines persistence operations for cart items
type CartRepository interface {
	// Upsert inserts the item or, when the buyer already has the product in
	// the cart, replaces the quantity
	Upsert(ctx context.Context, item *CartItem) error

	FindByUser(ctx context.Context, userID uuid.UUID) ([]CartItem, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}
