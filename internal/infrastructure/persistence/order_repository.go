package persistence

import (
	"context"
	"errors"

	"github.com/farmmarket/backend/internal/domain/catalog"
	"github.com/farmmarket/backend/internal/domain/notification"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/farmmarket/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

var _ trade.OrderRepository = (*GormOrderRepository)(nil)

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDForFarmer loads the order only if its product belongs to the given
// farmer. Missing orders and orders on other farmers' products both come
// back as not found, so callers cannot probe for order existence.
func (r *GormOrderRepository) FindByIDForFarmer(ctx context.Context, orderID, farmerID uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).
		Joins("JOIN products ON products.id = orders.product_id").
		Where("orders.id = ? AND products.farmer_id = ?", orderID, farmerID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByBuyer returns the buyer's orders, newest first
func (r *GormOrderRepository) FindByBuyer(ctx context.Context, buyerID uuid.UUID) ([]trade.Order, error) {
	var orders []trade.Order
	if err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("order_date DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindIncomingForFarmer returns orders placed against the farmer's products,
// newest first
func (r *GormOrderRepository) FindIncomingForFarmer(ctx context.Context, farmerID uuid.UUID) ([]trade.Order, error) {
	var orders []trade.Order
	if err := r.db.WithContext(ctx).
		Joins("JOIN products ON products.id = orders.product_id").
		Where("products.farmer_id = ?", farmerID).
		Order("orders.order_date DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateWithStockDecrement inserts the order, decrements stock and writes
// the farmer notification atomically. The decrement only succeeds when
// enough stock remains; concurrent purchases of the last units cannot both
// commit.
func (r *GormOrderRepository) CreateWithStockDecrement(ctx context.Context, order *trade.Order, notif *notification.Notification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&catalog.Product{}).
			Where("id = ? AND quantity >= ?", order.ProductID, order.Quantity).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", order.Quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&catalog.Product{}).
				Where("id = ?", order.ProductID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return shared.ErrNotFound
			}
			return shared.ErrInsufficientStock
		}

		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if notif != nil {
			if err := tx.Create(notif).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateStatus persists a status change together with the buyer notification
// in one transaction
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, order *trade.Order, notif *notification.Notification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&trade.Order{}).
			Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"status":     order.Status,
				"updated_at": order.UpdatedAt,
				"version":    order.Version,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		if notif != nil {
			if err := tx.Create(notif).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// HasPurchased reports whether the buyer has at least one order for the
// product, in any status
func (r *GormOrderRepository) HasPurchased(ctx context.Context, buyerID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&trade.Order{}).
		Where("buyer_id = ? AND product_id = ?", buyerID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

type productSalesRow struct {
	ProductID uuid.UUID
	Name      string
	UnitsSold int64
	Revenue   decimal.Decimal
}

type categorySalesRow struct {
	Category  string
	UnitsSold int64
	Revenue   decimal.Decimal
}

// SalesByProduct aggregates units sold and revenue per product for the
// farmer, highest revenue first with product name as tie-break
func (r *GormOrderRepository) SalesByProduct(ctx context.Context, farmerID uuid.UUID) ([]trade.ProductSales, error) {
	var rows []productSalesRow
	if err := r.db.WithContext(ctx).Model(&trade.Order{}).
		Select("orders.product_id, products.name, SUM(orders.quantity) AS units_sold, SUM(orders.quantity * orders.unit_price) AS revenue").
		Joins("JOIN products ON products.id = orders.product_id").
		Where("products.farmer_id = ?", farmerID).
		Group("orders.product_id, products.name").
		Order("revenue DESC, products.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	sales := make([]trade.ProductSales, len(rows))
	for i, row := range rows {
		sales[i] = trade.ProductSales{
			ProductID: row.ProductID,
			Name:      row.Name,
			UnitsSold: row.UnitsSold,
			Revenue:   row.Revenue.Round(2),
		}
	}
	return sales, nil
}

// SalesByCategory aggregates units sold and revenue per category for the
// farmer, highest revenue first with category as tie-break
func (r *GormOrderRepository) SalesByCategory(ctx context.Context, farmerID uuid.UUID) ([]trade.CategorySales, error) {
	var rows []categorySalesRow
	if err := r.db.WithContext(ctx).Model(&trade.Order{}).
		Select("products.category, SUM(orders.quantity) AS units_sold, SUM(orders.quantity * orders.unit_price) AS revenue").
		Joins("JOIN products ON products.id = orders.product_id").
		Where("products.farmer_id = ?", farmerID).
		Group("products.category").
		Order("revenue DESC, products.category ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	sales := make([]trade.CategorySales, len(rows))
	for i, row := range rows {
		sales[i] = trade.CategorySales{
			Category:  catalog.Category(row.Category),
			UnitsSold: row.UnitsSold,
			Revenue:   row.Revenue.Round(2),
		}
	}
	return sales, nil
}

// Count returns the total number of orders
func (r *GormOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&trade.Order{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
