package trade

import (
	"time"

	"github.com/google/uuid"
)

// PlaceOrderInput carries a purchase request
type PlaceOrderInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
}

// UpdateOrderStatusInput carries a fulfillment status change
type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// OrderView is the public view of an order
type OrderView struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	BuyerID     uuid.UUID `json:"buyer_id"`
	Quantity    int       `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	Total       string    `json:"total"`
	OrderDate   time.Time `json:"order_date"`
	Status      string    `json:"status"`
}

// ProductSalesView is a per-product line in the sales summary
type ProductSalesView struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	UnitsSold int64     `json:"units_sold"`
	Revenue   string    `json:"revenue"`
}

// CategorySalesView is a per-category line in the sales summary
type CategorySalesView struct {
	Category  string `json:"category"`
	UnitsSold int64  `json:"units_sold"`
	Revenue   string `json:"revenue"`
}

// SalesSummaryView aggregates a farmer's sales
type SalesSummaryView struct {
	TotalUnitsSold int64               `json:"total_units_sold"`
	TotalRevenue   string              `json:"total_revenue"`
	TopCategory    string              `json:"top_category,omitempty"`
	ByProduct      []ProductSalesView  `json:"by_product"`
	ByCategory     []CategorySalesView `json:"by_category"`
}

// AddToCartInput carries a cart upsert request
type AddToCartInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
}

// CartItemView is one line of a buyer's cart
type CartItemView struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	UnitPrice   string    `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	LineTotal   string    `json:"line_total"`
	InStock     bool      `json:"in_stock"`
}

// CartView is a buyer's cart with its running total
type CartView struct {
	Items []CartItemView `json:"items"`
	Total string         `json:"total"`
}
