package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/farmmarket/backend/internal/domain/catalog"
	"github.com/farmmarket/backend/internal/domain/notification"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/farmmarket/backend/internal/domain/trade"
	"github.com/farmmarket/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// OrderService handles purchases, fulfillment and sales reporting
type OrderService struct {
	orderRepo   trade.OrderRepository
	productRepo catalog.ProductRepository
	cartRepo    trade.CartRepository
	logger      *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo trade.OrderRepository,
	productRepo catalog.ProductRepository,
	cartRepo trade.CartRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		logger:      logger,
	}
}

// PlaceOrder purchases a product for the buyer. The order, the stock
// decrement and the farmer's notification commit atomically; if stock runs
// short nothing is written. The product is also removed from the buyer's
// cart when present.
func (s *OrderService) PlaceOrder(ctx context.Context, buyerID uuid.UUID, input PlaceOrderInput) (*OrderView, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "place",
		attribute.String("buyer_id", buyerID.String()),
		attribute.String("product_id", input.ProductID.String()),
		attribute.Int("quantity", input.Quantity))
	defer span.End()

	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	order, err := trade.NewOrder(buyerID, product, input.Quantity)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	notif, err := notification.ForOrder(product.FarmerID, order.ID,
		fmt.Sprintf("New order: %d x %s", order.Quantity, product.Name))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.orderRepo.CreateWithStockDecrement(ctx, order, notif); err != nil {
		telemetry.RecordError(span, err)
		if errors.Is(err, shared.ErrInsufficientStock) || errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("Failed to place order", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to place order")
	}

	if err := s.cartRepo.Remove(ctx, buyerID, product.ID); err != nil && !errors.Is(err, shared.ErrNotFound) {
		// The purchase already committed; a stale cart line is harmless
		s.logger.Warn("Failed to remove purchased product from cart", zap.Error(err))
	}

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("buyer_id", buyerID.String()),
		zap.String("product_id", product.ID.String()),
		zap.Int("quantity", order.Quantity))

	return orderView(order, product.Name), nil
}

// ListBuyerOrders returns the buyer's purchase history, newest first
func (s *OrderService) ListBuyerOrders(ctx context.Context, buyerID uuid.UUID) ([]OrderView, error) {
	orders, err := s.orderRepo.FindByBuyer(ctx, buyerID)
	if err != nil {
		s.logger.Error("Failed to list buyer orders", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list orders")
	}
	return s.toViews(ctx, orders), nil
}

// ListIncomingOrders returns orders placed against the farmer's products,
// newest first
func (s *OrderService) ListIncomingOrders(ctx context.Context, farmerID uuid.UUID) ([]OrderView, error) {
	orders, err := s.orderRepo.FindIncomingForFarmer(ctx, farmerID)
	if err != nil {
		s.logger.Error("Failed to list incoming orders", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list orders")
	}
	return s.toViews(ctx, orders), nil
}

// UpdateOrderStatus moves an order forward in its lifecycle. Only the farmer
// who owns the ordered product may do this; anyone else sees not found. The
// buyer is notified in the same transaction.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, farmerID, orderID uuid.UUID, input UpdateOrderStatusInput) (*OrderView, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "update_status",
		attribute.String("order_id", orderID.String()),
		attribute.String("status", input.Status))
	defer span.End()

	status, err := trade.ParseOrderStatus(input.Status)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	order, err := s.orderRepo.FindByIDForFarmer(ctx, orderID, farmerID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := order.TransitionTo(status); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	notif, err := notification.ForOrder(order.BuyerID, order.ID,
		fmt.Sprintf("Your order is now %s", status))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(ctx, order, notif); err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to update order status", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update order status")
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", order.ID.String()),
		zap.String("status", status.String()))

	return orderView(order, s.productName(ctx, order.ProductID)), nil
}

// SalesSummary aggregates the farmer's sales per product and per category
func (s *OrderService) SalesSummary(ctx context.Context, farmerID uuid.UUID) (*SalesSummaryView, error) {
	byProduct, err := s.orderRepo.SalesByProduct(ctx, farmerID)
	if err != nil {
		s.logger.Error("Failed to aggregate sales by product", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build sales summary")
	}
	byCategory, err := s.orderRepo.SalesByCategory(ctx, farmerID)
	if err != nil {
		s.logger.Error("Failed to aggregate sales by category", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build sales summary")
	}

	summary := &SalesSummaryView{
		ByProduct:  make([]ProductSalesView, 0, len(byProduct)),
		ByCategory: make([]CategorySalesView, 0, len(byCategory)),
	}

	totalUnits := int64(0)
	totalRevenue := decimal.Zero
	for _, row := range byProduct {
		totalUnits += row.UnitsSold
		totalRevenue = totalRevenue.Add(row.Revenue)
		summary.ByProduct = append(summary.ByProduct, ProductSalesView{
			ProductID: row.ProductID,
			Name:      row.Name,
			UnitsSold: row.UnitsSold,
			Revenue:   row.Revenue.StringFixed(2),
		})
	}
	topUnits := int64(-1)
	for _, row := range byCategory {
		name := row.Category.String()
		summary.ByCategory = append(summary.ByCategory, CategorySalesView{
			Category:  name,
			UnitsSold: row.UnitsSold,
			Revenue:   row.Revenue.StringFixed(2),
		})
		// Ties on units resolve to the lexicographically smaller category
		if row.UnitsSold > topUnits || (row.UnitsSold == topUnits && name < summary.TopCategory) {
			summary.TopCategory = name
			topUnits = row.UnitsSold
		}
	}

	summary.TotalUnitsSold = totalUnits
	summary.TotalRevenue = totalRevenue.StringFixed(2)
	return summary, nil
}

func (s *OrderService) toViews(ctx context.Context, orders []trade.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, *orderView(&orders[i], s.productName(ctx, orders[i].ProductID)))
	}
	return views
}

func (s *OrderService) productName(ctx context.Context, productID uuid.UUID) string {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return ""
	}
	return product.Name
}

func orderView(order *trade.Order, productName string) *OrderView {
	return &OrderView{
		ID:          order.ID,
		ProductID:   order.ProductID,
		ProductName: productName,
		BuyerID:     order.BuyerID,
		Quantity:    order.Quantity,
		UnitPrice:   order.UnitPrice.StringFixed(2),
		Total:       order.Total().StringFixed(2),
		OrderDate:   order.OrderDate,
		Status:      order.Status.String(),
	}
}
