package trade

import (
	"context"

	"github.com/farmmarket/backend/internal/domain/catalog"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/farmmarket/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartService handles the buyer's cart
type CartService struct {
	cartRepo    trade.CartRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(
	cartRepo trade.CartRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// AddToCart puts a product in the buyer's cart. Adding a product already in
// the cart replaces the quantity rather than accumulating it.
func (s *CartService) AddToCart(ctx context.Context, buyerID uuid.UUID, input AddToCartInput) error {
	if _, err := s.productRepo.FindByID(ctx, input.ProductID); err != nil {
		return err
	}

	item, err := trade.NewCartItem(buyerID, input.ProductID, input.Quantity)
	if err != nil {
		return err
	}

	if err := s.cartRepo.Upsert(ctx, item); err != nil {
		s.logger.Error("Failed to upsert cart item", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to add product to cart")
	}
	return nil
}

// ViewCart returns the buyer's cart priced at current product prices. Lines
// whose product has since been deleted are dropped from the view.
func (s *CartService) ViewCart(ctx context.Context, buyerID uuid.UUID) (*CartView, error) {
	items, err := s.cartRepo.FindByUser(ctx, buyerID)
	if err != nil {
		s.logger.Error("Failed to load cart", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load cart")
	}

	view := &CartView{Items: make([]CartItemView, 0, len(items))}
	total := decimal.Zero

	for i := range items {
		product, err := s.productRepo.FindByID(ctx, items[i].ProductID)
		if err != nil {
			continue
		}
		lineTotal := items[i].LineTotal(product.Price)
		total = total.Add(lineTotal)
		view.Items = append(view.Items, CartItemView{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price.StringFixed(2),
			Quantity:    items[i].Quantity,
			LineTotal:   lineTotal.StringFixed(2),
			InStock:     product.HasStock(items[i].Quantity),
		})
	}

	view.Total = total.StringFixed(2)
	return view, nil
}

// RemoveFromCart drops one product from the buyer's cart
func (s *CartService) RemoveFromCart(ctx context.Context, buyerID, productID uuid.UUID) error {
	return s.cartRepo.Remove(ctx, buyerID, productID)
}

// ClearCart empties the buyer's cart
func (s *CartService) ClearCart(ctx context.Context, buyerID uuid.UUID) error {
	if err := s.cartRepo.Clear(ctx, buyerID); err != nil {
		s.logger.Error("Failed to clear cart", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to clear cart")
	}
	return nil
}
