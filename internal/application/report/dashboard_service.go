// Package report assembles role-specific dashboards from the other
// application services.
package report

import (
	"context"

	appcatalog "github.com/farmmarket/backend/internal/application/catalog"
	appengagement "github.com/farmmarket/backend/internal/application/engagement"
	appnotification "github.com/farmmarket/backend/internal/application/notification"
	apptrade "github.com/farmmarket/backend/internal/application/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BuyerDashboard bundles everything the buyer landing page shows. The
// rating map and the purchased/reviewed id sets let the page annotate
// each catalog card without extra round trips.
type BuyerDashboard struct {
	Products            []appcatalog.ProductView          `json:"products"`
	RatingByProduct     map[uuid.UUID]float64             `json:"rating_by_product"`
	Orders              []apptrade.OrderView              `json:"orders"`
	Wishlist            []appengagement.WishlistEntryView `json:"wishlist"`
	PurchasedProductIDs []uuid.UUID                       `json:"purchased_product_ids"`
	ReviewedProductIDs  []uuid.UUID                       `json:"reviewed_product_ids"`
	UnreadNotifications int64                             `json:"unread_notifications"`
}

// FarmerDashboard bundles everything the farmer landing page shows
type FarmerDashboard struct {
	Products            []appcatalog.ProductView   `json:"products"`
	IncomingOrders      []apptrade.OrderView       `json:"incoming_orders"`
	Sales               *apptrade.SalesSummaryView `json:"sales"`
	UnreadNotifications int64                      `json:"unread_notifications"`
}

// DashboardService builds role-specific dashboards
type DashboardService struct {
	products      *appcatalog.ProductService
	orders        *apptrade.OrderService
	engagement    *appengagement.EngagementService
	notifications *appnotification.NotificationService
	logger        *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	products *appcatalog.ProductService,
	orders *apptrade.OrderService,
	engagement *appengagement.EngagementService,
	notifications *appnotification.NotificationService,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		products:      products,
		orders:        orders,
		engagement:    engagement,
		notifications: notifications,
		logger:        logger,
	}
}

// ForBuyer builds the buyer dashboard: the product catalog, the buyer's
// orders and wishlist, and their unread notification count
func (s *DashboardService) ForBuyer(ctx context.Context, buyerID uuid.UUID, browse appcatalog.ListProductsInput) (*BuyerDashboard, error) {
	products, err := s.products.ListProducts(ctx, browse)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListBuyerOrders(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	wishlist, err := s.engagement.ListWishlist(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	unread, err := s.notifications.UnreadCount(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	productIDs := make([]uuid.UUID, 0, len(products))
	for i := range products {
		productIDs = append(productIDs, products[i].ID)
	}
	ratings, err := s.engagement.AverageRatings(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(orders))
	purchased := make([]uuid.UUID, 0, len(orders))
	for i := range orders {
		if !seen[orders[i].ProductID] {
			seen[orders[i].ProductID] = true
			purchased = append(purchased, orders[i].ProductID)
		}
	}
	reviewed, err := s.engagement.ReviewedAmong(ctx, buyerID, purchased)
	if err != nil {
		return nil, err
	}

	return &BuyerDashboard{
		Products:            products,
		RatingByProduct:     ratings,
		Orders:              orders,
		Wishlist:            wishlist,
		PurchasedProductIDs: purchased,
		ReviewedProductIDs:  reviewed,
		UnreadNotifications: unread.Unread,
	}, nil
}

// ForFarmer builds the farmer dashboard: their own listings, incoming
// orders, the sales summary, and their unread notification count
func (s *DashboardService) ForFarmer(ctx context.Context, farmerID uuid.UUID) (*FarmerDashboard, error) {
	products, err := s.products.ListFarmerProducts(ctx, farmerID)
	if err != nil {
		return nil, err
	}
	incoming, err := s.orders.ListIncomingOrders(ctx, farmerID)
	if err != nil {
		return nil, err
	}
	sales, err := s.orders.SalesSummary(ctx, farmerID)
	if err != nil {
		return nil, err
	}
	unread, err := s.notifications.UnreadCount(ctx, farmerID)
	if err != nil {
		return nil, err
	}

	return &FarmerDashboard{
		Products:            products,
		IncomingOrders:      incoming,
		Sales:               sales,
		UnreadNotifications: unread.Unread,
	}, nil
}
