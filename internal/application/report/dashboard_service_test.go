package report

import (
	"context"
	"testing"
	"time"

	appcatalog "github.com/farmmarket/backend/internal/application/catalog"
	appengagement "github.com/farmmarket/backend/internal/application/engagement"
	appnotification "github.com/farmmarket/backend/internal/application/notification"
	apptrade "github.com/farmmarket/backend/internal/application/trade"
	"github.com/farmmarket/backend/internal/domain/catalog"
	"github.com/farmmarket/backend/internal/domain/engagement"
	"github.com/farmmarket/backend/internal/domain/identity"
	"github.com/farmmarket/backend/internal/domain/notification"
	"github.com/farmmarket/backend/internal/domain/trade"
	"github.com/farmmarket/backend/internal/infrastructure/persistence"
	"github.com/farmmarket/backend/internal/infrastructure/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// dashboardFixture wires the real services over an in-memory database so
// the dashboard is assembled the same way it is in production.
type dashboardFixture struct {
	db        *gorm.DB
	dashboard *DashboardService
	orders    *apptrade.OrderService
	wishes    *appengagement.EngagementService
}

func setupFixture(t *testing.T) *dashboardFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&identity.User{},
		&identity.Profile{},
		&catalog.Product{},
		&trade.Order{},
		&trade.CartItem{},
		&engagement.WishlistItem{},
		&engagement.Review{},
		&notification.Notification{},
	))

	log := zap.NewNop()
	userRepo := persistence.NewGormUserRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	cartRepo := persistence.NewGormCartRepository(db)
	wishlistRepo := persistence.NewGormWishlistRepository(db)
	reviewRepo := persistence.NewGormReviewRepository(db)
	notificationRepo := persistence.NewGormNotificationRepository(db)

	products := appcatalog.NewProductService(productRepo, userRepo, storage.NewStubObjectStorage(), 15*time.Minute, log)
	orders := apptrade.NewOrderService(orderRepo, productRepo, cartRepo, log)
	wishes := appengagement.NewEngagementService(wishlistRepo, reviewRepo, orderRepo, productRepo, log)
	notifications := appnotification.NewNotificationService(notificationRepo, log)

	return &dashboardFixture{
		db:        db,
		dashboard: NewDashboardService(products, orders, wishes, notifications, log),
		orders:    orders,
		wishes:    wishes,
	}
}

func (f *dashboardFixture) seedUser(t *testing.T, username string, role identity.Role) *identity.User {
	t.Helper()

	user, err := identity.NewUser(username, username+"@example.com", "correct-horse-battery")
	require.NoError(t, err)
	require.NoError(t, f.db.Create(user).Error)

	profile, err := identity.NewProfile(user.ID, role)
	require.NoError(t, err)
	require.NoError(t, f.db.Create(profile).Error)

	return user
}

func (f *dashboardFixture) seedProduct(t *testing.T, farmer *identity.User, name string, category catalog.Category, price string, quantity int) *catalog.Product {
	t.Helper()

	product, err := catalog.NewProduct(farmer.ID, identity.RoleFarmer, name, category, decimal.RequireFromString(price), quantity)
	require.NoError(t, err)
	require.NoError(t, f.db.Create(product).Error)

	return product
}

func TestDashboardService_ForBuyer(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	farmer := f.seedUser(t, "greenfield", identity.RoleFarmer)
	buyer := f.seedUser(t, "alice", identity.RoleBuyer)
	honey := f.seedProduct(t, farmer, "Raw Honey", catalog.CategorySpicesHerbs, "12.00", 10)
	berries := f.seedProduct(t, farmer, "Blueberries", catalog.CategoryFruitsBerries, "4.50", 5)

	_, err := f.orders.PlaceOrder(ctx, buyer.ID, apptrade.PlaceOrderInput{ProductID: honey.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = f.wishes.SubmitReview(ctx, buyer.ID, appengagement.SubmitReviewInput{ProductID: honey.ID, Rating: 4, Comment: "Lovely"})
	require.NoError(t, err)
	_, err = f.wishes.ToggleWishlist(ctx, buyer.ID, berries.ID)
	require.NoError(t, err)

	view, err := f.dashboard.ForBuyer(ctx, buyer.ID, appcatalog.ListProductsInput{})
	require.NoError(t, err)

	require.Len(t, view.Products, 2)
	assert.Equal(t, 4.0, view.RatingByProduct[honey.ID])
	assert.Equal(t, 0.0, view.RatingByProduct[berries.ID])
	require.Len(t, view.Orders, 1)
	assert.Equal(t, honey.ID, view.Orders[0].ProductID)
	require.Len(t, view.Wishlist, 1)
	assert.Equal(t, "Blueberries", view.Wishlist[0].ProductName)
	require.Len(t, view.PurchasedProductIDs, 1)
	assert.Equal(t, honey.ID, view.PurchasedProductIDs[0])
	require.Len(t, view.ReviewedProductIDs, 1)
	assert.Equal(t, honey.ID, view.ReviewedProductIDs[0])
	assert.Equal(t, int64(0), view.UnreadNotifications, "the order notified the farmer, not the buyer")
}

func TestDashboardService_ForBuyer_CategoryFilter(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	farmer := f.seedUser(t, "greenfield", identity.RoleFarmer)
	buyer := f.seedUser(t, "alice", identity.RoleBuyer)
	f.seedProduct(t, farmer, "Raw Honey", catalog.CategorySpicesHerbs, "12.00", 10)
	f.seedProduct(t, farmer, "Blueberries", catalog.CategoryFruitsBerries, "4.50", 5)

	view, err := f.dashboard.ForBuyer(ctx, buyer.ID, appcatalog.ListProductsInput{Category: "Fruits - Berries"})
	require.NoError(t, err)

	require.Len(t, view.Products, 1)
	assert.Equal(t, "Blueberries", view.Products[0].Name)
	assert.Empty(t, view.PurchasedProductIDs)
	assert.Empty(t, view.ReviewedProductIDs)
}

func TestDashboardService_ForFarmer(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	farmer := f.seedUser(t, "greenfield", identity.RoleFarmer)
	buyer := f.seedUser(t, "alice", identity.RoleBuyer)
	honey := f.seedProduct(t, farmer, "Raw Honey", catalog.CategorySpicesHerbs, "12.00", 10)

	_, err := f.orders.PlaceOrder(ctx, buyer.ID, apptrade.PlaceOrderInput{ProductID: honey.ID, Quantity: 3})
	require.NoError(t, err)

	view, err := f.dashboard.ForFarmer(ctx, farmer.ID)
	require.NoError(t, err)

	require.Len(t, view.Products, 1)
	assert.Equal(t, 7, view.Products[0].Quantity, "stock reflects the sale")
	require.Len(t, view.IncomingOrders, 1)
	require.NotNil(t, view.Sales)
	assert.Equal(t, int64(3), view.Sales.TotalUnitsSold)
	assert.Equal(t, "36.00", view.Sales.TotalRevenue)
	assert.Equal(t, "Spices & Herbs", view.Sales.TopCategory)
	assert.Equal(t, int64(1), view.UnreadNotifications, "the sale notified the farmer")
}
