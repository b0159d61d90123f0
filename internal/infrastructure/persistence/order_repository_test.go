package persistence

import (
	"context"
	"testing"

	"github.com/farmmarket/backend/internal/domain/catalog"
	"github.com/farmmarket/backend/internal/domain/identity"
	"github.com/farmmarket/backend/internal/domain/notification"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/farmmarket/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepositoryCreateWithStockDecrement(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	farmer := seedUser(t, db, "farmer1", identity.RoleFarmer)
	buyer := seedUser(t, db, "buyer1", identity.RoleBuyer)

	t.Run("decrements stock and writes order and notification", func(t *testing.T) {
		product := seedProduct(t, db, farmer, "Spinach", catalog.CategoryVegetablesLeafy, "1.50", 10)

		order, err := trade.NewOrder(buyer.ID, product, 3)
		require.NoError(t, err)
		notif, err := notification.ForOrder(farmer.ID, order.ID, "New order for Spinach")
		require.NoError(t, err)

		require.NoError(t, repo.CreateWithStockDecrement(ctx, order, notif))

		var stored catalog.Product
		require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
		assert.Equal(t, 7, stored.Quantity)

		found, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, trade.OrderStatusPending, found.Status)

		var notifCount int64
		require.NoError(t, db.Model(&notification.Notification{}).
			Where("user_id = ?", farmer.ID).Count(&notifCount).Error)
		assert.Equal(t, int64(1), notifCount)
	})

	t.Run("rejects order exceeding stock and writes nothing", func(t *testing.T) {
		product := seedProduct(t, db, farmer, "Butter", catalog.CategoryDairyButter, "4.00", 2)

		order, err := trade.NewOrder(buyer.ID, product, 5)
		require.NoError(t, err)

		err = repo.CreateWithStockDecrement(ctx, order, nil)
		require.ErrorIs(t, err, shared.ErrInsufficientStock)

		var stored catalog.Product
		require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
		assert.Equal(t, 2, stored.Quantity)

		_, err = repo.FindByID(ctx, order.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("only one purchase of the last unit succeeds", func(t *testing.T) {
		product := seedProduct(t, db, farmer, "Corn", catalog.CategoryGrainsCorn, "0.80", 1)

		first, err := trade.NewOrder(buyer.ID, product, 1)
		require.NoError(t, err)
		second, err := trade.NewOrder(buyer.ID, product, 1)
		require.NoError(t, err)

		require.NoError(t, repo.CreateWithStockDecrement(ctx, first, nil))
		err = repo.CreateWithStockDecrement(ctx, second, nil)
		require.ErrorIs(t, err, shared.ErrInsufficientStock)

		var stored catalog.Product
		require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
		assert.Equal(t, 0, stored.Quantity)
	})

	t.Run("reports missing product as not found", func(t *testing.T) {
		order := &trade.Order{
			BaseAggregateRoot: shared.NewBaseAggregateRoot(),
			BuyerID:           buyer.ID,
			ProductID:         uuid.New(),
			Quantity:          1,
			Status:            trade.OrderStatusPending,
		}

		err := repo.CreateWithStockDecrement(ctx, order, nil)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderRepositoryFindByIDForFarmer(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner", identity.RoleFarmer)
	other := seedUser(t, db, "other", identity.RoleFarmer)
	buyer := seedUser(t, db, "buyer2", identity.RoleBuyer)
	product := seedProduct(t, db, owner, "Lentils", catalog.CategoryPulsesLentils, "3.25", 20)

	order, err := trade.NewOrder(buyer.ID, product, 2)
	require.NoError(t, err)
	require.NoError(t, repo.CreateWithStockDecrement(ctx, order, nil))

	t.Run("returns order for the owning farmer", func(t *testing.T) {
		found, err := repo.FindByIDForFarmer(ctx, order.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, order.ID, found.ID)
	})

	t.Run("hides order from other farmers as not found", func(t *testing.T) {
		_, err := repo.FindByIDForFarmer(ctx, order.ID, other.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("reports unknown order as not found", func(t *testing.T) {
		_, err := repo.FindByIDForFarmer(ctx, uuid.New(), owner.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderRepositoryUpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	farmer := seedUser(t, db, "farmer3", identity.RoleFarmer)
	buyer := seedUser(t, db, "buyer3", identity.RoleBuyer)
	product := seedProduct(t, db, farmer, "Milk", catalog.CategoryDairyMilk, "1.10", 50)

	order, err := trade.NewOrder(buyer.ID, product, 4)
	require.NoError(t, err)
	require.NoError(t, repo.CreateWithStockDecrement(ctx, order, nil))

	require.NoError(t, order.TransitionTo(trade.OrderStatusShipped))
	notif, err := notification.ForOrder(buyer.ID, order.ID, "Your order of Milk was shipped")
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, order, notif))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusShipped, found.Status)

	var notifCount int64
	require.NoError(t, db.Model(&notification.Notification{}).
		Where("user_id = ?", buyer.ID).Count(&notifCount).Error)
	assert.Equal(t, int64(1), notifCount)
}

func TestOrderRepositorySalesAggregation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	farmer := seedUser(t, db, "farmer4", identity.RoleFarmer)
	buyer := seedUser(t, db, "buyer4", identity.RoleBuyer)

	apples := seedProduct(t, db, farmer, "Apples", catalog.CategoryFruitsSeasonal, "2.00", 100)
	berries := seedProduct(t, db, farmer, "Berries", catalog.CategoryFruitsBerries, "5.00", 100)

	placeOrder := func(product *catalog.Product, qty int) {
		order, err := trade.NewOrder(buyer.ID, product, qty)
		require.NoError(t, err)
		require.NoError(t, repo.CreateWithStockDecrement(ctx, order, nil))
	}

	placeOrder(apples, 3)  // 6.00
	placeOrder(apples, 2)  // 4.00
	placeOrder(berries, 4) // 20.00

	t.Run("aggregates per product ordered by revenue", func(t *testing.T) {
		sales, err := repo.SalesByProduct(ctx, farmer.ID)
		require.NoError(t, err)
		require.Len(t, sales, 2)

		assert.Equal(t, "Berries", sales[0].Name)
		assert.Equal(t, int64(4), sales[0].UnitsSold)
		assert.True(t, sales[0].Revenue.Equal(decimal.RequireFromString("20.00")))

		assert.Equal(t, "Apples", sales[1].Name)
		assert.Equal(t, int64(5), sales[1].UnitsSold)
		assert.True(t, sales[1].Revenue.Equal(decimal.RequireFromString("10.00")))
	})

	t.Run("aggregates per category", func(t *testing.T) {
		sales, err := repo.SalesByCategory(ctx, farmer.ID)
		require.NoError(t, err)
		require.Len(t, sales, 2)

		assert.Equal(t, catalog.CategoryFruitsBerries, sales[0].Category)
		assert.Equal(t, catalog.CategoryFruitsSeasonal, sales[1].Category)
	})

	t.Run("excludes other farmers' sales", func(t *testing.T) {
		stranger := seedUser(t, db, "farmer5", identity.RoleFarmer)
		sales, err := repo.SalesByProduct(ctx, stranger.ID)
		require.NoError(t, err)
		assert.Empty(t, sales)
	})

	t.Run("revenue stays cent-exact", func(t *testing.T) {
		// 0.10 has no exact binary representation; the sum must still
		// come back as exactly 0.30
		herbs := seedProduct(t, db, farmer, "Basil", catalog.CategorySpicesHerbs, "0.10", 100)
		placeOrder(herbs, 1)
		placeOrder(herbs, 1)
		placeOrder(herbs, 1)

		sales, err := repo.SalesByProduct(ctx, farmer.ID)
		require.NoError(t, err)
		require.Len(t, sales, 3)
		assert.Equal(t, "Basil", sales[2].Name)
		assert.True(t, sales[2].Revenue.Equal(decimal.RequireFromString("0.30")),
			"got %s", sales[2].Revenue)
	})
}

func TestOrderRepositoryHasPurchased(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	farmer := seedUser(t, db, "farmer6", identity.RoleFarmer)
	buyer := seedUser(t, db, "buyer6", identity.RoleBuyer)
	product := seedProduct(t, db, farmer, "Cheese", catalog.CategoryDairyCheese, "7.50", 10)

	purchased, err := repo.HasPurchased(ctx, buyer.ID, product.ID)
	require.NoError(t, err)
	assert.False(t, purchased)

	order, err := trade.NewOrder(buyer.ID, product, 1)
	require.NoError(t, err)
	require.NoError(t, repo.CreateWithStockDecrement(ctx, order, nil))

	purchased, err = repo.HasPurchased(ctx, buyer.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, purchased)
}
