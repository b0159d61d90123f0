package persistence

import (
	"context"
	"testing"

	"github.com/farmmarket/backend/internal/domain/catalog"
	"github.com/farmmarket/backend/internal/domain/identity"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepositorySave(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	t.Run("saves product owned by a farmer", func(t *testing.T) {
		farmer := seedUser(t, db, "farmer1", identity.RoleFarmer)
		product, err := catalog.NewProduct(farmer.ID, identity.RoleFarmer, "Wheat", catalog.CategoryGrainsWheat, decimal.RequireFromString("0.90"), 500)
		require.NoError(t, err)

		require.NoError(t, repo.Save(ctx, product))

		found, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Wheat", found.Name)
	})

	t.Run("rejects save when owner no longer carries the farmer role", func(t *testing.T) {
		buyer := seedUser(t, db, "buyer1", identity.RoleBuyer)

		// Bypass the constructor to simulate a stale aggregate pointing at a buyer
		product := &catalog.Product{
			BaseAggregateRoot: shared.NewBaseAggregateRoot(),
			Name:              "Peas",
			Category:          catalog.CategoryPulsesPeas,
			Price:             decimal.NewFromInt(1),
			Quantity:          5,
			FarmerID:          buyer.ID,
		}

		err := repo.Save(ctx, product)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Farmer role")
	})

	t.Run("rejects save when owner has no profile", func(t *testing.T) {
		product := &catalog.Product{
			BaseAggregateRoot: shared.NewBaseAggregateRoot(),
			Name:              "Peas",
			Category:          catalog.CategoryPulsesPeas,
			Price:             decimal.NewFromInt(1),
			Quantity:          5,
			FarmerID:          uuid.New(),
		}

		err := repo.Save(ctx, product)
		assert.ErrorIs(t, err, shared.ErrRoleNotSet)
	})
}

func TestProductRepositoryList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	farmer := seedUser(t, db, "farmer2", identity.RoleFarmer)
	seedProduct(t, db, farmer, "Spinach", catalog.CategoryVegetablesLeafy, "1.50", 10)
	seedProduct(t, db, farmer, "Baby Spinach", catalog.CategoryVegetablesLeafy, "2.50", 10)
	seedProduct(t, db, farmer, "Carrots", catalog.CategoryVegetablesRoot, "1.00", 10)

	t.Run("returns everything with an empty filter", func(t *testing.T) {
		products, err := repo.List(ctx, catalog.ListFilter{})
		require.NoError(t, err)
		assert.Len(t, products, 3)
	})

	t.Run("matches name case-insensitively", func(t *testing.T) {
		products, err := repo.List(ctx, catalog.ListFilter{Query: "spinach"})
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("matches category text", func(t *testing.T) {
		products, err := repo.List(ctx, catalog.ListFilter{Query: "root"})
		require.NoError(t, err)
		assert.Len(t, products, 1)
	})

	t.Run("combines criteria with AND", func(t *testing.T) {
		leafy := catalog.CategoryVegetablesLeafy
		min := 2.0
		products, err := repo.List(ctx, catalog.ListFilter{Category: &leafy, MinPrice: &min})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Baby Spinach", products[0].Name)
	})

	t.Run("price band excludes everything outside it", func(t *testing.T) {
		min, max := 1.2, 1.8
		products, err := repo.List(ctx, catalog.ListFilter{MinPrice: &min, MaxPrice: &max})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Spinach", products[0].Name)
	})
}

func TestProductRepositoryCountByCategory(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	farmer := seedUser(t, db, "farmer3", identity.RoleFarmer)
	seedProduct(t, db, farmer, "Spinach", catalog.CategoryVegetablesLeafy, "1.50", 10)
	seedProduct(t, db, farmer, "Kale", catalog.CategoryVegetablesLeafy, "2.00", 10)
	seedProduct(t, db, farmer, "Milk", catalog.CategoryDairyMilk, "1.10", 10)

	counts, err := repo.CountByCategory(ctx)
	require.NoError(t, err)
	require.Len(t, counts, 2)

	assert.Equal(t, catalog.CategoryVegetablesLeafy, counts[0].Category)
	assert.Equal(t, int64(2), counts[0].Count)
	assert.Equal(t, catalog.CategoryDairyMilk, counts[1].Category)
	assert.Equal(t, int64(1), counts[1].Count)
}

func TestProductRepositoryDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	farmer := seedUser(t, db, "farmer4", identity.RoleFarmer)
	product := seedProduct(t, db, farmer, "Poultry", catalog.CategoryLivestockPoultry, "12.00", 3)

	require.NoError(t, repo.Delete(ctx, product.ID))

	_, err := repo.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
