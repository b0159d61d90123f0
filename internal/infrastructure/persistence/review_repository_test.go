package persistence

import (
	"context"
	"testing"

	"github.com/farmmarket/backend/internal/domain/catalog"
	"github.com/farmmarket/backend/internal/domain/engagement"
	"github.com/farmmarket/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewRepositoryUpsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReviewRepository(db)
	ctx := context.Background()

	farmer := seedUser(t, db, "farmer1", identity.RoleFarmer)
	buyer := seedUser(t, db, "buyer1", identity.RoleBuyer)
	product := seedProduct(t, db, farmer, "Rice", catalog.CategoryGrainsRice, "1.20", 100)

	t.Run("inserts a first review", func(t *testing.T) {
		review, err := engagement.NewReview(buyer.ID, product.ID, 3, "decent")
		require.NoError(t, err)
		created, err := repo.Upsert(ctx, review)
		require.NoError(t, err)
		assert.True(t, created)

		found, err := repo.FindByUserAndProduct(ctx, buyer.ID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, found.Rating)
	})

	t.Run("resubmission replaces instead of duplicating", func(t *testing.T) {
		review, err := engagement.NewReview(buyer.ID, product.ID, 5, "grew on me")
		require.NoError(t, err)
		created, err := repo.Upsert(ctx, review)
		require.NoError(t, err)
		assert.False(t, created)

		reviews, err := repo.FindByProduct(ctx, product.ID)
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.Equal(t, 5, reviews[0].Rating)
		assert.Equal(t, "grew on me", reviews[0].Comment)
	})
}

func TestReviewRepositoryAverageRating(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReviewRepository(db)
	ctx := context.Background()

	farmer := seedUser(t, db, "farmer2", identity.RoleFarmer)
	product := seedProduct(t, db, farmer, "Honey", catalog.CategorySpicesHerbs, "9.00", 20)

	t.Run("returns 0 with no reviews", func(t *testing.T) {
		avg, err := repo.AverageRating(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 0.0, avg)
	})

	t.Run("rounds the mean to one decimal place", func(t *testing.T) {
		for i, rating := range []int{5, 4, 3} {
			buyer := seedUser(t, db, uuid.New().String()[:8]+"b", identity.RoleBuyer)
			review, err := engagement.NewReview(buyer.ID, product.ID, rating, "")
			require.NoError(t, err, i)
			_, err = repo.Upsert(ctx, review)
			require.NoError(t, err)
		}

		avg, err := repo.AverageRating(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 4.0, avg)
	})

	t.Run("two ratings averaging to a repeating decimal round to 1dp", func(t *testing.T) {
		other := seedProduct(t, db, farmer, "Basil", catalog.CategorySpicesHerbs, "2.00", 20)
		for _, rating := range []int{5, 4, 4} {
			buyer := seedUser(t, db, uuid.New().String()[:8]+"c", identity.RoleBuyer)
			review, err := engagement.NewReview(buyer.ID, other.ID, rating, "")
			require.NoError(t, err)
			_, err = repo.Upsert(ctx, review)
			require.NoError(t, err)
		}

		avg, err := repo.AverageRating(ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, 4.3, avg)
	})
}
