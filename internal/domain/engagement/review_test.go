package engagement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReview(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	t.Run("creates review with rating in range", func(t *testing.T) {
		for rating := 1; rating <= 5; rating++ {
			review, err := NewReview(userID, productID, rating, "fresh and tasty")
			require.NoError(t, err, rating)
			assert.Equal(t, rating, review.Rating)
		}
	})

	t.Run("trims the comment", func(t *testing.T) {
		review, err := NewReview(userID, productID, 4, "  good  ")
		require.NoError(t, err)
		assert.Equal(t, "good", review.Comment)
	})

	t.Run("allows empty comment", func(t *testing.T) {
		review, err := NewReview(userID, productID, 4, "")
		require.NoError(t, err)
		assert.Empty(t, review.Comment)
	})

	t.Run("rejects rating outside range", func(t *testing.T) {
		for _, rating := range []int{0, -1, 6, 100} {
			_, err := NewReview(userID, productID, rating, "")
			require.Error(t, err, rating)
			assert.Contains(t, err.Error(), "between 1 and 5")
		}
	})
}

func TestReviewRevise(t *testing.T) {
	review, err := NewReview(uuid.New(), uuid.New(), 2, "meh")
	require.NoError(t, err)

	t.Run("replaces rating and comment", func(t *testing.T) {
		require.NoError(t, review.Revise(5, "much better second time"))
		assert.Equal(t, 5, review.Rating)
		assert.Equal(t, "much better second time", review.Comment)
	})

	t.Run("rejects rating outside range", func(t *testing.T) {
		require.Error(t, review.Revise(0, ""))
		assert.Equal(t, 5, review.Rating)
	})
}

func TestNewWishlistItem(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	item := NewWishlistItem(userID, productID)
	assert.Equal(t, userID, item.UserID)
	assert.Equal(t, productID, item.ProductID)
	assert.NotEqual(t, uuid.Nil, item.ID)
}
