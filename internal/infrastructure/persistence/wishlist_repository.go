package persistence

import (
	"context"

	"github.com/farmmarket/backend/internal/domain/engagement"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWishlistRepository implements WishlistRepository using GORM
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewGormWishlistRepository creates a new GormWishlistRepository
func NewGormWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

var _ engagement.WishlistRepository = (*GormWishlistRepository)(nil)

// Toggle adds the product to the user's wishlist, or removes it when
// already present. Returns true when the product is wishlisted after the
// call. The delete-then-insert runs in one transaction so toggling twice
// always lands back at the starting state.
func (r *GormWishlistRepository) Toggle(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var onWishlist bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND product_id = ?", userID, productID).
			Delete(&engagement.WishlistItem{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			onWishlist = false
			return nil
		}

		item := engagement.NewWishlistItem(userID, productID)
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		onWishlist = true
		return nil
	})
	return onWishlist, err
}

// FindByUser returns the user's wishlist items, newest first
func (r *GormWishlistRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]engagement.WishlistItem, error) {
	var items []engagement.WishlistItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Contains reports whether the product is on the user's wishlist
func (r *GormWishlistRepository) Contains(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&engagement.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
