package engagement

import (
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// WishlistItem marks a product a buyer has saved. One row per
// (user, product); toggling an existing row removes it.
type WishlistItem struct {
	shared.BaseEntity
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_product,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_product,priority:2"`
}

// TableName returns the table name for GORM
func (WishlistItem) TableName() string {
	return "wishlist_items"
}

// NewWishlistItem creates a wishlist entry
func NewWishlistItem(userID, productID uuid.UUID) *WishlistItem {
	return &WishlistItem{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ProductID:  productID,
	}
}
