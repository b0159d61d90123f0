package engagement

import (
	"context"

	"github.com/google/uuid"
)

// WishlistRepository defines persistence operations for wishlist items
type WishlistRepository interface {
	// Toggle adds the product to the user's wishlist, or removes it when
	// already present. Returns true when the product is on the wishlist
	// after the call.
	Toggle(ctx context.Context, userID, productID uuid.UUID) (bool, error)

	FindByUser(ctx context.Context, userID uuid.UUID) ([]WishlistItem, error)
	Contains(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

// ReviewRepository defines persistence operations for reviews
type ReviewRepository interface {
	// Upsert inserts the review or, when the buyer already reviewed the
	// product, replaces the rating and comment. Reports whether a new row
	// was created.
	Upsert(ctx context.Context, review *Review) (bool, error)

	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Review, error)
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*Review, error)

	// AverageRating returns the mean rating for the product rounded to one
	// decimal place, or 0 when the product has no reviews
	AverageRating(ctx context.Context, productID uuid.UUID) (float64, error)
}
