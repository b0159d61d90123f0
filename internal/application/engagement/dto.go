package engagement

import (
	"time"

	"github.com/google/uuid"
)

// SubmitReviewInput carries a review submission. Resubmitting replaces the
// buyer's existing review of the product.
type SubmitReviewInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Rating    int       `json:"rating" binding:"required"`
	Comment   string    `json:"comment"`
}

// ReviewView is the public view of a review
type ReviewView struct {
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductReviewsView bundles a product's reviews with its average rating
type ProductReviewsView struct {
	ProductID     uuid.UUID    `json:"product_id"`
	AverageRating float64      `json:"average_rating"`
	Reviews       []ReviewView `json:"reviews"`
}

// SubmitReviewResult reports whether the submission created or replaced a
// review, with the product's recomputed average rating
type SubmitReviewResult struct {
	Review        ReviewView `json:"review"`
	Action        string     `json:"action"`
	AverageRating float64    `json:"average_rating"`
}

// WishlistToggleResult reports the wishlist state after a toggle
type WishlistToggleResult struct {
	ProductID  uuid.UUID `json:"product_id"`
	Action     string    `json:"action"`
	OnWishlist bool      `json:"on_wishlist"`
}

// WishlistEntryView is one product on a buyer's wishlist
type WishlistEntryView struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Category    string    `json:"category"`
	Price       string    `json:"price"`
	InStock     bool      `json:"in_stock"`
	AddedAt     time.Time `json:"added_at"`
}
