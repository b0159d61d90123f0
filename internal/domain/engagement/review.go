package engagement

import (
	"strings"
	"time"

	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Review is a buyer's rating of a product they have purchased. One row per
// (buyer, product); submitting again replaces rating and comment.
type Review struct {
	shared.BaseEntity
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_product,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_product,priority:2"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// NewReview creates a review with a rating in [1, 5]. Purchase eligibility
// is the service's concern.
func NewReview(userID, productID uuid.UUID, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}

	return &Review{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ProductID:  productID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
	}, nil
}

// Revise replaces the rating and comment of an existing review
func (r *Review) Revise(rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}

	r.Rating = rating
	r.Comment = strings.TrimSpace(comment)
	r.UpdatedAt = time.Now()

	return nil
}
