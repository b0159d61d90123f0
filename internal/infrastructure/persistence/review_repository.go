package persistence

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/farmmarket/backend/internal/domain/engagement"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReviewRepository implements ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

var _ engagement.ReviewRepository = (*GormReviewRepository)(nil)

// Upsert inserts the review or replaces rating and comment when the buyer
// already reviewed the product, keyed on (user_id, product_id). The
// created report comes from the write itself so concurrent submissions
// cannot both claim to have created the row.
func (r *GormReviewRepository) Upsert(ctx context.Context, review *engagement.Review) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&engagement.Review{}).
			Where("user_id = ? AND product_id = ?", review.UserID, review.ProductID).
			Updates(map[string]interface{}{
				"rating":     review.Rating,
				"comment":    review.Comment,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		created = true
		return tx.Create(review).Error
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// FindByProduct returns a product's reviews, newest first
func (r *GormReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]engagement.Review, error) {
	var reviews []engagement.Review
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// FindByUserAndProduct finds the buyer's review of a product
func (r *GormReviewRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*engagement.Review, error) {
	var review engagement.Review
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// AverageRating returns the mean rating for the product rounded to one
// decimal place, or 0 when the product has no reviews
func (r *GormReviewRepository) AverageRating(ctx context.Context, productID uuid.UUID) (float64, error) {
	var avg *float64
	if err := r.db.WithContext(ctx).Model(&engagement.Review{}).
		Select("AVG(rating)").
		Where("product_id = ?", productID).
		Scan(&avg).Error; err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return math.Round(*avg*10) / 10, nil
}
