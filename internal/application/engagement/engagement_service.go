package engagement

import (
	"context"
	"errors"

	"github.com/farmmarket/backend/internal/domain/catalog"
	"github.com/farmmarket/backend/internal/domain/engagement"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/farmmarket/backend/internal/domain/trade"
	"github.com/farmmarket/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// EngagementService handles wishlists and reviews
type EngagementService struct {
	wishlistRepo engagement.WishlistRepository
	reviewRepo   engagement.ReviewRepository
	orderRepo    trade.OrderRepository
	productRepo  catalog.ProductRepository
	logger       *zap.Logger
}

// NewEngagementService creates a new engagement service
func NewEngagementService(
	wishlistRepo engagement.WishlistRepository,
	reviewRepo engagement.ReviewRepository,
	orderRepo trade.OrderRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *EngagementService {
	return &EngagementService{
		wishlistRepo: wishlistRepo,
		reviewRepo:   reviewRepo,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// ToggleWishlist adds the product to the buyer's wishlist, or removes it
// when already present
func (s *EngagementService) ToggleWishlist(ctx context.Context, buyerID, productID uuid.UUID) (*WishlistToggleResult, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	onWishlist, err := s.wishlistRepo.Toggle(ctx, buyerID, productID)
	if err != nil {
		s.logger.Error("Failed to toggle wishlist", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update wishlist")
	}

	action := "removed"
	if onWishlist {
		action = "added"
	}
	return &WishlistToggleResult{ProductID: productID, Action: action, OnWishlist: onWishlist}, nil
}

// ListWishlist returns the buyer's wishlist with current product details.
// Entries whose product has since been deleted are dropped.
func (s *EngagementService) ListWishlist(ctx context.Context, buyerID uuid.UUID) ([]WishlistEntryView, error) {
	items, err := s.wishlistRepo.FindByUser(ctx, buyerID)
	if err != nil {
		s.logger.Error("Failed to load wishlist", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load wishlist")
	}

	entries := make([]WishlistEntryView, 0, len(items))
	for i := range items {
		product, err := s.productRepo.FindByID(ctx, items[i].ProductID)
		if err != nil {
			continue
		}
		entries = append(entries, WishlistEntryView{
			ProductID:   product.ID,
			ProductName: product.Name,
			Category:    product.Category.String(),
			Price:       product.Price.StringFixed(2),
			InStock:     product.Quantity > 0,
			AddedAt:     items[i].CreatedAt,
		})
	}
	return entries, nil
}

// SubmitReview records the buyer's rating of a product. Only buyers who
// have ordered the product may review it; resubmitting replaces the
// earlier review. The result carries the product's recomputed average.
func (s *EngagementService) SubmitReview(ctx context.Context, buyerID uuid.UUID, input SubmitReviewInput) (*SubmitReviewResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "engagement", "submit_review",
		attribute.String("user_id", buyerID.String()),
		attribute.String("product_id", input.ProductID.String()),
		attribute.Int("rating", input.Rating))
	defer span.End()

	if _, err := s.productRepo.FindByID(ctx, input.ProductID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	purchased, err := s.orderRepo.HasPurchased(ctx, buyerID, input.ProductID)
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to check purchase history", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check purchase history")
	}
	if !purchased {
		telemetry.RecordError(span, shared.ErrReviewNotEligible)
		return nil, shared.ErrReviewNotEligible
	}

	review, err := engagement.NewReview(buyerID, input.ProductID, input.Rating, input.Comment)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	created, err := s.reviewRepo.Upsert(ctx, review)
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to save review", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save review")
	}
	action := "updated"
	if created {
		action = "created"
	}

	average, err := s.reviewRepo.AverageRating(ctx, input.ProductID)
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to compute average rating", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save review")
	}

	s.logger.Info("Review submitted",
		zap.String("user_id", buyerID.String()),
		zap.String("product_id", input.ProductID.String()),
		zap.Int("rating", input.Rating),
		zap.String("action", action))

	return &SubmitReviewResult{
		Review:        *reviewView(review),
		Action:        action,
		AverageRating: average,
	}, nil
}

// ProductReviews returns a product's reviews with its average rating
func (s *EngagementService) ProductReviews(ctx context.Context, productID uuid.UUID) (*ProductReviewsView, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.FindByProduct(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to load reviews", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load reviews")
	}
	average, err := s.reviewRepo.AverageRating(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to compute average rating", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load reviews")
	}

	view := &ProductReviewsView{
		ProductID:     productID,
		AverageRating: average,
		Reviews:       make([]ReviewView, 0, len(reviews)),
	}
	for i := range reviews {
		view.Reviews = append(view.Reviews, *reviewView(&reviews[i]))
	}
	return view, nil
}

// AverageRatings returns the mean rating for each given product.
// Products without reviews map to 0.
func (s *EngagementService) AverageRatings(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	ratings := make(map[uuid.UUID]float64, len(productIDs))
	for _, id := range productIDs {
		average, err := s.reviewRepo.AverageRating(ctx, id)
		if err != nil {
			s.logger.Error("Failed to compute average rating", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load ratings")
		}
		ratings[id] = average
	}
	return ratings, nil
}

// ReviewedAmong filters the given product ids down to those the buyer
// has already reviewed
func (s *EngagementService) ReviewedAmong(ctx context.Context, buyerID uuid.UUID, productIDs []uuid.UUID) ([]uuid.UUID, error) {
	reviewed := make([]uuid.UUID, 0, len(productIDs))
	for _, id := range productIDs {
		if _, err := s.reviewRepo.FindByUserAndProduct(ctx, buyerID, id); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			s.logger.Error("Failed to look up review", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load reviews")
		}
		reviewed = append(reviewed, id)
	}
	return reviewed, nil
}

func reviewView(review *engagement.Review) *ReviewView {
	return &ReviewView{
		UserID:    review.UserID,
		ProductID: review.ProductID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}
