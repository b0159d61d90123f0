package handler

import (
	"github.com/farmmarket/backend/internal/application/engagement"
	"github.com/gin-gonic/gin"
)

// EngagementHandler handles wishlist and review HTTP requests
type EngagementHandler struct {
	BaseHandler
	engagementService *engagement.EngagementService
}

// NewEngagementHandler creates a new engagement handler
func NewEngagementHandler(engagementService *engagement.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService}
}

// ToggleWishlist adds or removes a product on the buyer's wishlist
func (h *EngagementHandler) ToggleWishlist(c *gin.Context) {
	buyerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := parseIDParam(c, "productId")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	result, err := h.engagementService.ToggleWishlist(c.Request.Context(), buyerID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListWishlist returns the buyer's wishlist
func (h *EngagementHandler) ListWishlist(c *gin.Context) {
	buyerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	entries, err := h.engagementService.ListWishlist(c.Request.Context(), buyerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// SubmitReview records the buyer's rating of a purchased product
func (h *EngagementHandler) SubmitReview(c *gin.Context) {
	buyerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req engagement.SubmitReviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.engagementService.SubmitReview(c.Request.Context(), buyerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// ProductReviews returns a product's reviews and average rating
func (h *EngagementHandler) ProductReviews(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	view, err := h.engagementService.ProductReviews(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}
