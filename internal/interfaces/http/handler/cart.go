package handler

import (
	"github.com/farmmarket/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// CartHandler handles cart HTTP requests
type CartHandler struct {
	BaseHandler
	cartService *trade.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *trade.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// View returns the calling buyer's cart with line and running totals
func (h *CartHandler) View(c *gin.Context) {
	buyerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	view, err := h.cartService.ViewCart(c.Request.Context(), buyerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Add puts a product in the calling buyer's cart
func (h *CartHandler) Add(c *gin.Context) {
	buyerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req trade.AddToCartInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.cartService.AddToCart(c.Request.Context(), buyerID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Product added to cart"})
}

// Remove drops one product from the calling buyer's cart
func (h *CartHandler) Remove(c *gin.Context) {
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

	if err := h.cartService.RemoveFromCart(c.Request.Context(), buyerID, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Clear empties the calling buyer's cart
func (h *CartHandler) Clear(c *gin.Context) {
	buyerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.cartService.ClearCart(c.Request.Context(), buyerID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
