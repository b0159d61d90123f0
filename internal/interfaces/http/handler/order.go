package handler

import (
	"github.com/farmmarket/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles purchase and fulfillment HTTP requests
type OrderHandler struct {
	BaseHandler
	orderService *trade.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *trade.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Place purchases a product for the calling buyer
func (h *OrderHandler) Place(c *gin.Context) {
	buyerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req trade.PlaceOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.orderService.PlaceOrder(c.Request.Context(), buyerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// ListMine returns the calling buyer's purchase history
func (h *OrderHandler) ListMine(c *gin.Context) {
	buyerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	views, err := h.orderService.ListBuyerOrders(c.Request.Context(), buyerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// ListIncoming returns orders against the calling farmer's products
func (h *OrderHandler) ListIncoming(c *gin.Context) {
	farmerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	views, err := h.orderService.ListIncomingOrders(c.Request.Context(), farmerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// UpdateStatus moves an order forward in its lifecycle
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	farmerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req trade.UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.orderService.UpdateOrderStatus(c.Request.Context(), farmerID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// SalesSummary returns the calling farmer's sales rollup
func (h *OrderHandler) SalesSummary(c *gin.Context) {
	farmerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	summary, err := h.orderService.SalesSummary(c.Request.Context(), farmerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
