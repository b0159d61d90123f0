package handler

import (
	"github.com/farmmarket/backend/internal/application/catalog"
	"github.com/farmmarket/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles role-specific dashboard HTTP requests
type DashboardHandler struct {
	BaseHandler
	dashboardService *report.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *report.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Buyer returns the buyer dashboard. Browse filters apply to the embedded
// product catalog.
func (h *DashboardHandler) Buyer(c *gin.Context) {
	buyerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	dashboard, err := h.dashboardService.ForBuyer(c.Request.Context(), buyerID, catalog.ListProductsInput{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		MinPrice: c.Query("min_price"),
		MaxPrice: c.Query("max_price"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}

// Farmer returns the farmer dashboard
func (h *DashboardHandler) Farmer(c *gin.Context) {
	farmerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	dashboard, err := h.dashboardService.ForFarmer(c.Request.Context(), farmerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}
