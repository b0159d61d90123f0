package handler

import (
	"github.com/farmmarket/backend/internal/application/admin"
	"github.com/gin-gonic/gin"
)

// AdminHandler handles platform oversight HTTP requests
type AdminHandler struct {
	BaseHandler
	adminService *admin.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *admin.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Summary returns the platform-wide overview
func (h *AdminHandler) Summary(c *gin.Context) {
	summary, err := h.adminService.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// DeleteUser removes a user and everything they own
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	userID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.adminService.DeleteUser(c.Request.Context(), adminID, userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DeleteProduct removes any product regardless of owner
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.adminService.DeleteProduct(c.Request.Context(), adminID, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
