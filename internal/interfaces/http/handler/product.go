package handler

import (
	"github.com/farmmarket/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles produce listing HTTP requests
type ProductHandler struct {
	BaseHandler
	productService *catalog.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *catalog.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List returns products matching the browse filters. Filters are read from
// the query string; malformed price bounds are dropped silently.
func (h *ProductHandler) List(c *gin.Context) {
	views, err := h.productService.ListProducts(c.Request.Context(), catalog.ListProductsInput{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		MinPrice: c.Query("min_price"),
		MaxPrice: c.Query("max_price"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// Get returns a single product by ID
func (h *ProductHandler) Get(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	view, err := h.productService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// ListMine returns the calling farmer's listings
func (h *ProductHandler) ListMine(c *gin.Context) {
	farmerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	views, err := h.productService.ListFarmerProducts(c.Request.Context(), farmerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// Create adds a new listing owned by the calling farmer
func (h *ProductHandler) Create(c *gin.Context) {
	farmerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalog.CreateProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.productService.CreateProduct(c.Request.Context(), farmerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// Update modifies a listing the calling farmer owns
func (h *ProductHandler) Update(c *gin.Context) {
	farmerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalog.UpdateProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.productService.UpdateProduct(c.Request.Context(), farmerID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Delete removes a listing the calling farmer owns
func (h *ProductHandler) Delete(c *gin.Context) {
	farmerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), farmerID, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ImageUploadURL issues a presigned PUT URL for a product image
func (h *ProductHandler) ImageUploadURL(c *gin.Context) {
	farmerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalog.UploadURLInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.productService.ImageUploadURL(c.Request.Context(), farmerID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
