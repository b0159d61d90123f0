package catalog

import (
	"time"

	"github.com/google/uuid"
)

// CreateProductInput carries a new listing request. Price travels as a
// string so decimal values are never rounded through a float.
type CreateProductInput struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required"`
	Price    string `json:"price" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

// UpdateProductInput carries a listing update request
type UpdateProductInput struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required"`
	Price    string `json:"price" binding:"required"`
	Quantity *int   `json:"quantity" binding:"required"`
}

// ListProductsInput carries browse filters as raw query strings.
// Malformed numeric bounds are dropped rather than rejected.
type ListProductsInput struct {
	Query    string
	Category string
	MinPrice string
	MaxPrice string
}

// ProductView is the public view of a listing
type ProductView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     string    `json:"price"`
	Quantity  int       `json:"quantity"`
	FarmerID  uuid.UUID `json:"farmer_id"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UploadURLInput carries a presigned image upload request
type UploadURLInput struct {
	ContentType string `json:"content_type" binding:"required"`
}

// UploadURLResult is a presigned PUT target for a product image
type UploadURLResult struct {
	UploadURL string    `json:"upload_url"`
	ImageKey  string    `json:"image_key"`
	ExpiresAt time.Time `json:"expires_at"`
}
