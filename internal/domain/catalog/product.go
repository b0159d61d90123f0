package catalog

import (
	"time"

	"github.com/farmmarket/backend/internal/domain/identity"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a produce listing owned by a farmer.
// It is the aggregate root for catalog operations.
type Product struct {
	shared.BaseAggregateRoot
	Name     string          `gorm:"type:varchar(100);not null"`
	Category Category        `gorm:"type:varchar(50);not null;index"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity int             `gorm:"not null;check:quantity >= 0"`
	ImageKey string          `gorm:"type:varchar(500)"` // object storage key, empty when no image
	FarmerID uuid.UUID       `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product listing. The caller's Farmer role must
// already be resolved; ValidateOwnerRole is re-run on the persistence path
// as well.
func NewProduct(farmerID uuid.UUID, farmerRole identity.Role, name string, category Category, price decimal.Decimal, quantity int) (*Product, error) {
	if err := ValidateOwnerRole(farmerRole); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category is not in the produce taxonomy")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be greater than zero")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Category:          category,
		Price:             price,
		Quantity:          quantity,
		FarmerID:          farmerID,
	}, nil
}

// ValidateOwnerRole enforces that only Farmer-role users own products.
// It is called at input validation and again by the repository before save.
func ValidateOwnerRole(role identity.Role) error {
	if role != identity.RoleFarmer {
		return shared.NewDomainError("INVALID_OWNER", "User must have Farmer role to be linked to a Product")
	}
	return nil
}

// Update updates the product's listing details
func (p *Product) Update(name string, category Category, price decimal.Decimal, quantity int) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Category is not in the produce taxonomy")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	p.Name = name
	p.Category = category
	p.Price = price
	p.Quantity = quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetImageKey attaches an uploaded image's storage key
func (p *Product) SetImageKey(key string) error {
	if len(key) > 500 {
		return shared.NewDomainError("INVALID_IMAGE_KEY", "Image key cannot exceed 500 characters")
	}
	p.ImageKey = key
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// HasStock reports whether the requested quantity is available
func (p *Product) HasStock(quantity int) bool {
	return quantity > 0 && p.Quantity >= quantity
}

// IsOwnedBy reports whether the given user owns this product
func (p *Product) IsOwnedBy(userID uuid.UUID) bool {
	return p.FarmerID == userID
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 100 characters")
	}
	return nil
}
