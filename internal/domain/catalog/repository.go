package catalog

import (
	"context"

	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ListFilter narrows a product listing. All supplied criteria combine with
// AND semantics; the text query matches name or category, case-insensitively.
type ListFilter struct {
	Query    string
	Category *Category
	MinPrice *float64
	MaxPrice *float64
}

// CategoryCount is a per-category product tally for reporting
type CategoryCount struct {
	Category Category
	Count    int64
}

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByFarmer(ctx context.Context, farmerID uuid.UUID) ([]Product, error)
	List(ctx context.Context, filter ListFilter) ([]Product, error)

	// Save re-validates the owner's role before writing (defense in depth;
	// the same check the service ran at input time).
	Save(ctx context.Context, product *Product) error

	Delete(ctx context.Context, id uuid.UUID) error
	CountByCategory(ctx context.Context) ([]CategoryCount, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
