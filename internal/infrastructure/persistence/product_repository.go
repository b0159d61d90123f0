package persistence

import (
	"context"
	"errors"

	"github.com/farmmarket/backend/internal/domain/catalog"
	"github.com/farmmarket/backend/internal/domain/identity"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByFarmer finds all products owned by a farmer, newest first
func (r *GormProductRepository) FindByFarmer(ctx context.Context, farmerID uuid.UUID) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("farmer_id = ?", farmerID).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// List finds all products matching the filter. Criteria combine with AND;
// the text query matches name or category, case-insensitively.
func (r *GormProductRepository) List(ctx context.Context, filter catalog.ListFilter) ([]catalog.Product, error) {
	query := r.db.WithContext(ctx).Model(&catalog.Product{})

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(category) LIKE LOWER(?)", pattern, pattern)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	var products []catalog.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save persists a product after re-checking that its owner still carries
// the Farmer role
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	var profile identity.Profile
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", product.FarmerID).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.ErrRoleNotSet
		}
		return err
	}
	if err := catalog.ValidateOwnerRole(profile.Role); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Save(product).Error
}

// Delete removes a product. Foreign keys cascade orders, wishlist entries,
// reviews, and cart entries referencing it.
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByCategory tallies products per category, largest first
func (r *GormProductRepository) CountByCategory(ctx context.Context) ([]catalog.CategoryCount, error) {
	var counts []catalog.CategoryCount
	if err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("count DESC, category ASC").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// Count returns the total number of products
func (r *GormProductRepository) Count(ctx context.Context, _ shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
