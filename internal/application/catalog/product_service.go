package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/farmmarket/backend/internal/domain/catalog"
	"github.com/farmmarket/backend/internal/domain/identity"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/farmmarket/backend/internal/infrastructure/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductService handles produce listing management and browsing
type ProductService struct {
	productRepo catalog.ProductRepository
	userRepo    identity.UserRepository
	storage     storage.ObjectStorage
	presignTTL  time.Duration
	logger      *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(
	productRepo catalog.ProductRepository,
	userRepo identity.UserRepository,
	objectStorage storage.ObjectStorage,
	presignTTL time.Duration,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		userRepo:    userRepo,
		storage:     objectStorage,
		presignTTL:  presignTTL,
		logger:      logger,
	}
}

// CreateProduct creates a listing owned by the calling farmer. The owner's
// role is resolved from the stored profile, not trusted from the token alone.
func (s *ProductService) CreateProduct(ctx context.Context, farmerID uuid.UUID, input CreateProductInput) (*ProductView, error) {
	role, err := s.userRepo.ResolveRole(ctx, farmerID)
	if err != nil {
		return nil, err
	}

	category, err := catalog.ParseCategory(input.Category)
	if err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(input.Price)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price must be a decimal number")
	}

	product, err := catalog.NewProduct(farmerID, role, input.Name, category, price, input.Quantity)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to save product", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save product")
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("farmer_id", farmerID.String()),
		zap.String("category", category.String()))

	return s.toView(ctx, product), nil
}

// UpdateProduct updates a listing the calling farmer owns. A product owned
// by someone else is reported as not found rather than forbidden.
func (s *ProductService) UpdateProduct(ctx context.Context, farmerID, productID uuid.UUID, input UpdateProductInput) (*ProductView, error) {
	product, err := s.ownedProduct(ctx, farmerID, productID)
	if err != nil {
		return nil, err
	}

	category, err := catalog.ParseCategory(input.Category)
	if err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(input.Price)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price must be a decimal number")
	}

	quantity := product.Quantity
	if input.Quantity != nil {
		quantity = *input.Quantity
	}

	if err := product.Update(input.Name, category, price, quantity); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to update product", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update product")
	}

	return s.toView(ctx, product), nil
}

// DeleteProduct removes a listing the calling farmer owns along with its
// stored image, if any
func (s *ProductService) DeleteProduct(ctx context.Context, farmerID, productID uuid.UUID) error {
	product, err := s.ownedProduct(ctx, farmerID, productID)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, product.ID); err != nil {
		s.logger.Error("Failed to delete product", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete product")
	}

	if product.ImageKey != "" {
		if err := s.storage.DeleteObject(ctx, product.ImageKey); err != nil {
			// The listing is gone; an orphaned object is only a storage leak
			s.logger.Warn("Failed to delete product image",
				zap.String("image_key", product.ImageKey),
				zap.Error(err))
		}
	}

	s.logger.Info("Product deleted",
		zap.String("product_id", productID.String()),
		zap.String("farmer_id", farmerID.String()))
	return nil
}

// GetProduct returns a single listing by ID
func (s *ProductService) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductView, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.toView(ctx, product), nil
}

// ListProducts returns listings matching the given filters. All filters
// combine with AND; malformed price bounds are ignored, and an unknown
// category matches nothing.
func (s *ProductService) ListProducts(ctx context.Context, input ListProductsInput) ([]ProductView, error) {
	filter := catalog.ListFilter{Query: strings.TrimSpace(input.Query)}

	if raw := strings.TrimSpace(input.Category); raw != "" {
		category, err := catalog.ParseCategory(raw)
		if err != nil {
			return []ProductView{}, nil
		}
		filter.Category = &category
	}
	if min, ok := parsePrice(input.MinPrice); ok {
		filter.MinPrice = &min
	}
	if max, ok := parsePrice(input.MaxPrice); ok {
		filter.MaxPrice = &max
	}

	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list products")
	}

	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, *s.toView(ctx, &products[i]))
	}
	return views, nil
}

// ListFarmerProducts returns the calling farmer's own listings
func (s *ProductService) ListFarmerProducts(ctx context.Context, farmerID uuid.UUID) ([]ProductView, error) {
	products, err := s.productRepo.FindByFarmer(ctx, farmerID)
	if err != nil {
		s.logger.Error("Failed to list farmer products", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list products")
	}

	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, *s.toView(ctx, &products[i]))
	}
	return views, nil
}

// ImageUploadURL issues a presigned PUT URL for a product image and records
// the key on the listing. Re-uploading replaces the previous key.
func (s *ProductService) ImageUploadURL(ctx context.Context, farmerID, productID uuid.UUID, input UploadURLInput) (*UploadURLResult, error) {
	product, err := s.ownedProduct(ctx, farmerID, productID)
	if err != nil {
		return nil, err
	}

	if !strings.HasPrefix(input.ContentType, "image/") {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Only image content types are accepted")
	}

	key := fmt.Sprintf("products/%s/%s", product.ID, uuid.New())
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, input.ContentType, s.presignTTL)
	if err != nil {
		s.logger.Error("Failed to presign upload URL", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate upload URL")
	}

	oldKey := product.ImageKey
	if err := product.SetImageKey(key); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to record image key", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record image key")
	}

	if oldKey != "" && oldKey != key {
		if err := s.storage.DeleteObject(ctx, oldKey); err != nil {
			s.logger.Warn("Failed to delete replaced image", zap.String("image_key", oldKey), zap.Error(err))
		}
	}

	return &UploadURLResult{UploadURL: uploadURL, ImageKey: key, ExpiresAt: expiresAt}, nil
}

func (s *ProductService) ownedProduct(ctx context.Context, farmerID, productID uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	// Not revealing that the product exists under another owner
	if !product.IsOwnedBy(farmerID) {
		return nil, shared.ErrNotFound
	}
	return product, nil
}

func (s *ProductService) toView(ctx context.Context, product *catalog.Product) *ProductView {
	view := &ProductView{
		ID:        product.ID,
		Name:      product.Name,
		Category:  product.Category.String(),
		Price:     product.Price.StringFixed(2),
		Quantity:  product.Quantity,
		FarmerID:  product.FarmerID,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
	if product.ImageKey != "" {
		url, _, err := s.storage.GenerateDownloadURL(ctx, product.ImageKey, s.presignTTL)
		if err != nil {
			s.logger.Warn("Failed to presign download URL",
				zap.String("image_key", product.ImageKey),
				zap.Error(err))
		} else {
			view.ImageURL = url
		}
	}
	return view
}

func parsePrice(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
