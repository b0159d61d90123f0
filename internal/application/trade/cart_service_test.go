package trade

import (
	"context"
	"testing"

	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/farmmarket/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func createCartService(cartRepo *MockCartRepository, productRepo *MockProductRepository) *CartService {
	return NewCartService(cartRepo, productRepo, zap.NewNop())
}

func TestCartService_AddToCart_Success(t *testing.T) {
	ctx := context.Background()
	buyerID := uuid.New()
	product := createTestProduct(t, "2.50", 10)

	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	cartRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(item *trade.CartItem) bool {
		return item.UserID == buyerID && item.ProductID == product.ID && item.Quantity == 3
	})).Return(nil)

	service := createCartService(cartRepo, productRepo)
	err := service.AddToCart(ctx, buyerID, AddToCartInput{ProductID: product.ID, Quantity: 3})

	require.NoError(t, err)
	cartRepo.AssertExpectations(t)
}

func TestCartService_AddToCart_ProductGone(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	service := createCartService(cartRepo, productRepo)
	err := service.AddToCart(context.Background(), uuid.New(), AddToCartInput{ProductID: uuid.New(), Quantity: 1})

	assert.ErrorIs(t, err, shared.ErrNotFound)
	cartRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestCartService_AddToCart_InvalidQuantity(t *testing.T) {
	product := createTestProduct(t, "2.50", 10)

	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	service := createCartService(cartRepo, productRepo)
	err := service.AddToCart(context.Background(), uuid.New(), AddToCartInput{ProductID: product.ID, Quantity: 0})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
	cartRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestCartService_ViewCart(t *testing.T) {
	ctx := context.Background()
	buyerID := uuid.New()
	product := createTestProduct(t, "2.50", 2)
	goneProductID := uuid.New()

	inCart, err := trade.NewCartItem(buyerID, product.ID, 3)
	require.NoError(t, err)
	stale, err := trade.NewCartItem(buyerID, goneProductID, 1)
	require.NoError(t, err)

	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	cartRepo.On("FindByUser", mock.Anything, buyerID).Return([]trade.CartItem{*inCart, *stale}, nil)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("FindByID", mock.Anything, goneProductID).Return(nil, shared.ErrNotFound)

	service := createCartService(cartRepo, productRepo)
	view, err := service.ViewCart(ctx, buyerID)

	require.NoError(t, err)
	// The stale line is dropped, not surfaced as an error
	require.Len(t, view.Items, 1)
	assert.Equal(t, "2.50", view.Items[0].UnitPrice)
	assert.Equal(t, "7.50", view.Items[0].LineTotal)
	assert.False(t, view.Items[0].InStock, "quantity exceeds remaining stock")
	assert.Equal(t, "7.50", view.Total)
}

func TestCartService_ClearCart(t *testing.T) {
	buyerID := uuid.New()

	cartRepo := new(MockCartRepository)
	cartRepo.On("Clear", mock.Anything, buyerID).Return(nil)

	service := createCartService(cartRepo, new(MockProductRepository))

	require.NoError(t, service.ClearCart(context.Background(), buyerID))
	cartRepo.AssertExpectations(t)
}
