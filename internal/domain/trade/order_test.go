package trade

import (
	"testing"

	"github.com/farmmarket/backend/internal/domain/catalog"
	"github.com/farmmarket/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(uuid.New(), identity.RoleFarmer, "Tomatoes", catalog.CategoryVegetablesMarrow, decimal.RequireFromString("2.50"), 10)
	require.NoError(t, err)
	return product
}

func TestNewOrder(t *testing.T) {
	buyerID := uuid.New()
	product := newTestProduct(t)

	t.Run("creates pending order capturing unit price", func(t *testing.T) {
		order, err := NewOrder(buyerID, product, 3)
		require.NoError(t, err)

		assert.Equal(t, buyerID, order.BuyerID)
		assert.Equal(t, product.ID, order.ProductID)
		assert.Equal(t, 3, order.Quantity)
		assert.True(t, product.Price.Equal(order.UnitPrice))
		assert.Equal(t, OrderStatusPending, order.Status)
		assert.False(t, order.OrderDate.IsZero())
	})

	t.Run("rejects zero and negative quantity", func(t *testing.T) {
		for _, qty := range []int{0, -1} {
			_, err := NewOrder(buyerID, product, qty)
			require.Error(t, err, qty)
		}
	})

	t.Run("rejects nil product", func(t *testing.T) {
		_, err := NewOrder(buyerID, nil, 1)
		require.Error(t, err)
	})
}

func TestOrderTransitionTo(t *testing.T) {
	t.Run("moves forward through the lifecycle", func(t *testing.T) {
		order, err := NewOrder(uuid.New(), newTestProduct(t), 1)
		require.NoError(t, err)

		require.NoError(t, order.TransitionTo(OrderStatusShipped))
		assert.Equal(t, OrderStatusShipped, order.Status)

		require.NoError(t, order.TransitionTo(OrderStatusDelivered))
		assert.Equal(t, OrderStatusDelivered, order.Status)
	})

	t.Run("allows skipping shipped", func(t *testing.T) {
		order, err := NewOrder(uuid.New(), newTestProduct(t), 1)
		require.NoError(t, err)

		require.NoError(t, order.TransitionTo(OrderStatusDelivered))
	})

	t.Run("rejects backward and same-status transitions", func(t *testing.T) {
		order, err := NewOrder(uuid.New(), newTestProduct(t), 1)
		require.NoError(t, err)
		require.NoError(t, order.TransitionTo(OrderStatusDelivered))

		for _, status := range []OrderStatus{OrderStatusPending, OrderStatusShipped, OrderStatusDelivered} {
			err := order.TransitionTo(status)
			require.Error(t, err, status)
			assert.Contains(t, err.Error(), "forward")
		}
		assert.Equal(t, OrderStatusDelivered, order.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		order, err := NewOrder(uuid.New(), newTestProduct(t), 1)
		require.NoError(t, err)

		require.Error(t, order.TransitionTo(OrderStatus("Cancelled")))
		assert.Equal(t, OrderStatusPending, order.Status)
	})
}

func TestOrderTotal(t *testing.T) {
	order, err := NewOrder(uuid.New(), newTestProduct(t), 4)
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("10.00").Equal(order.Total()))
}

func TestParseOrderStatus(t *testing.T) {
	for _, s := range []string{"Pending", "Shipped", "Delivered"} {
		parsed, err := ParseOrderStatus(s)
		require.NoError(t, err, s)
		assert.Equal(t, OrderStatus(s), parsed)
	}

	for _, s := range []string{"", "pending", "Cancelled", "Returned"} {
		_, err := ParseOrderStatus(s)
		require.Error(t, err, s)
	}
}

func TestCartItem(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	t.Run("creates entry with positive quantity", func(t *testing.T) {
		item, err := NewCartItem(userID, productID, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, item.Quantity)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		for _, qty := range []int{0, -5} {
			_, err := NewCartItem(userID, productID, qty)
			require.Error(t, err, qty)
		}
	})

	t.Run("replaces quantity", func(t *testing.T) {
		item, err := NewCartItem(userID, productID, 2)
		require.NoError(t, err)

		require.NoError(t, item.SetQuantity(7))
		assert.Equal(t, 7, item.Quantity)

		require.Error(t, item.SetQuantity(0))
		assert.Equal(t, 7, item.Quantity)
	})

	t.Run("computes line total", func(t *testing.T) {
		item, err := NewCartItem(userID, productID, 3)
		require.NoError(t, err)

		total := item.LineTotal(decimal.RequireFromString("1.25"))
		assert.True(t, decimal.RequireFromString("3.75").Equal(total))
	})
}
