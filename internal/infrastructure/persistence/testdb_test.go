package persistence

import (
	"testing"

	"github.com/farmmarket/backend/internal/domain/catalog"
	"github.com/farmmarket/backend/internal/domain/engagement"
	"github.com/farmmarket/backend/internal/domain/identity"
	"github.com/farmmarket/backend/internal/domain/notification"
	"github.com/farmmarket/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&identity.User{},
		&identity.Profile{},
		&catalog.Product{},
		&trade.Order{},
		&trade.CartItem{},
		&engagement.WishlistItem{},
		&engagement.Review{},
		&notification.Notification{},
	)
	require.NoError(t, err)

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, role identity.Role) *identity.User {
	t.Helper()

	user, err := identity.NewUser(username, username+"@example.com", "correct-horse-battery")
	require.NoError(t, err)
	require.NoError(t, db.Create(user).Error)

	profile, err := identity.NewProfile(user.ID, role)
	require.NoError(t, err)
	require.NoError(t, db.Create(profile).Error)

	return user
}

func seedProduct(t *testing.T, db *gorm.DB, farmer *identity.User, name string, category catalog.Category, price string, quantity int) *catalog.Product {
	t.Helper()

	product, err := catalog.NewProduct(farmer.ID, identity.RoleFarmer, name, category, decimal.RequireFromString(price), quantity)
	require.NoError(t, err)
	require.NoError(t, db.Create(product).Error)

	return product
}
