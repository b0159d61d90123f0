package persistence

import (
	"context"
	"testing"

	"github.com/farmmarket/backend/internal/domain/identity"
	"github.com/farmmarket/backend/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepositoryMarkAllRead(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormNotificationRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", identity.RoleBuyer)
	bob := seedUser(t, db, "bob", identity.RoleBuyer)

	for _, msg := range []string{"first", "second", "third"} {
		n, err := notification.New(alice.ID, msg)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, n))
	}
	other, err := notification.New(bob.ID, "for bob")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, other))

	t.Run("marks only the user's unread rows", func(t *testing.T) {
		affected, err := repo.MarkAllRead(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), affected)

		count, err := repo.CountUnread(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		bobCount, err := repo.CountUnread(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), bobCount)
	})

	t.Run("second pass affects nothing", func(t *testing.T) {
		affected, err := repo.MarkAllRead(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)
	})
}

func TestNotificationRepositoryFindByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormNotificationRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "carol", identity.RoleFarmer)

	n, err := notification.New(user.ID, "stock sold out")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, n))

	notifications, err := repo.FindByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "stock sold out", notifications[0].Message)
	assert.False(t, notifications[0].IsRead)
}
