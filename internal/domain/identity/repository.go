package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for users and profiles
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// CreateWithProfile persists the user and their role profile in one
	// transaction; registration never leaves a user without a role.
	CreateWithProfile(ctx context.Context, user *User, profile *Profile) error

	// ResolveRole returns the role of the user's profile, or ErrRoleNotSet
	// when no profile exists. It never fabricates a default.
	ResolveRole(ctx context.Context, userID uuid.UUID) (Role, error)

	FindProfilesByRole(ctx context.Context, role Role) ([]Profile, error)
	Save(ctx context.Context, user *User) error

	// Delete removes the user; the schema cascades deletion of the profile
	// and everything the user owns (products, orders, wishlist entries,
	// reviews, notifications, cart entries).
	Delete(ctx context.Context, id uuid.UUID) error

	Count(ctx context.Context) (int64, error)
}
