// Package admin provides the marketplace oversight operations.
package admin

import (
	"context"
	"time"

	"github.com/farmmarket/backend/internal/domain/catalog"
	"github.com/farmmarket/backend/internal/domain/identity"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/farmmarket/backend/internal/domain/trade"
	"github.com/farmmarket/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryCountView is a per-category product tally
type CategoryCountView struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// RoleMemberView identifies one user in a role listing
type RoleMemberView struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

// SummaryView is the platform-wide overview for administrators
type SummaryView struct {
	TotalUsers         int64                       `json:"total_users"`
	TotalProducts      int64                       `json:"total_products"`
	TotalOrders        int64                       `json:"total_orders"`
	UsersByRole        map[string]int64            `json:"users_by_role"`
	MembersByRole      map[string][]RoleMemberView `json:"members_by_role"`
	ProductsByCategory []CategoryCountView         `json:"products_by_category"`
}

// AdminService handles platform oversight: the summary view and removal of
// users and products
type AdminService struct {
	userRepo    identity.UserRepository
	productRepo catalog.ProductRepository
	orderRepo   trade.OrderRepository
	blacklist   auth.TokenBlacklist
	sessionTTL  time.Duration
	logger      *zap.Logger
}

// NewAdminService creates a new admin service. sessionTTL bounds how long a
// deleted user's outstanding tokens must stay revoked.
func NewAdminService(
	userRepo identity.UserRepository,
	productRepo catalog.ProductRepository,
	orderRepo trade.OrderRepository,
	blacklist auth.TokenBlacklist,
	sessionTTL time.Duration,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		blacklist:   blacklist,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

// Summary builds the platform overview
func (s *AdminService) Summary(ctx context.Context) (*SummaryView, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		s.logger.Error("Failed to count users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build summary")
	}
	products, err := s.productRepo.Count(ctx, shared.DefaultFilter())
	if err != nil {
		s.logger.Error("Failed to count products", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build summary")
	}
	orders, err := s.orderRepo.Count(ctx)
	if err != nil {
		s.logger.Error("Failed to count orders", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build summary")
	}

	byRole := make(map[string]int64, 3)
	membersByRole := make(map[string][]RoleMemberView, 3)
	for _, role := range []identity.Role{identity.RoleFarmer, identity.RoleBuyer, identity.RoleAdmin} {
		profiles, err := s.userRepo.FindProfilesByRole(ctx, role)
		if err != nil {
			s.logger.Error("Failed to count users by role", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build summary")
		}
		byRole[role.String()] = int64(len(profiles))

		members := make([]RoleMemberView, 0, len(profiles))
		for i := range profiles {
			user, err := s.userRepo.FindByID(ctx, profiles[i].UserID)
			if err != nil {
				// A profile whose user vanished mid-read is skipped
				continue
			}
			members = append(members, RoleMemberView{UserID: user.ID, Username: user.Username})
		}
		membersByRole[role.String()] = members
	}

	categoryCounts, err := s.productRepo.CountByCategory(ctx)
	if err != nil {
		s.logger.Error("Failed to count products by category", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build summary")
	}
	byCategory := make([]CategoryCountView, 0, len(categoryCounts))
	for _, cc := range categoryCounts {
		byCategory = append(byCategory, CategoryCountView{
			Category: cc.Category.String(),
			Count:    cc.Count,
		})
	}

	return &SummaryView{
		TotalUsers:         users,
		TotalProducts:      products,
		TotalOrders:        orders,
		UsersByRole:        byRole,
		MembersByRole:      membersByRole,
		ProductsByCategory: byCategory,
	}, nil
}

// DeleteUser removes a user and, via schema cascades, everything they own.
// Their outstanding tokens are revoked first so deleted accounts cannot
// keep an authenticated session. Admins cannot delete themselves.
func (s *AdminService) DeleteUser(ctx context.Context, adminID, userID uuid.UUID) error {
	if adminID == userID {
		return shared.NewDomainError("SELF_DELETE", "Administrators cannot delete their own account")
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return err
	}

	if err := s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), s.sessionTTL); err != nil {
		s.logger.Error("Failed to revoke user tokens", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke user sessions")
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		s.logger.Error("Failed to delete user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete user")
	}

	s.logger.Info("User deleted by admin",
		zap.String("admin_id", adminID.String()),
		zap.String("user_id", userID.String()))
	return nil
}

// DeleteProduct removes any product regardless of owner
func (s *AdminService) DeleteProduct(ctx context.Context, adminID, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		s.logger.Error("Failed to delete product", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete product")
	}

	s.logger.Info("Product deleted by admin",
		zap.String("admin_id", adminID.String()),
		zap.String("product_id", productID.String()))
	return nil
}
