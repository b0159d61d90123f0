package identity

import (
	"context"
	"errors"
	"time"

	"github.com/farmmarket/backend/internal/domain/identity"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/farmmarket/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles registration, login, logout and token refresh
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Register creates a user with their role profile and signs them in.
// The role is validated against the closed set; registration never creates
// a user without a profile.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	role, err := identity.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}
	// Admin accounts are provisioned operationally, never self-registered.
	if role == identity.RoleAdmin {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be Farmer or Buyer")
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		s.logger.Error("Failed to check username availability", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check username availability")
	}
	if exists {
		return nil, shared.NewDomainError("USERNAME_TAKEN", "Username is already taken")
	}

	user, err := identity.NewUser(input.Username, input.Email, input.Password)
	if err != nil {
		return nil, err
	}
	profile, err := identity.NewProfile(user.ID, role)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.CreateWithProfile(ctx, user, profile); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("USERNAME_TAKEN", "Username is already taken")
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}

	s.logger.Info("User registered",
		zap.String("username", user.Username),
		zap.String("role", role.String()))

	return s.issueTokens(user, role)
}

// Login authenticates a user and returns tokens. The role embedded in the
// access token comes from the stored profile, never from the request.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		s.logger.Warn("Login for unknown username", zap.String("username", input.Username))
		return nil, shared.ErrInvalidCredentials
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", input.Username))
		return nil, shared.ErrInvalidCredentials
	}

	role, err := s.userRepo.ResolveRole(ctx, user.ID)
	if err != nil {
		if errors.Is(err, shared.ErrRoleNotSet) {
			s.logger.Warn("Login for user without role profile", zap.String("username", input.Username))
			return nil, shared.ErrRoleNotSet
		}
		s.logger.Error("Failed to resolve role", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to resolve user role")
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Login still succeeds; the timestamp is best effort
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	s.logger.Info("User logged in",
		zap.String("username", user.Username),
		zap.String("role", role.String()))

	return s.issueTokens(user, role)
}

// Logout revokes the presented access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return shared.ErrUnauthorized
	}

	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}

	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke token")
	}

	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// Refresh exchanges a valid refresh token for a new token pair. The user's
// current role is re-resolved so a changed profile takes effect.
func (s *AuthService) Refresh(ctx context.Context, input RefreshInput) (*AuthResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrExpiredToken):
			return nil, shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
		default:
			return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
		}
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "User no longer exists")
	}

	role, err := s.userRepo.ResolveRole(ctx, user.ID)
	if err != nil {
		return nil, shared.ErrRoleNotSet
	}

	pair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, user.Username, role.String())
	if err != nil {
		if errors.Is(err, auth.ErrMaxRefreshExceeded) {
			return nil, shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum refresh count exceeded, log in again")
		}
		s.logger.Error("Failed to refresh token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to refresh tokens")
	}

	return s.buildResult(user, role, pair), nil
}

func (s *AuthService) issueTokens(user *identity.User, role identity.Role) (*AuthResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     role.String(),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}
	return s.buildResult(user, role, pair), nil
}

func (s *AuthService) buildResult(user *identity.User, role identity.Role, pair *auth.TokenPair) *AuthResult {
	return &AuthResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User: UserInfo{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     role.String(),
		},
	}
}
