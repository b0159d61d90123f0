package middleware

import (
	"net/http"

	"github.com/farmmarket/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoleConfig holds configuration for role middleware
type RoleConfig struct {
	Logger *zap.Logger
}

// RequireRole creates middleware that only admits users holding one of the
// given roles. Requests with no claims or no recognizable role are refused;
// the check never falls through to a default role.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return RequireRoleWithConfig(RoleConfig{}, roles...)
}

// RequireRoleWithConfig creates role middleware with custom config
func RequireRoleWithConfig(cfg RoleConfig, roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			return
		}

		role, err := identity.ParseRole(claims.Role)
		if err != nil {
			denyRole(c, cfg, claims.UserID, claims.Role)
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		denyRole(c, cfg, claims.UserID, claims.Role)
	}
}

func denyRole(c *gin.Context, cfg RoleConfig, userID, role string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("Role check failed",
			zap.String("user_id", userID),
			zap.String("role", role),
			zap.String("path", c.Request.URL.Path),
		)
	}

	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "FORBIDDEN",
			"message": "Your role does not permit this action",
		},
	})
}
