package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"clinic-server/internal/config"
	"clinic-server/internal/models"
	"clinic-server/internal/utils"
)

// Context keys set by AuthMiddleware.
const (
	ctxUserID   = "userID"
	ctxUserRole = "userRole"
)

// AuthMiddleware authenticates requests with a bearer access token and
// stores the caller's identity and clinic role in the request context.
// Refresh tokens are rejected here; they are only good for the refresh
// endpoint.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.Unauthorized(c, "A bearer access token is required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(token, cfg.JWTSecret, utils.TokenKindAccess)
		if err != nil {
			utils.Unauthorized(c, "Invalid access token: "+err.Error())
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUserRole, claims.Role)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// RoleAuthMiddleware restricts a route to the given clinic roles. It
// must run after AuthMiddleware.
func RoleAuthMiddleware(allowedRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRoleFromContext(c)
		if !ok {
			utils.InternalServerError(c, "User role not found in context. AuthMiddleware might be missing.")
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		utils.Forbidden(c, "Your role does not permit this action.")
		c.Abort()
	}
}

// GetUserIDFromContext returns the authenticated user's ID.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, exists := c.Get(ctxUserID)
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok
}

// GetUserRoleFromContext returns the authenticated user's clinic role.
func GetUserRoleFromContext(c *gin.Context) (models.Role, bool) {
	userRole, exists := c.Get(ctxUserRole)
	if !exists {
		return "", false
	}
	role, ok := userRole.(models.Role)
	return role, ok
}
