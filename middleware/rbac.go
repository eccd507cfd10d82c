package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sreeram023/event-approval-backend/internal/auth"
)

// RBACMiddleware checks if the user has one of the allowed roles
func RBACMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userVal, exists := c.Get("user")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		user, ok := userVal.(auth.User)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid user object"})
			return
		}

		for _, role := range allowedRoles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "unauthorized"})
	}
}

// RequireApprover allows only accounts holding an approver role.
func RequireApprover() gin.HandlerFunc {
	return RBACMiddleware(
		auth.RoleLead,
		auth.RoleChairperson,
		auth.RoleFacultyCoordinator,
		auth.RoleTPO,
		auth.RoleVicePrincipal,
		auth.RolePrincipal,
	)
}
