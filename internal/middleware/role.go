package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourpricing/internal/pkg/jwt"
	"tourpricing/internal/pkg/response"
)

// RequireRole ensures that the authenticated caller has the specified role
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		if role != requiredRole {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// OperatorOnly guards endpoints that change rates, itineraries or snapshots.
func OperatorOnly() gin.HandlerFunc {
	return RequireRole(jwt.RoleOperator)
}
