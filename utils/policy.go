package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Authorize is the single authorization decision point: given an actor
// role, an action and a resource it returns allow/deny. Handlers never
// re-implement role checks.
func Authorize(role, action, resource string) bool {
	switch role {
	case "superadmin":
		return true
	case "admin":
		// Admins manage everything inside their own company except the
		// tenant registry itself.
		return resource != "companies"
	case "agent":
		switch resource {
		case "bookings", "customers", "vehicles":
			return action == "read" || action == "update"
		}
		return false
	case "customer":
		switch resource {
		case "bookings":
			return action == "create" || action == "read"
		case "vehicles", "profile":
			return true
		}
		return false
	default:
		return false
	}
}

// RequirePermission enforces the policy at the request boundary.
func RequirePermission(action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Role not found in context"})
			return
		}
		roleStr, _ := role.(string)
		if !Authorize(roleStr, action, resource) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}
