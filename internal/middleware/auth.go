package middleware

import (
	"github.com/ecosort/waste-management-api/internal/constants"
	apierrors "github.com/ecosort/waste-management-api/internal/errors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// RequireAuth checks if the employee is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		employeeID := session.Get(constants.ContextKeyEmployeeID)

		if employeeID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store employee ID in context for easy access in handlers
		c.Set(constants.ContextKeyEmployeeID, employeeID)
		c.Next()
	}
}

// GetEmployeeID retrieves the current employee ID from context
func GetEmployeeID(c *gin.Context) (uint64, bool) {
	employeeID, exists := c.Get(constants.ContextKeyEmployeeID)
	if !exists {
		return 0, false
	}

	switch v := employeeID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
