package middleware

import (
	"github.com/ecosort/waste-management-api/internal/constants"
	"github.com/ecosort/waste-management-api/internal/database"
	apierrors "github.com/ecosort/waste-management-api/internal/errors"
	"github.com/ecosort/waste-management-api/internal/models"
	"github.com/gin-gonic/gin"
)

// RequireManager ensures the authenticated employee holds the manager
// role. The role is read from the directory on every request.
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID, exists := GetEmployeeID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var employee models.Employee
		if err := database.GetDB().First(&employee, employeeID).Error; err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !employee.Active || employee.Role != models.RoleManager {
			apierrors.Forbidden(c, "Manager role required")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyRole, employee.Role)
		c.Next()
	}
}

// GetEmployeeRole retrieves the resolved role from context, defaulting
// to the employee role when no role middleware ran.
func GetEmployeeRole(c *gin.Context) models.EmployeeRole {
	role, exists := c.Get(constants.ContextKeyRole)
	if !exists {
		return models.RoleEmployee
	}
	if r, ok := role.(models.EmployeeRole); ok {
		return r
	}
	return models.RoleEmployee
}
