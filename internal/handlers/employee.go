package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ecosort/waste-management-api/internal/dto"
	apierrors "github.com/ecosort/waste-management-api/internal/errors"
	"github.com/ecosort/waste-management-api/internal/middleware"
	"github.com/ecosort/waste-management-api/internal/models"
	"github.com/ecosort/waste-management-api/internal/services"
	"github.com/gin-gonic/gin"
)

// EmployeeHandler coordinates directory HTTP handlers.
type EmployeeHandler struct {
	directoryService *services.DirectoryService
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(directoryService *services.DirectoryService) *EmployeeHandler {
	return &EmployeeHandler{
		directoryService: directoryService,
	}
}

// CreateEmployee registers a new employee, pre-approved. Manager only.
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	type CreateEmployeeRequest struct {
		EmployeeCode string    `json:"employee_code" binding:"required"`
		Name         string    `json:"name" binding:"required"`
		Email        string    `json:"email" binding:"required,email"`
		Password     string    `json:"password" binding:"required"`
		Role         string    `json:"role"`
		Department   string    `json:"department" binding:"required"`
		Position     string    `json:"position" binding:"required"`
		ZoneID       uint64    `json:"zone_id" binding:"required"`
		HireDate     time.Time `json:"hire_date" binding:"required"`
		Phone        string    `json:"phone" binding:"required"`
		Address      string    `json:"address" binding:"required"`
		DateOfBirth  time.Time `json:"date_of_birth" binding:"required"`
		Gender       string    `json:"gender" binding:"required"`
	}

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	role := models.EmployeeRole(req.Role)
	if req.Role == "" {
		role = models.RoleEmployee
	}
	if role != models.RoleEmployee && role != models.RoleManager {
		apierrors.Validation(c, "role must be employee or manager")
		return
	}

	employee, err := h.directoryService.CreateEmployee(services.CreateEmployeeInput{
		EmployeeCode: req.EmployeeCode,
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Role:         role,
		Department:   req.Department,
		Position:     req.Position,
		ZoneID:       req.ZoneID,
		HireDate:     req.HireDate,
		Phone:        req.Phone,
		Address:      req.Address,
		DateOfBirth:  req.DateOfBirth,
		Gender:       req.Gender,
		Approved:     true,
	})
	if err != nil {
		respondDirectoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEmployeeDTO(*employee))
}

// ListEmployees lists employees by zone or by managing manager.
// Exactly one of zone_id or manager_id selects the roster; both empty
// lists the caller's own zone.
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	var (
		employees []models.Employee
		err       error
	)

	switch {
	case c.Query("zone_id") != "":
		zoneID, parseErr := strconv.ParseUint(c.Query("zone_id"), 10, 64)
		if parseErr != nil {
			apierrors.BadRequest(c, "Invalid zone_id")
			return
		}
		employees, err = h.directoryService.ListEmployeesByZone(zoneID)
	case c.Query("manager_id") != "":
		managerID, parseErr := strconv.ParseUint(c.Query("manager_id"), 10, 64)
		if parseErr != nil {
			apierrors.BadRequest(c, "Invalid manager_id")
			return
		}
		employees, err = h.directoryService.ListEmployeesByManager(managerID)
	default:
		employeeID, exists := middleware.GetEmployeeID(c)
		if !exists {
			apierrors.Unauthorized(c, "Not authenticated")
			return
		}
		employees, err = h.directoryService.ListEmployeesByManager(employeeID)
	}
	if err != nil {
		respondDirectoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employees": dto.ToEmployeeDTOs(employees),
	})
}

// GetEmployee returns a single employee by ID
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid employee ID")
		return
	}

	employee, err := h.directoryService.GetEmployee(id)
	if err != nil {
		respondDirectoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

// ApproveEmployee flips the approval gate on a self-registered
// employee. Manager only.
func (h *EmployeeHandler) ApproveEmployee(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid employee ID")
		return
	}

	approverID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	employee, err := h.directoryService.ApproveEmployee(id, approverID)
	if err != nil {
		respondDirectoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

// DeactivateEmployee soft-deletes an employee. Manager only.
func (h *EmployeeHandler) DeactivateEmployee(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid employee ID")
		return
	}

	if err := h.directoryService.DeactivateEmployee(id); err != nil {
		respondDirectoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Employee deactivated",
	})
}

func parseIDParam(c *gin.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
