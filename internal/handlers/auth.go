package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ecosort/waste-management-api/internal/constants"
	"github.com/ecosort/waste-management-api/internal/dto"
	apierrors "github.com/ecosort/waste-management-api/internal/errors"
	"github.com/ecosort/waste-management-api/internal/middleware"
	"github.com/ecosort/waste-management-api/internal/models"
	"github.com/ecosort/waste-management-api/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	directoryService *services.DirectoryService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(directoryService *services.DirectoryService) *AuthHandler {
	return &AuthHandler{
		directoryService: directoryService,
	}
}

// Register self-registers a new employee. The account stays unusable
// until a manager approves it.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		EmployeeCode string    `json:"employee_code" binding:"required"`
		Name         string    `json:"name" binding:"required"`
		Email        string    `json:"email" binding:"required,email"`
		Password     string    `json:"password" binding:"required"`
		Department   string    `json:"department" binding:"required"`
		Position     string    `json:"position" binding:"required"`
		ZoneID       uint64    `json:"zone_id" binding:"required"`
		HireDate     time.Time `json:"hire_date" binding:"required"`
		Phone        string    `json:"phone" binding:"required"`
		Address      string    `json:"address" binding:"required"`
		DateOfBirth  time.Time `json:"date_of_birth" binding:"required"`
		Gender       string    `json:"gender" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.directoryService.CreateEmployee(services.CreateEmployeeInput{
		EmployeeCode: req.EmployeeCode,
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Role:         models.RoleEmployee,
		Department:   req.Department,
		Position:     req.Position,
		ZoneID:       req.ZoneID,
		HireDate:     req.HireDate,
		Phone:        req.Phone,
		Address:      req.Address,
		DateOfBirth:  req.DateOfBirth,
		Gender:       req.Gender,
		Approved:     false,
	})
	if err != nil {
		respondDirectoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEmployeeDTO(*employee))
}

// Login authenticates an employee by email or employee code and
// initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Identifier string `json:"identifier" binding:"required"`
		Password   string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.directoryService.Authenticate(req.Identifier, req.Password)
	if err != nil {
		respondDirectoryError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyEmployeeID, employee.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentEmployee returns the authenticated employee.
func (h *AuthHandler) GetCurrentEmployee(c *gin.Context) {
	employeeID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	employee, err := h.directoryService.GetEmployee(employeeID)
	if err != nil {
		respondDirectoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

func respondDirectoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.Validation(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrMissingEmployeeField):
		apierrors.Validation(c, err.Error())
	case errors.Is(err, services.ErrEmployeeExists):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrEmployeeNotFound),
		errors.Is(err, services.ErrZoneNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrZoneInactive),
		errors.Is(err, services.ErrAlreadyApproved),
		errors.Is(err, services.ErrNotAManager):
		apierrors.Validation(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
