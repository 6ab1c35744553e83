package dto

import (
	"time"

	"github.com/ecosort/waste-management-api/internal/models"
)

// EmployeeDTO represents an employee in API responses. The credential
// hash and privacy-sensitive fields never leave the service.
type EmployeeDTO struct {
	ID           uint64              `json:"id"`
	EmployeeCode string              `json:"employee_code"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	Role         models.EmployeeRole `json:"role"`
	Department   string              `json:"department"`
	Position     string              `json:"position"`
	ZoneID       uint64              `json:"zone_id"`
	Points       int                 `json:"points"`
	Rank         string              `json:"rank"`
	Approved     bool                `json:"approved"`
	Active       bool                `json:"active"`
	LastLoginAt  *time.Time          `json:"last_login_at,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// ToEmployeeDTO converts an Employee model to EmployeeDTO
func ToEmployeeDTO(employee models.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:           employee.ID,
		EmployeeCode: employee.EmployeeCode,
		Name:         employee.Name,
		Email:        employee.Email,
		Role:         employee.Role,
		Department:   employee.Department,
		Position:     employee.Position,
		ZoneID:       employee.ZoneID,
		Points:       employee.Points,
		Rank:         employee.Rank,
		Approved:     employee.Approved,
		Active:       employee.Active,
		LastLoginAt:  employee.LastLoginAt,
		CreatedAt:    employee.CreatedAt,
	}
}

// ToEmployeeDTOs converts a slice of Employee models
func ToEmployeeDTOs(employees []models.Employee) []EmployeeDTO {
	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = ToEmployeeDTO(e)
	}
	return dtos
}
