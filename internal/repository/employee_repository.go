package repository

import (
	"github.com/ecosort/waste-management-api/internal/models"
	"gorm.io/gorm"
)

// GormEmployeeRepository is a GORM implementation of EmployeeRepository
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// Create creates a new employee
func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

// FindByID finds an employee by ID with optional preloading
func (r *GormEmployeeRepository) FindByID(id uint64, preload ...string) (*models.Employee, error) {
	var employee models.Employee
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&employee, id).Error; err != nil {
		return nil, err
	}

	return &employee, nil
}

// FindByIdentifier finds an employee by email or employee code
func (r *GormEmployeeRepository) FindByIdentifier(identifier string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Where("email = ? OR employee_code = ?", identifier, identifier).
		First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// ExistsByEmailOrCode reports whether an employee with the given email
// or employee code already exists
func (r *GormEmployeeRepository) ExistsByEmailOrCode(email, code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Employee{}).
		Where("email = ? OR employee_code = ?", email, code).
		Count(&count).Error
	return count > 0, err
}

// ListByZone lists active employees assigned to a zone
func (r *GormEmployeeRepository) ListByZone(zoneID uint64) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.Where("zone_id = ? AND active = ?", zoneID, true).
		Order("name ASC").
		Find(&employees).Error
	return employees, err
}

// ListManagersByZone lists active managers responsible for a zone
func (r *GormEmployeeRepository) ListManagersByZone(zoneID uint64) ([]models.Employee, error) {
	var managers []models.Employee
	err := r.db.Where("zone_id = ? AND role = ? AND active = ?", zoneID, models.RoleManager, true).
		Find(&managers).Error
	return managers, err
}

// ListActiveIDs returns the IDs of all active, approved employees
func (r *GormEmployeeRepository) ListActiveIDs() ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.Employee{}).
		Where("active = ? AND approved = ?", true, true).
		Pluck("id", &ids).Error
	return ids, err
}

// Update updates an employee
func (r *GormEmployeeRepository) Update(employee *models.Employee) error {
	return r.db.Save(employee).Error
}

// Deactivate soft-deletes an employee via the active flag
func (r *GormEmployeeRepository) Deactivate(id uint64) error {
	return r.db.Model(&models.Employee{}).
		Where("id = ?", id).
		Update("active", false).Error
}
