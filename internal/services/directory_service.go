package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ecosort/waste-management-api/internal/constants"
	"github.com/ecosort/waste-management-api/internal/models"
	"github.com/ecosort/waste-management-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmployeeExists       = errors.New("email or employee code already registered")
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrMissingEmployeeField = errors.New("missing required employee field")
	ErrZoneNotFound         = errors.New("zone not found")
	ErrZoneInactive         = errors.New("zone is not active")
	ErrNotAManager          = errors.New("employee is not a manager")
	ErrAlreadyApproved      = errors.New("employee is already approved")
)

// dummyHash is compared against on lookup miss so that login timing
// does not distinguish an unknown identifier from a wrong password.
// bcrypt hash of an unguessable throwaway value.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// DirectoryService owns employee identity: registration, credentials,
// the manager approval gate, and zone membership lookups.
type DirectoryService struct {
	employeeRepo        repository.EmployeeRepository
	zoneRepo            repository.ZoneRepository
	notificationService *NotificationService
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(employeeRepo repository.EmployeeRepository, zoneRepo repository.ZoneRepository, notificationService *NotificationService) *DirectoryService {
	return &DirectoryService{
		employeeRepo:        employeeRepo,
		zoneRepo:            zoneRepo,
		notificationService: notificationService,
	}
}

// CreateEmployeeInput represents the profile required to register an employee
type CreateEmployeeInput struct {
	EmployeeCode string
	Name         string
	Email        string
	Password     string
	Role         models.EmployeeRole
	Department   string
	Position     string
	ZoneID       uint64
	HireDate     time.Time
	Phone        string
	Address      string
	DateOfBirth  time.Time
	Gender       string
	// Approved is set for manager-created employees; self-registration
	// leaves it false until a manager approves.
	Approved bool
}

// CreateEmployee validates the profile, enforces uniqueness of email
// and employee code, resolves the zone, and stores a bcrypt hash of
// the password. The plaintext password is never persisted.
func (s *DirectoryService) CreateEmployee(input CreateEmployeeInput) (*models.Employee, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.EmployeeCode = strings.TrimSpace(input.EmployeeCode)

	required := []string{
		input.Name, input.Email, input.EmployeeCode,
		input.Department, input.Position, input.Phone,
		input.Address, input.Gender,
	}
	for _, field := range required {
		if field == "" {
			return nil, ErrMissingEmployeeField
		}
	}
	if input.ZoneID == 0 || input.HireDate.IsZero() || input.DateOfBirth.IsZero() {
		return nil, ErrMissingEmployeeField
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if input.Role == "" {
		input.Role = models.RoleEmployee
	}

	exists, err := s.employeeRepo.ExistsByEmailOrCode(input.Email, input.EmployeeCode)
	if err != nil {
		return nil, fmt.Errorf("failed to check uniqueness: %w", err)
	}
	if exists {
		return nil, ErrEmployeeExists
	}

	zone, err := s.zoneRepo.FindByID(input.ZoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, fmt.Errorf("failed to resolve zone: %w", err)
	}
	if !zone.Active {
		return nil, ErrZoneInactive
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	employee := &models.Employee{
		EmployeeCode:   input.EmployeeCode,
		Name:           input.Name,
		Email:          input.Email,
		PasswordHash:   string(hashedPassword),
		Role:           input.Role,
		Department:     input.Department,
		Position:       input.Position,
		ZoneID:         input.ZoneID,
		Rank:           models.RankForPoints(0),
		Approved:       input.Approved,
		Active:         true,
		HireDate:       input.HireDate,
		Phone:          input.Phone,
		Address:        input.Address,
		DateOfBirth:    input.DateOfBirth,
		Gender:         input.Gender,
		NotifyByEmail:  true,
		NotifyInApp:    true,
		ProfileVisible: true,
	}

	if err := s.employeeRepo.Create(employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return employee, nil
}

// Authenticate verifies credentials by email or employee code. The
// bcrypt comparison runs on every call, hit or miss, so the caller
// cannot distinguish an unknown identifier from a wrong password.
func (s *DirectoryService) Authenticate(identifier, password string) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByIdentifier(strings.TrimSpace(identifier))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !employee.Active || !employee.Approved {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	employee.LastLoginAt = &now
	if err := s.employeeRepo.Update(employee); err != nil {
		// Login stamping is not worth failing the login over.
		log.Printf("failed to stamp last login for employee %d: %v", employee.ID, err)
	}

	return employee, nil
}

// GetEmployee retrieves an employee by ID
func (s *DirectoryService) GetEmployee(id uint64) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return employee, nil
}

// ApproveEmployee flips the approval gate on a self-registered
// employee and notifies them.
func (s *DirectoryService) ApproveEmployee(employeeID uint64, approverID uint64) (*models.Employee, error) {
	employee, err := s.GetEmployee(employeeID)
	if err != nil {
		return nil, err
	}
	if employee.Approved {
		return nil, ErrAlreadyApproved
	}

	employee.Approved = true
	if err := s.employeeRepo.Update(employee); err != nil {
		return nil, fmt.Errorf("failed to approve employee: %w", err)
	}

	if _, err := s.notificationService.Send(SendInput{
		Title:       "Registration approved",
		Message:     "Your account has been approved. You can now sign in.",
		Type:        models.NotificationTypeSuccess,
		Priority:    models.NotificationPriorityMedium,
		SenderID:    &approverID,
		RecipientID: employee.ID,
	}); err != nil {
		log.Printf("failed to notify employee %d of approval: %v", employee.ID, err)
	}

	return employee, nil
}

// ListEmployeesByZone lists active employees assigned to a zone.
// An empty result is not an error.
func (s *DirectoryService) ListEmployeesByZone(zoneID uint64) ([]models.Employee, error) {
	employees, err := s.employeeRepo.ListByZone(zoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by zone: %w", err)
	}
	return employees, nil
}

// ListEmployeesByManager lists the active employees in the manager's
// zone, excluding the manager themselves.
func (s *DirectoryService) ListEmployeesByManager(managerID uint64) ([]models.Employee, error) {
	manager, err := s.GetEmployee(managerID)
	if err != nil {
		return nil, err
	}
	if manager.Role != models.RoleManager {
		return nil, ErrNotAManager
	}

	employees, err := s.employeeRepo.ListByZone(manager.ZoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by manager: %w", err)
	}

	result := employees[:0]
	for _, e := range employees {
		if e.ID != managerID {
			result = append(result, e)
		}
	}
	return result, nil
}

// DeactivateEmployee soft-deletes an employee. Tasks referencing the
// employee keep their history; the record is never hard-deleted.
func (s *DirectoryService) DeactivateEmployee(id uint64) error {
	if _, err := s.GetEmployee(id); err != nil {
		return err
	}
	if err := s.employeeRepo.Deactivate(id); err != nil {
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}
	return nil
}
