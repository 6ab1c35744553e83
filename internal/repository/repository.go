package repository

import (
	"time"

	"github.com/ecosort/waste-management-api/internal/models"
)

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	// Create creates a new employee
	Create(employee *models.Employee) error

	// FindByID finds an employee by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Employee, error)

	// FindByIdentifier finds an employee by email or employee code
	FindByIdentifier(identifier string) (*models.Employee, error)

	// ExistsByEmailOrCode reports whether an employee with the given
	// email or employee code already exists
	ExistsByEmailOrCode(email, code string) (bool, error)

	// ListByZone lists active employees assigned to a zone
	ListByZone(zoneID uint64) ([]models.Employee, error)

	// ListManagersByZone lists active managers responsible for a zone
	ListManagersByZone(zoneID uint64) ([]models.Employee, error)

	// ListActiveIDs returns the IDs of all active, approved employees
	ListActiveIDs() ([]uint64, error)

	// Update updates an employee
	Update(employee *models.Employee) error

	// Deactivate soft-deletes an employee via the active flag
	Deactivate(id uint64) error
}

// ZoneRepository defines the interface for zone data access
type ZoneRepository interface {
	// Create creates a new zone with its routes and waypoints
	Create(zone *models.Zone) error

	// FindByID finds a zone by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Zone, error)

	// List retrieves zones, optionally restricted to active ones
	List(activeOnly bool) ([]models.Zone, error)

	// Update updates a zone
	Update(zone *models.Zone) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task
	Delete(id uint64) error

	// Transition moves a task between statuses with a compare-and-swap
	// on the prior status. Returns false when no row matched, which
	// means the task is missing or was concurrently transitioned.
	Transition(taskID uint64, from, to models.TaskStatus) (bool, error)

	// CompleteWithAward transitions a task in_progress→completed and
	// credits the assignee's point balance and rank in one transaction.
	CompleteWithAward(task *models.Task, now time.Time) (bool, error)

	// ListCompletedInRange lists tasks in a zone completed within
	// [from, to), used by the analytics rollups
	ListCompletedInRange(zoneID uint64, from, to time.Time) ([]models.Task, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	AssigneeID *uint64
	ZoneID     *uint64
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
	DueFrom    *time.Time
	DueTo      *time.Time
	Page       int
	PageSize   int
}

// IssueRepository defines the interface for issue data access
type IssueRepository interface {
	// Create creates a new issue
	Create(issue *models.Issue) error

	// FindByID finds an issue by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Issue, error)

	// List retrieves issues with filtering and pagination
	List(filter IssueFilter) ([]models.Issue, int64, error)

	// Assign moves an issue open→assigned and binds the assignee, with
	// a compare-and-swap on the open status. Returns false when no row
	// matched.
	Assign(issueID, assigneeID uint64, priority *models.IssuePriority, notes *string) (bool, error)

	// Transition moves an issue along the forward-only state machine
	// with a compare-and-swap on the prior status. resolvedAt is set
	// when non-nil. Returns false when no row matched.
	Transition(issueID uint64, from, to models.IssueStatus, resolvedAt *time.Time) (bool, error)
}

// IssueFilter holds filtering options for listing issues
type IssueFilter struct {
	ZoneID     *uint64
	ReporterID *uint64
	AssigneeID *uint64
	Status     *models.IssueStatus
	Priority   *models.IssuePriority
	Category   *models.IssueCategory
	Page       int
	PageSize   int
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// Create creates a single notification
	Create(notification *models.Notification) error

	// CreateBatch creates notifications in bulk (broadcast fan-out)
	CreateBatch(notifications []models.Notification) error

	// FindByID finds a notification by ID
	FindByID(id uint64) (*models.Notification, error)

	// List retrieves notifications for a recipient with filtering,
	// sorted by priority then creation time, both descending
	List(filter NotificationFilter) ([]models.Notification, int64, error)

	// MarkRead marks a notification read. Idempotent: already-read
	// notifications keep their original read timestamp.
	MarkRead(id uint64, now time.Time) error

	// MarkAllRead marks every unread notification of a recipient read
	MarkAllRead(recipientID uint64, now time.Time) error

	// CountUnread counts unread, unexpired notifications for a recipient
	CountUnread(recipientID uint64, now time.Time) (int64, error)
}

// NotificationFilter holds filtering options for listing notifications
type NotificationFilter struct {
	RecipientID    uint64
	Unread         *bool
	Type           *models.NotificationType
	Priority       *models.NotificationPriority
	IncludeExpired bool
	Now            time.Time
	Page           int
	PageSize       int
}
