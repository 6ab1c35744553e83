package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ecosort/waste-management-api/internal/models"
	"github.com/ecosort/waste-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskTitleRequired    = errors.New("title is required")
	ErrInvalidTaskPriority  = errors.New("invalid task priority")
	ErrInvalidTaskStatus    = errors.New("invalid task status")
	ErrInvalidTransition    = errors.New("transition is not allowed from the current status")
	ErrAssigneeInactive     = errors.New("assignee is not an active employee")
	ErrAssigneeNotInZone    = errors.New("assignee does not belong to the task's zone")
	ErrTaskPermissionDenied = errors.New("employee may only transition their own tasks")
	ErrNegativeTaskPoints   = errors.New("points must not be negative")
)

// TaskService owns the task state machine and point accrual.
type TaskService struct {
	taskRepo            repository.TaskRepository
	employeeRepo        repository.EmployeeRepository
	zoneRepo            repository.ZoneRepository
	notificationService *NotificationService
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, employeeRepo repository.EmployeeRepository, zoneRepo repository.ZoneRepository, notificationService *NotificationService) *TaskService {
	return &TaskService{
		taskRepo:            taskRepo,
		employeeRepo:        employeeRepo,
		zoneRepo:            zoneRepo,
		notificationService: notificationService,
	}
}

// AssignTaskInput represents input for assigning a new task
type AssignTaskInput struct {
	Title            string
	Description      string
	AssigneeID       uint64
	AssignerName     string
	ZoneID           uint64
	Priority         models.TaskPriority
	DueDate          *time.Time
	EstimatedMinutes int
	Points           int
	Notes            string
	Tags             []string
}

// AssignTask creates a task in pending state after validating the
// assignee against the zone roster, then notifies the assignee.
func (s *TaskService) AssignTask(input AssignTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTaskTitleRequired
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if !models.ValidTaskPriority(input.Priority) {
		return nil, ErrInvalidTaskPriority
	}
	if input.Points < 0 {
		return nil, ErrNegativeTaskPoints
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

	assignee, err := s.employeeRepo.FindByID(input.AssigneeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to resolve assignee: %w", err)
	}
	if !assignee.Active || !assignee.Approved {
		return nil, ErrAssigneeInactive
	}
	if assignee.ZoneID != zone.ID {
		return nil, ErrAssigneeNotInZone
	}

	task := &models.Task{
		Title:            strings.TrimSpace(input.Title),
		Description:      input.Description,
		AssignedTo:       input.AssigneeID,
		AssignedBy:       input.AssignerName,
		ZoneID:           input.ZoneID,
		Priority:         input.Priority,
		Status:           models.TaskStatusPending,
		DueDate:          input.DueDate,
		EstimatedMinutes: input.EstimatedMinutes,
		Points:           input.Points,
		Notes:            input.Notes,
		Tags:             input.Tags,
		Active:           true,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.notify(SendInput{
		Title:          "New task assigned",
		Message:        fmt.Sprintf("You have been assigned %q in zone %s.", task.Title, zone.Name),
		Type:           models.NotificationTypeInfo,
		Priority:       notificationPriorityForTask(task.Priority),
		RecipientID:    task.AssignedTo,
		ActionRequired: true,
		ActionURL:      fmt.Sprintf("/tasks/%d", task.ID),
		ZoneID:         &task.ZoneID,
		TaskID:         &task.ID,
	})

	return task, nil
}

// TransitionInput represents a requested task status change
type TransitionInput struct {
	TaskID           uint64
	ActorID          uint64
	ActorRole        models.EmployeeRole
	Target           models.TaskStatus
	Notes            string
	ProofAttachments []string
}

// Transition enforces the task state machine. Transitions into
// completed stamp the completion time and award points to the
// assignee atomically; a concurrent transition on the same task makes
// the slower request fail instead of overwriting a terminal status.
func (s *TaskService) Transition(input TransitionInput) (*models.Task, error) {
	if !models.ValidTaskStatus(input.Target) {
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.taskRepo.FindByID(input.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if !task.Active {
		return nil, ErrTaskNotFound
	}

	if input.ActorRole != models.RoleManager {
		if task.AssignedTo != input.ActorID {
			return nil, ErrTaskPermissionDenied
		}
		// Cancellation is a manager action.
		if input.Target == models.TaskStatusCancelled {
			return nil, ErrTaskPermissionDenied
		}
	}

	if !models.TaskTransitionAllowed(task.Status, input.Target) {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	var swapped bool
	if input.Target == models.TaskStatusCompleted {
		swapped, err = s.taskRepo.CompleteWithAward(task, now)
	} else {
		swapped, err = s.taskRepo.Transition(task.ID, task.Status, input.Target)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to transition task: %w", err)
	}
	if !swapped {
		// Somebody else moved the task first.
		return nil, ErrInvalidTransition
	}

	task.Status = input.Target
	if input.Target == models.TaskStatusCompleted {
		task.CompletedAt = &now
	}
	if input.Notes != "" || len(input.ProofAttachments) > 0 {
		if input.Notes != "" {
			task.Notes = input.Notes
		}
		if len(input.ProofAttachments) > 0 {
			task.ProofAttachments = append(task.ProofAttachments, input.ProofAttachments...)
		}
		if err := s.taskRepo.Update(task); err != nil {
			log.Printf("failed to save notes/attachments for task %d: %v", task.ID, err)
		}
	}

	s.notifyTransition(task, input)

	return task, nil
}

// notifyTransition emits the follow-up notification for a completed
// state change. Completion notifies the zone's managers; cancellation
// notifies the assignee.
func (s *TaskService) notifyTransition(task *models.Task, input TransitionInput) {
	switch input.Target {
	case models.TaskStatusCompleted:
		managers, err := s.employeeRepo.ListManagersByZone(task.ZoneID)
		if err != nil {
			log.Printf("failed to resolve managers for zone %d: %v", task.ZoneID, err)
			return
		}
		for _, m := range managers {
			s.notify(SendInput{
				Title:       "Task completed",
				Message:     fmt.Sprintf("Task %q was completed.", task.Title),
				Type:        models.NotificationTypeSuccess,
				Priority:    models.NotificationPriorityMedium,
				SenderID:    &input.ActorID,
				RecipientID: m.ID,
				ZoneID:      &task.ZoneID,
				TaskID:      &task.ID,
			})
		}
	case models.TaskStatusCancelled:
		s.notify(SendInput{
			Title:       "Task cancelled",
			Message:     fmt.Sprintf("Task %q was cancelled.", task.Title),
			Type:        models.NotificationTypeWarning,
			Priority:    models.NotificationPriorityMedium,
			SenderID:    &input.ActorID,
			RecipientID: task.AssignedTo,
			ZoneID:      &task.ZoneID,
			TaskID:      &task.ID,
		})
	}
}

// GetTask returns a task with related data
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Assignee", "Zone")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if !task.Active {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	AssigneeID *uint64
	ZoneID     *uint64
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
	DueFrom    *time.Time
	DueTo      *time.Time
	Page       int
	PageSize   int
}

// ListTasks returns tasks matching the filter, ordered for display by
// due date ascending then priority descending.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	if input.Status != nil && !models.ValidTaskStatus(*input.Status) {
		return nil, 0, ErrInvalidTaskStatus
	}
	if input.Priority != nil && !models.ValidTaskPriority(*input.Priority) {
		return nil, 0, ErrInvalidTaskPriority
	}

	filter := repository.TaskFilter{
		AssigneeID: input.AssigneeID,
		ZoneID:     input.ZoneID,
		Status:     input.Status,
		Priority:   input.Priority,
		DueFrom:    input.DueFrom,
		DueTo:      input.DueTo,
		Page:       input.Page,
		PageSize:   input.PageSize,
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// DeleteTask soft deletes a task
func (s *TaskService) DeleteTask(taskID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}
	if !task.Active {
		return ErrTaskNotFound
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// notify delivers a side-effect notification. Delivery is best-effort
// and must not fail the primary operation, so errors are logged only.
func (s *TaskService) notify(input SendInput) {
	if _, err := s.notificationService.Send(input); err != nil {
		log.Printf("failed to send notification %q to employee %d: %v", input.Title, input.RecipientID, err)
	}
}

func notificationPriorityForTask(p models.TaskPriority) models.NotificationPriority {
	switch p {
	case models.TaskPriorityUrgent:
		return models.NotificationPriorityCritical
	case models.TaskPriorityHigh:
		return models.NotificationPriorityHigh
	case models.TaskPriorityLow:
		return models.NotificationPriorityLow
	default:
		return models.NotificationPriorityMedium
	}
}
