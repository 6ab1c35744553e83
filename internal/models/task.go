package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

type Task struct {
	ID               uint64       `gorm:"primarykey" json:"id"`
	Title            string       `gorm:"not null" json:"title"`
	Description      string       `gorm:"type:text" json:"description"`
	AssignedTo       uint64       `gorm:"not null;index:idx_tasks_assigned_to_status" json:"assigned_to"`
	AssignedBy       string       `gorm:"type:varchar(255)" json:"assigned_by"`
	ZoneID           uint64       `gorm:"not null;index:idx_tasks_zone_id_status" json:"zone_id"`
	Priority         TaskPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Status           TaskStatus   `gorm:"type:varchar(20);not null;default:'pending';index:idx_tasks_assigned_to_status,priority:2;index:idx_tasks_zone_id_status,priority:2" json:"status"`
	DueDate          *time.Time   `gorm:"index" json:"due_date"`
	EstimatedMinutes int          `json:"estimated_minutes"`
	Points           int          `gorm:"not null;default:0" json:"points"`
	CompletedAt      *time.Time   `json:"completed_at"`
	Notes            string       `gorm:"type:text" json:"notes"`
	Tags             []string     `gorm:"serializer:json" json:"tags"`
	ProofAttachments []string     `gorm:"serializer:json" json:"proof_attachments"`
	Active           bool         `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Assignee Employee `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	Zone     Zone     `gorm:"foreignKey:ZoneID" json:"zone,omitempty"`
}

// IsTerminal reports whether the status allows no further transition.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusCancelled
}

// ValidTaskStatus reports whether s is a known task status.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// ValidTaskPriority reports whether p is a known task priority.
func ValidTaskPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// TaskTransitionAllowed encodes the task state machine:
// pending → in_progress → completed, with cancellation from any
// non-terminal state. Completed and cancelled are terminal.
func TaskTransitionAllowed(from, to TaskStatus) bool {
	if from.IsTerminal() {
		return false
	}
	switch to {
	case TaskStatusInProgress:
		return from == TaskStatusPending
	case TaskStatusCompleted:
		return from == TaskStatusInProgress
	case TaskStatusCancelled:
		return from == TaskStatusPending || from == TaskStatusInProgress
	}
	return false
}
