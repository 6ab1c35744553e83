package dto

import (
	"time"

	"github.com/ecosort/waste-management-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID               uint64              `json:"id"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	AssignedTo       uint64              `json:"assigned_to"`
	AssignedBy       string              `json:"assigned_by"`
	ZoneID           uint64              `json:"zone_id"`
	Priority         models.TaskPriority `json:"priority"`
	Status           models.TaskStatus   `json:"status"`
	DueDate          *time.Time          `json:"due_date"`
	EstimatedMinutes int                 `json:"estimated_minutes"`
	Points           int                 `json:"points"`
	CompletedAt      *time.Time          `json:"completed_at"`
	Notes            string              `json:"notes"`
	Tags             []string            `json:"tags"`
	ProofAttachments []string            `json:"proof_attachments,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	Assignee         *EmployeeDTO        `json:"assignee,omitempty"`
	Zone             *ZoneDTO            `json:"zone,omitempty"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO `json:"tasks"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
	TotalPages int       `json:"total_pages"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:               task.ID,
		Title:            task.Title,
		Description:      task.Description,
		AssignedTo:       task.AssignedTo,
		AssignedBy:       task.AssignedBy,
		ZoneID:           task.ZoneID,
		Priority:         task.Priority,
		Status:           task.Status,
		DueDate:          task.DueDate,
		EstimatedMinutes: task.EstimatedMinutes,
		Points:           task.Points,
		CompletedAt:      task.CompletedAt,
		Notes:            task.Notes,
		Tags:             task.Tags,
		ProofAttachments: task.ProofAttachments,
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
	}

	// Include assignee if preloaded
	if task.Assignee.ID != 0 {
		assignee := ToEmployeeDTO(task.Assignee)
		dto.Assignee = &assignee
	}

	// Include zone if preloaded
	if task.Zone.ID != 0 {
		zone := ToZoneDTO(task.Zone)
		dto.Zone = &zone
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, pageSize int, totalCount int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = int(totalCount) / pageSize
		if int(totalCount)%pageSize > 0 {
			totalPages++
		}
	}

	return TaskListResponse{
		Tasks:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
