package dto

import (
	"time"

	"github.com/ecosort/waste-management-api/internal/models"
)

// IssueDTO represents an issue in API responses
type IssueDTO struct {
	ID          uint64               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	ZoneID      uint64               `json:"zone_id"`
	ReportedBy  uint64               `json:"reported_by"`
	AssignedTo  *uint64              `json:"assigned_to"`
	Status      models.IssueStatus   `json:"status"`
	Priority    models.IssuePriority `json:"priority"`
	Category    models.IssueCategory `json:"category"`
	Notes       string               `json:"notes,omitempty"`
	Attachments []string             `json:"attachments,omitempty"`
	ResolvedAt  *time.Time           `json:"resolved_at"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	Reporter    *EmployeeDTO         `json:"reporter,omitempty"`
	Assignee    *EmployeeDTO         `json:"assignee,omitempty"`
}

// IssueListResponse represents a paginated list of issues
type IssueListResponse struct {
	Issues     []IssueDTO `json:"issues"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalCount int64      `json:"total_count"`
}

// ToIssueDTO converts an Issue model to IssueDTO
func ToIssueDTO(issue models.Issue) IssueDTO {
	dto := IssueDTO{
		ID:          issue.ID,
		Title:       issue.Title,
		Description: issue.Description,
		ZoneID:      issue.ZoneID,
		ReportedBy:  issue.ReportedBy,
		AssignedTo:  issue.AssignedTo,
		Status:      issue.Status,
		Priority:    issue.Priority,
		Category:    issue.Category,
		Notes:       issue.Notes,
		Attachments: issue.Attachments,
		ResolvedAt:  issue.ResolvedAt,
		CreatedAt:   issue.CreatedAt,
		UpdatedAt:   issue.UpdatedAt,
	}

	// Include reporter/assignee if preloaded
	if issue.Reporter.ID != 0 {
		reporter := ToEmployeeDTO(issue.Reporter)
		dto.Reporter = &reporter
	}
	if issue.Assignee != nil && issue.Assignee.ID != 0 {
		assignee := ToEmployeeDTO(*issue.Assignee)
		dto.Assignee = &assignee
	}

	return dto
}

// ToIssueListResponse converts a slice of issues to IssueListResponse
func ToIssueListResponse(issues []models.Issue, page, pageSize int, totalCount int64) IssueListResponse {
	items := make([]IssueDTO, len(issues))
	for i, issue := range issues {
		items[i] = ToIssueDTO(issue)
	}

	return IssueListResponse{
		Issues:     items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
	}
}
