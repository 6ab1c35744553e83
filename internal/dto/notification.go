package dto

import (
	"time"

	"github.com/ecosort/waste-management-api/internal/models"
)

// NotificationDTO represents a notification in API responses
type NotificationDTO struct {
	ID             uint64                      `json:"id"`
	Title          string                      `json:"title"`
	Message        string                      `json:"message"`
	Type           models.NotificationType     `json:"type"`
	Priority       models.NotificationPriority `json:"priority"`
	SenderID       *uint64                     `json:"sender_id"`
	Read           bool                        `json:"read"`
	ReadAt         *time.Time                  `json:"read_at"`
	ExpiresAt      *time.Time                  `json:"expires_at"`
	ActionRequired bool                        `json:"action_required"`
	ActionURL      string                      `json:"action_url,omitempty"`
	ZoneID         *uint64                     `json:"zone_id,omitempty"`
	TaskID         *uint64                     `json:"task_id,omitempty"`
	IssueID        *uint64                     `json:"issue_id,omitempty"`
	CreatedAt      time.Time                   `json:"created_at"`
}

// NotificationListResponse represents a paginated inbox
type NotificationListResponse struct {
	Notifications []NotificationDTO `json:"notifications"`
	Page          int               `json:"page"`
	PageSize      int               `json:"page_size"`
	TotalCount    int64             `json:"total_count"`
}

// ToNotificationDTO converts a Notification model to NotificationDTO
func ToNotificationDTO(n models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:             n.ID,
		Title:          n.Title,
		Message:        n.Message,
		Type:           n.Type,
		Priority:       n.Priority,
		SenderID:       n.SenderID,
		Read:           n.Read,
		ReadAt:         n.ReadAt,
		ExpiresAt:      n.ExpiresAt,
		ActionRequired: n.ActionRequired,
		ActionURL:      n.ActionURL,
		ZoneID:         n.ZoneID,
		TaskID:         n.TaskID,
		IssueID:        n.IssueID,
		CreatedAt:      n.CreatedAt,
	}
}

// ToNotificationListResponse converts notifications to a list response
func ToNotificationListResponse(notifications []models.Notification, page, pageSize int, totalCount int64) NotificationListResponse {
	items := make([]NotificationDTO, len(notifications))
	for i, n := range notifications {
		items[i] = ToNotificationDTO(n)
	}

	return NotificationListResponse{
		Notifications: items,
		Page:          page,
		PageSize:      pageSize,
		TotalCount:    totalCount,
	}
}
