package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeError   NotificationType = "error"
	NotificationTypeSuccess NotificationType = "success"
	NotificationTypeUrgent  NotificationType = "urgent"
)

type NotificationPriority string

const (
	NotificationPriorityLow      NotificationPriority = "low"
	NotificationPriorityMedium   NotificationPriority = "medium"
	NotificationPriorityHigh     NotificationPriority = "high"
	NotificationPriorityCritical NotificationPriority = "critical"
)

// Notification is a per-recipient record. Broadcasts are fanned out to
// one row per active employee, correlated by BroadcastID.
type Notification struct {
	ID             uint64               `gorm:"primarykey" json:"id"`
	Title          string               `gorm:"not null" json:"title"`
	Message        string               `gorm:"type:text;not null" json:"message"`
	Type           NotificationType     `gorm:"type:varchar(20);not null;default:'info'" json:"type"`
	Priority       NotificationPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	SenderID       *uint64              `json:"sender_id"`
	RecipientID    uint64               `gorm:"not null;index" json:"recipient_id"`
	BroadcastID    string               `gorm:"type:varchar(36);index" json:"broadcast_id,omitempty"`
	Read           bool                 `gorm:"column:is_read;not null;default:false" json:"read"`
	ReadAt         *time.Time           `json:"read_at"`
	ExpiresAt      *time.Time           `json:"expires_at"`
	ActionRequired bool                 `gorm:"not null;default:false" json:"action_required"`
	ActionURL      string               `gorm:"type:varchar(500)" json:"action_url,omitempty"`
	ZoneID         *uint64              `json:"zone_id,omitempty"`
	TaskID         *uint64              `json:"task_id,omitempty"`
	IssueID        *uint64              `json:"issue_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Recipient Employee `gorm:"foreignKey:RecipientID" json:"-"`
}

// ValidNotificationType reports whether t is a known notification type.
func ValidNotificationType(t NotificationType) bool {
	switch t {
	case NotificationTypeInfo, NotificationTypeWarning, NotificationTypeError, NotificationTypeSuccess, NotificationTypeUrgent:
		return true
	}
	return false
}

// ValidNotificationPriority reports whether p is a known notification priority.
func ValidNotificationPriority(p NotificationPriority) bool {
	switch p {
	case NotificationPriorityLow, NotificationPriorityMedium, NotificationPriorityHigh, NotificationPriorityCritical:
		return true
	}
	return false
}
