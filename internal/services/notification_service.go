package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/ecosort/waste-management-api/internal/models"
	"github.com/ecosort/waste-management-api/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound  = errors.New("notification not found")
	ErrRecipientNotFound     = errors.New("recipient does not resolve to an employee")
	ErrNotificationForbidden = errors.New("notification belongs to another recipient")
	ErrInvalidNotification   = errors.New("title and message are required")
)

// NotificationService owns durable, per-recipient, read-tracked
// message delivery. Delivery is pull-based; the only ordering
// guarantee is creation time within a recipient's inbox.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	employeeRepo     repository.EmployeeRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repository.NotificationRepository, employeeRepo repository.EmployeeRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		employeeRepo:     employeeRepo,
	}
}

// SendInput describes a notification to deliver. Broadcast fans the
// message out to every active employee as independent records.
type SendInput struct {
	Title          string
	Message        string
	Type           models.NotificationType
	Priority       models.NotificationPriority
	SenderID       *uint64
	RecipientID    uint64
	Broadcast      bool
	ExpiresAt      *time.Time
	ActionRequired bool
	ActionURL      string
	ZoneID         *uint64
	TaskID         *uint64
	IssueID        *uint64
}

// Send validates the recipient and stores the notification. Returns
// the number of records created (one, or the fan-out size for a
// broadcast).
func (s *NotificationService) Send(input SendInput) (int, error) {
	if input.Title == "" || input.Message == "" {
		return 0, ErrInvalidNotification
	}
	if input.Type == "" {
		input.Type = models.NotificationTypeInfo
	}
	if input.Priority == "" {
		input.Priority = models.NotificationPriorityMedium
	}
	if !models.ValidNotificationType(input.Type) || !models.ValidNotificationPriority(input.Priority) {
		return 0, ErrInvalidNotification
	}

	if input.Broadcast {
		return s.broadcast(input)
	}

	if _, err := s.employeeRepo.FindByID(input.RecipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrRecipientNotFound
		}
		return 0, fmt.Errorf("failed to resolve recipient: %w", err)
	}

	notification := buildNotification(input, input.RecipientID, "")
	if err := s.notificationRepo.Create(&notification); err != nil {
		return 0, fmt.Errorf("failed to create notification: %w", err)
	}

	return 1, nil
}

// broadcast fans out to all active employees as independent
// per-recipient records, correlated by a shared broadcast id.
func (s *NotificationService) broadcast(input SendInput) (int, error) {
	recipientIDs, err := s.employeeRepo.ListActiveIDs()
	if err != nil {
		return 0, fmt.Errorf("failed to list broadcast recipients: %w", err)
	}
	if len(recipientIDs) == 0 {
		return 0, nil
	}

	broadcastID := uuid.NewString()
	notifications := make([]models.Notification, len(recipientIDs))
	for i, recipientID := range recipientIDs {
		notifications[i] = buildNotification(input, recipientID, broadcastID)
	}

	if err := s.notificationRepo.CreateBatch(notifications); err != nil {
		return 0, fmt.Errorf("failed to fan out broadcast: %w", err)
	}

	return len(notifications), nil
}

// MarkRead marks a notification read on behalf of a recipient.
// Marking an already-read notification again is a no-op.
func (s *NotificationService) MarkRead(notificationID, recipientID uint64) error {
	notification, err := s.notificationRepo.FindByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to find notification: %w", err)
	}

	if notification.RecipientID != recipientID {
		return ErrNotificationForbidden
	}

	if err := s.notificationRepo.MarkRead(notificationID, time.Now()); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	return nil
}

// MarkAllRead marks every unread notification of a recipient read
func (s *NotificationService) MarkAllRead(recipientID uint64) error {
	if err := s.notificationRepo.MarkAllRead(recipientID, time.Now()); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// ListInput represents inbox filters for a recipient
type ListInput struct {
	RecipientID    uint64
	Unread         *bool
	Type           *models.NotificationType
	Priority       *models.NotificationPriority
	IncludeExpired bool
	Page           int
	PageSize       int
}

// List returns a recipient's inbox, priority descending then newest
// first. Expired notifications are hidden unless requested.
func (s *NotificationService) List(input ListInput) ([]models.Notification, int64, error) {
	filter := repository.NotificationFilter{
		RecipientID:    input.RecipientID,
		Unread:         input.Unread,
		Type:           input.Type,
		Priority:       input.Priority,
		IncludeExpired: input.IncludeExpired,
		Now:            time.Now(),
		Page:           input.Page,
		PageSize:       input.PageSize,
	}

	notifications, total, err := s.notificationRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}

	return notifications, total, nil
}

// CountUnread counts a recipient's unread, unexpired notifications
func (s *NotificationService) CountUnread(recipientID uint64) (int64, error) {
	count, err := s.notificationRepo.CountUnread(recipientID, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func buildNotification(input SendInput, recipientID uint64, broadcastID string) models.Notification {
	return models.Notification{
		Title:          input.Title,
		Message:        input.Message,
		Type:           input.Type,
		Priority:       input.Priority,
		SenderID:       input.SenderID,
		RecipientID:    recipientID,
		BroadcastID:    broadcastID,
		ExpiresAt:      input.ExpiresAt,
		ActionRequired: input.ActionRequired,
		ActionURL:      input.ActionURL,
		ZoneID:         input.ZoneID,
		TaskID:         input.TaskID,
		IssueID:        input.IssueID,
	}
}
