package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ecosort/waste-management-api/internal/constants"
	"github.com/ecosort/waste-management-api/internal/dto"
	apierrors "github.com/ecosort/waste-management-api/internal/errors"
	"github.com/ecosort/waste-management-api/internal/middleware"
	"github.com/ecosort/waste-management-api/internal/models"
	"github.com/ecosort/waste-management-api/internal/services"
	"github.com/ecosort/waste-management-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// NotificationHandler coordinates notification HTTP handlers.
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// SendNotification delivers a notification to one employee, or fans
// out to every active employee when recipient_id is "all". Manager only.
func (h *NotificationHandler) SendNotification(c *gin.Context) {
	senderID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type SendNotificationRequest struct {
		Title          string     `json:"title" binding:"required"`
		Message        string     `json:"message" binding:"required"`
		RecipientID    string     `json:"recipient_id" binding:"required"`
		Type           string     `json:"type"`
		Priority       string     `json:"priority"`
		ExpiresAt      *time.Time `json:"expires_at"`
		ActionRequired bool       `json:"action_required"`
		ActionURL      string     `json:"action_url"`
		ZoneID         *uint64    `json:"zone_id"`
		TaskID         *uint64    `json:"task_id"`
		IssueID        *uint64    `json:"issue_id"`
	}

	var req SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.SendInput{
		Title:          req.Title,
		Message:        req.Message,
		Type:           models.NotificationType(req.Type),
		Priority:       models.NotificationPriority(req.Priority),
		SenderID:       &senderID,
		ExpiresAt:      req.ExpiresAt,
		ActionRequired: req.ActionRequired,
		ActionURL:      req.ActionURL,
		ZoneID:         req.ZoneID,
		TaskID:         req.TaskID,
		IssueID:        req.IssueID,
	}

	if req.RecipientID == constants.RecipientAll {
		input.Broadcast = true
	} else {
		recipientID, err := strconv.ParseUint(req.RecipientID, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid recipient_id")
			return
		}
		input.RecipientID = recipientID
	}

	created, err := h.notificationService.Send(input)
	if err != nil {
		respondNotificationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Notification sent",
		"delivered": created,
	})
}

// ListNotifications returns the caller's inbox, unread and urgent first
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	recipientID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListInput{
		RecipientID:    recipientID,
		IncludeExpired: c.Query("include_expired") == "true",
		Page:           params.Page,
		PageSize:       params.Limit,
	}

	if v := c.Query("unread"); v != "" {
		unread := v == "true"
		input.Unread = &unread
	}
	if v := c.Query("type"); v != "" {
		t := models.NotificationType(v)
		input.Type = &t
	}
	if v := c.Query("priority"); v != "" {
		priority := models.NotificationPriority(v)
		input.Priority = &priority
	}

	notifications, total, err := h.notificationService.List(input)
	if err != nil {
		respondNotificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNotificationListResponse(notifications, params.Page, params.Limit, total))
}

// MarkRead marks one of the caller's notifications as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	recipientID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.notificationService.MarkRead(id, recipientID); err != nil {
		respondNotificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllRead marks every unread notification of the caller as read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	recipientID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.notificationService.MarkAllRead(recipientID); err != nil {
		respondNotificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// UnreadCount returns the caller's unread notification count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	recipientID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	count, err := h.notificationService.CountUnread(recipientID)
	if err != nil {
		respondNotificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

func respondNotificationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotificationNotFound),
		errors.Is(err, services.ErrRecipientNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotificationForbidden):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidNotification):
		apierrors.Validation(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
