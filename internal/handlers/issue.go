package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ecosort/waste-management-api/internal/dto"
	apierrors "github.com/ecosort/waste-management-api/internal/errors"
	"github.com/ecosort/waste-management-api/internal/middleware"
	"github.com/ecosort/waste-management-api/internal/models"
	"github.com/ecosort/waste-management-api/internal/services"
	"github.com/ecosort/waste-management-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// IssueHandler coordinates issue HTTP handlers.
type IssueHandler struct {
	issueService *services.IssueService
}

// NewIssueHandler creates a new IssueHandler
func NewIssueHandler(issueService *services.IssueService) *IssueHandler {
	return &IssueHandler{
		issueService: issueService,
	}
}

// ReportIssue files a new issue in the reporter's name
func (h *IssueHandler) ReportIssue(c *gin.Context) {
	reporterID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ReportIssueRequest struct {
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description"`
		ZoneID      uint64   `json:"zone_id" binding:"required"`
		Category    string   `json:"category" binding:"required"`
		Priority    string   `json:"priority"`
		Attachments []string `json:"attachments"`
	}

	var req ReportIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	issue, err := h.issueService.ReportIssue(services.ReportIssueInput{
		Title:       req.Title,
		Description: req.Description,
		ReporterID:  reporterID,
		ZoneID:      req.ZoneID,
		Category:    models.IssueCategory(req.Category),
		Priority:    models.IssuePriority(req.Priority),
		Attachments: req.Attachments,
	})
	if err != nil {
		respondIssueError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToIssueDTO(*issue))
}

// ListIssues returns issues matching the query filters
func (h *IssueHandler) ListIssues(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ListIssuesInput{
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if v := c.Query("zone_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid zone_id")
			return
		}
		input.ZoneID = &id
	}
	if v := c.Query("reporter_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid reporter_id")
			return
		}
		input.ReporterID = &id
	}
	if v := c.Query("assignee_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid assignee_id")
			return
		}
		input.AssigneeID = &id
	}
	if v := c.Query("status"); v != "" {
		status := models.IssueStatus(v)
		input.Status = &status
	}
	if v := c.Query("priority"); v != "" {
		priority := models.IssuePriority(v)
		input.Priority = &priority
	}
	if v := c.Query("category"); v != "" {
		category := models.IssueCategory(v)
		input.Category = &category
	}

	issues, total, err := h.issueService.ListIssues(input)
	if err != nil {
		respondIssueError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueListResponse(issues, params.Page, params.Limit, total))
}

// GetIssue returns a single issue by ID
func (h *IssueHandler) GetIssue(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid issue ID")
		return
	}

	issue, err := h.issueService.GetIssue(id)
	if err != nil {
		respondIssueError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueDTO(*issue))
}

// AssignIssue binds an assignee to an open issue. Manager only.
func (h *IssueHandler) AssignIssue(c *gin.Context) {
	actorID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid issue ID")
		return
	}

	type AssignIssueRequest struct {
		AssigneeID uint64  `json:"assignee_id" binding:"required"`
		Priority   *string `json:"priority"`
		Notes      *string `json:"notes"`
	}

	var req AssignIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.AssignIssueInput{
		IssueID:    id,
		AssigneeID: req.AssigneeID,
		ActorID:    actorID,
		Notes:      req.Notes,
	}
	if req.Priority != nil {
		priority := models.IssuePriority(*req.Priority)
		input.Priority = &priority
	}

	issue, err := h.issueService.AssignIssue(input)
	if err != nil {
		respondIssueError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueDTO(*issue))
}

// Transition moves an issue forward along its lifecycle
func (h *IssueHandler) Transition(c *gin.Context) {
	actorID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid issue ID")
		return
	}

	type TransitionRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	issue, err := h.issueService.Transition(id, actorID, models.IssueStatus(req.Status))
	if err != nil {
		respondIssueError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueDTO(*issue))
}

func respondIssueError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrIssueNotFound),
		errors.Is(err, services.ErrZoneNotFound),
		errors.Is(err, services.ErrEmployeeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		apierrors.InvalidTransition(c, err.Error())
	case errors.Is(err, services.ErrIssueTitleRequired),
		errors.Is(err, services.ErrInvalidIssuePriority),
		errors.Is(err, services.ErrInvalidIssueCategory),
		errors.Is(err, services.ErrInvalidIssueStatus),
		errors.Is(err, services.ErrAssigneeInactive),
		errors.Is(err, services.ErrAssigneeNotInZone):
		apierrors.Validation(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
