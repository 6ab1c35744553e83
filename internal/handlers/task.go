package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ecosort/waste-management-api/internal/dto"
	apierrors "github.com/ecosort/waste-management-api/internal/errors"
	"github.com/ecosort/waste-management-api/internal/middleware"
	"github.com/ecosort/waste-management-api/internal/models"
	"github.com/ecosort/waste-management-api/internal/services"
	"github.com/ecosort/waste-management-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService      *services.TaskService
	directoryService *services.DirectoryService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService, directoryService *services.DirectoryService) *TaskHandler {
	return &TaskHandler{
		taskService:      taskService,
		directoryService: directoryService,
	}
}

// AssignTask creates a new pending task for an employee. Manager only.
func (h *TaskHandler) AssignTask(c *gin.Context) {
	assignerID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type AssignTaskRequest struct {
		Title            string     `json:"title" binding:"required"`
		Description      string     `json:"description"`
		AssigneeID       uint64     `json:"assignee_id" binding:"required"`
		ZoneID           uint64     `json:"zone_id" binding:"required"`
		Priority         string     `json:"priority"`
		DueDate          *time.Time `json:"due_date"`
		EstimatedMinutes int        `json:"estimated_minutes"`
		Points           int        `json:"points"`
		Notes            string     `json:"notes"`
		Tags             []string   `json:"tags"`
	}

	var req AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	assigner, err := h.directoryService.GetEmployee(assignerID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	task, err := h.taskService.AssignTask(services.AssignTaskInput{
		Title:            req.Title,
		Description:      req.Description,
		AssigneeID:       req.AssigneeID,
		AssignerName:     assigner.Name,
		ZoneID:           req.ZoneID,
		Priority:         models.TaskPriority(req.Priority),
		DueDate:          req.DueDate,
		EstimatedMinutes: req.EstimatedMinutes,
		Points:           req.Points,
		Notes:            req.Notes,
		Tags:             req.Tags,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ListTasks returns tasks matching the query filters
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ListTasksInput{
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if v := c.Query("assignee_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid assignee_id")
			return
		}
		input.AssigneeID = &id
	}
	if v := c.Query("zone_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid zone_id")
			return
		}
		input.ZoneID = &id
	}
	if v := c.Query("status"); v != "" {
		status := models.TaskStatus(v)
		input.Status = &status
	}
	if v := c.Query("priority"); v != "" {
		priority := models.TaskPriority(v)
		input.Priority = &priority
	}
	if v := c.Query("due_from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			apierrors.BadRequest(c, "Invalid due_from, expected RFC3339")
			return
		}
		input.DueFrom = &t
	}
	if v := c.Query("due_to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			apierrors.BadRequest(c, "Invalid due_to, expected RFC3339")
			return
		}
		input.DueTo = &t
	}

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

// GetTask returns a single task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// Transition moves a task along its lifecycle. Employees may only
// transition their own tasks; cancellation is reserved for managers.
func (h *TaskHandler) Transition(c *gin.Context) {
	actorID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type TransitionRequest struct {
		Status           string   `json:"status" binding:"required"`
		Notes            string   `json:"notes"`
		ProofAttachments []string `json:"proof_attachments"`
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actor, err := h.directoryService.GetEmployee(actorID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	task, err := h.taskService.Transition(services.TransitionInput{
		TaskID:           id,
		ActorID:          actorID,
		ActorRole:        actor.Role,
		Target:           models.TaskStatus(req.Status),
		Notes:            req.Notes,
		ProofAttachments: req.ProofAttachments,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask retires a task from listings. Manager only.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.DeleteTask(id); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmployeeNotFound),
		errors.Is(err, services.ErrZoneNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		apierrors.InvalidTransition(c, err.Error())
	case errors.Is(err, services.ErrTaskPermissionDenied):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTaskTitleRequired),
		errors.Is(err, services.ErrInvalidTaskPriority),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrAssigneeInactive),
		errors.Is(err, services.ErrAssigneeNotInZone),
		errors.Is(err, services.ErrNegativeTaskPoints),
		errors.Is(err, services.ErrZoneInactive):
		apierrors.Validation(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
