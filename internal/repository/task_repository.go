package repository

import (
	"time"

	"github.com/ecosort/waste-management-api/internal/database"
	"github.com/ecosort/waste-management-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering and pagination. Display order is
// due date ascending with missing due dates last, ties broken by
// priority from urgent down to low.
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{}).Where("tasks.active = ?", true)

	if filter.AssigneeID != nil {
		query = query.Where("tasks.assigned_to = ?", *filter.AssigneeID)
	}
	if filter.ZoneID != nil {
		query = query.Where("tasks.zone_id = ?", *filter.ZoneID)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.DueFrom != nil {
		query = query.Where("tasks.due_date >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		query = query.Where("tasks.due_date < ?", *filter.DueTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("CASE WHEN tasks.due_date IS NULL THEN 1 ELSE 0 END, tasks.due_date ASC").
		Order("CASE tasks.priority WHEN 'urgent' THEN 0 WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END")

	listQuery = listQuery.Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.Preload("Assignee").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete soft deletes a task via the active flag
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Model(&models.Task{}).
		Where("id = ?", id).
		Update("active", false).Error
}

// Transition moves a task between statuses with a compare-and-swap on
// the prior status. A zero row count means the task is missing or was
// concurrently transitioned by another actor.
func (r *GormTaskRepository) Transition(taskID uint64, from, to models.TaskStatus) (bool, error) {
	res := r.db.Model(&models.Task{}).
		Where("id = ? AND status = ? AND active = ?", taskID, from, true).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CompleteWithAward transitions a task in_progress→completed, stamps
// completed_at, and credits the assignee's points and rank. All three
// writes commit or roll back together so points are never awarded for
// a transition that did not happen.
func (r *GormTaskRepository) CompleteWithAward(task *models.Task, now time.Time) (bool, error) {
	swapped := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Task{}).
			Where("id = ? AND status = ? AND active = ?", task.ID, models.TaskStatusInProgress, true).
			Updates(map[string]interface{}{
				"status":       models.TaskStatusCompleted,
				"completed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		swapped = true

		if err := tx.Model(&models.Employee{}).
			Where("id = ?", task.AssignedTo).
			Update("points", gorm.Expr("points + ?", task.Points)).Error; err != nil {
			return err
		}

		var assignee models.Employee
		if err := tx.Select("points").First(&assignee, task.AssignedTo).Error; err != nil {
			return err
		}

		return tx.Model(&models.Employee{}).
			Where("id = ?", task.AssignedTo).
			Update("rank", models.RankForPoints(assignee.Points)).Error
	})
	if err != nil {
		return false, err
	}

	return swapped, nil
}

// ListCompletedInRange lists tasks in a zone completed within [from, to)
func (r *GormTaskRepository) ListCompletedInRange(zoneID uint64, from, to time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("zone_id = ? AND status = ?", zoneID, models.TaskStatusCompleted).
		Where("completed_at >= ? AND completed_at < ?", from, to).
		Find(&tasks).Error
	return tasks, err
}
