package repository

import (
	"time"

	"github.com/ecosort/waste-management-api/internal/database"
	"github.com/ecosort/waste-management-api/internal/models"
	"gorm.io/gorm"
)

// GormIssueRepository is a GORM implementation of IssueRepository
type GormIssueRepository struct {
	db *gorm.DB
}

// NewIssueRepository creates a new IssueRepository
func NewIssueRepository(db *gorm.DB) IssueRepository {
	return &GormIssueRepository{db: db}
}

// Create creates a new issue
func (r *GormIssueRepository) Create(issue *models.Issue) error {
	return r.db.Create(issue).Error
}

// FindByID finds an issue by ID with optional preloading
func (r *GormIssueRepository) FindByID(id uint64, preload ...string) (*models.Issue, error) {
	var issue models.Issue
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&issue, id).Error; err != nil {
		return nil, err
	}

	return &issue, nil
}

// List retrieves issues with filtering and pagination, newest first
func (r *GormIssueRepository) List(filter IssueFilter) ([]models.Issue, int64, error) {
	var issues []models.Issue

	query := r.db.Model(&models.Issue{})

	if filter.ZoneID != nil {
		query = query.Where("zone_id = ?", *filter.ZoneID)
	}
	if filter.ReporterID != nil {
		query = query.Where("reported_by = ?", *filter.ReporterID)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assigned_to = ?", *filter.AssigneeID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC")

	listQuery = listQuery.Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.Preload("Reporter").Preload("Assignee").Find(&issues).Error; err != nil {
		return nil, 0, err
	}

	return issues, total, nil
}

// Assign moves an issue open→assigned and binds the assignee, with a
// compare-and-swap on the open status
func (r *GormIssueRepository) Assign(issueID, assigneeID uint64, priority *models.IssuePriority, notes *string) (bool, error) {
	updates := map[string]interface{}{
		"status":      models.IssueStatusAssigned,
		"assigned_to": assigneeID,
	}
	if priority != nil {
		updates["priority"] = *priority
	}
	if notes != nil {
		updates["notes"] = *notes
	}

	res := r.db.Model(&models.Issue{}).
		Where("id = ? AND status = ?", issueID, models.IssueStatusOpen).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Transition moves an issue along the forward-only state machine with
// a compare-and-swap on the prior status
func (r *GormIssueRepository) Transition(issueID uint64, from, to models.IssueStatus, resolvedAt *time.Time) (bool, error) {
	updates := map[string]interface{}{"status": to}
	if resolvedAt != nil {
		updates["resolved_at"] = *resolvedAt
	}

	res := r.db.Model(&models.Issue{}).
		Where("id = ? AND status = ?", issueID, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
