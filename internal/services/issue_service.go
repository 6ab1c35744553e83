package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ecosort/waste-management-api/internal/models"
	"github.com/ecosort/waste-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrIssueNotFound        = errors.New("issue not found")
	ErrIssueTitleRequired   = errors.New("title is required")
	ErrInvalidIssuePriority = errors.New("invalid issue priority")
	ErrInvalidIssueCategory = errors.New("invalid issue category")
	ErrInvalidIssueStatus   = errors.New("invalid issue status")
)

// IssueService owns the issue state machine and triage assignment.
type IssueService struct {
	issueRepo           repository.IssueRepository
	employeeRepo        repository.EmployeeRepository
	zoneRepo            repository.ZoneRepository
	notificationService *NotificationService
}

// NewIssueService creates a new IssueService
func NewIssueService(issueRepo repository.IssueRepository, employeeRepo repository.EmployeeRepository, zoneRepo repository.ZoneRepository, notificationService *NotificationService) *IssueService {
	return &IssueService{
		issueRepo:           issueRepo,
		employeeRepo:        employeeRepo,
		zoneRepo:            zoneRepo,
		notificationService: notificationService,
	}
}

// ReportIssueInput represents input for reporting a new issue
type ReportIssueInput struct {
	Title       string
	Description string
	ReporterID  uint64
	ZoneID      uint64
	Category    models.IssueCategory
	Priority    models.IssuePriority
	Attachments []string
}

// ReportIssue creates an issue in open state and notifies the zone's
// managers.
func (s *IssueService) ReportIssue(input ReportIssueInput) (*models.Issue, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrIssueTitleRequired
	}
	if input.Priority == "" {
		input.Priority = models.IssuePriorityMedium
	}
	if !models.ValidIssuePriority(input.Priority) {
		return nil, ErrInvalidIssuePriority
	}
	if input.Category == "" {
		input.Category = models.IssueCategoryOther
	}
	if !models.ValidIssueCategory(input.Category) {
		return nil, ErrInvalidIssueCategory
	}

	zone, err := s.zoneRepo.FindByID(input.ZoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, fmt.Errorf("failed to resolve zone: %w", err)
	}

	reporter, err := s.employeeRepo.FindByID(input.ReporterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to resolve reporter: %w", err)
	}

	issue := &models.Issue{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		ZoneID:      input.ZoneID,
		ReportedBy:  input.ReporterID,
		Status:      models.IssueStatusOpen,
		Priority:    input.Priority,
		Category:    input.Category,
		Attachments: input.Attachments,
	}

	if err := s.issueRepo.Create(issue); err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}

	managers, err := s.employeeRepo.ListManagersByZone(zone.ID)
	if err != nil {
		log.Printf("failed to resolve managers for zone %d: %v", zone.ID, err)
		return issue, nil
	}
	for _, m := range managers {
		s.notify(SendInput{
			Title:          "New issue reported",
			Message:        fmt.Sprintf("%s reported %q (%s) in zone %s.", reporter.Name, issue.Title, issue.Category, zone.Name),
			Type:           notificationTypeForIssue(issue.Priority),
			Priority:       notificationPriorityForIssue(issue.Priority),
			SenderID:       &input.ReporterID,
			RecipientID:    m.ID,
			ActionRequired: true,
			ActionURL:      fmt.Sprintf("/issues/%d", issue.ID),
			ZoneID:         &issue.ZoneID,
			IssueID:        &issue.ID,
		})
	}

	return issue, nil
}

// AssignIssueInput represents input for triaging an open issue
type AssignIssueInput struct {
	IssueID    uint64
	AssigneeID uint64
	ActorID    uint64
	Priority   *models.IssuePriority
	Notes      *string
}

// AssignIssue moves an issue open→assigned and binds the assignee.
// Only legal from open.
func (s *IssueService) AssignIssue(input AssignIssueInput) (*models.Issue, error) {
	if input.Priority != nil && !models.ValidIssuePriority(*input.Priority) {
		return nil, ErrInvalidIssuePriority
	}

	issue, err := s.issueRepo.FindByID(input.IssueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to find issue: %w", err)
	}
	if issue.Status != models.IssueStatusOpen {
		return nil, ErrInvalidTransition
	}

	assignee, err := s.employeeRepo.FindByID(input.AssigneeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to resolve assignee: %w", err)
	}
	if !assignee.Active || !assignee.Approved {
		return nil, ErrAssigneeInactive
	}
	if assignee.ZoneID != issue.ZoneID {
		return nil, ErrAssigneeNotInZone
	}

	swapped, err := s.issueRepo.Assign(issue.ID, input.AssigneeID, input.Priority, input.Notes)
	if err != nil {
		return nil, fmt.Errorf("failed to assign issue: %w", err)
	}
	if !swapped {
		return nil, ErrInvalidTransition
	}

	issue.Status = models.IssueStatusAssigned
	issue.AssignedTo = &input.AssigneeID
	if input.Priority != nil {
		issue.Priority = *input.Priority
	}
	if input.Notes != nil {
		issue.Notes = *input.Notes
	}

	s.notify(SendInput{
		Title:          "Issue assigned to you",
		Message:        fmt.Sprintf("You have been assigned issue %q.", issue.Title),
		Type:           models.NotificationTypeInfo,
		Priority:       notificationPriorityForIssue(issue.Priority),
		SenderID:       &input.ActorID,
		RecipientID:    input.AssigneeID,
		ActionRequired: true,
		ActionURL:      fmt.Sprintf("/issues/%d", issue.ID),
		ZoneID:         &issue.ZoneID,
		IssueID:        &issue.ID,
	})

	return issue, nil
}

// Transition moves an issue along the strictly forward state machine.
// Resolving stamps resolvedAt; a concurrent transition makes the
// slower request fail instead of skipping or rewinding a state.
func (s *IssueService) Transition(issueID uint64, actorID uint64, target models.IssueStatus) (*models.Issue, error) {
	if !models.ValidIssueStatus(target) {
		return nil, ErrInvalidIssueStatus
	}

	issue, err := s.issueRepo.FindByID(issueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to find issue: %w", err)
	}

	// Assignment binds an assignee and goes through AssignIssue.
	if target == models.IssueStatusAssigned {
		return nil, ErrInvalidTransition
	}
	if !models.IssueTransitionAllowed(issue.Status, target) {
		return nil, ErrInvalidTransition
	}

	var resolvedAt *time.Time
	if target == models.IssueStatusResolved {
		now := time.Now()
		resolvedAt = &now
	}

	swapped, err := s.issueRepo.Transition(issue.ID, issue.Status, target, resolvedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to transition issue: %w", err)
	}
	if !swapped {
		return nil, ErrInvalidTransition
	}

	issue.Status = target
	if resolvedAt != nil {
		issue.ResolvedAt = resolvedAt
	}

	if target == models.IssueStatusResolved {
		s.notify(SendInput{
			Title:       "Issue resolved",
			Message:     fmt.Sprintf("Issue %q you reported has been resolved.", issue.Title),
			Type:        models.NotificationTypeSuccess,
			Priority:    models.NotificationPriorityMedium,
			SenderID:    &actorID,
			RecipientID: issue.ReportedBy,
			ZoneID:      &issue.ZoneID,
			IssueID:     &issue.ID,
		})
	}

	return issue, nil
}

// GetIssue returns an issue with related data
func (s *IssueService) GetIssue(issueID uint64) (*models.Issue, error) {
	issue, err := s.issueRepo.FindByID(issueID, "Reporter", "Assignee", "Zone")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to find issue: %w", err)
	}
	return issue, nil
}

// ListIssuesInput represents filters for listing issues
type ListIssuesInput struct {
	ZoneID     *uint64
	ReporterID *uint64
	AssigneeID *uint64
	Status     *models.IssueStatus
	Priority   *models.IssuePriority
	Category   *models.IssueCategory
	Page       int
	PageSize   int
}

// ListIssues returns issues matching the filter, newest first
func (s *IssueService) ListIssues(input ListIssuesInput) ([]models.Issue, int64, error) {
	if input.Status != nil && !models.ValidIssueStatus(*input.Status) {
		return nil, 0, ErrInvalidIssueStatus
	}
	if input.Priority != nil && !models.ValidIssuePriority(*input.Priority) {
		return nil, 0, ErrInvalidIssuePriority
	}
	if input.Category != nil && !models.ValidIssueCategory(*input.Category) {
		return nil, 0, ErrInvalidIssueCategory
	}

	filter := repository.IssueFilter{
		ZoneID:     input.ZoneID,
		ReporterID: input.ReporterID,
		AssigneeID: input.AssigneeID,
		Status:     input.Status,
		Priority:   input.Priority,
		Category:   input.Category,
		Page:       input.Page,
		PageSize:   input.PageSize,
	}

	issues, total, err := s.issueRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list issues: %w", err)
	}

	return issues, total, nil
}

func (s *IssueService) notify(input SendInput) {
	if _, err := s.notificationService.Send(input); err != nil {
		log.Printf("failed to send notification %q to employee %d: %v", input.Title, input.RecipientID, err)
	}
}

func notificationTypeForIssue(p models.IssuePriority) models.NotificationType {
	if p == models.IssuePriorityCritical {
		return models.NotificationTypeUrgent
	}
	return models.NotificationTypeWarning
}

func notificationPriorityForIssue(p models.IssuePriority) models.NotificationPriority {
	switch p {
	case models.IssuePriorityCritical:
		return models.NotificationPriorityCritical
	case models.IssuePriorityHigh:
		return models.NotificationPriorityHigh
	case models.IssuePriorityLow:
		return models.NotificationPriorityLow
	default:
		return models.NotificationPriorityMedium
	}
}
