package services

import (
	"testing"

	"github.com/ecosort/waste-management-api/internal/models"
	"github.com/ecosort/waste-management-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type issueTestEnv struct {
	db       *gorm.DB
	service  *IssueService
	zone     models.Zone
	manager  models.Employee
	reporter models.Employee
	assignee models.Employee
}

func setupIssueTestEnv(t *testing.T) issueTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Zone{},
		&models.Route{},
		&models.Waypoint{},
		&models.Employee{},
		&models.Issue{},
		&models.Notification{},
	)
	require.NoError(t, err)

	employeeRepo := repository.NewEmployeeRepository(db)
	zoneRepo := repository.NewZoneRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	notificationService := NewNotificationService(notificationRepo, employeeRepo)
	service := NewIssueService(issueRepo, employeeRepo, zoneRepo, notificationService)

	zone := models.Zone{Name: "Old Mill Industrial", Active: true}
	require.NoError(t, db.Create(&zone).Error)

	manager := models.Employee{
		EmployeeCode: "EMP-0001-MGMT",
		Name:         "Dana Reyes",
		Email:        "dana.reyes@ecosort.example",
		PasswordHash: "x",
		Role:         models.RoleManager,
		ZoneID:       zone.ID,
		Approved:     true,
		Active:       true,
	}
	require.NoError(t, db.Create(&manager).Error)

	reporter := models.Employee{
		EmployeeCode: "EMP-0002-CREW",
		Name:         "Marcus Webb",
		Email:        "marcus.webb@ecosort.example",
		PasswordHash: "x",
		Role:         models.RoleEmployee,
		ZoneID:       zone.ID,
		Approved:     true,
		Active:       true,
	}
	require.NoError(t, db.Create(&reporter).Error)

	assignee := models.Employee{
		EmployeeCode: "EMP-0003-CREW",
		Name:         "Lena Okafor",
		Email:        "lena.okafor@ecosort.example",
		PasswordHash: "x",
		Role:         models.RoleEmployee,
		ZoneID:       zone.ID,
		Approved:     true,
		Active:       true,
	}
	require.NoError(t, db.Create(&assignee).Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return issueTestEnv{
		db:       db,
		service:  service,
		zone:     zone,
		manager:  manager,
		reporter: reporter,
		assignee: assignee,
	}
}

func reportIssue(t *testing.T, env issueTestEnv, priority models.IssuePriority) *models.Issue {
	t.Helper()
	issue, err := env.service.ReportIssue(ReportIssueInput{
		Title:      "Compactor jammed at bay 2",
		ReporterID: env.reporter.ID,
		ZoneID:     env.zone.ID,
		Category:   models.IssueCategoryEquipment,
		Priority:   priority,
	})
	require.NoError(t, err)
	return issue
}

func TestIssueService_ReportIssue_NotifiesManagers(t *testing.T) {
	env := setupIssueTestEnv(t)

	issue := reportIssue(t, env, models.IssuePriorityHigh)
	require.Equal(t, models.IssueStatusOpen, issue.Status)

	var count int64
	env.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND issue_id = ?", env.manager.ID, issue.ID).
		Count(&count)
	require.Equal(t, int64(1), count)
}

func TestIssueService_ReportIssue_CriticalEscalatesType(t *testing.T) {
	env := setupIssueTestEnv(t)

	issue := reportIssue(t, env, models.IssuePriorityCritical)

	var notification models.Notification
	require.NoError(t, env.db.
		Where("recipient_id = ? AND issue_id = ?", env.manager.ID, issue.ID).
		First(&notification).Error)
	require.Equal(t, models.NotificationTypeUrgent, notification.Type)
}

func TestIssueService_AssignIssue_BindsAssignee(t *testing.T) {
	env := setupIssueTestEnv(t)
	issue := reportIssue(t, env, models.IssuePriorityMedium)

	assigned, err := env.service.AssignIssue(AssignIssueInput{
		IssueID:    issue.ID,
		AssigneeID: env.assignee.ID,
		ActorID:    env.manager.ID,
	})
	require.NoError(t, err)
	require.Equal(t, models.IssueStatusAssigned, assigned.Status)
	require.NotNil(t, assigned.AssignedTo)
	require.Equal(t, env.assignee.ID, *assigned.AssignedTo)
}

func TestIssueService_AssignIssue_OnlyFromOpen(t *testing.T) {
	env := setupIssueTestEnv(t)
	issue := reportIssue(t, env, models.IssuePriorityMedium)

	_, err := env.service.AssignIssue(AssignIssueInput{
		IssueID:    issue.ID,
		AssigneeID: env.assignee.ID,
		ActorID:    env.manager.ID,
	})
	require.NoError(t, err)

	_, err = env.service.AssignIssue(AssignIssueInput{
		IssueID:    issue.ID,
		AssigneeID: env.reporter.ID,
		ActorID:    env.manager.ID,
	})
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestIssueService_Transition_ForwardOnly(t *testing.T) {
	env := setupIssueTestEnv(t)
	issue := reportIssue(t, env, models.IssuePriorityMedium)

	_, err := env.service.AssignIssue(AssignIssueInput{
		IssueID:    issue.ID,
		AssigneeID: env.assignee.ID,
		ActorID:    env.manager.ID,
	})
	require.NoError(t, err)

	// Skipping in_progress is not allowed.
	_, err = env.service.Transition(issue.ID, env.assignee.ID, models.IssueStatusClosed)
	require.ErrorIs(t, err, ErrInvalidTransition)

	current, err := env.service.Transition(issue.ID, env.assignee.ID, models.IssueStatusInProgress)
	require.NoError(t, err)
	require.Equal(t, models.IssueStatusInProgress, current.Status)

	// No rewinding.
	_, err = env.service.Transition(issue.ID, env.assignee.ID, models.IssueStatusOpen)
	require.ErrorIs(t, err, ErrInvalidTransition)

	current, err = env.service.Transition(issue.ID, env.assignee.ID, models.IssueStatusResolved)
	require.NoError(t, err)
	require.NotNil(t, current.ResolvedAt)

	current, err = env.service.Transition(issue.ID, env.manager.ID, models.IssueStatusClosed)
	require.NoError(t, err)
	require.Equal(t, models.IssueStatusClosed, current.Status)

	_, err = env.service.Transition(issue.ID, env.manager.ID, models.IssueStatusClosed)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestIssueService_Transition_AssignedTargetRejected(t *testing.T) {
	env := setupIssueTestEnv(t)
	issue := reportIssue(t, env, models.IssuePriorityMedium)

	_, err := env.service.Transition(issue.ID, env.manager.ID, models.IssueStatusAssigned)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestIssueService_Transition_ResolvedNotifiesReporter(t *testing.T) {
	env := setupIssueTestEnv(t)
	issue := reportIssue(t, env, models.IssuePriorityMedium)

	_, err := env.service.AssignIssue(AssignIssueInput{
		IssueID:    issue.ID,
		AssigneeID: env.assignee.ID,
		ActorID:    env.manager.ID,
	})
	require.NoError(t, err)
	_, err = env.service.Transition(issue.ID, env.assignee.ID, models.IssueStatusInProgress)
	require.NoError(t, err)
	_, err = env.service.Transition(issue.ID, env.assignee.ID, models.IssueStatusResolved)
	require.NoError(t, err)

	var count int64
	env.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND issue_id = ? AND type = ?",
			env.reporter.ID, issue.ID, models.NotificationTypeSuccess).
		Count(&count)
	require.Equal(t, int64(1), count)
}

func TestIssueService_AssignIssue_AssigneeOutsideZone(t *testing.T) {
	env := setupIssueTestEnv(t)
	issue := reportIssue(t, env, models.IssuePriorityMedium)

	otherZone := models.Zone{Name: "Northgate Residential", Active: true}
	require.NoError(t, env.db.Create(&otherZone).Error)
	outsider := models.Employee{
		EmployeeCode: "EMP-0009-CREW",
		Name:         "Tom Kowalski",
		Email:        "tom.kowalski@ecosort.example",
		PasswordHash: "x",
		Role:         models.RoleEmployee,
		ZoneID:       otherZone.ID,
		Approved:     true,
		Active:       true,
	}
	require.NoError(t, env.db.Create(&outsider).Error)

	_, err := env.service.AssignIssue(AssignIssueInput{
		IssueID:    issue.ID,
		AssigneeID: outsider.ID,
		ActorID:    env.manager.ID,
	})
	require.ErrorIs(t, err, ErrAssigneeNotInZone)
}
