package services

import (
	"testing"
	"time"

	"github.com/ecosort/waste-management-api/internal/models"
	"github.com/ecosort/waste-management-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskServiceTestSuite defines the test suite for TaskService
type TaskServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	service  *TaskService
	zone     models.Zone
	manager  models.Employee
	employee models.Employee
}

// SetupTest runs before each test
func (suite *TaskServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.Zone{},
		&models.Route{},
		&models.Waypoint{},
		&models.Employee{},
		&models.Task{},
		&models.Notification{},
	)
	suite.Require().NoError(err)

	employeeRepo := repository.NewEmployeeRepository(suite.db)
	zoneRepo := repository.NewZoneRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	notificationRepo := repository.NewNotificationRepository(suite.db)
	notificationService := NewNotificationService(notificationRepo, employeeRepo)
	suite.service = NewTaskService(taskRepo, employeeRepo, zoneRepo, notificationService)

	suite.zone = models.Zone{Name: "Harbor District", Active: true}
	suite.Require().NoError(suite.db.Create(&suite.zone).Error)

	suite.manager = models.Employee{
		EmployeeCode: "EMP-0001-MGMT",
		Name:         "Dana Reyes",
		Email:        "dana.reyes@ecosort.example",
		PasswordHash: "x",
		Role:         models.RoleManager,
		ZoneID:       suite.zone.ID,
		Approved:     true,
		Active:       true,
	}
	suite.Require().NoError(suite.db.Create(&suite.manager).Error)

	suite.employee = models.Employee{
		EmployeeCode: "EMP-0002-CREW",
		Name:         "Marcus Webb",
		Email:        "marcus.webb@ecosort.example",
		PasswordHash: "x",
		Role:         models.RoleEmployee,
		ZoneID:       suite.zone.ID,
		Approved:     true,
		Active:       true,
	}
	suite.Require().NoError(suite.db.Create(&suite.employee).Error)
}

// TearDownTest runs after each test
func (suite *TaskServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskServiceTestSuite) assign(points int) *models.Task {
	task, err := suite.service.AssignTask(AssignTaskInput{
		Title:        "Sort recyclables at Harbor depot",
		AssigneeID:   suite.employee.ID,
		AssignerName: suite.manager.Name,
		ZoneID:       suite.zone.ID,
		Priority:     models.TaskPriorityMedium,
		Points:       points,
	})
	suite.Require().NoError(err)
	return task
}

func (suite *TaskServiceTestSuite) transition(task *models.Task, actor models.Employee, target models.TaskStatus) (*models.Task, error) {
	return suite.service.Transition(TransitionInput{
		TaskID:    task.ID,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Target:    target,
	})
}

func (suite *TaskServiceTestSuite) TestAssignTask_DefaultsAndNotification() {
	task := suite.assign(60)

	assert.Equal(suite.T(), models.TaskStatusPending, task.Status)
	assert.Equal(suite.T(), suite.manager.Name, task.AssignedBy)

	var count int64
	suite.db.Model(&models.Notification{}).
		Where("recipient_id = ?", suite.employee.ID).
		Count(&count)
	assert.Equal(suite.T(), int64(1), count, "assignee should be notified")
}

func (suite *TaskServiceTestSuite) TestAssignTask_RejectsInactiveAssignee() {
	suite.Require().NoError(suite.db.Model(&models.Employee{}).
		Where("id = ?", suite.employee.ID).
		Update("active", false).Error)

	_, err := suite.service.AssignTask(AssignTaskInput{
		Title:        "Clear overflow at Pier 4",
		AssigneeID:   suite.employee.ID,
		AssignerName: suite.manager.Name,
		ZoneID:       suite.zone.ID,
	})
	assert.ErrorIs(suite.T(), err, ErrAssigneeInactive)
}

func (suite *TaskServiceTestSuite) TestTransition_FullLifecycle() {
	task := suite.assign(80)

	task, err := suite.transition(task, suite.employee, models.TaskStatusInProgress)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusInProgress, task.Status)

	task, err = suite.transition(task, suite.employee, models.TaskStatusCompleted)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusCompleted, task.Status)
	assert.NotNil(suite.T(), task.CompletedAt)

	var assignee models.Employee
	suite.Require().NoError(suite.db.First(&assignee, suite.employee.ID).Error)
	assert.Equal(suite.T(), 80, assignee.Points)
}

func (suite *TaskServiceTestSuite) TestTransition_SkipToCompletedRejected() {
	task := suite.assign(40)

	_, err := suite.transition(task, suite.employee, models.TaskStatusCompleted)
	assert.ErrorIs(suite.T(), err, ErrInvalidTransition)
}

func (suite *TaskServiceTestSuite) TestTransition_TerminalIsFinal() {
	task := suite.assign(40)

	_, err := suite.transition(task, suite.manager, models.TaskStatusCancelled)
	suite.Require().NoError(err)

	for _, target := range []models.TaskStatus{
		models.TaskStatusPending,
		models.TaskStatusInProgress,
		models.TaskStatusCompleted,
	} {
		_, err := suite.transition(task, suite.manager, target)
		assert.ErrorIs(suite.T(), err, ErrInvalidTransition, "target %s", target)
	}
}

func (suite *TaskServiceTestSuite) TestTransition_PointsAwardedExactlyOnce() {
	task := suite.assign(50)

	_, err := suite.transition(task, suite.employee, models.TaskStatusInProgress)
	suite.Require().NoError(err)
	_, err = suite.transition(task, suite.employee, models.TaskStatusCompleted)
	suite.Require().NoError(err)

	// Replaying the completion must not double the award.
	_, err = suite.transition(task, suite.employee, models.TaskStatusCompleted)
	assert.ErrorIs(suite.T(), err, ErrInvalidTransition)

	var assignee models.Employee
	suite.Require().NoError(suite.db.First(&assignee, suite.employee.ID).Error)
	assert.Equal(suite.T(), 50, assignee.Points)
}

func (suite *TaskServiceTestSuite) TestTransition_RankRecomputedOnCompletion() {
	task := suite.assign(300)

	_, err := suite.transition(task, suite.employee, models.TaskStatusInProgress)
	suite.Require().NoError(err)
	_, err = suite.transition(task, suite.employee, models.TaskStatusCompleted)
	suite.Require().NoError(err)

	var assignee models.Employee
	suite.Require().NoError(suite.db.First(&assignee, suite.employee.ID).Error)
	assert.Equal(suite.T(), "Bronze", assignee.Rank)
}

func (suite *TaskServiceTestSuite) TestTransition_EmployeeCannotTouchOthersTask() {
	task := suite.assign(40)

	other := models.Employee{
		EmployeeCode: "EMP-0003-CREW",
		Name:         "Lena Okafor",
		Email:        "lena.okafor@ecosort.example",
		PasswordHash: "x",
		Role:         models.RoleEmployee,
		ZoneID:       suite.zone.ID,
		Approved:     true,
		Active:       true,
	}
	suite.Require().NoError(suite.db.Create(&other).Error)

	_, err := suite.transition(task, other, models.TaskStatusInProgress)
	assert.ErrorIs(suite.T(), err, ErrTaskPermissionDenied)
}

func (suite *TaskServiceTestSuite) TestTransition_CompletionNotifiesManagers() {
	task := suite.assign(40)

	_, err := suite.transition(task, suite.employee, models.TaskStatusInProgress)
	suite.Require().NoError(err)
	_, err = suite.transition(task, suite.employee, models.TaskStatusCompleted)
	suite.Require().NoError(err)

	var count int64
	suite.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", suite.manager.ID, models.NotificationTypeSuccess).
		Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *TaskServiceTestSuite) TestListTasks_DueDateOrdering() {
	near := time.Now().AddDate(0, 0, 1)
	far := time.Now().AddDate(0, 0, 10)

	for _, c := range []struct {
		title string
		due   *time.Time
	}{
		{"no due date", nil},
		{"due far", &far},
		{"due near", &near},
	} {
		_, err := suite.service.AssignTask(AssignTaskInput{
			Title:        c.title,
			AssigneeID:   suite.employee.ID,
			AssignerName: suite.manager.Name,
			ZoneID:       suite.zone.ID,
			DueDate:      c.due,
		})
		suite.Require().NoError(err)
	}

	tasks, total, err := suite.service.ListTasks(ListTasksInput{Page: 1, PageSize: 10})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(3), total)
	suite.Require().Len(tasks, 3)
	assert.Equal(suite.T(), "due near", tasks[0].Title)
	assert.Equal(suite.T(), "due far", tasks[1].Title)
	assert.Equal(suite.T(), "no due date", tasks[2].Title, "tasks without a due date sort last")
}

func (suite *TaskServiceTestSuite) TestDeleteTask_HiddenFromListings() {
	task := suite.assign(40)

	suite.Require().NoError(suite.service.DeleteTask(task.ID))

	_, total, err := suite.service.ListTasks(ListTasksInput{Page: 1, PageSize: 10})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(0), total)

	_, err = suite.service.GetTask(task.ID)
	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

// TestTaskServiceTestSuite runs the test suite
func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
