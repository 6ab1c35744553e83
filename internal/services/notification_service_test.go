package services

import (
	"testing"
	"time"

	"github.com/ecosort/waste-management-api/internal/models"
	"github.com/ecosort/waste-management-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type notificationTestEnv struct {
	db      *gorm.DB
	service *NotificationService
	sender  models.Employee
	crew    []models.Employee
}

func setupNotificationTestEnv(t *testing.T) notificationTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Zone{},
		&models.Employee{},
		&models.Notification{},
	)
	require.NoError(t, err)

	employeeRepo := repository.NewEmployeeRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	service := NewNotificationService(notificationRepo, employeeRepo)

	zone := models.Zone{Name: "Harbor District", Active: true}
	require.NoError(t, db.Create(&zone).Error)

	sender := models.Employee{
		EmployeeCode: "EMP-0001-MGMT",
		Name:         "Dana Reyes",
		Email:        "dana.reyes@ecosort.example",
		PasswordHash: "x",
		Role:         models.RoleManager,
		ZoneID:       zone.ID,
		Approved:     true,
		Active:       true,
	}
	require.NoError(t, db.Create(&sender).Error)

	crew := []models.Employee{
		{EmployeeCode: "EMP-0002-CREW", Name: "Marcus Webb", Email: "marcus.webb@ecosort.example", PasswordHash: "x", ZoneID: zone.ID, Approved: true, Active: true},
		{EmployeeCode: "EMP-0003-CREW", Name: "Lena Okafor", Email: "lena.okafor@ecosort.example", PasswordHash: "x", ZoneID: zone.ID, Approved: true, Active: true},
		{EmployeeCode: "EMP-0004-CREW", Name: "Tom Kowalski", Email: "tom.kowalski@ecosort.example", PasswordHash: "x", ZoneID: zone.ID, Approved: true, Active: false},
	}
	for i := range crew {
		require.NoError(t, db.Create(&crew[i]).Error)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return notificationTestEnv{
		db:      db,
		service: service,
		sender:  sender,
		crew:    crew,
	}
}

func TestNotificationService_Send_UnknownRecipient(t *testing.T) {
	env := setupNotificationTestEnv(t)

	_, err := env.service.Send(SendInput{
		Title:       "Schedule change",
		Message:     "Friday pickup moved to 07:00",
		RecipientID: 99999,
	})
	require.ErrorIs(t, err, ErrRecipientNotFound)
}

func TestNotificationService_Broadcast_FansOutToActiveEmployees(t *testing.T) {
	env := setupNotificationTestEnv(t)

	created, err := env.service.Send(SendInput{
		Title:     "Depot closed Monday",
		Message:   "Public holiday, no collections",
		SenderID:  &env.sender.ID,
		Broadcast: true,
	})
	require.NoError(t, err)
	// Sender plus two active crew members; the deactivated one is skipped.
	require.Equal(t, 3, created)

	var notifications []models.Notification
	require.NoError(t, env.db.Find(&notifications).Error)
	require.Len(t, notifications, 3)

	broadcastID := notifications[0].BroadcastID
	require.NotEmpty(t, broadcastID)
	for _, n := range notifications {
		require.Equal(t, broadcastID, n.BroadcastID, "fan-out records share a broadcast id")
		require.NotEqual(t, env.crew[2].ID, n.RecipientID, "inactive employees are excluded")
	}
}

func TestNotificationService_MarkRead_Idempotent(t *testing.T) {
	env := setupNotificationTestEnv(t)
	recipient := env.crew[0]

	_, err := env.service.Send(SendInput{
		Title:       "Route updated",
		Message:     "Pier 4 added to your Wednesday route",
		RecipientID: recipient.ID,
	})
	require.NoError(t, err)

	var notification models.Notification
	require.NoError(t, env.db.Where("recipient_id = ?", recipient.ID).First(&notification).Error)

	require.NoError(t, env.service.MarkRead(notification.ID, recipient.ID))

	var read models.Notification
	require.NoError(t, env.db.First(&read, notification.ID).Error)
	require.True(t, read.Read)
	require.NotNil(t, read.ReadAt)
	firstReadAt := *read.ReadAt

	// Replaying the call must not move the read timestamp.
	require.NoError(t, env.service.MarkRead(notification.ID, recipient.ID))
	require.NoError(t, env.db.First(&read, notification.ID).Error)
	require.Equal(t, firstReadAt.Unix(), read.ReadAt.Unix())
}

func TestNotificationService_MarkRead_OtherRecipientForbidden(t *testing.T) {
	env := setupNotificationTestEnv(t)

	_, err := env.service.Send(SendInput{
		Title:       "Route updated",
		Message:     "Pier 4 added to your Wednesday route",
		RecipientID: env.crew[0].ID,
	})
	require.NoError(t, err)

	var notification models.Notification
	require.NoError(t, env.db.Where("recipient_id = ?", env.crew[0].ID).First(&notification).Error)

	err = env.service.MarkRead(notification.ID, env.crew[1].ID)
	require.ErrorIs(t, err, ErrNotificationForbidden)
}

func TestNotificationService_List_HidesExpired(t *testing.T) {
	env := setupNotificationTestEnv(t)
	recipient := env.crew[0]

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	for _, c := range []struct {
		title     string
		expiresAt *time.Time
	}{
		{"expired alert", &past},
		{"current alert", &future},
		{"evergreen", nil},
	} {
		_, err := env.service.Send(SendInput{
			Title:       c.title,
			Message:     "m",
			RecipientID: recipient.ID,
			ExpiresAt:   c.expiresAt,
		})
		require.NoError(t, err)
	}

	notifications, total, err := env.service.List(ListInput{
		RecipientID: recipient.ID,
		Page:        1,
		PageSize:    10,
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	for _, n := range notifications {
		require.NotEqual(t, "expired alert", n.Title)
	}

	_, total, err = env.service.List(ListInput{
		RecipientID:    recipient.ID,
		IncludeExpired: true,
		Page:           1,
		PageSize:       10,
	})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
}

func TestNotificationService_List_PriorityOrdering(t *testing.T) {
	env := setupNotificationTestEnv(t)
	recipient := env.crew[0]

	for _, priority := range []models.NotificationPriority{
		models.NotificationPriorityLow,
		models.NotificationPriorityCritical,
		models.NotificationPriorityMedium,
	} {
		_, err := env.service.Send(SendInput{
			Title:       string(priority),
			Message:     "m",
			RecipientID: recipient.ID,
			Priority:    priority,
		})
		require.NoError(t, err)
	}

	notifications, _, err := env.service.List(ListInput{
		RecipientID: recipient.ID,
		Page:        1,
		PageSize:    10,
	})
	require.NoError(t, err)
	require.Len(t, notifications, 3)
	require.Equal(t, models.NotificationPriorityCritical, notifications[0].Priority)
	require.Equal(t, models.NotificationPriorityLow, notifications[2].Priority)
}

func TestNotificationService_UnreadCountAndMarkAllRead(t *testing.T) {
	env := setupNotificationTestEnv(t)
	recipient := env.crew[0]

	for i := 0; i < 3; i++ {
		_, err := env.service.Send(SendInput{
			Title:       "Reminder",
			Message:     "m",
			RecipientID: recipient.ID,
		})
		require.NoError(t, err)
	}

	count, err := env.service.CountUnread(recipient.ID)
	require.NoError(t, err)
	require.Equal(t, int64(3), count)

	require.NoError(t, env.service.MarkAllRead(recipient.ID))

	count, err = env.service.CountUnread(recipient.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
}
