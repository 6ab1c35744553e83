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

type analyticsTestEnv struct {
	db      *gorm.DB
	service *AnalyticsService
	zone    models.Zone
	worker  models.Employee
}

func setupAnalyticsTestEnv(t *testing.T) analyticsTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Zone{},
		&models.Employee{},
		&models.Task{},
	)
	require.NoError(t, err)

	taskRepo := repository.NewTaskRepository(db)
	zoneRepo := repository.NewZoneRepository(db)
	service := NewAnalyticsService(taskRepo, zoneRepo)

	zone := models.Zone{Name: "Harbor District", Active: true}
	require.NoError(t, db.Create(&zone).Error)

	worker := models.Employee{
		EmployeeCode: "EMP-0002-CREW",
		Name:         "Marcus Webb",
		Email:        "marcus.webb@ecosort.example",
		PasswordHash: "x",
		ZoneID:       zone.ID,
		Approved:     true,
		Active:       true,
	}
	require.NoError(t, db.Create(&worker).Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return analyticsTestEnv{
		db:      db,
		service: service,
		zone:    zone,
		worker:  worker,
	}
}

func (env analyticsTestEnv) completedTask(t *testing.T, completedAt time.Time, points int, tags []string) {
	t.Helper()
	task := models.Task{
		Title:       "Collection run",
		AssignedTo:  env.worker.ID,
		ZoneID:      env.zone.ID,
		Status:      models.TaskStatusCompleted,
		Priority:    models.TaskPriorityMedium,
		Points:      points,
		CompletedAt: &completedAt,
		Tags:        tags,
		Active:      true,
	}
	require.NoError(t, env.db.Create(&task).Error)
}

func TestAnalyticsService_WeeklyWasteByZone(t *testing.T) {
	env := setupAnalyticsTestEnv(t)

	// 2026-08-24 is a Monday.
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	env.completedTask(t, monday.Add(9*time.Hour), 60, []string{"plastic"})
	env.completedTask(t, monday.Add(11*time.Hour), 20, []string{"glass"})
	env.completedTask(t, monday.AddDate(0, 0, 3).Add(8*time.Hour), 40, []string{"organic"})
	// Outside the window.
	env.completedTask(t, monday.AddDate(0, 0, 7).Add(time.Hour), 100, nil)

	buckets, err := env.service.WeeklyWasteByZone(env.zone.ID, monday)
	require.NoError(t, err)
	require.Len(t, buckets, 7)

	require.Equal(t, "Mon", buckets[0].Day)
	require.Equal(t, 80, buckets[0].Amount)
	require.Equal(t, 2, buckets[0].Count)

	require.Equal(t, "Thu", buckets[3].Day)
	require.Equal(t, 40, buckets[3].Amount)
	require.Equal(t, 1, buckets[3].Count)

	// Days without completions stay zero-filled.
	for _, i := range []int{1, 2, 4, 5, 6} {
		require.Zero(t, buckets[i].Amount, "day %s", buckets[i].Day)
		require.Zero(t, buckets[i].Count, "day %s", buckets[i].Day)
	}
}

func TestAnalyticsService_WeeklyWasteByZone_UnknownZone(t *testing.T) {
	env := setupAnalyticsTestEnv(t)

	_, err := env.service.WeeklyWasteByZone(99999, time.Now())
	require.ErrorIs(t, err, ErrZoneNotFound)
}

func TestAnalyticsService_CategoryBreakdown(t *testing.T) {
	env := setupAnalyticsTestEnv(t)

	day := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	env.completedTask(t, day, 60, []string{"plastic", "overflow"})
	env.completedTask(t, day.Add(time.Hour), 20, []string{"plastic"})
	env.completedTask(t, day.Add(2*time.Hour), 20, []string{"glass"})
	env.completedTask(t, day.Add(3*time.Hour), 0, nil)

	shares, err := env.service.CategoryBreakdown(env.zone.ID, day.AddDate(0, 0, -1), day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, shares, 3)

	byCategory := make(map[string]CategoryShare, len(shares))
	for _, s := range shares {
		byCategory[s.Category] = s
	}

	require.Equal(t, 80, byCategory["plastic"].Amount)
	require.InDelta(t, 80.0, byCategory["plastic"].Percentage, 0.01)
	require.Equal(t, 20, byCategory["glass"].Amount)
	require.InDelta(t, 20.0, byCategory["glass"].Percentage, 0.01)
	require.Contains(t, byCategory, "uncategorized")
}

func TestAnalyticsService_CategoryBreakdown_EmptyPeriod(t *testing.T) {
	env := setupAnalyticsTestEnv(t)

	shares, err := env.service.CategoryBreakdown(env.zone.ID,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Empty(t, shares)
}
