package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/ecosort/waste-management-api/internal/models"
	"github.com/ecosort/waste-management-api/internal/repository"
	"gorm.io/gorm"
)

// AnalyticsService produces read-only rollups over completed tasks.
// Rollups are recomputed on demand; nothing is materialized.
type AnalyticsService struct {
	taskRepo repository.TaskRepository
	zoneRepo repository.ZoneRepository
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(taskRepo repository.TaskRepository, zoneRepo repository.ZoneRepository) *AnalyticsService {
	return &AnalyticsService{
		taskRepo: taskRepo,
		zoneRepo: zoneRepo,
	}
}

// DayBucket is one weekday's share of a weekly rollup
type DayBucket struct {
	Day    string `json:"day"`
	Amount int    `json:"amount"`
	Count  int    `json:"count"`
}

// weekdayLabels in bucket order, Monday first
var weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeeklyWasteByZone sums the points proxy of tasks completed in the
// zone per day of week. Always returns seven buckets, Monday through
// Sunday, zero-filled for days with no completions.
func (s *AnalyticsService) WeeklyWasteByZone(zoneID uint64, weekStart time.Time) ([]DayBucket, error) {
	if _, err := s.zoneRepo.FindByID(zoneID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, fmt.Errorf("failed to resolve zone: %w", err)
	}

	from := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, weekStart.Location())
	to := from.AddDate(0, 0, 7)

	tasks, err := s.taskRepo.ListCompletedInRange(zoneID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load completed tasks: %w", err)
	}

	buckets := make([]DayBucket, 7)
	for i := range buckets {
		buckets[i] = DayBucket{Day: weekdayLabels[i]}
	}

	for _, t := range tasks {
		if t.CompletedAt == nil {
			continue
		}
		// time.Weekday counts Sunday as 0; buckets are Monday-first.
		idx := (int(t.CompletedAt.Weekday()) + 6) % 7
		buckets[idx].Amount += t.Points
		buckets[idx].Count++
	}

	return buckets, nil
}

// CategoryShare is one waste category's slice of a period rollup
type CategoryShare struct {
	Category   string  `json:"category"`
	Amount     int     `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// CategoryBreakdown groups tasks completed in [from, to) by their
// primary waste-type tag. Percentages are computed against the period
// total; an empty period yields all-zero percentages rather than a
// division error.
func (s *AnalyticsService) CategoryBreakdown(zoneID uint64, from, to time.Time) ([]CategoryShare, error) {
	if _, err := s.zoneRepo.FindByID(zoneID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, fmt.Errorf("failed to resolve zone: %w", err)
	}

	tasks, err := s.taskRepo.ListCompletedInRange(zoneID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load completed tasks: %w", err)
	}

	amounts := make(map[string]int)
	order := make([]string, 0)
	total := 0
	for _, t := range tasks {
		category := primaryTag(t)
		if _, seen := amounts[category]; !seen {
			order = append(order, category)
		}
		amounts[category] += t.Points
		total += t.Points
	}

	shares := make([]CategoryShare, 0, len(order))
	for _, category := range order {
		share := CategoryShare{
			Category: category,
			Amount:   amounts[category],
		}
		if total > 0 {
			share.Percentage = float64(amounts[category]) / float64(total) * 100
		}
		shares = append(shares, share)
	}

	return shares, nil
}

func primaryTag(t models.Task) string {
	if len(t.Tags) > 0 && t.Tags[0] != "" {
		return t.Tags[0]
	}
	return "uncategorized"
}
