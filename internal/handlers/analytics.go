package handlers

import (
	"errors"
	"net/http"
	"time"

	apierrors "github.com/ecosort/waste-management-api/internal/errors"
	"github.com/ecosort/waste-management-api/internal/services"
	"github.com/gin-gonic/gin"
)

// AnalyticsHandler coordinates analytics HTTP handlers.
type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// WeeklyWaste returns a Monday-first 7-day rollup for a zone.
// week_start defaults to the Monday of the current week.
func (h *AnalyticsHandler) WeeklyWaste(c *gin.Context) {
	zoneID, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid zone ID")
		return
	}

	weekStart := mondayOf(time.Now())
	if v := c.Query("week_start"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			apierrors.BadRequest(c, "Invalid week_start, expected YYYY-MM-DD")
			return
		}
		weekStart = parsed
	}

	buckets, err := h.analyticsService.WeeklyWasteByZone(zoneID, weekStart)
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"zone_id":    zoneID,
		"week_start": weekStart.Format("2006-01-02"),
		"days":       buckets,
	})
}

// CategoryBreakdown returns per-category completion shares for a zone.
// The window defaults to the last 30 days.
func (h *AnalyticsHandler) CategoryBreakdown(c *gin.Context) {
	zoneID, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid zone ID")
		return
	}

	to := time.Now()
	from := to.AddDate(0, 0, -30)
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			apierrors.BadRequest(c, "Invalid from, expected YYYY-MM-DD")
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			apierrors.BadRequest(c, "Invalid to, expected YYYY-MM-DD")
			return
		}
		to = parsed
	}
	if !from.Before(to) {
		apierrors.BadRequest(c, "from must be before to")
		return
	}

	shares, err := h.analyticsService.CategoryBreakdown(zoneID, from, to)
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"zone_id":    zoneID,
		"from":       from.Format("2006-01-02"),
		"to":         to.Format("2006-01-02"),
		"categories": shares,
	})
}

// mondayOf truncates t to the Monday of its week
func mondayOf(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func respondAnalyticsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrZoneNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
