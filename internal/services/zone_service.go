package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ecosort/waste-management-api/internal/models"
	"github.com/ecosort/waste-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidZoneName       = errors.New("zone name cannot be empty")
	ErrInvalidCollectionDay  = errors.New("collection days must be weekdays")
	ErrRouteWithoutWaypoints = errors.New("a route must contain at least one waypoint")
	ErrInvalidWaypointType   = errors.New("invalid waypoint type")
)

// ZoneService provides business logic for zone operations.
type ZoneService struct {
	zoneRepo repository.ZoneRepository
}

// NewZoneService creates a new ZoneService.
func NewZoneService(zoneRepo repository.ZoneRepository) *ZoneService {
	return &ZoneService{
		zoneRepo: zoneRepo,
	}
}

// RouteInput describes one route with its ordered waypoints
type RouteInput struct {
	Name      string
	Waypoints []WaypointInput
}

// WaypointInput describes a single stop on a route
type WaypointInput struct {
	Name string
	Type models.WaypointType
}

// CreateZoneInput represents parameters to create a new zone
type CreateZoneInput struct {
	Name           string
	Description    string
	AreaSize       float64
	Population     int
	CollectionDays []string
	CollectionFrom string
	CollectionTo   string
	ManagerName    string
	Latitude       *float64
	Longitude      *float64
	Routes         []RouteInput
}

// CreateZone creates a new zone with validated schedule and routes.
func (s *ZoneService) CreateZone(input CreateZoneInput) (*models.Zone, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidZoneName
	}
	days, err := normalizeCollectionDays(input.CollectionDays)
	if err != nil {
		return nil, err
	}
	routes, err := buildRoutes(input.Routes)
	if err != nil {
		return nil, err
	}

	zone := &models.Zone{
		Name:           strings.TrimSpace(input.Name),
		Description:    input.Description,
		AreaSize:       input.AreaSize,
		Population:     input.Population,
		CollectionDays: days,
		CollectionFrom: input.CollectionFrom,
		CollectionTo:   input.CollectionTo,
		ManagerName:    input.ManagerName,
		Latitude:       input.Latitude,
		Longitude:      input.Longitude,
		Active:         true,
		Routes:         routes,
	}

	if err := s.zoneRepo.Create(zone); err != nil {
		return nil, fmt.Errorf("failed to create zone: %w", err)
	}

	return zone, nil
}

// GetZone returns a zone with its routes and waypoints
func (s *ZoneService) GetZone(zoneID uint64) (*models.Zone, error) {
	zone, err := s.zoneRepo.FindByID(zoneID, "Routes", "Routes.Waypoints")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, fmt.Errorf("failed to find zone: %w", err)
	}
	return zone, nil
}

// ListZones returns zones, optionally restricted to active ones
func (s *ZoneService) ListZones(activeOnly bool) ([]models.Zone, error) {
	zones, err := s.zoneRepo.List(activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}
	return zones, nil
}

// UpdateZoneInput holds the mutable zone fields. Nil pointers leave
// the current value untouched; a non-nil Routes slice replaces the
// route set wholesale.
type UpdateZoneInput struct {
	Description    *string
	AreaSize       *float64
	Population     *int
	CollectionDays []string
	CollectionFrom *string
	CollectionTo   *string
	ManagerName    *string
	Latitude       *float64
	Longitude      *float64
	Active         *bool
	Routes         []RouteInput
}

// UpdateZone updates an existing zone
func (s *ZoneService) UpdateZone(zoneID uint64, input UpdateZoneInput) (*models.Zone, error) {
	zone, err := s.zoneRepo.FindByID(zoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, fmt.Errorf("failed to find zone: %w", err)
	}

	if input.Description != nil {
		zone.Description = *input.Description
	}
	if input.AreaSize != nil {
		zone.AreaSize = *input.AreaSize
	}
	if input.Population != nil {
		zone.Population = *input.Population
	}
	if input.CollectionDays != nil {
		days, err := normalizeCollectionDays(input.CollectionDays)
		if err != nil {
			return nil, err
		}
		zone.CollectionDays = days
	}
	if input.CollectionFrom != nil {
		zone.CollectionFrom = *input.CollectionFrom
	}
	if input.CollectionTo != nil {
		zone.CollectionTo = *input.CollectionTo
	}
	if input.ManagerName != nil {
		zone.ManagerName = *input.ManagerName
	}
	if input.Latitude != nil {
		zone.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		zone.Longitude = input.Longitude
	}
	if input.Active != nil {
		zone.Active = *input.Active
	}
	if input.Routes != nil {
		routes, err := buildRoutes(input.Routes)
		if err != nil {
			return nil, err
		}
		zone.Routes = routes
	}

	if err := s.zoneRepo.Update(zone); err != nil {
		return nil, fmt.Errorf("failed to update zone: %w", err)
	}

	return zone, nil
}

func normalizeCollectionDays(days []string) ([]string, error) {
	valid := make(map[string]bool, len(models.ValidCollectionDays))
	for _, d := range models.ValidCollectionDays {
		valid[d] = true
	}

	seen := make(map[string]bool, len(days))
	result := make([]string, 0, len(days))
	for _, d := range days {
		d = strings.ToLower(strings.TrimSpace(d))
		if !valid[d] {
			return nil, ErrInvalidCollectionDay
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		result = append(result, d)
	}
	return result, nil
}

func buildRoutes(inputs []RouteInput) ([]models.Route, error) {
	routes := make([]models.Route, 0, len(inputs))
	for i, r := range inputs {
		if len(r.Waypoints) == 0 {
			return nil, ErrRouteWithoutWaypoints
		}
		route := models.Route{
			Name:     r.Name,
			Position: i,
		}
		for j, w := range r.Waypoints {
			switch w.Type {
			case models.WaypointCollectionPoint, models.WaypointLandmark, models.WaypointCheckpoint:
			default:
				return nil, ErrInvalidWaypointType
			}
			route.Waypoints = append(route.Waypoints, models.Waypoint{
				Name:     w.Name,
				Type:     w.Type,
				Position: j,
			})
		}
		routes = append(routes, route)
	}
	return routes, nil
}
