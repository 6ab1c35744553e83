package dto

import (
	"time"

	"github.com/ecosort/waste-management-api/internal/models"
)

// ZoneDTO represents a zone in API responses
type ZoneDTO struct {
	ID             uint64     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	AreaSize       float64    `json:"area_size"`
	Population     int        `json:"population"`
	CollectionDays []string   `json:"collection_days"`
	CollectionFrom string     `json:"collection_from"`
	CollectionTo   string     `json:"collection_to"`
	ManagerName    string     `json:"manager_name"`
	Latitude       *float64   `json:"latitude,omitempty"`
	Longitude      *float64   `json:"longitude,omitempty"`
	Active         bool       `json:"active"`
	Routes         []RouteDTO `json:"routes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// RouteDTO represents a route in API responses
type RouteDTO struct {
	ID        uint64        `json:"id"`
	Name      string        `json:"name"`
	Waypoints []WaypointDTO `json:"waypoints"`
}

// WaypointDTO represents a waypoint in API responses
type WaypointDTO struct {
	ID   uint64              `json:"id"`
	Name string              `json:"name"`
	Type models.WaypointType `json:"type"`
}

// ToZoneDTO converts a Zone model to ZoneDTO
func ToZoneDTO(zone models.Zone) ZoneDTO {
	dto := ZoneDTO{
		ID:             zone.ID,
		Name:           zone.Name,
		Description:    zone.Description,
		AreaSize:       zone.AreaSize,
		Population:     zone.Population,
		CollectionDays: zone.CollectionDays,
		CollectionFrom: zone.CollectionFrom,
		CollectionTo:   zone.CollectionTo,
		ManagerName:    zone.ManagerName,
		Latitude:       zone.Latitude,
		Longitude:      zone.Longitude,
		Active:         zone.Active,
		CreatedAt:      zone.CreatedAt,
		UpdatedAt:      zone.UpdatedAt,
	}

	// Include routes if preloaded
	for _, route := range zone.Routes {
		routeDTO := RouteDTO{
			ID:   route.ID,
			Name: route.Name,
		}
		for _, wp := range route.Waypoints {
			routeDTO.Waypoints = append(routeDTO.Waypoints, WaypointDTO{
				ID:   wp.ID,
				Name: wp.Name,
				Type: wp.Type,
			})
		}
		dto.Routes = append(dto.Routes, routeDTO)
	}

	return dto
}

// ToZoneDTOs converts a slice of Zone models
func ToZoneDTOs(zones []models.Zone) []ZoneDTO {
	dtos := make([]ZoneDTO, len(zones))
	for i, zone := range zones {
		dtos[i] = ToZoneDTO(zone)
	}
	return dtos
}
