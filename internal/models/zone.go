package models

import (
	"time"

	"gorm.io/gorm"
)

type WaypointType string

const (
	WaypointCollectionPoint WaypointType = "collection_point"
	WaypointLandmark        WaypointType = "landmark"
	WaypointCheckpoint      WaypointType = "checkpoint"
)

// Weekdays allowed in a zone's collection schedule.
var ValidCollectionDays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

type Zone struct {
	ID             uint64   `gorm:"primarykey" json:"id"`
	Name           string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description    string   `gorm:"type:text" json:"description"`
	AreaSize       float64  `json:"area_size"`
	Population     int      `json:"population"`
	CollectionDays []string `gorm:"serializer:json" json:"collection_days"`
	CollectionFrom string   `gorm:"type:varchar(5)" json:"collection_from"`
	CollectionTo   string   `gorm:"type:varchar(5)" json:"collection_to"`
	ManagerName    string   `gorm:"type:varchar(255)" json:"manager_name"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	Active         bool     `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Routes    []Route    `gorm:"foreignKey:ZoneID" json:"routes,omitempty"`
	Employees []Employee `gorm:"foreignKey:ZoneID" json:"employees,omitempty"`
}

type Route struct {
	ID       uint64 `gorm:"primarykey" json:"id"`
	ZoneID   uint64 `gorm:"not null;index" json:"zone_id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Position int    `gorm:"not null" json:"position"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Waypoints []Waypoint `gorm:"foreignKey:RouteID" json:"waypoints,omitempty"`
}

type Waypoint struct {
	ID       uint64       `gorm:"primarykey" json:"id"`
	RouteID  uint64       `gorm:"not null;index" json:"route_id"`
	Name     string       `gorm:"type:varchar(255);not null" json:"name"`
	Type     WaypointType `gorm:"type:varchar(30);not null" json:"type"`
	Position int          `gorm:"not null" json:"position"`

	CreatedAt time.Time `json:"created_at"`
}
