package repository

import (
	"github.com/ecosort/waste-management-api/internal/models"
	"gorm.io/gorm"
)

// GormZoneRepository is a GORM implementation of ZoneRepository
type GormZoneRepository struct {
	db *gorm.DB
}

// NewZoneRepository creates a new ZoneRepository
func NewZoneRepository(db *gorm.DB) ZoneRepository {
	return &GormZoneRepository{db: db}
}

// Create creates a new zone with its routes and waypoints
func (r *GormZoneRepository) Create(zone *models.Zone) error {
	return r.db.Create(zone).Error
}

// FindByID finds a zone by ID with optional preloading
func (r *GormZoneRepository) FindByID(id uint64, preload ...string) (*models.Zone, error) {
	var zone models.Zone
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&zone, id).Error; err != nil {
		return nil, err
	}

	return &zone, nil
}

// List retrieves zones, optionally restricted to active ones
func (r *GormZoneRepository) List(activeOnly bool) ([]models.Zone, error) {
	var zones []models.Zone
	query := r.db.Order("name ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if err := query.Find(&zones).Error; err != nil {
		return nil, err
	}
	return zones, nil
}

// Update updates a zone. When routes are provided they replace the
// existing route set so orphaned waypoint rows do not accumulate.
func (r *GormZoneRepository) Update(zone *models.Zone) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if zone.Routes != nil {
			var routeIDs []uint64
			if err := tx.Model(&models.Route{}).
				Where("zone_id = ?", zone.ID).
				Pluck("id", &routeIDs).Error; err != nil {
				return err
			}
			if len(routeIDs) > 0 {
				if err := tx.Where("route_id IN ?", routeIDs).Delete(&models.Waypoint{}).Error; err != nil {
					return err
				}
				if err := tx.Where("zone_id = ?", zone.ID).Delete(&models.Route{}).Error; err != nil {
					return err
				}
			}
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(zone).Error
	})
}
