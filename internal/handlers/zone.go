package handlers

import (
	"errors"
	"net/http"

	"github.com/ecosort/waste-management-api/internal/dto"
	apierrors "github.com/ecosort/waste-management-api/internal/errors"
	"github.com/ecosort/waste-management-api/internal/models"
	"github.com/ecosort/waste-management-api/internal/services"
	"github.com/gin-gonic/gin"
)

// ZoneHandler coordinates zone HTTP handlers.
type ZoneHandler struct {
	zoneService *services.ZoneService
}

// NewZoneHandler creates a new ZoneHandler
func NewZoneHandler(zoneService *services.ZoneService) *ZoneHandler {
	return &ZoneHandler{
		zoneService: zoneService,
	}
}

type routeRequest struct {
	Name      string `json:"name" binding:"required"`
	Waypoints []struct {
		Name string `json:"name" binding:"required"`
		Type string `json:"type" binding:"required"`
	} `json:"waypoints" binding:"required,min=1"`
}

func toRouteInputs(routes []routeRequest) []services.RouteInput {
	inputs := make([]services.RouteInput, len(routes))
	for i, r := range routes {
		input := services.RouteInput{Name: r.Name}
		for _, w := range r.Waypoints {
			input.Waypoints = append(input.Waypoints, services.WaypointInput{
				Name: w.Name,
				Type: models.WaypointType(w.Type),
			})
		}
		inputs[i] = input
	}
	return inputs
}

// CreateZone creates a new collection zone. Manager only.
func (h *ZoneHandler) CreateZone(c *gin.Context) {
	type CreateZoneRequest struct {
		Name           string         `json:"name" binding:"required"`
		Description    string         `json:"description"`
		AreaSize       float64        `json:"area_size"`
		Population     int            `json:"population"`
		CollectionDays []string       `json:"collection_days"`
		CollectionFrom string         `json:"collection_from"`
		CollectionTo   string         `json:"collection_to"`
		ManagerName    string         `json:"manager_name"`
		Latitude       *float64       `json:"latitude"`
		Longitude      *float64       `json:"longitude"`
		Routes         []routeRequest `json:"routes"`
	}

	var req CreateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	zone, err := h.zoneService.CreateZone(services.CreateZoneInput{
		Name:           req.Name,
		Description:    req.Description,
		AreaSize:       req.AreaSize,
		Population:     req.Population,
		CollectionDays: req.CollectionDays,
		CollectionFrom: req.CollectionFrom,
		CollectionTo:   req.CollectionTo,
		ManagerName:    req.ManagerName,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Routes:         toRouteInputs(req.Routes),
	})
	if err != nil {
		respondZoneError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToZoneDTO(*zone))
}

// ListZones lists zones; pass active=true to restrict to active ones
func (h *ZoneHandler) ListZones(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	zones, err := h.zoneService.ListZones(activeOnly)
	if err != nil {
		respondZoneError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"zones": dto.ToZoneDTOs(zones),
	})
}

// GetZone returns a zone with its routes and waypoints
func (h *ZoneHandler) GetZone(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid zone ID")
		return
	}

	zone, err := h.zoneService.GetZone(id)
	if err != nil {
		respondZoneError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToZoneDTO(*zone))
}

// UpdateZone updates a zone. Manager only.
func (h *ZoneHandler) UpdateZone(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid zone ID")
		return
	}

	type UpdateZoneRequest struct {
		Description    *string        `json:"description"`
		AreaSize       *float64       `json:"area_size"`
		Population     *int           `json:"population"`
		CollectionDays []string       `json:"collection_days"`
		CollectionFrom *string        `json:"collection_from"`
		CollectionTo   *string        `json:"collection_to"`
		ManagerName    *string        `json:"manager_name"`
		Latitude       *float64       `json:"latitude"`
		Longitude      *float64       `json:"longitude"`
		Active         *bool          `json:"active"`
		Routes         []routeRequest `json:"routes"`
	}

	var req UpdateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateZoneInput{
		Description:    req.Description,
		AreaSize:       req.AreaSize,
		Population:     req.Population,
		CollectionDays: req.CollectionDays,
		CollectionFrom: req.CollectionFrom,
		CollectionTo:   req.CollectionTo,
		ManagerName:    req.ManagerName,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Active:         req.Active,
	}
	if req.Routes != nil {
		input.Routes = toRouteInputs(req.Routes)
	}

	zone, err := h.zoneService.UpdateZone(id, input)
	if err != nil {
		respondZoneError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToZoneDTO(*zone))
}

func respondZoneError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrZoneNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidZoneName),
		errors.Is(err, services.ErrInvalidCollectionDay),
		errors.Is(err, services.ErrRouteWithoutWaypoints),
		errors.Is(err, services.ErrInvalidWaypointType):
		apierrors.Validation(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
