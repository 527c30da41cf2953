package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/northeast-trails/service-trip/internal/application"
	"github.com/northeast-trails/service-trip/internal/domain/catalog"
	"github.com/northeast-trails/service-trip/internal/geoloc"
	"github.com/northeast-trails/service-trip/internal/middleware"
	"github.com/northeast-trails/service-trip/internal/response"
)

// MapHandler handles HTTP requests for the computed map view and
// geolocation reports.
type MapHandler struct {
	service *application.MapService
}

// NewMapHandler creates a new MapHandler.
func NewMapHandler(service *application.MapService) *MapHandler {
	return &MapHandler{service: service}
}

// RegisterRoutes registers map routes on the given router group.
func (h *MapHandler) RegisterRoutes(r *gin.RouterGroup) {
	mapGroup := r.Group("/api/v1/map")
	{
		mapGroup.GET("", h.GetView)
		mapGroup.POST("/location", h.ReportLocation)
		mapGroup.POST("/location/clear", h.ClearOrigin)
	}
}

// GetView handles GET /api/v1/map.
func (h *MapHandler) GetView(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session"})
		return
	}

	view, err := h.service.ComputeView(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// locationReport carries the outcome of the browser's geolocation
// request: coordinates on success, an error code otherwise.
type locationReport struct {
	Lat   *float64 `json:"lat"`
	Lng   *float64 `json:"lng"`
	Error string   `json:"error"`
}

// reportedProvider adapts a client-reported geolocation outcome to the
// geoloc.Provider contract.
type reportedProvider struct {
	report locationReport
}

func (p reportedProvider) Locate(ctx context.Context) (catalog.Coordinates, error) {
	if p.report.Error == "permission_denied" {
		return catalog.Coordinates{}, geoloc.ErrPermissionDenied
	}
	if p.report.Error != "" || p.report.Lat == nil || p.report.Lng == nil {
		return catalog.Coordinates{}, geoloc.ErrUnavailable
	}
	return catalog.Coordinates{Lat: *p.report.Lat, Lng: *p.report.Lng}, nil
}

// ReportLocation handles POST /api/v1/map/location.
func (h *MapHandler) ReportLocation(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session"})
		return
	}

	var report locationReport
	if err := c.ShouldBindJSON(&report); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	h.service.Locate(c.Request.Context(), sessionID, reportedProvider{report: report})

	view, err := h.service.ComputeView(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// ClearOrigin handles POST /api/v1/map/location/clear.
func (h *MapHandler) ClearOrigin(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session"})
		return
	}

	h.service.ClearOrigin(c.Request.Context(), sessionID)

	view, err := h.service.ComputeView(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}
