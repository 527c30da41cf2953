package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/northeast-trails/service-trip/internal/application"
	"github.com/northeast-trails/service-trip/internal/domain/catalog"
	"github.com/northeast-trails/service-trip/internal/response"
)

// CatalogHandler handles HTTP requests for the place catalog and hub
// directory.
type CatalogHandler struct {
	service *application.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *application.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes registers catalog routes on the given router group.
func (h *CatalogHandler) RegisterRoutes(r *gin.RouterGroup) {
	places := r.Group("/api/v1/places")
	{
		places.GET("", h.ListPlaces)
		places.GET("/:id", h.GetPlace)
	}
	r.GET("/api/v1/hubs", h.ListHubs)
}

// ListPlaces handles GET /api/v1/places.
func (h *CatalogHandler) ListPlaces(c *gin.Context) {
	page, limit := parsePagination(c)
	filter := catalog.PlaceFilter{
		State:    c.Query("state"),
		Category: c.Query("category"),
	}

	result, err := h.service.ListPlaces(c.Request.Context(), filter, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetPlace handles GET /api/v1/places/:id.
func (h *CatalogHandler) GetPlace(c *gin.Context) {
	result, err := h.service.GetPlace(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListHubs handles GET /api/v1/hubs.
func (h *CatalogHandler) ListHubs(c *gin.Context) {
	result, err := h.service.ListHubs(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// parsePagination extracts page and limit query parameters with defaults.
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
