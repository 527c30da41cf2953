package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/northeast-trails/service-trip/internal/application"
	"github.com/northeast-trails/service-trip/internal/response"
)

// AdminCatalogHandler handles admin HTTP requests for catalog oversight.
type AdminCatalogHandler struct {
	service *application.CatalogService
}

// NewAdminCatalogHandler creates a new AdminCatalogHandler.
func NewAdminCatalogHandler(service *application.CatalogService) *AdminCatalogHandler {
	return &AdminCatalogHandler{service: service}
}

// RegisterRoutes registers admin catalog routes.
func (h *AdminCatalogHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/api/v1/admin")
	{
		admin.GET("/stats/catalog", h.CatalogStats)
	}
}

// CatalogStats handles GET /api/v1/admin/stats/catalog.
func (h *AdminCatalogHandler) CatalogStats(c *gin.Context) {
	stats, err := h.service.GetCatalogStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
