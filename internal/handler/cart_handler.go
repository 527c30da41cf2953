package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/northeast-trails/service-trip/internal/application"
	"github.com/northeast-trails/service-trip/internal/middleware"
	"github.com/northeast-trails/service-trip/internal/response"
)

// CartHandler handles HTTP requests for trip cart operations.
type CartHandler struct {
	service *application.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *application.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes registers all cart routes on the given router group.
func (h *CartHandler) RegisterRoutes(r *gin.RouterGroup) {
	cartGroup := r.Group("/api/v1/cart")
	{
		cartGroup.GET("", h.GetCart)
		cartGroup.POST("/places", h.AddPlace)
		cartGroup.DELETE("/places/:id", h.RemovePlace)
		cartGroup.POST("/clear", h.ClearCart)
		cartGroup.POST("/hub", h.SelectHub)
		cartGroup.POST("/sidebar/toggle", h.ToggleSidebar)
		cartGroup.GET("/itinerary", h.Itinerary)
	}
}

// GetCart handles GET /api/v1/cart.
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session"})
		return
	}

	result, err := h.service.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// AddPlace handles POST /api/v1/cart/places.
func (h *CartHandler) AddPlace(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session"})
		return
	}

	var req struct {
		PlaceID string `json:"place_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddPlace(c.Request.Context(), sessionID, req.PlaceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// RemovePlace handles DELETE /api/v1/cart/places/:id.
func (h *CartHandler) RemovePlace(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session"})
		return
	}

	result, err := h.service.RemovePlace(c.Request.Context(), sessionID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ClearCart handles POST /api/v1/cart/clear.
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session"})
		return
	}

	result, err := h.service.Clear(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SelectHub handles POST /api/v1/cart/hub.
func (h *CartHandler) SelectHub(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session"})
		return
	}

	var req struct {
		Hub string `json:"hub"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SelectHub(c.Request.Context(), sessionID, req.Hub)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ToggleSidebar handles POST /api/v1/cart/sidebar/toggle.
func (h *CartHandler) ToggleSidebar(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session"})
		return
	}

	result, err := h.service.ToggleSidebar(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Itinerary handles GET /api/v1/cart/itinerary.
func (h *CartHandler) Itinerary(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session"})
		return
	}

	result, err := h.service.Itinerary(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
