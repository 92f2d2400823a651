package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/khapung280/RENTNEST-sub000/internal/middleware"
	"github.com/khapung280/RENTNEST-sub000/internal/model"
	"github.com/khapung280/RENTNEST-sub000/internal/service"
)

// PropertyHandler handles property HTTP requests
type PropertyHandler struct {
	propertyService *service.PropertyService
	searchService   *service.SearchService
	similarLimit    int
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(propertyService *service.PropertyService, searchService *service.SearchService, similarLimit int) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
		searchService:   searchService,
		similarLimit:    similarLimit,
	}
}

// List handles GET /api/v1/properties
func (h *PropertyHandler) List(c *gin.Context) {
	filters := &model.SearchFilters{}
	if v := c.Query("location"); v != "" {
		filters.Location = &v
	}
	if v := c.Query("type"); v != "" {
		filters.Type = &v
	}
	if v := c.Query("max_price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MaxPrice = &price
		}
	}
	if v := c.Query("min_price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MinPrice = &price
		}
	}
	if v := c.Query("bedrooms"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filters.Bedrooms = &n
		}
	}

	response, err := h.searchService.Search(c.Request.Context(), &model.SearchRequest{Filters: filters})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/v1/properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	property, err := h.propertyService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}

// Similar handles GET /api/v1/properties/:id/similar
func (h *PropertyHandler) Similar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	properties, err := h.propertyService.Similar(c.Request.Context(), id, h.similarLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": properties})
}

// Create handles POST /api/v1/owner/properties
func (h *PropertyHandler) Create(c *gin.Context) {
	var req model.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	property, err := h.propertyService.Create(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, property)
}

// Update handles PUT /api/v1/owner/properties/:id
func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req model.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	property, err := h.propertyService.Update(c.Request.Context(), middleware.UserID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}

// ListOwn handles GET /api/v1/owner/properties
func (h *PropertyHandler) ListOwn(c *gin.Context) {
	properties, err := h.propertyService.ListByOwner(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": properties})
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}
