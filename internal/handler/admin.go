package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khapung280/RENTNEST-sub000/internal/service"
)

// AdminHandler handles listing moderation HTTP requests
type AdminHandler struct {
	propertyService *service.PropertyService
	pendingLimit    int
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(propertyService *service.PropertyService, pendingLimit int) *AdminHandler {
	return &AdminHandler{
		propertyService: propertyService,
		pendingLimit:    pendingLimit,
	}
}

// ListPending handles GET /api/v1/admin/properties/pending
func (h *AdminHandler) ListPending(c *gin.Context) {
	properties, err := h.propertyService.ListPending(c.Request.Context(), h.pendingLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": properties})
}

// Approve handles POST /api/v1/admin/properties/:id/approve
func (h *AdminHandler) Approve(c *gin.Context) {
	h.moderate(c, true)
}

// Reject handles POST /api/v1/admin/properties/:id/reject
func (h *AdminHandler) Reject(c *gin.Context) {
	h.moderate(c, false)
}

func (h *AdminHandler) moderate(c *gin.Context, approve bool) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.propertyService.Moderate(c.Request.Context(), id, approve); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SetVerified handles POST /api/v1/admin/properties/:id/verify
func (h *AdminHandler) SetVerified(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req struct {
		Verified bool `json:"verified"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.propertyService.SetVerified(c.Request.Context(), id, req.Verified); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
