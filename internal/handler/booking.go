package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khapung280/RENTNEST-sub000/internal/middleware"
	"github.com/khapung280/RENTNEST-sub000/internal/model"
	"github.com/khapung280/RENTNEST-sub000/internal/service"
)

// BookingHandler handles booking HTTP requests
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// Create handles POST /api/v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// ListOwn handles GET /api/v1/bookings
func (h *BookingHandler) ListOwn(c *gin.Context) {
	bookings, err := h.bookingService.ListForRenter(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": bookings})
}

// ListForOwner handles GET /api/v1/owner/bookings
func (h *BookingHandler) ListForOwner(c *gin.Context) {
	bookings, err := h.bookingService.ListForOwner(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": bookings})
}

// UpdateStatus handles PATCH /api/v1/owner/bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req model.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), middleware.UserID(c), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// Availability handles GET /api/v1/properties/:id/availability
func (h *BookingHandler) Availability(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	checkIn := c.Query("check_in")
	checkOut := c.Query("check_out")
	if checkIn == "" || checkOut == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_in and check_out query parameters are required"})
		return
	}

	available, err := h.bookingService.IsAvailable(c.Request.Context(), id, checkIn, checkOut)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": available})
}
