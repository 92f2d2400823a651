package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khapung280/RENTNEST-sub000/internal/model"
)

// respondError maps domain errors to HTTP statuses. Each validation failure
// keeps its distinct user-facing reason; everything else becomes a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrPropertyNotFound),
		errors.Is(err, model.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrEmailTaken),
		errors.Is(err, model.ErrBookingOverlap):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrNotPropertyOwner),
		errors.Is(err, model.ErrOwnSelfBooking):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrInvalidDate),
		errors.Is(err, model.ErrCheckInPast),
		errors.Is(err, model.ErrCheckOutNotAfter),
		errors.Is(err, model.ErrPropertyNotLive),
		errors.Is(err, model.ErrInvalidTransition),
		errors.Is(err, model.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
