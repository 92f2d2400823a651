package model

import "time"

// Booking status values. A booking starts pending; the owner moves it to
// confirmed or cancelled. Cancelled is terminal.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking represents a reservation over a half-open [check_in, check_out) interval
type Booking struct {
	ID              int64     `json:"id" db:"id"`
	PropertyID      int64     `json:"property_id" db:"property_id"`
	RenterID        int64     `json:"renter_id" db:"renter_id"`
	CheckIn         time.Time `json:"check_in" db:"check_in"`
	CheckOut        time.Time `json:"check_out" db:"check_out"`
	DurationMonths  int       `json:"duration_months" db:"duration_months"`
	MonthlyRate     float64   `json:"monthly_rate" db:"monthly_rate"`
	DiscountedRate  float64   `json:"discounted_rate" db:"discounted_rate"`
	Status          string    `json:"status" db:"status"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// CreateBookingRequest is the renter-facing booking creation payload.
// Dates use the YYYY-MM-DD wire format.
type CreateBookingRequest struct {
	Property     int64  `json:"property" binding:"required"`
	CheckInDate  string `json:"checkInDate" binding:"required"`
	CheckOutDate string `json:"checkOutDate" binding:"required"`
}

// UpdateBookingStatusRequest is the owner-facing status transition payload.
// Legacy aliases "approved" and "rejected" are accepted at the boundary.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CanTransitionBookingStatus reports whether a booking status transition is legal
func CanTransitionBookingStatus(from, to string) bool {
	switch from {
	case BookingStatusPending:
		return to == BookingStatusConfirmed || to == BookingStatusCancelled
	case BookingStatusConfirmed:
		return to == BookingStatusCancelled
	default:
		return false
	}
}

// NormalizeBookingStatus maps legacy status aliases to their canonical values
func NormalizeBookingStatus(status string) string {
	switch status {
	case "approved":
		return BookingStatusConfirmed
	case "rejected":
		return BookingStatusCancelled
	default:
		return status
	}
}
