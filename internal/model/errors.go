package model

import "errors"

// Validation errors surfaced to users as distinct rejection reasons
var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrPropertyNotFound  = errors.New("property not found")
	ErrPropertyNotLive   = errors.New("property is not available for booking")
	ErrNotPropertyOwner  = errors.New("only the property owner may perform this action")
	ErrOwnSelfBooking    = errors.New("owners cannot book their own property")
	ErrInvalidDate       = errors.New("invalid date, expected YYYY-MM-DD")
	ErrCheckInPast       = errors.New("check-in date cannot be in the past")
	ErrCheckOutNotAfter  = errors.New("check-out date must be after check-in date")
	ErrBookingOverlap    = errors.New("property is already booked for the selected dates")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidTransition = errors.New("booking status transition is not allowed")
	ErrInvalidStatus     = errors.New("invalid booking status")
)
