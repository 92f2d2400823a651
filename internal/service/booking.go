package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/khapung280/RENTNEST-sub000/internal/model"
)

const bookingDateLayout = "2006-01-02"

// BookingService enforces the booking invariants: valid date range, live
// property, no self-booking and no overlapping reservation. The overlap check
// and write are serialized per property by the store.
type BookingService struct {
	bookings BookingStore
	props    PropertyStore
	logger   *zap.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(bookings BookingStore, props PropertyStore, logger *zap.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		props:    props,
		logger:   logger,
	}
}

// Create validates and creates a pending booking over [checkIn, checkOut)
func (s *BookingService) Create(ctx context.Context, renterID int64, req *model.CreateBookingRequest) (*model.Booking, error) {
	checkIn, err := time.Parse(bookingDateLayout, req.CheckInDate)
	if err != nil {
		return nil, model.ErrInvalidDate
	}
	checkOut, err := time.Parse(bookingDateLayout, req.CheckOutDate)
	if err != nil {
		return nil, model.ErrInvalidDate
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if checkIn.Before(today) {
		return nil, model.ErrCheckInPast
	}
	if !checkOut.After(checkIn) {
		return nil, model.ErrCheckOutNotAfter
	}

	property, err := s.props.GetByID(ctx, req.Property)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, model.ErrPropertyNotFound
	}
	if property.Status != model.PropertyStatusApproved || !property.IsActive {
		return nil, model.ErrPropertyNotLive
	}
	if property.OwnerID == renterID {
		return nil, model.ErrOwnSelfBooking
	}

	months := stayMonths(checkIn, checkOut)
	flex := FairFlexFor(property, discountTier(months))
	rate := property.Price
	if flex.Eligible {
		rate = flex.DiscountedPrice
	}

	booking := &model.Booking{
		PropertyID:     property.ID,
		RenterID:       renterID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		DurationMonths: months,
		MonthlyRate:    property.Price,
		DiscountedRate: rate,
		Status:         model.BookingStatusPending,
	}

	if err := s.bookings.CreateIfAvailable(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("property_id", property.ID),
		zap.Int64("renter_id", renterID))
	return booking, nil
}

// UpdateStatus applies an owner-initiated status transition. Confirming
// re-validates the overlap against other non-cancelled bookings.
func (s *BookingService) UpdateStatus(ctx context.Context, ownerID, bookingID int64, status string) (*model.Booking, error) {
	status = model.NormalizeBookingStatus(status)
	if status != model.BookingStatusConfirmed && status != model.BookingStatusCancelled {
		return nil, model.ErrInvalidStatus
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, model.ErrBookingNotFound
	}

	property, err := s.props.GetByID(ctx, booking.PropertyID)
	if err != nil {
		return nil, err
	}
	if property == nil || property.OwnerID != ownerID {
		return nil, model.ErrNotPropertyOwner
	}

	if !model.CanTransitionBookingStatus(booking.Status, status) {
		return nil, model.ErrInvalidTransition
	}

	if status == model.BookingStatusConfirmed {
		err = s.bookings.ConfirmIfAvailable(ctx, bookingID)
	} else {
		err = s.bookings.UpdateStatus(ctx, bookingID, status)
	}
	if err != nil {
		return nil, err
	}

	booking.Status = status
	return booking, nil
}

// IsAvailable reports whether the property is free over [checkIn, checkOut)
func (s *BookingService) IsAvailable(ctx context.Context, propertyID int64, checkInDate, checkOutDate string) (bool, error) {
	checkIn, err := time.Parse(bookingDateLayout, checkInDate)
	if err != nil {
		return false, model.ErrInvalidDate
	}
	checkOut, err := time.Parse(bookingDateLayout, checkOutDate)
	if err != nil {
		return false, model.ErrInvalidDate
	}
	if !checkOut.After(checkIn) {
		return false, model.ErrCheckOutNotAfter
	}

	property, err := s.props.GetByID(ctx, propertyID)
	if err != nil {
		return false, err
	}
	if property == nil {
		return false, model.ErrPropertyNotFound
	}
	if property.Status != model.PropertyStatusApproved || !property.IsActive {
		return false, model.ErrPropertyNotLive
	}

	overlap, err := s.bookings.HasOverlap(ctx, propertyID, checkIn, checkOut, 0)
	if err != nil {
		return false, err
	}
	return !overlap, nil
}

// ListForRenter returns the renter's own bookings
func (s *BookingService) ListForRenter(ctx context.Context, renterID int64) ([]model.Booking, error) {
	return s.bookings.ListByRenter(ctx, renterID)
}

// ListForOwner returns bookings made against the owner's properties
func (s *BookingService) ListForOwner(ctx context.Context, ownerID int64) ([]model.Booking, error) {
	return s.bookings.ListByOwner(ctx, ownerID)
}

// ExpireStalePending cancels pending bookings whose check-in date has passed.
// The cutoff is the start of the current day so a same-day check-in, which
// Create still accepts, is not expired.
func (s *BookingService) ExpireStalePending(ctx context.Context) (int64, error) {
	n, err := s.bookings.CancelExpiredPending(ctx, time.Now().UTC().Truncate(24*time.Hour))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("expired stale pending bookings", zap.Int64("count", n))
	}
	return n, nil
}

// stayMonths approximates the stay length in whole months, minimum one
func stayMonths(checkIn, checkOut time.Time) int {
	days := int(checkOut.Sub(checkIn).Hours() / 24)
	months := days / 30
	if months < 1 {
		months = 1
	}
	return months
}

// discountTier snaps a stay length to the largest FairFlex tier it reaches
func discountTier(months int) int {
	switch {
	case months >= 12:
		return 12
	case months >= 6:
		return 6
	case months >= 3:
		return 3
	default:
		return 1
	}
}
