package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/khapung280/RENTNEST-sub000/internal/model"
)

// BookingRepository handles booking persistence
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `
	id, property_id, renter_id, check_in, check_out, duration_months,
	monthly_rate, discounted_rate, status, created_at, updated_at
`

// overlapQuery counts non-cancelled bookings intersecting the half-open
// [check_in, check_out) interval, optionally excluding one booking id.
const overlapQuery = `
	SELECT COUNT(*) FROM bookings
	WHERE property_id = $1
	  AND status <> 'cancelled'
	  AND check_in < $3
	  AND check_out > $2
	  AND ($4 = 0 OR id <> $4)
`

// CreateIfAvailable inserts a pending booking unless the interval overlaps an
// existing non-cancelled booking. The check and write run inside one
// transaction holding a per-property advisory lock, so two concurrent
// requests for the same property cannot both pass the check.
func (r *BookingRepository) CreateIfAvailable(ctx context.Context, b *model.Booking) error {
	return r.withPropertyLock(ctx, b.PropertyID, func(tx *sqlx.Tx) error {
		var overlaps int
		if err := tx.GetContext(ctx, &overlaps, overlapQuery, b.PropertyID, b.CheckIn, b.CheckOut, int64(0)); err != nil {
			return fmt.Errorf("failed to check booking overlap: %w", err)
		}
		if overlaps > 0 {
			return model.ErrBookingOverlap
		}

		insertQuery := `
			INSERT INTO bookings (
				property_id, renter_id, check_in, check_out, duration_months,
				monthly_rate, discounted_rate, status
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at, updated_at
		`
		err := tx.QueryRowxContext(ctx, insertQuery,
			b.PropertyID, b.RenterID, b.CheckIn, b.CheckOut, b.DurationMonths,
			b.MonthlyRate, b.DiscountedRate, b.Status,
		).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
}

// ConfirmIfAvailable transitions a booking to confirmed after re-validating
// the overlap against other non-cancelled bookings, under the property lock.
func (r *BookingRepository) ConfirmIfAvailable(ctx context.Context, id int64) error {
	booking, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if booking == nil {
		return model.ErrBookingNotFound
	}

	return r.withPropertyLock(ctx, booking.PropertyID, func(tx *sqlx.Tx) error {
		var overlaps int
		if err := tx.GetContext(ctx, &overlaps, overlapQuery, booking.PropertyID, booking.CheckIn, booking.CheckOut, id); err != nil {
			return fmt.Errorf("failed to check booking overlap: %w", err)
		}
		if overlaps > 0 {
			return model.ErrBookingOverlap
		}

		updateQuery := `UPDATE bookings SET status = 'confirmed', updated_at = NOW() WHERE id = $1 AND status = 'pending'`
		result, err := tx.ExecContext(ctx, updateQuery, id)
		if err != nil {
			return fmt.Errorf("failed to confirm booking: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to confirm booking: %w", err)
		}
		if affected == 0 {
			return model.ErrInvalidTransition
		}
		return nil
	})
}

// HasOverlap reports whether any non-cancelled booking intersects the interval
func (r *BookingRepository) HasOverlap(ctx context.Context, propertyID int64, checkIn, checkOut time.Time, excludeID int64) (bool, error) {
	var overlaps int
	if err := r.db.GetContext(ctx, &overlaps, overlapQuery, propertyID, checkIn, checkOut, excludeID); err != nil {
		return false, fmt.Errorf("failed to check booking overlap: %w", err)
	}
	return overlaps > 0, nil
}

// GetByID retrieves a single booking by its id
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	var booking model.Booking
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)
	err := r.db.GetContext(ctx, &booking, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

// ListByRenter returns the renter's bookings, newest first
func (r *BookingRepository) ListByRenter(ctx context.Context, renterID int64) ([]model.Booking, error) {
	var bookings []model.Booking
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE renter_id = $1 ORDER BY created_at DESC`, bookingColumns)
	if err := r.db.SelectContext(ctx, &bookings, query, renterID); err != nil {
		return nil, fmt.Errorf("failed to list bookings by renter: %w", err)
	}
	return bookings, nil
}

// ListByOwner returns bookings against the owner's properties, newest first
func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Booking, error) {
	var bookings []model.Booking
	query := fmt.Sprintf(`
		SELECT %s FROM bookings
		WHERE property_id IN (SELECT id FROM properties WHERE owner_id = $1)
		ORDER BY created_at DESC
	`, bookingColumns)
	if err := r.db.SelectContext(ctx, &bookings, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list bookings by owner: %w", err)
	}
	return bookings, nil
}

// UpdateStatus sets a booking's status. Cancelled rows are never rewritten,
// so a cancel racing a confirm cannot resurrect the booking.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2 AND status <> 'cancelled'`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if affected == 0 {
		return model.ErrInvalidTransition
	}
	return nil
}

// CancelExpiredPending cancels pending bookings whose check-in date has passed
func (r *BookingRepository) CancelExpiredPending(ctx context.Context, before time.Time) (int64, error) {
	query := `UPDATE bookings SET status = 'cancelled', updated_at = NOW() WHERE status = 'pending' AND check_in < $1`
	result, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel expired bookings: %w", err)
	}
	return result.RowsAffected()
}

// withPropertyLock runs fn in a transaction holding the per-property advisory
// lock, released automatically at commit or rollback.
func (r *BookingRepository) withPropertyLock(ctx context.Context, propertyID int64, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, propertyID); err != nil {
		return fmt.Errorf("failed to acquire property lock: %w", err)
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
