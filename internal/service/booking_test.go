package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/khapung280/RENTNEST-sub000/internal/model"
)

// fakeBookingStore keeps bookings in memory and mirrors the half-open overlap
// semantics of the SQL implementation.
type fakeBookingStore struct {
	bookings []model.Booking
	nextID   int64
}

func (f *fakeBookingStore) overlaps(propertyID int64, checkIn, checkOut time.Time, excludeID int64) bool {
	for _, b := range f.bookings {
		if b.PropertyID != propertyID || b.Status == model.BookingStatusCancelled || b.ID == excludeID {
			continue
		}
		if b.CheckIn.Before(checkOut) && b.CheckOut.After(checkIn) {
			return true
		}
	}
	return false
}

func (f *fakeBookingStore) CreateIfAvailable(_ context.Context, b *model.Booking) error {
	if f.overlaps(b.PropertyID, b.CheckIn, b.CheckOut, 0) {
		return model.ErrBookingOverlap
	}
	f.nextID++
	b.ID = f.nextID
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeBookingStore) GetByID(_ context.Context, id int64) (*model.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingStore) ListByRenter(_ context.Context, renterID int64) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range f.bookings {
		if b.RenterID == renterID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) ListByOwner(context.Context, int64) ([]model.Booking, error) {
	return nil, nil
}

func (f *fakeBookingStore) HasOverlap(_ context.Context, propertyID int64, checkIn, checkOut time.Time, excludeID int64) (bool, error) {
	return f.overlaps(propertyID, checkIn, checkOut, excludeID), nil
}

func (f *fakeBookingStore) UpdateStatus(_ context.Context, id int64, status string) error {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			if f.bookings[i].Status == model.BookingStatusCancelled {
				return model.ErrInvalidTransition
			}
			f.bookings[i].Status = status
			return nil
		}
	}
	return model.ErrBookingNotFound
}

func (f *fakeBookingStore) ConfirmIfAvailable(_ context.Context, id int64) error {
	for i := range f.bookings {
		if f.bookings[i].ID != id {
			continue
		}
		if f.overlaps(f.bookings[i].PropertyID, f.bookings[i].CheckIn, f.bookings[i].CheckOut, id) {
			return model.ErrBookingOverlap
		}
		if f.bookings[i].Status != model.BookingStatusPending {
			return model.ErrInvalidTransition
		}
		f.bookings[i].Status = model.BookingStatusConfirmed
		return nil
	}
	return model.ErrBookingNotFound
}

func (f *fakeBookingStore) CancelExpiredPending(_ context.Context, before time.Time) (int64, error) {
	var n int64
	for i := range f.bookings {
		if f.bookings[i].Status == model.BookingStatusPending && f.bookings[i].CheckIn.Before(before) {
			f.bookings[i].Status = model.BookingStatusCancelled
			n++
		}
	}
	return n, nil
}

func newBookingFixture() (*BookingService, *fakeBookingStore, *fakePropertyStore) {
	bookings := &fakeBookingStore{}
	props := &fakePropertyStore{properties: testListings()}
	svc := NewBookingService(bookings, props, zap.NewNop())
	return svc, bookings, props
}

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

func TestBookingCreate(t *testing.T) {
	svc, _, _ := newBookingFixture()

	booking, err := svc.Create(context.Background(), 42, &model.CreateBookingRequest{
		Property:     3,
		CheckInDate:  futureDate(10),
		CheckOutDate: futureDate(10 + 180),
	})
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusPending, booking.Status)
	assert.Equal(t, int64(3), booking.PropertyID)
	assert.Equal(t, int64(42), booking.RenterID)
	assert.Equal(t, 6, booking.DurationMonths)
	assert.InDelta(t, 16000, booking.MonthlyRate, 0.001)
	// Listing 3 is FairFlex eligible; six months earns 10% off.
	assert.InDelta(t, 14400, booking.DiscountedRate, 0.001)
}

func TestBookingCreate_ShortStayNoDiscount(t *testing.T) {
	svc, _, _ := newBookingFixture()

	booking, err := svc.Create(context.Background(), 42, &model.CreateBookingRequest{
		Property:     3,
		CheckInDate:  futureDate(10),
		CheckOutDate: futureDate(10 + 30),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, booking.DurationMonths)
	assert.InDelta(t, 16000, booking.DiscountedRate, 0.001)
}

func TestBookingCreate_IneligibleListingKeepsFullRate(t *testing.T) {
	svc, _, props := newBookingFixture()
	// Price above 20000 and fewer than 3 bedrooms: not FairFlex eligible.
	props.properties = append(props.properties, model.Property{
		ID: 9, OwnerID: 12, Title: "Luxury Flat", Location: "Kathmandu",
		Type: model.TypeFlatApartment, Price: 30000, Bedrooms: 2, Bathrooms: 2, AreaSqft: 1400,
		IsActive: true, Status: model.PropertyStatusApproved,
	})

	booking, err := svc.Create(context.Background(), 42, &model.CreateBookingRequest{
		Property:     9,
		CheckInDate:  futureDate(10),
		CheckOutDate: futureDate(10 + 180),
	})
	require.NoError(t, err)

	assert.Equal(t, 6, booking.DurationMonths)
	assert.InDelta(t, 30000, booking.DiscountedRate, 0.001)
}

func TestBookingCreate_Validation(t *testing.T) {
	svc, _, _ := newBookingFixture()
	ctx := context.Background()

	tests := []struct {
		name    string
		req     model.CreateBookingRequest
		wantErr error
	}{
		{
			name:    "malformed check-in",
			req:     model.CreateBookingRequest{Property: 3, CheckInDate: "10/06/2026", CheckOutDate: futureDate(40)},
			wantErr: model.ErrInvalidDate,
		},
		{
			name:    "malformed check-out",
			req:     model.CreateBookingRequest{Property: 3, CheckInDate: futureDate(10), CheckOutDate: "soon"},
			wantErr: model.ErrInvalidDate,
		},
		{
			name:    "check-in in the past",
			req:     model.CreateBookingRequest{Property: 3, CheckInDate: "2020-01-01", CheckOutDate: futureDate(40)},
			wantErr: model.ErrCheckInPast,
		},
		{
			name:    "check-out equals check-in",
			req:     model.CreateBookingRequest{Property: 3, CheckInDate: futureDate(10), CheckOutDate: futureDate(10)},
			wantErr: model.ErrCheckOutNotAfter,
		},
		{
			name:    "check-out before check-in",
			req:     model.CreateBookingRequest{Property: 3, CheckInDate: futureDate(20), CheckOutDate: futureDate(10)},
			wantErr: model.ErrCheckOutNotAfter,
		},
		{
			name:    "unknown property",
			req:     model.CreateBookingRequest{Property: 999, CheckInDate: futureDate(10), CheckOutDate: futureDate(40)},
			wantErr: model.ErrPropertyNotFound,
		},
		{
			name:    "pending property is not live",
			req:     model.CreateBookingRequest{Property: 4, CheckInDate: futureDate(10), CheckOutDate: futureDate(40)},
			wantErr: model.ErrPropertyNotLive,
		},
		{
			name:    "owner cannot book own listing",
			req:     model.CreateBookingRequest{Property: 3, CheckInDate: futureDate(10), CheckOutDate: futureDate(40)},
			wantErr: model.ErrOwnSelfBooking,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renterID := int64(42)
			if tt.wantErr == model.ErrOwnSelfBooking {
				renterID = 11
			}
			_, err := svc.Create(ctx, renterID, &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBookingCreate_OverlapRejected(t *testing.T) {
	svc, _, _ := newBookingFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, 42, &model.CreateBookingRequest{
		Property:     3,
		CheckInDate:  futureDate(10),
		CheckOutDate: futureDate(20),
	})
	require.NoError(t, err)

	// Intersects the existing interval.
	_, err = svc.Create(ctx, 43, &model.CreateBookingRequest{
		Property:     3,
		CheckInDate:  futureDate(15),
		CheckOutDate: futureDate(25),
	})
	assert.ErrorIs(t, err, model.ErrBookingOverlap)

	// Starts exactly at the existing check-out: half-open intervals do not
	// overlap on the boundary.
	_, err = svc.Create(ctx, 43, &model.CreateBookingRequest{
		Property:     3,
		CheckInDate:  futureDate(20),
		CheckOutDate: futureDate(30),
	})
	assert.NoError(t, err)

	// A different property is unaffected.
	_, err = svc.Create(ctx, 43, &model.CreateBookingRequest{
		Property:     1,
		CheckInDate:  futureDate(15),
		CheckOutDate: futureDate(25),
	})
	assert.NoError(t, err)
}

func TestBookingUpdateStatus(t *testing.T) {
	svc, _, _ := newBookingFixture()
	ctx := context.Background()

	booking, err := svc.Create(ctx, 42, &model.CreateBookingRequest{
		Property:     3,
		CheckInDate:  futureDate(10),
		CheckOutDate: futureDate(40),
	})
	require.NoError(t, err)

	// Property 3 belongs to owner 11.
	updated, err := svc.UpdateStatus(ctx, 11, booking.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, updated.Status)

	// Confirmed can still be cancelled.
	updated, err = svc.UpdateStatus(ctx, 11, booking.ID, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, updated.Status)

	// Cancelled is terminal.
	_, err = svc.UpdateStatus(ctx, 11, booking.ID, "confirmed")
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
}

func TestBookingUpdateStatus_LegacyAliases(t *testing.T) {
	svc, _, _ := newBookingFixture()
	ctx := context.Background()

	booking, err := svc.Create(ctx, 42, &model.CreateBookingRequest{
		Property:     3,
		CheckInDate:  futureDate(10),
		CheckOutDate: futureDate(40),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, 11, booking.ID, "approved")
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, updated.Status)

	updated, err = svc.UpdateStatus(ctx, 11, booking.ID, "rejected")
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, updated.Status)
}

func TestBookingUpdateStatus_Guards(t *testing.T) {
	svc, _, _ := newBookingFixture()
	ctx := context.Background()

	booking, err := svc.Create(ctx, 42, &model.CreateBookingRequest{
		Property:     3,
		CheckInDate:  futureDate(10),
		CheckOutDate: futureDate(40),
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, 11, booking.ID, "pending")
	assert.ErrorIs(t, err, model.ErrInvalidStatus)

	_, err = svc.UpdateStatus(ctx, 11, 999, "confirmed")
	assert.ErrorIs(t, err, model.ErrBookingNotFound)

	// Owner 10 does not own property 3.
	_, err = svc.UpdateStatus(ctx, 10, booking.ID, "confirmed")
	assert.ErrorIs(t, err, model.ErrNotPropertyOwner)
}

func TestBookingConfirm_RevalidatesOverlap(t *testing.T) {
	svc, store, _ := newBookingFixture()
	ctx := context.Background()

	first, err := svc.Create(ctx, 42, &model.CreateBookingRequest{
		Property:     3,
		CheckInDate:  futureDate(10),
		CheckOutDate: futureDate(40),
	})
	require.NoError(t, err)

	// A second pending booking over the same dates, inserted behind the
	// service's back so both exist at once.
	second := model.Booking{
		PropertyID: 3, RenterID: 43,
		CheckIn:  first.CheckIn.AddDate(0, 0, 5),
		CheckOut: first.CheckOut,
		Status:   model.BookingStatusPending,
	}
	store.nextID++
	second.ID = store.nextID
	store.bookings = append(store.bookings, second)

	_, err = svc.UpdateStatus(ctx, 11, first.ID, "confirmed")
	assert.ErrorIs(t, err, model.ErrBookingOverlap)
}

func TestBookingIsAvailable(t *testing.T) {
	svc, _, _ := newBookingFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, 42, &model.CreateBookingRequest{
		Property:     3,
		CheckInDate:  futureDate(10),
		CheckOutDate: futureDate(20),
	})
	require.NoError(t, err)

	available, err := svc.IsAvailable(ctx, 3, futureDate(15), futureDate(25))
	require.NoError(t, err)
	assert.False(t, available)

	available, err = svc.IsAvailable(ctx, 3, futureDate(20), futureDate(30))
	require.NoError(t, err)
	assert.True(t, available)

	_, err = svc.IsAvailable(ctx, 3, "bad", futureDate(25))
	assert.ErrorIs(t, err, model.ErrInvalidDate)
}

func TestBookingIsAvailable_PropertyGuards(t *testing.T) {
	svc, _, _ := newBookingFixture()
	ctx := context.Background()

	_, err := svc.IsAvailable(ctx, 999, futureDate(10), futureDate(20))
	assert.ErrorIs(t, err, model.ErrPropertyNotFound)

	// Listing 4 is still pending moderation.
	_, err = svc.IsAvailable(ctx, 4, futureDate(10), futureDate(20))
	assert.ErrorIs(t, err, model.ErrPropertyNotLive)
}

func TestExpireStalePending(t *testing.T) {
	svc, store, _ := newBookingFixture()

	past := time.Now().UTC().AddDate(0, 0, -10)
	store.bookings = append(store.bookings,
		model.Booking{ID: 1, PropertyID: 3, RenterID: 42, CheckIn: past, CheckOut: past.AddDate(0, 1, 0), Status: model.BookingStatusPending},
		model.Booking{ID: 2, PropertyID: 3, RenterID: 43, CheckIn: past, CheckOut: past.AddDate(0, 1, 0), Status: model.BookingStatusConfirmed},
	)
	store.nextID = 2

	n, err := svc.ExpireStalePending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, model.BookingStatusCancelled, store.bookings[0].Status)
	assert.Equal(t, model.BookingStatusConfirmed, store.bookings[1].Status)
}

func TestExpireStalePending_SameDayCheckIn(t *testing.T) {
	svc, store, _ := newBookingFixture()
	ctx := context.Background()

	// A check-in of today is accepted, so the expiry job must not touch it.
	booking, err := svc.Create(ctx, 42, &model.CreateBookingRequest{
		Property:     3,
		CheckInDate:  futureDate(0),
		CheckOutDate: futureDate(30),
	})
	require.NoError(t, err)

	n, err := svc.ExpireStalePending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	kept, err := store.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusPending, kept.Status)
}
