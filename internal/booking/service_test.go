package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayloft/lodge-booking-backend/internal/availability"
	"github.com/stayloft/lodge-booking-backend/internal/events"
	"github.com/stayloft/lodge-booking-backend/internal/room"
)

// ==== Fakes ====

type fakeRoomService struct {
	rooms map[string]*room.Room
}

func (f *fakeRoomService) Create(ctx context.Context, req room.CreateRequest) (*room.Room, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRoomService) GetByID(ctx context.Context, id string) (*room.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, room.ErrNotFound
	}
	return r, nil
}

func (f *fakeRoomService) ListByLodge(ctx context.Context, lodgeID string) ([]*room.Room, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRoomService) Update(ctx context.Context, id string, req room.UpdateRequest) (*room.Room, error) {
	return nil, errors.New("not implemented")
}

type fakeLedger struct {
	reserveErr error
	priceCents int64
	nextID     int
	reserved   []string
	released   []string
}

func (f *fakeLedger) QueryCapacity(ctx context.Context, roomID string, checkIn, checkOut time.Time) ([]availability.Night, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeLedger) Reserve(ctx context.Context, roomID string, checkIn, checkOut time.Time, quantity int) (*availability.Reservation, error) {
	if f.reserveErr != nil {
		return nil, f.reserveErr
	}

	f.nextID++
	id := fmt.Sprintf("res-%d", f.nextID)
	f.reserved = append(f.reserved, id)

	res := &availability.Reservation{
		ID:       id,
		RoomID:   roomID,
		CheckIn:  availability.NormalizeDate(checkIn),
		CheckOut: availability.NormalizeDate(checkOut),
		Quantity: quantity,
	}
	for _, d := range availability.NightsIn(checkIn, checkOut) {
		res.Nights = append(res.Nights, availability.ReservedNight{Date: d, PriceCents: f.priceCents})
	}
	return res, nil
}

func (f *fakeLedger) Release(ctx context.Context, reservationID string) error {
	f.released = append(f.released, reservationID)
	return nil
}

func (f *fakeLedger) SetDay(ctx context.Context, roomID string, date time.Time, req availability.SetDayRequest) (*availability.DayRecord, error) {
	return nil, errors.New("not implemented")
}

type fakeRepo struct {
	bookings  map[string]*Booking
	nextID    int
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: map[string]*Booking{}}
}

func (f *fakeRepo) Create(ctx context.Context, b *Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	b.ID = fmt.Sprintf("bkg-%d", f.nextID)
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	clone := *b
	f.bookings[b.ID] = &clone
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (f *fakeRepo) GetByPaymentReference(ctx context.Context, reference string) (*Booking, error) {
	for _, b := range f.bookings {
		if b.PaymentReference != nil && *b.PaymentReference == reference {
			clone := *b
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	var out []*Booking
	for _, b := range f.bookings {
		if filter.UserID != nil && b.UserID != *filter.UserID {
			continue
		}
		if filter.LodgeID != nil && b.LodgeID != *filter.LodgeID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		clone := *b
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	b, ok := f.bookings[id]
	if !ok {
		return ErrNotFound
	}
	if b.Status != from {
		return ErrInvalidTransition
	}
	b.Status = to
	return nil
}

func (f *fakeRepo) UpdatePaymentStatus(ctx context.Context, id string, from, to PaymentStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return ErrNotFound
	}
	if b.PaymentStatus != from {
		return ErrAlreadyProcessed
	}
	b.PaymentStatus = to
	return nil
}

func (f *fakeRepo) MarkPaymentCompleted(ctx context.Context, id string) error {
	b, ok := f.bookings[id]
	if !ok {
		return ErrNotFound
	}
	if b.PaymentStatus != PaymentPending {
		return ErrAlreadyProcessed
	}
	b.PaymentStatus = PaymentCompleted
	if b.Status == StatusPending {
		b.Status = StatusConfirmed
	}
	return nil
}

func (f *fakeRepo) SetPaymentReference(ctx context.Context, id, reference string) error {
	b, ok := f.bookings[id]
	if !ok {
		return ErrNotFound
	}
	if b.PaymentReference != nil {
		return ErrAlreadyProcessed
	}
	b.PaymentReference = &reference
	return nil
}

type capturePublisher struct {
	published []events.BookingEvent
}

func (p *capturePublisher) Publish(ctx context.Context, key string, payload any) error {
	if e, ok := payload.(events.BookingEvent); ok {
		p.published = append(p.published, e)
	}
	return nil
}

// ==== Helpers ====

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestService(t *testing.T) (Service, *fakeRepo, *fakeLedger, *fakeRoomService) {
	t.Helper()

	rooms := &fakeRoomService{rooms: map[string]*room.Room{
		"room-1": {
			ID:             "room-1",
			LodgeID:        "lodge-1",
			Name:           "Forest Suite",
			Capacity:       2,
			BasePriceCents: 10000,
			Currency:       "USD",
			TotalRooms:     5,
		},
	}}
	ledger := &fakeLedger{priceCents: 10000}
	repo := newFakeRepo()

	return NewService(repo, rooms, ledger, nil), repo, ledger, rooms
}

func createTestBooking(t *testing.T, svc Service) *Booking {
	t.Helper()

	b, err := svc.Create(context.Background(), CreateRequest{
		UserID:   "user-1",
		RoomID:   "room-1",
		CheckIn:  date(2026, 7, 1),
		CheckOut: date(2026, 7, 4),
		Guests:   2,
		Rooms:    2,
	})
	require.NoError(t, err)
	return b
}

// ==== Tests ====

func TestCreateBooking(t *testing.T) {
	t.Run("prices nights times rooms", func(t *testing.T) {
		svc, _, ledger, _ := newTestService(t)

		b := createTestBooking(t, svc)

		// 3 nights x 10000 cents x 2 rooms
		assert.Equal(t, int64(60000), b.TotalPriceCents)
		assert.Equal(t, "USD", b.Currency)
		assert.Equal(t, StatusPending, b.Status)
		assert.Equal(t, PaymentPending, b.PaymentStatus)
		assert.Equal(t, "lodge-1", b.LodgeID)
		assert.Len(t, ledger.reserved, 1)
		assert.Equal(t, ledger.reserved[0], b.ReservationID)
	})

	t.Run("rejects bad input before touching the ledger", func(t *testing.T) {
		svc, _, ledger, _ := newTestService(t)
		ctx := context.Background()

		base := CreateRequest{
			UserID:   "user-1",
			RoomID:   "room-1",
			CheckIn:  date(2026, 7, 1),
			CheckOut: date(2026, 7, 4),
			Guests:   2,
			Rooms:    1,
		}

		cases := []struct {
			name    string
			mutate  func(*CreateRequest)
			wantErr error
		}{
			{"checkout before checkin", func(r *CreateRequest) { r.CheckOut = date(2026, 6, 30) }, availability.ErrInvalidRange},
			{"same day", func(r *CreateRequest) { r.CheckOut = r.CheckIn }, availability.ErrInvalidRange},
			{"zero guests", func(r *CreateRequest) { r.Guests = 0 }, ErrInvalidGuests},
			{"zero rooms", func(r *CreateRequest) { r.Rooms = 0 }, ErrInvalidRoomCount},
			{"more rooms than units", func(r *CreateRequest) { r.Rooms = 6 }, ErrTooManyRooms},
			{"more guests than capacity", func(r *CreateRequest) { r.Guests = 3 }, ErrTooManyGuests},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				req := base
				tc.mutate(&req)
				_, err := svc.Create(ctx, req)
				assert.ErrorIs(t, err, tc.wantErr)
			})
		}

		assert.Empty(t, ledger.reserved, "no reservation should be made for invalid input")
	})

	t.Run("unknown room", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		_, err := svc.Create(context.Background(), CreateRequest{
			UserID:   "user-1",
			RoomID:   "room-missing",
			CheckIn:  date(2026, 7, 1),
			CheckOut: date(2026, 7, 2),
			Guests:   1,
			Rooms:    1,
		})
		assert.ErrorIs(t, err, availability.ErrRoomNotFound)
	})

	t.Run("insufficient capacity propagates", func(t *testing.T) {
		svc, _, ledger, _ := newTestService(t)
		ledger.reserveErr = availability.ErrInsufficientCapacity

		_, err := svc.Create(context.Background(), CreateRequest{
			UserID:   "user-1",
			RoomID:   "room-1",
			CheckIn:  date(2026, 7, 1),
			CheckOut: date(2026, 7, 2),
			Guests:   1,
			Rooms:    1,
		})
		assert.ErrorIs(t, err, availability.ErrInsufficientCapacity)
	})

	t.Run("releases reservation when persist fails", func(t *testing.T) {
		svc, repo, ledger, _ := newTestService(t)
		repo.createErr = errors.New("db down")

		_, err := svc.Create(context.Background(), CreateRequest{
			UserID:   "user-1",
			RoomID:   "room-1",
			CheckIn:  date(2026, 7, 1),
			CheckOut: date(2026, 7, 2),
			Guests:   1,
			Rooms:    1,
		})
		require.Error(t, err)

		require.Len(t, ledger.reserved, 1)
		require.Len(t, ledger.released, 1)
		assert.Equal(t, ledger.reserved[0], ledger.released[0], "held rooms must be handed back")
	})
}

func TestConfirmPayment(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	b := createTestBooking(t, svc)

	confirmed, err := svc.ConfirmPayment(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, PaymentCompleted, confirmed.PaymentStatus)
	assert.Equal(t, StatusConfirmed, confirmed.Status)

	// Duplicate webhook delivery
	_, err = svc.ConfirmPayment(context.Background(), b.ID)
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestFailPayment(t *testing.T) {
	svc, _, ledger, _ := newTestService(t)
	b := createTestBooking(t, svc)

	failed, err := svc.FailPayment(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, PaymentFailed, failed.PaymentStatus)
	assert.Equal(t, StatusPending, failed.Status, "a failed payment keeps the booking pending for retry")
	assert.Empty(t, ledger.released, "the reservation stays held")
}

func TestCancel(t *testing.T) {
	t.Run("pending booking releases its rooms", func(t *testing.T) {
		svc, _, ledger, _ := newTestService(t)
		b := createTestBooking(t, svc)

		cancelled, err := svc.Cancel(context.Background(), b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, cancelled.Status)
		require.Len(t, ledger.released, 1)
		assert.Equal(t, b.ReservationID, ledger.released[0])
	})

	t.Run("confirmed booking cancels", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		b := createTestBooking(t, svc)
		_, err := svc.ConfirmPayment(context.Background(), b.ID)
		require.NoError(t, err)

		cancelled, err := svc.Cancel(context.Background(), b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, cancelled.Status)
		// The captured money is refunded out of band.
		assert.Equal(t, PaymentCompleted, cancelled.PaymentStatus)
	})

	t.Run("checked out booking cannot cancel", func(t *testing.T) {
		svc, repo, ledger, _ := newTestService(t)
		b := createTestBooking(t, svc)
		repo.bookings[b.ID].Status = StatusCheckedOut

		_, err := svc.Cancel(context.Background(), b.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Empty(t, ledger.released, "ledger must stay untouched")
	})

	t.Run("cancelling twice fails", func(t *testing.T) {
		svc, _, ledger, _ := newTestService(t)
		b := createTestBooking(t, svc)

		_, err := svc.Cancel(context.Background(), b.ID)
		require.NoError(t, err)

		_, err = svc.Cancel(context.Background(), b.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Len(t, ledger.released, 1, "rooms are released exactly once")
	})
}

func TestMarkRefunded(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	b := createTestBooking(t, svc)

	// Refund without a completed payment is rejected.
	_, err := svc.MarkRefunded(context.Background(), b.ID)
	assert.ErrorIs(t, err, ErrAlreadyProcessed)

	_, err = svc.ConfirmPayment(context.Background(), b.ID)
	require.NoError(t, err)

	// Paid but not cancelled: nothing to refund yet.
	_, err = svc.MarkRefunded(context.Background(), b.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.Cancel(context.Background(), b.ID)
	require.NoError(t, err)

	refunded, err := svc.MarkRefunded(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, PaymentRefunded, refunded.PaymentStatus)
}

func TestLifecycleEvents(t *testing.T) {
	rooms := &fakeRoomService{rooms: map[string]*room.Room{
		"room-1": {
			ID:             "room-1",
			LodgeID:        "lodge-1",
			Capacity:       2,
			BasePriceCents: 10000,
			Currency:       "USD",
			TotalRooms:     5,
		},
	}}
	publisher := &capturePublisher{}
	svc := NewService(newFakeRepo(), rooms, &fakeLedger{priceCents: 10000}, publisher)
	ctx := context.Background()

	b := createTestBooking(t, svc)
	_, err := svc.ConfirmPayment(ctx, b.ID)
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, b.ID)
	require.NoError(t, err)

	var types []string
	for _, e := range publisher.published {
		assert.Equal(t, b.ID, e.BookingID)
		types = append(types, e.Type)
	}
	// Cancelling a paid booking both announces the cancellation and asks
	// for the money back.
	assert.Equal(t, []string{
		events.TypeBookingCreated,
		events.TypeBookingConfirmed,
		events.TypeBookingCancelled,
		events.TypeRefundRequested,
	}, types)
}

func TestConfirmPaymentAfterCancel(t *testing.T) {
	rooms := &fakeRoomService{rooms: map[string]*room.Room{
		"room-1": {
			ID:             "room-1",
			LodgeID:        "lodge-1",
			Capacity:       2,
			BasePriceCents: 10000,
			Currency:       "USD",
			TotalRooms:     5,
		},
	}}
	ledger := &fakeLedger{priceCents: 10000}
	publisher := &capturePublisher{}
	svc := NewService(newFakeRepo(), rooms, ledger, publisher)
	ctx := context.Background()

	b := createTestBooking(t, svc)
	_, err := svc.Cancel(ctx, b.ID)
	require.NoError(t, err)

	// The provider's capture lands after the guest cancelled. The payment
	// is recorded and routed to the refund flow, not confirmed.
	late, err := svc.ConfirmPayment(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, late.Status)
	assert.Equal(t, PaymentCompleted, late.PaymentStatus)
	assert.Len(t, ledger.released, 1, "cancel already released the rooms")

	var types []string
	for _, e := range publisher.published {
		types = append(types, e.Type)
	}
	assert.Equal(t, []string{
		events.TypeBookingCreated,
		events.TypeBookingCancelled,
		events.TypeRefundRequested,
	}, types)

	// With the money captured and the booking cancelled, the refund can
	// complete as usual.
	refunded, err := svc.MarkRefunded(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, PaymentRefunded, refunded.PaymentStatus)
}

func TestCheckInCheckOut(t *testing.T) {
	t.Run("requires completed payment", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)
		b := createTestBooking(t, svc)
		repo.bookings[b.ID].Status = StatusConfirmed

		_, err := svc.CheckIn(context.Background(), b.ID)
		assert.ErrorIs(t, err, ErrPaymentNotComplete)
	})

	t.Run("full flow", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		b := createTestBooking(t, svc)

		_, err := svc.ConfirmPayment(context.Background(), b.ID)
		require.NoError(t, err)

		checkedIn, err := svc.CheckIn(context.Background(), b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCheckedIn, checkedIn.Status)

		checkedOut, err := svc.CheckOut(context.Background(), b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCheckedOut, checkedOut.Status)
	})

	t.Run("cannot check in a pending booking", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		b := createTestBooking(t, svc)

		_, err := svc.CheckIn(context.Background(), b.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}
