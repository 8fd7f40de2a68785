package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/stayloft/lodge-booking-backend/internal/availability"
	"github.com/stayloft/lodge-booking-backend/internal/events"
	"github.com/stayloft/lodge-booking-backend/internal/room"
)

// CreateRequest defines the data needed to create a booking.
type CreateRequest struct {
	UserID          string
	RoomID          string
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	Rooms           int
	SpecialRequests string
}

// Publisher publishes booking lifecycle events.
type Publisher interface {
	Publish(ctx context.Context, key string, payload any) error
}

// Service is the booking engine. It owns the booking lifecycle and payment
// state machines and coordinates the availability ledger.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	GetByPaymentReference(ctx context.Context, reference string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// AttachPaymentReference records the payment provider reference for a
	// booking. A booking holds at most one reference.
	AttachPaymentReference(ctx context.Context, id, reference string) error

	// ConfirmPayment marks the payment completed and confirms the booking.
	// A second call for the same booking returns ErrAlreadyProcessed.
	ConfirmPayment(ctx context.Context, id string) (*Booking, error)

	// FailPayment marks the payment failed. The booking stays pending so the
	// guest can retry; its reservation remains held.
	FailPayment(ctx context.Context, id string) (*Booking, error)

	// Cancel moves a pending or confirmed booking to cancelled and returns
	// its rooms to the ledger. A completed payment triggers a refund request.
	Cancel(ctx context.Context, id string) (*Booking, error)

	// MarkRefunded records that a requested refund has been paid out.
	MarkRefunded(ctx context.Context, id string) (*Booking, error)

	CheckIn(ctx context.Context, id string) (*Booking, error)
	CheckOut(ctx context.Context, id string) (*Booking, error)
}

type service struct {
	repo      Repository
	rooms     room.Service
	ledger    availability.Service
	publisher Publisher
}

func NewService(repo Repository, rooms room.Service, ledger availability.Service, publisher Publisher) Service {
	return &service{
		repo:      repo,
		rooms:     rooms,
		ledger:    ledger,
		publisher: publisher,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if err := availability.ValidateRange(req.CheckIn, req.CheckOut); err != nil {
		return nil, err
	}
	if req.Guests < 1 {
		return nil, ErrInvalidGuests
	}
	if req.Rooms < 1 {
		return nil, ErrInvalidRoomCount
	}

	rm, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return nil, availability.ErrRoomNotFound
		}
		return nil, err
	}
	if req.Rooms > rm.TotalRooms {
		return nil, ErrTooManyRooms
	}
	if req.Guests > rm.Capacity*req.Rooms {
		return nil, ErrTooManyGuests
	}

	res, err := s.ledger.Reserve(ctx, req.RoomID, req.CheckIn, req.CheckOut, req.Rooms)
	if err != nil {
		return nil, err
	}

	// Price from the nights the reservation captured, not the current
	// calendar: overrides landing after the reserve do not move the total.
	var total int64
	for _, night := range res.Nights {
		total += night.PriceCents * int64(req.Rooms)
	}

	b := &Booking{
		UserID:          req.UserID,
		LodgeID:         rm.LodgeID,
		RoomID:          req.RoomID,
		ReservationID:   res.ID,
		CheckIn:         res.CheckIn,
		CheckOut:        res.CheckOut,
		Guests:          req.Guests,
		Rooms:           req.Rooms,
		TotalPriceCents: total,
		Currency:        rm.Currency,
		Status:          StatusPending,
		PaymentStatus:   PaymentPending,
		SpecialRequests: req.SpecialRequests,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		// The rooms are held but the booking never existed; hand them back.
		if relErr := s.ledger.Release(ctx, res.ID); relErr != nil {
			log.Printf("failed to release reservation %s after booking create error: %v", res.ID, relErr)
		}
		return nil, err
	}

	s.publish(ctx, events.TypeBookingCreated, b)
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByPaymentReference(ctx context.Context, reference string) (*Booking, error) {
	return s.repo.GetByPaymentReference(ctx, reference)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	return s.repo.List(ctx, filter)
}

func (s *service) AttachPaymentReference(ctx context.Context, id, reference string) error {
	return s.repo.SetPaymentReference(ctx, id, reference)
}

func (s *service) ConfirmPayment(ctx context.Context, id string) (*Booking, error) {
	if err := s.repo.MarkPaymentCompleted(ctx, id); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The capture can land after the guest already cancelled. The money has
	// moved either way, so record it and hand the booking to the refund flow
	// instead of confirming a stay that no longer exists.
	if b.Status == StatusCancelled {
		s.publish(ctx, events.TypeRefundRequested, b)
		return b, nil
	}

	s.publish(ctx, events.TypeBookingConfirmed, b)
	return b, nil
}

func (s *service) FailPayment(ctx context.Context, id string) (*Booking, error) {
	if err := s.repo.UpdatePaymentStatus(ctx, id, PaymentPending, PaymentFailed); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TypePaymentFailed, b)
	return b, nil
}

func (s *service) Cancel(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(b.Status, StatusCancelled) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, b.Status, StatusCancelled); err != nil {
		return nil, err
	}
	b.Status = StatusCancelled

	if err := s.ledger.Release(ctx, b.ReservationID); err != nil {
		// The booking is already cancelled; the ledger repair can be retried.
		log.Printf("failed to release reservation %s for cancelled booking %s: %v", b.ReservationID, b.ID, err)
	}

	s.publish(ctx, events.TypeBookingCancelled, b)

	// Money already captured is refunded out of band; the payment status
	// moves to refunded only once the payout is confirmed via MarkRefunded.
	if b.PaymentStatus == PaymentCompleted {
		s.publish(ctx, events.TypeRefundRequested, b)
	}
	return b, nil
}

func (s *service) MarkRefunded(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.PaymentStatus != PaymentCompleted {
		return nil, ErrAlreadyProcessed
	}
	// Refunds are only paid out for cancelled bookings.
	if b.Status != StatusCancelled {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdatePaymentStatus(ctx, id, PaymentCompleted, PaymentRefunded); err != nil {
		return nil, err
	}
	b.PaymentStatus = PaymentRefunded
	return b, nil
}

func (s *service) CheckIn(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(b.Status, StatusCheckedIn) {
		return nil, ErrInvalidTransition
	}
	if b.PaymentStatus != PaymentCompleted {
		return nil, ErrPaymentNotComplete
	}

	if err := s.repo.UpdateStatus(ctx, id, b.Status, StatusCheckedIn); err != nil {
		return nil, err
	}
	b.Status = StatusCheckedIn
	return b, nil
}

func (s *service) CheckOut(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(b.Status, StatusCheckedOut) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, b.Status, StatusCheckedOut); err != nil {
		return nil, err
	}
	b.Status = StatusCheckedOut
	return b, nil
}

// publish emits a lifecycle event. Event delivery is best effort and never
// fails the request.
func (s *service) publish(ctx context.Context, eventType string, b *Booking) {
	if s.publisher == nil {
		return
	}

	event := events.BookingEvent{
		Type:            eventType,
		BookingID:       b.ID,
		UserID:          b.UserID,
		LodgeID:         b.LodgeID,
		RoomID:          b.RoomID,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		TotalPriceCents: b.TotalPriceCents,
		Currency:        b.Currency,
		OccurredAt:      time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, b.ID, event); err != nil {
		log.Printf("failed to publish %s event for booking %s: %v", eventType, b.ID, err)
	}
}
