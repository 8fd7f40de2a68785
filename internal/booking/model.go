package booking

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("booking not found")
	ErrInvalidGuests      = errors.New("number of guests must be at least 1")
	ErrInvalidRoomCount   = errors.New("number of rooms must be at least 1")
	ErrTooManyRooms       = errors.New("number of rooms exceeds the room's total units")
	ErrTooManyGuests      = errors.New("number of guests exceeds the booked capacity")
	ErrInvalidTransition  = errors.New("invalid booking state transition")
	ErrAlreadyProcessed   = errors.New("payment has already been processed")
	ErrPaymentNotComplete = errors.New("payment has not been completed")
)

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelled  Status = "cancelled"
)

// PaymentStatus is the payment state of a booking, tracked separately
// from the stay lifecycle.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// statusTransitions is the closed set of allowed lifecycle moves.
// Cancelled and checked_out are terminal.
var statusTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn: {StatusCheckedOut},
}

// paymentTransitions is the closed set of allowed payment moves.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:   {PaymentCompleted, PaymentFailed},
	PaymentCompleted: {PaymentRefunded},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CanTransitionPayment reports whether a payment may move between states.
func CanTransitionPayment(from, to PaymentStatus) bool {
	for _, allowed := range paymentTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Booking is a confirmed-or-pending hold on rooms over a date range.
// TotalPriceCents is fixed at creation from the ledger's per-night prices
// and never recomputed afterwards.
type Booking struct {
	ID               string // UUID
	UserID           string
	LodgeID          string
	RoomID           string
	ReservationID    string
	CheckIn          time.Time
	CheckOut         time.Time
	Guests           int
	Rooms            int
	TotalPriceCents  int64
	Currency         string
	Status           Status
	PaymentStatus    PaymentStatus
	PaymentReference *string
	SpecialRequests  string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Nights returns the number of nights the booking spans.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// Filter narrows booking listings.
type Filter struct {
	UserID   *string
	LodgeID  *string
	Status   *Status
	Page     int
	PageSize int
}
