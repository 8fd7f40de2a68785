package events

import "time"

// Booking lifecycle event types published to the booking events topic.
const (
	TypeBookingCreated   = "booking.created"
	TypeBookingConfirmed = "booking.confirmed"
	TypeBookingCancelled = "booking.cancelled"
	TypePaymentFailed    = "booking.payment_failed"
	TypeRefundRequested  = "booking.refund_requested"
)

// BookingEvent is the payload published for every booking state change.
type BookingEvent struct {
	Type            string    `json:"type"`
	BookingID       string    `json:"booking_id"`
	UserID          string    `json:"user_id"`
	LodgeID         string    `json:"lodge_id"`
	RoomID          string    `json:"room_id"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Currency        string    `json:"currency"`
	OccurredAt      time.Time `json:"occurred_at"`
}
