package availability

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange         = errors.New("check-out date must be after check-in date")
	ErrRangeTooLong         = errors.New("date range exceeds the maximum stay length")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
	ErrInsufficientCapacity = errors.New("not enough rooms available for the requested dates")
	ErrRoomNotFound         = errors.New("room not found")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrInvalidAvailability  = errors.New("available rooms must be between 0 and the room's total units")
)

// MaxStayNights bounds the length of a single reservation range.
const MaxStayNights = 365

// DateFormat is the wire format for calendar days.
const DateFormat = "2006-01-02"

// Night is the effective capacity and nightly price for one calendar day.
// Days without an explicit ledger record report the room's full unit count
// at its base price (default-available policy).
type Night struct {
	Date           time.Time `json:"date"`
	AvailableRooms int       `json:"available_rooms"`
	PriceCents     int64     `json:"price_cents"`
}

// DayRecord is an explicit per-room per-day ledger row.
// PriceCents is a date-specific override; nil means the room's base price applies.
type DayRecord struct {
	RoomID         string
	Date           time.Time
	AvailableRooms int
	PriceCents     *int64
}

// ReservedNight records the effective price charged for one night of a reservation.
type ReservedNight struct {
	Date       time.Time
	PriceCents int64
}

// Reservation is a hold on ledger capacity covering a half-open date range.
// Nights carries the per-night prices read in the same transaction that
// decremented the counters, so pricing is stable against concurrent overrides.
type Reservation struct {
	ID        string
	RoomID    string
	CheckIn   time.Time
	CheckOut  time.Time
	Quantity  int
	Released  bool
	Nights    []ReservedNight
	CreatedAt time.Time
}

// NormalizeDate truncates t to a UTC calendar day.
func NormalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NightsIn expands the half-open range [checkIn, checkOut) into its calendar
// days in ascending order. The checkout day itself is not occupied.
func NightsIn(checkIn, checkOut time.Time) []time.Time {
	checkIn = NormalizeDate(checkIn)
	checkOut = NormalizeDate(checkOut)

	var nights []time.Time
	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d)
	}
	return nights
}

// ValidateRange checks ordering and length of a booking date range.
func ValidateRange(checkIn, checkOut time.Time) error {
	checkIn = NormalizeDate(checkIn)
	checkOut = NormalizeDate(checkOut)

	if !checkOut.After(checkIn) {
		return ErrInvalidRange
	}
	if checkOut.Sub(checkIn) > MaxStayNights*24*time.Hour {
		return ErrRangeTooLong
	}
	return nil
}
