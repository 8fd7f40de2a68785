package http

import (
	"github.com/stayloft/lodge-booking-backend/internal/availability"
)

// CapacityQuery parses the half-open date range of a calendar query.
type CapacityQuery struct {
	CheckIn  string `form:"check_in" binding:"required,datetime=2006-01-02"`
	CheckOut string `form:"check_out" binding:"required,datetime=2006-01-02"`
}

// SetDayBody defines the payload for a per-date availability/price override.
type SetDayBody struct {
	Date           string `json:"date" binding:"required,datetime=2006-01-02"`
	AvailableRooms *int   `json:"available_rooms" binding:"omitempty,min=0"`
	PriceCents     *int64 `json:"price_cents" binding:"omitempty,min=0"`
}

// NightResponse is the API shape of a single calendar night.
type NightResponse struct {
	Date           string `json:"date"`
	AvailableRooms int    `json:"available_rooms"`
	PriceCents     int64  `json:"price_cents"`
}

func NewNightResponse(n availability.Night) NightResponse {
	return NightResponse{
		Date:           n.Date.Format(availability.DateFormat),
		AvailableRooms: n.AvailableRooms,
		PriceCents:     n.PriceCents,
	}
}

// DayRecordResponse is the API shape of an explicit ledger row.
type DayRecordResponse struct {
	RoomID         string `json:"room_id"`
	Date           string `json:"date"`
	AvailableRooms int    `json:"available_rooms"`
	PriceCents     *int64 `json:"price_cents"`
}

func NewDayRecordResponse(rec *availability.DayRecord) DayRecordResponse {
	return DayRecordResponse{
		RoomID:         rec.RoomID,
		Date:           rec.Date.Format(availability.DateFormat),
		AvailableRooms: rec.AvailableRooms,
		PriceCents:     rec.PriceCents,
	}
}
