package http

import (
	"time"

	"github.com/stayloft/lodge-booking-backend/internal/availability"
	"github.com/stayloft/lodge-booking-backend/internal/booking"
)

// CreateBookingBody defines the payload for creating a booking.
type CreateBookingBody struct {
	RoomID          string `json:"room_id" binding:"required,uuid"`
	CheckIn         string `json:"check_in" binding:"required,datetime=2006-01-02"`
	CheckOut        string `json:"check_out" binding:"required,datetime=2006-01-02"`
	Guests          int    `json:"guests" binding:"required,min=1"`
	Rooms           int    `json:"rooms" binding:"required,min=1"`
	SpecialRequests string `json:"special_requests"`
}

// ListBookingsQuery narrows a booking listing.
type ListBookingsQuery struct {
	UserID   string `form:"user_id" binding:"omitempty,uuid"`
	LodgeID  string `form:"lodge_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=pending confirmed checked_in checked_out cancelled"`
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"page_size,default=20" binding:"min=1,max=100"`
}

// BookingResponse is the API shape of a booking.
type BookingResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	LodgeID          string    `json:"lodge_id"`
	RoomID           string    `json:"room_id"`
	CheckIn          string    `json:"check_in"`
	CheckOut         string    `json:"check_out"`
	Nights           int       `json:"nights"`
	Guests           int       `json:"guests"`
	Rooms            int       `json:"rooms"`
	TotalPriceCents  int64     `json:"total_price_cents"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`
	PaymentStatus    string    `json:"payment_status"`
	PaymentReference *string   `json:"payment_reference,omitempty"`
	SpecialRequests  string    `json:"special_requests,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewBookingResponse converts a domain booking.Booking to the API shape.
func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:               b.ID,
		UserID:           b.UserID,
		LodgeID:          b.LodgeID,
		RoomID:           b.RoomID,
		CheckIn:          b.CheckIn.Format(availability.DateFormat),
		CheckOut:         b.CheckOut.Format(availability.DateFormat),
		Nights:           b.Nights(),
		Guests:           b.Guests,
		Rooms:            b.Rooms,
		TotalPriceCents:  b.TotalPriceCents,
		Currency:         b.Currency,
		Status:           string(b.Status),
		PaymentStatus:    string(b.PaymentStatus),
		PaymentReference: b.PaymentReference,
		SpecialRequests:  b.SpecialRequests,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}
