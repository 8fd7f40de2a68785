package http

import (
	"time"

	"github.com/stayloft/lodge-booking-backend/internal/room"
)

// CreateRoomBody defines the payload for creating a room type.
type CreateRoomBody struct {
	LodgeID        string   `json:"lodge_id" binding:"required,uuid"`
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description"`
	RoomType       string   `json:"room_type" binding:"required,oneof=single double suite dormitory"`
	Capacity       int      `json:"capacity" binding:"required,min=1"`
	BasePriceCents int64    `json:"base_price_cents" binding:"min=0"`
	Currency       string   `json:"currency"`
	Amenities      []string `json:"amenities"`
	ImageURLs      []string `json:"image_urls"`
	TotalRooms     int      `json:"total_rooms" binding:"required,min=1"`
}

// UpdateRoomBody defines the payload for updating a room type.
type UpdateRoomBody struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	Capacity       *int     `json:"capacity" binding:"omitempty,min=1"`
	BasePriceCents *int64   `json:"base_price_cents" binding:"omitempty,min=0"`
	Amenities      []string `json:"amenities"`
	ImageURLs      []string `json:"image_urls"`
	TotalRooms     *int     `json:"total_rooms" binding:"omitempty,min=1"`
}

// RoomResponse is the API shape of a room type.
type RoomResponse struct {
	ID             string    `json:"id"`
	LodgeID        string    `json:"lodge_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	RoomType       string    `json:"room_type"`
	Capacity       int       `json:"capacity"`
	BasePriceCents int64     `json:"base_price_cents"`
	Currency       string    `json:"currency"`
	Amenities      []string  `json:"amenities"`
	ImageURLs      []string  `json:"image_urls"`
	TotalRooms     int       `json:"total_rooms"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewRoomResponse converts a domain room.Room to the API shape.
func NewRoomResponse(r *room.Room) RoomResponse {
	amenities := r.Amenities
	if amenities == nil {
		amenities = make([]string, 0)
	}
	imageURLs := r.ImageURLs
	if imageURLs == nil {
		imageURLs = make([]string, 0)
	}

	return RoomResponse{
		ID:             r.ID,
		LodgeID:        r.LodgeID,
		Name:           r.Name,
		Description:    r.Description,
		RoomType:       string(r.RoomType),
		Capacity:       r.Capacity,
		BasePriceCents: r.BasePriceCents,
		Currency:       r.Currency,
		Amenities:      amenities,
		ImageURLs:      imageURLs,
		TotalRooms:     r.TotalRooms,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
