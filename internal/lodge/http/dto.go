package http

import (
	"time"

	"github.com/stayloft/lodge-booking-backend/internal/lodge"
	"github.com/stayloft/lodge-booking-backend/internal/pkg/request"
)

// CreateLodgeBody defines the payload for creating a lodge.
type CreateLodgeBody struct {
	Name         string   `json:"name" binding:"required"`
	Slug         string   `json:"slug"`
	Description  string   `json:"description"`
	Address      string   `json:"address" binding:"required"`
	City         string   `json:"city" binding:"required"`
	Country      string   `json:"country" binding:"required"`
	ZipCode      string   `json:"zip_code"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	ImageURL     string   `json:"image_url"`
	Amenities    []string `json:"amenities"`
	OwnerID      string   `json:"owner_id" binding:"required,uuid"`
	ContactEmail string   `json:"contact_email" binding:"omitempty,email"`
	ContactPhone string   `json:"contact_phone"`
}

// UpdateLodgeBody defines the payload for updating a lodge.
type UpdateLodgeBody struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Address      *string  `json:"address"`
	City         *string  `json:"city"`
	Country      *string  `json:"country"`
	ZipCode      *string  `json:"zip_code"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	ImageURL     *string  `json:"image_url"`
	Amenities    []string `json:"amenities"`
	IsActive     *bool    `json:"is_active"`
	ContactEmail *string  `json:"contact_email" binding:"omitempty,email"`
	ContactPhone *string  `json:"contact_phone"`
}

// ListLodgesRequest defines query parameters for listing lodges.
type ListLodgesRequest struct {
	request.ListParams
	City     string `form:"city"`
	IsActive *bool  `form:"is_active"`
}

// LodgeResponse is the API shape of a lodge.
type LodgeResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	Country      string    `json:"country"`
	ZipCode      string    `json:"zip_code"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	ImageURL     string    `json:"image_url"`
	Rating       float64   `json:"rating"`
	TotalReviews int       `json:"total_reviews"`
	Amenities    []string  `json:"amenities"`
	OwnerID      string    `json:"owner_id"`
	IsActive     bool      `json:"is_active"`
	ContactEmail string    `json:"contact_email"`
	ContactPhone string    `json:"contact_phone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewLodgeResponse converts a domain lodge.Lodge to the API shape.
func NewLodgeResponse(l *lodge.Lodge) LodgeResponse {
	amenities := l.Amenities
	if amenities == nil {
		amenities = make([]string, 0)
	}

	return LodgeResponse{
		ID:           l.ID,
		Name:         l.Name,
		Slug:         l.Slug,
		Description:  l.Description,
		Address:      l.Address,
		City:         l.City,
		Country:      l.Country,
		ZipCode:      l.ZipCode,
		Latitude:     l.Latitude,
		Longitude:    l.Longitude,
		ImageURL:     l.ImageURL,
		Rating:       l.Rating,
		TotalReviews: l.TotalReviews,
		Amenities:    amenities,
		OwnerID:      l.OwnerID,
		IsActive:     l.IsActive,
		ContactEmail: l.ContactEmail,
		ContactPhone: l.ContactPhone,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}
