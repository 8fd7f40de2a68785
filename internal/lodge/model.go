package lodge

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("lodge not found")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrSlugAlreadyUsed = errors.New("slug already used")
	ErrInvalidSlug     = errors.New("slug contains no usable characters")
)

// Lodge represents a property listing containing one or more bookable room types.
type Lodge struct {
	ID           string // UUID
	Name         string
	Slug         string // URL-friendly identifier, unique, stored lowercase
	Description  string
	Address      string
	City         string
	Country      string
	ZipCode      string
	Latitude     float64
	Longitude    float64
	ImageURL     string
	Rating       float64 // derived from reviews, never below 0
	TotalReviews int
	Amenities    []string
	OwnerID      string
	IsActive     bool
	ContactEmail string
	ContactPhone string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Filter defines parameters for listing lodges.
type Filter struct {
	City     string
	IsActive *bool
	Page     int
	PageSize int
}
