package room

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("room not found")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrInvalidLodge    = errors.New("invalid lodge_id")
	ErrInvalidRoomType = errors.New("invalid room type")
	ErrInvalidCapacity = errors.New("capacity must be at least 1")
	ErrInvalidPrice    = errors.New("base price must not be negative")
	ErrInvalidUnits    = errors.New("total rooms must be at least 1")
)

// Type enumerates the bookable room categories.
type Type string

const (
	TypeSingle    Type = "single"
	TypeDouble    Type = "double"
	TypeSuite     Type = "suite"
	TypeDormitory Type = "dormitory"
)

// ValidTypes lists every accepted room type value.
var ValidTypes = []Type{TypeSingle, TypeDouble, TypeSuite, TypeDormitory}

// Room represents a bookable room type within a lodge.
// TotalRooms is the number of physical units of this type that exist.
// BasePriceCents is the nightly price in minor currency units.
type Room struct {
	ID             string // UUID
	LodgeID        string
	Name           string
	Description    string
	RoomType       Type
	Capacity       int // guests per unit
	BasePriceCents int64
	Currency       string
	Amenities      []string
	ImageURLs      []string
	TotalRooms     int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
