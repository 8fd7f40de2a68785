package review

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("review not found")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrInvalidLodge    = errors.New("invalid lodge_id")
	ErrAlreadyReviewed = errors.New("user has already reviewed this lodge")
)

// Review is a guest's rating and comment for a lodge. Each user can review
// a lodge at most once.
type Review struct {
	ID        string // UUID
	LodgeID   string
	UserID    string
	Rating    int // 1..5
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
