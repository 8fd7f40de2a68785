package http

import (
	"time"

	"github.com/stayloft/lodge-booking-backend/internal/review"
)

// CreateReviewBody defines the payload for creating a review.
type CreateReviewBody struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// ReviewResponse is the API shape of a review.
type ReviewResponse struct {
	ID        string    `json:"id"`
	LodgeID   string    `json:"lodge_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewReviewResponse converts a domain review.Review to the API shape.
func NewReviewResponse(rv *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:        rv.ID,
		LodgeID:   rv.LodgeID,
		UserID:    rv.UserID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
		UpdatedAt: rv.UpdatedAt,
	}
}
