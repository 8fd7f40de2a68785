package http

import (
	"time"

	"github.com/stayloft/lodge-booking-backend/internal/photo"
)

// PhotoResponse is the API shape of a photo record.
type PhotoResponse struct {
	ID           string    `json:"id"`
	LodgeID      string    `json:"lodge_id"`
	RoomID       *string   `json:"room_id,omitempty"`
	Filename     string    `json:"filename"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewPhotoResponse converts a domain photo.Photo to the API shape.
func NewPhotoResponse(p *photo.Photo) PhotoResponse {
	resp := PhotoResponse{
		ID:          p.ID,
		LodgeID:     p.LodgeID,
		RoomID:      p.RoomID,
		Filename:    p.Filename,
		ContentType: p.ContentType,
		Size:        p.Size,
		URL:         "/v1/photos/" + p.ID + "/content",
		CreatedAt:   p.CreatedAt,
	}
	if p.ThumbnailPath != nil {
		resp.ThumbnailURL = "/v1/photos/" + p.ID + "/thumbnail"
	}
	return resp
}
