package photo

import (
	"net/http"
	"time"

	"github.com/stayloft/lodge-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound       = apperror.New(http.StatusNotFound, "photo not found")
	ErrNotAnImage     = apperror.New(http.StatusBadRequest, "uploaded file is not an image")
	ErrFileTooLarge   = apperror.New(http.StatusBadRequest, "uploaded file exceeds the size limit")
	ErrInvalidSubject = apperror.New(http.StatusBadRequest, "photo must belong to a lodge")
)

// MaxUploadBytes bounds a single photo upload.
const MaxUploadBytes = 10 << 20 // 10 MiB

// Photo is an uploaded image attached to a lodge, optionally scoped to one
// of its room types.
type Photo struct {
	ID            string // UUID
	LodgeID       string
	RoomID        *string
	UploaderID    string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}
