package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stayloft/lodge-booking-backend/internal/auth"
	"github.com/stayloft/lodge-booking-backend/internal/photo"
	"github.com/stayloft/lodge-booking-backend/internal/pkg/response"
)

type Handler struct {
	service photo.Service
}

func NewHandler(service photo.Service) *Handler {
	return &Handler{service: service}
}

// Upload attaches a photo to a lodge. Admin or manager of the lodge.
// An optional room_id form field scopes the photo to a room type.
func (h *Handler) Upload(c *gin.Context) {
	lodgeID := c.Param("id")
	if _, err := uuid.Parse(lodgeID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if !auth.IsAdmin(c) && !auth.ManagesLodge(c, lodgeID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}

	var roomID *string
	if v := c.PostForm("room_id"); v != "" {
		if _, err := uuid.Parse(v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room_id"})
			return
		}
		roomID = &v
	}

	p, err := h.service.Upload(c.Request.Context(), photo.UploadRequest{
		LodgeID:    lodgeID,
		RoomID:     roomID,
		UploaderID: auth.GetUserID(c),
		Header:     header,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewPhotoResponse(p))
}

// ListByLodge returns all photo records of a lodge.
func (h *Handler) ListByLodge(c *gin.Context) {
	lodgeID := c.Param("id")
	if _, err := uuid.Parse(lodgeID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	photos, err := h.service.ListByLodge(c.Request.Context(), lodgeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PhotoResponse, len(photos))
	for i, p := range photos {
		items[i] = NewPhotoResponse(p)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Download streams the original photo bytes.
func (h *Handler) Download(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	rc, p, err := h.service.Download(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, p.Size, p.ContentType, rc, nil)
}

// DownloadThumbnail streams the photo's JPEG thumbnail.
func (h *Handler) DownloadThumbnail(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	rc, _, err := h.service.DownloadThumbnail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, -1, "image/jpeg", rc, nil)
}

// Delete removes a photo and its blobs. Admin or manager of the lodge.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !auth.IsAdmin(c) && !auth.ManagesLodge(c, p.LodgeID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
