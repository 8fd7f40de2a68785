package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stayloft/lodge-booking-backend/internal/auth"
	"github.com/stayloft/lodge-booking-backend/internal/room"
)

type Handler struct {
	service room.Service
}

func NewHandler(service room.Service) *Handler {
	return &Handler{service: service}
}

// ListByLodge returns all room types of a lodge.
func (h *Handler) ListByLodge(c *gin.Context) {
	lodgeID := c.Param("id")
	if _, err := uuid.Parse(lodgeID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	rooms, err := h.service.ListByLodge(c.Request.Context(), lodgeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rooms"})
		return
	}

	items := make([]RoomResponse, len(rooms))
	for i, r := range rooms {
		items[i] = NewRoomResponse(r)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Get returns a single room type by ID.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get room"})
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(r))
}

// Create creates a room type. Admin or manager of the target lodge.
func (h *Handler) Create(c *gin.Context) {
	var body CreateRoomBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if !auth.IsAdmin(c) && !auth.ManagesLodge(c, body.LodgeID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	r, err := h.service.Create(c.Request.Context(), room.CreateRequest{
		LodgeID:        body.LodgeID,
		Name:           body.Name,
		Description:    body.Description,
		RoomType:       body.RoomType,
		Capacity:       body.Capacity,
		BasePriceCents: body.BasePriceCents,
		Currency:       body.Currency,
		Amenities:      body.Amenities,
		ImageURLs:      body.ImageURLs,
		TotalRooms:     body.TotalRooms,
	})
	if err != nil {
		switch {
		case errors.Is(err, room.ErrInvalidLodge):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, room.ErrEmptyName),
			errors.Is(err, room.ErrInvalidRoomType),
			errors.Is(err, room.ErrInvalidCapacity),
			errors.Is(err, room.ErrInvalidPrice),
			errors.Is(err, room.ErrInvalidUnits):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewRoomResponse(r))
}

// Update modifies a room type. Admin or manager of the owning lodge.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	existing, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get room"})
		return
	}

	if !auth.IsAdmin(c) && !auth.ManagesLodge(c, existing.LodgeID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	var body UpdateRoomBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	r, err := h.service.Update(c.Request.Context(), id, room.UpdateRequest{
		Name:           body.Name,
		Description:    body.Description,
		Capacity:       body.Capacity,
		BasePriceCents: body.BasePriceCents,
		Amenities:      body.Amenities,
		ImageURLs:      body.ImageURLs,
		TotalRooms:     body.TotalRooms,
	})
	if err != nil {
		switch {
		case errors.Is(err, room.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		case errors.Is(err, room.ErrEmptyName),
			errors.Is(err, room.ErrInvalidCapacity),
			errors.Is(err, room.ErrInvalidPrice),
			errors.Is(err, room.ErrInvalidUnits):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update room"})
		}
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(r))
}
