package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stayloft/lodge-booking-backend/internal/auth"
	"github.com/stayloft/lodge-booking-backend/internal/availability"
	"github.com/stayloft/lodge-booking-backend/internal/room"
)

type Handler struct {
	service     availability.Service
	roomService room.Service
}

func NewHandler(service availability.Service, roomService room.Service) *Handler {
	return &Handler{service: service, roomService: roomService}
}

// QueryCapacity returns per-night availability and pricing for a room
// over a half-open [check_in, check_out) range.
func (h *Handler) QueryCapacity(c *gin.Context) {
	roomID := c.Param("id")
	if _, err := uuid.Parse(roomID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var query CapacityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	checkIn, _ := time.Parse(availability.DateFormat, query.CheckIn)
	checkOut, _ := time.Parse(availability.DateFormat, query.CheckOut)

	nights, err := h.service.QueryCapacity(c.Request.Context(), roomID, checkIn, checkOut)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		case errors.Is(err, availability.ErrInvalidRange),
			errors.Is(err, availability.ErrRangeTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query availability"})
		}
		return
	}

	items := make([]NightResponse, len(nights))
	for i, n := range nights {
		items[i] = NewNightResponse(n)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// SetDay writes an explicit availability/price record for one date.
// Admin or manager of the owning lodge.
func (h *Handler) SetDay(c *gin.Context) {
	roomID := c.Param("id")
	if _, err := uuid.Parse(roomID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	rm, err := h.roomService.GetByID(c.Request.Context(), roomID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get room"})
		return
	}

	if !auth.IsAdmin(c) && !auth.ManagesLodge(c, rm.LodgeID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	var body SetDayBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date, _ := time.Parse(availability.DateFormat, body.Date)

	rec, err := h.service.SetDay(c.Request.Context(), roomID, date, availability.SetDayRequest{
		AvailableRooms: body.AvailableRooms,
		PriceCents:     body.PriceCents,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		case errors.Is(err, availability.ErrInvalidAvailability):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update availability"})
		}
		return
	}

	c.JSON(http.StatusOK, NewDayRecordResponse(rec))
}
