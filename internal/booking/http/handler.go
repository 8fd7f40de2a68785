package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stayloft/lodge-booking-backend/internal/auth"
	"github.com/stayloft/lodge-booking-backend/internal/availability"
	"github.com/stayloft/lodge-booking-backend/internal/booking"
	"github.com/stayloft/lodge-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// Create books rooms for the authenticated user.
func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	checkIn, _ := time.Parse(availability.DateFormat, body.CheckIn)
	checkOut, _ := time.Parse(availability.DateFormat, body.CheckOut)

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		UserID:          auth.GetUserID(c),
		RoomID:          body.RoomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          body.Guests,
		Rooms:           body.Rooms,
		SpecialRequests: body.SpecialRequests,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		case errors.Is(err, availability.ErrInsufficientCapacity):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, availability.ErrInvalidRange),
			errors.Is(err, availability.ErrRangeTooLong),
			errors.Is(err, booking.ErrInvalidGuests),
			errors.Is(err, booking.ErrInvalidRoomCount),
			errors.Is(err, booking.ErrTooManyRooms),
			errors.Is(err, booking.ErrTooManyGuests):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// Get returns a booking visible to its owner, an admin, or the manager of
// its lodge.
func (h *Handler) Get(c *gin.Context) {
	b, ok := h.loadVisible(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// List returns bookings scoped by role: customers see their own, managers
// see their lodge's, admins see everything with optional filters.
func (h *Handler) List(c *gin.Context) {
	var query ListBookingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := booking.Filter{Page: query.Page, PageSize: query.PageSize}
	if query.Status != "" {
		status := booking.Status(query.Status)
		filter.Status = &status
	}

	switch auth.GetRole(c) {
	case auth.RoleAdmin:
		if query.UserID != "" {
			filter.UserID = &query.UserID
		}
		if query.LodgeID != "" {
			filter.LodgeID = &query.LodgeID
		}
	case auth.RoleLodgeManager:
		lodgeID := auth.GetLodgeID(c)
		filter.LodgeID = &lodgeID
	default:
		userID := auth.GetUserID(c)
		filter.UserID = &userID
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

// Cancel cancels a pending or confirmed booking and returns its rooms to
// the calendar.
func (h *Handler) Cancel(c *gin.Context) {
	b, ok := h.loadVisible(c)
	if !ok {
		return
	}

	cancelled, err := h.service.Cancel(c.Request.Context(), b.ID)
	if err != nil {
		h.writeTransitionError(c, err, "failed to cancel booking")
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(cancelled))
}

// CheckIn marks the guest as arrived. Admin or manager of the lodge.
func (h *Handler) CheckIn(c *gin.Context) {
	b, ok := h.loadStaff(c)
	if !ok {
		return
	}

	updated, err := h.service.CheckIn(c.Request.Context(), b.ID)
	if err != nil {
		if errors.Is(err, booking.ErrPaymentNotComplete) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.writeTransitionError(c, err, "failed to check in booking")
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(updated))
}

// CheckOut marks the stay as finished. Admin or manager of the lodge.
func (h *Handler) CheckOut(c *gin.Context) {
	b, ok := h.loadStaff(c)
	if !ok {
		return
	}

	updated, err := h.service.CheckOut(c.Request.Context(), b.ID)
	if err != nil {
		h.writeTransitionError(c, err, "failed to check out booking")
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(updated))
}

// MarkRefunded records a completed refund payout. Admin only.
func (h *Handler) MarkRefunded(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	updated, err := h.service.MarkRefunded(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		case errors.Is(err, booking.ErrAlreadyProcessed), errors.Is(err, booking.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "refund not applicable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark booking refunded"})
		}
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(updated))
}

// loadVisible fetches the booking and checks owner/admin/manager visibility.
// On failure it writes the response and returns false.
func (h *Handler) loadVisible(c *gin.Context) (*booking.Booking, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return nil, false
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get booking"})
		return nil, false
	}

	if b.UserID != auth.GetUserID(c) && !auth.IsAdmin(c) && !auth.ManagesLodge(c, b.LodgeID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return nil, false
	}
	return b, true
}

// loadStaff fetches the booking and requires admin or lodge-manager access.
func (h *Handler) loadStaff(c *gin.Context) (*booking.Booking, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return nil, false
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get booking"})
		return nil, false
	}

	if !auth.IsAdmin(c) && !auth.ManagesLodge(c, b.LodgeID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return nil, false
	}
	return b, true
}

func (h *Handler) writeTransitionError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, booking.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
	case errors.Is(err, booking.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
