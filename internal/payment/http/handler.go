package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stayloft/lodge-booking-backend/internal/auth"
	"github.com/stayloft/lodge-booking-backend/internal/booking"
	"github.com/stayloft/lodge-booking-backend/internal/payment"
)

type Handler struct {
	provider payment.Provider
	bookings booking.Service
}

func NewHandler(provider payment.Provider, bookings booking.Service) *Handler {
	return &Handler{provider: provider, bookings: bookings}
}

// CreateIntent creates (or returns the previously created) payment intent
// for a pending booking. Only the booking's owner can pay for it.
func (h *Handler) CreateIntent(c *gin.Context) {
	var body CreateIntentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.bookings.GetByID(c.Request.Context(), body.BookingID)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get booking"})
		return
	}

	if b.UserID != auth.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}
	if b.PaymentStatus != booking.PaymentPending && b.PaymentStatus != booking.PaymentFailed {
		c.JSON(http.StatusConflict, gin.H{"error": "payment has already been processed"})
		return
	}

	// Repeated requests reuse the stored reference instead of opening a
	// second intent with the provider.
	if b.PaymentReference != nil {
		c.JSON(http.StatusOK, IntentResponse{
			BookingID:   b.ID,
			Reference:   *b.PaymentReference,
			AmountCents: b.TotalPriceCents,
			Currency:    b.Currency,
		})
		return
	}

	intent, err := h.provider.CreateIntent(c.Request.Context(), b.TotalPriceCents, b.Currency)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment provider unavailable"})
		return
	}

	if err := h.bookings.AttachPaymentReference(c.Request.Context(), b.ID, intent.Reference); err != nil {
		if errors.Is(err, booking.ErrAlreadyProcessed) {
			// Lost the race against a concurrent intent request; return the
			// reference that won.
			fresh, err := h.bookings.GetByID(c.Request.Context(), b.ID)
			if err == nil && fresh.PaymentReference != nil {
				c.JSON(http.StatusOK, IntentResponse{
					BookingID:   fresh.ID,
					Reference:   *fresh.PaymentReference,
					AmountCents: fresh.TotalPriceCents,
					Currency:    fresh.Currency,
				})
				return
			}
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record payment intent"})
		return
	}

	c.JSON(http.StatusCreated, IntentResponse{
		BookingID:    b.ID,
		Reference:    intent.Reference,
		ClientSecret: intent.ClientSecret,
		AmountCents:  intent.AmountCents,
		Currency:     intent.Currency,
	})
}

// Webhook receives the provider's payment outcome and advances the booking.
// Duplicate deliveries are acknowledged without side effects.
func (h *Handler) Webhook(c *gin.Context) {
	var body WebhookBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.bookings.GetByPaymentReference(c.Request.Context(), body.Reference)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown payment reference"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve payment reference"})
		return
	}

	switch body.Status {
	case "succeeded":
		_, err = h.bookings.ConfirmPayment(c.Request.Context(), b.ID)
	case "failed":
		_, err = h.bookings.FailPayment(c.Request.Context(), b.ID)
	}
	if err != nil {
		if errors.Is(err, booking.ErrAlreadyProcessed) {
			c.JSON(http.StatusOK, gin.H{"status": "already processed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process payment outcome"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
