package email

import (
	"context"
	"log"

	"github.com/stayloft/lodge-booking-backend/internal/events"
)

// Sender delivers guest-facing notifications for booking events.
// The current implementation only logs; a real mail transport plugs in here.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

// Send dispatches a notification for the given booking event.
func (s *Sender) Send(ctx context.Context, event events.BookingEvent) error {
	log.Printf("notify user %s: %s for booking %s (status=%s payment=%s)",
		event.UserID, event.Type, event.BookingID, event.Status, event.PaymentStatus)
	return nil
}
