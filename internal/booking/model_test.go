package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusCheckedIn},
		{StatusConfirmed, StatusCancelled},
		{StatusCheckedIn, StatusCheckedOut},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to Status }{
		{StatusPending, StatusCheckedIn},
		{StatusPending, StatusCheckedOut},
		{StatusConfirmed, StatusPending},
		{StatusCheckedIn, StatusCancelled},
		{StatusCheckedIn, StatusConfirmed},
		{StatusCheckedOut, StatusCancelled},
		{StatusCheckedOut, StatusCheckedIn},
		{StatusCancelled, StatusConfirmed},
		{StatusCancelled, StatusPending},
	}
	for _, tc := range denied {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestCanTransitionPayment(t *testing.T) {
	assert.True(t, CanTransitionPayment(PaymentPending, PaymentCompleted))
	assert.True(t, CanTransitionPayment(PaymentPending, PaymentFailed))
	assert.True(t, CanTransitionPayment(PaymentCompleted, PaymentRefunded))

	assert.False(t, CanTransitionPayment(PaymentPending, PaymentRefunded))
	assert.False(t, CanTransitionPayment(PaymentCompleted, PaymentPending))
	assert.False(t, CanTransitionPayment(PaymentFailed, PaymentCompleted))
	assert.False(t, CanTransitionPayment(PaymentRefunded, PaymentCompleted))
}

func TestBookingNights(t *testing.T) {
	b := &Booking{
		CheckIn:  time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 3, b.Nights())
}
