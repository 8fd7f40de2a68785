package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// Late evening in New York is already the next day in UTC.
	in := time.Date(2026, 7, 1, 22, 30, 0, 0, loc)
	got := NormalizeDate(in)
	assert.Equal(t, time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC), got)

	assert.Equal(t,
		time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		NormalizeDate(time.Date(2026, 7, 1, 13, 45, 12, 99, time.UTC)))
}

func TestNightsIn(t *testing.T) {
	checkIn := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)

	nights := NightsIn(checkIn, checkOut)
	assert.Equal(t, []time.Time{
		time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC),
	}, nights, "checkout day is not occupied")

	assert.Empty(t, NightsIn(checkIn, checkIn))
}

func TestValidateRange(t *testing.T) {
	day := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateRange(day, day.AddDate(0, 0, 1)))
	assert.ErrorIs(t, ValidateRange(day, day), ErrInvalidRange)
	assert.ErrorIs(t, ValidateRange(day, day.AddDate(0, 0, -1)), ErrInvalidRange)
	assert.ErrorIs(t, ValidateRange(day, day.AddDate(0, 0, MaxStayNights+1)), ErrRangeTooLong)
	assert.NoError(t, ValidateRange(day, day.AddDate(0, 0, MaxStayNights)))
}
