package availability

import (
	"context"
	"errors"
	"time"

	"github.com/stayloft/lodge-booking-backend/internal/room"
)

// SetDayRequest updates one explicit ledger row (manager pricing/availability control).
// Nil fields are left unchanged; on first write they default to full availability
// at base price.
type SetDayRequest struct {
	AvailableRooms *int
	PriceCents     *int64
}

// Service is the per-room, per-night capacity authority.
type Service interface {
	// QueryCapacity reports the effective capacity and price for every night
	// in the half-open range [checkIn, checkOut).
	QueryCapacity(ctx context.Context, roomID string, checkIn, checkOut time.Time) ([]Night, error)

	// Reserve atomically holds quantity units for every night in the range.
	// Either every night is decremented or none is.
	Reserve(ctx context.Context, roomID string, checkIn, checkOut time.Time, quantity int) (*Reservation, error)

	// Release returns a reservation's units to the ledger.
	// Releasing an already-released reservation is a no-op.
	Release(ctx context.Context, reservationID string) error

	// SetDay upserts an explicit availability/price record for one date.
	SetDay(ctx context.Context, roomID string, date time.Time, req SetDayRequest) (*DayRecord, error)
}

type service struct {
	repo        Repository
	roomService room.Service
}

func NewService(repo Repository, roomService room.Service) Service {
	return &service{
		repo:        repo,
		roomService: roomService,
	}
}

func (s *service) QueryCapacity(ctx context.Context, roomID string, checkIn, checkOut time.Time) ([]Night, error) {
	if err := ValidateRange(checkIn, checkOut); err != nil {
		return nil, err
	}

	rm, err := s.roomService.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	checkIn = NormalizeDate(checkIn)
	checkOut = NormalizeDate(checkOut)

	records, err := s.repo.ListRange(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	byDate := make(map[time.Time]DayRecord, len(records))
	for _, rec := range records {
		byDate[NormalizeDate(rec.Date)] = rec
	}

	var nights []Night
	for _, d := range NightsIn(checkIn, checkOut) {
		night := Night{
			Date:           d,
			AvailableRooms: rm.TotalRooms,
			PriceCents:     rm.BasePriceCents,
		}
		if rec, ok := byDate[d]; ok {
			night.AvailableRooms = rec.AvailableRooms
			if rec.PriceCents != nil {
				night.PriceCents = *rec.PriceCents
			}
		}
		nights = append(nights, night)
	}

	return nights, nil
}

func (s *service) Reserve(ctx context.Context, roomID string, checkIn, checkOut time.Time, quantity int) (*Reservation, error) {
	if err := ValidateRange(checkIn, checkOut); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	return s.repo.Reserve(ctx, roomID, NormalizeDate(checkIn), NormalizeDate(checkOut), quantity)
}

func (s *service) Release(ctx context.Context, reservationID string) error {
	return s.repo.Release(ctx, reservationID)
}

func (s *service) SetDay(ctx context.Context, roomID string, date time.Time, req SetDayRequest) (*DayRecord, error) {
	rm, err := s.roomService.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	if req.AvailableRooms != nil {
		if *req.AvailableRooms < 0 || *req.AvailableRooms > rm.TotalRooms {
			return nil, ErrInvalidAvailability
		}
	}
	if req.PriceCents != nil && *req.PriceCents < 0 {
		return nil, ErrInvalidAvailability
	}

	return s.repo.UpsertDay(ctx, roomID, NormalizeDate(date), rm.TotalRooms, req)
}
