package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reserveMaxAttempts bounds retries when concurrent reservations contend on
// the same date rows. Past the budget the request fails instead of blocking.
const reserveMaxAttempts = 3

// Repository defines storage access for the availability ledger.
type Repository interface {
	ListRange(ctx context.Context, roomID string, from, to time.Time) ([]DayRecord, error)
	Reserve(ctx context.Context, roomID string, checkIn, checkOut time.Time, quantity int) (*Reservation, error)
	Release(ctx context.Context, reservationID string) error
	UpsertDay(ctx context.Context, roomID string, date time.Time, totalRooms int, req SetDayRequest) (*DayRecord, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) ListRange(ctx context.Context, roomID string, from, to time.Time) ([]DayRecord, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("room_id", "date", "available_rooms", "price_cents").
		From("public.room_availability").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.Lt{"date": to}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list availability query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list availability failed: %w", err)
	}
	defer rows.Close()

	var records []DayRecord
	for rows.Next() {
		var rec DayRecord
		if err := rows.Scan(&rec.RoomID, &rec.Date, &rec.AvailableRooms, &rec.PriceCents); err != nil {
			return nil, fmt.Errorf("scan availability record failed: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// reserveNightSQL decrements one date's counter if enough units remain,
// synthesizing the row at default availability when it does not exist yet.
// No row returned means the date cannot satisfy the quantity.
const reserveNightSQL = `
	INSERT INTO public.room_availability (room_id, date, available_rooms, price_cents)
	SELECT r.id, $2::date, r.total_rooms - $3, NULL
	FROM public.rooms r
	WHERE r.id = $1 AND r.total_rooms >= $3
	ON CONFLICT (room_id, date) DO UPDATE
	SET available_rooms = room_availability.available_rooms - $3
	WHERE room_availability.available_rooms >= $3
	RETURNING available_rooms,
		COALESCE(price_cents, (SELECT base_price_cents FROM public.rooms WHERE id = $1))
`

func (r *pgxRepository) Reserve(ctx context.Context, roomID string, checkIn, checkOut time.Time, quantity int) (*Reservation, error) {
	var res *Reservation
	var err error

	for attempt := 0; attempt < reserveMaxAttempts; attempt++ {
		res, err = r.reserveOnce(ctx, roomID, checkIn, checkOut, quantity)
		if err == nil || !isRetryable(err) {
			return res, err
		}
	}

	// Contention persisted past the retry budget; report it as a capacity
	// conflict so the caller re-queries instead of blocking.
	return nil, ErrInsufficientCapacity
}

func (r *pgxRepository) reserveOnce(ctx context.Context, roomID string, checkIn, checkOut time.Time, quantity int) (*Reservation, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin reserve tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Resolve the room first so a missing room is not mistaken for a full one.
	var totalRooms int
	if err := tx.QueryRow(ctx,
		`SELECT total_rooms FROM public.rooms WHERE id = $1`, roomID,
	).Scan(&totalRooms); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("load room for reserve failed: %w", err)
	}

	// Nights are processed in ascending order; concurrent overlapping
	// reservations therefore acquire row locks in the same order and
	// serialize per room instead of deadlocking.
	nights := NightsIn(checkIn, checkOut)
	reserved := make([]ReservedNight, 0, len(nights))
	for _, d := range nights {
		var remaining int
		var priceCents int64
		err := tx.QueryRow(ctx, reserveNightSQL, roomID, d, quantity).Scan(&remaining, &priceCents)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrInsufficientCapacity
			}
			return nil, fmt.Errorf("reserve night %s failed: %w", d.Format(DateFormat), err)
		}
		reserved = append(reserved, ReservedNight{Date: d, PriceCents: priceCents})
	}

	res := &Reservation{
		RoomID:   roomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Quantity: quantity,
		Nights:   reserved,
	}
	if err := tx.QueryRow(ctx,
		`INSERT INTO public.room_reservations (room_id, check_in, check_out, quantity)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		roomID, checkIn, checkOut, quantity,
	).Scan(&res.ID, &res.CreatedAt); err != nil {
		return nil, fmt.Errorf("create reservation failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit reserve tx failed: %w", err)
	}
	return res, nil
}

func (r *pgxRepository) Release(ctx context.Context, reservationID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin release tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// The guarded update makes release idempotent: an already-released
	// reservation matches no row and the counters stay untouched.
	var roomID string
	var checkIn, checkOut time.Time
	var quantity int
	err = tx.QueryRow(ctx,
		`UPDATE public.room_reservations
		 SET released = true, released_at = now()
		 WHERE id = $1 AND NOT released
		 RETURNING room_id, check_in, check_out, quantity`,
		reservationID,
	).Scan(&roomID, &checkIn, &checkOut, &quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if err := tx.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM public.room_reservations WHERE id = $1)`,
				reservationID,
			).Scan(&exists); err != nil {
				return fmt.Errorf("check reservation failed: %w", err)
			}
			if !exists {
				return ErrReservationNotFound
			}
			return nil
		}
		return fmt.Errorf("release reservation failed: %w", err)
	}

	for _, d := range NightsIn(checkIn, checkOut) {
		ct, err := tx.Exec(ctx,
			`UPDATE public.room_availability
			 SET available_rooms = available_rooms + $3
			 WHERE room_id = $1 AND date = $2`,
			roomID, d, quantity,
		)
		if err != nil {
			return fmt.Errorf("restore night %s failed: %w", d.Format(DateFormat), err)
		}
		// Reserve always materializes the row, so a missing one is a ledger bug.
		if ct.RowsAffected() == 0 {
			return fmt.Errorf("restore night %s failed: ledger record missing", d.Format(DateFormat))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit release tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) UpsertDay(ctx context.Context, roomID string, date time.Time, totalRooms int, req SetDayRequest) (*DayRecord, error) {
	availableRooms := totalRooms
	if req.AvailableRooms != nil {
		availableRooms = *req.AvailableRooms
	}

	// COALESCE keeps the unset side of the record intact on repeat writes.
	const query = `
		INSERT INTO public.room_availability (room_id, date, available_rooms, price_cents)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (room_id, date) DO UPDATE
		SET available_rooms = COALESCE($5, room_availability.available_rooms),
		    price_cents = COALESCE($4, room_availability.price_cents)
		RETURNING room_id, date, available_rooms, price_cents
	`

	var rec DayRecord
	err := r.pool.QueryRow(ctx, query, roomID, date, availableRooms, req.PriceCents, req.AvailableRooms).
		Scan(&rec.RoomID, &rec.Date, &rec.AvailableRooms, &rec.PriceCents)
	if err != nil {
		return nil, fmt.Errorf("upsert availability record failed: %w", err)
	}
	return &rec, nil
}

// isRetryable reports whether the error is a transient transaction conflict.
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
}
