package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines storage access for bookings. Status and payment writes
// are guarded by the expected current state so concurrent updates cannot
// skip transitions.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	GetByPaymentReference(ctx context.Context, reference string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, from, to Status) error
	UpdatePaymentStatus(ctx context.Context, id string, from, to PaymentStatus) error
	MarkPaymentCompleted(ctx context.Context, id string) error
	SetPaymentReference(ctx context.Context, id, reference string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var bookingColumns = []string{
	"id", "user_id", "lodge_id", "room_id", "reservation_id",
	"check_in", "check_out", "guests", "rooms",
	"total_price_cents", "currency", "status", "payment_status",
	"payment_reference", "special_requests", "created_at", "updated_at",
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.UserID, &b.LodgeID, &b.RoomID, &b.ReservationID,
		&b.CheckIn, &b.CheckOut, &b.Guests, &b.Rooms,
		&b.TotalPriceCents, &b.Currency, &b.Status, &b.PaymentStatus,
		&b.PaymentReference, &b.SpecialRequests, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns(
			"user_id", "lodge_id", "room_id", "reservation_id",
			"check_in", "check_out", "guests", "rooms",
			"total_price_cents", "currency", "status", "payment_status",
			"special_requests",
		).
		Values(
			b.UserID, b.LodgeID, b.RoomID, b.ReservationID,
			b.CheckIn, b.CheckOut, b.Guests, b.Rooms,
			b.TotalPriceCents, b.Currency, b.Status, b.PaymentStatus,
			b.SpecialRequests,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) GetByPaymentReference(ctx context.Context, reference string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"payment_reference": reference}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking by reference query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking by reference failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Select(append(bookingColumns, "count(*) OVER() AS total_count")...).
		From("public.bookings").
		OrderBy("created_at DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64((filter.Page - 1) * filter.PageSize))

	if filter.UserID != nil {
		builder = builder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.LodgeID != nil {
		builder = builder.Where(squirrel.Eq{"lodge_id": *filter.LodgeID})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		var b Booking
		err := rows.Scan(
			&b.ID, &b.UserID, &b.LodgeID, &b.RoomID, &b.ReservationID,
			&b.CheckIn, &b.CheckOut, &b.Guests, &b.Rooms,
			&b.TotalPriceCents, &b.Currency, &b.Status, &b.PaymentStatus,
			&b.PaymentReference, &b.SpecialRequests, &b.CreatedAt, &b.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE public.bookings
		 SET status = $3, updated_at = now()
		 WHERE id = $1 AND status = $2`,
		id, from, to,
	)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return r.notFoundOrConflict(ctx, id, ErrInvalidTransition)
	}
	return nil
}

func (r *pgxRepository) UpdatePaymentStatus(ctx context.Context, id string, from, to PaymentStatus) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE public.bookings
		 SET payment_status = $3, updated_at = now()
		 WHERE id = $1 AND payment_status = $2`,
		id, from, to,
	)
	if err != nil {
		return fmt.Errorf("update payment status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return r.notFoundOrConflict(ctx, id, ErrAlreadyProcessed)
	}
	return nil
}

// MarkPaymentCompleted completes the payment and confirms the booking in one
// guarded write, so a duplicate webhook delivery cannot double-confirm.
func (r *pgxRepository) MarkPaymentCompleted(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE public.bookings
		 SET payment_status = 'completed',
		     status = CASE WHEN status = 'pending' THEN 'confirmed' ELSE status END,
		     updated_at = now()
		 WHERE id = $1 AND payment_status = 'pending'`,
		id,
	)
	if err != nil {
		return fmt.Errorf("complete payment failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return r.notFoundOrConflict(ctx, id, ErrAlreadyProcessed)
	}
	return nil
}

func (r *pgxRepository) SetPaymentReference(ctx context.Context, id, reference string) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE public.bookings
		 SET payment_reference = $2, updated_at = now()
		 WHERE id = $1 AND payment_reference IS NULL`,
		id, reference,
	)
	if err != nil {
		return fmt.Errorf("set payment reference failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return r.notFoundOrConflict(ctx, id, ErrAlreadyProcessed)
	}
	return nil
}

// notFoundOrConflict resolves a zero-row guarded update into the right error.
func (r *pgxRepository) notFoundOrConflict(ctx context.Context, id string, conflict error) error {
	var exists bool
	if err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM public.bookings WHERE id = $1)`, id,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check booking failed: %w", err)
	}
	if !exists {
		return ErrNotFound
	}
	return conflict
}
