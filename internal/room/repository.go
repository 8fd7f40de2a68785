package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines data access methods for rooms.
type Repository interface {
	Create(ctx context.Context, r *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	ListByLodge(ctx context.Context, lodgeID string) ([]*Room, error)
	Update(ctx context.Context, r *Room) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var roomColumns = []string{
	"id", "lodge_id", "name", "description", "room_type", "capacity",
	"base_price_cents", "currency", "amenities", "image_urls", "total_rooms",
	"created_at", "updated_at",
}

func scanRoom(row pgx.Row, r *Room) error {
	return row.Scan(
		&r.ID, &r.LodgeID, &r.Name, &r.Description, &r.RoomType, &r.Capacity,
		&r.BasePriceCents, &r.Currency, &r.Amenities, &r.ImageURLs, &r.TotalRooms,
		&r.CreatedAt, &r.UpdatedAt,
	)
}

func (r *pgxRepository) Create(ctx context.Context, rm *Room) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.rooms").
		Columns(
			"lodge_id", "name", "description", "room_type", "capacity",
			"base_price_cents", "currency", "amenities", "image_urls", "total_rooms",
		).
		Values(
			rm.LodgeID, rm.Name, rm.Description, rm.RoomType, rm.Capacity,
			rm.BasePriceCents, rm.Currency, rm.Amenities, rm.ImageURLs, rm.TotalRooms,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create room query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&rm.ID, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
		return fmt.Errorf("create room failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(roomColumns...).
		From("public.rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get room query failed: %w", err)
	}

	var rm Room
	if err := scanRoom(r.pool.QueryRow(ctx, query, args...), &rm); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room failed: %w", err)
	}
	return &rm, nil
}

func (r *pgxRepository) ListByLodge(ctx context.Context, lodgeID string) ([]*Room, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(roomColumns...).
		From("public.rooms").
		Where(squirrel.Eq{"lodge_id": lodgeID}).
		OrderBy("base_price_cents ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list rooms query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rooms failed: %w", err)
	}
	defer rows.Close()

	var rooms []*Room
	for rows.Next() {
		var rm Room
		if err := scanRoom(rows, &rm); err != nil {
			return nil, fmt.Errorf("scan room failed: %w", err)
		}
		rooms = append(rooms, &rm)
	}

	return rooms, nil
}

func (r *pgxRepository) Update(ctx context.Context, rm *Room) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.rooms").
		Set("name", rm.Name).
		Set("description", rm.Description).
		Set("capacity", rm.Capacity).
		Set("base_price_cents", rm.BasePriceCents).
		Set("amenities", rm.Amenities).
		Set("image_urls", rm.ImageURLs).
		Set("total_rooms", rm.TotalRooms).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": rm.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update room query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update room failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
