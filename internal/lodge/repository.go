package lodge

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines data access methods for lodges.
type Repository interface {
	Create(ctx context.Context, l *Lodge) error
	GetByID(ctx context.Context, id string) (*Lodge, error)
	GetBySlug(ctx context.Context, slug string) (*Lodge, error)
	List(ctx context.Context, filter Filter) ([]*Lodge, int, error)
	Update(ctx context.Context, l *Lodge) error
	// RefreshRating recomputes rating and total_reviews from the reviews table.
	RefreshRating(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var lodgeColumns = []string{
	"id", "name", "slug", "description", "address", "city", "country", "zip_code",
	"latitude", "longitude", "image_url", "rating", "total_reviews", "amenities",
	"owner_id", "is_active", "contact_email", "contact_phone", "created_at", "updated_at",
}

func scanLodge(row pgx.Row, l *Lodge) error {
	return row.Scan(
		&l.ID, &l.Name, &l.Slug, &l.Description, &l.Address, &l.City, &l.Country, &l.ZipCode,
		&l.Latitude, &l.Longitude, &l.ImageURL, &l.Rating, &l.TotalReviews, &l.Amenities,
		&l.OwnerID, &l.IsActive, &l.ContactEmail, &l.ContactPhone, &l.CreatedAt, &l.UpdatedAt,
	)
}

func (r *pgxRepository) Create(ctx context.Context, l *Lodge) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.lodges").
		Columns(
			"name", "slug", "description", "address", "city", "country", "zip_code",
			"latitude", "longitude", "image_url", "amenities", "owner_id", "is_active",
			"contact_email", "contact_phone",
		).
		Values(
			l.Name, l.Slug, l.Description, l.Address, l.City, l.Country, l.ZipCode,
			l.Latitude, l.Longitude, l.ImageURL, l.Amenities, l.OwnerID, l.IsActive,
			l.ContactEmail, l.ContactPhone,
		).
		Suffix("RETURNING id, rating, total_reviews, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create lodge query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&l.ID, &l.Rating, &l.TotalReviews, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrSlugAlreadyUsed
		}
		return fmt.Errorf("create lodge failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Lodge, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(lodgeColumns...).
		From("public.lodges").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get lodge query failed: %w", err)
	}

	var l Lodge
	if err := scanLodge(r.pool.QueryRow(ctx, query, args...), &l); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get lodge failed: %w", err)
	}
	return &l, nil
}

func (r *pgxRepository) GetBySlug(ctx context.Context, slug string) (*Lodge, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(lodgeColumns...).
		From("public.lodges").
		Where(squirrel.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get lodge by slug query failed: %w", err)
	}

	var l Lodge
	if err := scanLodge(r.pool.QueryRow(ctx, query, args...), &l); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get lodge by slug failed: %w", err)
	}
	return &l, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Lodge, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append(append([]string{}, lodgeColumns...), "count(*) OVER() as total_count")
	query := psql.Select(cols...).From("public.lodges")

	if filter.City != "" {
		query = query.Where(squirrel.ILike{"city": filter.City})
	}
	if filter.IsActive != nil {
		query = query.Where(squirrel.Eq{"is_active": *filter.IsActive})
	}

	query = query.OrderBy("created_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list lodges query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list lodges failed: %w", err)
	}
	defer rows.Close()

	var lodges []*Lodge
	var total int

	for rows.Next() {
		var l Lodge
		if err := rows.Scan(
			&l.ID, &l.Name, &l.Slug, &l.Description, &l.Address, &l.City, &l.Country, &l.ZipCode,
			&l.Latitude, &l.Longitude, &l.ImageURL, &l.Rating, &l.TotalReviews, &l.Amenities,
			&l.OwnerID, &l.IsActive, &l.ContactEmail, &l.ContactPhone, &l.CreatedAt, &l.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan lodge failed: %w", err)
		}
		lodges = append(lodges, &l)
	}

	return lodges, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, l *Lodge) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.lodges").
		Set("name", l.Name).
		Set("description", l.Description).
		Set("address", l.Address).
		Set("city", l.City).
		Set("country", l.Country).
		Set("zip_code", l.ZipCode).
		Set("latitude", l.Latitude).
		Set("longitude", l.Longitude).
		Set("image_url", l.ImageURL).
		Set("amenities", l.Amenities).
		Set("is_active", l.IsActive).
		Set("contact_email", l.ContactEmail).
		Set("contact_phone", l.ContactPhone).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": l.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update lodge query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update lodge failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) RefreshRating(ctx context.Context, id string) error {
	// The aggregate lives on the lodge row; recompute from reviews in one statement.
	const query = `
		UPDATE public.lodges l
		SET rating = GREATEST(COALESCE(agg.avg_rating, 0), 0),
		    total_reviews = COALESCE(agg.review_count, 0),
		    updated_at = now()
		FROM (
			SELECT AVG(rating)::float8 AS avg_rating, COUNT(*) AS review_count
			FROM public.reviews
			WHERE lodge_id = $1
		) agg
		WHERE l.id = $1
	`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("refresh lodge rating failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
