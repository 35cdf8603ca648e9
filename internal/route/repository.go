package route

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

type Repository interface {
	Create(ctx context.Context, rt *Route) error
	GetByID(ctx context.Context, id string) (*Route, error)
	List(ctx context.Context, filter Filter) ([]*Route, int, error)
	Update(ctx context.Context, rt *Route) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rt *Route) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.routes").
		Columns("origin", "destination", "distance_km", "estimated_duration_hours", "is_active").
		Values(rt.Origin, rt.Destination, rt.DistanceKm, rt.EstimatedDurationHours, rt.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create route query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&rt.ID, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateRoute
		}
		return fmt.Errorf("create route failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Route, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "origin", "destination", "distance_km", "estimated_duration_hours",
		"is_active", "created_at", "updated_at",
	).
		From("public.routes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get route query failed: %w", err)
	}

	var rt Route
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&rt.ID, &rt.Origin, &rt.Destination, &rt.DistanceKm, &rt.EstimatedDurationHours,
		&rt.IsActive, &rt.CreatedAt, &rt.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get route failed: %w", err)
	}
	return &rt, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Route, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "origin", "destination", "distance_km", "estimated_duration_hours",
		"is_active", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.routes")

	if filter.Origin != "" {
		query = query.Where(squirrel.ILike{"origin": filter.Origin})
	}
	if filter.Destination != "" {
		query = query.Where(squirrel.ILike{"destination": filter.Destination})
	}
	if filter.IsActive != nil {
		query = query.Where(squirrel.Eq{"is_active": *filter.IsActive})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.OrderBy("origin ASC", "destination ASC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list routes query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list routes failed: %w", err)
	}
	defer rows.Close()

	var routes []*Route
	var total int

	for rows.Next() {
		var rt Route
		if err := rows.Scan(
			&rt.ID, &rt.Origin, &rt.Destination, &rt.DistanceKm, &rt.EstimatedDurationHours,
			&rt.IsActive, &rt.CreatedAt, &rt.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan route failed: %w", err)
		}
		routes = append(routes, &rt)
	}

	return routes, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, rt *Route) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.routes").
		Set("origin", rt.Origin).
		Set("destination", rt.Destination).
		Set("distance_km", rt.DistanceKm).
		Set("estimated_duration_hours", rt.EstimatedDurationHours).
		Set("is_active", rt.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": rt.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update route query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateRoute
		}
		return fmt.Errorf("update route failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.routes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete route query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete route failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
