package bus

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
	Create(ctx context.Context, b *Bus) error
	GetByID(ctx context.Context, id string) (*Bus, error)
	List(ctx context.Context, filter Filter) ([]*Bus, int, error)
	Update(ctx context.Context, b *Bus) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Bus) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.buses").
		Columns("operator_id", "bus_number", "bus_type", "total_seats", "amenities", "is_active").
		Values(b.OperatorID, b.BusNumber, b.BusType, b.TotalSeats, b.Amenities, b.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create bus query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateBusNumber
		}
		return fmt.Errorf("create bus failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Bus, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "operator_id", "bus_number", "bus_type", "total_seats",
		"amenities", "is_active", "created_at", "updated_at",
	).
		From("public.buses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get bus query failed: %w", err)
	}

	var b Bus
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.OperatorID, &b.BusNumber, &b.BusType, &b.TotalSeats,
		&b.Amenities, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get bus failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Bus, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "operator_id", "bus_number", "bus_type", "total_seats",
		"amenities", "is_active", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.buses")

	if filter.OperatorID != "" {
		query = query.Where(squirrel.Eq{"operator_id": filter.OperatorID})
	}
	if filter.BusType != "" {
		query = query.Where(squirrel.Eq{"bus_type": filter.BusType})
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

	query = query.OrderBy("bus_number ASC").Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list buses query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list buses failed: %w", err)
	}
	defer rows.Close()

	var buses []*Bus
	var total int

	for rows.Next() {
		var b Bus
		if err := rows.Scan(
			&b.ID, &b.OperatorID, &b.BusNumber, &b.BusType, &b.TotalSeats,
			&b.Amenities, &b.IsActive, &b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan bus failed: %w", err)
		}
		buses = append(buses, &b)
	}

	return buses, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Bus) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.buses").
		Set("bus_number", b.BusNumber).
		Set("bus_type", b.BusType).
		Set("total_seats", b.TotalSeats).
		Set("amenities", b.Amenities).
		Set("is_active", b.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update bus query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateBusNumber
		}
		return fmt.Errorf("update bus failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.buses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete bus query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete bus failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
