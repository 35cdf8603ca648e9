package tracking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Insert(ctx context.Context, p *Point) error
	Latest(ctx context.Context, busID string) (*Point, error)
	// History returns points recorded within [from, to] in ascending
	// recorded_at order.
	History(ctx context.Context, busID string, from, to time.Time) ([]*Point, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var pointColumns = []string{
	"id", "bus_id", "latitude", "longitude", "speed_kmh", "heading_deg", "recorded_at", "created_at",
}

func scanPoint(row pgx.Row, p *Point) error {
	return row.Scan(&p.ID, &p.BusID, &p.Latitude, &p.Longitude, &p.SpeedKmh, &p.HeadingDeg, &p.RecordedAt, &p.CreatedAt)
}

func (r *pgxRepository) Insert(ctx context.Context, p *Point) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.tracking_points").
		Columns("bus_id", "latitude", "longitude", "speed_kmh", "heading_deg", "recorded_at").
		Values(p.BusID, p.Latitude, p.Longitude, p.SpeedKmh, p.HeadingDeg, p.RecordedAt).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert tracking point query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("insert tracking point failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Latest(ctx context.Context, busID string) (*Point, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(pointColumns...).
		From("public.tracking_points").
		Where(squirrel.Eq{"bus_id": busID}).
		OrderBy("recorded_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build latest tracking point query failed: %w", err)
	}

	var p Point
	if err := scanPoint(r.pool.QueryRow(ctx, query, args...), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("latest tracking point failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) History(ctx context.Context, busID string, from, to time.Time) ([]*Point, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(pointColumns...).
		From("public.tracking_points").
		Where(squirrel.Eq{"bus_id": busID}).
		Where(squirrel.GtOrEq{"recorded_at": from}).
		Where(squirrel.LtOrEq{"recorded_at": to}).
		OrderBy("recorded_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build tracking history query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("tracking history failed: %w", err)
	}
	defer rows.Close()

	var points []*Point
	for rows.Next() {
		var p Point
		if err := scanPoint(rows, &p); err != nil {
			return nil, fmt.Errorf("scan tracking point failed: %w", err)
		}
		points = append(points, &p)
	}

	return points, nil
}
