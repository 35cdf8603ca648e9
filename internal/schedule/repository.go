package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, s *Schedule) error
	GetByID(ctx context.Context, id string) (*Schedule, error)
	List(ctx context.Context, filter Filter) ([]*Schedule, int, error)
	// ListAll returns every schedule without pagination; used by the
	// search index reconciliation sweep.
	ListAll(ctx context.Context) ([]*Schedule, error)
	Update(ctx context.Context, s *Schedule) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var scheduleColumns = []string{
	"id", "bus_id", "route_id", "departure_time", "arrival_time",
	"price", "is_recurring", "days_of_week", "is_active", "created_at", "updated_at",
}

func scanSchedule(row pgx.Row, s *Schedule, extra ...any) error {
	dest := []any{
		&s.ID, &s.BusID, &s.RouteID, &s.DepartureTime, &s.ArrivalTime,
		&s.Price, &s.IsRecurring, &s.DaysOfWeek, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r *pgxRepository) Create(ctx context.Context, s *Schedule) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.schedules").
		Columns("bus_id", "route_id", "departure_time", "arrival_time",
			"price", "is_recurring", "days_of_week", "is_active").
		Values(s.BusID, s.RouteID, s.DepartureTime, s.ArrivalTime,
			s.Price, s.IsRecurring, s.DaysOfWeek, s.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create schedule query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return fmt.Errorf("create schedule failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Schedule, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(scheduleColumns...).
		From("public.schedules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get schedule query failed: %w", err)
	}

	var s Schedule
	if err := scanSchedule(r.pool.QueryRow(ctx, query, args...), &s); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get schedule failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Schedule, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append(append([]string{}, scheduleColumns...), "count(*) OVER() as total_count")
	query := psql.Select(cols...).From("public.schedules")

	if filter.BusID != "" {
		query = query.Where(squirrel.Eq{"bus_id": filter.BusID})
	}
	if filter.RouteID != "" {
		query = query.Where(squirrel.Eq{"route_id": filter.RouteID})
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

	query = query.OrderBy("departure_time ASC").Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list schedules query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list schedules failed: %w", err)
	}
	defer rows.Close()

	var schedules []*Schedule
	var total int

	for rows.Next() {
		var s Schedule
		if err := scanSchedule(rows, &s, &total); err != nil {
			return nil, 0, fmt.Errorf("scan schedule failed: %w", err)
		}
		schedules = append(schedules, &s)
	}

	return schedules, total, nil
}

func (r *pgxRepository) ListAll(ctx context.Context) ([]*Schedule, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(scheduleColumns...).
		From("public.schedules").
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list all schedules query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list all schedules failed: %w", err)
	}
	defer rows.Close()

	var schedules []*Schedule
	for rows.Next() {
		var s Schedule
		if err := scanSchedule(rows, &s); err != nil {
			return nil, fmt.Errorf("scan schedule failed: %w", err)
		}
		schedules = append(schedules, &s)
	}

	return schedules, nil
}

func (r *pgxRepository) Update(ctx context.Context, s *Schedule) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.schedules").
		Set("departure_time", s.DepartureTime).
		Set("arrival_time", s.ArrivalTime).
		Set("price", s.Price).
		Set("is_recurring", s.IsRecurring).
		Set("days_of_week", s.DaysOfWeek).
		Set("is_active", s.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": s.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update schedule query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update schedule failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.schedules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete schedule query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete schedule failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
