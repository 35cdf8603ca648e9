package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// WithTx runs fn inside a single database transaction. Repository
	// calls made with the context passed to fn join that transaction.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	CreateBooking(ctx context.Context, b *Booking) error
	CreateSeatHolds(ctx context.Context, holds []*SeatHold) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	GetByReference(ctx context.Context, reference string) (*Booking, error)
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error

	// ReleaseSeats marks every live seat hold of a booking as released.
	// Hold rows are retained for audit; only released_at changes.
	ReleaseSeats(ctx context.Context, bookingID string, releasedAt time.Time) error

	// LiveSeatNumbers returns the seat numbers currently held for a
	// schedule on a travel date, in ascending order.
	LiveSeatNumbers(ctx context.Context, scheduleID string, travelDate time.Time) ([]int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so repository
// methods run against whichever the context carries.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *pgxRepository) conn(ctx context.Context) querier {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *pgxRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

var bookingColumns = []string{
	"id", "user_id", "schedule_id", "booking_reference", "travel_date",
	"total_seats", "total_amount", "status", "created_at", "updated_at",
}

func scanBooking(row pgx.Row, b *Booking, extra ...any) error {
	dest := []any{
		&b.ID, &b.UserID, &b.ScheduleID, &b.Reference, &b.TravelDate,
		&b.TotalSeats, &b.TotalAmount, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r *pgxRepository) CreateBooking(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("user_id", "schedule_id", "booking_reference", "travel_date",
			"total_seats", "total_amount", "status").
		Values(b.UserID, b.ScheduleID, b.Reference, b.TravelDate,
			b.TotalSeats, b.TotalAmount, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.conn(ctx).QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrReferenceTaken
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) CreateSeatHolds(ctx context.Context, holds []*SeatHold) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	ins := psql.Insert("public.seat_bookings").
		Columns("booking_id", "schedule_id", "travel_date", "seat_number",
			"passenger_name", "passenger_age", "passenger_gender")
	for _, h := range holds {
		ins = ins.Values(h.BookingID, h.ScheduleID, h.TravelDate, h.SeatNumber,
			h.PassengerName, h.PassengerAge, h.PassengerGender)
	}

	query, args, err := ins.ToSql()
	if err != nil {
		return fmt.Errorf("build create seat holds query failed: %w", err)
	}

	if _, err := r.conn(ctx).Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			// The partial unique index on live holds rejected a seat
			// that another transaction claimed first.
			return ErrSeatUnavailable
		}
		return fmt.Errorf("create seat holds failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

func (r *pgxRepository) GetByReference(ctx context.Context, reference string) (*Booking, error) {
	return r.getBy(ctx, squirrel.Eq{"booking_reference": reference})
}

func (r *pgxRepository) getBy(ctx context.Context, cond squirrel.Eq) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(cond).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	if err := scanBooking(r.conn(ctx).QueryRow(ctx, query, args...), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}

	seats, err := r.seatHolds(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	b.Seats = seats
	return &b, nil
}

func (r *pgxRepository) seatHolds(ctx context.Context, bookingID string) ([]SeatHold, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "booking_id", "schedule_id", "travel_date",
		"seat_number", "passenger_name", "passenger_age", "passenger_gender",
		"released_at", "created_at").
		From("public.seat_bookings").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("seat_number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get seat holds query failed: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get seat holds failed: %w", err)
	}
	defer rows.Close()

	var holds []SeatHold
	for rows.Next() {
		var h SeatHold
		if err := rows.Scan(&h.ID, &h.BookingID, &h.ScheduleID, &h.TravelDate,
			&h.SeatNumber, &h.PassengerName, &h.PassengerAge, &h.PassengerGender,
			&h.ReleasedAt, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan seat hold failed: %w", err)
		}
		holds = append(holds, h)
	}

	return holds, nil
}

func (r *pgxRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append(append([]string{}, bookingColumns...), "count(*) OVER() as total_count")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query, args, err := psql.Select(cols...).
		From("public.bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := scanBooking(rows, &b, &total); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.conn(ctx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ReleaseSeats(ctx context.Context, bookingID string, releasedAt time.Time) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.seat_bookings").
		Set("released_at", releasedAt).
		Where(squirrel.Eq{"booking_id": bookingID}).
		Where(squirrel.Eq{"released_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build release seats query failed: %w", err)
	}

	if _, err := r.conn(ctx).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("release seats failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) LiveSeatNumbers(ctx context.Context, scheduleID string, travelDate time.Time) ([]int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("seat_number").
		From("public.seat_bookings").
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		Where(squirrel.Eq{"travel_date": travelDate}).
		Where(squirrel.Eq{"released_at": nil}).
		OrderBy("seat_number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build live seat numbers query failed: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("live seat numbers failed: %w", err)
	}
	defer rows.Close()

	var seats []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan seat number failed: %w", err)
		}
		seats = append(seats, n)
	}

	return seats, nil
}
