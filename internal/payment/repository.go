package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id string) (*Payment, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*Payment, error)
	ListByBooking(ctx context.Context, bookingID string) ([]*Payment, error)
	UpdateStatus(ctx context.Context, id string, status Status, gatewayMessage string) error
	ExistsSuccessful(ctx context.Context, bookingID string) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var paymentColumns = []string{
	"id", "booking_id", "transaction_id", "amount", "method",
	"status", "gateway_message", "created_at", "updated_at",
}

func scanPayment(row pgx.Row, p *Payment) error {
	return row.Scan(&p.ID, &p.BookingID, &p.TransactionID, &p.Amount, &p.Method,
		&p.Status, &p.GatewayMessage, &p.CreatedAt, &p.UpdatedAt)
}

func (r *pgxRepository) Create(ctx context.Context, p *Payment) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.payments").
		Columns("booking_id", "transaction_id", "amount", "method", "status", "gateway_message").
		Values(p.BookingID, p.TransactionID, p.Amount, p.Method, p.Status, p.GatewayMessage).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create payment query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("create payment failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Payment, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

func (r *pgxRepository) GetByTransactionID(ctx context.Context, transactionID string) (*Payment, error) {
	return r.getBy(ctx, squirrel.Eq{"transaction_id": transactionID})
}

func (r *pgxRepository) getBy(ctx context.Context, cond squirrel.Eq) (*Payment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(paymentColumns...).
		From("public.payments").
		Where(cond).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get payment query failed: %w", err)
	}

	var p Payment
	if err := scanPayment(r.pool.QueryRow(ctx, query, args...), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get payment failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) ListByBooking(ctx context.Context, bookingID string) ([]*Payment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(paymentColumns...).
		From("public.payments").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list payments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments failed: %w", err)
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		var p Payment
		if err := scanPayment(rows, &p); err != nil {
			return nil, fmt.Errorf("scan payment failed: %w", err)
		}
		payments = append(payments, &p)
	}

	return payments, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status, gatewayMessage string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Update("public.payments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id})
	if gatewayMessage != "" {
		query = query.Set("gateway_message", gatewayMessage)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build update payment status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update payment status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ExistsSuccessful(ctx context.Context, bookingID string) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("1").
		From("public.payments").
		Where(squirrel.Eq{"booking_id": bookingID}).
		Where(squirrel.Eq{"status": StatusSuccess}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build successful payment query failed: %w", err)
	}

	var one int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check successful payment failed: %w", err)
	}
	return true, nil
}
