package operator

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
	Create(ctx context.Context, o *Operator) error
	GetByID(ctx context.Context, id string) (*Operator, error)
	List(ctx context.Context, filter Filter) ([]*Operator, int, error)
	Update(ctx context.Context, o *Operator) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, o *Operator) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.operators").
		Columns("name", "contact_email", "contact_phone", "license_number", "is_active").
		Values(o.Name, o.ContactEmail, o.ContactPhone, o.LicenseNumber, o.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create operator query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateLicense
		}
		return fmt.Errorf("create operator failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Operator, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "name", "contact_email", "contact_phone", "license_number",
		"is_active", "created_at", "updated_at",
	).
		From("public.operators").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get operator query failed: %w", err)
	}

	var o Operator
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&o.ID, &o.Name, &o.ContactEmail, &o.ContactPhone, &o.LicenseNumber,
		&o.IsActive, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get operator failed: %w", err)
	}
	return &o, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Operator, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "contact_email", "contact_phone", "license_number",
		"is_active", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.operators")

	if filter.Name != "" {
		query = query.Where(squirrel.ILike{"name": "%" + filter.Name + "%"})
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

	query = query.OrderBy("name ASC").Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list operators query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list operators failed: %w", err)
	}
	defer rows.Close()

	var operators []*Operator
	var total int

	for rows.Next() {
		var o Operator
		if err := rows.Scan(
			&o.ID, &o.Name, &o.ContactEmail, &o.ContactPhone, &o.LicenseNumber,
			&o.IsActive, &o.CreatedAt, &o.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan operator failed: %w", err)
		}
		operators = append(operators, &o)
	}

	return operators, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, o *Operator) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.operators").
		Set("name", o.Name).
		Set("contact_email", o.ContactEmail).
		Set("contact_phone", o.ContactPhone).
		Set("license_number", o.LicenseNumber).
		Set("is_active", o.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": o.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update operator query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateLicense
		}
		return fmt.Errorf("update operator failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.operators").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete operator query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete operator failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
