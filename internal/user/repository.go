package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing user data from storage.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateLastLogin(ctx context.Context, id string, t time.Time) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a Repository implementation backed by pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, u *User) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.users").
		Columns("email", "password_hash", "full_name", "phone", "is_active", "is_admin").
		Values(u.Email, u.PasswordHash, u.FullName, u.Phone, u.IsActive, u.IsAdmin).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create user query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&u.ID, &u.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*User, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

func (r *pgxRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getBy(ctx, squirrel.Eq{"email": email})
}

func (r *pgxRepository) getBy(ctx context.Context, pred squirrel.Eq) (*User, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "email", "password_hash", "full_name", "phone",
		"is_active", "is_admin", "created_at", "last_login_at",
	).
		From("public.users").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get user query failed: %w", err)
	}

	var u User
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone,
		&u.IsActive, &u.IsAdmin, &u.CreatedAt, &u.LastLoginAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user failed: %w", err)
	}
	return &u, nil
}

func (r *pgxRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.users").
		Set("last_login_at", t).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update last login query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update last login failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
