package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists search documents. The Postgres implementation keeps them
// in a JSONB table; a dedicated search engine could replace it behind
// this interface.
type Store interface {
	Get(ctx context.Context, scheduleID string) (*Document, error)
	Put(ctx context.Context, doc *Document) error
	UpdateAvailableSeats(ctx context.Context, scheduleID string, availableSeats int) error
	// Delete is idempotent; removing an absent document is not an error.
	Delete(ctx context.Context, scheduleID string) error
	Search(ctx context.Context, q Query) ([]*Document, int, error)
	Count(ctx context.Context) (int, error)
}

type pgxStore struct {
	pool *pgxpool.Pool
}

func NewPgxStore(pool *pgxpool.Pool) Store {
	return &pgxStore{pool: pool}
}

func (s *pgxStore) Get(ctx context.Context, scheduleID string) (*Document, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("document").
		From("public.search_documents").
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get document query failed: %w", err)
	}

	var raw []byte
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("get document failed: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document failed: %w", err)
	}
	return &doc, nil
}

func (s *pgxStore) Put(ctx context.Context, doc *Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.search_documents").
		Columns("schedule_id", "document").
		Values(doc.ScheduleID, raw).
		Suffix("ON CONFLICT (schedule_id) DO UPDATE SET document = EXCLUDED.document, updated_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("build put document query failed: %w", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("put document failed: %w", err)
	}
	return nil
}

func (s *pgxStore) UpdateAvailableSeats(ctx context.Context, scheduleID string, availableSeats int) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.search_documents").
		Set("document", squirrel.Expr("jsonb_set(document, '{available_seats}', to_jsonb(?::int))", availableSeats)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update available seats query failed: %w", err)
	}

	ct, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update available seats failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func (s *pgxStore) Delete(ctx context.Context, scheduleID string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.search_documents").
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete document query failed: %w", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete document failed: %w", err)
	}
	return nil
}

func (s *pgxStore) Search(ctx context.Context, q Query) ([]*Document, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("document", "count(*) OVER() as total_count").
		From("public.search_documents").
		Where(squirrel.Expr("document->>'is_active' = 'true'"))

	if q.Origin != "" {
		query = query.Where(squirrel.Expr("document->>'origin' ILIKE ?", q.Origin))
	}
	if q.Destination != "" {
		query = query.Where(squirrel.Expr("document->>'destination' ILIKE ?", q.Destination))
	}
	if q.BusType != "" {
		query = query.Where(squirrel.Expr("document->>'bus_type' = ?", q.BusType))
	}
	if q.MinPrice > 0 {
		query = query.Where(squirrel.Expr("(document->>'price')::bigint >= ?", q.MinPrice))
	}
	if q.MaxPrice > 0 {
		query = query.Where(squirrel.Expr("(document->>'price')::bigint <= ?", q.MaxPrice))
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 20
	}
	offset := (q.Page - 1) * q.PageSize

	query = query.OrderBy("document->>'departure_time' ASC").
		Limit(uint64(q.PageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build search query failed: %w", err)
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search documents failed: %w", err)
	}
	defer rows.Close()

	var docs []*Document
	var total int

	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw, &total); err != nil {
			return nil, 0, fmt.Errorf("scan document failed: %w", err)
		}
		var doc Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, 0, fmt.Errorf("decode document failed: %w", err)
		}
		docs = append(docs, &doc)
	}

	return docs, total, nil
}

func (s *pgxStore) Count(ctx context.Context) (int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("count(*)").
		From("public.search_documents").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count documents query failed: %w", err)
	}

	var count int
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count documents failed: %w", err)
	}
	return count, nil
}
