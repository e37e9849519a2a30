// Package store implements the analytics event store on DuckDB. The rest
// of the system treats it as an opaque columnar engine reachable through
// two append-only inserts and a SQL-text query primitive.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
	"unicode/utf8"

	_ "github.com/duckdb/duckdb-go/v2" // duckdb driver

	"docsight/internal/domain"
)

// Table names for the two event datasets.
const (
	RawEventsTable   = "raw_events"
	VisitEventsTable = "visit_events"
)

// Store wraps a DuckDB connection holding the two event tables.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the DuckDB database at path and ensures the
// event tables exist. An empty path opens an in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	s := &Store{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing DuckDB handle and ensures the event tables exist.
func New(ctx context.Context, db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ` + RawEventsTable + ` (
			event_id      VARCHAR NOT NULL,
			ts            TIMESTAMP NOT NULL,
			host          VARCHAR NOT NULL,
			path          VARCHAR NOT NULL,
			user_agent    VARCHAR NOT NULL,
			accept_header VARCHAR NOT NULL,
			country       VARCHAR NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ` + VisitEventsTable + ` (
			event_id    VARCHAR NOT NULL,
			ts          TIMESTAMP NOT NULL,
			host        VARCHAR NOT NULL,
			path        VARCHAR NOT NULL,
			category    VARCHAR NOT NULL,
			agent       VARCHAR NOT NULL,
			country     VARCHAR NOT NULL,
			is_filtered TINYINT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create event tables: %w", err)
		}
	}
	return nil
}

// WriteRawEvent appends an immutable raw event. Header fields are
// truncated to the storage cap before insert.
func (s *Store) WriteRawEvent(ctx context.Context, e domain.RawEvent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO `+RawEventsTable+` (event_id, ts, host, path, user_agent, accept_header, country)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.EventID, e.Timestamp, e.Host, e.Path,
		truncate(e.UserAgent, domain.MaxHeaderLen),
		truncate(e.AcceptHeader, domain.MaxHeaderLen),
		e.Country,
	)
	if err != nil {
		return fmt.Errorf("write raw event: %w", err)
	}
	return nil
}

// WriteVisitEvent appends a derived visit event.
func (s *Store) WriteVisitEvent(ctx context.Context, e domain.VisitEvent) error {
	filtered := 0
	if e.IsFiltered {
		filtered = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO `+VisitEventsTable+` (event_id, ts, host, path, category, agent, country, is_filtered)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.EventID, e.Timestamp, e.Host, e.Path, string(e.Category), e.Agent, e.Country, filtered,
	)
	if err != nil {
		return fmt.Errorf("write visit event: %w", err)
	}
	return nil
}

// Query executes a SQL query and materializes the result as generic rows.
// The SQL text must already be fully rendered; this layer does no
// parameter binding.
func (s *Store) Query(ctx context.Context, sqlText string) ([]domain.Row, error) {
	rows, err := s.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []domain.Row
	vals := make([]interface{}, len(cols))
	ptrs := make([]interface{}, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(domain.Row, len(cols))
		for i, c := range cols {
			row[c] = normalize(vals[i])
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// normalize converts driver-specific scan values into JSON-friendly types.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return v
	}
}

// truncate caps s at max bytes without splitting a multi-byte rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
