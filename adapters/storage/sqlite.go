// Package storage - SQLite backend
package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"crewcost/core/types"
	"crewcost/internal/errors"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore is a Store backed by a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and runs any
// pending migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Storage("create database directory", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Storage("open sqlite database", err)
	}

	if _, err := db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA foreign_keys = ON;
		PRAGMA busy_timeout = 5000;
	`); err != nil {
		db.Close()
		return nil, errors.Storage("set sqlite pragmas", err)
	}

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, errors.Storage("set goose dialect", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, errors.Storage("run migrations", err)
	}

	return &SQLiteStore{db: db}, nil
}

// SaveQuote stores a quote
func (s *SQLiteStore) SaveQuote(ctx context.Context, quote *StoredQuote) error {
	if quote.ID == "" {
		quote.ID = uuid.NewString()
	}
	if quote.CreatedAt.IsZero() {
		quote.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(quote)
	if err != nil {
		return errors.Storage("encode quote", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO quotes (id, reference, created_at, payload, breakdown)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			reference = excluded.reference,
			payload = excluded.payload,
			breakdown = excluded.breakdown
	`, quote.ID, quote.Reference, quote.CreatedAt.Format(time.RFC3339Nano), string(payload), quote.Breakdown)
	if err != nil {
		return errors.Storage("insert quote", err)
	}
	return nil
}

// GetQuote retrieves a quote by ID
func (s *SQLiteStore) GetQuote(ctx context.Context, id string) (*StoredQuote, error) {
	row := s.db.QueryRowContext(ctx, `SELECT payload FROM quotes WHERE id = ?`, id)
	return scanQuote(row, id)
}

// ListQuotes lists quotes, newest first
func (s *SQLiteStore) ListQuotes(ctx context.Context, filter *ListFilter) ([]*StoredQuote, error) {
	query := `SELECT payload FROM quotes`
	var args []interface{}
	if filter != nil && filter.Reference != "" {
		query += ` WHERE reference = ? COLLATE NOCASE`
		args = append(args, filter.Reference)
	}
	query += ` ORDER BY created_at DESC, id`
	if filter != nil && filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Storage("list quotes", err)
	}
	defer rows.Close()

	var out []*StoredQuote
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, errors.Storage("scan quote", err)
		}
		var q StoredQuote
		if err := json.Unmarshal([]byte(payload), &q); err != nil {
			return nil, errors.Storage("decode quote", err)
		}
		out = append(out, &q)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage("iterate quotes", err)
	}
	return out, nil
}

// DeleteQuote removes a quote
func (s *SQLiteStore) DeleteQuote(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = ?`, id)
	if err != nil {
		return errors.Storage("delete quote", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Storage("delete quote", err)
	}
	if n == 0 {
		return errors.NotFound("quote", id)
	}
	return nil
}

// LatestQuote returns the newest quote for a reference
func (s *SQLiteStore) LatestQuote(ctx context.Context, reference string) (*StoredQuote, error) {
	quotes, err := s.ListQuotes(ctx, &ListFilter{Reference: reference, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, errors.NotFound("quote", reference)
	}
	return quotes[0], nil
}

// GetRates returns the stored settings or the documented defaults
func (s *SQLiteStore) GetRates(ctx context.Context) (types.RateSettings, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM rate_settings WHERE id = 1`).Scan(&payload)
	if err == sql.ErrNoRows {
		return types.DefaultRateSettings(), nil
	}
	if err != nil {
		return types.RateSettings{}, errors.Storage("read rate settings", err)
	}

	var rates types.RateSettings
	if err := json.Unmarshal([]byte(payload), &rates); err != nil {
		return types.RateSettings{}, errors.Storage("decode rate settings", err)
	}
	return rates, nil
}

// PutRates replaces the current settings
func (s *SQLiteStore) PutRates(ctx context.Context, rates types.RateSettings) error {
	payload, err := json.Marshal(rates)
	if err != nil {
		return errors.Storage("encode rate settings", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO rate_settings (id, payload) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload
	`, string(payload))
	if err != nil {
		return errors.Storage("write rate settings", err)
	}
	return nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanQuote(row *sql.Row, id string) (*StoredQuote, error) {
	var payload string
	err := row.Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("quote", id)
	}
	if err != nil {
		return nil, errors.Storage("read quote", err)
	}

	var q StoredQuote
	if err := json.Unmarshal([]byte(payload), &q); err != nil {
		return nil, errors.Storage("decode quote", err)
	}
	return &q, nil
}

// Open picks a backend by name. Unknown names fall back to memory.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "sqlite":
		return OpenSQLite(path)
	default:
		return NewMemoryStore(), nil
	}
}
