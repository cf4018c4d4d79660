package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotq/internal/shared"
)

// SQLite persists entries in the cache_entries table.
//
// Entries survive process restarts and are never expired by this backend.
type SQLite struct {
	db     *sql.DB
	owned  bool
	logger *log.Logger
}

// OpenSQLite opens (or creates) the database at path and applies migrations.
func OpenSQLite(path string, maxOpenConns int, logger *log.Logger) (*SQLite, error) {
	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, err
	}

	if path != ":memory:" {
		shared.ConfigureDatabase(db, maxOpenConns, maxOpenConns)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s := NewSQLite(db, logger)
	s.owned = true
	return s, nil
}

// NewSQLite wraps an existing, migrated database. The caller keeps ownership of db.
func NewSQLite(db *sql.DB, logger *log.Logger) *SQLite {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &SQLite{db: db, logger: shared.WithLogger(logger, "cache", NameSQLite)}
}

func (s *SQLite) Fetch(ctx context.Context, key string) (string, bool) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM cache_entries WHERE cache_key = ?`, key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("failed to fetch cache entry", "key", key, "error", err)
		}
		return "", false
	}
	return value, true
}

func (s *SQLite) Store(ctx context.Context, key, value string) string {
	now := time.Now().UTC()
	query := `
		INSERT INTO cache_entries (id, cache_key, value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, shared.GenerateID(), key, value, now, now); err != nil {
		s.logger.Warn("failed to store cache entry", "key", key, "error", err)
	}
	return value
}

// Delete removes key.
func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE cache_key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

func (s *SQLite) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries`); err != nil {
		return fmt.Errorf("failed to clear cache entries: %w", err)
	}
	return nil
}

func (s *SQLite) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cache_entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return n, nil
}

// Close closes the database when it was opened by [OpenSQLite].
func (s *SQLite) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}
