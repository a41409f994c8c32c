package store

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS bind_cache (
	cache_key  TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	expires_at INTEGER NOT NULL DEFAULT 0
)`

// SQLite keeps entries in a single table, suitable for sharing between
// processes on one host.
type SQLite struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// OpenSQLite opens (or creates) the database at path. A path already
// carrying query parameters or the ":memory:" name is used as given.
func OpenSQLite(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := path
	if path != ":memory:" && !strings.Contains(path, "?") {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// a single connection keeps ":memory:" databases shared
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{sqlDB: sqlDB, now: time.Now}, nil
}

func (s *SQLite) Get(key string) ([]byte, bool, error) {
	if s == nil || s.sqlDB == nil {
		return nil, false, ErrClosed
	}

	var (
		value []byte
		at    int64
	)
	err := s.sqlDB.QueryRow(
		`SELECT value, expires_at FROM bind_cache WHERE cache_key = ?`, key,
	).Scan(&value, &at)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	if expired(s.now(), at) {
		return nil, false, nil
	}

	return value, true, nil
}

func (s *SQLite) Set(key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return ErrUnknownKey
	}
	if s == nil || s.sqlDB == nil {
		return ErrClosed
	}

	_, err := s.sqlDB.Exec(
		`INSERT INTO bind_cache (cache_key, value, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, value, expiresAt(s.now(), ttl),
	)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}

	return nil
}

func (s *SQLite) Drop(prefix string) error {
	if s == nil || s.sqlDB == nil {
		return ErrClosed
	}

	_, err := s.sqlDB.Exec(
		`DELETE FROM bind_cache WHERE substr(cache_key, 1, ?) = ?`,
		utf8.RuneCountInString(prefix), prefix,
	)
	if err != nil {
		return fmt.Errorf("drop %q: %w", prefix, err)
	}

	return nil
}

// Close closes the SQLite handle.
func (s *SQLite) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	err := s.sqlDB.Close()
	s.sqlDB = nil

	return err
}
