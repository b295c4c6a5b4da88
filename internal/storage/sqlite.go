package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteBackend keeps every key in one table of a local SQLite file
type SQLiteBackend struct {
	db     *sql.DB
	closed bool
}

// OpenSQLite opens or creates the database at path
func OpenSQLite(path string) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", sqliteError(err))
	}

	// One connection keeps writes strictly ordered
	db.SetMaxOpenConns(1)

	b := &SQLiteBackend{db: db}
	if err := b.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return b, nil
}

func (b *SQLiteBackend) migrate() error {
	migrations := []string{
		migrationCreateKV,
	}
	for i, m := range migrations {
		if _, err := b.db.Exec(m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, sqliteError(err))
		}
	}
	return nil
}

const migrationCreateKV = `
CREATE TABLE IF NOT EXISTS kv_store (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

// Get returns the value stored under key
func (b *SQLiteBackend) Get(key string) ([]byte, bool, error) {
	if b.closed {
		return nil, false, ErrUnavailable
	}

	var value string
	err := b.db.QueryRow(`SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, sqliteError(err)
	}
	return []byte(value), true, nil
}

// Put inserts or replaces key
func (b *SQLiteBackend) Put(key string, value []byte) error {
	if b.closed {
		return ErrUnavailable
	}

	_, err := b.db.Exec(`
INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), time.Now().Format(time.RFC3339))
	return sqliteError(err)
}

// Delete removes key; a missing key is not an error
func (b *SQLiteBackend) Delete(key string) error {
	if b.closed {
		return ErrUnavailable
	}
	_, err := b.db.Exec(`DELETE FROM kv_store WHERE key = ?`, key)
	return sqliteError(err)
}

// Usage sums the stored value sizes
func (b *SQLiteBackend) Usage(exclude string) (int64, error) {
	if b.closed {
		return 0, ErrUnavailable
	}
	var used int64
	err := b.db.QueryRow(`SELECT COALESCE(SUM(LENGTH(CAST(value AS BLOB))), 0) FROM kv_store WHERE key != ?`, exclude).Scan(&used)
	return used, sqliteError(err)
}

// Close closes the database
func (b *SQLiteBackend) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	return b.db.Close()
}

// sqliteError tags SQLite result codes with the gateway sentinels
func sqliteError(err error) error {
	if err == nil {
		return nil
	}
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return err
	}
	switch se.Code() & 0xff {
	case sqlite3.SQLITE_FULL:
		return fmt.Errorf("%w: %v", ErrFull, err)
	case sqlite3.SQLITE_READONLY, sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_BUSY,
		sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_PERM, sqlite3.SQLITE_NOTADB:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
