package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// Current schema version
const SchemaVersion = "1"

// SQLite is a SQLite-backed transcript.
type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLite opens or creates a transcript database at path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS transcript (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			input TEXT NOT NULL,
			result TEXT NOT NULL,
			kind TEXT NOT NULL,
			message TEXT NOT NULL,
			ts TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema in %s: %w", path, err)
	}

	s := &SQLite{db: db}

	// No locking: nothing else can see s yet.
	version, err := s.getMetadata("schema_version")
	if err != nil {
		db.Close()
		return nil, err
	}
	switch version {
	case "":
		if err := s.setMetadata("schema_version", SchemaVersion); err != nil {
			db.Close()
			return nil, err
		}
	case SchemaVersion:
	default:
		db.Close()
		return nil, fmt.Errorf("store: unsupported schema version: %s (expected %s)", version, SchemaVersion)
	}

	return s, nil
}

// Record appends an entry.
func (s *SQLite) Record(e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp(e)
	res, err := s.db.Exec(`
		INSERT INTO transcript (input, result, kind, message, ts) VALUES (?, ?, ?, ?, ?)
	`, e.Input, e.Result, e.Kind, e.Message, e.Time.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("store: record: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("store: record: %w", err)
	}
	e.Seq = seq
	return nil
}

// Recent returns up to limit of the newest entries, oldest first.
func (s *SQLite) Recent(limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.Query(`
		SELECT seq, input, result, kind, message, ts FROM (
			SELECT * FROM transcript ORDER BY seq DESC LIMIT ?
		) ORDER BY seq ASC
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: recent: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.Seq, &e.Input, &e.Result, &e.Kind, &e.Message, &ts); err != nil {
			return nil, fmt.Errorf("store: recent: %w", err)
		}
		if e.Time, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("store: entry %d: bad timestamp %q: %w", e.Seq, ts, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// getMetadata reads a metadata value, or "" when key is unset.
func (s *SQLite) getMetadata(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// setMetadata upserts a metadata value.
func (s *SQLite) setMetadata(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
