// Package store keeps a transcript of evaluated inputs.
package store

import "time"

// Entry is one evaluated input and its outcome.
type Entry struct {
	Seq     int64 // Assigned by the store, starting at 1
	Input   string
	Result  string // Octal result; empty when the evaluation failed
	Kind    string // Error kind from calcerr.KindOf; empty on success
	Message string // Error text; empty on success
	Time    time.Time
}

// Failed reports whether the evaluation produced an error.
func (e Entry) Failed() bool {
	return e.Kind != ""
}

// Store is the interface for transcript persistence.
type Store interface {
	// Record appends e, assigning its Seq (and Time when zero).
	Record(e *Entry) error
	// Recent returns up to limit of the newest entries, oldest first.
	// A limit of zero or less returns every entry.
	Recent(limit int) ([]Entry, error)
	// Close releases resources.
	Close() error
}

// Open returns a SQLite store at path, or a memory store when path is empty.
func Open(path string) (Store, error) {
	if path == "" {
		return NewMemory(), nil
	}
	return NewSQLite(path)
}

func stamp(e *Entry) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	e.Time = e.Time.UTC()
}
