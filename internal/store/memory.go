package store

import "sync"

// Memory is an in-memory transcript used when no database is configured.
type Memory struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Record appends an entry.
func (m *Memory) Record(e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stamp(e)
	e.Seq = int64(len(m.entries)) + 1
	m.entries = append(m.entries, *e)
	return nil
}

// Recent returns up to limit of the newest entries, oldest first.
func (m *Memory) Recent(limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	start := 0
	if limit > 0 && limit < len(m.entries) {
		start = len(m.entries) - limit
	}
	out := make([]Entry, len(m.entries)-start)
	copy(out, m.entries[start:])
	return out, nil
}

// Close is a no-op for memory store.
func (m *Memory) Close() error {
	return nil
}
