package failstore

import (
	"sort"
	"sync"
)

// MemoryStore is an in-memory failure store.
// Records are lost when the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	records []storedRecord
	index   map[string]int // ID -> position in records
	seq     int64
	closed  bool
}

// storedRecord keeps insertion order to break timestamp ties.
type storedRecord struct {
	Record
	seq int64
}

// NewMemoryStore creates a new in-memory failure store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		index: make(map[string]int),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	m.seq++
	stored := storedRecord{Record: rec, seq: m.seq}
	if i, ok := m.index[rec.ID]; ok {
		m.records[i] = stored
		return nil
	}
	m.index[rec.ID] = len(m.records)
	m.records = append(m.records, stored)
	return nil
}

// Get implements Store.
func (m *MemoryStore) Get(id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Record{}, ErrStoreClosed
	}

	i, ok := m.index[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return m.records[i].Record, nil
}

// List implements Store.
func (m *MemoryStore) List(event string, limit int) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	matched := make([]storedRecord, 0, len(m.records))
	for _, r := range m.records {
		if event == "" || r.Event == event {
			matched = append(matched, r)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.After(b.Timestamp)
		}
		return a.seq > b.seq
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	out := make([]Record, len(matched))
	for i, r := range matched {
		out[i] = r.Record
	}
	return out, nil
}

// Count implements Store.
func (m *MemoryStore) Count(event string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, ErrStoreClosed
	}

	if event == "" {
		return len(m.records), nil
	}
	n := 0
	for _, r := range m.records {
		if r.Event == event {
			n++
		}
	}
	return n, nil
}

// Purge implements Store.
func (m *MemoryStore) Purge(event string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, ErrStoreClosed
	}

	kept := m.records[:0]
	removed := 0
	for _, r := range m.records {
		if event == "" || r.Event == event {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	m.records = kept

	m.index = make(map[string]int, len(kept))
	for i, r := range kept {
		m.index[r.ID] = i
	}
	return removed, nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.records = nil
	m.index = nil
	return nil
}
