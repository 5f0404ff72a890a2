// Package failstore keeps a journal of listener failures reported by a hub.
//
// The journal stores failure reports, never event payloads. Wire it into a
// hub with WithJournal and inspect it later with emitterctl.
package failstore

import (
	"errors"
	"time"
)

// Store persists failure records.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a record. A record with the same ID is replaced.
	Save(rec Record) error

	// Get retrieves a record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	Get(id string) (Record, error)

	// List returns records for event, newest first. An empty event lists
	// every record; limit <= 0 means no limit.
	// Returns empty slice (not error) if nothing matches.
	List(event string, limit int) ([]Record, error)

	// Count returns the number of records for event, or of all records
	// when event is empty.
	Count(event string) (int, error)

	// Purge deletes records for event, or every record when event is empty,
	// and returns how many were removed.
	Purge(event string) (int, error)

	// Close releases any resources (connections, files).
	Close() error
}

// Record is one listener failure.
type Record struct {
	ID        string
	Event     string
	Phase     string
	Message   string
	Stack     string
	Timestamp time.Time
}

// Sentinel errors for failure store operations.
var (
	// ErrNotFound indicates a record doesn't exist.
	ErrNotFound = errors.New("failure record not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("failure store closed")
)
