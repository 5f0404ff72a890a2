package failstore

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/emitter/pkg/emitter"
	"github.com/randalmurphal/emitter/pkg/emitter/observability"
)

// NewRecord converts a reported failure into a Record.
// Listener failures keep their ID, event, phase and stack; any other error
// gets a fresh ID and the current time.
func NewRecord(err error) Record {
	var le *emitter.ListenerError
	if errors.As(err, &le) {
		rec := Record{
			ID:        le.ID,
			Event:     string(le.Event),
			Phase:     string(le.Phase),
			Stack:     le.Stack(),
			Timestamp: le.Timestamp,
		}
		if le.Err != nil {
			rec.Message = le.Err.Error()
		}
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		if rec.Timestamp.IsZero() {
			rec.Timestamp = time.Now()
		}
		return rec
	}

	rec := Record{
		ID:        uuid.NewString(),
		Message:   err.Error(),
		Timestamp: time.Now(),
	}
	var pe *emitter.PanicError
	if errors.As(err, &pe) {
		rec.Stack = pe.Stack
	}
	return rec
}

// NewReporter returns a Reporter that saves every failure to store.
// Save errors are logged to logger and never propagated.
func NewReporter(store Store, logger *slog.Logger) emitter.Reporter {
	return emitter.ReporterFunc(func(_ context.Context, err error) {
		if err == nil {
			return
		}
		if serr := store.Save(NewRecord(err)); serr != nil {
			observability.LogStoreError(logger, "save", serr)
		}
	})
}

// WithJournal configures a hub to log failures and also save them to store.
func WithJournal(store Store, logger *slog.Logger) emitter.Option {
	return emitter.WithReporter(emitter.MultiReporter{
		emitter.LogReporter(logger),
		NewReporter(store, logger),
	})
}
