// Package observability provides structured logging, metrics, and tracing
// for the emitter hub.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry or Prometheus
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds hub context to a logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, "page")
//	enriched.Info("ready") // includes hub=page
func EnrichLogger(logger *slog.Logger, hubName string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("hub", hubName))
}

// LogSubscribe logs a listener registration.
func LogSubscribe(logger *slog.Logger, event string, once bool, listeners int) {
	if logger == nil {
		return
	}
	logger.Debug("listener subscribed",
		slog.String("event", event),
		slog.Bool("once", once),
		slog.Int("listeners", listeners),
	)
}

// LogUnsubscribe logs a listener removal.
func LogUnsubscribe(logger *slog.Logger, event string, listeners int) {
	if logger == nil {
		return
	}
	logger.Debug("listener unsubscribed",
		slog.String("event", event),
		slog.Int("listeners", listeners),
	)
}

// LogEmit logs a completed emit sweep.
func LogEmit(logger *slog.Logger, event string, listeners, results, failures int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("event emitted",
		slog.String("event", event),
		slog.Int("listeners", listeners),
		slog.Int("results", results),
		slog.Int("failures", failures),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogReplay logs an immediate replay of a cached payload.
func LogReplay(logger *slog.Logger, event string) {
	if logger == nil {
		return
	}
	logger.Debug("replaying latest payload",
		slog.String("event", event),
	)
}

// LogListenerFailure logs a listener that failed during dispatch or replay.
func LogListenerFailure(logger *slog.Logger, failureID, event, phase string, err error) {
	if logger == nil {
		return
	}
	logger.Error("listener failed",
		slog.String("failure_id", failureID),
		slog.String("event", event),
		slog.String("phase", phase),
		slog.String("error", err.Error()),
	)
}

// LogFailure logs a failure that is not tied to a specific event.
func LogFailure(logger *slog.Logger, err error) {
	if logger == nil {
		return
	}
	logger.Error("operation failed",
		slog.String("error", err.Error()),
	)
}

// LogStoreError logs a failure journal error (non-fatal).
func LogStoreError(logger *slog.Logger, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("failure store error",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
