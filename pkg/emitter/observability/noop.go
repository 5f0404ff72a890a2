package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics is a MetricsRecorder that does nothing.
// Use when metrics are disabled to avoid overhead.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordEmit does nothing.
func (NoopMetrics) RecordEmit(_ context.Context, _ string, _, _ int, _ time.Duration) {}

// RecordListenerFailure does nothing.
func (NoopMetrics) RecordListenerFailure(_ context.Context, _, _ string) {}

// RecordSubscriptions does nothing.
func (NoopMetrics) RecordSubscriptions(_ context.Context, _ string, _ int64) {}

// NoopSpanManager is a SpanManager that does nothing.
// Use when tracing is disabled to avoid overhead.
type NoopSpanManager struct{}

// Compile-time interface check.
var _ SpanManager = NoopSpanManager{}

var noopSpan = noop.Span{}

// StartEmitSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartEmitSpan(ctx context.Context, _, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// EndEmitSpan does nothing.
func (NoopSpanManager) EndEmitSpan(_ trace.Span, _, _ int) {}

// RecordFailure does nothing.
func (NoopSpanManager) RecordFailure(_ context.Context, _ error) {}
