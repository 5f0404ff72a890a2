package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records hub metrics.
// Use NewMetricsRecorder() for OTel metrics, NewPrometheusMetrics() for a
// Prometheus registry, or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordEmit records one emit sweep with its listener and failure counts.
	RecordEmit(ctx context.Context, event string, listeners, failures int, duration time.Duration)

	// RecordListenerFailure records a single listener failure.
	RecordListenerFailure(ctx context.Context, event, phase string)

	// RecordSubscriptions records a change in the number of registered listeners.
	RecordSubscriptions(ctx context.Context, event string, delta int64)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	emits         metric.Int64Counter
	emitLatency   metric.Float64Histogram
	failures      metric.Int64Counter
	subscriptions metric.Int64UpDownCounter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("emitter")

	emits, err := meter.Int64Counter("emitter.emit.count",
		metric.WithDescription("Number of emit sweeps"),
	)
	if err != nil {
		return nil, err
	}

	emitLatency, err := meter.Float64Histogram("emitter.emit.latency_ms",
		metric.WithDescription("Emit sweep latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter("emitter.listener.failures",
		metric.WithDescription("Number of listener failures"),
	)
	if err != nil {
		return nil, err
	}

	subscriptions, err := meter.Int64UpDownCounter("emitter.subscriptions",
		metric.WithDescription("Number of registered listeners"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		emits:         emits,
		emitLatency:   emitLatency,
		failures:      failures,
		subscriptions: subscriptions,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordEmit records an emit sweep.
func (m *otelMetrics) RecordEmit(ctx context.Context, event string, listeners, failures int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("event", event),
		attribute.Bool("failed", failures > 0),
	)
	m.emits.Add(ctx, 1, attrs)
	m.emitLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
}

// RecordListenerFailure records a listener failure.
func (m *otelMetrics) RecordListenerFailure(ctx context.Context, event, phase string) {
	m.failures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event", event),
		attribute.String("phase", phase),
	))
}

// RecordSubscriptions records a change in registered listeners.
func (m *otelMetrics) RecordSubscriptions(ctx context.Context, event string, delta int64) {
	m.subscriptions.Add(ctx, delta, metric.WithAttributes(
		attribute.String("event", event),
	))
}
