package observability

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// promMetrics implements MetricsRecorder on a Prometheus registry.
type promMetrics struct {
	emits         *prometheus.CounterVec
	emitDuration  *prometheus.HistogramVec
	failures      *prometheus.CounterVec
	subscriptions *prometheus.GaugeVec
}

// NewPrometheusMetrics registers the hub collectors on reg and returns a
// recorder that updates them. Collectors already registered by an earlier
// call are reused, so several hubs can share one registry.
func NewPrometheusMetrics(reg prometheus.Registerer) (MetricsRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	emits, err := register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "emitter",
			Name:      "emits_total",
			Help:      "Total number of emit sweeps",
		},
		[]string{"event"},
	))
	if err != nil {
		return nil, err
	}

	emitDuration, err := register(reg, prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "emitter",
			Name:      "emit_duration_seconds",
			Help:      "Duration of emit sweeps in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"event"},
	))
	if err != nil {
		return nil, err
	}

	failures, err := register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "emitter",
			Name:      "listener_failures_total",
			Help:      "Total number of listener failures",
		},
		[]string{"event", "phase"},
	))
	if err != nil {
		return nil, err
	}

	subscriptions, err := register(reg, prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "emitter",
			Name:      "subscriptions",
			Help:      "Registered listeners per event",
		},
		[]string{"event"},
	))
	if err != nil {
		return nil, err
	}

	return &promMetrics{
		emits:         emits,
		emitDuration:  emitDuration,
		failures:      failures,
		subscriptions: subscriptions,
	}, nil
}

// register registers c, returning the existing collector if an identical one
// is already registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordEmit records an emit sweep.
func (m *promMetrics) RecordEmit(_ context.Context, event string, _, _ int, duration time.Duration) {
	m.emits.WithLabelValues(event).Inc()
	m.emitDuration.WithLabelValues(event).Observe(duration.Seconds())
}

// RecordListenerFailure records a listener failure.
func (m *promMetrics) RecordListenerFailure(_ context.Context, event, phase string) {
	m.failures.WithLabelValues(event, phase).Inc()
}

// RecordSubscriptions records a change in registered listeners.
func (m *promMetrics) RecordSubscriptions(_ context.Context, event string, delta int64) {
	m.subscriptions.WithLabelValues(event).Add(float64(delta))
}
