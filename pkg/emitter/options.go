package emitter

import (
	"log/slog"

	"github.com/randalmurphal/emitter/pkg/emitter/config"
	"github.com/randalmurphal/emitter/pkg/emitter/observability"
)

// hubConfig holds hub construction settings.
type hubConfig struct {
	name     string
	logger   *slog.Logger
	reporter Reporter
	metrics  observability.MetricsRecorder
	spans    observability.SpanManager
	tracing  bool
}

func defaultHubConfig() hubConfig {
	return hubConfig{
		name:    config.DefaultName,
		logger:  slog.Default(),
		metrics: observability.NoopMetrics{},
	}
}

// Option configures a Hub.
type Option func(*hubConfig)

// WithName sets the hub name used in logs, metrics and spans.
// Default: "default"
func WithName(name string) Option {
	return func(c *hubConfig) {
		if name != "" {
			c.name = name
		}
	}
}

// WithLogger sets the hub logger. Every line carries hub=<name>.
// Default: slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return func(c *hubConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithReporter sets where listener failures are delivered.
// Default: a reporter that logs to the hub logger.
//
// Use MultiReporter to keep logging while also persisting failures:
//
//	emitter.WithReporter(emitter.MultiReporter{
//	    emitter.LogReporter(logger),
//	    failstore.NewReporter(store, logger),
//	})
func WithReporter(r Reporter) Option {
	return func(c *hubConfig) {
		c.reporter = r
	}
}

// WithMetrics sets the metrics recorder.
// Default: observability.NoopMetrics{}
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *hubConfig) {
		if m == nil {
			m = observability.NoopMetrics{}
		}
		c.metrics = m
	}
}

// WithTracing enables OpenTelemetry spans around every emit using the global
// tracer provider.
// Default: false
func WithTracing(enabled bool) Option {
	return func(c *hubConfig) {
		c.tracing = enabled
		if !enabled {
			c.spans = nil
		}
	}
}

// WithSpanManager sets a custom span manager and enables tracing.
func WithSpanManager(sm observability.SpanManager) Option {
	return func(c *hubConfig) {
		c.spans = sm
		c.tracing = sm != nil
	}
}

// SubscribeOption configures a single subscription.
type SubscribeOption func(*subscribeConfig)

type subscribeConfig struct {
	immediate bool
}

// WithImmediate replays the most recently emitted payload to the new
// listener, if one has been emitted.
func WithImmediate() SubscribeOption {
	return func(c *subscribeConfig) {
		c.immediate = true
	}
}

// OptionsFromConfig maps configuration keys to hub options.
//
// Recognised keys: name, metrics, metrics_backend, tracing. A Prometheus
// backend registers on prometheus.DefaultRegisterer; if that fails the hub
// records no metrics.
func OptionsFromConfig(cfg config.Config) []Option {
	s := cfg.Settings()
	opts := []Option{
		WithName(s.Name),
		WithTracing(s.Tracing),
	}
	if !s.Metrics {
		return opts
	}

	switch s.MetricsBackend {
	case config.BackendPrometheus:
		m, err := observability.NewPrometheusMetrics(nil)
		if err != nil {
			slog.Warn("prometheus metrics unavailable, using no-op recorder",
				slog.String("error", err.Error()))
			m = observability.NoopMetrics{}
		}
		opts = append(opts, WithMetrics(m))
	default:
		opts = append(opts, WithMetrics(observability.NewMetricsRecorder()))
	}
	return opts
}
