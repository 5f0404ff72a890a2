package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupMetricsTest creates a test meter provider and returns a function to collect metrics.
func setupMetricsTest(t *testing.T) (*sdkmetric.ManualReader, func()) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	originalProvider := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)

	cleanup := func() {
		otel.SetMeterProvider(originalProvider)
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down meter provider: %v", err)
		}
	}

	return reader, cleanup
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return &rm
}

func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// sumFor returns the int64 sum datapoint value whose attribute key equals value.
func sumFor(t *testing.T, m *metricdata.Metrics, key, value string) (int64, bool) {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "Expected Sum type")
	for _, dp := range sum.DataPoints {
		if v, ok := dp.Attributes.Value(attribute.Key(key)); ok && v.AsString() == value {
			return dp.Value, true
		}
	}
	return 0, false
}

func TestNewMetricsRecorder(t *testing.T) {
	_, cleanup := setupMetricsTest(t)
	defer cleanup()

	recorder := NewMetricsRecorder()
	require.NotNil(t, recorder)

	_, isNoop := recorder.(NoopMetrics)
	assert.False(t, isNoop, "Expected real metrics recorder, got noop")
}

func TestOtelRecordEmit(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("counts sweeps per event", func(t *testing.T) {
		m.RecordEmit(ctx, "scroll", 2, 0, time.Millisecond)
		m.RecordEmit(ctx, "scroll", 2, 0, time.Millisecond)

		rm := collectMetrics(t, reader)
		metric := findMetric(rm, "emitter.emit.count")
		require.NotNil(t, metric)

		v, found := sumFor(t, metric, "event", "scroll")
		require.True(t, found)
		assert.Equal(t, int64(2), v)
	})

	t.Run("records latency", func(t *testing.T) {
		m.RecordEmit(ctx, "mounted", 1, 0, 3*time.Millisecond)

		rm := collectMetrics(t, reader)
		metric := findMetric(rm, "emitter.emit.latency_ms")
		require.NotNil(t, metric)

		hist, ok := metric.Data.(metricdata.Histogram[float64])
		require.True(t, ok, "Expected Histogram type")
		assert.NotEmpty(t, hist.DataPoints)
	})
}

func TestOtelRecordListenerFailure(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	m.RecordListenerFailure(context.Background(), "exposure", "emit")

	rm := collectMetrics(t, reader)
	metric := findMetric(rm, "emitter.listener.failures")
	require.NotNil(t, metric)

	v, found := sumFor(t, metric, "event", "exposure")
	require.True(t, found)
	assert.Equal(t, int64(1), v)
}

func TestOtelRecordSubscriptions(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordSubscriptions(ctx, "scroll", 1)
	m.RecordSubscriptions(ctx, "scroll", 1)
	m.RecordSubscriptions(ctx, "scroll", -1)

	rm := collectMetrics(t, reader)
	metric := findMetric(rm, "emitter.subscriptions")
	require.NotNil(t, metric)

	v, found := sumFor(t, metric, "event", "scroll")
	require.True(t, found)
	assert.Equal(t, int64(1), v)
}
