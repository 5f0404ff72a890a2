package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the emitter tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("emitter")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartEmitSpan starts a span for one emit sweep.
	// Returns the context with span and the span itself.
	StartEmitSpan(ctx context.Context, hubName, event string) (context.Context, trace.Span)

	// EndEmitSpan records the sweep outcome on the span and ends it.
	EndEmitSpan(span trace.Span, listeners, failures int)

	// RecordFailure attaches a listener failure to the span in context.
	RecordFailure(ctx context.Context, err error)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct {
	tracer trace.Tracer
}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{tracer: tracer}
}

// NewSpanManagerFromProvider returns a SpanManager that creates spans with tp
// instead of the global provider.
func NewSpanManagerFromProvider(tp trace.TracerProvider) SpanManager {
	return &otelSpanManager{tracer: tp.Tracer("emitter")}
}

// StartEmitSpan starts a span for an emit sweep.
func (m *otelSpanManager) StartEmitSpan(ctx context.Context, hubName, event string) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "emitter.emit",
		trace.WithAttributes(
			attribute.String("hub.name", hubName),
			attribute.String("event.name", event),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndEmitSpan completes an emit span.
// Listener failures are absorbed by the hub, so the span status stays Ok.
func (m *otelSpanManager) EndEmitSpan(span trace.Span, listeners, failures int) {
	if span == nil {
		return
	}
	span.SetAttributes(
		attribute.Int("event.listeners", listeners),
		attribute.Int("event.failures", failures),
	)
	span.SetStatus(codes.Ok, "")
	span.End()
}

// RecordFailure records err on the current span.
func (m *otelSpanManager) RecordFailure(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() || err == nil {
		return
	}
	span.RecordError(err)
}
