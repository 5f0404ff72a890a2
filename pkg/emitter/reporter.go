package emitter

import (
	"context"
	"errors"
	"log/slog"

	"github.com/randalmurphal/emitter/pkg/emitter/observability"
)

// Reporter receives failures recovered by Run.
// Implementations must not panic; a panicking reporter is logged and ignored.
type Reporter interface {
	Report(ctx context.Context, err error)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, err error)

// Report calls f.
func (f ReporterFunc) Report(ctx context.Context, err error) {
	f(ctx, err)
}

// MultiReporter fans a failure out to several reporters in order.
type MultiReporter []Reporter

// Report forwards err to every non-nil reporter.
func (m MultiReporter) Report(ctx context.Context, err error) {
	for _, r := range m {
		if r != nil {
			report(ctx, r, err)
		}
	}
}

// LogReporter returns a Reporter that writes failures to logger.
// A nil logger uses slog.Default().
func LogReporter(logger *slog.Logger) Reporter {
	return ReporterFunc(func(_ context.Context, err error) {
		l := logger
		if l == nil {
			l = slog.Default()
		}
		var le *ListenerError
		if errors.As(err, &le) {
			observability.LogListenerFailure(l, le.ID, string(le.Event), string(le.Phase), le.Err)
			return
		}
		observability.LogFailure(l, err)
	})
}

// report delivers err to r, recovering from a panicking reporter.
func report(ctx context.Context, r Reporter, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if r == nil {
		r = LogReporter(nil)
	}
	defer func() {
		if p := recover(); p != nil {
			slog.Default().Error("failure reporter panicked",
				slog.Any("panic", p),
				slog.String("error", err.Error()),
			)
		}
	}()
	r.Report(ctx, err)
}
