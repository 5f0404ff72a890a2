package emitter

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMultiReporter(t *testing.T) {
	a, b := &captureReporter{}, &captureReporter{}
	m := MultiReporter{a, nil, ReporterFunc(func(context.Context, error) { panic("ignored") }), b}

	err := errors.New("x")
	assert.NotPanics(t, func() { m.Report(context.Background(), err) })

	assert.Equal(t, []error{err}, a.errs)
	assert.Equal(t, []error{err}, b.errs)
}

func TestLogReporter(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, nil))
	rep := LogReporter(logger)

	t.Run("listener error", func(t *testing.T) {
		buf.Reset()
		rep.Report(context.Background(), &ListenerError{
			ID:        "f-1",
			Event:     "scroll",
			Phase:     PhaseReplay,
			Err:       &PanicError{Value: "boom"},
			Timestamp: time.Now(),
		})

		out := buf.String()
		assert.Contains(t, out, "listener failed")
		assert.Contains(t, out, "failure_id=f-1")
		assert.Contains(t, out, "event=scroll")
		assert.Contains(t, out, "phase=replay")
	})

	t.Run("other error", func(t *testing.T) {
		buf.Reset()
		rep.Report(context.Background(), errors.New("plain"))

		assert.Contains(t, buf.String(), "operation failed")
		assert.Contains(t, buf.String(), "plain")
	})
}

func TestListenerError(t *testing.T) {
	cause := errors.New("cause")
	pe := &PanicError{Value: cause, Stack: "goroutine 1"}
	le := &ListenerError{Event: "mounted", Phase: PhaseEmit, Err: pe}

	assert.ErrorIs(t, le, cause)
	assert.Equal(t, "goroutine 1", le.Stack())
	assert.Contains(t, le.Error(), "mounted")
	assert.Contains(t, le.Error(), "emit")

	plain := &ListenerError{Event: "mounted", Phase: PhaseEmit, Err: cause}
	assert.Empty(t, plain.Stack())
}
