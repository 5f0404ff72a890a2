package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCaptureLogger returns a debug-level JSON logger writing into a buffer.
func newCaptureLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	h := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), buf
}

// decodeLines parses every JSON log line in buf.
func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestEnrichLogger(t *testing.T) {
	t.Run("adds hub attribute", func(t *testing.T) {
		logger, buf := newCaptureLogger()
		EnrichLogger(logger, "page").Info("ready")

		lines := decodeLines(t, buf)
		require.Len(t, lines, 1)
		assert.Equal(t, "page", lines[0]["hub"])
	})

	t.Run("nil logger stays nil", func(t *testing.T) {
		assert.Nil(t, EnrichLogger(nil, "page"))
	})
}

func TestLogEmit(t *testing.T) {
	logger, buf := newCaptureLogger()
	LogEmit(logger, "scroll", 3, 2, 1, 1.5)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	line := lines[0]
	assert.Equal(t, "DEBUG", line["level"])
	assert.Equal(t, "event emitted", line["msg"])
	assert.Equal(t, "scroll", line["event"])
	assert.Equal(t, float64(3), line["listeners"])
	assert.Equal(t, float64(2), line["results"])
	assert.Equal(t, float64(1), line["failures"])
	assert.Equal(t, 1.5, line["duration_ms"])
}

func TestLogListenerFailure(t *testing.T) {
	logger, buf := newCaptureLogger()
	LogListenerFailure(logger, "abc", "exposure", "replay", errors.New("boom"))

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	line := lines[0]
	assert.Equal(t, "ERROR", line["level"])
	assert.Equal(t, "abc", line["failure_id"])
	assert.Equal(t, "exposure", line["event"])
	assert.Equal(t, "replay", line["phase"])
	assert.Equal(t, "boom", line["error"])
}

func TestLogSubscribeAndUnsubscribe(t *testing.T) {
	logger, buf := newCaptureLogger()
	LogSubscribe(logger, "mounted", true, 1)
	LogUnsubscribe(logger, "mounted", 0)
	LogReplay(logger, "mounted")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 3)
	assert.Equal(t, "listener subscribed", lines[0]["msg"])
	assert.Equal(t, true, lines[0]["once"])
	assert.Equal(t, "listener unsubscribed", lines[1]["msg"])
	assert.Equal(t, float64(0), lines[1]["listeners"])
	assert.Equal(t, "replaying latest payload", lines[2]["msg"])
}

func TestLogStoreError(t *testing.T) {
	logger, buf := newCaptureLogger()
	LogStoreError(logger, "save", errors.New("disk full"))

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "WARN", lines[0]["level"])
	assert.Equal(t, "save", lines[0]["operation"])
}

func TestLogHelpers_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		LogSubscribe(nil, "e", false, 1)
		LogUnsubscribe(nil, "e", 0)
		LogEmit(nil, "e", 0, 0, 0, 0)
		LogReplay(nil, "e")
		LogListenerFailure(nil, "id", "e", "emit", errors.New("x"))
		LogFailure(nil, errors.New("x"))
		LogStoreError(nil, "save", errors.New("x"))
	})
}

func TestTimedOperation(t *testing.T) {
	done := TimedOperation()
	time.Sleep(5 * time.Millisecond)
	elapsed := done()
	assert.GreaterOrEqual(t, elapsed, 4.0)
}
