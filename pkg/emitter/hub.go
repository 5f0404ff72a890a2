package emitter

import (
	"context"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/emitter/pkg/emitter/config"
	"github.com/randalmurphal/emitter/pkg/emitter/observability"
)

// entry is one registration in a hub.
type entry struct {
	key  any
	call func(any) any
	once bool

	fired   atomic.Bool
	removed atomic.Bool
}

// Hub routes payloads from producers to the listeners registered for an
// event name, and remembers the last payload emitted for each name.
//
// All methods are safe for concurrent use. The hub lock is never held while
// a listener runs, so listeners may emit, subscribe and unsubscribe freely.
//
// The zero value behaves like New() with no options.
type Hub struct {
	setup sync.Once


	name     string
	logger   *slog.Logger
	reporter Reporter
	metrics  observability.MetricsRecorder
	spans    observability.SpanManager

	mu     sync.RWMutex
	sets   map[Name][]*entry
	latest map[Name]any
}

// New creates a hub configured by opts.
//
// Example:
//
//	hub := emitter.New(
//	    emitter.WithName("page"),
//	    emitter.WithLogger(logger),
//	    emitter.WithTracing(true),
//	)
func New(opts ...Option) *Hub {
	cfg := defaultHubConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	h := &Hub{
		name:     cfg.name,
		logger:   observability.EnrichLogger(cfg.logger, cfg.name),
		reporter: cfg.reporter,
		metrics:  cfg.metrics,
		spans:    cfg.spans,
	}
	if h.spans == nil && cfg.tracing {
		h.spans = observability.NewSpanManager()
	}
	h.init()
	return h
}

// init fills every field a hub needs that is still unset.
// It runs once per hub, so a zero Hub is usable.
func (h *Hub) init() {
	h.setup.Do(func() {
		if h.name == "" {
			h.name = config.DefaultName
		}
		if h.logger == nil {
			h.logger = observability.EnrichLogger(slog.Default(), h.name)
		}
		if h.metrics == nil {
			h.metrics = observability.NoopMetrics{}
		}
		if h.spans == nil {
			h.spans = observability.NoopSpanManager{}
		}
		if h.reporter == nil {
			h.reporter = LogReporter(h.logger)
		}
		h.sets = make(map[Name][]*entry)
		h.latest = make(map[Name]any)
	})
}

// Name returns the hub name used in logs, metrics and spans.
func (h *Hub) Name() string {
	h.init()
	return h.name
}

// Count returns the number of listeners registered for name.
func (h *Hub) Count(name Name) int {
	h.init()
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sets[name])
}

// Names returns, sorted, every event name with at least one listener.
func (h *Hub) Names() []Name {
	h.init()
	h.mu.RLock()
	names := make([]Name, 0, len(h.sets))
	for name := range h.sets {
		names = append(names, name)
	}
	h.mu.RUnlock()

	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Reset drops every registration and cached payload.
// Outstanding Unsubscribe handles become no-ops.
func (h *Hub) Reset() {
	h.init()
	h.mu.Lock()
	sets := h.sets
	h.sets = make(map[Name][]*entry)
	h.latest = make(map[Name]any)
	h.mu.Unlock()

	ctx := context.Background()
	for name, set := range sets {
		for _, e := range set {
			e.removed.Store(true)
		}
		h.metrics.RecordSubscriptions(ctx, string(name), -int64(len(set)))
	}
	h.logger.Debug("hub reset", slog.Int("events", len(sets)))
}

func (h *Hub) subscribe(name Name, key any, call func(any) any, once bool, opts []SubscribeOption) Unsubscribe {
	h.init()
	var sc subscribeConfig
	for _, opt := range opts {
		opt(&sc)
	}

	h.mu.Lock()
	var e *entry
	for _, existing := range h.sets[name] {
		if existing.key == key {
			e = existing
			break
		}
	}
	added := e == nil
	if added {
		e = &entry{key: key, call: call, once: once}
		h.sets[name] = append(h.sets[name], e)
	}
	count := len(h.sets[name])
	payload, cached := h.latest[name]
	h.mu.Unlock()

	if added {
		h.metrics.RecordSubscriptions(context.Background(), string(name), 1)
		observability.LogSubscribe(h.logger, string(name), once, count)
	}

	if sc.immediate && cached {
		observability.LogReplay(h.logger, string(name))
		Run(context.Background(), h.failureReporter(name, PhaseReplay), func() any {
			return call(payload)
		})
	}

	return func() { h.remove(name, e) }
}

// remove deletes e from the registry. It reports whether e was present.
func (h *Hub) remove(name Name, e *entry) bool {
	h.mu.Lock()
	set := h.sets[name]
	idx := slices.Index(set, e)
	if idx < 0 {
		h.mu.Unlock()
		return false
	}
	// Copy so that snapshots held by in-flight emits stay intact.
	next := make([]*entry, 0, len(set)-1)
	next = append(next, set[:idx]...)
	next = append(next, set[idx+1:]...)
	if len(next) == 0 {
		delete(h.sets, name)
	} else {
		h.sets[name] = next
	}
	e.removed.Store(true)
	h.mu.Unlock()

	h.metrics.RecordSubscriptions(context.Background(), string(name), -1)
	observability.LogUnsubscribe(h.logger, string(name), len(next))
	return true
}

func (h *Hub) emit(ctx context.Context, name Name, payload any) []any {
	h.init()
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	ctx, span := h.spans.StartEmitSpan(ctx, h.name, string(name))

	h.mu.RLock()
	set := h.sets[name]
	h.mu.RUnlock()

	results := make([]any, 0, len(set))
	reporter := h.failureReporter(name, PhaseEmit)
	visited, failures := 0, 0

	for _, e := range set {
		if e.removed.Load() {
			continue
		}
		if e.once {
			if !e.fired.CompareAndSwap(false, true) {
				continue
			}
			h.remove(name, e)
		}
		visited++
		res := Run(ctx, reporter, func() any { return e.call(payload) })
		if !res.OK {
			failures++
			continue
		}
		results = append(results, res.Value)
	}

	h.mu.Lock()
	h.latest[name] = payload
	h.mu.Unlock()

	elapsed := time.Since(start)
	h.spans.EndEmitSpan(span, visited, failures)
	h.metrics.RecordEmit(ctx, string(name), visited, failures, elapsed)
	observability.LogEmit(h.logger, string(name), visited, len(results), failures,
		float64(elapsed.Microseconds())/1000)
	return results
}

func (h *Hub) latestPayload(name Name) (any, bool) {
	h.init()
	h.mu.RLock()
	defer h.mu.RUnlock()
	v, ok := h.latest[name]
	return v, ok
}

// failureReporter wraps failures of listeners on name in a ListenerError
// and forwards them to the span, the metrics and the hub reporter.
func (h *Hub) failureReporter(name Name, phase Phase) Reporter {
	return ReporterFunc(func(ctx context.Context, err error) {
		lerr := &ListenerError{
			ID:        uuid.NewString(),
			Event:     name,
			Phase:     phase,
			Err:       err,
			Timestamp: time.Now(),
		}
		h.spans.RecordFailure(ctx, lerr)
		h.metrics.RecordListenerFailure(ctx, string(name), string(phase))
		report(ctx, h.reporter, lerr)
	})
}

func hubOrDefault(h *Hub) *Hub {
	if h == nil {
		return Default()
	}
	return h
}
