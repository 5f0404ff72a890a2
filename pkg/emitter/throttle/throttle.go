// Package throttle limits how often a function runs.
package throttle

import (
	"sync"
	"time"
)

// Throttler runs fn at most once per wait window.
//
// The first Call in a quiet period opens a window; fn runs when the window
// closes, with the argument of the most recent Call made during the window.
// Calls after that open a new window.
//
// Thread-safety: All methods are safe for concurrent use. fn runs on a timer
// goroutine and never concurrently with itself for the same window.
type Throttler[A any] struct {
	mu      sync.Mutex
	wait    time.Duration
	fn      func(A)
	timer   *time.Timer
	pending bool
	arg     A
	seq     uint64 // invalidates timers that were stopped too late
	stopped bool
}

// New creates a throttler that calls fn at most once per wait.
// A non-positive wait still defers fn to a timer goroutine.
func New[A any](wait time.Duration, fn func(A)) *Throttler[A] {
	if wait < 0 {
		wait = 0
	}
	return &Throttler[A]{
		wait: wait,
		fn:   fn,
	}
}

// Call records arg and schedules fn for the end of the current window.
// Calls after Stop are ignored.
func (t *Throttler[A]) Call(arg A) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped || t.fn == nil {
		return
	}

	t.arg = arg
	if t.pending {
		return
	}

	t.pending = true
	t.seq++
	current := t.seq
	t.timer = time.AfterFunc(t.wait, func() {
		t.mu.Lock()
		if !t.pending || t.seq != current {
			t.mu.Unlock()
			return
		}
		arg := t.arg
		var zero A
		t.arg = zero
		t.pending = false
		t.timer = nil
		t.mu.Unlock()

		t.fn(arg)
	})
}

// Pending reports whether a call is scheduled.
func (t *Throttler[A]) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// Flush runs a scheduled call immediately instead of waiting for the window
// to close. It does nothing when no call is pending.
func (t *Throttler[A]) Flush() {
	t.mu.Lock()
	if !t.pending {
		t.mu.Unlock()
		return
	}
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.seq++
	arg := t.arg
	var zero A
	t.arg = zero
	t.pending = false
	t.mu.Unlock()

	t.fn(arg)
}

// Stop cancels any scheduled call and disables the throttler.
// A call already running is not interrupted.
func (t *Throttler[A]) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.seq++
	t.pending = false
	t.stopped = true
	var zero A
	t.arg = zero
}
