package emitter

import "sync/atomic"

var defaultHub atomic.Pointer[Hub]

// Default returns the process-wide hub, creating it on first use.
func Default() *Hub {
	for {
		if h := defaultHub.Load(); h != nil {
			return h
		}
		defaultHub.CompareAndSwap(nil, New())
	}
}

// SetDefault installs h as the process-wide hub. A nil h clears it, and the
// next call to Default creates a fresh hub.
func SetDefault(h *Hub) {
	defaultHub.Store(h)
}

// ResetDefault clears the process-wide hub and drops its registrations and
// cached payloads.
func ResetDefault() {
	if h := defaultHub.Swap(nil); h != nil {
		h.Reset()
	}
}

// On subscribes fn to e on the default hub.
func On[P, R any](e Event[P, R], fn Listener[P, R], opts ...SubscribeOption) Unsubscribe {
	return e.SubscribeFunc(Default(), fn, opts...)
}

// Once subscribes fn to the next emit of e on the default hub.
func Once[P, R any](e Event[P, R], fn Listener[P, R], opts ...SubscribeOption) Unsubscribe {
	return e.SubscribeOnceFunc(Default(), fn, opts...)
}

// Emit emits e on the default hub.
func Emit[P, R any](e Event[P, R], payload P) []R {
	return e.Emit(Default(), payload)
}
