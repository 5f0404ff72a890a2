package emitter

import (
	"context"
	"reflect"
)

// Name identifies an event for registration and caching.
type Name string

// None is the payload or result type of events that carry nothing.
type None = struct{}

// Unsubscribe removes the listener it was issued for. Calling it more than
// once, or after the listener is gone, does nothing.
type Unsubscribe func()

// Handler receives an event payload and returns a result to the emitter.
//
// Handlers whose dynamic type is comparable (typically pointers) are
// registered at most once per event: subscribing the same handler again
// returns a handle to the existing registration.
type Handler[P, R any] interface {
	Handle(payload P) R
}

// Listener adapts a function to Handler. Function values are not comparable,
// so every subscription of a Listener is a distinct registration.
type Listener[P, R any] func(payload P) R

// Handle calls l.
func (l Listener[P, R]) Handle(payload P) R {
	return l(payload)
}

// Event is a typed event descriptor. Create one with Define and keep it in a
// package-level variable so producers and consumers share the contract.
type Event[P, R any] struct {
	name Name
}

// Define declares an event carrying payload P whose listeners return R.
//
// Defining the same name again with identical types returns an equivalent
// descriptor; defining it with different types panics.
//
// Example:
//
//	var Scroll = emitter.Define[float64, emitter.None]("scroll")
func Define[P, R any](name Name) Event[P, R] {
	defineContract[P, R](name)
	return Event[P, R]{name: name}
}

// Name returns the event name.
func (e Event[P, R]) Name() Name {
	return e.name
}

// Subscribe registers l on h. A nil hub means Default().
//
// With WithImmediate, l is invoked right away with the most recently emitted
// payload if there is one. The replay result is discarded and a failure is
// only reported.
func (e Event[P, R]) Subscribe(h *Hub, l Handler[P, R], opts ...SubscribeOption) Unsubscribe {
	call, key := e.bind(l)
	return hubOrDefault(h).subscribe(e.name, key, call, false, opts)
}

// SubscribeFunc registers fn on h.
func (e Event[P, R]) SubscribeFunc(h *Hub, fn Listener[P, R], opts ...SubscribeOption) Unsubscribe {
	return e.Subscribe(h, fn, opts...)
}

// SubscribeOnce registers l to run on the next emit only. The registration
// is removed before l is invoked.
//
// WithImmediate replays the cached payload to l without consuming the
// registration: l still runs on the next emit.
func (e Event[P, R]) SubscribeOnce(h *Hub, l Handler[P, R], opts ...SubscribeOption) Unsubscribe {
	call, _ := e.bind(l)
	return hubOrDefault(h).subscribe(e.name, new(token), call, true, opts)
}

// SubscribeOnceFunc registers fn to run on the next emit only.
func (e Event[P, R]) SubscribeOnceFunc(h *Hub, fn Listener[P, R], opts ...SubscribeOption) Unsubscribe {
	return e.SubscribeOnce(h, fn, opts...)
}

// Emit delivers payload to every listener of the event on h and returns the
// results of the listeners that completed, in registration order.
func (e Event[P, R]) Emit(h *Hub, payload P) []R {
	return e.EmitContext(context.Background(), h, payload)
}

// EmitContext is Emit with a context for tracing and failure reporting.
// The context does not cancel the sweep.
func (e Event[P, R]) EmitContext(ctx context.Context, h *Hub, payload P) []R {
	raw := hubOrDefault(h).emit(ctx, e.name, payload)
	out := make([]R, 0, len(raw))
	for _, v := range raw {
		r, _ := v.(R)
		out = append(out, r)
	}
	return out
}

// Latest returns the most recently emitted payload without dispatching it.
func (e Event[P, R]) Latest(h *Hub) (P, bool) {
	v, ok := hubOrDefault(h).latestPayload(e.name)
	if !ok {
		var zero P
		return zero, false
	}
	p, _ := v.(P)
	return p, true
}

// token gives a registration an identity when its handler is not comparable.
type token struct{ _ byte }

// bind erases l to the hub's untyped call and picks its identity key.
func (e Event[P, R]) bind(l Handler[P, R]) (func(any) any, any) {
	if isNil(l) {
		panic(ErrNilHandler)
	}
	call := func(v any) any {
		p, _ := v.(P)
		return l.Handle(p)
	}
	if reflect.ValueOf(l).Comparable() {
		return call, l
	}
	return call, new(token)
}

func isNil[P, R any](l Handler[P, R]) bool {
	if l == nil {
		return true
	}
	v := reflect.ValueOf(l)
	switch v.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Interface:
		return v.IsNil()
	}
	return false
}
