package emitter

import (
	"context"
	"runtime/debug"
)

// Result is the outcome of Run: Value is meaningful only when OK is true.
type Result[T any] struct {
	Value T
	OK    bool
}

// Get returns the value and whether op completed normally.
func (r Result[T]) Get() (T, bool) {
	return r.Value, r.OK
}

// Run invokes op synchronously and converts a panic into a failed Result.
//
// A recovered panic is wrapped in a *PanicError and delivered once to reporter;
// a nil reporter logs to slog.Default(). The panic never propagates and op is
// not retried.
//
// Example:
//
//	res := emitter.Run(ctx, nil, func() int { return widget.Height() })
//	if h, ok := res.Get(); ok {
//	    layout(h)
//	}
func Run[T any](ctx context.Context, reporter Reporter, op func() T) (res Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = Result[T]{}
			report(ctx, reporter, &PanicError{
				Value: r,
				Stack: string(debug.Stack()),
			})
		}
	}()
	return Result[T]{Value: op(), OK: true}
}
