package emitter

import (
	"errors"
	"fmt"
	"time"
)

// ErrNilHandler is the panic value when a nil listener is subscribed.
var ErrNilHandler = errors.New("emitter: nil listener")

// Phase identifies where a listener failed.
type Phase string

const (
	// PhaseEmit is a failure while an emit sweep invoked the listener.
	PhaseEmit Phase = "emit"
	// PhaseReplay is a failure while replaying the cached payload on subscribe.
	PhaseReplay Phase = "replay"
)

// PanicError captures a panic recovered by Run.
// It includes the stack trace for debugging.
type PanicError struct {
	// Value is the value passed to panic().
	Value any
	// Stack is the full stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ListenerError is what a hub reports when one of its listeners fails.
type ListenerError struct {
	// ID correlates the log line, span event and stored failure record.
	ID string
	// Event is the event name the listener was bound to.
	Event Name
	// Phase is where the failure happened.
	Phase Phase
	// Err is the underlying failure, usually a *PanicError.
	Err error
	// Timestamp is when the failure was observed.
	Timestamp time.Time
}

// Error implements the error interface.
func (e *ListenerError) Error() string {
	return fmt.Sprintf("event %s: listener failed during %s: %v", e.Event, e.Phase, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ListenerError) Unwrap() error {
	return e.Err
}

// Stack returns the recovered stack trace, or "" if the failure was not a panic.
func (e *ListenerError) Stack() string {
	var pe *PanicError
	if errors.As(e.Err, &pe) {
		return pe.Stack
	}
	return ""
}
