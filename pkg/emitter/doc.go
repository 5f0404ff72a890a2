/*
Package emitter provides an in-process publish/subscribe hub.

# Overview

A Hub lets components of one application notify each other without holding
references to one another: a page emits "scroll", any widget that subscribed
to "scroll" is called. Delivery is synchronous: Emit returns after every
listener has run, with the listeners' return values in registration order.

Events are declared once with a typed contract:

	var (
	    Scroll   = emitter.Define[float64, emitter.None]("scroll")
	    CanClose = emitter.Define[emitter.None, bool]("before-page-close")
	)

	hub := emitter.New(emitter.WithName("page"))

	off := Scroll.SubscribeFunc(hub, func(y float64) emitter.None {
	    header.SetShadow(y > 0)
	    return emitter.None{}
	})
	defer off()

	Scroll.Emit(hub, 120)

Defining a name twice with different payload or result types panics.

# Failure Isolation

Every listener runs through Run. A panicking listener is recovered, reported
as a *ListenerError and contributes no result; the other listeners still run
and the payload is still cached. Emit itself never panics.

Failures go to the hub Reporter. The default reporter logs them; use
WithReporter to add a failure journal (see package failstore).

# Replay and One-Shot Listeners

The hub caches the last payload emitted for each name, even when nobody was
listening. Subscribing with WithImmediate replays it to the new listener:

	Exposure.SubscribeFunc(hub, track, emitter.WithImmediate())

SubscribeOnce registers a listener that is removed just before its first
emit-time invocation. An immediate replay does not count as that invocation.

# Listener Identity

Handlers with a comparable dynamic type, such as pointers, are registered at
most once per event; subscribing one again returns a handle to the existing
registration. Function listeners are never deduplicated. Each Unsubscribe
removes exactly the registration it was issued for and is idempotent.

# Default Hub

Default returns a lazily created process-wide hub used by On, Once and Emit.
SetDefault installs a configured hub and ResetDefault tears it down, which
keeps tests isolated.

# Observability

WithLogger, WithMetrics and WithTracing wire the hub to slog, OpenTelemetry
or Prometheus metrics, and OpenTelemetry spans. OptionsFromConfig derives
them from a config file.

# Thread Safety

A Hub is safe for concurrent use. Listeners run on the emitting goroutine
with no hub lock held. A listener removed during an emit is not called later
in that emit; a listener added during an emit is first called on the next one.
*/
package emitter
