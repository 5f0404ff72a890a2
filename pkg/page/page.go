// Package page declares the events exchanged between a page and the widgets
// mounted on it.
//
// Widgets never reference the page or each other; they subscribe to these
// events on the page's hub:
//
//	hub := emitter.New(emitter.WithName("page"))
//	page.Mounted.SubscribeOnceFunc(hub, func(emitter.None) emitter.None {
//	    banner.StartAutoplay()
//	    return emitter.None{}
//	}, emitter.WithImmediate())
package page

import (
	"time"

	"github.com/randalmurphal/emitter/pkg/emitter"
	"github.com/randalmurphal/emitter/pkg/emitter/throttle"
)

// Scrolling.
var (
	// Scroll carries the page's vertical scroll offset.
	Scroll = emitter.Define[float64, emitter.None]("scroll")
	// ScrollEnd fires when scrolling settles.
	ScrollEnd = emitter.Define[emitter.None, emitter.None]("scrollend")
	// ScrollDisable asks the page to lock scrolling, e.g. while a popup is open.
	ScrollDisable = emitter.Define[emitter.None, emitter.None]("scrolldisable")
	// ScrollEnable releases a ScrollDisable lock.
	ScrollEnable = emitter.Define[emitter.None, emitter.None]("scrollenable")
)

// Refreshing.
var (
	// RefreshPopup refreshes popup data only.
	RefreshPopup = emitter.Define[emitter.None, emitter.None]("refreshpopup")
	// PullDownRefreshStart fires when the user starts a pull-down refresh.
	PullDownRefreshStart = emitter.Define[emitter.None, emitter.None]("pulldownrefreshstart")
	// RefreshStart fires on every refresh, pulled or programmatic.
	RefreshStart = emitter.Define[emitter.None, emitter.None]("refreshstart")
)

// Lifecycle.
var (
	// Exposure carries the ID of a component that became visible.
	Exposure = emitter.Define[string, emitter.None]("exposure")
	// Mounted fires once the first screen has rendered.
	Mounted = emitter.Define[emitter.None, emitter.None]("mounted")
	// Constructed fires once the page root has been built.
	Constructed = emitter.Define[emitter.None, emitter.None]("constructed")
	// BeforeNativeClose fires before the host closes the page.
	BeforeNativeClose = emitter.Define[emitter.None, emitter.None]("beforenativeclose")
	// BeforePageClose asks listeners whether the page may close.
	// A listener returning false vetoes the close.
	BeforePageClose = emitter.Define[emitter.None, bool]("beforepageclose")
)

// CanClose emits BeforePageClose on h and reports whether no listener vetoed.
// A listener that fails casts no vote.
func CanClose(h *emitter.Hub) bool {
	for _, ok := range BeforePageClose.Emit(h, emitter.None{}) {
		if !ok {
			return false
		}
	}
	return true
}

// NewScrollThrottle returns a throttler that emits Scroll on h at most once
// per wait, with the latest offset.
//
// Example:
//
//	scroll := page.NewScrollThrottle(hub, settings.ScrollThrottle)
//	defer scroll.Stop()
//	onNativeScroll(func(y float64) { scroll.Call(y) })
func NewScrollThrottle(h *emitter.Hub, wait time.Duration) *throttle.Throttler[float64] {
	return throttle.New(wait, func(offset float64) {
		Scroll.Emit(h, offset)
	})
}

// Signal emits a payload-free event on h.
func Signal(h *emitter.Hub, e emitter.Event[emitter.None, emitter.None]) {
	e.Emit(h, emitter.None{})
}

// On subscribes fn to a payload-free event on h.
func On(h *emitter.Hub, e emitter.Event[emitter.None, emitter.None], fn func(), opts ...emitter.SubscribeOption) emitter.Unsubscribe {
	if fn == nil {
		panic(emitter.ErrNilHandler)
	}
	return e.SubscribeFunc(h, func(emitter.None) emitter.None {
		fn()
		return emitter.None{}
	}, opts...)
}

// Once subscribes fn to the next emit of a payload-free event on h.
func Once(h *emitter.Hub, e emitter.Event[emitter.None, emitter.None], fn func(), opts ...emitter.SubscribeOption) emitter.Unsubscribe {
	if fn == nil {
		panic(emitter.ErrNilHandler)
	}
	return e.SubscribeOnceFunc(h, func(emitter.None) emitter.None {
		fn()
		return emitter.None{}
	}, opts...)
}
