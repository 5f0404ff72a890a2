package page_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/emitter/pkg/emitter"
	"github.com/randalmurphal/emitter/pkg/page"
)

func newHub(t *testing.T) *emitter.Hub {
	t.Helper()
	return emitter.New(
		emitter.WithName(t.Name()),
		emitter.WithReporter(emitter.ReporterFunc(func(context.Context, error) {})),
	)
}

func TestCanClose(t *testing.T) {
	tests := []struct {
		name  string
		votes []func(emitter.None) bool
		want  bool
	}{
		{"no listeners", nil, true},
		{"all allow", []func(emitter.None) bool{
			func(emitter.None) bool { return true },
			func(emitter.None) bool { return true },
		}, true},
		{"one veto", []func(emitter.None) bool{
			func(emitter.None) bool { return true },
			func(emitter.None) bool { return false },
		}, false},
		{"failed listener does not veto", []func(emitter.None) bool{
			func(emitter.None) bool { panic("form state corrupted") },
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hub := newHub(t)
			for _, v := range tt.votes {
				page.BeforePageClose.SubscribeFunc(hub, v)
			}
			assert.Equal(t, tt.want, page.CanClose(hub))
		})
	}
}

func TestExposure_LateWidgetSeesLastExposure(t *testing.T) {
	hub := newHub(t)

	page.Exposure.Emit(hub, "banner")
	page.Exposure.Emit(hub, "feed")

	var seen []string
	page.Exposure.SubscribeFunc(hub, func(id string) emitter.None {
		seen = append(seen, id)
		return emitter.None{}
	}, emitter.WithImmediate())

	page.Exposure.Emit(hub, "footer")
	assert.Equal(t, []string{"feed", "footer"}, seen)
}

func TestMounted_OnceWithImmediate(t *testing.T) {
	hub := newHub(t)
	page.Signal(hub, page.Mounted)

	calls := 0
	page.Once(hub, page.Mounted, func() { calls++ }, emitter.WithImmediate())
	assert.Equal(t, 1, calls, "replayed because the page already mounted")

	page.Signal(hub, page.Mounted)
	page.Signal(hub, page.Mounted)
	assert.Equal(t, 2, calls, "the one-shot registration survives replay and fires once")
}

func TestOn_Unsubscribe(t *testing.T) {
	hub := newHub(t)

	calls := 0
	off := page.On(hub, page.RefreshStart, func() { calls++ })
	page.Signal(hub, page.RefreshStart)
	off()
	page.Signal(hub, page.RefreshStart)

	assert.Equal(t, 1, calls)
}

func TestOn_NilFuncPanics(t *testing.T) {
	hub := newHub(t)
	assert.PanicsWithValue(t, emitter.ErrNilHandler, func() { page.On(hub, page.ScrollEnd, nil) })
	assert.PanicsWithValue(t, emitter.ErrNilHandler, func() { page.Once(hub, page.ScrollEnd, nil) })
}

func TestNewScrollThrottle(t *testing.T) {
	hub := newHub(t)

	var mu sync.Mutex
	var offsets []float64
	page.Scroll.SubscribeFunc(hub, func(y float64) emitter.None {
		mu.Lock()
		offsets = append(offsets, y)
		mu.Unlock()
		return emitter.None{}
	})

	scroll := page.NewScrollThrottle(hub, 50*time.Millisecond)
	defer scroll.Stop()

	scroll.Call(10)
	scroll.Call(20)
	scroll.Call(30)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(offsets) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []float64{30}, offsets)
	mu.Unlock()

	latest, ok := page.Scroll.Latest(hub)
	require.True(t, ok)
	assert.Equal(t, 30.0, latest)
}

func TestEventNames(t *testing.T) {
	assert.Equal(t, emitter.Name("scroll"), page.Scroll.Name())
	assert.Equal(t, emitter.Name("beforepageclose"), page.BeforePageClose.Name())
	assert.Equal(t, emitter.Name("pulldownrefreshstart"), page.PullDownRefreshStart.Name())
}
