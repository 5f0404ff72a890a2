package throttle

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects the arguments fn was called with.
type recorder struct {
	mu   sync.Mutex
	args []int
}

func (r *recorder) fn(a int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.args = append(r.args, a)
}

func (r *recorder) Args() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.args...)
}

func TestThrottler_RunsOncePerWindowWithLatestArg(t *testing.T) {
	r := &recorder{}
	th := New(50*time.Millisecond, r.fn)
	defer th.Stop()

	th.Call(1)
	th.Call(2)
	th.Call(3)
	assert.True(t, th.Pending())
	assert.Empty(t, r.Args(), "fn waits for the window to close")

	require.Eventually(t, func() bool { return len(r.Args()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{3}, r.Args())
	assert.False(t, th.Pending())
}

func TestThrottler_NewWindowAfterFire(t *testing.T) {
	r := &recorder{}
	th := New(10*time.Millisecond, r.fn)
	defer th.Stop()

	th.Call(1)
	require.Eventually(t, func() bool { return len(r.Args()) == 1 }, time.Second, 2*time.Millisecond)

	th.Call(2)
	require.Eventually(t, func() bool { return len(r.Args()) == 2 }, time.Second, 2*time.Millisecond)

	assert.Equal(t, []int{1, 2}, r.Args())
}

func TestThrottler_Stop(t *testing.T) {
	r := &recorder{}
	th := New(20*time.Millisecond, r.fn)

	th.Call(1)
	th.Stop()
	th.Call(2)

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, r.Args())
	assert.False(t, th.Pending())
}

func TestThrottler_Flush(t *testing.T) {
	r := &recorder{}
	th := New(time.Hour, r.fn)
	defer th.Stop()

	th.Flush()
	assert.Empty(t, r.Args(), "nothing pending")

	th.Call(7)
	th.Call(8)
	th.Flush()

	assert.Equal(t, []int{8}, r.Args())
	assert.False(t, th.Pending())
}

func TestThrottler_ZeroWait(t *testing.T) {
	r := &recorder{}
	th := New(0, r.fn)
	defer th.Stop()

	th.Call(5)
	require.Eventually(t, func() bool { return len(r.Args()) == 1 }, time.Second, 2*time.Millisecond)
	assert.Equal(t, []int{5}, r.Args())
}

func TestThrottler_ConcurrentCalls(t *testing.T) {
	r := &recorder{}
	th := New(200*time.Millisecond, r.fn)
	defer th.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			th.Call(i)
		}(i)
	}
	wg.Wait()

	require.Eventually(t, func() bool { return len(r.Args()) >= 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Len(t, r.Args(), 1)
}
