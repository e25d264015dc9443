package debounce

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The tests in this file run against the system clock, and are therefore
// written with generous margins.

func TestNew_realClock(t *testing.T) {
	t.Parallel()

	var n atomic.Int32
	debounced, _ := New(30*time.Millisecond, func() { n.Add(1) })

	for i := 0; i < 3; i++ {
		debounced()
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, int32(0), n.Load())

	assert.Eventually(t, func() bool {
		return n.Load() == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), n.Load())
}

func TestNew_realClockCancel(t *testing.T) {
	t.Parallel()

	var n atomic.Int32
	debounced, cancel := New(50*time.Millisecond, func() { n.Add(1) })

	debounced()
	cancel()

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), n.Load())
}

func TestNewThrottle_realClock(t *testing.T) {
	t.Parallel()

	var n atomic.Int32
	throttled, cancel := NewThrottle(50*time.Millisecond, func() { n.Add(1) })
	defer cancel()

	start := time.Now()
	for time.Since(start) < 300*time.Millisecond {
		throttled()
		time.Sleep(5 * time.Millisecond)
	}

	// At least once per 50ms, with a little slack for scheduling.
	assert.GreaterOrEqual(t, n.Load(), int32(4))
	assert.LessOrEqual(t, n.Load(), int32(8))
}

func TestDebouncer_realClockFlush(t *testing.T) {
	t.Parallel()

	d, err := NewDebouncer[int, int](time.Hour,
		func(_ context.Context, n int) (int, error) { return n + 1, nil },
	)
	require.NoError(t, err)

	_, _ = d.Call(context.Background(), 1)
	_, _ = d.Call(context.Background(), 2)

	got, err := d.Flush()
	require.NoError(t, err)
	assert.Equal(t, 3, got)
	assert.False(t, d.Pending())
}
