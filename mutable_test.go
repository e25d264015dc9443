package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/romdo/go-debounce/v2/clock"
)

func buildMutable(
	_ *testing.T,
	tc testCase,
	clk *clock.Mock,
	record func(),
) (func(), func()) {
	debounced, cancel := NewMutable(tc.wait, withClock(tc.options, clk)...)

	return func() { debounced(record) }, cancel
}

func TestNewMutable(t *testing.T) {
	t.Parallel()

	t.Run("last function wins", func(t *testing.T) {
		t.Parallel()

		clk := clock.NewMock(time.Time{})
		var target int

		debounced, _ := NewMutable(100*time.Millisecond, WithClock(clk))

		debounced(func() { target += 1 })
		debounced(func() { target += 2 })
		debounced(func() { target += 4 })

		clk.Advance(200 * time.Millisecond)

		assert.Equal(t, 4, target)
	})

	t.Run("leading edge uses first function", func(t *testing.T) {
		t.Parallel()

		clk := clock.NewMock(time.Time{})
		var calls []int

		debounced, _ := NewMutable(
			100*time.Millisecond,
			WithClock(clk),
			WithLeading(true),
		)

		debounced(func() { calls = append(calls, 1) })
		debounced(func() { calls = append(calls, 2) })
		debounced(func() { calls = append(calls, 3) })

		clk.Advance(200 * time.Millisecond)

		assert.Equal(t, []int{1, 3}, calls)
	})

	t.Run("nil function is skipped", func(t *testing.T) {
		t.Parallel()

		clk := clock.NewMock(time.Time{})
		var n int

		debounced, _ := NewMutable(100*time.Millisecond, WithClock(clk))

		debounced(func() { n++ })
		debounced(nil)

		assert.NotPanics(t, func() {
			clk.Advance(200 * time.Millisecond)
		})
		assert.Equal(t, 0, n)
	})

	t.Run("cancel discards pending function", func(t *testing.T) {
		t.Parallel()

		clk := clock.NewMock(time.Time{})
		var n int

		debounced, cancel := NewMutable(100*time.Millisecond, WithClock(clk))

		debounced(func() { n++ })
		clk.Advance(50 * time.Millisecond)
		cancel()
		clk.Advance(200 * time.Millisecond)

		assert.Equal(t, 0, n)
	})

	t.Run("function can debounce another", func(t *testing.T) {
		t.Parallel()

		clk := clock.NewMock(time.Time{})
		start := clk.Now()
		var got []int
		var at []time.Duration

		var debounced func(func())
		debounced, _ = NewMutable(100*time.Millisecond, WithClock(clk))

		again := func() {
			got = append(got, 2)
			at = append(at, clk.Now().Sub(start))
		}

		finishWithin(t, 2*time.Second, func() {
			debounced(func() {
				got = append(got, 1)
				at = append(at, clk.Now().Sub(start))
				debounced(again)
			})
			clk.Advance(time.Second)
		})

		assert.Equal(t, []int{1, 2}, got)
		assert.Equal(t, []time.Duration{
			100 * time.Millisecond,
			200 * time.Millisecond,
		}, at)
	})

	runTestCases(t, trailingTestCases, buildMutable)
}

func TestNewMutable_withLeading(t *testing.T) {
	t.Parallel()

	runTestCases(t, leadingTestCases, buildMutable)
}

func TestNewMutable_withLeadingAndTrailing(t *testing.T) {
	t.Parallel()

	runTestCases(t, leadingAndTrailingTestCases, buildMutable)
}

func TestNewMutable_withMaxWait(t *testing.T) {
	t.Parallel()

	runTestCases(t, maxWaitTestCases, buildMutable)
}

func TestNewMutable_withMaxWaitAndLeading(t *testing.T) {
	t.Parallel()

	runTestCases(t, maxWaitAndLeadingTestCases, buildMutable)
}

func TestNewMutableWithMaxWait(t *testing.T) {
	t.Parallel()

	clk := clock.NewMock(time.Time{})
	var got []int

	debounced, _ := NewMutableWithMaxWait(
		100*time.Millisecond, 150*time.Millisecond,
		WithClock(clk),
	)

	for i := 0; i < 10; i++ {
		i := i
		debounced(func() { got = append(got, i) })
		clk.Advance(40 * time.Millisecond)
	}
	clk.Advance(time.Second)

	// Calls every 40ms from 0ms. Max wait flushes at 150ms (call 3 at 120ms)
	// and 300ms (call 7 at 280ms), trailing at 450ms (call 9 at 360ms).
	assert.Equal(t, []int{3, 7, 9}, got)
}
