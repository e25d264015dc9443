package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMock(t *testing.T) {
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, start, NewMock(start).Now())
	assert.Equal(t, time.Unix(0, 0), NewMock(time.Time{}).Now())
}

func TestMock_AfterFunc(t *testing.T) {
	m := NewMock(time.Time{})
	start := m.Now()

	var fired []time.Duration
	record := func() { fired = append(fired, m.Now().Sub(start)) }

	m.AfterFunc(300*time.Millisecond, record)
	m.AfterFunc(100*time.Millisecond, record)
	m.AfterFunc(200*time.Millisecond, record)
	assert.Equal(t, 3, m.Timers())

	m.Advance(150 * time.Millisecond)
	assert.Equal(t, []time.Duration{100 * time.Millisecond}, fired)

	m.Advance(time.Second)
	assert.Equal(t, []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		300 * time.Millisecond,
	}, fired)
	assert.Equal(t, start.Add(1150*time.Millisecond), m.Now())
	assert.Equal(t, 0, m.Timers())
}

func TestMock_AfterFunc_chained(t *testing.T) {
	m := NewMock(time.Time{})
	start := m.Now()

	var fired []time.Duration
	m.AfterFunc(100*time.Millisecond, func() {
		fired = append(fired, m.Now().Sub(start))
		m.AfterFunc(50*time.Millisecond, func() {
			fired = append(fired, m.Now().Sub(start))
		})
	})

	m.Advance(200 * time.Millisecond)

	assert.Equal(t, []time.Duration{
		100 * time.Millisecond,
		150 * time.Millisecond,
	}, fired)
}

func TestMock_AfterFunc_sameDeadline(t *testing.T) {
	m := NewMock(time.Time{})

	var order []int
	m.AfterFunc(10*time.Millisecond, func() { order = append(order, 1) })
	m.AfterFunc(10*time.Millisecond, func() { order = append(order, 2) })
	m.AfterFunc(0, func() { order = append(order, 0) })

	m.Advance(10 * time.Millisecond)

	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestMockTimer_Stop(t *testing.T) {
	m := NewMock(time.Time{})

	var n int
	timer := m.AfterFunc(100*time.Millisecond, func() { n++ })

	require.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	assert.Equal(t, 0, m.Timers())

	m.Advance(time.Second)
	assert.Equal(t, 0, n)

	fired := m.AfterFunc(10*time.Millisecond, func() { n++ })
	m.Advance(10 * time.Millisecond)
	assert.Equal(t, 1, n)
	assert.False(t, fired.Stop())
}

func TestMock_Set_backwards(t *testing.T) {
	m := NewMock(time.Time{})
	start := m.Now()

	var n int
	m.AfterFunc(100*time.Millisecond, func() { n++ })

	m.Set(start.Add(-time.Second))
	assert.Equal(t, start.Add(-time.Second), m.Now())
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, m.Timers())

	m.Set(start.Add(100 * time.Millisecond))
	assert.Equal(t, 1, n)
}

func TestSystem(t *testing.T) {
	c := New()

	before := time.Now()
	assert.False(t, c.Now().Before(before))

	done := make(chan struct{})
	c.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("AfterFunc did not fire")
	}

	stopped := c.AfterFunc(time.Hour, func() {})
	assert.True(t, stopped.Stop())
}
