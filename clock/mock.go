package clock

import (
	"sort"
	"sync"
	"time"
)

// Mock implements Clock with a manually controlled time. Scheduled functions
// run synchronously on the goroutine calling Advance or Set, in deadline
// order, with Now reporting each function's deadline while it runs.
type Mock struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*mockTimer
}

var _ Clock = (*Mock)(nil)

type mockTimer struct {
	mock     *Mock
	deadline time.Time
	seq      uint64
	fn       func()
	stopped  bool
}

// NewMock creates a new Mock starting at the given time. If zero time is
// provided, it starts at the Unix epoch.
func NewMock(start time.Time) *Mock {
	if start.IsZero() {
		start = time.Unix(0, 0)
	}

	return &Mock{now: start}
}

// Now returns the current mock time.
func (m *Mock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.now
}

// AfterFunc schedules f to run once the mock time has advanced by d.
// Negative durations are treated as zero.
func (m *Mock) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d < 0 {
		d = 0
	}

	m.seq++
	t := &mockTimer{
		mock:     m,
		deadline: m.now.Add(d),
		seq:      m.seq,
		fn:       f,
	}
	m.timers = append(m.timers, t)

	return t
}

// Advance moves the mock clock forward by d, running every function whose
// deadline falls within the new time, including functions scheduled by the
// functions that run.
func (m *Mock) Advance(d time.Duration) {
	m.Set(m.Now().Add(d))
}

// Set moves the mock clock to t. Moving backwards does not run any scheduled
// functions.
func (m *Mock) Set(t time.Time) {
	for {
		m.mu.Lock()
		next := m.next(t)
		if next == nil {
			m.now = t
			m.mu.Unlock()

			return
		}

		next.stopped = true
		m.remove(next)
		if next.deadline.After(m.now) {
			m.now = next.deadline
		}
		m.mu.Unlock()

		next.fn()
	}
}

// Timers returns the number of scheduled functions that have not yet run or
// been stopped.
func (m *Mock) Timers() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.timers)
}

// next returns the earliest timer due at or before t. It should only be
// called while the mutex is already locked.
func (m *Mock) next(t time.Time) *mockTimer {
	if len(m.timers) == 0 {
		return nil
	}

	sort.SliceStable(m.timers, func(i, j int) bool {
		a, b := m.timers[i], m.timers[j]
		if a.deadline.Equal(b.deadline) {
			return a.seq < b.seq
		}

		return a.deadline.Before(b.deadline)
	})

	if first := m.timers[0]; !first.deadline.After(t) {
		return first
	}

	return nil
}

// remove drops t from the scheduled timers. It should only be called while
// the mutex is already locked.
func (m *Mock) remove(t *mockTimer) {
	for i, x := range m.timers {
		if x == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)

			return
		}
	}
}

func (t *mockTimer) Stop() bool {
	t.mock.mu.Lock()
	defer t.mock.mu.Unlock()

	if t.stopped {
		return false
	}

	t.stopped = true
	t.mock.remove(t)

	return true
}
