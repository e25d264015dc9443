// Package clock abstracts the time source and deferred execution facility
// used by debouncers, so that tests can drive them on a manual timeline.
package clock

import (
	"time"
)

// Clock provides the current time and schedules deferred function calls.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc waits for the duration to elapse and then calls f. The
	// returned Timer can be used to cancel the call.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a handle to a call scheduled with Clock.AfterFunc.
type Timer interface {
	// Stop prevents the call from happening. It returns false if the call
	// has already started or the timer was already stopped.
	Stop() bool
}

// System implements Clock using the time package.
type System struct{}

var _ Clock = System{}

// New returns a Clock backed by the system time.
func New() Clock {
	return System{}
}

// Now returns time.Now().
func (System) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules f with time.AfterFunc.
func (System) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
