package debounce

import (
	"context"
	"time"
)

// NewMutable returns a debounced function like New, but it allows callback
// function f to be changed, as a new callback function is passed to each
// invocation of the debounced function.
//
// Only the very last f passed to the debounced function is called when the
// delay expires and the callback function is invoked. Previous f values are
// discarded. A nil f is recorded as the latest callback, but nothing is
// called when it is invoked.
//
// The returned cancel function can be used to cancel any pending invocation of
// f, but is not required to be called, so can be ignored if not needed.
//
// Both debounced and cancel functions are safe for concurrent use in
// goroutines, and can both be called multiple times. A callback may pass a
// new callback to debounced while it runs.
func NewMutable(
	wait time.Duration,
	opts ...Option,
) (debounced func(f func()), cancel func()) {
	d := mustDebouncer[func(), struct{}](wait, func(_ context.Context, f func()) (struct{}, error) {
		if f != nil {
			f()
		}

		return struct{}{}, nil
	}, opts...)

	debounced = func(f func()) {
		_, _ = d.Call(context.Background(), f)
	}

	return debounced, d.Cancel
}

// NewMutableWithMaxWait is a combination of NewMutable and NewWithMaxWait.
//
// When either the wait or maxWait duration expires, the last f passed to the
// debounced function is called.
func NewMutableWithMaxWait(
	wait, maxWait time.Duration,
	opts ...Option,
) (debounced func(f func()), cancel func()) {
	return NewMutable(wait, append(opts, WithMaxWait(maxWait))...)
}
