package debounce

import (
	"context"
	"fmt"
	"time"
)

// NewThrottler creates a Debouncer which invokes fn at most once per wait
// duration. The first call invokes fn immediately, and calls made while
// throttled are coalesced into a trailing invocation.
//
// It is a Debouncer with leading enabled and maxWait equal to wait. Options
// may disable either edge, but any WithMaxWait option is overridden.
func NewThrottler[A, R any](
	wait time.Duration,
	fn Func[A, R],
	opts ...Option,
) (*Debouncer[A, R], error) {
	opts = append([]Option{WithLeading(true)}, opts...)
	opts = append(opts, WithMaxWait(wait))

	return NewDebouncer(wait, fn, opts...)
}

// NewThrottle returns a throttled function that invokes f at most once every
// wait duration, on both the leading and trailing edge of a burst of calls.
//
// The returned cancel function discards any pending trailing invocation.
// Both functions are safe for concurrent use. NewThrottle panics if f is nil.
func NewThrottle(
	wait time.Duration,
	f func(),
	opts ...Option,
) (throttled func(), cancel func()) {
	if f == nil {
		panic(fmt.Errorf("%w: function is nil", ErrInvalidArgument))
	}

	d, err := NewThrottler[struct{}, struct{}](wait, func(context.Context, struct{}) (struct{}, error) {
		f()

		return struct{}{}, nil
	}, opts...)
	if err != nil {
		panic(err)
	}

	throttled = func() {
		_, _ = d.Call(context.Background(), struct{}{})
	}

	return throttled, d.Cancel
}
