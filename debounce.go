// Package debounce provides functions to debounce function calls, i.e., to
// ensure that a function is only executed after a certain amount of time has
// passed since the last call.
//
// Debouncing can be useful in scenarios where function calls may be triggered
// rapidly, such as in response to user input, but the underlying operation is
// expensive and only needs to be performed once per batch of calls.
//
// Debouncer is the underlying state machine. It supports invoking on the
// leading and/or trailing edge of a burst of calls, a maximum wait between
// invocations, and explicit cancel and flush operations. Throttling is the
// same machine with leading enabled and maxWait equal to wait, see
// NewThrottler.
//
// New, NewMutable and NewThrottle wrap a Debouncer in plain functions for the
// common case of a callback without arguments or results.
package debounce

import (
	"context"
	"fmt"
	"time"
)

// New returns a debounced function that delays invoking f until after wait time
// has elapsed since the last time the debounced function was invoked.
//
// The returned cancel function can be used to cancel any pending invocation of
// f, but is not required to be called, so can be ignored if not needed.
//
// Both debounced and cancel functions are safe for concurrent use in
// goroutines, and can both be called multiple times.
//
// The leading edge invocation of f runs on the goroutine calling debounced,
// and trailing edge invocations run on the clock's timer goroutine. f may
// itself call debounced, for example to run again after the next wait.
// New panics if f is nil.
func New(
	wait time.Duration,
	f func(),
	opts ...Option,
) (debounced func(), cancel func()) {
	if f == nil {
		panic(fmt.Errorf("%w: function is nil", ErrInvalidArgument))
	}

	d := mustDebouncer[struct{}, struct{}](wait, func(context.Context, struct{}) (struct{}, error) {
		f()

		return struct{}{}, nil
	}, opts...)

	debounced = func() {
		_, _ = d.Call(context.Background(), struct{}{})
	}

	return debounced, d.Cancel
}

// NewWithMaxWait returns a debounced function like New, but with a maximum wait
// time of maxWait, which is the maximum time f is allowed to be delayed before
// it is invoked.
func NewWithMaxWait(
	wait, maxWait time.Duration,
	f func(),
	opts ...Option,
) (debounced func(), cancel func()) {
	return New(wait, f, append(opts, WithMaxWait(maxWait))...)
}

func mustDebouncer[A, R any](
	wait time.Duration,
	fn Func[A, R],
	opts ...Option,
) *Debouncer[A, R] {
	d, err := NewDebouncer(wait, fn, opts...)
	if err != nil {
		panic(err)
	}

	return d
}
