package debounce

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/romdo/go-debounce/v2/clock"
	"github.com/romdo/go-debounce/v2/logger"
)

const instrumentationName = "github.com/romdo/go-debounce/v2"

// Func is the function wrapped by a Debouncer. It receives the context and
// argument of the call that caused the invocation: for deferred invocations,
// that is the latest call made before the invocation.
//
// Deferred invocations (trailing edge and Flush) run after that call has
// returned, so they receive its context with cancellation removed: values
// such as trace spans are kept, but Done never closes.
type Func[A, R any] func(ctx context.Context, arg A) (R, error)

// Debouncer regulates how often a function is invoked in response to a
// stream of calls. It combines configuration and state into a single struct
// with methods for calling, cancelling and flushing the debounced function.
//
// A burst of calls closer together than the wait duration results in at most
// one invocation at its start (leading edge) and one at its end (trailing
// edge), plus one every maxWait if configured.
//
// All methods are safe for concurrent use. The wrapped function runs without
// the Debouncer locked, so it may call back into the same Debouncer, for
// example to schedule its next run. An invocation on the leading edge can
// therefore overlap with one from the timer.
type Debouncer[A, R any] struct {
	// Configuration
	name     string
	fn       Func[A, R]
	wait     time.Duration
	maxWait  time.Duration
	maxing   bool
	leading  bool
	trailing bool
	clock    clock.Clock
	log      logger.Logger
	metrics  *Metrics
	tracer   trace.Tracer

	// State
	mux        sync.Mutex
	pending    bool
	pendingArg A
	pendingCtx context.Context
	lastCall   time.Time
	lastInvoke time.Time
	timer      clock.Timer
	timerGen   uint64
	invokeSeq  uint64
	resultSeq  uint64
	result     R
}

// NewDebouncer creates a new Debouncer invoking fn, with the given wait
// duration and options. Negative wait durations are treated as zero.
//
// By default only the trailing edge invokes fn, with no maximum wait.
// It returns an error wrapping ErrInvalidArgument if fn is nil.
func NewDebouncer[A, R any](
	wait time.Duration,
	fn Func[A, R],
	opts ...Option,
) (*Debouncer[A, R], error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: function is nil", ErrInvalidArgument)
	}

	c, wait := newConfig(wait, opts)
	if c.metrics != nil && c.name == defaultName {
		c.logger.Warnf(
			"debounce: metrics enabled without a name, series are shared "+
				"with every other unnamed debouncer",
		)
	}

	return &Debouncer[A, R]{
		name:     c.name,
		fn:       fn,
		wait:     wait,
		maxWait:  c.maxWait,
		maxing:   c.maxing,
		leading:  c.leading,
		trailing: c.trailing,
		clock:    c.clock,
		log:      c.logger,
		metrics:  c.metrics,
		tracer:   c.tracerProvider.Tracer(instrumentationName),
	}, nil
}

// Call registers a call with arg, and invokes the function if the call starts
// a new burst and leading is enabled, or if maxWait has been exceeded.
//
// When the function is invoked by this call, its result and error are
// returned. Otherwise the result of the last successful invocation is
// returned with a nil error, and arg replaces the argument of any earlier
// call for the next deferred invocation.
func (d *Debouncer[A, R]) Call(ctx context.Context, arg A) (R, error) {
	d.mux.Lock()
	defer d.mux.Unlock()

	now := d.clock.Now()
	isInvoking := d.shouldInvoke(now)

	d.pending = true
	d.pendingArg = arg
	d.pendingCtx = ctx
	d.lastCall = now
	d.metrics.call(d.name)

	if isInvoking {
		if d.timer == nil {
			return d.leadingEdge(now)
		}

		if d.maxing {
			// Calls in a tight loop never leave a quiet period, so force an
			// invocation and start over.
			d.stopTimer()
			d.startTimer(d.wait)
			d.log.Debugf("debounce %s: max wait %s exceeded", d.name, d.maxWait)

			return d.invoke(now, edgeMaxWait)
		}
	}

	// The previous burst ended with a trailing invocation, but this call
	// still needs its own quiet period.
	if d.timer == nil {
		d.startTimer(d.wait)
	}

	return d.result, nil
}

// Cancel discards any pending invocation and resets the debouncer, so that
// the next call is treated as the start of a new burst. The result of the
// last invocation is kept.
func (d *Debouncer[A, R]) Cancel() {
	d.mux.Lock()
	defer d.mux.Unlock()

	d.stopTimer()
	d.clearPending()
	d.lastCall = time.Time{}
	d.lastInvoke = time.Time{}
	d.metrics.cancel(d.name)
	d.log.Debugf("debounce %s: cancelled", d.name)
}

// Flush immediately invokes the function if an invocation is pending, as if
// the trailing edge of the current burst happened now. Without a pending
// invocation it returns the result of the last invocation.
func (d *Debouncer[A, R]) Flush() (R, error) {
	d.mux.Lock()
	defer d.mux.Unlock()

	if d.timer == nil {
		return d.result, nil
	}

	return d.trailingEdge(d.clock.Now(), edgeFlush)
}

// Pending reports whether the current burst has not yet reached its
// trailing edge.
func (d *Debouncer[A, R]) Pending() bool {
	d.mux.Lock()
	defer d.mux.Unlock()

	return d.timer != nil
}

// Result returns the result of the last successful invocation.
func (d *Debouncer[A, R]) Result() R {
	d.mux.Lock()
	defer d.mux.Unlock()

	return d.result
}

// shouldInvoke reports whether a call at now is allowed to invoke the
// function. It should only be called while the mutex is already locked.
func (d *Debouncer[A, R]) shouldInvoke(now time.Time) bool {
	if d.lastCall.IsZero() {
		return true
	}

	sinceCall := now.Sub(d.lastCall)
	sinceInvoke := now.Sub(d.lastInvoke)

	// A negative duration means the clock went backwards.
	return sinceCall >= d.wait ||
		sinceCall < 0 ||
		(d.maxing && sinceInvoke >= d.maxWait)
}

// remainingWait returns how long until the current burst may invoke the
// function. It should only be called while the mutex is already locked.
func (d *Debouncer[A, R]) remainingWait(now time.Time) time.Duration {
	remaining := d.wait - now.Sub(d.lastCall)

	if d.maxing {
		if untilMax := d.maxWait - now.Sub(d.lastInvoke); untilMax < remaining {
			remaining = untilMax
		}
	}

	return max(remaining, 0)
}

// leadingEdge starts a new burst. It should only be called while the mutex is
// already locked.
func (d *Debouncer[A, R]) leadingEdge(now time.Time) (R, error) {
	d.lastInvoke = now
	d.startTimer(d.wait)

	if d.leading {
		return d.invoke(now, edgeLeading)
	}

	return d.result, nil
}

// trailingEdge ends the current burst, invoking the function if a call is
// pending since the last invocation. It should only be called while the mutex
// is already locked.
func (d *Debouncer[A, R]) trailingEdge(now time.Time, edge string) (R, error) {
	d.stopTimer()

	if d.trailing && d.pending {
		return d.invoke(now, edge)
	}

	d.clearPending()

	return d.result, nil
}

// invoke executes the function with the pending call's context and argument,
// and updates the last invoke time. The pending call is consumed even if the
// function fails.
//
// It should only be called while the mutex is already locked, and returns
// with the mutex locked. The mutex is released while the function runs, so
// all state changes for this invocation must be made before calling invoke.
func (d *Debouncer[A, R]) invoke(now time.Time, edge string) (R, error) {
	ctx, arg := d.pendingCtx, d.pendingArg
	d.clearPending()
	d.lastInvoke = now
	d.invokeSeq++
	seq := d.invokeSeq

	if ctx == nil {
		ctx = context.Background()
	}
	if edge == edgeTrailing || edge == edgeFlush {
		// The call that supplied ctx has already returned.
		ctx = context.WithoutCancel(ctx)
	}

	ctx, span := d.tracer.Start(ctx, "debounce.invoke", trace.WithAttributes(
		attribute.String("debounce.name", d.name),
		attribute.String("debounce.edge", edge),
	))
	defer span.End()

	d.log.Debugf("debounce %s: invoking on %s edge", d.name, edge)
	d.metrics.invocation(d.name, edge)

	result, err := d.callUnlocked(ctx, arg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		d.metrics.failure(d.name, edge)

		return result, err
	}

	// Invocations may overlap, keep the result of the most recent one.
	if seq > d.resultSeq {
		d.result = result
		d.resultSeq = seq
	}

	return result, nil
}

// callUnlocked runs the function with the mutex released, so that it may call
// back into the Debouncer. The mutex is locked again when it returns or
// panics.
func (d *Debouncer[A, R]) callUnlocked(ctx context.Context, arg A) (R, error) {
	d.mux.Unlock()
	defer d.mux.Lock()

	return d.fn(ctx, arg)
}

// clearPending discards the pending call. It should only be called while the
// mutex is already locked.
func (d *Debouncer[A, R]) clearPending() {
	var zero A

	d.pending = false
	d.pendingArg = zero
	d.pendingCtx = nil
}
