package debounce

import (
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/romdo/go-debounce/v2/clock"
	"github.com/romdo/go-debounce/v2/logger"
)

const defaultName = "debounce"

// Option is a function that can be used to configure a debouncer.
type Option func(*config)

type config struct {
	name     string
	maxWait  time.Duration
	maxing   bool
	leading  bool
	trailing bool

	clock          clock.Clock
	logger         logger.Logger
	metrics        *Metrics
	tracerProvider trace.TracerProvider
}

// newConfig applies opts on top of the defaults, and normalizes the wait
// durations: negative values become zero, and maxWait is never shorter than
// wait.
func newConfig(wait time.Duration, opts []Option) (config, time.Duration) {
	c := config{
		name:     defaultName,
		trailing: true,
	}
	for _, opt := range opts {
		opt(&c)
	}

	if c.clock == nil {
		c.clock = clock.New()
	}
	if c.logger == nil {
		c.logger = logger.Noop{}
	}
	if c.tracerProvider == nil {
		c.tracerProvider = otel.GetTracerProvider()
	}

	if wait < 0 {
		wait = 0
	}
	if c.maxing {
		c.maxWait = max(c.maxWait, wait)
	}

	return c, wait
}

// WithLeading controls whether the function is invoked immediately on the
// first call of a burst. Defaults to false.
//
// When only leading is enabled, a burst of calls immediately invokes the
// function, and any subsequent calls are ignored until the wait duration has
// passed since the last call.
func WithLeading(enabled bool) Option {
	return func(c *config) {
		c.leading = enabled
	}
}

// WithTrailing controls whether the function is invoked after the wait
// duration has passed since the last call of a burst. Defaults to true.
//
// If both leading and trailing are enabled, a burst of calls immediately
// invokes the function, followed by another invocation once the burst is
// over. If only a single call is made, only one invocation will occur.
func WithTrailing(enabled bool) Option {
	return func(c *config) {
		c.trailing = enabled
	}
}

// WithMaxWait sets the maximum time the function is allowed to be delayed
// since its last invocation, even if it is called repeatedly within the wait
// duration.
//
// Without a max wait, the debounced function might never be invoked if it is
// called repeatedly within the wait duration. For example, if the wait
// duration is 100ms and the max wait duration is 500ms, the function will be
// invoked at least every 500ms, even if called non-stop every 10ms.
//
// A maxWait shorter than wait is raised to wait.
func WithMaxWait(maxWait time.Duration) Option {
	return func(c *config) {
		if maxWait < 0 {
			maxWait = 0
		}
		c.maxWait = maxWait
		c.maxing = true
	}
}

// WithName sets the name used in log messages, metric labels and span
// attributes.
func WithName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.name = name
		}
	}
}

// WithClock sets the clock used to read the time and to schedule deferred
// invocations. Defaults to the system clock.
func WithClock(clk clock.Clock) Option {
	return func(c *config) {
		c.clock = clk
	}
}

// WithLogger sets the logger. Defaults to logger.Noop.
func WithLogger(l logger.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithMetrics records calls, invocations, failures and cancellations to m.
//
// A single Metrics can be shared by many debouncers, but each of them must
// then be given its own name with WithName. Series are labeled by name only,
// so debouncers left with the default name would overwrite each other's
// pending gauge. NewDebouncer logs a warning when metrics are enabled without
// a name.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithTracerProvider sets the provider of the tracer used to create a span
// around every invocation. Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		c.tracerProvider = tp
	}
}
