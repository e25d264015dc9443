package debounce

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	edgeLeading  = "leading"
	edgeTrailing = "trailing"
	edgeMaxWait  = "max_wait"
	edgeFlush    = "flush"
)

// Metrics holds the Prometheus collectors shared by instrumented debouncers.
// All collectors are labeled with the debouncer name, and invocation
// collectors also with the edge that caused the invocation: "leading",
// "trailing", "max_wait" or "flush".
type Metrics struct {
	Calls       *prometheus.CounterVec
	Invocations *prometheus.CounterVec
	Failures    *prometheus.CounterVec
	Cancels     *prometheus.CounterVec
	Pending     *prometheus.GaugeVec
}

// NewMetrics creates and registers debounce collectors with reg. If reg is
// nil, prometheus.DefaultRegisterer is used.
//
// Calling NewMetrics again with the same registerer returns Metrics backed by
// the collectors registered first. It panics if reg already holds a different
// collector with one of the same names.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := registerer{reg}

	return &Metrics{
		Calls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "debounce",
				Name:      "calls_total",
				Help:      "Total number of calls to debounced functions",
			},
			[]string{"debouncer"},
		),

		Invocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "debounce",
				Name:      "invocations_total",
				Help:      "Total number of invocations of the wrapped function",
			},
			[]string{"debouncer", "edge"},
		),

		Failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "debounce",
				Name:      "failures_total",
				Help:      "Total number of invocations that returned an error",
			},
			[]string{"debouncer", "edge"},
		),

		Cancels: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "debounce",
				Name:      "cancels_total",
				Help:      "Total number of cancellations",
			},
			[]string{"debouncer"},
		),

		Pending: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "debounce",
				Name:      "pending",
				Help:      "Whether a deferred invocation is currently scheduled",
			},
			[]string{"debouncer"},
		),
	}
}

// registerer creates collectors like promauto, but reuses a collector that is
// already registered instead of panicking.
type registerer struct {
	reg prometheus.Registerer
}

func (r registerer) NewCounterVec(
	opts prometheus.CounterOpts,
	labels []string,
) *prometheus.CounterVec {
	return register(r.reg, prometheus.NewCounterVec(opts, labels))
}

func (r registerer) NewGaugeVec(
	opts prometheus.GaugeOpts,
	labels []string,
) *prometheus.GaugeVec {
	return register(r.reg, prometheus.NewGaugeVec(opts, labels))
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	err := reg.Register(c)
	if err == nil {
		return c
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing
		}
	}

	panic(err)
}

func (m *Metrics) call(name string) {
	if m == nil {
		return
	}
	m.Calls.WithLabelValues(name).Inc()
}

func (m *Metrics) invocation(name, edge string) {
	if m == nil {
		return
	}
	m.Invocations.WithLabelValues(name, edge).Inc()
}

func (m *Metrics) failure(name, edge string) {
	if m == nil {
		return
	}
	m.Failures.WithLabelValues(name, edge).Inc()
}

func (m *Metrics) cancel(name string) {
	if m == nil {
		return
	}
	m.Cancels.WithLabelValues(name).Inc()
}

func (m *Metrics) setPending(name string, pending bool) {
	if m == nil {
		return
	}

	v := 0.0
	if pending {
		v = 1
	}
	m.Pending.WithLabelValues(name).Set(v)
}
