package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects cache and validation traffic counters. All methods are
// safe on a nil receiver so instrumentation points never need guards.
type Metrics struct {
	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter
	storeFetches prometheus.Histogram
	validations  *prometheus.CounterVec
	resolutions  prometheus.Counter
}

// New creates the collector set and registers it with the given registerer.
func New(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Term cache hits, absent-sentinel hits included.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Term cache misses that reached the store.",
		}),
		storeFetches: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "fetch_duration_seconds",
			Help:      "Latency of dictionary store round-trips.",
			Buckets:   prometheus.DefBuckets,
		}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "validation",
			Name:      "runs_total",
			Help:      "Validation runs by outcome.",
		}, []string{"outcome"}),
		resolutions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "validation",
			Name:      "resolutions_total",
			Help:      "Values rewritten to their canonical form.",
		}),
	}

	collectors := []prometheus.Collector{
		m.cacheHits, m.cacheMisses, m.storeFetches, m.validations, m.resolutions,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// CacheHit records a lookup answered from the global map.
func (m *Metrics) CacheHit() {
	if m != nil {
		m.cacheHits.Inc()
	}
}

// CacheMiss records a lookup that reached the store.
func (m *Metrics) CacheMiss() {
	if m != nil {
		m.cacheMisses.Inc()
	}
}

// StoreFetch records the duration of one store round-trip.
func (m *Metrics) StoreFetch(d time.Duration) {
	if m != nil {
		m.storeFetches.Observe(d.Seconds())
	}
}

// Validation records a completed validation run.
func (m *Metrics) Validation(ok bool) {
	if m == nil {
		return
	}
	outcome := "invalid"
	if ok {
		outcome = "valid"
	}
	m.validations.WithLabelValues(outcome).Inc()
}

// Resolution records one value rewrite.
func (m *Metrics) Resolution() {
	if m != nil {
		m.resolutions.Inc()
	}
}
