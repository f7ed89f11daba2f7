// Package metrics counts dictionary lookups by outcome.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OutcomeSuccess is recorded for lookups that produced an entry.
// Failures are recorded with lookup.Kind names.
const OutcomeSuccess = "success"

// Metrics holds lookup collectors on a dedicated registry
type Metrics struct {
	registry *prometheus.Registry
	lookups  *prometheus.CounterVec
	duration prometheus.Histogram
}

// Observe records a finished lookup
func (m *Metrics) Observe(outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(outcome).Inc()
	m.duration.Observe(took.Seconds())
}

// Handler exposes registry for scraping
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// New creates Metrics and registers collectors, including go runtime ones
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dictionary_lookups_total",
			Help: "Total dictionary lookup count by outcome",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dictionary_lookup_duration_seconds",
			Help:    "Dictionary lookup latency",
			Buckets: prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(
		m.lookups,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}
