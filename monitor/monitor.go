// monitor/monitor.go
package monitor

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	FramesServed         prometheus.Counter
	VerificationFailures prometheus.Counter
	ActiveMatches        prometheus.Gauge
	VerifyLatency        prometheus.Histogram
}

func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FramesServed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_served_total",
			Help:      "Total number of frame screens rendered",
		}),
		VerificationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verification_failures_total",
			Help:      "Total number of rejected frame actions",
		}),
		ActiveMatches: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_matches",
			Help:      "Number of matches currently held in the store",
		}),
		VerifyLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "verify_latency_seconds",
			Help:      "Frame action verification latency",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10),
		}),
	}

	reg.MustRegister(
		m.FramesServed,
		m.VerificationFailures,
		m.ActiveMatches,
		m.VerifyLatency,
	)

	return m
}

type Monitor struct {
	metrics  *Metrics
	registry *prometheus.Registry
}

// NewMonitor builds a monitor with its own registry so repeated
// construction never trips duplicate registration.
func NewMonitor(namespace string) *Monitor {
	registry := prometheus.NewRegistry()
	return &Monitor{
		metrics:  NewMetrics(namespace, registry),
		registry: registry,
	}
}

// Handler exposes the registry for mounting under /metrics.
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Monitor) IncFramesServed() {
	m.metrics.FramesServed.Inc()
}

func (m *Monitor) IncVerificationFailures() {
	m.metrics.VerificationFailures.Inc()
}

func (m *Monitor) SetActiveMatches(count int) {
	m.metrics.ActiveMatches.Set(float64(count))
}

func (m *Monitor) ObserveVerifyLatency(duration time.Duration) {
	m.metrics.VerifyLatency.Observe(duration.Seconds())
}
