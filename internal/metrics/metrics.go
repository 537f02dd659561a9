// Package metrics exposes Prometheus metrics for routing and request handling.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultLatencyBuckets are the request duration histogram buckets in seconds.
var DefaultLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// Metrics holds the Prometheus collectors for routing and request handling.
type Metrics struct {
	matchesTotal     *prometheus.CounterVec
	missesTotal      *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
	tableSize        prometheus.Gauge
	registry         *prometheus.Registry
}

// New creates metrics registered on a private registry.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "snx"
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
	}

	m.matchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "matches_total",
			Help:      "Total number of requests matched to a route",
		},
		[]string{"method", "route"},
	)

	m.missesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "misses_total",
			Help:      "Total number of requests that matched no route",
		},
		[]string{"method"},
	)

	m.requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Request duration in seconds",
			Buckets:   DefaultLatencyBuckets,
		},
		[]string{"method", "route", "status"},
	)

	m.requestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of requests currently being served",
		},
	)

	m.tableSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "route_table_size",
			Help:      "Number of routes in the active route table",
		},
	)

	m.registry.MustRegister(
		m.matchesTotal,
		m.missesTotal,
		m.requestDuration,
		m.requestsInFlight,
		m.tableSize,
		collectors.NewGoCollector(),
	)

	return m
}

// RecordMatch counts a request resolved to route. route is the declared
// pattern, which keeps label cardinality bounded.
func (m *Metrics) RecordMatch(method, route string) {
	m.matchesTotal.WithLabelValues(method, route).Inc()
}

// RecordMiss counts a request that matched no route.
func (m *Metrics) RecordMiss(method string) {
	m.missesTotal.WithLabelValues(method).Inc()
}

// RecordRequest observes the duration of a served request.
func (m *Metrics) RecordRequest(method, route string, status int, duration time.Duration) {
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// InFlight increments the in-flight gauge and returns the matching decrement.
func (m *Metrics) InFlight() func() {
	m.requestsInFlight.Inc()
	return m.requestsInFlight.Dec
}

// SetTableSize records the number of routes in the active table.
func (m *Metrics) SetTableSize(n int) {
	m.tableSize.Set(float64(n))
}

// Handler returns an HTTP handler that serves the metrics in Prometheus format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the private registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
