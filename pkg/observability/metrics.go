package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Path query outcomes
const (
	OutcomeFound = "found"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Record metrics
	RecordsCreated *prometheus.CounterVec
	RecordsRemoved *prometheus.CounterVec

	// Connectivity metrics
	Connections      prometheus.Gauge
	ConnectionEvents *prometheus.CounterVec

	// Path query metrics
	PathQueries       *prometheus.CounterVec
	PathQueryDuration *prometheus.HistogramVec
	PathLength        *prometheus.HistogramVec

	// CQRS metrics
	Commands      *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec
}

// NewCollector creates a new metrics collector with the given namespace.
// Each collector owns its registry, so several can coexist in tests.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RecordsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_created_total",
				Help:      "Total number of affiliations and publications created",
			},
			[]string{"kind"},
		),
		RecordsRemoved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_removed_total",
				Help:      "Total number of affiliations and publications removed",
			},
			[]string{"kind"},
		),
		Connections: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "connections",
				Help:      "Number of live affiliation connections",
			},
		),
		ConnectionEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "connection_events_total",
				Help:      "Connectivity index changes by event type",
			},
			[]string{"type"},
		),
		PathQueries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "path_queries_total",
				Help:      "Total number of path queries by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		PathQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "path_query_duration_seconds",
				Help:      "Path query duration in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 10),
			},
			[]string{"kind"},
		),
		PathLength: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "path_length_hops",
				Help:      "Number of connections on returned paths",
				Buckets:   prometheus.LinearBuckets(1, 1, 12),
			},
			[]string{"kind"},
		),
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Total number of dispatched commands",
			},
			[]string{"command", "status"},
		),
		QueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "query_duration_seconds",
				Help:      "Query handler duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"query", "status"},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.RecordsCreated,
		c.RecordsRemoved,
		c.Connections,
		c.ConnectionEvents,
		c.PathQueries,
		c.PathQueryDuration,
		c.PathLength,
		c.Commands,
		c.QueryDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// ObservePathQuery records one path query
func (c *Collector) ObservePathQuery(kind, outcome string, hops int, duration time.Duration) {
	c.PathQueries.WithLabelValues(kind, outcome).Inc()
	c.PathQueryDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if outcome == OutcomeFound {
		c.PathLength.WithLabelValues(kind).Observe(float64(hops))
	}
}

// ObserveHTTPRequest records one served HTTP request
func (c *Collector) ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, status).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// GetRegistry returns the Prometheus registry for this collector
func (c *Collector) GetRegistry() *prometheus.Registry {
	return c.registry
}

// Handler exposes the registry in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
