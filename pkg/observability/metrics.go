package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Cache metrics
	CacheHits          *prometheus.CounterVec
	CacheMisses        *prometheus.CounterVec
	CacheEvictions     prometheus.Counter
	CacheCoalesced     *prometheus.CounterVec
	CacheInvalidations prometheus.Counter

	// Backend query metrics
	BackendQueries  *prometheus.CounterVec
	BackendDuration *prometheus.HistogramVec

	// Preload metrics
	PreloadQueries *prometheus.CounterVec
}

// NewCollector creates a new metrics collector with the given namespace
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	cacheHits := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of cache hits",
		},
		[]string{"category"},
	)

	cacheMisses := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of cache misses",
		},
		[]string{"category"},
	)

	cacheEvictions := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_evictions_total",
			Help:      "Total number of cache entries evicted",
		},
	)

	cacheCoalesced := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_coalesced_total",
			Help:      "Total number of calls that joined an in-flight backend query",
		},
		[]string{"category"},
	)

	cacheInvalidations := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_invalidations_total",
			Help:      "Total number of cache entries removed by write invalidation",
		},
	)

	backendQueries := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_queries_total",
			Help:      "Total number of analytical backend queries issued",
		},
		[]string{"category", "outcome"},
	)

	backendDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_query_duration_seconds",
			Help:      "Analytical backend query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"category"},
	)

	preloadQueries := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preload_queries_total",
			Help:      "Total number of warmup queries fired",
		},
		[]string{"outcome"},
	)

	registry.MustRegister(
		httpRequests,
		httpDuration,
		cacheHits,
		cacheMisses,
		cacheEvictions,
		cacheCoalesced,
		cacheInvalidations,
		backendQueries,
		backendDuration,
		preloadQueries,
	)

	return &Collector{
		registry:           registry,
		HTTPRequests:       httpRequests,
		HTTPDuration:       httpDuration,
		CacheHits:          cacheHits,
		CacheMisses:        cacheMisses,
		CacheEvictions:     cacheEvictions,
		CacheCoalesced:     cacheCoalesced,
		CacheInvalidations: cacheInvalidations,
		BackendQueries:     backendQueries,
		BackendDuration:    backendDuration,
		PreloadQueries:     preloadQueries,
	}
}

// Handler returns the HTTP handler serving this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records a completed HTTP request.
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, httpStatusLabel(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveBackendQuery records one real backend call.
func (c *Collector) ObserveBackendQuery(category string, err error, elapsed time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.BackendQueries.WithLabelValues(category, outcome).Inc()
	c.BackendDuration.WithLabelValues(category).Observe(elapsed.Seconds())
}

func httpStatusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
