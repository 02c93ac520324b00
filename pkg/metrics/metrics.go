// Package metrics provides Prometheus instrumentation for the storefront
// backend.
//
// Wire it up once in internal/server:
//
//	r.Use(metrics.Middleware())
//	r.Get("/metrics", "metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestDuration tracks how long each HTTP request takes,
	// broken down by method, path, and status code.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "boutique",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts all HTTP requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boutique",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestInFlight tracks how many requests are currently being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "boutique",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// WooRequestDuration tracks latency of outbound WooCommerce API calls.
	WooRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "boutique",
			Subsystem: "woo",
			Name:      "request_duration_seconds",
			Help:      "Duration of WooCommerce REST calls in seconds.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"resource", "status"},
	)

	// CatalogSyncRows counts rows written by catalog cache syncs.
	CatalogSyncRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boutique",
			Subsystem: "sync",
			Name:      "rows_total",
			Help:      "Cache rows written by catalog syncs.",
		},
		[]string{"table"},
	)

	// RevalidateCalls counts page revalidation calls by outcome.
	RevalidateCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boutique",
			Subsystem: "revalidate",
			Name:      "calls_total",
			Help:      "Page-cache revalidation calls issued.",
		},
		[]string{"outcome"}, // "ok" | "failed"
	)

	// CacheHits / CacheMisses track read-through cache effectiveness.
	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boutique",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total cache hits.",
		},
		[]string{"driver"}, // "redis" | "memory"
	)
	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boutique",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total cache misses.",
		},
		[]string{"driver"},
	)
)

// DefaultRegistry is the Prometheus registry for the backend.
// Register custom metrics against this.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		WooRequestDuration,
		CatalogSyncRows,
		RevalidateCalls,
		CacheHits,
		CacheMisses,
	)
}

// Handler returns the /metrics scrape endpoint.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{})
	return func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// Middleware records duration, count and in-flight gauges for every request.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			status := strconv.Itoa(rec.status)
			RequestDuration.WithLabelValues(r.Method, r.URL.Path, status).Observe(time.Since(start).Seconds())
			RequestTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		})
	}
}
