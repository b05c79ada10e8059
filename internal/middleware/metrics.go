package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	wordSearchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "word_search_total",
			Help: "Total number of dictionary search requests",
		},
		[]string{"cache_hit"},
	)

	bulkImportRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bulk_import_rows_total",
			Help: "Total number of bulk import rows processed",
		},
		[]string{"result"},
	)
)

// MetricsMiddleware collects Prometheus metrics for HTTP requests.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		httpRequestsInFlight.Inc()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}

		c.Next()

		httpRequestsInFlight.Dec()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(duration)
	}
}

// RecordWordSearch records a search request and whether the cache served it.
func RecordWordSearch(cacheHit bool) {
	hit := "false"
	if cacheHit {
		hit = "true"
	}
	wordSearchTotal.WithLabelValues(hit).Inc()
}

// RecordImportRow records the outcome of one bulk import row.
func RecordImportRow(created bool) {
	result := "error"
	if created {
		result = "created"
	}
	bulkImportRowsTotal.WithLabelValues(result).Inc()
}
