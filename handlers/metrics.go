package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Metrics middleware behaviour.
type MetricsConfig struct {
	// Namespace prefixes every metric name. Defaults to "http".
	Namespace string

	// Registerer receives the metrics. Defaults to the global
	// prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
}

// MetricsMiddleware returns a middleware recording a request counter and a
// duration histogram, labeled by method and status code.
func MetricsMiddleware(cfg MetricsConfig) Middleware {
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "http"
	}
	reg := cfg.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	requests := promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "requests_total",
			Help:      "Total number of handled HTTP requests.",
		},
		[]string{"method", "status"},
	)

	duration := promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "request_duration_seconds",
			Help:      "HTTP request handling duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)

			status := strconv.Itoa(rw.status)
			requests.WithLabelValues(r.Method, status).Inc()
			duration.WithLabelValues(r.Method, status).Observe(time.Since(start).Seconds())
		})
	}
}
