package http

import (
	"net/http"
	"strconv"
	"time"

	"williampedia/internal/handler/http/pathutil"
	"williampedia/internal/handler/http/responsewriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPMetrics holds the request collectors for one registry.
type HTTPMetrics struct {
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	inFlight  prometheus.Gauge
	respBytes *prometheus.HistogramVec
}

// NewHTTPMetrics registers the request collectors on reg.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	f := promauto.With(reg)
	return &HTTPMetrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "williampedia_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		// 5ms..10s covers p99 on the read endpoints.
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "williampedia_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "route", "status"}),
		inFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "williampedia_http_requests_in_flight",
			Help: "Requests currently being served",
		}),
		respBytes: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "williampedia_http_response_size_bytes",
			Help:    "Response body size",
			Buckets: prometheus.ExponentialBuckets(100, 10, 7),
		}, []string{"route"}),
	}
}

var defaultHTTPMetrics = NewHTTPMetrics(prometheus.DefaultRegisterer)

// Middleware records one observation per request. Routes carrying a slug
// or id are collapsed to their template by pathutil.NormalizePath.
func (m *HTTPMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		route := pathutil.NormalizePath(r.URL.Path)
		rw := responsewriter.Wrap(w)
		start := time.Now()
		next.ServeHTTP(rw, r)

		status := strconv.Itoa(rw.StatusCode())
		m.requests.WithLabelValues(r.Method, route, status).Inc()
		m.latency.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
		m.respBytes.WithLabelValues(route).Observe(float64(rw.BytesWritten()))
	})
}

// MetricsMiddleware records into the default registry.
func MetricsMiddleware(next http.Handler) http.Handler {
	return defaultHTTPMetrics.Middleware(next)
}

// MetricsHandler serves the default registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
