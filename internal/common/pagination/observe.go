package pagination

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	historyRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "williampedia_history_requests_total",
			Help: "History page requests by status and page bucket",
		},
		[]string{"status", "page_bucket"},
	)

	historyDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "williampedia_history_duration_seconds",
			Help:    "Time spent serving a history page, per layer",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2},
		},
		[]string{"layer"},
	)

	historyErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "williampedia_history_errors_total",
			Help: "History page failures by kind",
		},
		[]string{"kind"},
	)

	// ArticlesSeen is the article count observed by the last history query.
	ArticlesSeen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "williampedia_history_article_count",
			Help: "Article count observed by the most recent history query",
		},
	)
)

// ObserveLayer records how long one layer (handler, service) took.
func ObserveLayer(layer string, since time.Time) {
	historyDuration.WithLabelValues(layer).Observe(time.Since(since).Seconds())
}

// Observation tracks a single history request from parse to response.
type Observation struct {
	logger *slog.Logger
	params Params
	start  time.Time
}

// Begin logs the clamped params and starts the clock.
func Begin(logger *slog.Logger, params Params) *Observation {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("history request", "page", params.Page, "limit", params.Limit)
	return &Observation{logger: logger, params: params, start: time.Now()}
}

// Fail records a failed request. kind is a low-cardinality label such as
// "database" or "internal".
func (o *Observation) Fail(err error, kind string) {
	historyErrors.WithLabelValues(kind).Inc()
	o.logger.Error("history request failed",
		"page", o.params.Page,
		"limit", o.params.Limit,
		"kind", kind,
		"error", err)
}

// Done records a completed request.
func (o *Observation) Done(status, returned int) {
	historyRequests.WithLabelValues(strconv.Itoa(status), pageBucket(o.params.Page)).Inc()
	ObserveLayer("handler", o.start)
	o.logger.Info("history served",
		"page", o.params.Page,
		"limit", o.params.Limit,
		"returned", returned,
		"duration_ms", time.Since(o.start).Milliseconds())
}

func pageBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
