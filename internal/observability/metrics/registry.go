package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Store metrics track article store latency and failures per operation.
var (
	// StoreOperationDuration measures store call duration
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Article store operation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation"},
	)

	// StoreOperationErrors counts failed store calls by error class
	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_errors_total",
			Help: "Total number of failed article store operations",
		},
		[]string{"operation", "class"},
	)

	// StoreBreakerOpen is 1 while the store circuit breaker is open
	StoreBreakerOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "store_circuit_breaker_open",
			Help: "Whether the article store circuit breaker is open (1) or not (0)",
		},
	)

	// DBConnectionsInUse tracks in-use connections of the SQL pool
	DBConnectionsInUse = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_in_use",
			Help: "Number of SQL connections currently in use",
		},
	)

	// DBConnectionsIdle tracks idle connections of the SQL pool
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle SQL connections",
		},
	)
)

// Business metrics track encyclopedia-specific events.
var (
	// ArticlesTotal tracks total number of stored articles
	ArticlesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "articles_total",
			Help: "Total number of articles in the store",
		},
	)

	// VotesTotal counts accepted votes by direction
	VotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_votes_total",
			Help: "Total number of votes recorded",
		},
		[]string{"direction"},
	)

	// SearchQueriesTotal counts title searches by outcome
	SearchQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_search_queries_total",
			Help: "Total number of title searches",
		},
		[]string{"result"}, // result: hit, miss, empty
	)

	// VotesNormalizedTotal counts articles rewritten from the legacy vote shape
	VotesNormalizedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "article_votes_normalized_total",
			Help: "Total number of articles whose votes were normalized to {up, down}",
		},
	)

	// ArticlesImportedTotal counts import outcomes
	ArticlesImportedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_imported_total",
			Help: "Total number of articles processed by the importer",
		},
		[]string{"status"}, // status: created, skipped, invalid
	)
)

// RecordStoreOperation records the latency of a store call and, when err is
// non-nil, an error sample labelled with class.
func RecordStoreOperation(operation string, duration time.Duration, class string) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if class != "" {
		StoreOperationErrors.WithLabelValues(operation, class).Inc()
	}
}

// SetBreakerOpen updates the breaker gauge.
func SetBreakerOpen(open bool) {
	if open {
		StoreBreakerOpen.Set(1)
		return
	}
	StoreBreakerOpen.Set(0)
}

// UpdateDBConnectionStats records SQL pool usage.
func UpdateDBConnectionStats(inUse, idle int) {
	DBConnectionsInUse.Set(float64(inUse))
	DBConnectionsIdle.Set(float64(idle))
}

// UpdateArticlesTotal sets the article count gauge.
func UpdateArticlesTotal(count int64) {
	ArticlesTotal.Set(float64(count))
}

// RecordVote counts one accepted vote.
func RecordVote(direction string) {
	VotesTotal.WithLabelValues(direction).Inc()
}

// RecordSearch counts a title search by how many results it produced.
func RecordSearch(query string, results int) {
	switch {
	case query == "":
		SearchQueriesTotal.WithLabelValues("empty").Inc()
	case results == 0:
		SearchQueriesTotal.WithLabelValues("miss").Inc()
	default:
		SearchQueriesTotal.WithLabelValues("hit").Inc()
	}
}

// RecordVotesNormalized adds n to the normalization counter.
func RecordVotesNormalized(n int64) {
	if n > 0 {
		VotesNormalizedTotal.Add(float64(n))
	}
}

// RecordImport counts one import outcome.
func RecordImport(status string) {
	ArticlesImportedTotal.WithLabelValues(status).Inc()
}
