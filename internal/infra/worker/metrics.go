package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks job executions.
//
//   - worker_job_runs_total{job,status}: runs by outcome (success, failure)
//   - worker_job_duration_seconds{job}: run duration
//   - worker_job_last_success_timestamp{job}: Unix time of the last successful run
type Metrics struct {
	JobRunsTotal        *prometheus.CounterVec
	JobDurationSeconds  *prometheus.HistogramVec
	LastSuccessUnixTime *prometheus.GaugeVec
}

// NewMetrics creates the job metrics and registers them with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		JobRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_job_runs_total",
			Help: "Total number of maintenance job runs by job and status",
		}, []string{"job", "status"}),

		JobDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of maintenance job runs in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
		}, []string{"job"}),

		LastSuccessUnixTime: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "worker_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful run of each job",
		}, []string{"job"}),
	}
}

// RecordRun records one finished run of job.
func (m *Metrics) RecordRun(job string, seconds float64, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.JobRunsTotal.WithLabelValues(job, status).Inc()
	m.JobDurationSeconds.WithLabelValues(job).Observe(seconds)
	if err == nil {
		m.LastSuccessUnixTime.WithLabelValues(job).SetToCurrentTime()
	}
}
