// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	// MatchRequests counts matcher calls by entry point and whether anything matched.
	MatchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_match_requests_total",
			Help: "Provider match requests by channel and outcome",
		},
		[]string{"channel", "outcome"},
	)

	MatchResultSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_match_result_size",
			Help:    "Number of providers returned per match",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
		},
		[]string{"channel"},
	)

	CatalogProviders = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_providers",
			Help: "Providers in the loaded catalog snapshot",
		},
		[]string{"source"},
	)
)

// Match outcomes.
const (
	OutcomeMatched = "matched"
	OutcomeNoMatch = "no_match"
)

// RecordMatch updates the match counters for one request.
func RecordMatch(channel string, results int) {
	outcome := OutcomeMatched
	if results == 0 {
		outcome = OutcomeNoMatch
	}
	MatchRequests.WithLabelValues(channel, outcome).Inc()
	MatchResultSize.WithLabelValues(channel).Observe(float64(results))
}
