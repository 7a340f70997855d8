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

	EngineMatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_match_total",
			Help: "Total number of engine replies by winning strategy",
		},
		[]string{"strategy"},
	)

	EngineNoMatch = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_no_match_total",
			Help: "Total number of turns answered by the default reply",
		},
	)

	EscalationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escalations_sent_total",
			Help: "Total number of support escalations by channel",
		},
		[]string{"channel"},
	)
)
