// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"jobmatch-workers/internal/models"
)

var scoreBuckets = prometheus.LinearBuckets(10, 10, 10)

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

	MatchOverallScore = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "match_overall_score",
			Help:    "Distribution of overall match scores",
			Buckets: scoreBuckets,
		},
		[]string{"task_type"},
	)

	MatchSubscore = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "match_subscore",
			Help:    "Distribution of match sub-scores by dimension",
			Buckets: scoreBuckets,
		},
		[]string{"dimension"},
	)

	ProfileCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_profile_cache_requests_total",
			Help: "Profile cache lookups by entity and result (hit, miss, error)",
		},
		[]string{"entity", "result"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_notifications_total",
			Help: "Match notifications by channel and status",
		},
		[]string{"channel", "status"},
	)
)

// ObserveMatch records one scored pair.
func ObserveMatch(taskType string, r models.MatchResult) {
	MatchOverallScore.WithLabelValues(taskType).Observe(float64(r.OverallScore))
	MatchSubscore.WithLabelValues("skills").Observe(float64(r.SkillsMatch))
	MatchSubscore.WithLabelValues("experience").Observe(float64(r.ExperienceMatch))
	MatchSubscore.WithLabelValues("location").Observe(float64(r.LocationMatch))
	MatchSubscore.WithLabelValues("salary").Observe(float64(r.SalaryMatch))
}
