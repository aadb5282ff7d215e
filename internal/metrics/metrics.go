package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Candidate check results.
const (
	CandidateMatch    = "match"
	CandidateMismatch = "mismatch"
	CandidateError    = "error"
)

// Resolution metrics
var (
	ResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamresolver_resolutions_total",
			Help: "Total number of pipeline runs by operation and outcome (success or error kind).",
		},
		[]string{"operation", "outcome"},
	)

	ResolutionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "streamresolver_resolution_duration_seconds",
			Help:    "Duration of pipeline runs.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)

	// CandidateChecksTotal counts detail lookups made while disambiguating search results.
	CandidateChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamresolver_candidate_checks_total",
			Help: "Total number of candidate detail checks by result.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		ResolutionsTotal,
		ResolutionDuration,
		CandidateChecksTotal,
	)
}

// ObserveResolution records one pipeline run that started at start.
func ObserveResolution(operation, outcome string, start time.Time) {
	ResolutionsTotal.WithLabelValues(operation, outcome).Inc()
	ResolutionDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
