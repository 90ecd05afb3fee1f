package metrics

import "github.com/prometheus/client_golang/prometheus"

// Matching engine Prometheus metrics.
var (
	MatchSessionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "matchdex",
			Name:      "match_sessions_total",
			Help:      "Total number of match sessions",
		},
		[]string{"segment", "complexity"},
	)

	MatchScoringDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "matchdex",
			Name:      "match_scoring_duration_seconds",
			Help:      "End-to-end candidate scoring duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	MatchCandidatesScored = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "matchdex",
			Name:      "match_candidates_scored",
			Help:      "Number of candidates scored per session",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	MatchNoStrongMatchTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "matchdex",
			Name:      "match_no_strong_match_total",
			Help:      "Sessions that produced fewer than two viable recommendations",
		},
	)

	LearningUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "matchdex",
			Name:      "learning_updates_total",
			Help:      "Recorded choice outcomes by result",
		},
		[]string{"segment", "outcome"}, // "applied" / "duplicate" / "conflict"
	)

	WeightConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "matchdex",
			Name:      "weight_conflicts_total",
			Help:      "Concurrent weight update conflicts detected during save",
		},
	)
)

var matchingMetricsRegistered bool

// RegisterMatchingMetrics registers Prometheus matching metrics. Must be called once from main.
func RegisterMatchingMetrics() {
	if matchingMetricsRegistered {
		return
	}
	prometheus.MustRegister(MatchSessionsTotal)
	prometheus.MustRegister(MatchScoringDuration)
	prometheus.MustRegister(MatchCandidatesScored)
	prometheus.MustRegister(MatchNoStrongMatchTotal)
	prometheus.MustRegister(LearningUpdatesTotal)
	prometheus.MustRegister(WeightConflictsTotal)
	matchingMetricsRegistered = true
}
