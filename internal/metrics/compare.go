package metrics

import "github.com/prometheus/client_golang/prometheus"

// Comparison Prometheus metrics.
var (
	ComparisonsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jsongrade",
			Name:      "comparisons_total",
			Help:      "Total number of comparisons",
		},
		[]string{"operation", "status"}, // operation: "compare" / "score", status: "ok" / "error"
	)

	ComparisonDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jsongrade",
			Name:      "comparison_duration_seconds",
			Help:      "Comparison duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"operation"},
	)

	SimilarityScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "jsongrade",
			Name:      "similarity_score",
			Help:      "Distribution of similarity scores",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		},
	)
)

var compareMetricsRegistered bool

// RegisterCompareMetrics registers Prometheus comparison metrics. Must be called once from main.
func RegisterCompareMetrics() {
	if compareMetricsRegistered {
		return
	}
	prometheus.MustRegister(ComparisonsTotal)
	prometheus.MustRegister(ComparisonDuration)
	prometheus.MustRegister(SimilarityScore)
	compareMetricsRegistered = true
}
