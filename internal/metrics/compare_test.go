package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterCompareMetrics_Idempotent(t *testing.T) {
	// A second call must not panic on duplicate registration.
	RegisterCompareMetrics()
	RegisterCompareMetrics()
}

func TestComparisonMetrics(t *testing.T) {
	ComparisonsTotal.WithLabelValues("compare", "ok").Inc()
	ComparisonsTotal.WithLabelValues("compare", "ok").Inc()
	ComparisonsTotal.WithLabelValues("score", "error").Inc()

	okVal := testutil.ToFloat64(ComparisonsTotal.WithLabelValues("compare", "ok"))
	if okVal < 2 {
		t.Errorf("expected comparisons_total{compare,ok} >= 2, got %f", okVal)
	}

	SimilarityScore.Observe(0.75)
	if count := testutil.CollectAndCount(SimilarityScore); count == 0 {
		t.Error("expected similarity_score to have observations")
	}
}
