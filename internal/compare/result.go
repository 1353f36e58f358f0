package compare

import (
	"github.com/kailas-cloud/jsongrade/internal/domain/diff"
	"github.com/kailas-cloud/jsongrade/internal/domain/value"
	"github.com/kailas-cloud/jsongrade/internal/domain/weight"
)

// Result aggregates a raw diff tree into counts and a similarity ratio
// (immutable value object). Suppression is a display concern only: Failed
// and WeightedFailed are computed from the unfiltered tree, while Diff
// returns the tree with suppressed records removed.
type Result struct {
	filtered       *diff.Node
	count          uint64
	weightedCount  float64
	failed         uint64
	weightedFailed float64
}

// BuildResult reduces a raw diff tree against the expected value it was
// produced from, using the same root weight and spec the comparison ran with.
func BuildResult(d *diff.Node, expected value.Value, w float64, spec weight.Spec) Result {
	return Result{
		filtered:       d.FilterSuppressed(),
		count:          AttributeCount(expected),
		weightedCount:  WeightedCount(expected, w, spec),
		failed:         d.CountRecords(),
		weightedFailed: d.SumWeights(),
	}
}

// Diff returns the suppression-filtered diff tree.
func (r Result) Diff() *diff.Node { return r.filtered }

// Count returns the total scalar count of the expected value.
func (r Result) Count() uint64 { return r.count }

// WeightedCount returns the total weighted scalar count of the expected value.
func (r Result) WeightedCount() float64 { return r.weightedCount }

// Failed returns the number of mismatch records, suppressed ones included.
func (r Result) Failed() uint64 { return r.failed }

// WeightedFailed returns the total penalty weight, suppressed ones included.
func (r Result) WeightedFailed() float64 { return r.weightedFailed }

// Similarity returns the normalized match ratio in [0,1]. Boosted penalties
// can push WeightedFailed past WeightedCount, so the ratio clamps at 0.
func (r Result) Similarity() float64 {
	if r.weightedCount == 0 {
		return 0
	}
	s := (r.weightedCount - r.weightedFailed) / r.weightedCount
	if s < 0 {
		return 0
	}
	return s
}
