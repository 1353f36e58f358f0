package compare

import (
	"github.com/kailas-cloud/jsongrade/internal/assign"
	"github.com/kailas-cloud/jsongrade/internal/domain/diff"
	"github.com/kailas-cloud/jsongrade/internal/domain/value"
	"github.com/kailas-cloud/jsongrade/internal/domain/weight"
)

// matchContent reconciles two arrays' elements: it pairs them by solving the
// assignment problem over a pairwise similarity matrix, so the matching is
// globally optimal rather than greedy and does not depend on element order.
// Unmatched expected elements become MissingListItem records at their index,
// unmatched actual elements ExtraListItem records at "extra_<j>". Results
// are appended to out in ascending expected-index order, extras last.
func (c *Comparator) matchContent(
	out *diff.Node,
	expected, actual []value.Value,
	w float64,
	spec weight.Spec,
	suppressed bool,
) {
	content := spec.Content()
	sup := suppressed || content.Suppress()

	// No pairing is attempted against an empty side.
	rowToCol := make([]int, len(expected))
	for i := range rowToCol {
		rowToCol[i] = -1
	}
	if len(expected) > 0 && len(actual) > 0 {
		scores := c.similarityMatrix(expected, actual, w, content)
		rowToCol = assign.MaxSum(scores)

		// A pair below the threshold is no pair: both sides go unmatched.
		threshold := spec.PairingThreshold()
		for i, j := range rowToCol {
			if j >= 0 && scores[i][j] < threshold {
				rowToCol[i] = -1
			}
		}
	}

	matchedCols := make(map[int]bool, len(expected))
	for i, ev := range expected {
		j := rowToCol[i]
		if j < 0 {
			mw := w * spec.MissingWeight()
			if spec.BoostMissing() {
				mw *= WeightedCount(ev, 1, content)
			}
			out.Add(diff.IndexKey(i), diff.Leaf(diff.NewRecord(
				diff.MissingListItem, ev.Scalar(), nil, mw, sup,
			)))
			continue
		}
		matchedCols[j] = true
		out.Add(diff.IndexKey(i), c.Compare(ev, actual[j], w, content, sup))
	}

	for j, av := range actual {
		if matchedCols[j] {
			continue
		}
		ew := w * spec.ExtraWeight()
		if spec.BoostExtra() {
			ew *= WeightedCount(av, 1, content)
		}
		out.Add(diff.ExtraKey(j), diff.Leaf(diff.NewRecord(
			diff.ExtraListItem, nil, av.Scalar(), ew, sup,
		)))
	}
}

// similarityMatrix builds S where S[i][j] is the pair similarity of
// expected[i] and actual[j], or 0 when their kinds differ.
func (c *Comparator) similarityMatrix(
	expected, actual []value.Value,
	w float64,
	content weight.Spec,
) [][]float64 {
	scores := make([][]float64, len(expected))
	for i, ev := range expected {
		scores[i] = make([]float64, len(actual))
		for j, av := range actual {
			if ev.Kind() != av.Kind() {
				continue
			}
			scores[i][j] = c.similarity(ev, av, w, content)
		}
	}
	return scores
}

// similarity reduces a pairwise comparison to [0,1]: 1 for an exact match,
// otherwise the weighted-count ratio clamped at 0.
func (c *Comparator) similarity(expected, actual value.Value, w float64, spec weight.Spec) float64 {
	d := c.Compare(expected, actual, w, spec, false)
	if d.IsEmpty() {
		return 1
	}
	weightedCount := WeightedCount(expected, w, spec)
	if weightedCount == 0 {
		return 0
	}
	s := (weightedCount - d.SumWeights()) / weightedCount
	if s < 0 {
		return 0
	}
	return s
}
