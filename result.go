package jsongrade

import (
	"encoding/json"

	"github.com/kailas-cloud/jsongrade/internal/compare"
	"github.com/kailas-cloud/jsongrade/internal/domain/diff"
	"github.com/kailas-cloud/jsongrade/internal/report"
)

// Diff is the reported view of a comparison: the diff tree with suppressed
// records removed. It marshals to the explanation document, with keys in
// the deterministic order the comparison produced them.
type Diff struct {
	node *diff.Node
}

// Empty reports whether the two documents matched.
func (d Diff) Empty() bool { return d.node.IsEmpty() }

// MarshalJSON renders the explanation document.
func (d Diff) MarshalJSON() ([]byte, error) {
	return json.Marshal(report.Render(d.node)) //nolint:wrapcheck // delegating to the renderer
}

// String renders the explanation document as indented JSON.
func (d Diff) String() string {
	out, err := json.MarshalIndent(report.Render(d.node), "", "    ")
	if err != nil {
		return "{}"
	}
	return string(out)
}

// Record is one mismatch from the reported diff, flattened for programmatic
// inspection. Expected and Received carry the scalar payloads involved, a
// type name for type-level mismatches, or nil when the side has nothing to
// show.
type Record struct {
	// Path addresses the mismatch inside the expected document; array
	// positions are rendered as decimal indexes.
	Path []string
	// Kind is the mismatch class name, e.g. "ValuesNotEqual".
	Kind string
	// Message is the human-readable explanation.
	Message  string
	Expected any
	Received any
	// Weight is the penalty this record contributes to WeightedFailed.
	Weight float64
}

// Records flattens the diff into its mismatch records, in the same
// deterministic order the rendered document uses.
func (d Diff) Records() []Record {
	var out []Record
	d.node.Walk(func(path []diff.Key, r diff.Record) {
		p := make([]string, len(path))
		for i, k := range path {
			p[i] = k.String()
		}
		out = append(out, Record{
			Path:     p,
			Kind:     r.Kind().String(),
			Message:  r.Message(),
			Expected: r.Expected(),
			Received: r.Received(),
			Weight:   r.Weight(),
		})
	})
	return out
}

// Result holds the outcome of one comparison. Failed and WeightedFailed
// include suppressed records; Diff does not.
type Result struct {
	// Diff is the suppression-filtered diff view.
	Diff Diff
	// Count is the total scalar count of the expected document.
	Count uint64
	// WeightedCount is the weighted scalar count of the expected document.
	WeightedCount float64
	// Failed is the number of mismatch records.
	Failed uint64
	// WeightedFailed is the total penalty weight of mismatch records.
	WeightedFailed float64
	// Similarity is the normalized match ratio in [0,1].
	Similarity float64
}

func newResult(r compare.Result) Result {
	return Result{
		Diff:           Diff{node: r.Diff()},
		Count:          r.Count(),
		WeightedCount:  r.WeightedCount(),
		Failed:         r.Failed(),
		WeightedFailed: r.WeightedFailed(),
		Similarity:     r.Similarity(),
	}
}
