package compare

import (
	"math"

	"github.com/kailas-cloud/jsongrade/internal/domain/diff"
	"github.com/kailas-cloud/jsongrade/internal/domain/value"
	"github.com/kailas-cloud/jsongrade/internal/domain/weight"
)

// Comparator is the recursive diff engine. It is stateless apart from its
// configuration: every Compare call is independent and reentrant.
type Comparator struct {
	cfg Config
}

// New creates a comparator with the given configuration.
func New(cfg Config) *Comparator {
	return &Comparator{cfg: cfg}
}

// Compare diffs actual against expected, threading the accumulated weight w
// and the weight spec for this subtree. The result is the empty composite
// when the values match.
func (c *Comparator) Compare(
	expected, actual value.Value,
	w float64,
	spec weight.Spec,
	suppressed bool,
) *diff.Node {
	if expected.Kind() != actual.Kind() {
		return diff.Leaf(diff.NewRecord(
			diff.TypesNotEqual, expected.KindName(), actual.KindName(), w, suppressed,
		))
	}

	switch expected.Kind() {
	case value.KindBool, value.KindInt, value.KindString:
		return c.scalarDiff(expected, actual, w, suppressed)
	case value.KindFloat:
		return c.floatDiff(expected, actual, w, suppressed)
	case value.KindObject:
		return c.objectDiff(expected, actual, w, spec, suppressed)
	case value.KindArray:
		return c.arrayDiff(expected, actual, w, spec, suppressed)
	default:
		// Null only; identical kinds carry no payload to mismatch on.
		return diff.New()
	}
}

func (c *Comparator) scalarDiff(expected, actual value.Value, w float64, suppressed bool) *diff.Node {
	if expected.Equal(actual) {
		return diff.New()
	}
	return diff.Leaf(diff.NewRecord(
		diff.ValuesNotEqual, expected.Scalar(), actual.Scalar(), w, suppressed,
	))
}

// floatDiff retries the equality after rounding both sides to the configured
// precision. The record keeps the raw values, not the rounded ones.
func (c *Comparator) floatDiff(expected, actual value.Value, w float64, suppressed bool) *diff.Node {
	e, a := expected.Float(), actual.Float()
	if e == a {
		return diff.New()
	}
	if p := c.cfg.FloatPrecision; p != nil {
		if roundTo(e, *p) == roundTo(a, *p) {
			return diff.New()
		}
	}
	return diff.Leaf(diff.NewRecord(diff.ValuesNotEqual, e, a, w, suppressed))
}

// objectDiff reconciles the key union: expected keys in source order, then
// actual-only keys in source order.
func (c *Comparator) objectDiff(
	expected, actual value.Value,
	w float64,
	spec weight.Spec,
	suppressed bool,
) *diff.Node {
	out := diff.New()

	for _, k := range expected.Keys() {
		ev, _ := expected.Get(k)
		child := spec.Child(k)
		sup := suppressed || child.Suppress()

		av, ok := actual.Get(k)
		if !ok {
			kw := w * spec.Weight(k) * spec.MissingWeight()
			if spec.BoostMissing() {
				kw *= WeightedCount(ev, 1, child)
			}
			out.Add(diff.FieldKey(k), diff.Leaf(diff.NewRecord(
				diff.KeyNotExist, k, nil, kw, sup,
			)))
			continue
		}
		out.Add(diff.FieldKey(k), c.Compare(ev, av, w*spec.Weight(k), child, sup))
	}

	for _, k := range actual.Keys() {
		if _, ok := expected.Get(k); ok {
			continue
		}
		av, _ := actual.Get(k)
		child := spec.Child(k)
		kw := w * spec.Weight(k) * spec.ExtraWeight()
		if spec.BoostExtra() {
			kw *= WeightedCount(av, 1, child)
		}
		out.Add(diff.FieldKey(k), diff.Leaf(diff.NewRecord(
			diff.UnexpectedKey, nil, k, kw, suppressed || child.Suppress(),
		)))
	}

	return out
}

// arrayDiff emits the optional length record, then delegates element
// reconciliation to the list matcher.
func (c *Comparator) arrayDiff(
	expected, actual value.Value,
	w float64,
	spec weight.Spec,
	suppressed bool,
) *diff.Node {
	out := diff.New()

	if c.cfg.CheckLength && expected.Len() != actual.Len() {
		lw := w * spec.LengthWeight()
		if c.cfg.LengthDiffPenalty {
			lw *= math.Abs(float64(expected.Len() - actual.Len()))
		}
		out.Add(diff.LengthKey(), diff.Leaf(diff.NewRecord(
			diff.LengthsNotEqual, int64(expected.Len()), int64(actual.Len()), lw, suppressed,
		)))
	}

	c.matchContent(out, expected.Items(), actual.Items(), w, spec, suppressed)
	return out
}

func roundTo(x float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(x*pow) / pow
}
