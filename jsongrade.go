// Package jsongrade compares an actual JSON-like document against an
// expected reference, producing a weighted structural diff and a normalized
// similarity score. Arrays are matched by a globally optimal assignment, so
// reordered lists do not produce spurious per-index mismatches; a caller
// supplied weight specification tunes per-field importance.
package jsongrade

import (
	"errors"
	"fmt"
	"io"

	"github.com/kailas-cloud/jsongrade/internal/compare"
	"github.com/kailas-cloud/jsongrade/internal/domain/value"
	"github.com/kailas-cloud/jsongrade/internal/domain/weight"
	"github.com/kailas-cloud/jsongrade/internal/ignore"
)

// ErrMalformedInput signals a document that could not be converted into the
// comparison value model.
var ErrMalformedInput = errors.New("malformed input document")

// Comparer grades documents against a reference. It is immutable after New
// and safe for concurrent use: each comparison is an independent pure
// computation.
type Comparer struct {
	engine *compare.Comparator
	spec   weight.Spec
	rules  ignore.Rules
}

// New creates a Comparer. Weight and rule options are validated here: a
// malformed weight spec fails with *weight.InvalidSpecError, malformed rules
// with ignore.ErrInvalidRules.
func New(opts ...Option) (*Comparer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	spec, err := weight.Parse(o.weights)
	if err != nil {
		return nil, fmt.Errorf("jsongrade: parse weights: %w", err)
	}
	rules, err := ignore.Parse(o.rules)
	if err != nil {
		return nil, fmt.Errorf("jsongrade: parse rules: %w", err)
	}

	return &Comparer{
		engine: compare.New(o.cfg.internal()),
		spec:   spec,
		rules:  rules,
	}, nil
}

// Check compares two generically decoded documents (the shapes produced by
// encoding/json and yaml.v3) and returns the diff view. Map key iteration is
// made deterministic by sorting; use CheckJSON to keep source order.
func (c *Comparer) Check(expected, actual any) (Diff, error) {
	e, a, err := c.prepare(expected, actual)
	if err != nil {
		return Diff{}, err
	}
	return c.check(e, a), nil
}

// CheckJSON compares two JSON documents read from their sources, preserving
// object key order for diff iteration.
func (c *Comparer) CheckJSON(expected, actual io.Reader) (Diff, error) {
	e, a, err := c.prepareJSON(expected, actual)
	if err != nil {
		return Diff{}, err
	}
	return c.check(e, a), nil
}

// Score compares two generically decoded documents and returns the full
// result: diff view, counts and similarity.
func (c *Comparer) Score(expected, actual any) (Result, error) {
	e, a, err := c.prepare(expected, actual)
	if err != nil {
		return Result{}, err
	}
	return c.score(e, a), nil
}

// ScoreJSON compares two JSON documents read from their sources and returns
// the full result.
func (c *Comparer) ScoreJSON(expected, actual io.Reader) (Result, error) {
	e, a, err := c.prepareJSON(expected, actual)
	if err != nil {
		return Result{}, err
	}
	return c.score(e, a), nil
}

func (c *Comparer) prepare(expected, actual any) (value.Value, value.Value, error) {
	e, err := value.From(expected)
	if err != nil {
		return value.Value{}, value.Value{}, fmt.Errorf("jsongrade: expected: %w: %w", ErrMalformedInput, err)
	}
	a, err := value.From(actual)
	if err != nil {
		return value.Value{}, value.Value{}, fmt.Errorf("jsongrade: actual: %w: %w", ErrMalformedInput, err)
	}
	return c.rules.Apply(e), c.rules.Apply(a), nil
}

func (c *Comparer) prepareJSON(expected, actual io.Reader) (value.Value, value.Value, error) {
	e, err := value.Decode(expected)
	if err != nil {
		return value.Value{}, value.Value{}, fmt.Errorf("jsongrade: expected: %w: %w", ErrMalformedInput, err)
	}
	a, err := value.Decode(actual)
	if err != nil {
		return value.Value{}, value.Value{}, fmt.Errorf("jsongrade: actual: %w: %w", ErrMalformedInput, err)
	}
	return c.rules.Apply(e), c.rules.Apply(a), nil
}

func (c *Comparer) check(e, a value.Value) Diff {
	res := c.score(e, a)
	return res.Diff
}

func (c *Comparer) score(e, a value.Value) Result {
	w := c.spec.SelfWeight()
	d := c.engine.Compare(e, a, w, c.spec, c.spec.Suppress())
	return newResult(compare.BuildResult(d, e, w, c.spec))
}
