package jsongrade

import "github.com/kailas-cloud/jsongrade/internal/compare"

// Config tunes the comparison engine.
type Config struct {
	// FloatPrecision is the number of decimal places floats are rounded to
	// before the equality retry. Nil disables rounding.
	FloatPrecision *int
	// CheckLength emits a length-mismatch record when array lengths differ.
	CheckLength bool
	// LengthDiffPenalty scales the length penalty by the absolute length
	// difference.
	LengthDiffPenalty bool
}

// DefaultConfig returns the stock engine settings: floats rounded to 2
// decimal places, array length checked, no per-element length penalty.
func DefaultConfig() Config {
	precision := 2
	return Config{
		FloatPrecision: &precision,
		CheckLength:    true,
	}
}

func (c Config) internal() compare.Config {
	return compare.Config{
		FloatPrecision:    c.FloatPrecision,
		CheckLength:       c.CheckLength,
		LengthDiffPenalty: c.LengthDiffPenalty,
	}
}

type options struct {
	cfg     Config
	weights any
	rules   any
}

func defaultOptions() options {
	return options{cfg: DefaultConfig()}
}

// Option configures a Comparer.
type Option func(*options)

// WithConfig replaces the engine configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithWeights sets the weight specification as a generically decoded tree:
// per-key numbers or nested specs plus the underscore control keys
// (_weight, _content, _length, _missing, _extra, _boost_missing,
// _boost_extra, _pairing_threshold, _suppress).
func WithWeights(weights any) Option {
	return func(o *options) { o.weights = weights }
}

// WithRules sets the ignore rules applied to both documents before
// comparison: "*" (or true) drops a field, nested rules recurse, a rule on
// an array applies to every element.
func WithRules(rules any) Option {
	return func(o *options) { o.rules = rules }
}

// WithFloatPrecision sets the decimal places for float rounding.
func WithFloatPrecision(places int) Option {
	return func(o *options) { o.cfg.FloatPrecision = &places }
}

// WithoutFloatRounding compares floats exactly.
func WithoutFloatRounding() Option {
	return func(o *options) { o.cfg.FloatPrecision = nil }
}

// WithoutLengthCheck skips length-mismatch records for arrays.
func WithoutLengthCheck() Option {
	return func(o *options) { o.cfg.CheckLength = false }
}

// WithLengthDiffPenalty scales the length penalty by the absolute length
// difference.
func WithLengthDiffPenalty() Option {
	return func(o *options) { o.cfg.LengthDiffPenalty = true }
}
