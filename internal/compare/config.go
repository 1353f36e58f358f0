// Package compare implements the weighted structural comparison engine:
// recursive diffing, optimal list matching and similarity scoring.
package compare

// Config tunes the comparison engine.
type Config struct {
	// FloatPrecision is the number of decimal places two floats are rounded
	// to before the equality retry. Nil disables rounding.
	FloatPrecision *int
	// CheckLength emits a LengthsNotEqual record when array lengths differ.
	CheckLength bool
	// LengthDiffPenalty scales the length penalty by the absolute length
	// difference instead of applying it flat.
	LengthDiffPenalty bool
}

// DefaultConfig mirrors the stock engine defaults: round floats to 2 decimal
// places, check array lengths, no per-element length penalty.
func DefaultConfig() Config {
	precision := 2
	return Config{
		FloatPrecision: &precision,
		CheckLength:    true,
	}
}
