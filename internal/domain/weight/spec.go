// Package weight holds the sparse importance-multiplier tree threaded through
// a comparison alongside the document tree.
package weight

// Reserved control keys, usable at any object or array node of a spec.
const (
	KeyWeight           = "_weight"
	KeyContent          = "_content"
	KeyLength           = "_length"
	KeyMissing          = "_missing"
	KeyExtra            = "_extra"
	KeyBoostMissing     = "_boost_missing"
	KeyBoostExtra       = "_boost_extra"
	KeyPairingThreshold = "_pairing_threshold"
	KeySuppress         = "_suppress"
)

type specKind int

const (
	kindEmpty specKind = iota
	kindNumber
	kindBool
	kindTree
)

// Spec is a node of the weight specification: a bare number (uniform weight
// shorthand), a tree of per-key entries and control keys, or empty (all
// defaults). The zero value is the empty spec. Specs are shared read-only
// through the whole comparison and never mutated.
type Spec struct {
	kind    specKind
	number  float64
	boolean bool
	tree    map[string]Spec
}

// Number builds a bare-number spec (uniform weight for every key beneath).
func Number(n float64) Spec {
	return Spec{kind: kindNumber, number: n}
}

// IsEmpty reports whether the spec carries no weights or flags.
func (s Spec) IsEmpty() bool { return s.kind == kindEmpty }

// Weight returns the multiplier for key: the bare-number entry itself, a
// nested entry's _weight (default 1), or 1 when absent. A bare-number spec
// yields its number for every key.
func (s Spec) Weight(key string) float64 {
	switch s.kind {
	case kindNumber:
		return s.number
	case kindTree:
		entry, ok := s.tree[key]
		if !ok {
			return 1
		}
		switch entry.kind {
		case kindNumber:
			return entry.number
		case kindTree:
			return entry.SelfWeight()
		default:
			return 1
		}
	default:
		return 1
	}
}

// SelfWeight returns this node's own _weight multiplier, default 1.
func (s Spec) SelfWeight() float64 {
	return s.controlNumber(KeyWeight, 1)
}

// Child returns the nested spec for a data key. Bare-number entries carry no
// children, so they (and absent keys) yield the empty spec.
func (s Spec) Child(key string) Spec {
	if s.kind != kindTree {
		return Spec{}
	}
	entry := s.tree[key]
	if entry.kind != kindTree {
		return Spec{}
	}
	return entry
}

// Content returns the spec applied uniformly to every array element. Unlike
// Child, a bare-number _content survives: it is the uniform-weight shorthand.
func (s Spec) Content() Spec {
	if s.kind != kindTree {
		return Spec{}
	}
	return s.tree[KeyContent]
}

// LengthWeight returns the multiplier for the length-mismatch penalty.
func (s Spec) LengthWeight() float64 { return s.controlNumber(KeyLength, 1) }

// MissingWeight returns the multiplier for unmatched-expected penalties.
func (s Spec) MissingWeight() float64 { return s.controlNumber(KeyMissing, 1) }

// ExtraWeight returns the multiplier for unmatched-actual penalties.
func (s Spec) ExtraWeight() float64 { return s.controlNumber(KeyExtra, 1) }

// PairingThreshold returns the minimum similarity for an array pair to
// survive matching, default 0.
func (s Spec) PairingThreshold() float64 {
	return s.controlNumber(KeyPairingThreshold, 0)
}

// BoostMissing reports whether missing penalties scale with the weighted
// attribute count of the unmatched subtree.
func (s Spec) BoostMissing() bool { return s.controlBool(KeyBoostMissing) }

// BoostExtra reports whether extra penalties scale with the weighted
// attribute count of the unmatched subtree.
func (s Spec) BoostExtra() bool { return s.controlBool(KeyBoostExtra) }

// Suppress reports whether errors under this node are marked suppressed.
func (s Spec) Suppress() bool { return s.controlBool(KeySuppress) }

func (s Spec) controlNumber(key string, def float64) float64 {
	if s.kind != kindTree {
		return def
	}
	entry, ok := s.tree[key]
	if !ok || entry.kind != kindNumber {
		return def
	}
	return entry.number
}

func (s Spec) controlBool(key string) bool {
	if s.kind != kindTree {
		return false
	}
	entry, ok := s.tree[key]
	if !ok || entry.kind != kindBool {
		return false
	}
	return entry.boolean
}
