// Package diff holds the comparison output tree: ordered composites of
// error records keyed by object fields and array positions.
package diff

import "fmt"

// Kind discriminates the mismatch taxonomy. Every mismatch found by the
// comparator becomes a record of one of these kinds; there is no error path.
type Kind int

const (
	TypesNotEqual Kind = iota
	ValuesNotEqual
	KeyNotExist
	UnexpectedKey
	LengthsNotEqual
	MissingListItem
	ExtraListItem
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case TypesNotEqual:
		return "TypesNotEqual"
	case ValuesNotEqual:
		return "ValuesNotEqual"
	case KeyNotExist:
		return "KeyNotExist"
	case UnexpectedKey:
		return "UnexpectedKey"
	case LengthsNotEqual:
		return "LengthsNotEqual"
	case MissingListItem:
		return "MissingListItem"
	case ExtraListItem:
		return "ExtraListItem"
	default:
		return "Unknown"
	}
}

// Record is a single mismatch leaf (immutable value object). Expected and
// received carry the scalar payloads involved, a type name for composite or
// type-level mismatches, or nil when the side has nothing to show.
type Record struct {
	kind       Kind
	expected   any
	received   any
	weight     float64
	suppressed bool
}

// NewRecord builds a mismatch record.
func NewRecord(kind Kind, expected, received any, weight float64, suppressed bool) Record {
	return Record{
		kind:       kind,
		expected:   expected,
		received:   received,
		weight:     weight,
		suppressed: suppressed,
	}
}

// Kind returns the mismatch kind.
func (r Record) Kind() Kind { return r.kind }

// Expected returns the expected-side payload.
func (r Record) Expected() any { return r.expected }

// Received returns the actual-side payload.
func (r Record) Received() any { return r.received }

// Weight returns the penalty weight accumulated along the path to this leaf.
func (r Record) Weight() float64 { return r.weight }

// Suppressed reports whether the record is hidden from reported diffs.
func (r Record) Suppressed() bool { return r.suppressed }

// Message renders the human-readable explanation for reports.
func (r Record) Message() string {
	e := payloadString(r.expected)
	a := payloadString(r.received)
	switch r.kind {
	case TypesNotEqual:
		return fmt.Sprintf("Types not equal. Expected: <%s>, received: <%s>", e, a)
	case ValuesNotEqual:
		return fmt.Sprintf("Values not equal. Expected: <%s>, received: <%s>", e, a)
	case KeyNotExist:
		return fmt.Sprintf("Key does not exist. Expected: <%s>", e)
	case UnexpectedKey:
		return fmt.Sprintf("Unexpected key. Received: <%s>", a)
	case LengthsNotEqual:
		return fmt.Sprintf("Lengths not equal. Expected <%s>, received: <%s>", e, a)
	case MissingListItem:
		return fmt.Sprintf("Missing list item. Expected: <%s>", e)
	case ExtraListItem:
		return fmt.Sprintf("Extra list item. Received: <%s>", a)
	default:
		return fmt.Sprintf("Expected: <%s>, received: <%s>", e, a)
	}
}

func payloadString(p any) string {
	if p == nil {
		return "null"
	}
	return fmt.Sprintf("%v", p)
}
