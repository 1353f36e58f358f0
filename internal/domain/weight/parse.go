package weight

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidSpec signals a malformed weight specification.
var ErrInvalidSpec = errors.New("invalid weight spec")

// InvalidSpecError wraps ErrInvalidSpec with the offending key path.
type InvalidSpecError struct {
	Key    string
	Reason string
}

func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("%s: key %q: %s", ErrInvalidSpec.Error(), e.Key, e.Reason)
}

func (e *InvalidSpecError) Unwrap() error { return ErrInvalidSpec }

func invalidSpec(path, reason string) error {
	return &InvalidSpecError{Key: path, Reason: reason}
}

// Parse validates and builds a Spec from a generically decoded tree (the
// shapes produced by encoding/json and yaml.v3). Accepted node shapes: a
// number (uniform weight shorthand) or a map whose entries are numbers,
// nested maps, numeric control keys and boolean control keys. Anything else
// fails with an *InvalidSpecError naming the offending key — the only hard
// error in the comparison engine.
func Parse(x any) (Spec, error) {
	if x == nil {
		return Spec{}, nil
	}
	return parseNode(x, "")
}

// MustParse parses a spec or panics. Intended for tests and examples.
func MustParse(x any) Spec {
	s, err := Parse(x)
	if err != nil {
		panic(err)
	}
	return s
}

func parseNode(x any, path string) (Spec, error) {
	if n, ok := asNumber(x); ok {
		return Number(n), nil
	}
	m, ok := asMap(x)
	if !ok {
		return Spec{}, invalidSpec(path, fmt.Sprintf("expected number or nested spec, got %T", x))
	}

	tree := make(map[string]Spec, len(m))
	for key, entry := range m {
		parsed, err := parseEntry(key, entry, joinPath(path, key))
		if err != nil {
			return Spec{}, err
		}
		tree[key] = parsed
	}
	return Spec{kind: kindTree, tree: tree}, nil
}

func parseEntry(key string, entry any, path string) (Spec, error) {
	switch key {
	case KeyWeight, KeyLength, KeyMissing, KeyExtra:
		n, ok := asNumber(entry)
		if !ok {
			return Spec{}, invalidSpec(path, fmt.Sprintf("expected number, got %T", entry))
		}
		return Number(n), nil
	case KeyPairingThreshold:
		n, ok := asNumber(entry)
		if !ok {
			return Spec{}, invalidSpec(path, fmt.Sprintf("expected number, got %T", entry))
		}
		if n < 0 || n > 1 {
			return Spec{}, invalidSpec(path, fmt.Sprintf("threshold %v out of range [0,1]", n))
		}
		return Number(n), nil
	case KeyBoostMissing, KeyBoostExtra, KeySuppress:
		b, ok := entry.(bool)
		if !ok {
			return Spec{}, invalidSpec(path, fmt.Sprintf("expected bool, got %T", entry))
		}
		return Spec{kind: kindBool, boolean: b}, nil
	default:
		// Data keys and _content: a bare number or a nested spec.
		return parseNode(entry, path)
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func asNumber(x any) (float64, bool) {
	switch t := x.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func asMap(x any) (map[string]any, bool) {
	switch t := x.(type) {
	case map[string]any:
		return t, true
	default:
		return nil, false
	}
}
