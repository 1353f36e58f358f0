package value

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// From converts a generically decoded tree (the shapes produced by
// encoding/json and yaml.v3) into a Value. Map keys are sorted so the
// resulting iteration order is deterministic; use Decode to keep the
// source order instead.
func From(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case float64:
		return Float(t), nil
	case json.Number:
		return fromNumber(t), nil
	case string:
		return String(t), nil
	case []any:
		items := make([]Value, len(t))
		for i, e := range t {
			v, err := From(e)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = v
		}
		return Array(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]Member, len(keys))
		for i, k := range keys {
			v, err := From(t[k])
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			members[i] = Field(k, v)
		}
		return Object(members...), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", x)
	}
}

// MustFrom converts a decoded tree or panics. Intended for tests and examples.
func MustFrom(x any) Value {
	v, err := From(x)
	if err != nil {
		panic(err)
	}
	return v
}

// fromNumber keeps the int/float distinction of the source literal:
// a number without '.' or exponent that fits int64 parses as Int.
func fromNumber(n json.Number) Value {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := n.Int64(); err == nil {
			return Int(i)
		}
	}
	// The literal is well-formed (it came from a decoder); out-of-range
	// literals saturate to ±Inf, which ParseFloat returns alongside the error.
	f, _ := n.Float64()
	return Float(f)
}
