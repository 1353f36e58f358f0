// Package value holds the tagged-union tree representing decoded JSON documents.
package value

import (
	"fmt"
	"strconv"
)

// Kind discriminates the Value variants.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

// Name returns the wire name of the kind, as exposed in diff records.
func (k Kind) Name() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "str"
	case KindArray:
		return "list"
	case KindObject:
		return "dict"
	default:
		return "unknown"
	}
}

// Value is an immutable JSON-like tree node (immutable value object).
// Object key order is preserved from the source for deterministic diff
// iteration; it does not affect equality.
type Value struct {
	kind     Kind
	boolVal  bool
	intVal   int64
	floatVal float64
	strVal   string
	items    []Value
	keys     []string
	fields   map[string]Value
}

// Member is a single object entry used by the Object constructor.
type Member struct {
	Key   string
	Value Value
}

// Field builds an object Member.
func Field(key string, v Value) Member {
	return Member{Key: key, Value: v}
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool builds a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, boolVal: b} }

// Int builds an integer value.
func Int(i int64) Value { return Value{kind: KindInt, intVal: i} }

// Float builds a floating-point value.
func Float(f float64) Value { return Value{kind: KindFloat, floatVal: f} }

// String builds a string value.
func String(s string) Value { return Value{kind: KindString, strVal: s} }

// Array builds an array value from its elements.
func Array(items ...Value) Value {
	return Value{kind: KindArray, items: items}
}

// Object builds an object value; member order becomes the iteration order.
// A later duplicate key overwrites the earlier entry in place.
func Object(members ...Member) Value {
	v := Value{
		kind:   KindObject,
		keys:   make([]string, 0, len(members)),
		fields: make(map[string]Value, len(members)),
	}
	for _, m := range members {
		if _, ok := v.fields[m.Key]; !ok {
			v.keys = append(v.keys, m.Key)
		}
		v.fields[m.Key] = m.Value
	}
	return v
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// KindName returns the wire name of the variant.
func (v Value) KindName() string { return v.kind.Name() }

// Bool returns the boolean payload (zero for other kinds).
func (v Value) Bool() bool { return v.boolVal }

// Int returns the integer payload (zero for other kinds).
func (v Value) Int() int64 { return v.intVal }

// Float returns the float payload (zero for other kinds).
func (v Value) Float() float64 { return v.floatVal }

// Str returns the string payload (empty for other kinds).
func (v Value) Str() string { return v.strVal }

// Items returns the array elements. Callers must not mutate the slice.
func (v Value) Items() []Value { return v.items }

// Keys returns object keys in source order. Callers must not mutate the slice.
func (v Value) Keys() []string { return v.keys }

// Get returns the object field for key.
func (v Value) Get(key string) (Value, bool) {
	f, ok := v.fields[key]
	return f, ok
}

// Len returns the element count for arrays and the key count for objects.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.keys)
	default:
		return 0
	}
}

// IsScalar reports whether the value is a leaf (not an array or object).
func (v Value) IsScalar() bool {
	return v.kind != KindArray && v.kind != KindObject
}

// Equal reports deep structural equality. Object key order is ignored,
// array order is not. Floats compare bit-exact (NaN never equals NaN).
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolVal == other.boolVal
	case KindInt:
		return v.intVal == other.intVal
	case KindFloat:
		return v.floatVal == other.floatVal
	case KindString:
		return v.strVal == other.strVal
	case KindArray:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.keys) != len(other.keys) {
			return false
		}
		for _, k := range v.keys {
			ov, ok := other.fields[k]
			if !ok || !v.fields[k].Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Scalar returns the scalar payload as a plain Go value for record payloads
// and serialization: nil, bool, int64, float64 or string. Composites reduce
// to their kind name.
func (v Value) Scalar() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.boolVal
	case KindInt:
		return v.intVal
	case KindFloat:
		return v.floatVal
	case KindString:
		return v.strVal
	default:
		return v.kind.Name()
	}
}

// String renders the value for log fields and error messages.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.boolVal)
	case KindInt:
		return strconv.FormatInt(v.intVal, 10)
	case KindFloat:
		return strconv.FormatFloat(v.floatVal, 'g', -1, 64)
	case KindString:
		return v.strVal
	default:
		return fmt.Sprintf("<%s len=%d>", v.kind.Name(), v.Len())
	}
}

// Interface converts the value back to a generic decoded tree
// (map[string]any / []any / scalars), losing key order.
func (v Value) Interface() any {
	switch v.kind {
	case KindArray:
		out := make([]any, len(v.items))
		for i, it := range v.items {
			out[i] = it.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.keys))
		for _, k := range v.keys {
			out[k] = v.fields[k].Interface()
		}
		return out
	default:
		return v.Scalar()
	}
}
