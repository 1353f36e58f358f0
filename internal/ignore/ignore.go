// Package ignore implements the pre-comparison transform that strips fields
// the caller wants excluded entirely. Both sides of a comparison are passed
// through the same rules, so the output keeps the same or a subset of the
// input's shape.
package ignore

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/jsongrade/internal/domain/value"
)

// ErrInvalidRules signals a malformed ignore-rule tree.
var ErrInvalidRules = errors.New("invalid ignore rules")

// removeAll is the rule leaf that drops the whole field.
const removeAll = "*"

// Rules is a sparse tree mirroring the document shape. A "*" (or true) leaf
// removes the field it addresses; a nested tree recurses; a rule on an array
// applies to every element. The zero value leaves documents untouched.
type Rules struct {
	remove   bool
	children map[string]Rules
}

// Parse validates and builds Rules from a generically decoded tree.
func Parse(x any) (Rules, error) {
	return parseNode(x, "")
}

// MustParse parses rules or panics. Intended for tests and examples.
func MustParse(x any) Rules {
	r, err := Parse(x)
	if err != nil {
		panic(err)
	}
	return r
}

func parseNode(x any, path string) (Rules, error) {
	switch t := x.(type) {
	case nil:
		return Rules{}, nil
	case string:
		if t != removeAll {
			return Rules{}, fmt.Errorf("%w: key %q: unknown rule %q", ErrInvalidRules, path, t)
		}
		return Rules{remove: true}, nil
	case bool:
		return Rules{remove: t}, nil
	case map[string]any:
		children := make(map[string]Rules, len(t))
		for k, entry := range t {
			child, err := parseNode(entry, joinPath(path, k))
			if err != nil {
				return Rules{}, err
			}
			children[k] = child
		}
		return Rules{children: children}, nil
	default:
		return Rules{}, fmt.Errorf("%w: key %q: expected \"*\", bool or nested rules, got %T", ErrInvalidRules, path, x)
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// IsEmpty reports whether the rules leave every document untouched.
func (r Rules) IsEmpty() bool {
	return !r.remove && len(r.children) == 0
}

// Apply returns v with every ruled-out field removed. The input is never
// modified; untouched subtrees are shared, not copied.
func (r Rules) Apply(v value.Value) value.Value {
	if r.IsEmpty() {
		return v
	}

	switch v.Kind() {
	case value.KindObject:
		members := make([]value.Member, 0, v.Len())
		for _, k := range v.Keys() {
			field, _ := v.Get(k)
			rule, ok := r.children[k]
			if !ok {
				members = append(members, value.Field(k, field))
				continue
			}
			if rule.remove {
				continue
			}
			members = append(members, value.Field(k, rule.Apply(field)))
		}
		return value.Object(members...)
	case value.KindArray:
		items := make([]value.Value, v.Len())
		for i, item := range v.Items() {
			items[i] = r.Apply(item)
		}
		return value.Array(items...)
	default:
		return v
	}
}
