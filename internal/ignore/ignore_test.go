package ignore

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/jsongrade/internal/domain/value"
)

func TestParseInvalid(t *testing.T) {
	cases := []struct {
		name    string
		input   any
		wantKey string
	}{
		{"unknown string rule", map[string]any{"field": "all"}, "field"},
		{"numeric rule", map[string]any{"field": 1}, "field"},
		{"nested bad rule", map[string]any{"a": map[string]any{"b": []any{}}}, "a.b"},
		{"top-level list", []any{"*"}, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(c.input)
			if err == nil {
				t.Fatal("expected parse error")
			}
			if !errors.Is(err, ErrInvalidRules) {
				t.Errorf("error %v should wrap ErrInvalidRules", err)
			}
			if !strings.Contains(err.Error(), `"`+c.wantKey+`"`) {
				t.Errorf("error %q should name key %q", err.Error(), c.wantKey)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	for _, input := range []any{nil, map[string]any{}} {
		r, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%v): %v", input, err)
		}
		if !r.IsEmpty() {
			t.Errorf("Parse(%v) should yield empty rules", input)
		}
	}
}

func TestApplyRemovesField(t *testing.T) {
	rules := MustParse(map[string]any{"created_at": "*"})
	v := value.Object(
		value.Field("id", value.Int(1)),
		value.Field("created_at", value.String("2024-01-01")),
	)

	got := rules.Apply(v)

	if _, ok := got.Get("created_at"); ok {
		t.Error("created_at should be removed")
	}
	if _, ok := got.Get("id"); !ok {
		t.Error("id should survive")
	}
}

func TestApplyBoolLeaf(t *testing.T) {
	rules := MustParse(map[string]any{
		"drop": true,
		"keep": false,
	})
	v := value.Object(
		value.Field("drop", value.Int(1)),
		value.Field("keep", value.Int(2)),
	)

	got := rules.Apply(v)

	if _, ok := got.Get("drop"); ok {
		t.Error("true leaf should remove the field")
	}
	if _, ok := got.Get("keep"); !ok {
		t.Error("false leaf should keep the field")
	}
}

func TestApplyNested(t *testing.T) {
	rules := MustParse(map[string]any{
		"meta": map[string]any{"trace_id": "*"},
	})
	v := value.Object(
		value.Field("meta", value.Object(
			value.Field("trace_id", value.String("abc")),
			value.Field("source", value.String("api")),
		)),
	)

	got := rules.Apply(v)

	meta, _ := got.Get("meta")
	if _, ok := meta.Get("trace_id"); ok {
		t.Error("nested trace_id should be removed")
	}
	if _, ok := meta.Get("source"); !ok {
		t.Error("sibling field should survive")
	}
}

func TestApplyToArrayElements(t *testing.T) {
	rules := MustParse(map[string]any{
		"items": map[string]any{"ts": "*"},
	})
	v := value.Object(value.Field("items", value.Array(
		value.Object(value.Field("ts", value.Int(1)), value.Field("v", value.Int(10))),
		value.Object(value.Field("ts", value.Int(2)), value.Field("v", value.Int(20))),
	)))

	got := rules.Apply(v)

	items, _ := got.Get("items")
	for i, item := range items.Items() {
		if _, ok := item.Get("ts"); ok {
			t.Errorf("element %d: ts should be removed", i)
		}
		if _, ok := item.Get("v"); !ok {
			t.Errorf("element %d: v should survive", i)
		}
	}
}

func TestApplyMissingKeyIsNoop(t *testing.T) {
	rules := MustParse(map[string]any{"absent": "*"})
	v := value.Object(value.Field("present", value.Int(1)))

	if !rules.Apply(v).Equal(v) {
		t.Error("rules for absent keys should leave the document unchanged")
	}
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	rules := MustParse(map[string]any{"gone": "*"})
	v := value.Object(
		value.Field("gone", value.Int(1)),
		value.Field("kept", value.Int(2)),
	)

	_ = rules.Apply(v)

	if _, ok := v.Get("gone"); !ok {
		t.Error("Apply must not modify its input")
	}
}

func TestApplyPreservesKeyOrder(t *testing.T) {
	rules := MustParse(map[string]any{"b": "*"})
	v := value.Object(
		value.Field("c", value.Int(1)),
		value.Field("b", value.Int(2)),
		value.Field("a", value.Int(3)),
	)

	got := rules.Apply(v)

	keys := got.Keys()
	if len(keys) != 2 || keys[0] != "c" || keys[1] != "a" {
		t.Errorf("Keys() = %v, want [c a]", keys)
	}
}

func TestEmptyRulesShareInput(t *testing.T) {
	var rules Rules
	v := value.Object(value.Field("a", value.Int(1)))
	if !rules.Apply(v).Equal(v) {
		t.Error("empty rules should be the identity transform")
	}
}
