package value

import (
	"strings"
	"testing"
)

func TestKindNames(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Null(), "null"},
		{Bool(true), "bool"},
		{Int(1), "int"},
		{Float(1.5), "float"},
		{String("hi"), "str"},
		{Array(Int(1)), "list"},
		{Object(Field("a", Int(1))), "dict"},
	}
	for _, c := range cases {
		if got := c.v.KindName(); got != c.want {
			t.Errorf("KindName() = %q, want %q", got, c.want)
		}
	}
}

func TestObjectKeyOrder(t *testing.T) {
	v := Object(
		Field("zulu", Int(1)),
		Field("alpha", Int(2)),
		Field("mike", Int(3)),
	)

	want := []string{"zulu", "alpha", "mike"}
	got := v.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestObjectDuplicateKey(t *testing.T) {
	v := Object(Field("a", Int(1)), Field("a", Int(2)))

	if v.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", v.Len())
	}
	f, _ := v.Get("a")
	if f.Int() != 2 {
		t.Errorf("Get(a) = %d, want 2 (later entry wins)", f.Int())
	}
}

func TestEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same ints", Int(1), Int(1), true},
		{"different ints", Int(1), Int(2), false},
		{"int vs float", Int(1), Float(1), false},
		{"nulls", Null(), Null(), true},
		{
			"object key order ignored",
			Object(Field("a", Int(1)), Field("b", Int(2))),
			Object(Field("b", Int(2)), Field("a", Int(1))),
			true,
		},
		{
			"array order matters",
			Array(Int(1), Int(2)),
			Array(Int(2), Int(1)),
			false,
		},
		{
			"nested",
			Object(Field("a", Array(Int(1), String("x")))),
			Object(Field("a", Array(Int(1), String("x")))),
			true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Equal(c.b); got != c.want {
				t.Errorf("Equal = %v, want %v", got, c.want)
			}
		})
	}
}

func TestFrom(t *testing.T) {
	v, err := From(map[string]any{
		"b": 1.5,
		"a": []any{int64(1), "x", true, nil},
	})
	if err != nil {
		t.Fatalf("From: %v", err)
	}

	// Map keys are sorted for determinism.
	keys := v.Keys()
	if keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("Keys() = %v, want [a b]", keys)
	}

	arr, _ := v.Get("a")
	wantKinds := []Kind{KindInt, KindString, KindBool, KindNull}
	for i, item := range arr.Items() {
		if item.Kind() != wantKinds[i] {
			t.Errorf("item %d kind = %v, want %v", i, item.Kind(), wantKinds[i])
		}
	}

	f, _ := v.Get("b")
	if f.Kind() != KindFloat || f.Float() != 1.5 {
		t.Errorf("b = %v %v, want float 1.5", f.Kind(), f.Float())
	}
}

func TestFromUnsupportedType(t *testing.T) {
	if _, err := From(map[string]any{"ch": make(chan int)}); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}

func TestDecodePreservesKeyOrder(t *testing.T) {
	src := `{"zulu": 1, "alpha": {"inner": 2, "aaa": 3}, "mike": [1, 2]}`

	v, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := []string{"zulu", "alpha", "mike"}
	for i, k := range v.Keys() {
		if k != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, k, want[i])
		}
	}

	nested, _ := v.Get("alpha")
	if nested.Keys()[0] != "inner" {
		t.Errorf("nested first key = %q, want inner", nested.Keys()[0])
	}
}

func TestDecodeNumberLiterals(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want Kind
	}{
		{"integer literal", `1`, KindInt},
		{"decimal literal", `1.0`, KindFloat},
		{"exponent literal", `1e3`, KindFloat},
		{"negative integer", `-7`, KindInt},
		{"int64 overflow", `92233720368547758080`, KindFloat},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, err := Decode(strings.NewReader(c.src))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if v.Kind() != c.want {
				t.Errorf("kind = %v, want %v", v.Kind(), c.want)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"truncated", `{"a": `},
		{"trailing garbage", `{} {}`},
		{"not json", `hello`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(c.src)); err == nil {
				t.Fatal("expected decode error")
			}
		})
	}
}

func TestInterfaceRoundTrip(t *testing.T) {
	src := map[string]any{
		"n":    nil,
		"b":    true,
		"s":    "x",
		"list": []any{1.5, "y"},
	}
	v := MustFrom(src)
	back := v.Interface()

	v2, err := From(back)
	if err != nil {
		t.Fatalf("From(Interface()): %v", err)
	}
	if !v.Equal(v2) {
		t.Error("round trip through Interface() changed the value")
	}
}
