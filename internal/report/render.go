// Package report serializes diff trees to deterministic JSON for console
// and file output.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/jsongrade/internal/domain/diff"
)

// Explanation field names, shared with the HTTP API responses.
const (
	fieldMessage  = "_message"
	fieldExpected = "_expected"
	fieldReceived = "_received"
	fieldError    = "_error"
	fieldWeight   = "_weight"
)

// Doc is a JSON object that marshals its fields in insertion order, so
// rendered diffs are byte-for-byte reproducible.
type Doc struct {
	keys   []string
	fields map[string]any
}

// NewDoc returns an empty ordered object.
func NewDoc() *Doc {
	return &Doc{fields: make(map[string]any)}
}

// Set stores a field, appending the key on first write.
func (d *Doc) Set(key string, v any) {
	if _, ok := d.fields[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.fields[key] = v
}

// Get returns a field by key.
func (d *Doc) Get(key string) (any, bool) {
	v, ok := d.fields[key]
	return v, ok
}

// Len returns the field count.
func (d *Doc) Len() int { return len(d.keys) }

// Keys returns the field names in insertion order.
func (d *Doc) Keys() []string { return d.keys }

// MarshalJSON writes the object with fields in insertion order.
func (d *Doc) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		val, err := json.Marshal(d.fields[k])
		if err != nil {
			return nil, fmt.Errorf("marshal field %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Render converts a diff tree into its explanation document: composites
// become ordered objects keyed like the diff node, records become
// {_message, _expected, _received, _error} leaves with a _weight field when
// the penalty weight differs from 1.
func Render(n *diff.Node) *Doc {
	if r, ok := n.Record(); ok {
		return renderRecord(r)
	}
	doc := NewDoc()
	for _, e := range n.Entries() {
		doc.Set(e.Key.String(), Render(e.Node))
	}
	return doc
}

func renderRecord(r diff.Record) *Doc {
	doc := NewDoc()
	doc.Set(fieldMessage, r.Message())
	doc.Set(fieldExpected, r.Expected())
	doc.Set(fieldReceived, r.Received())
	doc.Set(fieldError, r.Kind().String())
	if r.Weight() != 1 {
		doc.Set(fieldWeight, r.Weight())
	}
	return doc
}
