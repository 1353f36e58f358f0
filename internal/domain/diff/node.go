package diff

import "strconv"

// Key addresses one child of a composite node: an object field name (also
// the "_length" marker and "extra_<j>" positions) or an expected-side array
// index.
type Key struct {
	name    string
	index   int
	indexed bool
}

// FieldKey builds a string key.
func FieldKey(name string) Key { return Key{name: name} }

// IndexKey builds an expected-side array index key.
func IndexKey(i int) Key { return Key{index: i, indexed: true} }

// ExtraKey builds the key for an unmatched actual-side array position.
func ExtraKey(j int) Key {
	return FieldKey("extra_" + strconv.Itoa(j))
}

// LengthKey marks the array length-mismatch entry.
func LengthKey() Key { return FieldKey("_length") }

// IsIndex reports whether the key is an array index.
func (k Key) IsIndex() bool { return k.indexed }

// Index returns the array index (zero for field keys).
func (k Key) Index() int { return k.index }

// String renders the key for serialization.
func (k Key) String() string {
	if k.indexed {
		return strconv.Itoa(k.index)
	}
	return k.name
}

// Node is a diff-tree node: either a record leaf or a composite whose
// children keep insertion order. The empty composite means "no difference".
type Node struct {
	record   *Record
	keys     []Key
	children map[Key]*Node
}

// Entry is one ordered child of a composite node.
type Entry struct {
	Key  Key
	Node *Node
}

// New returns an empty composite node.
func New() *Node { return &Node{} }

// Leaf wraps a record into a leaf node.
func Leaf(r Record) *Node { return &Node{record: &r} }

// IsEmpty reports whether the node is the empty composite (no difference).
func (n *Node) IsEmpty() bool {
	return n == nil || (n.record == nil && len(n.keys) == 0)
}

// Record returns the leaf record, if the node is a leaf.
func (n *Node) Record() (Record, bool) {
	if n == nil || n.record == nil {
		return Record{}, false
	}
	return *n.record, true
}

// Add appends a child under key, keeping insertion order. Empty children are
// pruned: adding them is a no-op, so empty branches never reach the output.
func (n *Node) Add(key Key, child *Node) {
	if child.IsEmpty() {
		return
	}
	if n.children == nil {
		n.children = make(map[Key]*Node)
	}
	if _, ok := n.children[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.children[key] = child
}

// Get returns the child stored under key.
func (n *Node) Get(key Key) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	child, ok := n.children[key]
	return child, ok
}

// Entries returns the children in insertion order.
func (n *Node) Entries() []Entry {
	if n == nil {
		return nil
	}
	out := make([]Entry, len(n.keys))
	for i, k := range n.keys {
		out[i] = Entry{Key: k, Node: n.children[k]}
	}
	return out
}

// Walk visits every record leaf in insertion order. The path slice is reused
// between calls; callers must copy it to retain it.
func (n *Node) Walk(visit func(path []Key, r Record)) {
	n.walk(nil, visit)
}

func (n *Node) walk(path []Key, visit func(path []Key, r Record)) {
	if n == nil {
		return
	}
	if n.record != nil {
		visit(path, *n.record)
		return
	}
	for _, k := range n.keys {
		n.children[k].walk(append(path, k), visit)
	}
}

// CountRecords returns the number of record leaves in the tree.
func (n *Node) CountRecords() uint64 {
	var count uint64
	n.Walk(func([]Key, Record) { count++ })
	return count
}

// SumWeights returns the total penalty weight over all record leaves.
func (n *Node) SumWeights() float64 {
	var sum float64
	n.Walk(func(_ []Key, r Record) { sum += r.Weight() })
	return sum
}

// FilterSuppressed returns a copy of the tree without suppressed records,
// pruning composites that become empty. The receiver is not modified.
func (n *Node) FilterSuppressed() *Node {
	if n == nil {
		return New()
	}
	if n.record != nil {
		if n.record.suppressed {
			return New()
		}
		return Leaf(*n.record)
	}
	out := New()
	for _, k := range n.keys {
		out.Add(k, n.children[k].FilterSuppressed())
	}
	return out
}
