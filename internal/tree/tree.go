package tree

import "remapper/internal/entry"

// Node is a stored entry with its optional record.
type Node struct {
	Entry   entry.Entry
	Mapping *entry.Mapping
}

// HasValue returns true if the node carries a rename record.
func (n Node) HasValue() bool {
	return n.Mapping != nil
}

// Translator rewrites an entry into the target namespace.
type Translator interface {
	Translate(e entry.Entry) entry.Entry
}

// Resolver finds the entry a rename logically applies to.
type Resolver interface {
	ResolveFirst(e entry.Entry) entry.Entry
}

// Snapshot is a read-only view of records.
type Snapshot interface {
	Get(e entry.Entry) *entry.Mapping
}

// Tree is a hierarchical store of rename records.
type Tree interface {
	Snapshot

	// Insert upserts the record of e; a nil record stores a navigation node.
	Insert(e entry.Entry, m *entry.Mapping)
	// Remove deletes the record of e and returns the prior one.
	Remove(e entry.Entry) *entry.Mapping
	// Contains reports whether e is stored, with or without a record.
	Contains(e entry.Entry) bool
	// Children returns the stored entries whose parent is e.
	Children(e entry.Entry) []entry.Entry
	// Siblings returns the stored entries sharing e's parent, excluding e.
	Siblings(e entry.Entry) []entry.Entry
	// Nodes returns every stored node once, in entry.Compare order.
	Nodes() []Node
	// Len returns the number of stored nodes.
	Len() int
	// IsEmpty returns true if nothing is stored.
	IsEmpty() bool
	// Translate returns a new tree with every entry passed through tr.
	Translate(tr Translator, res Resolver, snapshot Snapshot) Tree
	// Status classifies an obfuscated entry and its translation.
	Status(obf, deobf entry.Entry) Status
}

// Entries returns the entries of every node that carries a record.
func Entries(t Tree) []entry.Entry {
	var out []entry.Entry

	for _, n := range t.Nodes() {
		if n.HasValue() {
			out = append(out, n.Entry)
		}
	}

	return out
}

// Copy returns a HashTree holding the same nodes as t.
func Copy(t Tree) *HashTree {
	out := NewHashTree()

	for _, n := range t.Nodes() {
		out.Insert(n.Entry, n.Mapping)
	}

	return out
}

// Equivalent reports whether a and b carry the same records.
// Navigation-only nodes are ignored.
func Equivalent(a, b Tree) bool {
	an, bn := valued(a), valued(b)
	if len(an) != len(bn) {
		return false
	}

	for _, n := range an {
		if !n.Mapping.Equal(b.Get(n.Entry)) {
			return false
		}
	}

	return true
}

func valued(t Tree) []Node {
	var out []Node

	for _, n := range t.Nodes() {
		if n.HasValue() {
			out = append(out, n)
		}
	}

	return out
}
