package tree

import (
	"slices"

	"remapper/internal/entry"
)

type hashNode struct {
	entry    entry.Entry
	mapping  *entry.Mapping
	children map[entry.Entry]struct{}
}

// HashTree is the map-backed Tree.
// Nodes are keyed by entry.Identity.
type HashTree struct {
	nodes map[entry.Entry]*hashNode
	roots map[entry.Entry]struct{}
}

// NewHashTree creates an empty tree.
func NewHashTree() *HashTree {
	return &HashTree{
		nodes: make(map[entry.Entry]*hashNode),
		roots: make(map[entry.Entry]struct{}),
	}
}

// Insert implements Tree. Missing ancestors are stored as navigation nodes.
func (t *HashTree) Insert(e entry.Entry, m *entry.Mapping) {
	n := t.ensure(e)
	n.entry = e

	if m == nil {
		n.mapping = nil
		return
	}

	cp := *m
	n.mapping = &cp
}

func (t *HashTree) ensure(e entry.Entry) *hashNode {
	key := entry.Identity(e)
	if n, ok := t.nodes[key]; ok {
		return n
	}

	n := &hashNode{entry: e}
	t.nodes[key] = n

	parent, ok := e.Parent()
	if !ok {
		t.roots[key] = struct{}{}
		return n
	}

	p := t.ensure(parent)
	if p.children == nil {
		p.children = make(map[entry.Entry]struct{})
	}

	p.children[key] = struct{}{}

	return n
}

// Remove implements Tree. Nodes left without record or children are pruned,
// along with ancestors that become empty.
func (t *HashTree) Remove(e entry.Entry) *entry.Mapping {
	key := entry.Identity(e)

	n, ok := t.nodes[key]
	if !ok {
		return nil
	}

	prior := n.mapping
	n.mapping = nil

	t.prune(key)

	return prior
}

func (t *HashTree) prune(key entry.Entry) {
	for {
		n, ok := t.nodes[key]
		if !ok || n.mapping != nil || len(n.children) > 0 {
			return
		}

		delete(t.nodes, key)

		parent, ok := n.entry.Parent()
		if !ok {
			delete(t.roots, key)
			return
		}

		pkey := entry.Identity(parent)
		if p, ok := t.nodes[pkey]; ok {
			delete(p.children, key)
		}

		key = pkey
	}
}

// Get implements Snapshot. Returns nil when no record is stored.
func (t *HashTree) Get(e entry.Entry) *entry.Mapping {
	n, ok := t.nodes[entry.Identity(e)]
	if !ok || n.mapping == nil {
		return nil
	}

	cp := *n.mapping

	return &cp
}

// Contains implements Tree.
func (t *HashTree) Contains(e entry.Entry) bool {
	_, ok := t.nodes[entry.Identity(e)]
	return ok
}

// Children implements Tree.
func (t *HashTree) Children(e entry.Entry) []entry.Entry {
	n, ok := t.nodes[entry.Identity(e)]
	if !ok {
		return nil
	}

	return t.collect(n.children, nil)
}

// Siblings implements Tree. Root entries are siblings of each other.
func (t *HashTree) Siblings(e entry.Entry) []entry.Entry {
	key := entry.Identity(e)

	parent, ok := e.Parent()
	if !ok {
		return t.collect(t.roots, key)
	}

	p, ok := t.nodes[entry.Identity(parent)]
	if !ok {
		return nil
	}

	return t.collect(p.children, key)
}

func (t *HashTree) collect(keys map[entry.Entry]struct{}, skip entry.Entry) []entry.Entry {
	out := make([]entry.Entry, 0, len(keys))

	for k := range keys {
		if k == skip {
			continue
		}

		out = append(out, t.nodes[k].entry)
	}

	entry.Sort(out)

	return out
}

// Nodes implements Tree.
func (t *HashTree) Nodes() []Node {
	out := make([]Node, 0, len(t.nodes))

	for _, n := range t.nodes {
		var m *entry.Mapping
		if n.mapping != nil {
			cp := *n.mapping
			m = &cp
		}

		out = append(out, Node{Entry: n.entry, Mapping: m})
	}

	slices.SortFunc(out, func(a, b Node) int {
		return entry.Compare(a.Entry, b.Entry)
	})

	return out
}

// Len implements Tree.
func (t *HashTree) Len() int {
	return len(t.nodes)
}

// IsEmpty implements Tree.
func (t *HashTree) IsEmpty() bool {
	return len(t.nodes) == 0
}

// Translate implements Tree. Each entry is re-keyed through tr; when a node
// has no record, the record of its resolved entry in snapshot is used.
func (t *HashTree) Translate(tr Translator, res Resolver, snapshot Snapshot) Tree {
	out := NewHashTree()

	for _, n := range t.Nodes() {
		m := n.Mapping
		if m == nil && snapshot != nil {
			resolved := n.Entry
			if res != nil {
				resolved = res.ResolveFirst(n.Entry)
			}

			m = snapshot.Get(resolved)
		}

		out.Insert(tr.Translate(n.Entry), m)
	}

	return out
}

// Status implements Tree: MAPPED when the translated name differs.
func (t *HashTree) Status(obf, deobf entry.Entry) Status {
	return NameStatus(obf, deobf)
}

// NameStatus returns MAPPED if the names of obf and deobf differ, else UNMAPPED.
func NameStatus(obf, deobf entry.Entry) Status {
	if obf.Name() != deobf.Name() {
		return Mapped
	}

	return Unmapped
}

// Clone returns an independent copy.
func (t *HashTree) Clone() *HashTree {
	return Copy(t)
}
