package tree

import "remapper/internal/entry"

// DeltaTrackingTree wraps a Tree and records every mutation relative to a
// base snapshot taken at construction or at the last TakeDelta call.
type DeltaTrackingTree struct {
	delegate Tree
	delta    *Delta
}

// NewDeltaTrackingTree starts tracking changes to delegate.
func NewDeltaTrackingTree(delegate Tree) *DeltaTrackingTree {
	return &DeltaTrackingTree{
		delegate: delegate,
		delta:    NewDelta(Copy(delegate)),
	}
}

// Delegate returns the wrapped tree.
func (t *DeltaTrackingTree) Delegate() Tree {
	return t.delegate
}

// TakeDelta returns the accumulated changes and starts a new delta from the current state.
func (t *DeltaTrackingTree) TakeDelta() *Delta {
	taken := t.delta
	t.delta = NewDelta(Copy(t.delegate))

	return taken
}

// Insert implements Tree.
func (t *DeltaTrackingTree) Insert(e entry.Entry, m *entry.Mapping) {
	t.delegate.Insert(e, m)
	t.delta.Mark(e)
}

// Remove implements Tree.
func (t *DeltaTrackingTree) Remove(e entry.Entry) *entry.Mapping {
	prior := t.delegate.Remove(e)
	if prior != nil {
		t.delta.Mark(e)
	}

	return prior
}

// Get implements Snapshot.
func (t *DeltaTrackingTree) Get(e entry.Entry) *entry.Mapping { return t.delegate.Get(e) }

// Contains implements Tree.
func (t *DeltaTrackingTree) Contains(e entry.Entry) bool { return t.delegate.Contains(e) }

// Children implements Tree.
func (t *DeltaTrackingTree) Children(e entry.Entry) []entry.Entry { return t.delegate.Children(e) }

// Siblings implements Tree.
func (t *DeltaTrackingTree) Siblings(e entry.Entry) []entry.Entry { return t.delegate.Siblings(e) }

// Nodes implements Tree.
func (t *DeltaTrackingTree) Nodes() []Node { return t.delegate.Nodes() }

// Len implements Tree.
func (t *DeltaTrackingTree) Len() int { return t.delegate.Len() }

// IsEmpty implements Tree.
func (t *DeltaTrackingTree) IsEmpty() bool { return t.delegate.IsEmpty() }

// Translate implements Tree. The result is not tracked.
func (t *DeltaTrackingTree) Translate(tr Translator, res Resolver, snapshot Snapshot) Tree {
	return t.delegate.Translate(tr, res, snapshot)
}

// Status implements Tree.
func (t *DeltaTrackingTree) Status(obf, deobf entry.Entry) Status {
	return t.delegate.Status(obf, deobf)
}

// Unwrap returns the innermost tree below any delta trackers.
func Unwrap(t Tree) Tree {
	for {
		d, ok := t.(*DeltaTrackingTree)
		if !ok {
			return t
		}

		t = d.delegate
	}
}
