package tree

import "remapper/internal/entry"

// Delta is a base snapshot plus the entries changed since it was taken.
type Delta struct {
	Base    Tree
	changes map[entry.Entry]entry.Entry
}

// NewDelta creates an empty delta over base.
func NewDelta(base Tree) *Delta {
	if base == nil {
		base = NewHashTree()
	}

	return &Delta{
		Base:    base,
		changes: make(map[entry.Entry]entry.Entry),
	}
}

// Added returns a delta in which every record of t is new.
func Added(t Tree) *Delta {
	d := NewDelta(NewHashTree())

	for _, e := range Entries(t) {
		d.Mark(e)
	}

	return d
}

// Mark records e as changed.
func (d *Delta) Mark(e entry.Entry) {
	d.changes[entry.Identity(e)] = e
}

// Contains reports whether e changed.
func (d *Delta) Contains(e entry.Entry) bool {
	_, ok := d.changes[entry.Identity(e)]
	return ok
}

// Changes returns the changed entries in entry.Compare order.
func (d *Delta) Changes() []entry.Entry {
	out := make([]entry.Entry, 0, len(d.changes))
	for _, e := range d.changes {
		out = append(out, e)
	}

	entry.Sort(out)

	return out
}

// Len returns the number of changed entries.
func (d *Delta) Len() int {
	return len(d.changes)
}

// IsEmpty returns true if nothing changed.
func (d *Delta) IsEmpty() bool {
	return len(d.changes) == 0
}

// Diff returns the delta that turns base into changed.
func Diff(base, changed Tree) *Delta {
	d := NewDelta(base)

	for _, n := range changed.Nodes() {
		if n.HasValue() && !n.Mapping.Equal(base.Get(n.Entry)) {
			d.Mark(n.Entry)
		}
	}

	for _, n := range base.Nodes() {
		if n.HasValue() && changed.Get(n.Entry) == nil {
			d.Mark(n.Entry)
		}
	}

	return d
}
