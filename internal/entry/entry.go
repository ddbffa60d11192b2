package entry

import (
	"cmp"
	"slices"
)

// Entry is a structural identifier for a renamable or navigable program element.
// The set of implementations is closed to this package.
type Entry interface {
	// Kind returns the variant tag.
	Kind() Kind
	// Name returns the segment a rename replaces.
	Name() string
	// Parent returns the structural parent, if any.
	Parent() (Entry, bool)
	// WithName returns a copy with the renamable segment replaced.
	WithName(name string) Entry
	// String returns a stable textual form used for ordering and messages.
	String() string

	sealed()
}

// Identity returns the value used to compare entries and key trees.
func Identity(e Entry) Entry {
	if l, ok := e.(LocalVariableEntry); ok {
		l.name = ""
		return l
	}

	return e
}

// Compare orders entries by kind, then by textual form.
func Compare(a, b Entry) int {
	if c := cmp.Compare(a.Kind(), b.Kind()); c != 0 {
		return c
	}

	return cmp.Compare(a.String(), b.String())
}

// Sort sorts entries in place using Compare.
func Sort(entries []Entry) {
	slices.SortFunc(entries, Compare)
}

// Owner returns the owning class of a member or local variable.
func Owner(e Entry) (ClassEntry, bool) {
	switch v := e.(type) {
	case MethodEntry:
		return v.owner, true
	case FieldEntry:
		return v.owner, true
	case LocalVariableEntry:
		return v.method.owner, true
	default:
		return ClassEntry{}, false
	}
}
