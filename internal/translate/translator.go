package translate

import (
	"remapper/internal/entry"
	"remapper/internal/tree"
)

// MappingTranslator translates entries through a set of rename records.
type MappingTranslator struct {
	mappings tree.Snapshot
	resolver Resolver
}

// NewMappingTranslator creates a translator. A nil resolver means VoidResolver.
func NewMappingTranslator(mappings tree.Snapshot, resolver Resolver) *MappingTranslator {
	if resolver == nil {
		resolver = VoidResolver{}
	}

	return &MappingTranslator{mappings: mappings, resolver: resolver}
}

// Resolver returns the resolver used for lookups.
func (t *MappingTranslator) Resolver() Resolver {
	return t.resolver
}

// Translate returns e as it is named in the target namespace.
func (t *MappingTranslator) Translate(e entry.Entry) entry.Entry {
	switch v := e.(type) {
	case entry.PackageEntry:
		return entry.Package(t.name(v))
	case entry.ClassEntry:
		return t.TranslateClass(v)
	case entry.MethodEntry:
		return t.translateMethod(v)
	case entry.FieldEntry:
		return entry.Field(
			t.TranslateClass(v.Owner()),
			t.name(v),
			v.Desc().Remap(t.TranslateClass),
		)
	case entry.LocalVariableEntry:
		return entry.Local(t.translateMethod(v.Method()), v.Index(), t.name(v), v.IsArgument())
	default:
		return e
	}
}

// TranslateClass translates a class, outer classes first.
func (t *MappingTranslator) TranslateClass(c entry.ClassEntry) entry.ClassEntry {
	if c.IsZero() {
		return c
	}

	name := t.name(c)

	if outer, ok := c.Outer(); ok {
		return entry.InnerClass(t.TranslateClass(outer), name)
	}

	return entry.Class(name)
}

func (t *MappingTranslator) translateMethod(m entry.MethodEntry) entry.MethodEntry {
	return entry.Method(
		t.TranslateClass(m.Owner()),
		t.name(m),
		m.Desc().Remap(t.TranslateClass),
	)
}

// name returns the renamed segment of e, or its own name when no rename applies.
func (t *MappingTranslator) name(e entry.Entry) string {
	if m := t.mappings.Get(t.resolver.ResolveFirst(e)); m != nil {
		return m.TargetName
	}

	return e.Name()
}

// TranslateMapping translates e and returns it with a copy of its record.
func (t *MappingTranslator) TranslateMapping(e entry.Entry, m *entry.Mapping) (entry.Entry, *entry.Mapping) {
	if m != nil {
		m = m.WithName(m.TargetName)
	}

	return t.Translate(e), m
}

// TranslateEntries translates every entry of es.
func (t *MappingTranslator) TranslateEntries(es []entry.Entry) []entry.Entry {
	out := make([]entry.Entry, len(es))
	for i, e := range es {
		out[i] = t.Translate(e)
	}

	return out
}
