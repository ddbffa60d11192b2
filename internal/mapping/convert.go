package mapping

import (
	"remapper/internal/entry"
	rerrors "remapper/internal/errors"
	"remapper/internal/tree"
)

// ToTree converts the document into a mapping tree. Malformed names and
// descriptors are PARSE errors.
func (mf *MappingFile) ToTree() (*tree.HashTree, error) {
	t := tree.NewHashTree()

	for _, p := range mf.Packages {
		if p.Obf == "" {
			return nil, rerrors.Parse("", 0, "package without obf name", nil)
		}

		t.Insert(entry.Package(p.Obf), record(p.Obf, p.Deobf, Access{}))
	}

	for i := range mf.Classes {
		c := &mf.Classes[i]

		owner, err := entry.NewClass(c.Obf)
		if err != nil {
			return nil, rerrors.Parse("", 0, "invalid class", err)
		}

		if err := insertClass(t, owner, c); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func insertClass(t *tree.HashTree, owner entry.ClassEntry, c *ClassMapping) error {
	t.Insert(owner, record(c.Obf, c.Deobf, c.Access))

	for _, f := range c.Fields {
		field, err := entry.NewField(owner.FullName(), f.Obf, f.Desc)
		if err != nil {
			return rerrors.Parse("", 0, "invalid field in "+owner.FullName(), err)
		}

		t.Insert(field, record(f.Obf, f.Deobf, f.Access))
	}

	for i := range c.Methods {
		m := &c.Methods[i]

		method, err := entry.NewMethod(owner.FullName(), m.Obf, m.Desc)
		if err != nil {
			return rerrors.Parse("", 0, "invalid method in "+owner.FullName(), err)
		}

		t.Insert(method, record(m.Obf, m.Deobf, m.Access))

		for _, p := range m.Params {
			t.Insert(entry.Param(method, p.Index, p.Name), entry.Rename(p.Name))
		}

		for _, l := range m.Locals {
			t.Insert(entry.Local(method, l.Index, l.Name, false), entry.Rename(l.Name))
		}
	}

	for i := range c.Classes {
		inner := &c.Classes[i]
		if inner.Obf == "" {
			return rerrors.Parse("", 0, "inner class of "+owner.FullName()+" without obf name", nil)
		}

		if err := insertClass(t, entry.InnerClass(owner, inner.Obf), inner); err != nil {
			return err
		}
	}

	return nil
}

// record returns nil for navigation-only elements. An access override
// without a rename keeps the obfuscated name.
func record(obf, deobf string, access Access) *entry.Mapping {
	if deobf == "" && access.IsUnchanged() {
		return nil
	}

	if deobf == "" {
		deobf = obf
	}

	return &entry.Mapping{TargetName: deobf, Access: access.AccessModifier}
}

// FromTree builds a sorted document holding every record of t.
func FromTree(t tree.Tree) (*MappingFile, error) {
	b := &builder{
		mf:      &MappingFile{Version: CurrentVersion},
		classes: make(map[entry.ClassEntry]*ClassMapping),
	}

	for _, n := range t.Nodes() {
		if err := b.add(n); err != nil {
			return nil, err
		}
	}

	b.mf.Classes = b.collect(b.roots)
	b.mf.Sort()

	return b.mf, nil
}

type builder struct {
	mf      *MappingFile
	classes map[entry.ClassEntry]*ClassMapping
	// Nesting is assembled in collect once every class is known.
	roots []entry.ClassEntry
	inner map[entry.ClassEntry][]entry.ClassEntry
}

func (b *builder) add(n tree.Node) error {
	switch e := n.Entry.(type) {
	case entry.PackageEntry:
		if n.HasValue() {
			b.mf.Packages = append(b.mf.Packages, PackageMapping{Obf: e.Path(), Deobf: n.Mapping.TargetName})
		}
	case entry.ClassEntry:
		c := b.class(e)
		setRecord(&c.Deobf, &c.Access, n.Mapping)
	case entry.FieldEntry:
		f := FieldMapping{Obf: e.Name(), Desc: e.Desc().String()}
		setRecord(&f.Deobf, &f.Access, n.Mapping)

		c := b.class(e.Owner())
		c.Fields = append(c.Fields, f)
	case entry.MethodEntry:
		m := b.method(e)
		setRecord(&m.Deobf, &m.Access, n.Mapping)
	case entry.LocalVariableEntry:
		if !n.HasValue() {
			return nil
		}

		m := b.method(e.Method())
		v := VarMapping{Index: e.Index(), Name: n.Mapping.TargetName}

		if e.IsArgument() {
			m.Params = append(m.Params, v)
		} else {
			m.Locals = append(m.Locals, v)
		}
	default:
		return rerrors.Consistencyf("cannot write %s entry %s", n.Entry.Kind(), n.Entry)
	}

	return nil
}

func setRecord(deobf *string, access *Access, m *entry.Mapping) {
	if m == nil {
		return
	}

	*deobf = m.TargetName
	access.AccessModifier = m.Access
}

func (b *builder) class(c entry.ClassEntry) *ClassMapping {
	if cm, ok := b.classes[c]; ok {
		return cm
	}

	cm := &ClassMapping{Obf: c.Name()}
	b.classes[c] = cm

	if outer, ok := c.Outer(); ok {
		b.class(outer)

		if b.inner == nil {
			b.inner = make(map[entry.ClassEntry][]entry.ClassEntry)
		}

		b.inner[outer] = append(b.inner[outer], c)
	} else {
		b.roots = append(b.roots, c)
	}

	return cm
}

func (b *builder) method(e entry.MethodEntry) *MethodMapping {
	c := b.class(e.Owner())

	for i := range c.Methods {
		if c.Methods[i].Obf == e.Name() && c.Methods[i].Desc == e.Desc().String() {
			return &c.Methods[i]
		}
	}

	c.Methods = append(c.Methods, MethodMapping{Obf: e.Name(), Desc: e.Desc().String()})

	return &c.Methods[len(c.Methods)-1]
}

func (b *builder) collect(classes []entry.ClassEntry) []ClassMapping {
	if len(classes) == 0 {
		return nil
	}

	out := make([]ClassMapping, 0, len(classes))

	for _, c := range classes {
		cm := *b.classes[c]
		cm.Classes = b.collect(b.inner[c])
		out = append(out, cm)
	}

	return out
}
