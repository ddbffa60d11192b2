package index

import (
	"slices"

	"remapper/internal/classfile"
	"remapper/internal/entry"
)

// ClassInfo describes one class of the archive.
type ClassInfo struct {
	Entry      entry.ClassEntry
	Access     uint16
	Super      entry.ClassEntry // zero for java/lang/Object and classes outside the archive
	Interfaces []entry.ClassEntry
	Methods    []MemberInfo
	Fields     []MemberInfo
}

// MemberInfo is a declared member and its access flags.
type MemberInfo struct {
	Entry  entry.Entry
	Access uint16
}

// IsStatic returns true for static members.
func (m MemberInfo) IsStatic() bool {
	return m.Access&classfile.AccStatic != 0
}

// Parents returns the super class followed by the interfaces.
func (c *ClassInfo) Parents() []entry.ClassEntry {
	var out []entry.ClassEntry
	if !c.Super.IsZero() {
		out = append(out, c.Super)
	}

	return append(out, c.Interfaces...)
}

// FromClassFile converts parsed class metadata.
func FromClassFile(cf *classfile.ClassFile) *ClassInfo {
	owner := entry.Class(cf.Name)

	info := &ClassInfo{
		Entry:  owner,
		Access: cf.Access,
	}

	if cf.Super != "" {
		info.Super = entry.Class(cf.Super)
	}

	for _, i := range cf.Interfaces {
		info.Interfaces = append(info.Interfaces, entry.Class(i))
	}

	for _, f := range cf.Fields {
		info.Fields = append(info.Fields, MemberInfo{
			Entry:  entry.Field(owner, f.Name, entry.TypeDescriptor(f.Descriptor)),
			Access: f.Access,
		})
	}

	for _, m := range cf.Methods {
		info.Methods = append(info.Methods, MemberInfo{
			Entry:  entry.Method(owner, m.Name, entry.MethodDescriptor(m.Descriptor)),
			Access: m.Access,
		})
	}

	return info
}

// Index holds the classes of an archive.
type Index struct {
	classes map[entry.ClassEntry]*ClassInfo
	members map[entry.Entry]MemberInfo
}

// New creates an empty index.
func New() *Index {
	return &Index{
		classes: make(map[entry.ClassEntry]*ClassInfo),
		members: make(map[entry.Entry]MemberInfo),
	}
}

// FromClasses builds an index from class infos.
func FromClasses(classes ...*ClassInfo) *Index {
	ix := New()
	for _, c := range classes {
		ix.Add(c)
	}

	return ix
}

// Add registers a class, replacing any previous definition.
func (ix *Index) Add(c *ClassInfo) {
	ix.classes[c.Entry] = c

	for _, m := range c.Methods {
		ix.members[m.Entry] = m
	}

	for _, f := range c.Fields {
		ix.members[f.Entry] = f
	}
}

// Class returns the info of c.
func (ix *Index) Class(c entry.ClassEntry) (*ClassInfo, bool) {
	info, ok := ix.classes[c]
	return info, ok
}

// Member returns the info of a declared method or field.
func (ix *Index) Member(e entry.Entry) (MemberInfo, bool) {
	m, ok := ix.members[e]
	return m, ok
}

// Classes returns every class entry, sorted by name.
func (ix *Index) Classes() []entry.ClassEntry {
	out := make([]entry.ClassEntry, 0, len(ix.classes))
	for c := range ix.classes {
		out = append(out, c)
	}

	slices.SortFunc(out, func(a, b entry.ClassEntry) int {
		return entry.Compare(a, b)
	})

	return out
}

// Len returns the number of classes.
func (ix *Index) Len() int {
	return len(ix.classes)
}

// Contains reports whether e is declared in the archive.
// Local variables are contained when their method is.
func (ix *Index) Contains(e entry.Entry) bool {
	switch v := e.(type) {
	case entry.ClassEntry:
		_, ok := ix.classes[v]
		return ok
	case entry.MethodEntry, entry.FieldEntry:
		_, ok := ix.members[v]
		return ok
	case entry.LocalVariableEntry:
		_, ok := ix.members[v.Method()]
		return ok
	case entry.PackageEntry:
		for c := range ix.classes {
			if c.PackageName() == v.Path() {
				return true
			}
		}

		return false
	default:
		return false
	}
}

// Declares reports whether class c declares a member with the name and
// descriptor of member.
func (ix *Index) Declares(c entry.ClassEntry, member entry.Entry) bool {
	switch v := member.(type) {
	case entry.MethodEntry:
		_, ok := ix.members[v.WithOwner(c)]
		return ok
	case entry.FieldEntry:
		_, ok := ix.members[v.WithOwner(c)]
		return ok
	default:
		return false
	}
}

// DeclaresMethod reports whether c declares the method name with desc.
func (ix *Index) DeclaresMethod(c entry.ClassEntry, name string, desc entry.MethodDescriptor) bool {
	_, ok := ix.members[entry.Method(c, name, desc)]
	return ok
}

// DeclaresField reports whether c declares the field name with desc.
func (ix *Index) DeclaresField(c entry.ClassEntry, name string, desc entry.TypeDescriptor) bool {
	_, ok := ix.members[entry.Field(c, name, desc)]
	return ok
}

// Parents returns the direct super types of c known to the index.
func (ix *Index) Parents(c entry.ClassEntry) []entry.ClassEntry {
	info, ok := ix.classes[c]
	if !ok {
		return nil
	}

	return info.Parents()
}

// Ancestors returns every super type of c in breadth-first order:
// the super class before interfaces, nearer types before farther ones.
func (ix *Index) Ancestors(c entry.ClassEntry) []entry.ClassEntry {
	var out []entry.ClassEntry

	seen := map[entry.ClassEntry]bool{c: true}
	queue := ix.Parents(c)

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		if seen[next] {
			continue
		}

		seen[next] = true
		out = append(out, next)
		queue = append(queue, ix.Parents(next)...)
	}

	return out
}

// IsStatic reports whether a declared method or field is static.
func (ix *Index) IsStatic(e entry.Entry) bool {
	m, ok := ix.members[e]
	return ok && m.IsStatic()
}
