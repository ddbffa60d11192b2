package entry

import "fmt"

// ConstructorName is the JVM name of instance initializers.
const ConstructorName = "<init>"

// MethodEntry is a method identified by owner, name and descriptor.
type MethodEntry struct {
	owner ClassEntry
	name  string
	desc  MethodDescriptor
}

// Method creates a method entry without validating the descriptor.
func Method(owner ClassEntry, name string, desc MethodDescriptor) MethodEntry {
	return MethodEntry{owner: owner, name: name, desc: desc}
}

// NewMethod validates and creates a method entry.
func NewMethod(owner, name, desc string) (MethodEntry, error) {
	c, err := NewClass(owner)
	if err != nil {
		return MethodEntry{}, err
	}

	if name == "" {
		return MethodEntry{}, fmt.Errorf("method of %s has an empty name", owner)
	}

	d, err := ParseMethodDescriptor(desc)
	if err != nil {
		return MethodEntry{}, err
	}

	return Method(c, name, d), nil
}

func (MethodEntry) sealed() {}

// Kind implements Entry.
func (MethodEntry) Kind() Kind { return KindMethod }

// Name implements Entry.
func (m MethodEntry) Name() string { return m.name }

// Owner returns the declaring class.
func (m MethodEntry) Owner() ClassEntry { return m.owner }

// Desc returns the method descriptor.
func (m MethodEntry) Desc() MethodDescriptor { return m.desc }

// IsConstructor returns true for instance initializers.
func (m MethodEntry) IsConstructor() bool { return m.name == ConstructorName }

// Parent implements Entry.
func (m MethodEntry) Parent() (Entry, bool) { return m.owner, true }

// WithName implements Entry.
func (m MethodEntry) WithName(name string) Entry {
	m.name = name
	return m
}

// WithOwner returns a copy declared in owner.
func (m MethodEntry) WithOwner(owner ClassEntry) MethodEntry {
	m.owner = owner
	return m
}

// WithDesc returns a copy with a different descriptor.
func (m MethodEntry) WithDesc(desc MethodDescriptor) MethodEntry {
	m.desc = desc
	return m
}

// String implements Entry.
func (m MethodEntry) String() string {
	return m.owner.fullName + "." + m.name + string(m.desc)
}

// FieldEntry is a field identified by owner, name and type descriptor.
type FieldEntry struct {
	owner ClassEntry
	name  string
	desc  TypeDescriptor
}

// Field creates a field entry without validating the descriptor.
func Field(owner ClassEntry, name string, desc TypeDescriptor) FieldEntry {
	return FieldEntry{owner: owner, name: name, desc: desc}
}

// NewField validates and creates a field entry.
func NewField(owner, name, desc string) (FieldEntry, error) {
	c, err := NewClass(owner)
	if err != nil {
		return FieldEntry{}, err
	}

	if name == "" {
		return FieldEntry{}, fmt.Errorf("field of %s has an empty name", owner)
	}

	d, err := ParseTypeDescriptor(desc)
	if err != nil {
		return FieldEntry{}, err
	}

	return Field(c, name, d), nil
}

func (FieldEntry) sealed() {}

// Kind implements Entry.
func (FieldEntry) Kind() Kind { return KindField }

// Name implements Entry.
func (f FieldEntry) Name() string { return f.name }

// Owner returns the declaring class.
func (f FieldEntry) Owner() ClassEntry { return f.owner }

// Desc returns the field type descriptor.
func (f FieldEntry) Desc() TypeDescriptor { return f.desc }

// Parent implements Entry.
func (f FieldEntry) Parent() (Entry, bool) { return f.owner, true }

// WithName implements Entry.
func (f FieldEntry) WithName(name string) Entry {
	f.name = name
	return f
}

// WithOwner returns a copy declared in owner.
func (f FieldEntry) WithOwner(owner ClassEntry) FieldEntry {
	f.owner = owner
	return f
}

// WithDesc returns a copy with a different type.
func (f FieldEntry) WithDesc(desc TypeDescriptor) FieldEntry {
	f.desc = desc
	return f
}

// String implements Entry.
func (f FieldEntry) String() string {
	return f.owner.fullName + "." + f.name + ":" + string(f.desc)
}

// LocalVariableEntry is a local variable slot of a method.
type LocalVariableEntry struct {
	method   MethodEntry
	index    int
	argument bool
	name     string
}

// Local creates a local variable entry. name is display data.
func Local(method MethodEntry, index int, name string, argument bool) LocalVariableEntry {
	return LocalVariableEntry{method: method, index: index, argument: argument, name: name}
}

// Param creates an argument entry.
func Param(method MethodEntry, index int, name string) LocalVariableEntry {
	return Local(method, index, name, true)
}

func (LocalVariableEntry) sealed() {}

// Kind implements Entry.
func (LocalVariableEntry) Kind() Kind { return KindLocal }

// Name implements Entry.
func (l LocalVariableEntry) Name() string { return l.name }

// Method returns the owning method.
func (l LocalVariableEntry) Method() MethodEntry { return l.method }

// Index returns the local variable slot.
func (l LocalVariableEntry) Index() int { return l.index }

// IsArgument returns true for method parameters.
func (l LocalVariableEntry) IsArgument() bool { return l.argument }

// Parent implements Entry.
func (l LocalVariableEntry) Parent() (Entry, bool) { return l.method, true }

// WithName implements Entry.
func (l LocalVariableEntry) WithName(name string) Entry {
	l.name = name
	return l
}

// WithMethod returns a copy owned by method.
func (l LocalVariableEntry) WithMethod(method MethodEntry) LocalVariableEntry {
	l.method = method
	return l
}

// String implements Entry.
func (l LocalVariableEntry) String() string {
	kind := "local"
	if l.argument {
		kind = "arg"
	}

	return fmt.Sprintf("%s#%s%d:%s", l.method.String(), kind, l.index, l.name)
}
