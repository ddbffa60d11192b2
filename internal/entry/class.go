package entry

import (
	"fmt"
	"strings"
)

// ClassEntry is a class identified by its full internal name ("a/b/Outer$Inner").
type ClassEntry struct {
	fullName string
}

// Class creates a class entry from an internal name.
// Dotted names are converted to internal form.
func Class(fullName string) ClassEntry {
	return ClassEntry{fullName: strings.ReplaceAll(fullName, ".", "/")}
}

// NewClass validates and creates a class entry.
func NewClass(fullName string) (ClassEntry, error) {
	if fullName == "" {
		return ClassEntry{}, fmt.Errorf("class name is empty")
	}

	if strings.HasSuffix(fullName, "$") || strings.HasSuffix(fullName, "/") {
		return ClassEntry{}, fmt.Errorf("class name %q has an empty simple name", fullName)
	}

	return Class(fullName), nil
}

// InnerClass creates the class named simple nested in outer.
func InnerClass(outer ClassEntry, simple string) ClassEntry {
	return ClassEntry{fullName: outer.fullName + "$" + simple}
}

func (ClassEntry) sealed() {}

// Kind implements Entry.
func (ClassEntry) Kind() Kind { return KindClass }

// FullName returns the full internal name.
func (c ClassEntry) FullName() string { return c.fullName }

// IsZero returns true for the zero class.
func (c ClassEntry) IsZero() bool { return c.fullName == "" }

// Name returns the renamable segment: the full name of a top-level class,
// or the simple name of an inner class.
func (c ClassEntry) Name() string {
	if c.IsInner() {
		return c.InnerName()
	}

	return c.fullName
}

// IsInner returns true if the class is nested in another class.
func (c ClassEntry) IsInner() bool {
	return strings.LastIndexByte(c.fullName, '$') > strings.LastIndexByte(c.fullName, '/')
}

// Outer returns the enclosing class of an inner class.
func (c ClassEntry) Outer() (ClassEntry, bool) {
	if !c.IsInner() {
		return ClassEntry{}, false
	}

	return ClassEntry{fullName: c.fullName[:strings.LastIndexByte(c.fullName, '$')]}, true
}

// InnerName returns the part after the last '$', or the simple name for top-level classes.
func (c ClassEntry) InnerName() string {
	if i := strings.LastIndexByte(c.fullName, '$'); i > strings.LastIndexByte(c.fullName, '/') {
		return c.fullName[i+1:]
	}

	return c.SimpleName()
}

// SimpleName returns the name without the package.
func (c ClassEntry) SimpleName() string {
	return c.fullName[strings.LastIndexByte(c.fullName, '/')+1:]
}

// PackageName returns the package path, or "" for the default package.
func (c ClassEntry) PackageName() string {
	i := strings.LastIndexByte(c.fullName, '/')
	if i < 0 {
		return ""
	}

	return c.fullName[:i]
}

// Package returns the package entry of the class.
func (c ClassEntry) Package() PackageEntry {
	return Package(c.PackageName())
}

// Parent implements Entry. Inner classes have their outer class as parent.
func (c ClassEntry) Parent() (Entry, bool) {
	outer, ok := c.Outer()
	if !ok {
		return nil, false
	}

	return outer, true
}

// WithName implements Entry. For inner classes name replaces the simple name.
func (c ClassEntry) WithName(name string) Entry {
	return c.Rename(name)
}

// Rename is WithName returning the concrete type.
func (c ClassEntry) Rename(name string) ClassEntry {
	if outer, ok := c.Outer(); ok {
		return InnerClass(outer, name)
	}

	return Class(name)
}

// String implements Entry.
func (c ClassEntry) String() string { return c.fullName }
