package entry

import "strings"

// PackageEntry is a slash-separated package path.
type PackageEntry struct {
	path string
}

// Package creates a package entry.
func Package(path string) PackageEntry {
	return PackageEntry{path: strings.Trim(path, "/")}
}

func (PackageEntry) sealed() {}

// Kind implements Entry.
func (PackageEntry) Kind() Kind { return KindPackage }

// Name returns the full package path.
func (p PackageEntry) Name() string { return p.path }

// Path returns the full package path.
func (p PackageEntry) Path() string { return p.path }

// Parent implements Entry. Packages are roots.
func (PackageEntry) Parent() (Entry, bool) { return nil, false }

// WithName implements Entry.
func (p PackageEntry) WithName(name string) Entry { return Package(name) }

// String implements Entry.
func (p PackageEntry) String() string { return p.path }
