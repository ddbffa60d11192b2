package mapping

import (
	"cmp"
	"slices"
)

// CurrentVersion is written by Marshal when no version is set.
const CurrentVersion = "1"

// MappingFile represents the root of a YAML mapping document.
type MappingFile struct {
	// Version of the mapping schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Packages lists renamed packages.
	Packages []PackageMapping `yaml:"packages,omitempty"`

	// Classes lists top-level classes; inner classes nest inside them.
	Classes []ClassMapping `yaml:"classes,omitempty"`
}

// PackageMapping renames a package.
type PackageMapping struct {
	Obf   string `yaml:"obf"`
	Deobf string `yaml:"deobf"`
}

// ClassMapping renames a class and lists its members.
type ClassMapping struct {
	// Obf is the full internal name of a top-level class, or the simple
	// name of an inner class.
	Obf   string `yaml:"obf"`
	Deobf string `yaml:"deobf,omitempty"`
	// Access overrides the access modifier of the class.
	Access Access `yaml:"access,omitempty"`

	Fields  []FieldMapping  `yaml:"fields,omitempty"`
	Methods []MethodMapping `yaml:"methods,omitempty"`
	// Classes lists inner classes.
	Classes []ClassMapping `yaml:"classes,omitempty"`
}

// FieldMapping renames a field.
type FieldMapping struct {
	Obf    string `yaml:"obf"`
	Desc   string `yaml:"desc"`
	Deobf  string `yaml:"deobf,omitempty"`
	Access Access `yaml:"access,omitempty"`
}

// MethodMapping renames a method and its variables.
type MethodMapping struct {
	Obf    string `yaml:"obf"`
	Desc   string `yaml:"desc"`
	Deobf  string `yaml:"deobf,omitempty"`
	Access Access `yaml:"access,omitempty"`

	// Params names arguments by local variable slot.
	Params VarList `yaml:"params,omitempty"`
	// Locals names non-argument local variables by slot.
	Locals VarList `yaml:"locals,omitempty"`
}

// VarMapping names one local variable slot.
type VarMapping struct {
	Index int    `yaml:"index"`
	Name  string `yaml:"name"`
}

// VarList is a list of variable names. YAML accepts a list of
// {index, name} objects or a map from index to name.
type VarList []VarMapping

// IsNavigation returns true if the class carries no record of its own.
func (c *ClassMapping) IsNavigation() bool {
	return c.Deobf == "" && c.Access.IsUnchanged()
}

// IsNavigation returns true if the field carries no record of its own.
func (f *FieldMapping) IsNavigation() bool {
	return f.Deobf == "" && f.Access.IsUnchanged()
}

// IsNavigation returns true if the method carries no record of its own.
func (m *MethodMapping) IsNavigation() bool {
	return m.Deobf == "" && m.Access.IsUnchanged()
}

// Sort orders every list of the document by obfuscated name, recursively.
func (mf *MappingFile) Sort() {
	slices.SortFunc(mf.Packages, func(a, b PackageMapping) int {
		return cmp.Compare(a.Obf, b.Obf)
	})

	sortClasses(mf.Classes)
}

func sortClasses(classes []ClassMapping) {
	slices.SortFunc(classes, func(a, b ClassMapping) int {
		return cmp.Compare(a.Obf, b.Obf)
	})

	for i := range classes {
		c := &classes[i]

		slices.SortFunc(c.Fields, func(a, b FieldMapping) int {
			return cmp.Or(cmp.Compare(a.Obf, b.Obf), cmp.Compare(a.Desc, b.Desc))
		})

		slices.SortFunc(c.Methods, func(a, b MethodMapping) int {
			return cmp.Or(cmp.Compare(a.Obf, b.Obf), cmp.Compare(a.Desc, b.Desc))
		})

		for j := range c.Methods {
			c.Methods[j].Params.Sort()
			c.Methods[j].Locals.Sort()
		}

		sortClasses(c.Classes)
	}
}

// Sort orders the variables by slot.
func (v VarList) Sort() {
	slices.SortFunc(v, func(a, b VarMapping) int {
		return cmp.Compare(a.Index, b.Index)
	})
}
