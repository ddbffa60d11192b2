package mapping

import (
	"fmt"
	"strconv"

	"remapper/internal/diagnostic"
	"remapper/internal/entry"
	"remapper/internal/index"
	"remapper/internal/match"
)

// Validate checks a mapping document. Structural problems are always
// reported; when ix is non-nil every class and member is also checked
// against the archive.
func Validate(mf *MappingFile, ix *index.Index) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if mf == nil {
		res.AddError(diagnostic.CodeInvalid, "mapping document is nil", "", "")
		return res
	}

	v := &validator{res: res, ix: ix}

	seen := make(map[string]bool, len(mf.Packages))

	for _, p := range mf.Packages {
		switch {
		case p.Obf == "":
			res.AddError(diagnostic.CodeInvalid, "package without obf name", "", "")
		case seen[p.Obf]:
			res.AddError(diagnostic.CodeDuplicate, fmt.Sprintf("package %q listed twice", p.Obf), p.Obf, "")
		default:
			seen[p.Obf] = true
		}
	}

	if ix == nil {
		res.AddInfo(diagnostic.CodeSkipped, "no archive given; names were not checked against one", "", "")
	}

	v.classes(entry.ClassEntry{}, mf.Classes)

	return res
}

type validator struct {
	res *diagnostic.Diagnostics
	ix  *index.Index
	// classNames is computed on the first unknown class.
	classNames []string
}

func (v *validator) classes(outer entry.ClassEntry, classes []ClassMapping) {
	seen := make(map[string]bool, len(classes))

	for i := range classes {
		c := &classes[i]

		if c.Obf == "" {
			v.res.AddError(diagnostic.CodeInvalid, "class without obf name", outer.FullName(), "")
			continue
		}

		if seen[c.Obf] {
			v.res.AddError(diagnostic.CodeDuplicate, fmt.Sprintf("class %q listed twice", c.Obf), outer.FullName(), c.Obf)
			continue
		}

		seen[c.Obf] = true

		var owner entry.ClassEntry

		if outer.IsZero() {
			ce, err := entry.NewClass(c.Obf)
			if err != nil {
				v.res.AddError(diagnostic.CodeInvalid, err.Error(), c.Obf, "")
				continue
			}

			owner = ce
		} else {
			owner = entry.InnerClass(outer, c.Obf)
		}

		v.class(owner, c)
	}
}

func (v *validator) class(owner entry.ClassEntry, c *ClassMapping) {
	known := true

	if v.ix != nil {
		if _, ok := v.ix.Class(owner); !ok {
			known = false

			v.res.AddErrorWithSuggestions(diagnostic.CodeUnknownClass,
				fmt.Sprintf("class %s is not in the archive", owner),
				owner.FullName(), "", match.Suggest(owner.FullName(), v.knownClasses()))
		}
	}

	subject := owner.FullName()
	seen := make(map[string]bool, len(c.Fields)+len(c.Methods))

	for _, f := range c.Fields {
		key := "field " + f.Obf + ":" + f.Desc

		if seen[key] {
			v.res.AddError(diagnostic.CodeDuplicate, key+" listed twice", subject, f.Obf)
			continue
		}

		seen[key] = true

		field, err := entry.NewField(subject, f.Obf, f.Desc)
		if err != nil {
			v.res.AddError(diagnostic.CodeInvalid, err.Error(), subject, f.Obf)
			continue
		}

		if known && v.ix != nil && !v.ix.Contains(field) {
			v.unknownMember(owner, field)
		}
	}

	for i := range c.Methods {
		m := &c.Methods[i]
		key := "method " + m.Obf + m.Desc

		if seen[key] {
			v.res.AddError(diagnostic.CodeDuplicate, key+" listed twice", subject, m.Obf)
			continue
		}

		seen[key] = true

		method, err := entry.NewMethod(subject, m.Obf, m.Desc)
		if err != nil {
			v.res.AddError(diagnostic.CodeInvalid, err.Error(), subject, m.Obf)
			continue
		}

		if known && v.ix != nil && !v.ix.Contains(method) {
			v.unknownMember(owner, method)
			continue
		}

		v.variables(method, m)
	}

	v.classes(owner, c.Classes)
}

func (v *validator) unknownMember(owner entry.ClassEntry, member entry.Entry) {
	var names []string

	if info, ok := v.ix.Class(owner); ok {
		members := info.Fields
		if member.Kind() == entry.KindMethod {
			members = info.Methods
		}

		for _, m := range members {
			names = append(names, m.Entry.Name())
		}
	}

	v.res.AddErrorWithSuggestions(diagnostic.CodeUnknownMember,
		fmt.Sprintf("%s %s is not declared", member.Kind(), member),
		owner.FullName(), member.Name(), match.Suggest(member.Name(), names))
}

// variables checks parameter slots against the descriptor. The first
// argument slot is 0 for static methods and 1 otherwise; static-ness is
// only known with an archive, so without one slot 0 is accepted.
func (v *validator) variables(method entry.MethodEntry, m *MethodMapping) {
	first := 0
	if v.ix != nil && !v.ix.IsStatic(method) {
		first = 1
	}

	end := 1 + method.Desc().ArgSlots()
	if v.ix != nil {
		end = first + method.Desc().ArgSlots()
	}

	member := m.Obf + m.Desc
	seen := make(map[int]bool, len(m.Params)+len(m.Locals))

	for _, p := range m.Params {
		slot := strconv.Itoa(p.Index)

		switch {
		case seen[p.Index]:
			v.res.AddError(diagnostic.CodeDuplicate, "slot "+slot+" named twice", method.Owner().FullName(), member)
		case p.Index < first || p.Index >= end:
			v.res.AddError(diagnostic.CodeInvalid,
				fmt.Sprintf("parameter slot %d outside [%d, %d)", p.Index, first, end),
				method.Owner().FullName(), member)
		case p.Name == "":
			v.res.AddError(diagnostic.CodeInvalid, "parameter slot "+slot+" has no name", method.Owner().FullName(), member)
		}

		seen[p.Index] = true
	}

	for _, l := range m.Locals {
		slot := strconv.Itoa(l.Index)

		switch {
		case seen[l.Index]:
			v.res.AddError(diagnostic.CodeDuplicate, "slot "+slot+" named twice", method.Owner().FullName(), member)
		case l.Index < 0:
			v.res.AddError(diagnostic.CodeInvalid, "negative local slot "+slot, method.Owner().FullName(), member)
		case l.Name == "":
			v.res.AddError(diagnostic.CodeInvalid, "local slot "+slot+" has no name", method.Owner().FullName(), member)
		case l.Index < end && v.ix != nil:
			v.res.AddWarning(diagnostic.CodeInvalid, "local slot "+slot+" is an argument slot", method.Owner().FullName(), member)
		}

		seen[l.Index] = true
	}
}

func (v *validator) knownClasses() []string {
	if v.classNames == nil {
		for _, c := range v.ix.Classes() {
			v.classNames = append(v.classNames, c.FullName())
		}
	}

	return v.classNames
}
