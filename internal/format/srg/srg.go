// Package srg writes SRG mapping files. The format has no reader.
//
// Each record becomes one line with the source and target form of the
// element:
//
//	CL: a net/Block
//	FD: a/f net/Block/hardness
//	MD: a/m (La;)V net/Block/setName (Lnet/Block;)V
//
// With the inherited option the writer also lists every method of the jar
// that overrides a renamed method without a record of its own.
package srg

import (
	"context"

	"remapper/internal/diagnostic"
	"remapper/internal/entry"
	"remapper/internal/format"
	"remapper/internal/index"
	"remapper/internal/storage"
	"remapper/internal/translate"
)

// Name is the registry name of the format.
const Name = "srg"

// VariantFile is the only writer variant.
const VariantFile = "file"

// OptionInherited adds lines for overriding methods found in the jar.
const OptionInherited = "inherited"

var options = []format.Option{
	{
		Name:        OptionInherited,
		Description: "also write overrides of renamed methods found in the jar",
		Default:     "false",
		Validate:    format.OneOf("true", "false"),
	},
}

// New returns the srg format.
func New() *format.Format {
	return &format.Format{
		Name:          Name,
		Writers:       []format.NamedWriter{{Name: VariantFile, Writer: writer{}}},
		DefaultWriter: func(string) string { return VariantFile },
	}
}

type writer struct{}

func (writer) Options() []format.Option { return options }

func (writer) PathTypes() format.PathTypes { return format.Files }

func (writer) CheckPath(ctx context.Context, fs *storage.Store, path string, diags *diagnostic.Diagnostics) bool {
	return format.CheckPathTypes(ctx, fs, path, format.Files, diags)
}

func (writer) Write(ctx context.Context, req format.WriteRequest) error {
	inherited, err := req.Options.Bool(OptionInherited)
	if err != nil {
		return err
	}

	steps := format.NewStepCounter(req.Progress, 1, "writing "+req.Path)
	steps.Step("writing mappings")

	var ix *index.Index

	if inherited {
		if ix, err = req.Jar(); err != nil {
			return err
		}
	}

	tr := translate.NewMappingTranslator(req.Tree, nil)

	var lines []string

	for _, n := range req.Tree.Nodes() {
		if !n.HasValue() {
			continue
		}

		switch e := n.Entry.(type) {
		case entry.ClassEntry:
			lines = append(lines, "CL: "+e.FullName()+" "+tr.TranslateClass(e).FullName())
		case entry.FieldEntry:
			to := tr.Translate(e).(entry.FieldEntry)
			lines = append(lines, "FD: "+memberPath(e.Owner(), e.Name())+" "+memberPath(to.Owner(), to.Name()))
		case entry.MethodEntry:
			to := tr.Translate(e).(entry.MethodEntry)
			lines = append(lines, methodLine(e, to))
		}
	}

	if ix != nil {
		lines = append(lines, overrides(ix, req)...)
	}

	if err := req.FS.WriteLines(ctx, req.Path, lines); err != nil {
		return err
	}

	steps.Done()

	return nil
}

// overrides returns the lines of jar methods that have no record but
// inherit a rename from an ancestor.
func overrides(ix *index.Index, req format.WriteRequest) []string {
	tr := translate.NewMappingTranslator(req.Tree,
		translate.NewIndexResolver(ix, translate.Config{Strategy: translate.ResolveRoot}))

	var lines []string

	for _, c := range ix.Classes() {
		info, _ := ix.Class(c)

		for _, mi := range info.Methods {
			m, ok := mi.Entry.(entry.MethodEntry)
			if !ok || mi.IsStatic() || m.IsConstructor() || req.Tree.Get(m) != nil {
				continue
			}

			to := tr.Translate(m).(entry.MethodEntry)
			if to.Name() == m.Name() {
				continue
			}

			lines = append(lines, methodLine(m, to))
		}
	}

	return lines
}

func methodLine(from, to entry.MethodEntry) string {
	return "MD: " + memberPath(from.Owner(), from.Name()) + " " + string(from.Desc()) + " " +
		memberPath(to.Owner(), to.Name()) + " " + string(to.Desc())
}

func memberPath(owner entry.ClassEntry, name string) string {
	return owner.FullName() + "/" + name
}
