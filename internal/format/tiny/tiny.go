package tiny

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"remapper/internal/diagnostic"
	"remapper/internal/entry"
	rerrors "remapper/internal/errors"
	"remapper/internal/format"
	"remapper/internal/storage"
	"remapper/internal/translate"
	"remapper/internal/tree"
)

// Name is the registry name of the format.
const Name = "tiny"

// VariantFile is the only variant.
const VariantFile = "file"

// Option names.
const (
	OptionFromColumn = "from_column"
	OptionToColumn   = "to_column"
)

const (
	version     = "v1"
	kindClass   = "CLASS"
	kindField   = "FIELD"
	kindMethod  = "METHOD"
	memberCols  = 3 // kind, owner, descriptor
	classCols   = 1 // kind
	commentMark = "#"
)

var options = []format.Option{
	{
		Name:        OptionFromColumn,
		Description: "namespace the tree is keyed by",
		Default:     "intermediary",
		Validate:    format.NotBlank,
	},
	{
		Name:        OptionToColumn,
		Description: "namespace the records rename to",
		Required:    true,
		Validate:    format.NotBlank,
	},
}

// New returns the tiny format.
func New() *format.Format {
	return &format.Format{
		Name:    Name,
		Readers: []format.NamedReader{{Name: VariantFile, Reader: reader{}}},
		Writers: []format.NamedWriter{{Name: VariantFile, Writer: writer{}}},
	}
}

type reader struct{}

func (reader) Options() []format.Option { return options }

func (reader) PathTypes() format.PathTypes { return format.Files }

func (reader) CheckPath(ctx context.Context, fs *storage.Store, path string, diags *diagnostic.Diagnostics) bool {
	if !format.CheckPathTypes(ctx, fs, path, format.Files, diags) {
		return false
	}

	if !fs.IsFile(ctx, path) {
		diags.AddError(diagnostic.CodeMissingFile, "mapping file does not exist", path, "")
		return false
	}

	return true
}

// line is a parsed body line with its 1-based position.
type line struct {
	no    int
	kind  string
	owner string
	desc  string
	names []string
}

func (reader) Read(ctx context.Context, req format.ReadRequest) (tree.Tree, error) {
	steps := format.NewStepCounter(req.Progress, 2, "reading "+req.Path)
	steps.Step("parsing")

	raw, err := req.FS.ReadLines(ctx, req.Path)
	if err != nil {
		return nil, err
	}

	namespaces, lines, err := parse(req.Path, raw)
	if err != nil {
		return nil, err
	}

	from, err := column(namespaces, req.Options.Get(OptionFromColumn))
	if err != nil {
		return nil, err
	}

	to, err := column(namespaces, req.Options.Get(OptionToColumn))
	if err != nil {
		return nil, err
	}

	steps.Step("building tree")

	t, err := build(req.Path, lines, from, to)
	if err != nil {
		return nil, err
	}

	steps.Done()

	return t, nil
}

func parse(path string, raw []string) ([]string, []line, error) {
	if len(raw) == 0 {
		return nil, nil, rerrors.Parse(path, 1, "empty file, expected a "+version+" header", nil)
	}

	header := strings.Split(raw[0], "\t")
	if header[0] != version || len(header) < 3 {
		return nil, nil, rerrors.Parse(path, 1, fmt.Sprintf("expected a %s header with two or more namespaces", version), nil)
	}

	namespaces := header[1:]
	lines := make([]line, 0, len(raw)-1)

	for i, text := range raw[1:] {
		no := i + 2

		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, commentMark) {
			continue
		}

		cols := strings.Split(text, "\t")
		l := line{no: no, kind: cols[0]}

		want := classCols
		if l.kind == kindField || l.kind == kindMethod {
			want = memberCols
		} else if l.kind != kindClass {
			return nil, nil, rerrors.Parse(path, no, fmt.Sprintf("unknown line kind %q", l.kind), nil)
		}

		if len(cols) != want+len(namespaces) {
			return nil, nil, rerrors.Parse(path, no,
				fmt.Sprintf("%s line has %d columns, expected %d", l.kind, len(cols), want+len(namespaces)), nil)
		}

		if want == memberCols {
			l.owner, l.desc = cols[1], cols[2]
		}

		l.names = cols[want:]
		lines = append(lines, l)
	}

	return namespaces, lines, nil
}

func column(namespaces []string, name string) (int, error) {
	i := slices.Index(namespaces, name)
	if i < 0 {
		return 0, rerrors.Configf("namespace %q is not one of %v", name, namespaces)
	}

	return i, nil
}

// build inserts every line. Owners and descriptors are given in the first
// namespace and are renamed into the from namespace through the CLASS lines.
func build(path string, lines []line, from, to int) (*tree.HashTree, error) {
	classes := make(map[string]string)

	for _, l := range lines {
		if l.kind == kindClass {
			classes[l.names[0]] = l.names[from]
		}
	}

	toFrom := func(c entry.ClassEntry) entry.ClassEntry {
		if name, ok := classes[c.FullName()]; ok && name != "" {
			return entry.Class(name)
		}

		return c
	}

	t := tree.NewHashTree()

	for _, l := range lines {
		source, target := l.names[from], l.names[to]
		if source == "" || target == "" {
			continue
		}

		switch l.kind {
		case kindClass:
			c, err := entry.NewClass(source)
			if err != nil {
				return nil, rerrors.Parse(path, l.no, "invalid class", err)
			}

			if c.IsInner() {
				target = entry.Class(target).InnerName()
			}

			t.Insert(c, entry.Rename(target))
		case kindField:
			f, err := entry.NewField(l.owner, source, l.desc)
			if err != nil {
				return nil, rerrors.Parse(path, l.no, "invalid field", err)
			}

			t.Insert(f.WithOwner(toFrom(f.Owner())).WithDesc(f.Desc().Remap(toFrom)), entry.Rename(target))
		case kindMethod:
			m, err := entry.NewMethod(l.owner, source, l.desc)
			if err != nil {
				return nil, rerrors.Parse(path, l.no, "invalid method", err)
			}

			t.Insert(m.WithOwner(toFrom(m.Owner())).WithDesc(m.Desc().Remap(toFrom)), entry.Rename(target))
		}
	}

	return t, nil
}

type writer struct{}

func (writer) Options() []format.Option { return options }

func (writer) PathTypes() format.PathTypes { return format.Files }

func (writer) CheckPath(ctx context.Context, fs *storage.Store, path string, diags *diagnostic.Diagnostics) bool {
	return format.CheckPathTypes(ctx, fs, path, format.Files, diags)
}

// Write writes the classes, fields and methods of the tree. The from
// namespace is the first column.
func (writer) Write(ctx context.Context, req format.WriteRequest) error {
	steps := format.NewStepCounter(req.Progress, 1, "writing "+req.Path)
	steps.Step("writing mappings")

	tr := translate.NewMappingTranslator(req.Tree, nil)
	out := []string{strings.Join([]string{version, req.Options.Get(OptionFromColumn), req.Options.Get(OptionToColumn)}, "\t")}
	skipped := 0

	for _, n := range req.Tree.Nodes() {
		if !n.HasValue() {
			continue
		}

		switch e := n.Entry.(type) {
		case entry.ClassEntry:
			out = append(out, join(kindClass, e.FullName(), tr.TranslateClass(e).FullName()))
		case entry.FieldEntry:
			out = append(out, join(kindField, e.Owner().FullName(), string(e.Desc()), e.Name(), n.Mapping.TargetName))
		case entry.MethodEntry:
			out = append(out, join(kindMethod, e.Owner().FullName(), string(e.Desc()), e.Name(), n.Mapping.TargetName))
		default:
			skipped++
		}
	}

	if skipped > 0 && req.Logger != nil {
		req.Logger.Debug("tiny v1 has no lines for packages or variables", "skipped", skipped)
	}

	if err := req.FS.WriteLines(ctx, req.Path, out); err != nil {
		return err
	}

	steps.Done()

	return nil
}

func join(cols ...string) string {
	return strings.Join(cols, "\t")
}
