package legacy

import (
	"bytes"
	"context"
	"encoding/csv"
	"log/slog"
	"strconv"

	"remapper/internal/common"
	"remapper/internal/diagnostic"
	"remapper/internal/entry"
	rerrors "remapper/internal/errors"
	"remapper/internal/format"
	"remapper/internal/storage"
	"remapper/internal/tree"
)

// source is what a writer works from: the bridge inputs and, for trees
// read by this format, the tree as it was read.
type source struct {
	*sidecars
	original tree.Snapshot
}

// writeSteps is the number of steps a write reports after any loading.
const writeSteps = 1

// prepare returns the inputs of a write, loading the sidecars from the
// target directory unless the tree carries them.
func prepare(ctx context.Context, req format.WriteRequest, cache *FactsCache) (*source, *format.StepCounter, error) {
	if t, ok := tree.Unwrap(req.Tree).(*Tree); ok {
		steps := format.NewStepCounter(req.Progress, writeSteps, "writing "+req.Path)

		return &source{
			sidecars: &sidecars{names: t.names, deltas: t.deltas, facts: t.facts, config: t.config},
			original: t.original,
		}, steps, nil
	}

	steps := format.NewStepCounter(req.Progress, loadSteps+writeSteps, "writing "+req.Path)

	in, err := load(ctx, req.FS, req.Path, cache, steps, true)
	if err != nil {
		return nil, nil, err
	}

	return &source{sidecars: in}, steps, nil
}

// checkWritePath accepts a directory holding the sidecars. The naming
// tables are written, so they may be missing.
func checkWritePath(ctx context.Context, fs *storage.Store, path string, diags *diagnostic.Diagnostics) bool {
	if !format.CheckPathTypes(ctx, fs, path, format.Directories, diags) {
		return false
	}

	return format.CheckRequiredFiles(ctx, fs, path, []string{TsrgFile, ConstructorsFile, JarFile}, diags)
}

// key is the table row an entry is written to.
type key struct {
	table Table
	srg   string
	// methodID is set for parameters.
	methodID string
}

// keyOf returns the row of e, or a reason why e has none.
func keyOf(e entry.Entry, config *SrgConfig) (key, string) {
	switch v := e.(type) {
	case entry.FieldEntry:
		if !IsPlaceholderField(v.Name()) {
			return key{}, "field has no placeholder name"
		}

		return key{table: Fields, srg: v.Name()}, ""
	case entry.MethodEntry:
		if !IsPlaceholderMethod(v.Name()) {
			return key{}, "method has no placeholder name"
		}

		return key{table: Methods, srg: v.Name()}, ""
	case entry.LocalVariableEntry:
		if !v.IsArgument() {
			return key{}, "local variable is not an argument"
		}

		id, ok := config.MethodID(v.Method())
		if !ok {
			return key{}, "method has no parameter id"
		}

		return key{table: Params, srg: ParamPlaceholder(id, v.Index()), methodID: id}, ""
	default:
		return key{}, ""
	}
}

// unchanged reports whether writing mapped for k would only restate the
// placeholder itself.
func unchanged(k key, mapped string, names *Names) bool {
	return mapped == k.srg && !names.Has(k.srg)
}

// rowWriter builds the rows of a full write.
type rowWriter struct {
	names       *Names
	dists       Dists
	methodSides map[string]Dist
	rows        [len(tables)]map[string]Row
	log         *slog.Logger
}

func (w *rowWriter) add(e entry.Entry, m *entry.Mapping, config *SrgConfig) {
	k, reason := keyOf(e, config)
	if reason != "" {
		w.log.Debug("not writing entry", "entry", e.String(), "reason", reason)
		return
	}

	if k.srg == "" || unchanged(k, m.TargetName, w.names) {
		return
	}

	row := Row{Srg: k.srg, Name: m.TargetName}
	if prior, ok := w.names.Get(k.table, k.srg); ok {
		row.Side, row.Comment = prior.Side, prior.Comment
	} else {
		row.Side = w.side(k)
	}

	w.rows[k.table][k.srg] = row
}

func (w *rowWriter) side(k key) Dist {
	switch k.table {
	case Fields:
		return w.dists.field(PlaceholderID(k.srg))
	case Methods:
		return w.dists.method(PlaceholderID(k.srg))
	default:
		if side, ok := w.methodSides[k.methodID]; ok {
			return side
		}

		return w.dists.method(k.methodID)
	}
}

func encodeTable(t Table, rows map[string]Row) ([]byte, error) {
	var buf bytes.Buffer

	cw := csv.NewWriter(&buf)
	if err := cw.Write(t.Header()); err != nil {
		return nil, err
	}

	for _, srg := range common.SortedKeys(rows) {
		row := rows[srg]
		record := []string{row.Srg, row.Name, strconv.Itoa(int(row.Side))}

		if t != Params {
			record = append(record, row.Comment)
		}

		if err := cw.Write(record); err != nil {
			return nil, err
		}
	}

	cw.Flush()

	return buf.Bytes(), cw.Error()
}

// fullWriter rewrites the three naming tables from the tree.
type fullWriter struct {
	cache *FactsCache
}

func (fullWriter) Options() []format.Option { return nil }

func (fullWriter) PathTypes() format.PathTypes { return format.Directories }

func (fullWriter) CheckPath(ctx context.Context, fs *storage.Store, path string, diags *diagnostic.Diagnostics) bool {
	return checkWritePath(ctx, fs, path, diags)
}

func (w fullWriter) Write(ctx context.Context, req format.WriteRequest) error {
	src, steps, err := prepare(ctx, req, w.cache)
	if err != nil {
		return err
	}

	dists, err := src.facts.Dists(src.config)
	if err != nil {
		return err
	}

	names := src.names.Overlay(src.deltas)
	rw := &rowWriter{
		names:       names,
		dists:       dists,
		methodSides: names.MethodSides(),
		log:         logger(req.Logger),
	}

	for _, t := range tables {
		rw.rows[t] = make(map[string]Row)
	}

	steps.Step("writing naming tables")

	for _, n := range req.Tree.Nodes() {
		if n.HasValue() {
			rw.add(n.Entry, n.Mapping, src.config)
		}
	}

	files := make([]storage.File, 0, len(tables))

	for _, t := range tables {
		data, err := encodeTable(t, rw.rows[t])
		if err != nil {
			return rerrors.IO("failed to encode "+t.File(), err)
		}

		files = append(files, storage.File{Name: t.File(), Content: data})
	}

	if err := req.FS.WriteFiles(ctx, req.Path, files); err != nil {
		return err
	}

	steps.Done()

	return nil
}

// deltaWriter writes the changes since the tree was read as a delta file,
// keeping the deltas that were already there.
type deltaWriter struct {
	cache *FactsCache
}

func (deltaWriter) Options() []format.Option { return nil }

func (deltaWriter) PathTypes() format.PathTypes { return format.Directories }

func (deltaWriter) CheckPath(ctx context.Context, fs *storage.Store, path string, diags *diagnostic.Diagnostics) bool {
	return checkWritePath(ctx, fs, path, diags)
}

func (deltaWriter) RequiresDelta() bool { return true }

func (w deltaWriter) Write(ctx context.Context, req format.WriteRequest) error {
	if req.Delta == nil {
		return rerrors.Config("the delta writer needs the changes since the mappings were read; "+
			"give a base to diff against or use the full writer", nil)
	}

	src, steps, err := prepare(ctx, req, w.cache)
	if err != nil {
		return err
	}

	log := logger(req.Logger)

	steps.Step("writing " + DeltasFile)

	var rows [len(tables)]map[string]Row

	for _, t := range tables {
		rows[t] = make(map[string]Row)

		if src.deltas != nil {
			for _, row := range src.deltas.Rows(t) {
				rows[t][row.Srg] = row
			}
		}
	}

	for _, e := range req.Delta.Changes() {
		k, reason := keyOf(e, src.config)
		if reason != "" {
			log.Debug("not writing change", "entry", e.String(), "reason", reason)
			continue
		}

		if k.srg == "" {
			continue
		}

		m := req.Tree.Get(e)

		switch {
		case m == nil || unchanged(k, m.TargetName, src.names):
			delete(rows[k.table], k.srg)
		case src.original != nil && m.Equal(src.original.Get(e)):
			// restored to what was read; any earlier delta line stays
		default:
			row := Row{Srg: k.srg, Name: m.TargetName}
			if prior, ok := rows[k.table][k.srg]; ok {
				row.Comment = prior.Comment
			}

			rows[k.table][k.srg] = row
		}
	}

	var lines []string

	for _, t := range tables {
		for _, srg := range common.SortedKeys(rows[t]) {
			lines = append(lines, deltaLine(t, rows[t][srg]))
		}
	}

	if err := req.FS.WriteLines(ctx, storage.Join(req.Path, DeltasFile), lines); err != nil {
		return err
	}

	steps.Done()

	log.Debug("wrote deltas", "path", req.Path, "lines", len(lines))

	return nil
}
