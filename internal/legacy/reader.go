package legacy

import (
	"context"
	"strconv"

	"remapper/internal/diagnostic"
	"remapper/internal/entry"
	"remapper/internal/format"
	"remapper/internal/storage"
	"remapper/internal/tree"
)

// readSteps is the number of steps a read reports.
const readSteps = loadSteps + 4

type reader struct {
	cache *FactsCache
}

func (reader) Options() []format.Option { return nil }

func (reader) PathTypes() format.PathTypes { return format.Directories }

// CheckPath reports each missing input file on its own.
func (reader) CheckPath(ctx context.Context, fs *storage.Store, path string, diags *diagnostic.Diagnostics) bool {
	if !format.CheckPathTypes(ctx, fs, path, format.Directories, diags) {
		return false
	}

	return format.CheckRequiredFiles(ctx, fs, path, requiredFiles, diags)
}

func (r reader) Read(ctx context.Context, req format.ReadRequest) (tree.Tree, error) {
	steps := format.NewStepCounter(req.Progress, readSteps, "reading "+req.Path)

	in, err := load(ctx, req.FS, req.Path, r.cache, steps, false)
	if err != nil {
		return nil, err
	}

	names := in.names.Overlay(in.deltas)
	built := tree.NewHashTree()

	steps.Step("adding classes")

	for _, c := range in.config.Classes() {
		built.Insert(c, entry.Rename(c.Name()))
	}

	steps.Step("adding fields")

	for _, f := range in.config.Fields() {
		built.Insert(f, entry.Rename(names.Map(f.Name())))
	}

	steps.Step("adding methods")

	for _, m := range in.config.Methods() {
		built.Insert(m, entry.Rename(names.Map(m.Name())))
	}

	steps.Step("adding parameters")

	byID := in.config.MethodsByID()

	for _, id := range in.config.MethodIDs() {
		static := in.facts.IsStatic(id)

		for _, m := range byID[id] {
			for _, slot := range ParamPlaceholders(id, m.Desc(), static) {
				param := entry.Param(m, slot.Index, "arg"+strconv.Itoa(slot.Index))
				built.Insert(param, entry.Rename(names.Map(slot.Placeholder)))
			}
		}
	}

	steps.Done()

	logger(req.Logger).Debug("read mcp directory",
		"path", req.Path, "entries", built.Len(), "rows", names.Len(), "deltas", in.deltas != nil)

	return NewTree(built, in.names, in.deltas, in.facts, in.config), nil
}
