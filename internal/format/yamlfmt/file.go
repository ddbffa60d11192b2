package yamlfmt

import (
	"context"

	"remapper/internal/diagnostic"
	"remapper/internal/format"
	"remapper/internal/mapping"
	"remapper/internal/storage"
	"remapper/internal/tree"
)

type fileReader struct{}

func (fileReader) Options() []format.Option { return readOptions }

func (fileReader) PathTypes() format.PathTypes { return format.Files }

func (fileReader) CheckPath(ctx context.Context, fs *storage.Store, path string, diags *diagnostic.Diagnostics) bool {
	if !format.CheckPathTypes(ctx, fs, path, format.Files, diags) {
		return false
	}

	if !fs.IsFile(ctx, path) {
		diags.AddError(diagnostic.CodeMissingFile, "mapping file does not exist", path, "")
		return false
	}

	return true
}

func (fileReader) Read(ctx context.Context, req format.ReadRequest) (tree.Tree, error) {
	steps := format.NewStepCounter(req.Progress, 2, "reading "+req.Path)
	steps.Step("parsing")

	mf, err := mapping.LoadFile(ctx, req.FS, req.Path)
	if err != nil {
		return nil, err
	}

	steps.Step("building tree")

	t, err := toTree(ctx, req, mf)
	if err != nil {
		return nil, err
	}

	steps.Done()

	return t, nil
}

type fileWriter struct{}

func (fileWriter) Options() []format.Option { return nil }

func (fileWriter) PathTypes() format.PathTypes { return format.Files }

func (fileWriter) CheckPath(ctx context.Context, fs *storage.Store, path string, diags *diagnostic.Diagnostics) bool {
	return format.CheckPathTypes(ctx, fs, path, format.Files, diags)
}

func (fileWriter) Write(ctx context.Context, req format.WriteRequest) error {
	mf, err := mapping.FromTree(req.Tree)
	if err != nil {
		return err
	}

	return mapping.WriteFile(ctx, req.FS, mf, req.Path)
}
