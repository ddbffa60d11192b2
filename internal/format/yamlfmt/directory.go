package yamlfmt

import (
	"context"
	"path"
	"strconv"
	"strings"

	"remapper/internal/diagnostic"
	rerrors "remapper/internal/errors"
	"remapper/internal/format"
	"remapper/internal/mapping"
	"remapper/internal/storage"
	"remapper/internal/tree"
)

// packagesFile holds package renames. The hyphen keeps it apart from any
// class file.
const packagesFile = "package-info.yaml"

// manifestFile lists the documents of the last write, one per line.
const manifestFile = ".remapper-documents"

func isDocument(name string) bool {
	ext := path.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}

type dirReader struct{}

func (dirReader) Options() []format.Option { return readOptions }

func (dirReader) PathTypes() format.PathTypes { return format.Directories }

func (dirReader) CheckPath(ctx context.Context, fs *storage.Store, path string, diags *diagnostic.Diagnostics) bool {
	return format.CheckPathTypes(ctx, fs, path, format.Directories, diags)
}

func (dirReader) Read(ctx context.Context, req format.ReadRequest) (tree.Tree, error) {
	names, err := req.FS.Walk(ctx, req.Path)
	if err != nil {
		return nil, err
	}

	var docs []string

	for _, name := range names {
		if isDocument(name) {
			docs = append(docs, name)
		}
	}

	steps := format.NewStepCounter(req.Progress, len(docs)+1, "reading "+req.Path)
	merged := &mapping.MappingFile{Version: mapping.CurrentVersion}

	for _, name := range docs {
		steps.Step(name)

		mf, err := mapping.LoadFile(ctx, req.FS, storage.Join(req.Path, name))
		if err != nil {
			return nil, err
		}

		merged.Packages = append(merged.Packages, mf.Packages...)
		merged.Classes = append(merged.Classes, mf.Classes...)
	}

	steps.Step("building tree")

	t, err := toTree(ctx, req, merged)
	if err != nil {
		return nil, err
	}

	steps.Done()

	return t, nil
}

// dirWriter also accepts paths that do not exist yet and creates them.
type dirWriter struct{}

func (dirWriter) Options() []format.Option { return nil }

func (dirWriter) PathTypes() format.PathTypes {
	return format.PathTypes{format.PathDirectory, format.PathFile}
}

func (w dirWriter) CheckPath(ctx context.Context, fs *storage.Store, path string, diags *diagnostic.Diagnostics) bool {
	if !format.CheckPathTypes(ctx, fs, path, w.PathTypes(), diags) {
		return false
	}

	if fs.IsFile(ctx, path) {
		diags.AddError(diagnostic.CodeUnsupportedPath, "a file is in the way of the output directory", path, "")
		return false
	}

	return true
}

// Write replaces the documents below req.Path. Class documents left over
// from the previous write are removed once the new ones are in place;
// files this writer did not produce are never touched.
func (dirWriter) Write(ctx context.Context, req format.WriteRequest) error {
	mf, err := mapping.FromTree(req.Tree)
	if err != nil {
		return err
	}

	var files []storage.File

	if len(mf.Packages) > 0 {
		data, err := mapping.Marshal(&mapping.MappingFile{Packages: mf.Packages})
		if err != nil {
			return rerrors.IO("failed to encode packages", err)
		}

		files = append(files, storage.File{Name: packagesFile, Content: data})
	}

	for _, c := range mf.Classes {
		data, err := mapping.Marshal(&mapping.MappingFile{Classes: []mapping.ClassMapping{c}})
		if err != nil {
			return rerrors.IO("failed to encode "+c.Obf, err)
		}

		files = append(files, storage.File{Name: classFile(c.Obf), Content: data})
	}

	previous, err := readManifest(ctx, req.FS, req.Path)
	if err != nil {
		return err
	}

	steps := format.NewStepCounter(req.Progress, 2, "writing "+req.Path)
	steps.Step("writing " + pluralFiles(len(files)))

	if err := req.FS.WriteFiles(ctx, req.Path, files); err != nil {
		return err
	}

	written := make([]string, len(files))
	for i, f := range files {
		written[i] = f.Name
	}

	if err := req.FS.WriteLines(ctx, storage.Join(req.Path, manifestFile), written); err != nil {
		return err
	}

	steps.Step("removing stale documents")

	if err := removeStale(ctx, req.FS, req.Path, previous, written); err != nil {
		return err
	}

	steps.Done()

	return nil
}

func classFile(name string) string {
	return strings.TrimPrefix(name, "/") + ".yaml"
}

// readManifest returns the documents of the previous write, or nil.
func readManifest(ctx context.Context, fs *storage.Store, dir string) ([]string, error) {
	location := storage.Join(dir, manifestFile)
	if !fs.IsFile(ctx, location) {
		return nil, nil
	}

	return fs.ReadLines(ctx, location)
}

func removeStale(ctx context.Context, fs *storage.Store, dir string, previous, written []string) error {
	keep := make(map[string]bool, len(written))
	for _, name := range written {
		keep[name] = true
	}

	for _, name := range previous {
		if name == "" || keep[name] || !isDocument(name) {
			continue
		}

		if err := fs.Remove(ctx, storage.Join(dir, name)); err != nil {
			return err
		}
	}

	return nil
}

func pluralFiles(n int) string {
	if n == 1 {
		return "1 file"
	}

	return strconv.Itoa(n) + " files"
}
