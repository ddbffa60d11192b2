package format

import (
	"context"
	"log/slog"

	"remapper/internal/diagnostic"
	rerrors "remapper/internal/errors"
	"remapper/internal/index"
	"remapper/internal/storage"
	"remapper/internal/tree"
)

// JarIndex is the deferred jar index passed to readers and writers.
type JarIndex = Lazy[*index.Index]

// ReadRequest carries the inputs of a read.
type ReadRequest struct {
	FS       *storage.Store
	Path     string
	Progress Progress
	Options  Options
	JarIndex *JarIndex
	Logger   *slog.Logger
}

// WriteRequest carries the inputs of a write.
type WriteRequest struct {
	FS   *storage.Store
	Tree tree.Tree
	// Delta holds the entries changed since the tree was read; writers that
	// only write changes require it.
	Delta    *tree.Delta
	Path     string
	Progress Progress
	Options  Options
	JarIndex *JarIndex
	Logger   *slog.Logger
}

// Jar loads the jar index of the request.
func (r ReadRequest) Jar() (*index.Index, error) {
	return loadJar(r.JarIndex)
}

// Jar loads the jar index of the request.
func (r WriteRequest) Jar() (*index.Index, error) {
	return loadJar(r.JarIndex)
}

func loadJar(jar *JarIndex) (*index.Index, error) {
	if jar == nil {
		return nil, rerrors.Config("this format needs a jar; none was given", nil)
	}

	return jar.Get()
}

// Reader reads a mapping tree from a path.
type Reader interface {
	// Options returns the option schema.
	Options() []Option
	// PathTypes returns the accepted path shapes.
	PathTypes() PathTypes
	// CheckPath reports why path cannot be read into diags.
	CheckPath(ctx context.Context, fs *storage.Store, path string, diags *diagnostic.Diagnostics) bool
	// Read returns a complete tree or fails.
	Read(ctx context.Context, req ReadRequest) (tree.Tree, error)
}

// Writer writes a mapping tree to a path.
type Writer interface {
	// Options returns the option schema.
	Options() []Option
	// PathTypes returns the accepted path shapes.
	PathTypes() PathTypes
	// CheckPath reports why path cannot be written into diags.
	CheckPath(ctx context.Context, fs *storage.Store, path string, diags *diagnostic.Diagnostics) bool
	// Write serializes req.Tree, or only req.Delta for delta writers.
	Write(ctx context.Context, req WriteRequest) error
}

// DeltaWriter is a Writer that only writes the changes in the request's
// delta and fails without one.
type DeltaWriter interface {
	Writer
	RequiresDelta() bool
}

// RequiresDelta reports whether w refuses to write without a delta.
func RequiresDelta(w Writer) bool {
	dw, ok := w.(DeltaWriter)
	return ok && dw.RequiresDelta()
}

// WriteFull writes req.Tree as if every record were new.
func WriteFull(ctx context.Context, w Writer, req WriteRequest) error {
	req.Delta = tree.Added(req.Tree)
	return w.Write(ctx, req)
}

// NamedReader is a reader variant.
type NamedReader struct {
	Name   string
	Reader Reader
}

// NamedWriter is a writer variant.
type NamedWriter struct {
	Name   string
	Writer Writer
}

// Format is a named set of reader and writer variants.
type Format struct {
	Name    string
	Readers []NamedReader
	Writers []NamedWriter
	// DefaultWriter returns the writer variant that fits data read by the
	// given reader variant. nil means writer of the same name.
	DefaultWriter func(reader string) string
}

// Reader returns the reader variant called name.
func (f *Format) Reader(name string) (Reader, bool) {
	for _, r := range f.Readers {
		if r.Name == name {
			return r.Reader, true
		}
	}

	return nil, false
}

// Writer returns the writer variant called name.
func (f *Format) Writer(name string) (Writer, bool) {
	for _, w := range f.Writers {
		if w.Name == name {
			return w.Writer, true
		}
	}

	return nil, false
}

// ReaderNames returns the reader variant names in order.
func (f *Format) ReaderNames() []string {
	out := make([]string, len(f.Readers))
	for i, r := range f.Readers {
		out[i] = r.Name
	}

	return out
}

// WriterNames returns the writer variant names in order.
func (f *Format) WriterNames() []string {
	out := make([]string, len(f.Writers))
	for i, w := range f.Writers {
		out[i] = w.Name
	}

	return out
}

// DefaultReaderFor probes readers in order for one that accepts path.
func (f *Format) DefaultReaderFor(ctx context.Context, fs *storage.Store, path string) (NamedReader, bool) {
	for _, r := range f.Readers {
		if accepts(ctx, fs, path, r.Reader.PathTypes(), r.Reader.CheckPath) {
			return r, true
		}
	}

	return NamedReader{}, false
}

// DefaultWriterFor probes writers in order for one that accepts path.
func (f *Format) DefaultWriterFor(ctx context.Context, fs *storage.Store, path string) (NamedWriter, bool) {
	for _, w := range f.Writers {
		if accepts(ctx, fs, path, w.Writer.PathTypes(), w.Writer.CheckPath) {
			return w, true
		}
	}

	return NamedWriter{}, false
}

// WriterForReader returns the writer variant matching a reader variant.
func (f *Format) WriterForReader(reader string) (NamedWriter, bool) {
	name := reader
	if f.DefaultWriter != nil {
		name = f.DefaultWriter(reader)
	}

	w, ok := f.Writer(name)
	if !ok {
		return NamedWriter{}, false
	}

	return NamedWriter{Name: name, Writer: w}, true
}

type checkFunc func(context.Context, *storage.Store, string, *diagnostic.Diagnostics) bool

func accepts(ctx context.Context, fs *storage.Store, path string, types PathTypes, check checkFunc) bool {
	var discard diagnostic.Diagnostics
	return types.Match(ctx, fs, path) && check(ctx, fs, path, &discard)
}
