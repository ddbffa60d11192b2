package format

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"remapper/internal/diagnostic"
	rerrors "remapper/internal/errors"
	"remapper/internal/match"
	"remapper/internal/storage"
	"remapper/internal/tree"
)

// Spec names a format and optionally one of its variants: "name[:variant]".
type Spec struct {
	Format  string
	Variant string
}

// ParseSpec parses "name" or "name:variant".
func ParseSpec(s string) (Spec, error) {
	name, variant, found := strings.Cut(s, ":")
	if name == "" || (found && variant == "") || strings.Contains(variant, ":") {
		return Spec{}, rerrors.Configf("invalid format %q, expected name or name:variant", s)
	}

	return Spec{Format: name, Variant: variant}, nil
}

func (s Spec) String() string {
	if s.Variant == "" {
		return s.Format
	}

	return s.Format + ":" + s.Variant
}

// Registry holds the formats of a session in registration order.
type Registry struct {
	fs      *storage.Store
	logger  *slog.Logger
	formats []*Format
	byName  map[string]*Format
}

// NewRegistry creates an empty registry reading and writing through fs.
func NewRegistry(fs *storage.Store, logger *slog.Logger) *Registry {
	return &Registry{
		fs:     fs,
		logger: logger,
		byName: make(map[string]*Format),
	}
}

// FS returns the store used by the registry.
func (r *Registry) FS() *storage.Store {
	return r.fs
}

// Register appends f. Names must be unique.
func (r *Registry) Register(f *Format) error {
	if _, ok := r.byName[f.Name]; ok {
		return rerrors.Configf("format %q is already registered", f.Name)
	}

	r.formats = append(r.formats, f)
	r.byName[f.Name] = f

	return nil
}

// Formats returns the formats in registration order.
func (r *Registry) Formats() []*Format {
	return r.formats
}

// Names returns the format names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.formats))
	for i, f := range r.formats {
		out[i] = f.Name
	}

	return out
}

// Get returns the format called name.
func (r *Registry) Get(name string) (*Format, error) {
	f, ok := r.byName[name]
	if !ok {
		return nil, unknown("format "+quote(name), match.DidYouMean(name, r.Names()))
	}

	return f, nil
}

func unknown(what, hint string) error {
	msg := "no " + what
	if hint != "" {
		msg += " (" + hint + ")"
	}

	return rerrors.Config(msg, nil)
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}

// Reader selects a reader for path. With no variant in spec, the first
// reader that accepts path is used.
func (r *Registry) Reader(ctx context.Context, spec Spec, path string) (NamedReader, error) {
	f, err := r.Get(spec.Format)
	if err != nil {
		return NamedReader{}, err
	}

	if spec.Variant == "" {
		nr, ok := f.DefaultReaderFor(ctx, r.fs, path)
		if !ok {
			return NamedReader{}, rerrors.Configf(
				"no default reader for format %q for path %q and no reader specified", f.Name, path)
		}

		return nr, nil
	}

	reader, ok := f.Reader(spec.Variant)
	if !ok {
		return NamedReader{}, unknown(
			fmt.Sprintf("reader %q for format %q", spec.Variant, f.Name),
			match.DidYouMean(spec.Variant, f.ReaderNames()))
	}

	if err := r.checkPath(ctx, spec, path, reader.PathTypes(), reader.CheckPath); err != nil {
		return NamedReader{}, err
	}

	return NamedReader{Name: spec.Variant, Reader: reader}, nil
}

// Writer selects a writer for path. With no variant in spec, the first
// writer that accepts path is used.
func (r *Registry) Writer(ctx context.Context, spec Spec, path string) (NamedWriter, error) {
	f, err := r.Get(spec.Format)
	if err != nil {
		return NamedWriter{}, err
	}

	if spec.Variant == "" {
		nw, ok := f.DefaultWriterFor(ctx, r.fs, path)
		if !ok {
			return NamedWriter{}, rerrors.Configf(
				"no default writer for format %q for path %q and no writer specified", f.Name, path)
		}

		return nw, nil
	}

	writer, ok := f.Writer(spec.Variant)
	if !ok {
		return NamedWriter{}, unknown(
			fmt.Sprintf("writer %q for format %q", spec.Variant, f.Name),
			match.DidYouMean(spec.Variant, f.WriterNames()))
	}

	if err := r.checkPath(ctx, spec, path, writer.PathTypes(), writer.CheckPath); err != nil {
		return NamedWriter{}, err
	}

	return NamedWriter{Name: spec.Variant, Writer: writer}, nil
}

func (r *Registry) checkPath(ctx context.Context, spec Spec, path string, types PathTypes, check checkFunc) error {
	if len(types) == 0 {
		return rerrors.Configf("%s does not support any paths", spec)
	}

	var diags diagnostic.Diagnostics
	if !check(ctx, r.fs, path, &diags) {
		return rerrors.Config(fmt.Sprintf("%s cannot use %q", spec, path), diags.Error())
	}

	return nil
}

// ReadOptions are the caller-supplied inputs of Registry.Read.
type ReadOptions struct {
	Options  map[string]string
	JarIndex *JarIndex
	Progress Progress
}

// Read selects a reader, resolves its options and reads path.
func (r *Registry) Read(ctx context.Context, spec Spec, path string, in ReadOptions) (tree.Tree, error) {
	t, _, err := r.ReadVariant(ctx, spec, path, in)
	return t, err
}

// ReadVariant is Read that also returns the spec of the reader variant it
// used. Options are checked against the candidate readers before path is
// looked at.
func (r *Registry) ReadVariant(ctx context.Context, spec Spec, path string, in ReadOptions) (tree.Tree, Spec, error) {
	if err := r.preflight(spec, readerSchemas, in.Options); err != nil {
		return nil, Spec{}, err
	}

	nr, err := r.Reader(ctx, spec, path)
	if err != nil {
		return nil, Spec{}, err
	}

	opts, err := ResolveOptions(nr.Reader.Options(), in.Options)
	if err != nil {
		return nil, Spec{}, err
	}

	used := Spec{Format: spec.Format, Variant: nr.Name}
	r.logger.Debug("reading mappings", "format", spec.Format, "reader", nr.Name, "path", path)

	t, err := nr.Reader.Read(ctx, ReadRequest{
		FS:       r.fs,
		Path:     path,
		Progress: progressOrNop(in.Progress),
		Options:  opts,
		JarIndex: in.JarIndex,
		Logger:   r.logger,
	})
	if err != nil {
		return nil, Spec{}, err
	}

	return t, used, nil
}

// WriteOptions are the caller-supplied inputs of Registry.Write.
type WriteOptions struct {
	Options map[string]string
	// Delta limits delta writers to these changes. With nil, writers that
	// do not require a delta get every record as new.
	Delta *tree.Delta
	// ReadWith is the reader variant the tree came from. When spec names
	// the same format and no variant, that reader's default writer is
	// tried before probing.
	ReadWith Spec
	JarIndex *JarIndex
	Progress Progress
}

// Write selects a writer, resolves its options and writes t to path.
func (r *Registry) Write(ctx context.Context, spec Spec, path string, t tree.Tree, in WriteOptions) error {
	if err := r.preflight(spec, writerSchemas, in.Options); err != nil {
		return err
	}

	nw, err := r.writerAfterRead(ctx, spec, path, in.ReadWith)
	if err != nil {
		return err
	}

	return r.WriteWith(ctx, nw, path, t, in)
}

// writerAfterRead prefers the default writer of the reader variant t was
// read with, falling back to Writer.
func (r *Registry) writerAfterRead(ctx context.Context, spec Spec, path string, read Spec) (NamedWriter, error) {
	if spec.Variant != "" || read.Variant == "" || read.Format != spec.Format {
		return r.Writer(ctx, spec, path)
	}

	f, err := r.Get(spec.Format)
	if err != nil {
		return NamedWriter{}, err
	}

	nw, ok := f.WriterForReader(read.Variant)
	if ok && accepts(ctx, r.fs, path, nw.Writer.PathTypes(), nw.Writer.CheckPath) {
		return nw, nil
	}

	return r.Writer(ctx, spec, path)
}

// WriteWith writes t to path with an already selected writer. A nil delta
// is passed as is to writers that require one, so they can refuse it.
func (r *Registry) WriteWith(ctx context.Context, nw NamedWriter, path string, t tree.Tree, in WriteOptions) error {
	opts, err := ResolveOptions(nw.Writer.Options(), in.Options)
	if err != nil {
		return err
	}

	req := WriteRequest{
		FS:       r.fs,
		Tree:     t,
		Delta:    in.Delta,
		Path:     path,
		Progress: progressOrNop(in.Progress),
		Options:  opts,
		JarIndex: in.JarIndex,
		Logger:   r.logger,
	}

	r.logger.Debug("writing mappings", "writer", nw.Name, "path", path, "delta", in.Delta != nil)

	if in.Delta == nil && !RequiresDelta(nw.Writer) {
		return WriteFull(ctx, nw.Writer, req)
	}

	return nw.Writer.Write(ctx, req)
}

func readerSchemas(f *Format, variant string) [][]Option {
	var out [][]Option

	for _, nr := range f.Readers {
		if variant == "" || nr.Name == variant {
			out = append(out, nr.Reader.Options())
		}
	}

	return out
}

func writerSchemas(f *Format, variant string) [][]Option {
	var out [][]Option

	for _, nw := range f.Writers {
		if variant == "" || nw.Name == variant {
			out = append(out, nw.Writer.Options())
		}
	}

	return out
}

// preflight fails when no variant spec can select accepts the supplied
// options. It does no I/O; unknown names are left to the selection.
func (r *Registry) preflight(spec Spec, schemas func(*Format, string) [][]Option, supplied map[string]string) error {
	f, ok := r.byName[spec.Format]
	if !ok {
		return nil
	}

	var first error

	for _, schema := range schemas(f, spec.Variant) {
		_, err := ResolveOptions(schema, supplied)
		if err == nil {
			return nil
		}

		if first == nil {
			first = err
		}
	}

	return first
}

func progressOrNop(p Progress) Progress {
	if p == nil {
		return NopProgress{}
	}

	return p
}
