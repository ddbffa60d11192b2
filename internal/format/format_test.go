package format

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remapper/internal/diagnostic"
	"remapper/internal/entry"
	rerrors "remapper/internal/errors"
	"remapper/internal/index"
	"remapper/internal/logging"
	"remapper/internal/storage"
	"remapper/internal/tree"
)

var (
	entryA  = entry.Class("a")
	renameA = entry.Rename("Alpha")
)

// stub accepts paths of the given shapes that contain the required files.
type stub struct {
	types    PathTypes
	required []string
	options  []Option

	readReq  *ReadRequest
	writeReq *WriteRequest
	checks   int
}

func (s *stub) Options() []Option    { return s.options }
func (s *stub) PathTypes() PathTypes { return s.types }

func (s *stub) CheckPath(ctx context.Context, fs *storage.Store, path string, diags *diagnostic.Diagnostics) bool {
	s.checks++

	if !CheckPathTypes(ctx, fs, path, s.types, diags) {
		return false
	}

	return CheckRequiredFiles(ctx, fs, path, s.required, diags)
}

func (s *stub) Read(_ context.Context, req ReadRequest) (tree.Tree, error) {
	s.readReq = &req
	return tree.NewHashTree(), nil
}

func (s *stub) Write(_ context.Context, req WriteRequest) error {
	s.writeReq = &req
	return nil
}

func newRegistry(t *testing.T, formats ...*Format) *Registry {
	t.Helper()

	r := NewRegistry(storage.New(), logging.NewDiscardLogger())
	for _, f := range formats {
		require.NoError(t, r.Register(f))
	}

	return r
}

func TestParseSpec(t *testing.T) {
	tests := []struct {
		in      string
		want    Spec
		wantErr bool
	}{
		{in: "yaml", want: Spec{Format: "yaml"}},
		{in: "mcp:delta", want: Spec{Format: "mcp", Variant: "delta"}},
		{in: "", wantErr: true},
		{in: "yaml:", wantErr: true},
		{in: ":file", wantErr: true},
		{in: "a:b:c", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSpec(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, rerrors.IsConfig(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestDefaultSelectionSkipsMissingSidecar(t *testing.T) {
	ctx := t.Context()
	fs := storage.New()
	dir := t.TempDir()

	require.NoError(t, fs.Write(ctx, storage.Join(dir, "fields.csv"), []byte("searge,name,side,desc\n")))

	strict := &stub{types: Directories, required: []string{"fields.csv", "methods.csv"}}
	loose := &stub{types: Directories}

	r := newRegistry(t, &Format{
		Name:    "demo",
		Readers: []NamedReader{{Name: "strict", Reader: strict}, {Name: "loose", Reader: loose}},
	})

	var diags diagnostic.Diagnostics
	assert.False(t, strict.CheckPath(ctx, fs, dir, &diags))
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, "methods.csv", diags.Errors[0].Member)

	nr, err := r.Reader(ctx, Spec{Format: "demo"}, dir)
	require.NoError(t, err)
	assert.Equal(t, "loose", nr.Name)

	_, err = r.Reader(ctx, Spec{Format: "demo", Variant: "strict"}, dir)
	require.Error(t, err)
	assert.True(t, rerrors.IsConfig(err))
	assert.Contains(t, err.Error(), "methods.csv")
}

func TestFileAcceptsMissingPath(t *testing.T) {
	ctx := t.Context()
	fs := storage.New()
	dir := t.TempDir()
	missing := storage.Join(dir, "out.yaml")

	assert.True(t, PathFile.Test(ctx, fs, missing))
	assert.False(t, PathDirectory.Test(ctx, fs, missing))
	assert.True(t, PathDirectory.Test(ctx, fs, dir))
	assert.False(t, PathFile.Test(ctx, fs, dir))
	assert.Equal(t, "[file, directory]", PathTypes{PathFile, PathDirectory}.String())
}

func TestRegistryErrors(t *testing.T) {
	ctx := t.Context()
	dir := t.TempDir()

	r := newRegistry(t,
		&Format{Name: "yaml", Writers: []NamedWriter{{Name: "file", Writer: &stub{types: Files}}}},
		&Format{Name: "broken", Readers: []NamedReader{{Name: "none", Reader: &stub{}}}},
		&Format{Name: "mcp1"},
		&Format{Name: "mcp2"},
	)

	tests := []struct {
		name    string
		run     func() error
		message string
	}{
		{
			name: "unknown format",
			run: func() error {
				_, err := r.Reader(ctx, Spec{Format: "yml"}, dir)
				return err
			},
			message: `no format "yml" (did you mean yaml?)`,
		},
		{
			name: "ambiguous format",
			run: func() error {
				_, err := r.Reader(ctx, Spec{Format: "mcp"}, dir)
				return err
			},
			message: `no format "mcp" (ambiguous: did you mean mcp1 or mcp2?)`,
		},
		{
			name: "unknown writer",
			run: func() error {
				_, err := r.Writer(ctx, Spec{Format: "yaml", Variant: "fil"}, dir)
				return err
			},
			message: `no writer "fil" for format "yaml" (did you mean file?)`,
		},
		{
			name: "no default writer",
			run: func() error {
				_, err := r.Writer(ctx, Spec{Format: "yaml"}, dir)
				return err
			},
			message: "no default writer",
		},
		{
			name: "variant without path types",
			run: func() error {
				_, err := r.Reader(ctx, Spec{Format: "broken", Variant: "none"}, dir)
				return err
			},
			message: "broken:none does not support any paths",
		},
		{
			name:    "duplicate registration",
			run:     func() error { return r.Register(&Format{Name: "yaml"}) },
			message: "already registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			require.Error(t, err)
			assert.True(t, rerrors.IsConfig(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestReadResolvesOptions(t *testing.T) {
	ctx := t.Context()
	file := storage.Join(t.TempDir(), "m.tiny")

	reader := &stub{
		types: Files,
		options: []Option{
			{Name: "from_column", Default: "intermediary"},
			{Name: "to_column", Required: true, Validate: NotBlank},
		},
	}

	r := newRegistry(t, &Format{Name: "tiny", Readers: []NamedReader{{Name: "file", Reader: reader}}})

	_, err := r.Read(ctx, Spec{Format: "tiny"}, file, ReadOptions{})
	require.Error(t, err)
	assert.True(t, rerrors.IsConfig(err))
	assert.Nil(t, reader.readReq, "reader must not run when options are invalid")
	assert.Zero(t, reader.checks, "options are checked before the path")

	_, err = r.Read(ctx, Spec{Format: "tiny"}, file, ReadOptions{Options: map[string]string{"to_column": " "}})
	require.Error(t, err)
	assert.True(t, rerrors.IsConfig(err))

	_, err = r.Read(ctx, Spec{Format: "tiny"}, file, ReadOptions{Options: map[string]string{"to_column": "named"}})
	require.NoError(t, err)
	require.NotNil(t, reader.readReq)
	assert.Equal(t, Options{"from_column": "intermediary", "to_column": "named"}, reader.readReq.Options)
}

func TestWriteWithoutDeltaWritesEverything(t *testing.T) {
	ctx := t.Context()
	file := storage.Join(t.TempDir(), "out.yaml")
	writer := &stub{types: Files}

	r := newRegistry(t, &Format{Name: "yaml", Writers: []NamedWriter{{Name: "file", Writer: writer}}})

	mappings := tree.NewHashTree()
	mappings.Insert(entryA, renameA)

	require.NoError(t, r.Write(ctx, Spec{Format: "yaml"}, file, mappings, WriteOptions{}))
	require.NotNil(t, writer.writeReq)
	assert.True(t, writer.writeReq.Delta.Contains(entryA))
	assert.Equal(t, file, writer.writeReq.Path)
}

// deltaStub is a writer that only writes changes.
type deltaStub struct{ stub }

func (*deltaStub) RequiresDelta() bool { return true }

func TestWriteOptionsCheckedBeforePath(t *testing.T) {
	writer := &stub{types: Files, options: []Option{{Name: "to_column", Required: true}}}
	r := newRegistry(t, &Format{Name: "tiny", Writers: []NamedWriter{{Name: "file", Writer: writer}}})

	err := r.Write(t.Context(), Spec{Format: "tiny"}, storage.Join(t.TempDir(), "m.tiny"), tree.NewHashTree(), WriteOptions{})
	require.Error(t, err)
	assert.True(t, rerrors.IsConfig(err))
	assert.Contains(t, err.Error(), "to_column")
	assert.Zero(t, writer.checks)
	assert.Nil(t, writer.writeReq)
}

func TestWritePassesMissingDeltaToDeltaWriters(t *testing.T) {
	dir := t.TempDir()
	delta := &deltaStub{stub{types: Directories}}

	r := newRegistry(t, &Format{Name: "mcp", Writers: []NamedWriter{{Name: "delta", Writer: delta}}})

	require.True(t, RequiresDelta(delta))
	require.False(t, RequiresDelta(&stub{}))

	require.NoError(t, r.Write(t.Context(), Spec{Format: "mcp"}, dir, tree.NewHashTree(), WriteOptions{}))
	require.NotNil(t, delta.writeReq)
	assert.Nil(t, delta.writeReq.Delta)
}

func TestWriteAfterReadUsesPairedWriter(t *testing.T) {
	ctx := t.Context()
	dir := t.TempDir()
	full, delta := &stub{types: Directories}, &deltaStub{stub{types: Directories}}

	r := newRegistry(t, &Format{
		Name:          "mcp",
		Readers:       []NamedReader{{Name: "directory", Reader: &stub{types: Directories}}},
		Writers:       []NamedWriter{{Name: "full", Writer: full}, {Name: "delta", Writer: delta}},
		DefaultWriter: func(string) string { return "delta" },
	})

	mappings, used, err := r.ReadVariant(ctx, Spec{Format: "mcp"}, dir, ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, Spec{Format: "mcp", Variant: "directory"}, used)

	require.NoError(t, r.Write(ctx, Spec{Format: "mcp"}, dir, mappings, WriteOptions{ReadWith: used}))
	assert.NotNil(t, delta.writeReq)
	assert.Nil(t, full.writeReq)

	delta.writeReq = nil

	require.NoError(t, r.Write(ctx, Spec{Format: "mcp"}, dir, mappings, WriteOptions{}))
	assert.NotNil(t, full.writeReq, "without a reader the first accepting writer is used")
	assert.Nil(t, delta.writeReq)
}

func TestWriterForReader(t *testing.T) {
	full, delta := &stub{types: Directories}, &stub{types: Directories}

	f := &Format{
		Name:          "mcp",
		Readers:       []NamedReader{{Name: "directory", Reader: &stub{types: Directories}}},
		Writers:       []NamedWriter{{Name: "full", Writer: full}, {Name: "delta", Writer: delta}},
		DefaultWriter: func(string) string { return "delta" },
	}

	nw, ok := f.WriterForReader("directory")
	require.True(t, ok)
	assert.Equal(t, "delta", nw.Name)

	same := &Format{Name: "yaml", Writers: []NamedWriter{{Name: "file", Writer: full}}}
	nw, ok = same.WriterForReader("file")
	require.True(t, ok)
	assert.Equal(t, "file", nw.Name)

	_, ok = same.WriterForReader("directory")
	assert.False(t, ok)
}

func TestOptionsBool(t *testing.T) {
	opts := Options{"on": "true", "off": "false", "bad": "TRUE"}

	tests := []struct {
		name    string
		want    bool
		wantErr bool
	}{
		{name: "on", want: true},
		{name: "off"},
		{name: "unset"},
		{name: "bad", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := opts.Bool(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, rerrors.IsConfig(err))
				assert.Contains(t, err.Error(), tt.name)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequestJar(t *testing.T) {
	_, err := ReadRequest{}.Jar()
	require.Error(t, err)
	assert.True(t, rerrors.IsConfig(err))

	calls := 0
	lazy := NewLazy(func() (*index.Index, error) {
		calls++
		return index.New(), nil
	})

	req := WriteRequest{JarIndex: lazy}
	assert.False(t, lazy.Loaded())

	_, err = req.Jar()
	require.NoError(t, err)
	_, err = req.Jar()
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.True(t, lazy.Loaded())
}
