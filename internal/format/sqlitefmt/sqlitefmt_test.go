package sqlitefmt

import (
	"database/sql"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remapper/internal/entry"
	rerrors "remapper/internal/errors"
	"remapper/internal/format"
	"remapper/internal/logging"
	"remapper/internal/storage"
	"remapper/internal/tree"
)

func newRegistry(t *testing.T) *format.Registry {
	t.Helper()

	r := format.NewRegistry(storage.New(), logging.NewDiscardLogger())
	require.NoError(t, r.Register(New()))

	return r
}

func sampleTree() *tree.HashTree {
	block := entry.Class("a")
	m := entry.Method(block, "m", "(IJ)V")

	t := tree.NewHashTree()
	t.Insert(entry.Package("p"), entry.Rename("net/example"))
	t.Insert(block, &entry.Mapping{TargetName: "net/Block", Access: entry.AccessPublic})
	t.Insert(entry.InnerClass(block, "b"), entry.Rename("Builder"))
	t.Insert(entry.Field(block, "f", "Ljava/lang/String;"), entry.Rename("name"))
	t.Insert(m, entry.Rename("update"))
	t.Insert(entry.Param(m, 1, ""), entry.Rename("count"))
	t.Insert(entry.Param(m, 2, ""), entry.Rename("time"))
	t.Insert(entry.Local(m, 4, "", false), entry.Rename("tmp"))
	t.Insert(entry.Method(block, "n", "()V"), nil)

	return t
}

func TestRoundTrip(t *testing.T) {
	ctx := t.Context()
	r := newRegistry(t)
	path := storage.Join(t.TempDir(), "mappings.db")
	want := sampleTree()

	require.NoError(t, r.Write(ctx, format.Spec{Format: Name}, path, want, format.WriteOptions{}))

	got, err := r.Read(ctx, format.Spec{Format: Name}, path, format.ReadOptions{})
	require.NoError(t, err)

	assert.True(t, tree.Equivalent(want, got), spew.Sdump(got.Nodes()))
	assert.True(t, got.Contains(entry.Method(entry.Class("a"), "n", "()V")), "navigation nodes survive")
}

func TestWriteReplacesDatabase(t *testing.T) {
	ctx := t.Context()
	r := newRegistry(t)
	path := storage.Join(t.TempDir(), "mappings.db")

	require.NoError(t, r.Write(ctx, format.Spec{Format: Name}, path, sampleTree(), format.WriteOptions{}))

	small := tree.NewHashTree()
	small.Insert(entry.Class("z"), entry.Rename("Zed"))
	require.NoError(t, r.Write(ctx, format.Spec{Format: Name}, path, small, format.WriteOptions{}))

	got, err := r.Read(ctx, format.Spec{Format: Name}, path, format.ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Len())
}

func TestReadRejectsInvalidRows(t *testing.T) {
	ctx := t.Context()
	path := storage.Join(t.TempDir(), "broken.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, schema)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO entries (kind, owner, name, descriptor) VALUES ('method', 'a', 'm', '(I')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = newRegistry(t).Read(ctx, format.Spec{Format: Name}, path, format.ReadOptions{})
	require.Error(t, err)
	assert.True(t, rerrors.IsParse(err))
}

func TestReadMissingDatabase(t *testing.T) {
	_, err := newRegistry(t).Read(t.Context(), format.Spec{Format: Name, Variant: VariantFile},
		storage.Join(t.TempDir(), "none.db"), format.ReadOptions{})
	require.Error(t, err)
	assert.True(t, rerrors.IsConfig(err))
}
