package mappingops

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remapper/internal/entry"
	"remapper/internal/translate"
	"remapper/internal/tree"
)

var (
	classA  = entry.Class("a")
	classB  = entry.Class("b")
	methodA = entry.Method(classA, "m", "(Lb;)V")
	fieldA  = entry.Field(classA, "f", "I")
)

func sample() *tree.HashTree {
	t := tree.NewHashTree()
	t.Insert(classA, &entry.Mapping{TargetName: "pkg/Alpha", Access: entry.AccessPublic})
	t.Insert(classB, entry.Rename("pkg/Beta"))
	t.Insert(methodA, entry.Rename("run"))
	t.Insert(fieldA, entry.Rename("count"))
	t.Insert(entry.Param(methodA, 1, ""), entry.Rename("other"))

	return t
}

// effective returns the translated name of every class, method and field of t.
func effective(t tree.Tree) map[string]string {
	tr := translate.NewMappingTranslator(t, translate.VoidResolver{})
	out := make(map[string]string)

	for _, e := range tree.Entries(t) {
		if e.Kind().IsRenamable() {
			out[e.String()] = tr.Translate(e).String()
		}
	}

	return out
}

func TestInvert(t *testing.T) {
	inv := Invert(sample())

	alphaMethod := entry.Method(entry.Class("pkg/Alpha"), "run", "(Lpkg/Beta;)V")

	assert.Equal(t, &entry.Mapping{TargetName: "a", Access: entry.AccessPublic}, inv.Get(entry.Class("pkg/Alpha")))
	assert.Equal(t, entry.Rename("m"), inv.Get(alphaMethod))
	assert.Equal(t, entry.Rename("f"), inv.Get(entry.Field(entry.Class("pkg/Alpha"), "count", "I")))
	// locals pass through translated with their record unchanged
	assert.Equal(t, entry.Rename("other"), inv.Get(entry.Param(alphaMethod, 1, "")))
}

func TestInvertAbsentRecordIsIdentity(t *testing.T) {
	in := tree.NewHashTree()
	in.Insert(methodA, entry.Rename("run"))

	inv := Invert(in)

	// the owning class was only a navigation node
	assert.Equal(t, entry.Rename("a"), inv.Get(classA))
	assert.Equal(t, entry.Rename("m"), inv.Get(entry.Method(classA, "run", "(Lb;)V")))
}

func TestInvertIsInvolutive(t *testing.T) {
	in := sample()
	twice := Invert(Invert(in))

	assert.Equal(t, effective(in), effective(twice), spew.Sdump(twice.Nodes()))
}

func TestInvertPassesPackagesThrough(t *testing.T) {
	// Packages are copied without any consistency check against the
	// classes they contain; a renamed package keeps its record as is.
	in := tree.NewHashTree()
	in.Insert(entry.Package("a"), entry.Rename("z"))

	inv := Invert(in)

	assert.Equal(t, entry.Rename("z"), inv.Get(entry.Package("z")))
	assert.Nil(t, inv.Get(entry.Package("a")))
}

func TestComposeIdentityLaw(t *testing.T) {
	in := sample()
	out := Compose(in, tree.NewHashTree(), true, true)

	assert.True(t, tree.Equivalent(in, out), spew.Sdump(out.Nodes()))
}

func TestComposeIntersection(t *testing.T) {
	left := tree.NewHashTree()
	left.Insert(classA, entry.Rename("x"))
	left.Insert(classB, entry.Rename("y"))

	right := tree.NewHashTree()
	right.Insert(entry.Class("x"), entry.Rename("Final"))
	right.Insert(entry.Class("z"), entry.Rename("Other"))

	out := Compose(left, right, false, false)

	assert.Equal(t, []entry.Entry{classA}, tree.Entries(out))
	assert.Equal(t, entry.Rename("Final"), out.Get(classA))
}

func TestComposeKeepFlags(t *testing.T) {
	left := tree.NewHashTree()
	left.Insert(classA, entry.Rename("x"))
	left.Insert(classB, entry.Rename("y"))

	right := tree.NewHashTree()
	right.Insert(entry.Class("x"), entry.Rename("Final"))
	right.Insert(entry.Class("z"), entry.Rename("Other"))

	tests := []struct {
		name string
		mode KeepMode
		want map[entry.Entry]*entry.Mapping
	}{
		{
			name: "keep left",
			mode: KeepLeft,
			want: map[entry.Entry]*entry.Mapping{classA: entry.Rename("Final"), classB: entry.Rename("y")},
		},
		{
			name: "keep right",
			mode: KeepRight,
			want: map[entry.Entry]*entry.Mapping{classA: entry.Rename("Final"), entry.Class("z"): entry.Rename("Other")},
		},
		{
			name: "keep both",
			mode: KeepBoth,
			want: map[entry.Entry]*entry.Mapping{
				classA:           entry.Rename("Final"),
				classB:           entry.Rename("y"),
				entry.Class("z"): entry.Rename("Other"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ComposeWith(left, right, tt.mode)

			got := make(map[entry.Entry]*entry.Mapping)
			for _, e := range tree.Entries(out) {
				got[e] = out.Get(e)
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComposeTracksTranslatedIdentity(t *testing.T) {
	left := tree.NewHashTree()
	left.Insert(classA, entry.Rename("x"))

	// "a" in right names a different element than "a" in left
	right := tree.NewHashTree()
	right.Insert(entry.Class("x"), entry.Rename("Named"))
	right.Insert(classA, entry.Rename("Kept"))

	intersection := Compose(left, right, false, false)
	assert.Equal(t, entry.Rename("Named"), intersection.Get(classA))

	// right's "a" was never hit, so it is emitted as a right-only record;
	// nothing in left is named "a", so it keeps its key
	out := Compose(left, right, false, true)
	assert.Equal(t, entry.Rename("Kept"), out.Get(classA), spew.Sdump(out.Nodes()))
	assert.Nil(t, out.Get(entry.Class("x")))
}

func TestComposeRekeysRightOnlyMembers(t *testing.T) {
	left := tree.NewHashTree()
	left.Insert(classA, entry.Rename("x"))

	right := tree.NewHashTree()
	right.Insert(entry.Method(entry.Class("x"), "m", "()V"), entry.Rename("run"))

	out := Compose(left, right, false, true)

	assert.Equal(t, entry.Rename("run"), out.Get(entry.Method(classA, "m", "()V")))
}

func TestParseKeepMode(t *testing.T) {
	tests := []struct {
		in      string
		want    KeepMode
		left    bool
		right   bool
		wantErr bool
	}{
		{in: "none", want: KeepNone},
		{in: "left", want: KeepLeft, left: true},
		{in: "Right", want: KeepRight, right: true},
		{in: " both ", want: KeepBoth, left: true, right: true},
		{in: "all", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKeepMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.left, got.KeepLeftOnly())
			assert.Equal(t, tt.right, got.KeepRightOnly())
		})
	}
}
