package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"remapper/internal/classfile"
	"remapper/internal/entry"
	"remapper/internal/index"
)

func testIndex() *index.Index {
	classes := []*classfile.ClassFile{
		{
			Name:    "a/Base",
			Super:   "java/lang/Object",
			Fields:  []classfile.Member{{Name: "f", Descriptor: "I"}},
			Methods: []classfile.Member{{Name: "m", Descriptor: "()V"}, {Name: "<init>", Descriptor: "()V"}},
		},
		{
			Name:    "a/Iface",
			Super:   "java/lang/Object",
			Methods: []classfile.Member{{Name: "m", Descriptor: "()V"}},
		},
		{
			Name:       "a/Mid",
			Super:      "a/Base",
			Interfaces: []string{"a/Iface"},
			Methods:    []classfile.Member{{Name: "m", Descriptor: "()V"}},
		},
		{
			Name:  "a/Leaf",
			Super: "a/Mid",
		},
	}

	infos := make([]*index.ClassInfo, 0, len(classes))
	for _, cf := range classes {
		infos = append(infos, index.FromClassFile(cf))
	}

	return index.FromClasses(infos...)
}

func TestVoidResolver(t *testing.T) {
	m := entry.Method(entry.Class("a/Leaf"), "m", "()V")

	assert.Equal(t, []entry.Entry{m}, VoidResolver{}.Resolve(m, ResolveRoot))
	assert.Equal(t, entry.Entry(m), VoidResolver{}.ResolveFirst(m))
}

func TestIndexResolver(t *testing.T) {
	leaf := entry.Class("a/Leaf")
	m := entry.Method(leaf, "m", "()V")

	tests := []struct {
		name     string
		in       entry.Entry
		strategy Strategy
		want     []entry.Entry
	}{
		{
			name:     "closest ancestor",
			in:       m,
			strategy: ResolveClosest,
			want:     []entry.Entry{entry.Method(entry.Class("a/Mid"), "m", "()V")},
		},
		{
			name:     "root declarations",
			in:       m,
			strategy: ResolveRoot,
			want: []entry.Entry{
				entry.Method(entry.Class("a/Base"), "m", "()V"),
				entry.Method(entry.Class("a/Iface"), "m", "()V"),
			},
		},
		{
			name:     "declaring only",
			in:       m,
			strategy: ResolveDeclaring,
			want:     []entry.Entry{m},
		},
		{
			name:     "inherited field",
			in:       entry.Field(leaf, "f", "I"),
			strategy: ResolveClosest,
			want:     []entry.Entry{entry.Field(entry.Class("a/Base"), "f", "I")},
		},
		{
			name:     "constructors are not inherited",
			in:       entry.Method(leaf, "<init>", "()V"),
			strategy: ResolveClosest,
			want:     []entry.Entry{entry.Method(leaf, "<init>", "()V")},
		},
		{
			name:     "unknown member",
			in:       entry.Method(leaf, "x", "()V"),
			strategy: ResolveClosest,
			want:     []entry.Entry{entry.Method(leaf, "x", "()V")},
		},
		{
			name:     "class outside the index",
			in:       entry.Method(entry.Class("b/Other"), "m", "()V"),
			strategy: ResolveClosest,
			want:     []entry.Entry{entry.Method(entry.Class("b/Other"), "m", "()V")},
		},
		{
			name:     "local follows its method",
			in:       entry.Param(m, 1, "x"),
			strategy: ResolveClosest,
			want:     []entry.Entry{entry.Param(entry.Method(entry.Class("a/Mid"), "m", "()V"), 1, "x")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewIndexResolver(testIndex(), DefaultConfig())

			assert.Equal(t, tt.want, r.Resolve(tt.in, tt.strategy))
			// second call is served from the cache
			assert.Equal(t, tt.want, r.Resolve(tt.in, tt.strategy))
		})
	}
}

func TestIndexResolverCacheKeepsLocalNames(t *testing.T) {
	r := NewIndexResolver(testIndex(), DefaultConfig())
	m := entry.Method(entry.Class("a/Leaf"), "m", "()V")

	first := r.ResolveFirst(entry.Param(m, 1, "a"))
	second := r.ResolveFirst(entry.Param(m, 1, "b"))

	assert.Equal(t, "a", first.Name())
	assert.Equal(t, "b", second.Name())
	assert.Equal(t, entry.Identity(first), entry.Identity(second))
}

func TestIndexResolverMaxDepth(t *testing.T) {
	r := NewIndexResolver(testIndex(), Config{Strategy: ResolveClosest, MaxDepth: 1})
	f := entry.Field(entry.Class("a/Leaf"), "f", "I")

	// a/Base is two levels above a/Leaf
	assert.Equal(t, entry.Entry(f), r.ResolveFirst(f))
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "closest", ResolveClosest.String())
	assert.Equal(t, "root", ResolveRoot.String())
	assert.Equal(t, "declaring", ResolveDeclaring.String())
	assert.Equal(t, "unknown", Strategy(42).String())
}
