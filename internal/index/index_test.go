package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remapper/internal/classfile"
	"remapper/internal/entry"
	rerrors "remapper/internal/errors"
)

func hierarchy() []*classfile.ClassFile {
	return []*classfile.ClassFile{
		{
			Name:    "a/Base",
			Super:   "java/lang/Object",
			Fields:  []classfile.Member{{Name: "field_1_a", Descriptor: "I"}},
			Methods: []classfile.Member{{Access: classfile.AccPublic, Name: "func_2_b", Descriptor: "()V"}},
		},
		{
			Access:  classfile.AccInterface | classfile.AccAbstract,
			Name:    "a/Iface",
			Super:   "java/lang/Object",
			Methods: []classfile.Member{{Name: "func_3_c", Descriptor: "(J)I"}},
		},
		{
			Name:       "a/Mid",
			Super:      "a/Base",
			Interfaces: []string{"a/Iface"},
		},
		{
			Name:    "a/Leaf",
			Super:   "a/Mid",
			Methods: []classfile.Member{{Access: classfile.AccStatic, Name: "func_4_d", Descriptor: "()V"}},
		},
	}
}

func loadHierarchy(t *testing.T) *Index {
	t.Helper()

	data, err := JarBytes(hierarchy()...)
	require.NoError(t, err)

	ix, err := LoadJar(t.Context(), data)
	require.NoError(t, err)

	return ix
}

func TestLoad(t *testing.T) {
	ix := loadHierarchy(t)

	assert.Equal(t, 4, ix.Len())
	assert.Equal(t, []entry.ClassEntry{
		entry.Class("a/Base"), entry.Class("a/Iface"), entry.Class("a/Leaf"), entry.Class("a/Mid"),
	}, ix.Classes())

	assert.True(t, ix.Contains(entry.Method(entry.Class("a/Base"), "func_2_b", "()V")))
	assert.True(t, ix.Contains(entry.Field(entry.Class("a/Base"), "field_1_a", "I")))
	assert.False(t, ix.Contains(entry.Method(entry.Class("a/Leaf"), "func_2_b", "()V")))
	assert.True(t, ix.Contains(entry.Package("a")))
	assert.True(t, ix.IsStatic(entry.Method(entry.Class("a/Leaf"), "func_4_d", "()V")))
}

func TestAncestors(t *testing.T) {
	ix := loadHierarchy(t)

	assert.Equal(t, []entry.ClassEntry{
		entry.Class("a/Mid"),
		entry.Class("a/Base"),
		entry.Class("a/Iface"),
		entry.Class("java/lang/Object"),
	}, ix.Ancestors(entry.Class("a/Leaf")))
}

func TestDeclares(t *testing.T) {
	ix := loadHierarchy(t)
	m := entry.Method(entry.Class("a/Leaf"), "func_3_c", "(J)I")

	assert.True(t, ix.Declares(entry.Class("a/Iface"), m))
	assert.False(t, ix.Declares(entry.Class("a/Mid"), m))
	assert.True(t, ix.DeclaresMethod(entry.Class("a/Base"), "func_2_b", "()V"))
	assert.True(t, ix.DeclaresField(entry.Class("a/Base"), "field_1_a", "I"))
	assert.False(t, ix.DeclaresField(entry.Class("a/Mid"), "field_1_a", "I"))
}

func TestForEachClassHonorsContext(t *testing.T) {
	data, err := JarBytes(hierarchy()...)
	require.NoError(t, err)

	jar, err := OpenJar(data)
	require.NoError(t, err)
	assert.Len(t, jar.ClassNames(), 4)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err = jar.ForEachClass(ctx, func(string, []byte) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}

func TestReadClass(t *testing.T) {
	data, err := JarBytes(hierarchy()...)
	require.NoError(t, err)

	jar, err := OpenJar(data)
	require.NoError(t, err)

	raw, err := jar.ReadClass("a/Base.class")
	require.NoError(t, err)

	cf, err := classfile.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "a/Base", cf.Name)

	_, err = jar.ReadClass("a/Missing.class")
	require.Error(t, err)
	assert.True(t, rerrors.IsIO(err))
}

func TestOpenJarRejectsGarbage(t *testing.T) {
	_, err := OpenJar([]byte("not a zip"))
	require.Error(t, err)
}
