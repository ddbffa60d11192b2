package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassEntry(t *testing.T) {
	tests := []struct {
		name      string
		full      string
		inner     bool
		outer     string
		simple    string
		entryName string
		pkg       string
	}{
		{"top level", "a/b/Foo", false, "", "Foo", "a/b/Foo", "a/b"},
		{"inner", "a/b/Foo$Bar", true, "a/b/Foo", "Foo$Bar", "Bar", "a/b"},
		{"nested inner", "Foo$Bar$1", true, "Foo$Bar", "Foo$Bar$1", "1", ""},
		{"dollar in package", "a$b/Foo", false, "", "Foo", "a$b/Foo", "a$b"},
		{"dotted", "a.b.Foo", false, "", "Foo", "a/b/Foo", "a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Class(tt.full)

			assert.Equal(t, tt.inner, c.IsInner())
			assert.Equal(t, tt.simple, c.SimpleName())
			assert.Equal(t, tt.entryName, c.Name())
			assert.Equal(t, tt.pkg, c.PackageName())

			outer, ok := c.Outer()
			assert.Equal(t, tt.inner, ok)

			if tt.inner {
				assert.Equal(t, tt.outer, outer.FullName())

				parent, ok := c.Parent()
				require.True(t, ok)
				assert.Equal(t, Entry(outer), parent)
			}
		})
	}
}

func TestClassRename(t *testing.T) {
	assert.Equal(t, "x/Renamed", Class("a/Foo").Rename("x/Renamed").FullName())
	assert.Equal(t, "a/Foo$Named", Class("a/Foo$1").Rename("Named").FullName())
}

func TestNewClassRejectsEmpty(t *testing.T) {
	_, err := NewClass("")
	require.Error(t, err)

	_, err = NewClass("a/Foo$")
	require.Error(t, err)
}

func TestMemberEntries(t *testing.T) {
	m, err := NewMethod("a/Foo", "func_1_a", "(IJLa/Bar;)V")
	require.NoError(t, err)

	assert.Equal(t, KindMethod, m.Kind())
	assert.Equal(t, "a/Foo.func_1_a(IJLa/Bar;)V", m.String())
	assert.Equal(t, Class("a/Foo"), m.Owner())
	assert.False(t, m.IsConstructor())

	renamed := m.WithName("doThing")
	assert.Equal(t, "doThing", renamed.Name())
	assert.Equal(t, "func_1_a", m.Name())

	f, err := NewField("a/Foo", "field_2_b", "[Ljava/lang/String;")
	require.NoError(t, err)
	assert.Equal(t, "a/Foo.field_2_b:[Ljava/lang/String;", f.String())

	_, err = NewMethod("a/Foo", "m", "(Q)V")
	require.Error(t, err)

	_, err = NewField("a/Foo", "f", "V")
	require.Error(t, err)
}

func TestLocalIdentityIgnoresName(t *testing.T) {
	m := Method(Class("a/Foo"), "func_1_a", "(I)V")
	a := Param(m, 1, "p_1_1_")
	b := Param(m, 1, "count")

	assert.NotEqual(t, Entry(a), Entry(b))
	assert.Equal(t, Identity(a), Identity(b))
	assert.NotEqual(t, Identity(a), Identity(Local(m, 1, "count", false)))
}

func TestParents(t *testing.T) {
	c := Class("a/Foo$Bar")
	m := Method(c, "run", "()V")
	l := Param(m, 0, "x")

	p, ok := l.Parent()
	require.True(t, ok)
	assert.Equal(t, Entry(m), p)

	p, ok = m.Parent()
	require.True(t, ok)
	assert.Equal(t, Entry(c), p)

	_, ok = Package("a").Parent()
	assert.False(t, ok)

	owner, ok := Owner(l)
	require.True(t, ok)
	assert.Equal(t, c, owner)
}

func TestCompareOrdersByKindThenText(t *testing.T) {
	c := Class("b/Foo")
	entries := []Entry{
		Method(c, "z", "()V"),
		Class("b/Foo"),
		Package("a"),
		Class("a/Foo"),
		Field(c, "f", "I"),
	}

	Sort(entries)

	assert.Equal(t, []Entry{
		Package("a"),
		Class("a/Foo"),
		Class("b/Foo"),
		Method(c, "z", "()V"),
		Field(c, "f", "I"),
	}, entries)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Class", KindClass.String())
	assert.Equal(t, "Local", KindLocal.String())
	assert.Equal(t, "Kind(0)", Kind(0).String())
	assert.True(t, KindField.IsMember())
	assert.False(t, KindLocal.IsRenamable())
}
