package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessModifierRoundTrip(t *testing.T) {
	for _, a := range []AccessModifier{AccessUnchanged, AccessPublic, AccessProtected, AccessPrivate} {
		parsed, err := ParseAccessModifier(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
	}

	_, err := ParseAccessModifier("friend")
	require.Error(t, err)
}

func TestMappingEqual(t *testing.T) {
	var none *Mapping

	assert.True(t, none.Equal(nil))
	assert.False(t, Rename("a").Equal(nil))
	assert.True(t, Rename("a").Equal(Rename("a")))
	assert.False(t, Rename("a").Equal(&Mapping{TargetName: "a", Access: AccessPublic}))

	m := Mapping{TargetName: "a", Access: AccessPrivate}
	renamed := m.WithName("b")
	assert.Equal(t, "b", renamed.TargetName)
	assert.Equal(t, AccessPrivate, renamed.Access)
	assert.Equal(t, "b (private)", renamed.String())
	assert.Equal(t, "<none>", none.String())
}
