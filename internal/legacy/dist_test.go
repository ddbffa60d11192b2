package legacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rerrors "remapper/internal/errors"
)

var allDists = []Dist{Client, Server, Both}

func TestMergeIsCommutativeAndAssociative(t *testing.T) {
	for _, a := range allDists {
		for _, b := range allDists {
			assert.Equal(t, Merge(a, b), Merge(b, a), "%s, %s", a, b)

			for _, c := range allDists {
				assert.Equal(t, Merge(Merge(a, b), c), Merge(a, Merge(b, c)), "%s, %s, %s", a, b, c)
			}
		}
	}
}

func TestCommonDistFailsOnlyOnContradiction(t *testing.T) {
	for _, a := range allDists {
		for _, b := range allDists {
			got, err := CommonDist(a, b)

			if a != Both && b != Both && a != b {
				require.Error(t, err, "%s, %s", a, b)
				assert.True(t, rerrors.IsConsistency(err))

				continue
			}

			require.NoError(t, err)

			back, err := CommonDist(b, a)
			require.NoError(t, err)
			assert.Equal(t, got, back, "commutative for %s, %s", a, b)
		}
	}
}

func TestCommonDistIsAssociative(t *testing.T) {
	for _, a := range allDists {
		for _, b := range allDists {
			for _, c := range allDists {
				left, errL := CommonAll(a, b, c)

				bc, errR := CommonDist(b, c)
				right := Both

				if errR == nil {
					right, errR = CommonDist(a, bc)
				}

				assert.Equal(t, errL == nil, errR == nil, "%s, %s, %s", a, b, c)

				if errL == nil && errR == nil {
					assert.Equal(t, left, right, "%s, %s, %s", a, b, c)
				}
			}
		}
	}
}

func TestFolds(t *testing.T) {
	assert.Equal(t, Both, MergeAll())
	assert.Equal(t, Client, MergeAll(Client, Client))
	assert.Equal(t, Both, MergeAll(Client, Client, Server))

	got, err := CommonAll()
	require.NoError(t, err)
	assert.Equal(t, Both, got)

	got, err = CommonAll(Both, Server, Both)
	require.NoError(t, err)
	assert.Equal(t, Server, got)

	_, err = CommonAll(Client, Both, Server)
	assert.True(t, rerrors.IsConsistency(err))
}

func TestParseDist(t *testing.T) {
	for s, want := range map[string]Dist{"0": Client, "1": Server, "2": Both} {
		got, err := ParseDist(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	for _, s := range []string{"", "3", "-1", "client"} {
		_, err := ParseDist(s)
		assert.Error(t, err, s)
	}
}
