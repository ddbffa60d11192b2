package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankCandidates(t *testing.T) {
	known := []string{"yaml", "tiny", "srg", "sqlite", "mcp"}

	candidates := RankCandidates("yml", known)

	assert.Len(t, candidates, 5)
	assert.Equal(t, "yaml", candidates.Best().Name)
	assert.InDelta(t, 0.75, candidates.Best().Score, 0.001)
}

func TestRankCandidatesDeterminism(t *testing.T) {
	known := []string{"b", "a", "c"}

	first := RankCandidates("x", known)
	for range 10 {
		assert.Equal(t, first, RankCandidates("x", known))
	}

	assert.Equal(t, []string{"a", "b", "c"}, first.Names())
}

func TestCandidateList(t *testing.T) {
	candidates := CandidateList{
		{Name: "A", Score: 0.9},
		{Name: "B", Score: 0.85},
		{Name: "C", Score: 0.5},
	}

	assert.Len(t, candidates.Top(2), 2)
	assert.Len(t, candidates.Top(10), 3)
	assert.Len(t, candidates.AboveThreshold(0.6), 2)
	assert.True(t, candidates.IsAmbiguous(DefaultAmbiguityThreshold))
	assert.False(t, candidates[1:].IsAmbiguous(DefaultAmbiguityThreshold))
	assert.False(t, CandidateList{}.IsAmbiguous(DefaultAmbiguityThreshold))
	assert.Nil(t, CandidateList{}.Best())
}

func TestSuggest(t *testing.T) {
	known := []string{"yaml", "tiny", "srg", "sqlite", "mcp"}

	assert.Equal(t, []string{"yaml"}, Suggest("yml", known))
	assert.Equal(t, []string{"sqlite"}, Suggest("sqlit", known))
	assert.Empty(t, Suggest("protobuf", known))

	classes := []string{"a/b/Block", "a/b/Blocks", "a/c/Entity"}
	assert.ElementsMatch(t, []string{"a/b/Block", "a/b/Blocks"}, Suggest("a/b/Blokc", classes))
}

func TestDidYouMean(t *testing.T) {
	known := []string{"yaml", "tiny", "srg", "sqlite", "mcp"}

	tests := []struct {
		target string
		known  []string
		want   string
	}{
		{"yml", known, "did you mean yaml?"},
		{"protobuf", known, ""},
		{"mcp", []string{"mcp1", "mcp2"}, "ambiguous: did you mean mcp1 or mcp2?"},
		{"anything", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			assert.Equal(t, tt.want, DidYouMean(tt.target, tt.known))
		})
	}
}
