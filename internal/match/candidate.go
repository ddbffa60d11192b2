package match

import (
	"cmp"
	"slices"
)

// Thresholds for suggestions.
const (
	// DefaultMinScore is the minimum similarity for a name to be suggested.
	DefaultMinScore = 0.6
	// DefaultMaxSuggestions is the number of names shown in a message.
	DefaultMaxSuggestions = 3
	// DefaultAmbiguityThreshold is the score difference that marks ambiguity.
	DefaultAmbiguityThreshold = 0.1
)

// Candidate is a known name scored against a target.
type Candidate struct {
	Name  string
	Score float64
}

// CandidateList is a list of candidates, best first.
type CandidateList []Candidate

// RankCandidates scores every known name against target. The result is
// sorted by score, descending, then by name.
func RankCandidates(target string, known []string) CandidateList {
	candidates := make(CandidateList, 0, len(known))

	for _, name := range known {
		score := max(Similarity(name, target), NameSimilarity(name, target))
		candidates = append(candidates, Candidate{Name: name, Score: score})
	}

	slices.SortFunc(candidates, func(a, b Candidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	return candidates
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// IsAmbiguous returns true if the top two candidates are within the threshold.
func (c CandidateList) IsAmbiguous(threshold float64) bool {
	if len(c) < 2 {
		return false
	}

	return c[0].Score-c[1].Score < threshold
}

// AboveThreshold returns candidates with a score of at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}

	return result
}

// Names returns the candidate names in order.
func (c CandidateList) Names() []string {
	out := make([]string, len(c))
	for i, cand := range c {
		out[i] = cand.Name
	}

	return out
}

// Suggest returns up to DefaultMaxSuggestions known names similar to target.
func Suggest(target string, known []string) []string {
	return RankCandidates(target, known).
		AboveThreshold(DefaultMinScore).
		Top(DefaultMaxSuggestions).
		Names()
}

// DidYouMean phrases a hint for an unknown name: the closest known name, or
// the two closest when they score too near to pick one. It returns "" when
// nothing is similar.
func DidYouMean(target string, known []string) string {
	candidates := RankCandidates(target, known).AboveThreshold(DefaultMinScore)

	best := candidates.Best()
	if best == nil {
		return ""
	}

	if candidates.IsAmbiguous(DefaultAmbiguityThreshold) {
		return "ambiguous: did you mean " + best.Name + " or " + candidates[1].Name + "?"
	}

	return "did you mean " + best.Name + "?"
}
