// Package match finds names close to a misspelled one.
//
// It is used to suggest alternatives in error messages: unknown format or
// variant names, and classes or members of a mapping document that are not
// present in the jar index.
//
// Key functions:
//   - NormalizeName: folds a JVM or format name for fuzzy comparison
//   - Levenshtein: computes edit distance between strings
//   - RankCandidates: ranks known names by similarity to a target
//   - Suggest: returns the closest known names worth showing to a user
package match
