package match

import (
	"strings"
	"unicode"
)

// NormalizeName folds a name for fuzzy comparison: CamelCase and separators
// ('_', '-', '$', '/', '.', ' ') are dropped and the result is lowercased.
// "net/minecraft/Block$Inner" and "net.minecraft.block_inner" normalize alike.
func NormalizeName(s string) string {
	return strings.Join(TokenizeName(s), "")
}

// TokenizeName splits a name into lowercase tokens on separators and
// CamelCase boundaries. Acronyms stay together: "getHTTPResponse" yields
// "get", "http", "response".
func TokenizeName(s string) []string {
	var tokens []string

	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	switch r {
	case '_', '-', '$', '/', '.', ' ':
		return true
	default:
		return false
	}
}

// startsToken reports whether a CamelCase token starts at runes[i]:
// after a lower-case letter, or at the last capital of an acronym.
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
