package mappingops

import (
	"remapper/internal/entry"
	"remapper/internal/translate"
	"remapper/internal/tree"
)

// Invert returns a tree keyed by the translated form of every entry of t.
// Class, method and field records point back to the original name; an
// absent record inverts to the entry's own name.
func Invert(t tree.Tree) *tree.HashTree {
	translator := translate.NewMappingTranslator(t, translate.VoidResolver{})
	result := tree.NewHashTree()

	for _, n := range t.Nodes() {
		translated := translator.Translate(n.Entry)

		if !n.Entry.Kind().IsRenamable() {
			result.Insert(translated, n.Mapping)
			continue
		}

		inverted := entry.Rename(n.Entry.Name())
		if n.Mapping != nil {
			inverted.Access = n.Mapping.Access
		}

		result.Insert(translated, inverted)
	}

	return result
}

// Compose returns the tree that applies left, then right.
//
// Every entry of left is translated through left and looked up in right.
// A hit emits the original entry with right's record. A miss keeps left's
// record when keepLeftOnly is set. With keepRightOnly, records of right that
// were never hit are re-keyed into left's namespace through the inverse of
// left. Hits are tracked by the translated entry, so an entry renamed onto
// the name of a different obfuscated entry does not hide that entry.
func Compose(left, right tree.Tree, keepLeftOnly, keepRightOnly bool) *tree.HashTree {
	leftTranslator := translate.NewMappingTranslator(left, translate.VoidResolver{})
	result := tree.NewHashTree()
	consumed := make(map[entry.Entry]bool)

	for _, n := range left.Nodes() {
		rightEntry := leftTranslator.Translate(n.Entry)

		if rightMapping := right.Get(rightEntry); rightMapping != nil {
			result.Insert(n.Entry, rightMapping)
			consumed[entry.Identity(rightEntry)] = true
		} else if keepLeftOnly {
			result.Insert(n.Entry, n.Mapping)
		}
	}

	if !keepRightOnly {
		return result
	}

	inverse := translate.NewMappingTranslator(Invert(left), translate.VoidResolver{})

	for _, n := range right.Nodes() {
		if consumed[entry.Identity(n.Entry)] {
			continue
		}

		result.Insert(inverse.Translate(n.Entry), n.Mapping)
	}

	return result
}
