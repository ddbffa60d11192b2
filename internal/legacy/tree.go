package legacy

import (
	"remapper/internal/entry"
	"remapper/internal/tree"
)

// Tree is a tree read from a mapping directory. It keeps the inputs it was
// built from so writers do not have to load them again.
type Tree struct {
	*tree.HashTree

	original *tree.HashTree
	names    *Names
	deltas   *Names
	facts    *JarFacts
	config   *SrgConfig
}

// NewTree wraps built. built is copied; later edits do not change the
// original snapshot. deltas may be nil.
func NewTree(built *tree.HashTree, names, deltas *Names, facts *JarFacts, config *SrgConfig) *Tree {
	return &Tree{
		HashTree: built.Clone(),
		original: built,
		names:    names,
		deltas:   deltas,
		facts:    facts,
		config:   config,
	}
}

// Original returns the tree as it was read.
func (t *Tree) Original() tree.Snapshot { return t.original }

// Names returns the naming tables without the delta overlay.
func (t *Tree) Names() *Names { return t.names }

// Deltas returns the delta file rows read with the tree, or nil.
func (t *Tree) Deltas() *Names { return t.deltas }

// Facts returns the jar facts.
func (t *Tree) Facts() *JarFacts { return t.facts }

// Config returns the class and member table.
func (t *Tree) Config() *SrgConfig { return t.config }

// Status implements tree.Tree. Classes cannot be renamed. Members are
// renamable only while they carry placeholder names, and arguments count
// as unmapped while their name is still a placeholder.
func (t *Tree) Status(obf, deobf entry.Entry) tree.Status {
	return Status(obf, deobf)
}

// Status classifies an entry pair under the bridge rules.
func Status(obf, deobf entry.Entry) tree.Status {
	switch o := obf.(type) {
	case entry.MethodEntry, entry.FieldEntry:
		if deobf.Kind() != obf.Kind() || !IsPlaceholder(o.Name()) {
			return tree.ReadOnly
		}

		return tree.NameStatus(obf, deobf)
	case entry.LocalVariableEntry:
		if _, ok := deobf.(entry.LocalVariableEntry); !ok || !o.IsArgument() {
			return tree.ReadOnly
		}

		if IsPlaceholderParam(deobf.Name()) {
			return tree.Unmapped
		}

		return tree.Mapped
	default:
		return tree.ReadOnly
	}
}

var _ tree.Tree = (*Tree)(nil)
