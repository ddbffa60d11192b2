package entry

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind enumerates the entry variants.
type Kind int

const (
	_ Kind = iota // zero is not a valid kind

	KindPackage
	KindClass
	KindMethod
	KindField
	KindLocal
)

// IsMember returns true for methods and fields.
func (k Kind) IsMember() bool {
	return k == KindMethod || k == KindField
}

// IsRenamable returns true for the kinds whose records carry a target name
// that flips direction when a tree is inverted.
func (k Kind) IsRenamable() bool {
	return k == KindClass || k == KindMethod || k == KindField
}
