package tree

//go:generate go tool stringer -type=Status -output=status_string.go

// Status classifies an (obfuscated, translated) entry pair.
// It is derived on every call and never cached.
type Status int

const (
	_ Status = iota // zero is not a valid status

	ReadOnly
	Unmapped
	Mapped
)
