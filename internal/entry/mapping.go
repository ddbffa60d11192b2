package entry

import (
	"fmt"
	"strings"

	"remapper/internal/common"
)

// AccessModifier overrides the access of a renamed element.
type AccessModifier int

const (
	AccessUnchanged AccessModifier = iota
	AccessPublic
	AccessProtected
	AccessPrivate
)

// String returns the lowercase modifier keyword.
func (a AccessModifier) String() string {
	switch a {
	case AccessUnchanged:
		return "unchanged"
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessPrivate:
		return "private"
	default:
		return common.UnknownStr
	}
}

// ParseAccessModifier accepts the keywords produced by String; "" means unchanged.
func ParseAccessModifier(s string) (AccessModifier, error) {
	switch strings.ToLower(s) {
	case "", "unchanged":
		return AccessUnchanged, nil
	case "public":
		return AccessPublic, nil
	case "protected":
		return AccessProtected, nil
	case "private":
		return AccessPrivate, nil
	default:
		return AccessUnchanged, fmt.Errorf("unknown access modifier %q", s)
	}
}

// Mapping is the rename record attached to an entry.
type Mapping struct {
	TargetName string
	Access     AccessModifier
}

// Rename creates a record with unchanged access.
func Rename(target string) *Mapping {
	return &Mapping{TargetName: target}
}

// WithName returns a copy targeting name and keeping the access override.
func (m Mapping) WithName(name string) *Mapping {
	m.TargetName = name
	return &m
}

// Equal compares two optional records.
func (m *Mapping) Equal(other *Mapping) bool {
	if m == nil || other == nil {
		return m == other
	}

	return *m == *other
}

// String renders the record for diagnostics.
func (m *Mapping) String() string {
	if m == nil {
		return "<none>"
	}

	if m.Access == AccessUnchanged {
		return m.TargetName
	}

	return m.TargetName + " (" + m.Access.String() + ")"
}
