package mappingops

import (
	"strings"

	"remapper/internal/common"
	rerrors "remapper/internal/errors"
	"remapper/internal/tree"
)

// KeepMode selects which one-sided records Compose keeps.
type KeepMode int

const (
	KeepNone KeepMode = iota
	KeepLeft
	KeepRight
	KeepBoth
)

// ParseKeepMode accepts "none", "left", "right" or "both".
func ParseKeepMode(s string) (KeepMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return KeepNone, nil
	case "left":
		return KeepLeft, nil
	case "right":
		return KeepRight, nil
	case "both":
		return KeepBoth, nil
	default:
		return KeepNone, rerrors.Configf("keep mode must be one of none, left, right, both; got %q", s)
	}
}

// KeepLeftOnly reports whether left-only records are kept.
func (k KeepMode) KeepLeftOnly() bool {
	return k == KeepLeft || k == KeepBoth
}

// KeepRightOnly reports whether right-only records are kept.
func (k KeepMode) KeepRightOnly() bool {
	return k == KeepRight || k == KeepBoth
}

func (k KeepMode) String() string {
	switch k {
	case KeepNone:
		return "none"
	case KeepLeft:
		return "left"
	case KeepRight:
		return "right"
	case KeepBoth:
		return "both"
	default:
		return common.UnknownStr
	}
}

// ComposeWith is Compose with the flags taken from mode.
func ComposeWith(left, right tree.Tree, mode KeepMode) *tree.HashTree {
	return Compose(left, right, mode.KeepLeftOnly(), mode.KeepRightOnly())
}
