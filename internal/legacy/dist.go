package legacy

import (
	"strconv"

	rerrors "remapper/internal/errors"
)

// Dist is the platform side an element exists on. The values are the
// side column of the naming tables.
type Dist int

const (
	Client Dist = iota
	Server
	Both
)

func (d Dist) String() string {
	switch d {
	case Client:
		return "client"
	case Server:
		return "server"
	case Both:
		return "both"
	default:
		return "dist(" + strconv.Itoa(int(d)) + ")"
	}
}

// ParseDist reads a side column value.
func ParseDist(s string) (Dist, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < int(Client) || n > int(Both) {
		return Both, rerrors.Configf("side %q is not one of 0, 1, 2", s)
	}

	return Dist(n), nil
}

// CommonDist narrows a by b. Both is the identity; two different concrete
// sides cannot hold at once and are a consistency error.
func CommonDist(a, b Dist) (Dist, error) {
	switch {
	case a == Both:
		return b, nil
	case b == Both, a == b:
		return a, nil
	default:
		return Both, rerrors.Consistencyf("no element can be both %s-only and %s-only", a, b)
	}
}

// Merge widens a by b: equal sides stay, anything else is Both.
func Merge(a, b Dist) Dist {
	if a == b {
		return a
	}

	return Both
}

// MergeAll folds Merge over ds. Empty input is Both.
func MergeAll(ds ...Dist) Dist {
	if len(ds) == 0 {
		return Both
	}

	out := ds[0]
	for _, d := range ds[1:] {
		out = Merge(out, d)
	}

	return out
}

// CommonAll folds CommonDist over ds. Empty input is Both.
func CommonAll(ds ...Dist) (Dist, error) {
	out := Both

	for _, d := range ds {
		var err error
		if out, err = CommonDist(out, d); err != nil {
			return Both, err
		}
	}

	return out, nil
}
