package common

import (
	"cmp"
	"maps"
	"slices"
)

// UnknownStr is the String() value of out-of-range enum values.
const UnknownStr = "unknown"

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[M ~map[K]V, K cmp.Ordered, V any](m M) []K {
	return slices.Sorted(maps.Keys(m))
}
