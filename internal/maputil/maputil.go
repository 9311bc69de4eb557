// Package maputil provides utilities for working with maps.
package maputil

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

// SortedKeys returns the keys of a map sorted in ascending order.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}

// SortedEntries returns the entries of a map ordered by key.
func SortedEntries[K cmp.Ordered, V any](m map[K]V) []lo.Entry[K, V] {
	entries := lo.ToPairs(m)
	slices.SortFunc(entries, func(a, b lo.Entry[K, V]) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return entries
}
