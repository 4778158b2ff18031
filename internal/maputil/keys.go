// Package maputil provides small helpers for working with string-keyed maps.
package maputil

import "sort"

// SortedKeys returns the keys of m in lexicographic order.
// A nil or empty map returns an empty, non-nil slice.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SortedKeyUnion returns every key present in a or b, in lexicographic
// order, each key exactly once. It drives deterministic traversal when two
// maps must be walked side by side.
func SortedKeyUnion[V any](a, b map[string]V) []string {
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, seen := a[k]; !seen {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
