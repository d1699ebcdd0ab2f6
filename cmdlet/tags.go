package cmdlet

import (
	"maps"
	"slices"
)

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

// tag is implemented by the SDK Key/Value tag structures.
type tag[T any] interface {
	*T
	SetKey(string) *T
	SetValue(string) *T
}

// AppendTags appends one tag structure per entry of m to dst, in key order.
func AppendTags[T any, P tag[T]](dst *[]*T, m map[string]string) {
	for _, k := range SortedKeys(m) {
		t := new(T)
		P(t).SetKey(k)
		P(t).SetValue(m[k])
		*dst = append(*dst, t)
	}
}
