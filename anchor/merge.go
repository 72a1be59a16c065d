package anchor

import "slices"

// Merge combines the current items with an incoming batch. Items are
// de-duplicated by identity, with the incoming value replacing the current
// one so a row can change its content while keeping its identity. The result
// is stably sorted by cmp, so items that compare equal keep the order in which
// they were first seen.
func Merge[T any, K comparable](current, incoming []T, key func(T) K, cmp func(a, b T) int) []T {
	merged := make([]T, 0, len(current)+len(incoming))
	at := make(map[K]int, len(current)+len(incoming))
	for _, batch := range [][]T{current, incoming} {
		for _, item := range batch {
			k := key(item)
			if i, ok := at[k]; ok {
				merged[i] = item
				continue
			}
			at[k] = len(merged)
			merged = append(merged, item)
		}
	}
	if cmp != nil {
		slices.SortStableFunc(merged, cmp)
	}
	return merged
}
