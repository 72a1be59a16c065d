package anchor

import "sort"

// EditKind classifies how a row changes between two sequences.
type EditKind uint8

const (
	// EditKeep marks a row that is reused and keeps its relative order.
	EditKeep EditKind = iota
	// EditMove marks a reused row whose relative order changed.
	EditMove
	// EditInsert marks a row that only exists in the new sequence.
	EditInsert
	// EditDelete marks a row that only exists in the old sequence.
	EditDelete
)

// String returns the name of the edit kind.
func (k EditKind) String() string {
	switch k {
	case EditKeep:
		return "keep"
	case EditMove:
		return "move"
	case EditInsert:
		return "insert"
	case EditDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Edit describes one row of a diff. From is the index in the old sequence
// and To the index in the new one; either is -1 when the row does not exist
// on that side.
type Edit[K comparable] struct {
	Kind EditKind
	Key  K
	From int
	To   int
}

// Diff computes the row edits that turn old into next, matching rows by
// identity. Reused rows that form the longest run of preserved relative order
// are kept, the remaining reused rows are moves. Edits for rows of next come
// first in display order, followed by deletions in old order.
func Diff[K comparable](old, next Sequence[K]) []Edit[K] {
	edits := make([]Edit[K], 0, max(old.Len(), next.Len()))

	// Old indices of the reused rows, in new display order.
	var (
		reusedFrom []int
		reusedTo   []int
	)
	for to, key := range next.keys {
		if from, ok := old.Index(key); ok {
			reusedFrom = append(reusedFrom, from)
			reusedTo = append(reusedTo, to)
		}
	}
	stable := longestIncreasing(reusedFrom)

	r := 0
	for to, key := range next.keys {
		if r < len(reusedTo) && reusedTo[r] == to {
			kind := EditMove
			if stable[r] {
				kind = EditKeep
			}
			edits = append(edits, Edit[K]{Kind: kind, Key: key, From: reusedFrom[r], To: to})
			r++
			continue
		}
		edits = append(edits, Edit[K]{Kind: EditInsert, Key: key, From: -1, To: to})
	}

	for from, key := range old.keys {
		if !next.Contains(key) {
			edits = append(edits, Edit[K]{Kind: EditDelete, Key: key, From: from, To: -1})
		}
	}
	return edits
}

// longestIncreasing marks the members of one longest strictly increasing
// subsequence of values.
func longestIncreasing(values []int) []bool {
	marked := make([]bool, len(values))
	if len(values) == 0 {
		return marked
	}

	// tails[i] is the index into values of the smallest tail of an
	// increasing run of length i+1.
	tails := make([]int, 0, len(values))
	prev := make([]int, len(values))
	for i, v := range values {
		n := sort.Search(len(tails), func(j int) bool {
			return values[tails[j]] >= v
		})
		if n > 0 {
			prev[i] = tails[n-1]
		} else {
			prev[i] = -1
		}
		if n == len(tails) {
			tails = append(tails, i)
		} else {
			tails[n] = i
		}
	}

	for i := tails[len(tails)-1]; i >= 0; i = prev[i] {
		marked[i] = true
	}
	return marked
}
