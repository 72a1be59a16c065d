package anchor

import (
	"iter"
	"slices"
)

// Sequence is an ordered list of item identities. The order is the display
// order. A Sequence is never modified after it has been built; content
// updates replace it wholesale.
//
// Identities must be unique. If they are not, lookups resolve to the first
// occurrence and the display order of the duplicates is undefined.
type Sequence[K comparable] struct {
	keys  []K
	index map[K]int
}

// NewSequence returns a sequence holding the given keys in order.
func NewSequence[K comparable](keys ...K) Sequence[K] {
	s := Sequence[K]{
		keys:  slices.Clone(keys),
		index: make(map[K]int, len(keys)),
	}
	for i, key := range s.keys {
		if _, ok := s.index[key]; !ok {
			s.index[key] = i
		}
	}
	return s
}

// SequenceOf returns the sequence of identities of the given items.
func SequenceOf[T any, K comparable](items []T, key func(T) K) Sequence[K] {
	keys := make([]K, len(items))
	for i, item := range items {
		keys[i] = key(item)
	}
	return NewSequence(keys...)
}

// Len returns the number of items.
func (s Sequence[K]) Len() int {
	return len(s.keys)
}

// At returns the identity at display index i.
func (s Sequence[K]) At(i int) K {
	return s.keys[i]
}

// Keys returns a copy of the identities in display order.
func (s Sequence[K]) Keys() []K {
	return slices.Clone(s.keys)
}

// Index returns the display index of key.
func (s Sequence[K]) Index(key K) (int, bool) {
	i, ok := s.index[key]
	return i, ok
}

// Contains reports whether key is part of the sequence.
func (s Sequence[K]) Contains(key K) bool {
	_, ok := s.index[key]
	return ok
}

// First returns the first identity, if any.
func (s Sequence[K]) First() (K, bool) {
	if len(s.keys) == 0 {
		var zero K
		return zero, false
	}
	return s.keys[0], true
}

// Last returns the last identity, if any.
func (s Sequence[K]) Last() (K, bool) {
	if len(s.keys) == 0 {
		var zero K
		return zero, false
	}
	return s.keys[len(s.keys)-1], true
}

// Equal reports whether both sequences hold the same identities in the same
// order.
func (s Sequence[K]) Equal(other Sequence[K]) bool {
	return slices.Equal(s.keys, other.keys)
}

// All iterates over display index and identity pairs.
func (s Sequence[K]) All() iter.Seq2[int, K] {
	return slices.All(s.keys)
}
