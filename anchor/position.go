package anchor

import "fmt"

// Kind distinguishes the two forms of a Position.
type Kind uint8

const (
	// KindAbsolute is a raw line offset from the top of the content.
	KindAbsolute Kind = iota
	// KindItem is an offset relative to the top edge of an identified row.
	KindItem
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindAbsolute:
		return "absolute"
	case KindItem:
		return "item"
	default:
		return "unknown"
	}
}

// Position is a snapshot of where a list is scrolled to. It references rows
// only by identity, so it stays valid after the rows are torn down and
// rebuilt.
//
// For KindItem, Offset is the number of lines between the viewport's top edge
// and the top edge of the row with identity Key. For KindAbsolute, Key is
// unused and Offset is measured from the top of the content.
type Position[K comparable] struct {
	Kind   Kind
	Key    K
	Offset int
}

// AtItem returns a position anchored to the row with the given identity.
func AtItem[K comparable](key K, offset int) Position[K] {
	return Position[K]{Kind: KindItem, Key: key, Offset: offset}
}

// Absolute returns a position that is not anchored to any row.
func Absolute[K comparable](offset int) Position[K] {
	return Position[K]{Kind: KindAbsolute, Offset: offset}
}

// IsItem reports whether the position is anchored to a row.
func (p Position[K]) IsItem() bool {
	return p.Kind == KindItem
}

// Equal reports whether both positions describe the same anchor. The key of
// absolute positions is ignored.
func (p Position[K]) Equal(other Position[K]) bool {
	if p.Kind != other.Kind || p.Offset != other.Offset {
		return false
	}
	if p.Kind == KindItem {
		return p.Key == other.Key
	}
	return true
}

// String formats the position for logs.
func (p Position[K]) String() string {
	if p.Kind == KindItem {
		return fmt.Sprintf("item(%v%+d)", p.Key, p.Offset)
	}
	return fmt.Sprintf("absolute(%d)", p.Offset)
}
