package slots

// Place names the role of a slot relative to a key position. A slot
// array interleaves child slots and key slots, child before its key,
// so every child can be addressed as the left or right neighbour of
// some key.
type Place uint8

const (
	// PlaceKey addresses the separator key itself.
	PlaceKey Place = iota
	// PlaceLeft addresses the child slot immediately before the key.
	// On a leaf page this is the value paired with the key.
	PlaceLeft
	// PlaceRight addresses the child slot immediately after the key.
	// On a leaf page the right slot of the last key is the sibling
	// pointer, when one has been assigned.
	PlaceRight
	// PlaceBoth addresses the child pair around the key.
	PlaceBoth
)

// posKind discriminates explicit indexes from the symbolic endpoints.
type posKind uint8

const (
	posAt posKind = iota
	posFirst
	posLast
)

// Pos is a key position: an explicit index, or First/Last resolved
// against the current key count.
type Pos struct {
	kind  posKind
	index int
}

// At addresses the key at explicit index n.
func At(n int) Pos { return Pos{kind: posAt, index: n} }

// First addresses key position 0.
var First = Pos{kind: posFirst}

// Last addresses the highest occupied key position.
var Last = Pos{kind: posLast}

// Addr combines a role with a key position.
type Addr struct {
	Place Place
	Pos   Pos
}

// resolve turns a Pos into a concrete key index for an array holding
// the given number of keys. Returns -1 when the position cannot exist.
func (p Pos) resolve(keys int) int {
	switch p.kind {
	case posFirst:
		return 0
	case posLast:
		return keys - 1
	default:
		if p.index < 0 {
			return -1
		}
		return p.index
	}
}
