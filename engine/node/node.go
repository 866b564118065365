package node

import (
	"github.com/zhukovaskychina/xbtree-engine/engine/basic"
	"github.com/zhukovaskychina/xbtree-engine/engine/slots"
)

// Node is one B+ tree page: a slot array plus a leaf/internal
// discriminator fixed at construction. A leaf array holds value/key
// pairs and at most one trailing sibling slot; an internal array
// holds n keys around n+1 child page numbers.
//
// A node is a plain value. Operations never mutate their receiver:
// each one returns the updated node(s), and the caller (the tree
// walker that owns page identity and persistence) decides what to do
// with the old value.
type Node struct {
	leaf    bool
	order   int
	entries slots.Array
}

// slotLimit is the capacity of a page's slot array: 2·order keys plus
// their children (leaf: paired values and the sibling slot; internal:
// 2·order+1 child pointers).
func slotLimit(order int) int { return 4*order + 1 }

// NewLeaf returns an empty leaf page of the given order.
func NewLeaf(order int) Node {
	return Node{leaf: true, order: order, entries: slots.New(slotLimit(order))}
}

// NewInternal returns an empty internal page of the given order.
func NewInternal(order int) Node {
	return Node{leaf: false, order: order, entries: slots.New(slotLimit(order))}
}

// IsLeaf reports the page kind.
func (n Node) IsLeaf() bool { return n.leaf }

// Order is the branching factor the page was created with.
func (n Node) Order() int { return n.order }

// Size is the total slot count of the underlying array, children and
// sibling slot included. The tree walker compares it against the
// page's limits to decide when to split or merge.
func (n Node) Size() int { return n.entries.Size() }

// KeyCount is the number of keys on the page.
func (n Node) KeyCount() int { return n.entries.Keys() }

// Key returns the key at position pos on a leaf page.
func (n Node) Key(pos int) (slots.Key, error) {
	item, err := n.entries.Get(slots.Addr{Place: slots.PlaceKey, Pos: slots.At(pos)})
	if err != nil {
		return nil, err
	}
	return item.(slots.Key), nil
}

// Value returns the value paired with the key at position pos on a
// leaf page.
func (n Node) Value(pos int) ([]byte, error) {
	item, err := n.entries.Get(slots.Addr{Place: slots.PlaceLeft, Pos: slots.At(pos)})
	if err != nil {
		return nil, err
	}
	return item.([]byte), nil
}

// LowerBound returns the position of the first stored key not less
// than key.
func (n Node) LowerBound(key []byte) int {
	return n.entries.LowerBound(key)
}

// Child routes key through an internal page: the left child at the
// key's lower bound, or the rightmost child when key is beyond every
// separator. Leaves have nothing below them.
func (n Node) Child(key []byte) (basic.PageNo, error) {
	if n.leaf {
		return basic.NilPage, basic.ErrNotFound
	}
	// Past the last separator, key position Keys() still has a left
	// child: the trailing child slot, i.e. the rightmost child.
	p := n.entries.LowerBound(key)
	item, err := n.entries.Get(slots.Addr{Place: slots.PlaceLeft, Pos: slots.At(p)})
	if err != nil {
		return basic.NilPage, err
	}
	return item.(basic.PageNo), nil
}

// ChildSibling is a routing result that also names one adjacent
// sibling of the chosen child, plus the separator between the two, so
// the tree walker can weigh a rotate or merge without a second visit.
type ChildSibling struct {
	Child   basic.PageNo
	Sibling basic.PageNo
	// Sep is the key stored between Child and Sibling in this page.
	Sep slots.Key
	// SiblingOnLeft tells which side Sibling is on. The left
	// neighbour is preferred; only the leftmost child pairs to its
	// right.
	SiblingOnLeft bool
}

// ChildWithSibling routes like Child and pairs the chosen child with
// its left neighbour when it has one, otherwise with its right one.
func (n Node) ChildWithSibling(key []byte) (ChildSibling, error) {
	if n.leaf {
		return ChildSibling{}, basic.ErrNotFound
	}
	if n.entries.Keys() == 0 {
		return ChildSibling{}, basic.ErrNotFound
	}
	p := n.entries.LowerBound(key)

	// The pair around key position q holds the two children the
	// separator at q divides. Past the last separator the rightmost
	// child pairs with its left neighbour; at position 0 there is no
	// left neighbour, so the leftmost child pairs right.
	q := p - 1
	onLeft := true
	childIsRight := true
	if p == 0 {
		q = 0
		onLeft = false
		childIsRight = false
	} else if p >= n.entries.Keys() {
		q = n.entries.Keys() - 1
	}
	item, err := n.entries.Get(slots.Addr{Place: slots.PlaceBoth, Pos: slots.At(q)})
	if err != nil {
		return ChildSibling{}, err
	}
	pair := item.(slots.Pair)
	sep, err := n.entries.Get(slots.Addr{Place: slots.PlaceKey, Pos: slots.At(q)})
	if err != nil {
		return ChildSibling{}, err
	}
	cs := ChildSibling{Sep: sep.(slots.Key), SiblingOnLeft: onLeft}
	if childIsRight {
		cs.Child = pair.Right.(basic.PageNo)
		cs.Sibling = pair.Left.(basic.PageNo)
	} else {
		cs.Child = pair.Left.(basic.PageNo)
		cs.Sibling = pair.Right.(basic.PageNo)
	}
	return cs, nil
}

// LeftmostChild returns the first child of an internal page.
func (n Node) LeftmostChild() (basic.PageNo, error) {
	if n.leaf {
		return basic.NilPage, basic.ErrNotFound
	}
	item, err := n.entries.Get(slots.Addr{Place: slots.PlaceLeft, Pos: slots.First})
	if err != nil {
		return basic.NilPage, err
	}
	return item.(basic.PageNo), nil
}

// RightSibling returns the page chained to the right of a leaf.
// An unassigned or nil sibling slot reads as not found.
func (n Node) RightSibling() (basic.PageNo, error) {
	if !n.leaf {
		return basic.NilPage, basic.ErrNotFound
	}
	item, err := n.entries.Get(slots.Addr{Place: slots.PlaceRight, Pos: slots.Last})
	if err != nil {
		return basic.NilPage, basic.ErrNotFound
	}
	pn, ok := item.(basic.PageNo)
	if !ok || pn == basic.NilPage {
		return basic.NilPage, basic.ErrNotFound
	}
	return pn, nil
}

// SetRightSibling writes the sibling slot of a leaf, claiming the
// trailing slot left behind by a split or appending a fresh one. On
// an internal page it is a no-op.
func (n Node) SetRightSibling(pn basic.PageNo) Node {
	if !n.leaf {
		return n
	}
	if n.entries.Size()%2 == 1 {
		addr := slots.Addr{Place: slots.PlaceRight, Pos: slots.Last}
		if n.entries.Keys() == 0 {
			addr = slots.Addr{Place: slots.PlaceLeft, Pos: slots.At(0)}
		}
		ent, err := n.entries.Update(addr, pn)
		if err != nil {
			return n
		}
		n.entries = ent
		return n
	}
	n.entries = n.entries.Append(pn)
	return n
}
