package node

import (
	"github.com/juju/errors"
	"github.com/zhukovaskychina/xbtree-engine/engine/slots"
	"github.com/zhukovaskychina/xbtree-engine/logger"
)

// Split divides a full page into two halves and returns the separator
// the walker must push into the parent.
//
// A leaf keeps every pair: the cut falls after the middle, the last
// key of the left half becomes the separator, and a copy of it is
// appended to the left half as the trailing slot the walker will
// overwrite with the new right page's number. An internal page
// instead gives the middle key up entirely; it moves to the parent
// and neither half keeps it.
func (n Node) Split() (Node, slots.Key, Node, error) {
	if n.entries.Keys() < 2 {
		return Node{}, nil, Node{}, errors.Errorf("split of a page with %d keys", n.entries.Keys())
	}
	if n.leaf {
		l, boundary, r := n.entries.Bisect()
		sep := append(slots.Key(nil), boundary...)
		l = l.Append(sep)
		logger.Debugf("leaf split: %d+%d slots, separator %q", l.Size(), r.Size(), sep)
		left := Node{leaf: true, order: n.order, entries: l}
		right := Node{leaf: true, order: n.order, entries: r}
		return left, boundary, right, nil
	}
	l, mid, r := n.entries.Split()
	logger.Debugf("internal split: %d+%d slots, promoting %q", l.Size(), r.Size(), mid)
	left := Node{order: n.order, entries: l}
	right := Node{order: n.order, entries: r}
	return left, mid, right, nil
}

// Merge absorbs right into the receiver, undoing a split. Leaf pairs
// concatenate and the separator is dropped, sort order already
// implying it; the left page's sibling slot is dropped too, since it
// pointed at the page being absorbed. Internal pages take the
// separator back down between their child runs, restoring the n keys
// for n+1 children shape.
//
// Both pages must be of the same kind; the walker guards that.
func (n Node) Merge(sep slots.Key, right Node) Node {
	ent := n.entries
	if n.leaf {
		if ent.Size()%2 == 1 {
			// trailing sibling slot, always removable
			ent, _ = ent.Remove(slots.Addr{Place: slots.PlaceLeft, Pos: slots.At(ent.Keys())})
		}
	} else {
		ent = ent.Append(append(slots.Key(nil), sep...))
	}
	merged := ent.Merge(right.entries)
	logger.Debugf("merge: %d slots absorbed, %d total", right.Size(), merged.Size())
	n.entries = merged
	return n
}

// RotateRight moves the maximum entry of the receiver into right and
// returns the separator the parent should hold instead of sep.
//
// Leaf case: the last pair moves over and the new separator is the
// receiver's new last key. Internal case: the rightmost child moves
// over under the old separator, and the key it abandoned is promoted.
func (n Node) RotateRight(sep slots.Key, right Node) (Node, slots.Key, Node, error) {
	if n.leaf {
		p := n.entries.Keys() - 1
		k, err := n.Key(p)
		if err != nil {
			return Node{}, nil, Node{}, err
		}
		v, err := n.Value(p)
		if err != nil {
			return Node{}, nil, Node{}, err
		}
		ent, err := n.entries.Remove(slots.Addr{Place: slots.PlaceLeft, Pos: slots.At(p)})
		if err != nil {
			return Node{}, nil, Node{}, err
		}
		newSep, err := Node{leaf: true, order: n.order, entries: ent}.Key(ent.Keys() - 1)
		if err != nil {
			return Node{}, nil, Node{}, errors.Annotate(err, "rotate right emptied the left leaf")
		}
		n.entries = ent
		right.entries = right.entries.Prepend(v, k)
		return n, newSep, right, nil
	}
	k, err := n.entries.Get(slots.Addr{Place: slots.PlaceKey, Pos: slots.Last})
	if err != nil {
		return Node{}, nil, Node{}, err
	}
	c, err := n.entries.Get(slots.Addr{Place: slots.PlaceRight, Pos: slots.Last})
	if err != nil {
		return Node{}, nil, Node{}, err
	}
	ent, err := n.entries.Remove(slots.Addr{Place: slots.PlaceRight, Pos: slots.Last})
	if err != nil {
		return Node{}, nil, Node{}, err
	}
	n.entries = ent
	right.entries = right.entries.Prepend(c, append(slots.Key(nil), sep...))
	return n, k.(slots.Key), right, nil
}

// RotateLeft moves the minimum entry of right into the receiver,
// mirror of RotateRight. The removed key itself becomes the new
// separator for leaves; for internal pages the moving child travels
// under the old separator and the removed key is promoted.
func (n Node) RotateLeft(sep slots.Key, right Node) (Node, slots.Key, Node, error) {
	if n.leaf {
		k, err := right.Key(0)
		if err != nil {
			return Node{}, nil, Node{}, err
		}
		v, err := right.Value(0)
		if err != nil {
			return Node{}, nil, Node{}, err
		}
		rent, err := right.entries.Remove(slots.Addr{Place: slots.PlaceLeft, Pos: slots.At(0)})
		if err != nil {
			return Node{}, nil, Node{}, err
		}
		right.entries = rent

		ent := n.entries
		if ent.Size()%2 == 1 {
			// keep the sibling slot trailing the appended pair
			sib, _ := ent.Get(slots.Addr{Place: slots.PlaceLeft, Pos: slots.At(ent.Keys())})
			ent, _ = ent.Remove(slots.Addr{Place: slots.PlaceLeft, Pos: slots.At(ent.Keys())})
			ent = ent.Append(v, k, sib)
		} else {
			ent = ent.Append(v, k)
		}
		n.entries = ent
		return n, k, right, nil
	}
	k, err := right.entries.Get(slots.Addr{Place: slots.PlaceKey, Pos: slots.First})
	if err != nil {
		return Node{}, nil, Node{}, err
	}
	c, err := right.entries.Get(slots.Addr{Place: slots.PlaceLeft, Pos: slots.First})
	if err != nil {
		return Node{}, nil, Node{}, err
	}
	rent, err := right.entries.Remove(slots.Addr{Place: slots.PlaceLeft, Pos: slots.First})
	if err != nil {
		return Node{}, nil, Node{}, err
	}
	right.entries = rent
	n.entries = n.entries.Append(append(slots.Key(nil), sep...), c)
	return n, k.(slots.Key), right, nil
}
