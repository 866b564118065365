package slots

import (
	"bytes"

	"github.com/juju/errors"
	"github.com/zhukovaskychina/xbtree-engine/engine/basic"
)

// Key is a separator key. Keys are compared byte-wise; the encoding
// that makes byte order match key order is the caller's business.
type Key []byte

// Item is anything stored in a child slot: a page number, a record
// payload, or (transiently, after a leaf split) a boundary key copy.
// The array never interprets items; the node layer does.
type Item interface{}

// Pair carries the two child slots around a key, as produced by a
// PlaceBoth read.
type Pair struct {
	Left  Item
	Right Item
}

// Array is the ordered positional store an index page is built on.
// Internally it is one flat run of slots alternating child and key,
// child first:
//
//	internal shape: c0 k0 c1 k1 ... kn-1 cn
//	leaf shape:     v0 k0 v1 k1 ... kn-1        (plus one trailing
//	                sibling slot once the page is chained)
//
// Keys sit at odd offsets, children at even ones, so key position p
// maps to offset 2p+1 and its left/right children to 2p and 2p+2.
//
// Every mutating operation leaves its receiver untouched and returns
// a fresh Array; callers own their copies outright.
type Array struct {
	items []Item
	limit int
}

// New returns an empty array that will hold at most limit slots.
func New(limit int) Array {
	return Array{limit: limit}
}

// Size is the total slot count, children included.
func (a Array) Size() int { return len(a.items) }

// Keys is the number of key slots.
func (a Array) Keys() int { return len(a.items) / 2 }

// Limit is the slot capacity fixed at construction.
func (a Array) Limit() int { return a.limit }

// offset resolves addr to a flat slot offset. PlaceBoth resolves to
// the left child; the right one is offset+2.
func (a Array) offset(addr Addr) (int, error) {
	p := addr.Pos.resolve(a.Keys())
	if p < 0 {
		return 0, basic.ErrOutOfRange
	}
	var off int
	switch addr.Place {
	case PlaceKey:
		off = 2*p + 1
	case PlaceLeft:
		off = 2 * p
	case PlaceRight, PlaceBoth:
		off = 2*p + 2
	default:
		return 0, errors.Errorf("bad place %d", addr.Place)
	}
	if addr.Place == PlaceBoth {
		// both children must be present
		if off >= len(a.items) {
			return 0, basic.ErrOutOfRange
		}
		return 2 * p, nil
	}
	if off >= len(a.items) {
		return 0, basic.ErrOutOfRange
	}
	return off, nil
}

// Get reads the slot named by addr. A PlaceBoth read returns a Pair.
func (a Array) Get(addr Addr) (Item, error) {
	off, err := a.offset(addr)
	if err != nil {
		return nil, err
	}
	if addr.Place == PlaceBoth {
		return Pair{Left: a.items[off], Right: a.items[off+2]}, nil
	}
	return a.items[off], nil
}

// Update overwrites the slot named by addr. PlaceBoth expects a Pair.
func (a Array) Update(addr Addr, item Item) (Array, error) {
	off, err := a.offset(addr)
	if err != nil {
		return Array{}, err
	}
	out := a.clone()
	if addr.Place == PlaceBoth {
		pair, ok := item.(Pair)
		if !ok {
			return Array{}, errors.Errorf("update with PlaceBoth wants a Pair, got %T", item)
		}
		out.items[off] = pair.Left
		out.items[off+2] = pair.Right
		return out, nil
	}
	out.items[off] = item
	return out, nil
}

// Insert adds key in sorted position together with its child slots.
// One child makes a leaf-style pair (child sits left of the key); two
// children replace the child already straddling the insertion point,
// which is how an internal page takes a new separator. Duplicate keys
// and full arrays are rejected.
func (a Array) Insert(key Key, children ...Item) (Array, error) {
	p := a.LowerBound(key)
	if p < a.Keys() && bytes.Equal(a.keyAt(p), key) {
		return Array{}, basic.ErrDuplicateKey
	}
	if len(a.items)+2 > a.limit {
		return Array{}, basic.ErrArrayFull
	}
	switch len(children) {
	case 1:
		out := Array{limit: a.limit, items: make([]Item, 0, len(a.items)+2)}
		out.items = append(out.items, a.items[:2*p]...)
		out.items = append(out.items, children[0], key)
		out.items = append(out.items, a.items[2*p:]...)
		return out, nil
	case 2:
		if len(a.items) == 0 {
			return Array{limit: a.limit, items: []Item{children[0], key, children[1]}}, nil
		}
		if 2*p >= len(a.items) {
			return Array{}, errors.Errorf("no child to straddle at key position %d", p)
		}
		out := Array{limit: a.limit, items: make([]Item, 0, len(a.items)+2)}
		out.items = append(out.items, a.items[:2*p]...)
		out.items = append(out.items, children[0], key, children[1])
		out.items = append(out.items, a.items[2*p+1:]...)
		return out, nil
	default:
		return Array{}, errors.Errorf("insert wants 1 or 2 children, got %d", len(children))
	}
}

// Remove drops the key at addr together with the child slot named by
// its place. PlaceKey drops the bare key. PlaceLeft at key position
// Keys() drops a trailing child slot that has no key of its own.
func (a Array) Remove(addr Addr) (Array, error) {
	p := addr.Pos.resolve(a.Keys())
	if p < 0 {
		return Array{}, basic.ErrOutOfRange
	}
	var from, to int
	switch addr.Place {
	case PlaceKey:
		from, to = 2*p+1, 2*p+2
	case PlaceLeft:
		from, to = 2*p, 2*p+2
	case PlaceRight:
		from, to = 2*p+1, 2*p+3
	default:
		return Array{}, errors.Errorf("remove with place %d not supported", addr.Place)
	}
	if from >= len(a.items) {
		return Array{}, basic.ErrOutOfRange
	}
	if to > len(a.items) {
		to = len(a.items)
	}
	out := Array{limit: a.limit, items: make([]Item, 0, len(a.items)-(to-from))}
	out.items = append(out.items, a.items[:from]...)
	out.items = append(out.items, a.items[to:]...)
	return out, nil
}

// Append adds raw slots at the tail, no search, no capacity check.
// Rebalancing moves entries between siblings that are known to have
// room, so the caller vouches for the fit.
func (a Array) Append(items ...Item) Array {
	out := Array{limit: a.limit, items: make([]Item, 0, len(a.items)+len(items))}
	out.items = append(out.items, a.items...)
	out.items = append(out.items, items...)
	return out
}

// Prepend adds raw slots at the head.
func (a Array) Prepend(items ...Item) Array {
	out := Array{limit: a.limit, items: make([]Item, 0, len(a.items)+len(items))}
	out.items = append(out.items, items...)
	out.items = append(out.items, a.items...)
	return out
}

// Find binary-searches for an exact key match and returns its
// position.
func (a Array) Find(key Key) (int, error) {
	p := a.LowerBound(key)
	if p < a.Keys() && bytes.Equal(a.keyAt(p), key) {
		return p, nil
	}
	return 0, basic.ErrNotFound
}

// LowerBound returns the first key position whose key is not less
// than key; may equal Keys() when every stored key is smaller.
func (a Array) LowerBound(key Key) int {
	lo, hi := 0, a.Keys()
	for lo < hi {
		mid := (lo + hi) / 2
		if bytes.Compare(a.keyAt(mid), key) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Split divides the array around its middle key. The middle key goes
// to neither half: it is returned for promotion, the child run before
// it stays left, everything after it goes right.
func (a Array) Split() (Array, Key, Array) {
	m := a.Keys() / 2
	mid := a.keyAt(m)
	left := Array{limit: a.limit, items: append([]Item(nil), a.items[:2*m+1]...)}
	right := Array{limit: a.limit, items: append([]Item(nil), a.items[2*m+2:]...)}
	return left, mid, right
}

// Bisect divides the array before its middle key without discarding
// any slot, and reports the last key of the left half as the boundary.
// Trailing slots stay with the right half.
func (a Array) Bisect() (Array, Key, Array) {
	m := a.Keys() / 2
	boundary := a.keyAt(m - 1)
	left := Array{limit: a.limit, items: append([]Item(nil), a.items[:2*m]...)}
	right := Array{limit: a.limit, items: append([]Item(nil), a.items[2*m:]...)}
	return left, boundary, right
}

// Merge concatenates other onto a. The result keeps a's limit.
func (a Array) Merge(other Array) Array {
	out := Array{limit: a.limit, items: make([]Item, 0, len(a.items)+len(other.items))}
	out.items = append(out.items, a.items...)
	out.items = append(out.items, other.items...)
	return out
}

// Items returns a copy of the flat slot run, for callers that digest
// or dump a page without interpreting it.
func (a Array) Items() []Item {
	return append([]Item(nil), a.items...)
}

func (a Array) keyAt(p int) Key {
	return a.items[2*p+1].(Key)
}

func (a Array) clone() Array {
	return Array{limit: a.limit, items: append([]Item(nil), a.items...)}
}
