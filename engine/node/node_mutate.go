package node

import (
	"github.com/juju/errors"
	"github.com/zhukovaskychina/xbtree-engine/engine/basic"
	"github.com/zhukovaskychina/xbtree-engine/engine/slots"
)

// Find does an exact-match lookup on a leaf page and returns the
// stored value.
func (n Node) Find(key []byte) ([]byte, error) {
	if !n.leaf {
		return nil, basic.ErrNotFound
	}
	p, err := n.entries.Find(key)
	if err != nil {
		return nil, err
	}
	return n.Value(p)
}

// Insert stores a key/value pair on a leaf page in sorted position.
// Existing keys are not overwritten; the walker must have made room,
// a full page is an error here.
func (n Node) Insert(key, value []byte) (Node, error) {
	if !n.leaf {
		return Node{}, errors.Errorf("pair insert on an internal page")
	}
	ent, err := n.entries.Insert(slots.Key(key), value)
	if err != nil {
		return Node{}, err
	}
	n.entries = ent
	return n, nil
}

// InsertChild stores a separator key on an internal page together
// with the two children it divides. The pair replaces the single
// child that previously covered the key's range; the page never
// fabricates children on its own.
func (n Node) InsertChild(key []byte, left, right basic.PageNo) (Node, error) {
	if n.leaf {
		return Node{}, errors.Errorf("child insert on a leaf page")
	}
	ent, err := n.entries.Insert(slots.Key(key), left, right)
	if err != nil {
		return Node{}, err
	}
	n.entries = ent
	return n, nil
}

// Remove deletes key from the page. On a leaf the paired value goes
// with it; on an internal page the child to the key's right goes,
// the walker having already drained or merged that side.
func (n Node) Remove(key []byte) (Node, error) {
	p, err := n.entries.Find(slots.Key(key))
	if err != nil {
		return Node{}, err
	}
	place := slots.PlaceRight
	if n.leaf {
		place = slots.PlaceLeft
	}
	ent, err := n.entries.Remove(slots.Addr{Place: place, Pos: slots.At(p)})
	if err != nil {
		return Node{}, err
	}
	n.entries = ent
	return n, nil
}

// ReplaceKey overwrites oldKey with newKey in place, children
// untouched. Rebalancing uses it when the boundary a separator
// stands for moves.
func (n Node) ReplaceKey(oldKey, newKey []byte) (Node, error) {
	p, err := n.entries.Find(slots.Key(oldKey))
	if err != nil {
		return Node{}, err
	}
	ent, err := n.entries.Update(slots.Addr{Place: slots.PlaceKey, Pos: slots.At(p)}, slots.Key(newKey))
	if err != nil {
		return Node{}, err
	}
	n.entries = ent
	return n, nil
}
