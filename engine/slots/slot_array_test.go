package slots

import (
	"testing"

	"github.com/smartystreets/assertions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhukovaskychina/xbtree-engine/engine/basic"
)

func k(b byte) Key { return Key{b} }

// pairArray builds a leaf-shaped array value,key,value,key...
func pairArray(t *testing.T, limit int, keys ...byte) Array {
	t.Helper()
	a := New(limit)
	var err error
	for _, kb := range keys {
		a, err = a.Insert(k(kb), []byte{'v', kb})
		require.NoError(t, err)
	}
	return a
}

func TestArrayInsertKeepsOrder(t *testing.T) {
	t.Parallel()
	a := pairArray(t, 9, 10, 20, 5)

	assert.Equal(t, 3, a.Keys())
	assert.Equal(t, 6, a.Size())

	got, err := a.Get(Addr{Place: PlaceKey, Pos: First})
	require.NoError(t, err)
	assert.Equal(t, k(5), got)

	got, err = a.Get(Addr{Place: PlaceKey, Pos: Last})
	require.NoError(t, err)
	assert.Equal(t, k(20), got)

	got, err = a.Get(Addr{Place: PlaceLeft, Pos: At(1)})
	require.NoError(t, err)
	assert.Equal(t, []byte{'v', 10}, got)
}

func TestArrayInsertErrors(t *testing.T) {
	t.Parallel()
	a := pairArray(t, 5, 10, 20)

	_, err := a.Insert(k(10), []byte("dup"))
	assert.ErrorIs(t, err, basic.ErrDuplicateKey)

	// limit 5 holds two pairs plus one trailing slot, a third pair
	// cannot fit
	_, err = a.Insert(k(30), []byte("v"))
	assert.ErrorIs(t, err, basic.ErrArrayFull)

	_, err = a.Insert(k(30))
	assert.Error(t, err)
}

func TestArrayInsertBothChildren(t *testing.T) {
	t.Parallel()
	a := New(9)
	a, err := a.Insert(k(10), basic.PageNo(2), basic.PageNo(3))
	require.NoError(t, err)
	assert.Equal(t, 3, a.Size())
	assert.Equal(t, 1, a.Keys())

	// a second separator replaces the child it straddles
	a, err = a.Insert(k(20), basic.PageNo(3), basic.PageNo(4))
	require.NoError(t, err)
	assert.Equal(t, 5, a.Size())

	both, err := a.Get(Addr{Place: PlaceBoth, Pos: At(1)})
	require.NoError(t, err)
	assert.Equal(t, Pair{Left: basic.PageNo(3), Right: basic.PageNo(4)}, both)

	rightmost, err := a.Get(Addr{Place: PlaceRight, Pos: Last})
	require.NoError(t, err)
	assert.Equal(t, basic.PageNo(4), rightmost)
}

func TestArrayBounds(t *testing.T) {
	t.Parallel()
	empty := New(9)

	_, err := empty.Get(Addr{Place: PlaceKey, Pos: Last})
	assert.ErrorIs(t, err, basic.ErrOutOfRange)

	_, err = empty.Get(Addr{Place: PlaceKey, Pos: At(0)})
	assert.ErrorIs(t, err, basic.ErrOutOfRange)

	a := pairArray(t, 9, 10)
	_, err = a.Get(Addr{Place: PlaceKey, Pos: At(1)})
	assert.ErrorIs(t, err, basic.ErrOutOfRange)

	// no slot after the only pair yet
	_, err = a.Get(Addr{Place: PlaceRight, Pos: Last})
	assert.ErrorIs(t, err, basic.ErrOutOfRange)

	_, err = a.Get(Addr{Place: PlaceKey, Pos: At(-1)})
	assert.ErrorIs(t, err, basic.ErrOutOfRange)
}

func TestArrayFindAndLowerBound(t *testing.T) {
	t.Parallel()
	a := pairArray(t, 13, 5, 10, 20)

	p, err := a.Find(k(10))
	require.NoError(t, err)
	assert.Equal(t, 1, p)

	_, err = a.Find(k(12))
	assert.ErrorIs(t, err, basic.ErrNotFound)

	if msg := assertions.ShouldEqual(a.LowerBound(k(12)), 2); msg != "" {
		t.Error(msg)
	}
	if msg := assertions.ShouldEqual(a.LowerBound(k(99)), 3); msg != "" {
		t.Error(msg)
	}
	assert.Equal(t, 0, a.LowerBound(k(1)))
	assert.Equal(t, 0, New(9).LowerBound(k(1)))
}

func TestArrayUpdate(t *testing.T) {
	t.Parallel()
	a := pairArray(t, 9, 5, 10)

	b, err := a.Update(Addr{Place: PlaceKey, Pos: At(1)}, k(12))
	require.NoError(t, err)
	got, err := b.Get(Addr{Place: PlaceKey, Pos: At(1)})
	require.NoError(t, err)
	assert.Equal(t, k(12), got)

	// the receiver is untouched
	got, err = a.Get(Addr{Place: PlaceKey, Pos: At(1)})
	require.NoError(t, err)
	assert.Equal(t, k(10), got)

	_, err = a.Update(Addr{Place: PlaceKey, Pos: At(5)}, k(1))
	assert.ErrorIs(t, err, basic.ErrOutOfRange)
}

func TestArrayRemovePlaces(t *testing.T) {
	t.Parallel()
	a := pairArray(t, 9, 5, 10, 20)

	// PlaceLeft takes the pair
	b, err := a.Remove(Addr{Place: PlaceLeft, Pos: At(1)})
	require.NoError(t, err)
	assert.Equal(t, 2, b.Keys())
	_, err = b.Find(k(10))
	assert.ErrorIs(t, err, basic.ErrNotFound)

	// PlaceKey takes the bare key
	c, err := a.Remove(Addr{Place: PlaceKey, Pos: At(0)})
	require.NoError(t, err)
	assert.Equal(t, 5, c.Size())

	// PlaceLeft at key position Keys() takes a trailing slot
	d := a.Append(basic.PageNo(7))
	d, err = d.Remove(Addr{Place: PlaceLeft, Pos: At(d.Keys())})
	require.NoError(t, err)
	assert.Equal(t, a.Size(), d.Size())

	_, err = a.Remove(Addr{Place: PlaceLeft, Pos: At(3)})
	assert.ErrorIs(t, err, basic.ErrOutOfRange)
}

func TestArraySplitAndMerge(t *testing.T) {
	t.Parallel()
	// internal shape: c0 k10 c1 k20 c2
	a := New(9)
	a, err := a.Insert(k(10), basic.PageNo(1), basic.PageNo(2))
	require.NoError(t, err)
	a, err = a.Insert(k(20), basic.PageNo(2), basic.PageNo(3))
	require.NoError(t, err)

	left, mid, right := a.Split()
	assert.Equal(t, k(20), mid)
	assert.Equal(t, 3, left.Size())
	assert.Equal(t, 1, right.Size())
	assert.Equal(t, a.Size(), left.Size()+right.Size()+1)

	merged := left.Append(mid).Merge(right)
	assert.Equal(t, a.Size(), merged.Size())
	assert.Equal(t, a.Items(), merged.Items())
}

func TestArrayBisect(t *testing.T) {
	t.Parallel()
	a := pairArray(t, 17, 1, 2, 3, 4)

	left, boundary, right := a.Bisect()
	assert.Equal(t, k(2), boundary)
	assert.Equal(t, 4, left.Size())
	assert.Equal(t, 4, right.Size())

	// a trailing slot follows the pairs into the right half
	b := a.Append(basic.PageNo(9))
	_, _, right = b.Bisect()
	assert.Equal(t, 5, right.Size())
	last := right.Items()[right.Size()-1]
	assert.Equal(t, basic.PageNo(9), last)
}

func TestArrayAppendPrepend(t *testing.T) {
	t.Parallel()
	a := pairArray(t, 9, 10)

	b := a.Append([]byte{'v', 20}, k(20))
	assert.Equal(t, 2, b.Keys())
	got, err := b.Get(Addr{Place: PlaceKey, Pos: Last})
	require.NoError(t, err)
	assert.Equal(t, k(20), got)

	c := a.Prepend([]byte{'v', 5}, k(5))
	got, err = c.Get(Addr{Place: PlaceKey, Pos: First})
	require.NoError(t, err)
	assert.Equal(t, k(5), got)
	assert.Equal(t, 1, a.Keys())
}
