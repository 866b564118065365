package basic

// PageNo identifies a node page in the backing store. The store layer
// owns the mapping from page number to bytes; this engine only carries
// page numbers around as child pointers and sibling links.
type PageNo uint32

// NilPage marks an absent page reference. A leaf whose sibling slot
// holds NilPage is the rightmost leaf of its level.
const NilPage PageNo = 0
