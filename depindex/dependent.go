package depindex

import (
	"github.com/gridkernel/sheet/coord"
	"github.com/gridkernel/sheet/rtree"
)

// DependentIndex maps a range R to the ordered sequence of ranges that
// depend on R: if any cell in R changes, every cell in a dependent must be
// recomputed. Sequences never contain the empty range and a live entry's
// sequence is never empty (spec §4.2 invariants).
type DependentIndex struct {
	tree *rtree.RTree[[]coord.Range]
}

// NewDependentIndex returns an empty dependent index using the default
// R-tree fanout.
func NewDependentIndex() *DependentIndex {
	return &DependentIndex{tree: rtree.New[[]coord.Range]()}
}

// Put records that value depends on key: if key is already indexed, value
// is appended to its sequence; otherwise a new singleton-sequence entry is
// created.
func (d *DependentIndex) Put(key coord.Range, value coord.Range) {
	d.tree.Upsert(key,
		func() []coord.Range { return []coord.Range{value} },
		func(old []coord.Range) []coord.Range { return append(old, value) },
	)
}

// PutSlice is Put applied in bulk: every range in values is recorded as
// depending on key.
func (d *DependentIndex) PutSlice(key coord.Range, values []coord.Range) {
	for _, v := range values {
		d.Put(key, v)
	}
}

// RemoveValue removes the single occurrence of value from key's sequence.
// If the sequence becomes empty, the key entry itself is removed (which
// triggers the underlying R-tree's underflow handling). Reports whether
// value was found.
func (d *DependentIndex) RemoveValue(key coord.Range, value coord.Range) bool {
	seq, ok := d.tree.LookupExact(key)
	if !ok {
		return false
	}
	idx := -1
	for i, r := range seq {
		if r.Equal(value) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	remaining := append(seq[:idx:idx], seq[idx+1:]...)
	if len(remaining) == 0 {
		d.tree.Remove(key, nil)
		return true
	}
	d.tree.Upsert(key, func() []coord.Range { return remaining }, func([]coord.Range) []coord.Range { return remaining })
	return true
}

// Entry is one (key, dependents) pair as returned by Search.
type Entry struct {
	Key        coord.Range
	Dependents []coord.Range
}

// Search returns every indexed range that intersects query, with its full
// dependents sequence. Results follow the R-tree's unordered scan
// (callers iterate all positions themselves, per spec §4.2); each
// sequence keeps the order its values were Put in.
func (d *DependentIndex) Search(query coord.Range) []Entry {
	hits := d.tree.RangeSearch(query)
	out := make([]Entry, len(hits))
	for i, h := range hits {
		out[i] = Entry{Key: h.Key, Dependents: h.Value}
	}
	return out
}
