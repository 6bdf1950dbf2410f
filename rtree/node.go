package rtree

import "github.com/gridkernel/sheet/coord"

// recalculateMBR returns the smallest Range enclosing all of n's entries.
func (n *node[V]) recalculateMBR() coord.Range {
	mbr := n.entries[0].mbr
	for _, e := range n.entries[1:] {
		mbr = mbr.Merge(e.mbr)
	}
	return mbr
}

// parentEntryIndex returns the index of the entry in n.parent.entries whose
// child pointer is n. Panics if n has no parent or isn't found, both of
// which indicate a broken invariant rather than a recoverable condition.
func (n *node[V]) parentEntryIndex() int {
	for i, e := range n.parent.entries {
		if e.child == n {
			return i
		}
	}
	panic("rtree: node not found among its parent's entries")
}

// RangeSearch returns every (key, value) entry whose key intersects query.
// The order of results is unspecified.
func (t *RTree[V]) RangeSearch(query coord.Range) []Entry[V] {
	var out []Entry[V]
	t.root.search(query, &out)
	return out
}

func (n *node[V]) search(query coord.Range, out *[]Entry[V]) {
	if n.isLeaf() {
		for _, e := range n.entries {
			if e.mbr.Intersects(query) {
				*out = append(*out, Entry[V]{Key: e.mbr, Value: e.value})
			}
		}
		return
	}
	for _, e := range n.entries {
		if e.mbr.Intersects(query) {
			e.child.search(query, out)
		}
	}
}

// LookupExact returns the value stored under a leaf entry whose key equals
// key exactly, and whether one was found. If several leaf entries share the
// same key, an arbitrary one is returned.
func (t *RTree[V]) LookupExact(key coord.Range) (V, bool) {
	leaf, idx, ok := t.root.findExact(key, nil)
	if !ok {
		var zero V
		return zero, false
	}
	return leaf.entries[idx].value, true
}

// findExact descends only into children whose bounding range contains key
// (key can only live where its ancestors' bounding boxes say it could), and
// at the leaf linearly scans for an entry whose key equals key and, if
// match is non-nil, whose value satisfies match.
func (n *node[V]) findExact(key coord.Range, match func(V) bool) (*node[V], int, bool) {
	if n.isLeaf() {
		for i, e := range n.entries {
			if e.mbr.Equal(key) && (match == nil || match(e.value)) {
				return n, i, true
			}
		}
		return nil, 0, false
	}
	for _, e := range n.entries {
		if e.mbr.Contains(key) {
			if leaf, idx, ok := e.child.findExact(key, match); ok {
				return leaf, idx, true
			}
		}
	}
	return nil, 0, false
}

// Upsert locates the (at most one, by the dependent/live-index invariant)
// leaf entry with an exact key match. If found, its value is replaced by
// update(oldValue); otherwise insert() is called and the result inserted as
// a new entry under key. This implements the "put" operations of spec's
// dependent index (put appends to an existing sequence, or creates one).
func (t *RTree[V]) Upsert(key coord.Range, insert func() V, update func(old V) V) {
	leaf, idx, ok := t.root.findExact(key, nil)
	if ok {
		leaf.entries[idx].value = update(leaf.entries[idx].value)
		return
	}
	t.Insert(key, insert())
}
