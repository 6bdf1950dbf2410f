package rtree

import "github.com/gridkernel/sheet/coord"

// Remove locates a leaf entry whose key equals key exactly and whose value
// satisfies match (match may be nil to accept any value), removes it, and
// condenses the tree. It reports whether an entry was removed.
//
// Ported from the teacher's delete/condenseTree, generalized: the teacher
// matched on (overlap, mmsi) because every leaf entry there was a
// zero-area rectangle; we match on (exact key, caller predicate) because a
// dependent-index entry's "value" is itself a slice the caller must be
// able to test a specific member against.
func (t *RTree[V]) Remove(key coord.Range, match func(V) bool) bool {
	leaf, idx, ok := t.root.findExact(key, match)
	if !ok {
		return false
	}
	leaf.entries = append(leaf.entries[:idx], leaf.entries[idx+1:]...)
	t.condenseTree(leaf)
	t.length--
	return true
}

// condenseTree walks from a modified leaf up to the root, eliminating any
// node that fell below the minimum fill (collecting its remaining entries
// to reinsert) and otherwise tightening bounding ranges, exactly as
// Guttman's CT1-CT6 / the teacher's condenseTree.
func (t *RTree[V]) condenseTree(n *node[V]) {
	var orphans []entry[V]
	for n != t.root {
		p := n.parent
		idx := n.parentEntryIndex()
		if len(n.entries) < t.min {
			p.entries = append(p.entries[:idx], p.entries[idx+1:]...)
			orphans = append(orphans, n.entries...)
		} else {
			p.entries[idx].mbr = n.recalculateMBR()
		}
		n = p
	}

	if len(orphans) > 0 {
		t.reinserting = true
		for _, e := range orphans {
			if e.child != nil {
				t.insert(e.child.height+1, entry[V]{mbr: e.child.recalculateMBR(), child: e.child}, true)
			} else {
				t.insert(0, e, true)
			}
		}
		t.reinserting = false
	}

	// Root under-merging (spec design notes): when the root's only child
	// carries the whole remaining subtree, promote it so the tree doesn't
	// keep an empty level around. See DESIGN.md for why this resolves the
	// "open question" left by the spec rather than leaving the looseness.
	for !t.root.isLeaf() && len(t.root.entries) == 1 {
		t.root = t.root.entries[0].child
		t.root.parent = nil
	}
}
