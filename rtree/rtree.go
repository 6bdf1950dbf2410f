// Package rtree implements a generic R*-tree over
// coord.Range keys. It is a direct generalization of the teacher's
// <lat,long> R*-tree (originally specialized to zero-area Rectangles
// holding a boat's mmsi) to an arbitrary value type and a configurable
// fanout, so the same implementation can back both the dependent-range
// index (value = []coord.Range) and the live-cell index (value =
// struct{}).
package rtree

import (
	"math"
	"sort"

	"github.com/gridkernel/sheet/coord"
)

// DefaultMin and DefaultMax mirror the teacher's RTree_m / RTree_M
// (40% minimum fill is the commonly cited sweet spot for R*-trees).
const (
	DefaultMin = 4
	DefaultMax = 10
)

// Entry is one (key, value) pair as returned by RangeSearch.
type Entry[V any] struct {
	Key   coord.Range
	Value V
}

// entry is the internal node/leaf slot. mbr is the bounding range; child is
// set for internal entries, value for leaf entries; dist is scratch space
// used only during reInsert.
type entry[V any] struct {
	mbr   coord.Range
	child *node[V]
	value V
	dist  float64
}

type node[V any] struct {
	parent  *node[V]
	entries []entry[V]
	height  int // 0 == leaf; increases toward the root
}

func (n *node[V]) isLeaf() bool { return n.height == 0 }

// RTree is a generic R*-tree mapping coord.Range keys to values of type V.
// The zero value is not usable; construct with New or NewWithFanout.
type RTree[V any] struct {
	root   *node[V]
	min    int
	max    int
	length int

	// reinserting is true while condenseTree is re-homing entries orphaned
	// by an underflow; it selects the cheaper linear split instead of the
	// full R*-guided split for any overflow that happens along the way.
	reinserting bool
}

// New returns a tree using the default fanout (min=4, max=10).
func New[V any]() *RTree[V] {
	return NewWithFanout[V](DefaultMin, DefaultMax)
}

// NewWithFanout returns a tree with the given (min_children, max_children)
// bounds. max must be at least 2*min per spec's guided-split requirement.
func NewWithFanout[V any](min, max int) *RTree[V] {
	if min < 1 {
		min = 1
	}
	if max < 2*min {
		max = 2 * min
	}
	return &RTree[V]{
		min: min,
		max: max,
		root: &node[V]{
			entries: make([]entry[V], 0, max+1),
			height:  0,
		},
	}
}

// Len returns the number of leaf entries stored in the tree.
func (t *RTree[V]) Len() int { return t.length }

// Insert adds key -> value as a new leaf entry. Unlike the teacher's
// single-object-per-key tree, keys need not be unique: inserting twice with
// the same key produces two independent leaf entries.
func (t *RTree[V]) Insert(key coord.Range, value V) {
	t.insert(0, entry[V]{mbr: key, value: value}, true)
	t.length++
}

// insert places newEntry at the given height (0 == leaf), splitting and
// reinserting as needed. first distinguishes a fresh insertion from one
// re-entering via overflow treatment's forced reinsertion, matching the
// teacher's insert(height, newEntry, first).
func (t *RTree[V]) insert(height int, newEntry entry[V], first bool) {
	n := t.chooseSubtree(newEntry.mbr, height)
	if height >= 1 {
		newEntry.child.parent = n
	}
	n.entries = append(n.entries, newEntry)
	if len(n.entries) > t.max {
		didSplit, nn := t.overflowTreatment(n, first)
		if didSplit {
			if nn.height == t.root.height {
				newRoot := &node[V]{
					entries: make([]entry[V], 0, t.max+1),
					height:  t.root.height + 1,
				}
				newRoot.entries = append(newRoot.entries,
					entry[V]{mbr: n.recalculateMBR(), child: n},
					entry[V]{mbr: nn.recalculateMBR(), child: nn},
				)
				n.parent = newRoot
				nn.parent = newRoot
				t.root = newRoot
				return // the root carries no mbr of its own to adjust
			}
			t.insert(nn.height+1, entry[V]{mbr: nn.recalculateMBR(), child: nn}, true)
		}
	}
	// Adjust every ancestor's bounding range along the insertion path.
	for n.height < t.root.height {
		idx := n.parentEntryIndex()
		n.parent.entries[idx].mbr = n.recalculateMBR()
		n = n.parent
	}
}

// overflowTreatment handles an overflowing node: the first time a node at a
// given non-root height overflows during one top-level insert, its entries
// are partially reinserted instead of split (R*-tree's key difference from
// a plain R-tree). Every subsequent overflow at that height splits.
func (t *RTree[V]) overflowTreatment(n *node[V], first bool) (split bool, nn *node[V]) {
	if first && n.height < t.root.height {
		t.reInsert(n)
		return false, nil
	}
	if t.reinserting {
		return true, n.splitLinear(t.min)
	}
	return true, n.split(t.min)
}

// reInsert removes the farthest-from-center 30% of n's entries and
// reinserts them, giving the tree a chance to redistribute before paying
// for a split.
func (t *RTree[V]) reInsert(n *node[V]) {
	idx := n.parentEntryIndex()
	center := n.parent.entries[idx].mbr.Center()
	for i := range n.entries {
		n.entries[i].dist = distance(n.entries[i].mbr.Center(), center)
	}
	sort.Slice(n.entries, func(i, j int) bool { return n.entries[i].dist > n.entries[j].dist })

	p := (len(n.entries) * 3) / 10 // 30% performs best per the R*-tree paper
	if p == 0 {
		p = 1
	}
	removed := make([]entry[V], p)
	copy(removed, n.entries[:p])
	n.entries = n.entries[p:]
	n.parent.entries[idx].mbr = n.recalculateMBR()

	for k := len(removed) - 1; k >= 0; k-- {
		t.insert(n.height, removed[k], false)
	}
}

// distance is the Euclidean distance between two positions' integer
// coordinates, promoted to float64 (no wraparound at the coordinate-space
// edges is needed: the space is a flat finite grid, not a globe).
func distance(a, b coord.Position) float64 {
	dx := float64(int64(a.X) - int64(b.X))
	dy := float64(int64(a.Y) - int64(b.Y))
	return math.Sqrt(dx*dx + dy*dy)
}

// chooseSubtree descends from the root to the node at the requested height
// that newEntry's key should be inserted into. At the level directly above
// the leaves ("pointsToLeaves"), the child with minimum overlap enlargement
// wins (the R*-tree refinement over plain Guttman area-enlargement), with
// ties broken by area enlargement and then by smaller area; elsewhere
// plain area enlargement is used (ties by smaller area), exactly as the
// teacher's chooseSubtree does for <lat,long> rectangles.
func (t *RTree[V]) chooseSubtree(r coord.Range, height int) *node[V] {
	n := t.root
	for !n.isLeaf() && n.height > height {
		pointsToLeaves := n.height == 1
		best := 0
		var bestDiff float64
		if pointsToLeaves {
			bestDiff = overlapEnlargement(n.entries, 0, r)
		} else {
			bestDiff = n.entries[0].mbr.AreaDifference(n.entries[0].mbr.Merge(r))
		}
		for i := 1; i < len(n.entries); i++ {
			e := n.entries[i]
			if pointsToLeaves {
				diff := overlapEnlargement(n.entries, i, r)
				if diff < bestDiff {
					bestDiff, best = diff, i
				} else if diff == bestDiff {
					newArea := e.mbr.Merge(r).AreaDifference(e.mbr)
					oldArea := n.entries[best].mbr.Merge(r).AreaDifference(n.entries[best].mbr)
					if newArea < oldArea ||
						(newArea == oldArea && e.mbr.Area() < n.entries[best].mbr.Area()) {
						bestDiff, best = diff, i
					}
				}
			} else {
				diff := e.mbr.AreaDifference(e.mbr.Merge(r))
				if diff < bestDiff ||
					(diff == bestDiff && e.mbr.Area() < n.entries[best].mbr.Area()) {
					bestDiff, best = diff, i
				}
			}
		}
		n = n.entries[best].child
	}
	return n
}

// overlapEnlargement returns how much candidate entries[i]'s bounding range
// would grow to overlap with its siblings if it were enlarged to include r.
func overlapEnlargement[V any](entries []entry[V], i int, r coord.Range) float64 {
	candidate := entries[i]
	enlarged := candidate.mbr.Merge(r)
	var before, after float64
	for j, e := range entries {
		if j == i {
			continue
		}
		before += candidate.mbr.OverlapArea(e.mbr)
		after += enlarged.OverlapArea(e.mbr)
	}
	return after - before
}
