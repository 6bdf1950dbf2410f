package rtree

import (
	"sort"

	"github.com/gridkernel/sheet/coord"
)

// split partitions an overflowing node (len(entries) == max+1) into two
// groups using the R*-tree guided split: choose the axis whose candidate
// distributions have the smallest summed margin, then within that axis
// choose the distribution with least overlap (ties broken by least total
// area). This is a direct generalization of the teacher's split/
// chooseSplitAxis, which did the same thing over <lat,long> rectangles.
//
// The returned node gets a freshly allocated entries slice (the "new
// half"); n keeps the other half in its existing backing array, per the
// object-pool note in the design notes: split never allocates for the
// in-place half when it doesn't have to.
func (n *node[V]) split(min int) *node[V] {
	splitIndex := n.chooseSplitAxis(min)

	tailLen := len(n.entries) - splitIndex
	nn := &node[V]{
		parent:  n.parent,
		height:  n.height,
		entries: make([]entry[V], tailLen),
	}
	copy(nn.entries, n.entries[splitIndex:])
	for i := range nn.entries {
		if nn.entries[i].child != nil {
			nn.entries[i].child.parent = nn
		}
	}
	n.entries = n.entries[:splitIndex]
	return nn
}

// chooseSplitAxis sorts n.entries into the winning axis order (by minimum
// summed margin across its candidate distributions) and returns the index
// at which to split them into two groups.
func (n *node[V]) chooseSplitAxis(min int) int {
	byX := make([]entry[V], len(n.entries))
	copy(byX, n.entries)
	sort.Slice(byX, func(i, j int) bool { return lessX(byX[i], byX[j]) })
	sort.Slice(n.entries, func(i, j int) bool { return lessY(n.entries[i], n.entries[j]) }) // n.entries now sorted by Y

	d := len(n.entries) - 2*min + 2 // number of candidate distributions per axis
	if d < 1 {
		d = 1
	}

	marginSumX, bestKX, bestOverlapX, bestAreaX := 0.0, 0, -1.0, -1.0
	marginSumY, bestKY, bestOverlapY, bestAreaY := 0.0, 0, -1.0, -1.0

	for k := 1; k <= d; k++ {
		split := min - 1 + k

		mx1 := mbrOf(byX[:split])
		mx2 := mbrOf(byX[split:])
		marginSumX += mx1.Perimeter() + mx2.Perimeter()
		if o := mx1.OverlapArea(mx2); bestOverlapX < 0 || o < bestOverlapX {
			bestOverlapX, bestKX, bestAreaX = o, k, mx1.Area()+mx2.Area()
		} else if o == bestOverlapX {
			if a := mx1.Area() + mx2.Area(); a < bestAreaX {
				bestKX, bestAreaX = k, a
			}
		}

		my1 := mbrOf(n.entries[:split])
		my2 := mbrOf(n.entries[split:])
		marginSumY += my1.Perimeter() + my2.Perimeter()
		if o := my1.OverlapArea(my2); bestOverlapY < 0 || o < bestOverlapY {
			bestOverlapY, bestKY, bestAreaY = o, k, my1.Area()+my2.Area()
		} else if o == bestOverlapY {
			if a := my1.Area() + my2.Area(); a < bestAreaY {
				bestKY, bestAreaY = k, a
			}
		}
	}

	if marginSumX < marginSumY {
		copy(n.entries, byX)
		return min - 1 + bestKX
	}
	return min - 1 + bestKY
}

func lessX[V any](a, b entry[V]) bool {
	if a.mbr.TopLeft.X != b.mbr.TopLeft.X {
		return a.mbr.TopLeft.X < b.mbr.TopLeft.X
	}
	return a.mbr.BottomRight.X < b.mbr.BottomRight.X
}

func lessY[V any](a, b entry[V]) bool {
	if a.mbr.TopLeft.Y != b.mbr.TopLeft.Y {
		return a.mbr.TopLeft.Y < b.mbr.TopLeft.Y
	}
	return a.mbr.BottomRight.Y < b.mbr.BottomRight.Y
}

func mbrOf[V any](entries []entry[V]) coord.Range {
	mbr := entries[0].mbr
	for _, e := range entries[1:] {
		mbr = mbr.Merge(e.mbr)
	}
	return mbr
}

// splitLinear is the simpler, cheaper fallback split used only when
// reinserting entries orphaned by condenseTree (see the design notes' seed
// choice for the "linear fallback"): pick the two entries with the largest
// normalized separation along whichever axis has the larger such
// separation, seed the two groups with them, then assign every other entry
// to whichever group needs least enlargement.
func (n *node[V]) splitLinear(min int) *node[V] {
	i, j := n.pickSeeds()
	groupA := []entry[V]{n.entries[i]}
	groupB := []entry[V]{n.entries[j]}
	mbrA := n.entries[i].mbr
	mbrB := n.entries[j].mbr

	for idx, e := range n.entries {
		if idx == i || idx == j {
			continue
		}
		growA := mbrA.Merge(e.mbr).AreaDifference(mbrA)
		growB := mbrB.Merge(e.mbr).AreaDifference(mbrB)
		if growA < growB || (growA == growB && len(groupA) <= len(groupB)) {
			groupA = append(groupA, e)
			mbrA = mbrA.Merge(e.mbr)
		} else {
			groupB = append(groupB, e)
			mbrB = mbrB.Merge(e.mbr)
		}
	}
	// ensure both groups meet the minimum fill, shifting from the larger
	// group if one fell short (can happen with skewed enlargement costs).
	for len(groupA) < min && len(groupB) > min {
		groupA = append(groupA, groupB[len(groupB)-1])
		groupB = groupB[:len(groupB)-1]
	}
	for len(groupB) < min && len(groupA) > min {
		groupB = append(groupB, groupA[len(groupA)-1])
		groupA = groupA[:len(groupA)-1]
	}

	nn := &node[V]{parent: n.parent, height: n.height, entries: groupB}
	for i := range nn.entries {
		if nn.entries[i].child != nil {
			nn.entries[i].child.parent = nn
		}
	}
	n.entries = groupA
	return nn
}

// pickSeeds implements the normalized-separation seed choice: for each
// axis, find the pair of entries with the largest gap between one's
// highest edge and the other's lowest edge, normalize by the axis's total
// span, and use whichever axis produced the larger normalized separation.
func (n *node[V]) pickSeeds() (int, int) {
	bestAxisSep := -1.0
	seedA, seedB := 0, 1

	tryAxis := func(lo func(entry[V]) float64, hi func(entry[V]) float64) {
		minLo, maxHi := lo(n.entries[0]), hi(n.entries[0])
		highestLoIdx, lowestHiIdx := 0, 0
		highestLo, lowestHi := lo(n.entries[0]), hi(n.entries[0])
		for i, e := range n.entries {
			if lo(e) < minLo {
				minLo = lo(e)
			}
			if hi(e) > maxHi {
				maxHi = hi(e)
			}
			if lo(e) > highestLo {
				highestLo, highestLoIdx = lo(e), i
			}
			if hi(e) < lowestHi {
				lowestHi, lowestHiIdx = hi(e), i
			}
		}
		span := maxHi - minLo
		if span <= 0 {
			span = 1
		}
		sep := (highestLo - lowestHi) / span
		if highestLoIdx != lowestHiIdx && sep > bestAxisSep {
			bestAxisSep = sep
			seedA, seedB = lowestHiIdx, highestLoIdx
		}
	}
	tryAxis(
		func(e entry[V]) float64 { return float64(e.mbr.TopLeft.X) },
		func(e entry[V]) float64 { return float64(e.mbr.BottomRight.X) },
	)
	tryAxis(
		func(e entry[V]) float64 { return float64(e.mbr.TopLeft.Y) },
		func(e entry[V]) float64 { return float64(e.mbr.BottomRight.Y) },
	)
	if seedA == seedB {
		seedB = (seedA + 1) % len(n.entries)
	}
	return seedA, seedB
}
