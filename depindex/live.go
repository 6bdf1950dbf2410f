package depindex

import (
	"github.com/gridkernel/sheet/coord"
	"github.com/gridkernel/sheet/rtree"
)

// LiveIndex mirrors the set of positions that currently hold a cell. It
// lets dependency propagation skip empty cells cheaply even when an
// expression references a huge, mostly-empty range.
type LiveIndex struct {
	tree *rtree.RTree[struct{}]
}

// NewLiveIndex returns an empty live-cell index.
func NewLiveIndex() *LiveIndex {
	return &LiveIndex{tree: rtree.New[struct{}]()}
}

// Insert records that pos now holds a cell.
func (l *LiveIndex) Insert(pos coord.Position) {
	l.tree.Insert(coord.Cell(pos), struct{}{})
}

// Remove records that pos no longer holds a cell. Reports whether pos was
// present.
func (l *LiveIndex) Remove(pos coord.Position) bool {
	return l.tree.Remove(coord.Cell(pos), nil)
}

// Has reports whether pos currently holds a cell.
func (l *LiveIndex) Has(pos coord.Position) bool {
	_, ok := l.tree.LookupExact(coord.Cell(pos))
	return ok
}

// Len returns the number of live positions.
func (l *LiveIndex) Len() int { return l.tree.Len() }

// Within returns every live position contained in query.
func (l *LiveIndex) Within(query coord.Range) []coord.Position {
	hits := l.tree.RangeSearch(query)
	out := make([]coord.Position, len(hits))
	for i, h := range hits {
		out[i] = h.Key.TopLeft
	}
	return out
}
