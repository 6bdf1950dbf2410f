// Package depindex specializes rtree.RTree into the two spatial indexes the
// kernel needs: a dependent-range index, whose value at each indexed range
// is the ordered sequence of ranges that depend on it, and a live-cell
// index, which just tracks which single-cell ranges currently have a cell.
//
// Both are thin wrappers grounded on how the teacher reused a single
// *RTree for more than one payload shape across storage/archive.go and
// storage/shipDB.go, generalized here into the shapes spec.md's dependent
// and live-cell indexes actually require.
package depindex
