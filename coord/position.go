// Package coord implements the 2-D position and range geometry the kernel
// indexes and evaluates over. See geo.Rectangle in the teacher for the
// shape this generalizes: fixed-precision coordinates instead of floats,
// and a fixed finite coordinate space instead of the globe.
package coord

import "fmt"

// MaxCoord is the largest legal value on either axis.
const MaxCoord = 65535

// Position is a cell's (column, row) pair.
type Position struct {
	X, Y uint16
}

// Hash is the total order key for a Position: row-major, so ascending hash
// order is ascending (y, then x) order.
func (p Position) Hash() uint32 {
	return uint32(p.Y)*(uint32(MaxCoord)+1) + uint32(p.X)
}

// Less reports whether p sorts before q under Hash order.
func (p Position) Less(q Position) bool {
	return p.Hash() < q.Hash()
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
