package coord

// Range is an axis-aligned rectangle over the position space, inclusive on
// both ends: [TopLeft.X, BottomRight.X] x [TopLeft.Y, BottomRight.Y].
// Invariant: TopLeft.X <= BottomRight.X && TopLeft.Y <= BottomRight.Y.
type Range struct {
	TopLeft     Position
	BottomRight Position
}

// NewRange builds the Range spanning a and b, ordering the corners so the
// invariant holds regardless of the order a and b were given in.
func NewRange(a, b Position) Range {
	r := Range{TopLeft: a, BottomRight: b}
	if r.TopLeft.X > r.BottomRight.X {
		r.TopLeft.X, r.BottomRight.X = r.BottomRight.X, r.TopLeft.X
	}
	if r.TopLeft.Y > r.BottomRight.Y {
		r.TopLeft.Y, r.BottomRight.Y = r.BottomRight.Y, r.TopLeft.Y
	}
	return r
}

// Cell returns the single-cell range for pos, i.e. Range(pos, pos).
func Cell(pos Position) Range {
	return Range{TopLeft: pos, BottomRight: pos}
}

// Intersects reports whether a and b share at least one position.
// Rectangles that only touch at an edge or corner do intersect.
func (a Range) Intersects(b Range) bool {
	return a.TopLeft.X <= b.BottomRight.X && b.TopLeft.X <= a.BottomRight.X &&
		a.TopLeft.Y <= b.BottomRight.Y && b.TopLeft.Y <= a.BottomRight.Y
}

// Contains reports whether a fully encloses b.
func (a Range) Contains(b Range) bool {
	return a.TopLeft.X <= b.TopLeft.X && a.TopLeft.Y <= b.TopLeft.Y &&
		a.BottomRight.X >= b.BottomRight.X && a.BottomRight.Y >= b.BottomRight.Y
}

// ContainsPosition reports whether p lies within a.
func (a Range) ContainsPosition(p Position) bool {
	return p.X >= a.TopLeft.X && p.X <= a.BottomRight.X &&
		p.Y >= a.TopLeft.Y && p.Y <= a.BottomRight.Y
}

// width and height as inclusive counts of positions along each axis.
func (a Range) width() int64  { return int64(a.BottomRight.X) - int64(a.TopLeft.X) + 1 }
func (a Range) height() int64 { return int64(a.BottomRight.Y) - int64(a.TopLeft.Y) + 1 }

// Area returns the number of positions contained in the range.
func (a Range) Area() float64 {
	return float64(a.width()) * float64(a.height())
}

// Perimeter returns twice the sum of the range's side lengths, used as the
// R*-tree split "margin" heuristic.
func (a Range) Perimeter() float64 {
	return 2 * (float64(a.width()) + float64(a.height()))
}

// Merge returns the smallest Range enclosing both a and b.
func (a Range) Merge(b Range) Range {
	if a.Contains(b) {
		return a
	}
	if b.Contains(a) {
		return b
	}
	m := Range{
		TopLeft: Position{
			X: min16(a.TopLeft.X, b.TopLeft.X),
			Y: min16(a.TopLeft.Y, b.TopLeft.Y),
		},
		BottomRight: Position{
			X: max16(a.BottomRight.X, b.BottomRight.X),
			Y: max16(a.BottomRight.Y, b.BottomRight.Y),
		},
	}
	return m
}

// OverlapArea returns the area of the intersection of a and b, or 0 if they
// don't intersect.
func (a Range) OverlapArea(b Range) float64 {
	if !a.Intersects(b) {
		return 0
	}
	left := max16(a.TopLeft.X, b.TopLeft.X)
	right := min16(a.BottomRight.X, b.BottomRight.X)
	top := max16(a.TopLeft.Y, b.TopLeft.Y)
	bottom := min16(a.BottomRight.Y, b.BottomRight.Y)
	o := Range{TopLeft: Position{left, top}, BottomRight: Position{right, bottom}}
	return o.Area()
}

// AreaDifference returns the absolute difference in area between a and b.
func (a Range) AreaDifference(b Range) float64 {
	d := a.Area() - b.Area()
	if d < 0 {
		return -d
	}
	return d
}

// Center returns the range's middle position. Along an axis with an even
// number of positions it is the upper of the two middle positions.
func (a Range) Center() Position {
	return Position{
		X: a.TopLeft.X + uint16(a.width()/2),
		Y: a.TopLeft.Y + uint16(a.height()/2),
	}
}

// Positions lazily iterates every position contained in a, in row-major
// order, invoking yield for each. Iteration stops early if yield returns
// false.
func (a Range) Positions(yield func(Position) bool) {
	for y := a.TopLeft.Y; ; y++ {
		for x := a.TopLeft.X; ; x++ {
			if !yield(Position{X: x, Y: y}) {
				return
			}
			if x == a.BottomRight.X {
				break
			}
		}
		if y == a.BottomRight.Y {
			break
		}
	}
}

// Equal reports whether a and b denote the same rectangle.
func (a Range) Equal(b Range) bool {
	return a.TopLeft == b.TopLeft && a.BottomRight == b.BottomRight
}

func min16(a, b uint16) uint16 {
	if a < b {
		return a
	}
	return b
}

func max16(a, b uint16) uint16 {
	if a > b {
		return a
	}
	return b
}
