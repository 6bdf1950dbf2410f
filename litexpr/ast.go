// Package litexpr is a small, self-contained implementation of
// expr.Tree: number and string literals, single-cell and range
// references, the four binary arithmetic operators, and one built-in,
// @sum(range). It exists to drive the kernel's end-to-end scenarios and
// the CLI demo; the kernel itself never imports it. Grounded on the
// teacher's nmeais sentence decoders: a flat, allocation-light
// representation built by splitting input text field by field rather
// than by pulling in a parser-generator or lexer library.
package litexpr

import "github.com/gridkernel/sheet/coord"

type kind int

const (
	kindNumber kind = iota
	kindString
	kindCellRef
	kindRangeRef
	kindAdd
	kindSub
	kindMul
	kindDiv
	kindSum
)

// node is one entry of the tree's immutable post-order array. Binary
// operators reference earlier entries by index through left/right; other
// nodes leave left/right at zero and never read them. A string literal carries a handle into the tree's pool
// rather than the string bytes themselves (spec §3's "out-of-line string
// literals... parallel map keyed by the same position").
type node struct {
	kind        kind
	num         float64
	handle      int
	pos         coord.Position
	rng         coord.Range
	left, right int
}

// Tree is an immutable expression built by Parse. Its nodes are laid out
// in post-order (every operand precedes the operator that consumes it);
// the last entry is the root. pool resolves string-literal handles for
// Eval; it is the same Pool Parse hands back to the caller, so a kernel
// that stores it in the cell's side string map and a Tree evaluating
// itself always agree on what a handle means.
type Tree struct {
	nodes []node
	pool  Pool
}

func (t *Tree) root() node { return t.nodes[len(t.nodes)-1] }
