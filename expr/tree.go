package expr

import (
	"io"

	"github.com/gridkernel/sheet/coord"
)

// StringPool resolves the out-of-line string handles a Tree's node array
// embeds in place of literal string bytes (spec §3, §4.4): a cell's
// string literals live in a parallel map keyed by the cell's position,
// not inline in the expression tree, so Print needs one to render a
// string literal back to source text. cellkind.Store's side map and
// litexpr.Pool (the grammar collaborator's own pool implementation) both
// satisfy this.
type StringPool interface {
	String(handle int) (string, bool)
}

// EvalContext is everything a Tree needs from its host sheet to evaluate:
// the current value of any other cell it references. Implementations are
// expected to detect and report cycles themselves (spec §4.6). A Tree may
// call Resolve more than once for the same position within one Eval
// (litexpr resolves each reference separately).
type EvalContext interface {
	Resolve(pos coord.Position) Value
}

// Tree is an immutable, evaluable expression. A cell's Record holds one;
// litexpr.Parse is the only constructor in this module, but the interface
// is kept opaque so the kernel and undo log never depend on a concrete
// grammar.
type Tree interface {
	// Ranges returns every range the tree reads from, in the order a
	// dependent-index registration should use. A bare cell reference
	// reports itself as a single-cell range (spec §4.2).
	Ranges() []coord.Range

	// Eval computes the tree's value against ctx. It must not panic on
	// malformed input; errors are reported through Value's error kinds.
	Eval(ctx EvalContext) Value

	// Print writes the tree back out as parseable source text, resolving
	// any string literal handles through pool.
	Print(w io.Writer, pool StringPool) error
}
