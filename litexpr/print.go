package litexpr

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gridkernel/sheet/coord"
	"github.com/gridkernel/sheet/expr"
)

// Print writes t back out as parseable source text, resolving string
// literals through pool (spec §4.4's "print back into a writer with an
// accompanying string pool"). A nil pool falls back to t's own pool, the
// one Parse returned alongside t, so a caller that only has the Tree
// (e.g. a test building one directly) still gets correct output.
func (t *Tree) Print(w io.Writer, pool expr.StringPool) error {
	if pool == nil {
		pool = t.pool
	}
	_, err := io.WriteString(w, t.sprint(len(t.nodes)-1, pool))
	return err
}

func (t *Tree) sprint(i int, pool expr.StringPool) string {
	n := t.nodes[i]
	switch n.kind {
	case kindNumber:
		return strconv.FormatFloat(n.num, 'g', -1, 64)
	case kindString:
		s, _ := pool.String(n.handle)
		return strconv.Quote(s)
	case kindCellRef:
		return coord.FormatAddress(n.pos)
	case kindRangeRef:
		return coord.FormatAddress(n.rng.TopLeft) + ":" + coord.FormatAddress(n.rng.BottomRight)
	case kindSum:
		return "@sum(" + coord.FormatAddress(n.rng.TopLeft) + ":" + coord.FormatAddress(n.rng.BottomRight) + ")"
	case kindAdd:
		return t.sprint(n.left, pool) + "+" + t.sprint(n.right, pool)
	case kindSub:
		return t.sprint(n.left, pool) + "-(" + t.sprint(n.right, pool) + ")"
	case kindMul:
		return "(" + t.sprint(n.left, pool) + ")*(" + t.sprint(n.right, pool) + ")"
	case kindDiv:
		return "(" + t.sprint(n.left, pool) + ")/(" + t.sprint(n.right, pool) + ")"
	default:
		return fmt.Sprintf("<?%d>", n.kind)
	}
}

var _ expr.Tree = (*Tree)(nil)
