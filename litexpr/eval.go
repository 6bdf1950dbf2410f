package litexpr

import (
	"github.com/gridkernel/sheet/coord"
	"github.com/gridkernel/sheet/expr"
)

// Ranges returns every cell and range reference in the tree (including
// the range an @sum reads), in the order they appear in the post-order
// array. A bare cell reference reports Range(pos, pos), matching spec §4.4.
func (t *Tree) Ranges() []coord.Range {
	var out []coord.Range
	for _, n := range t.nodes {
		switch n.kind {
		case kindCellRef:
			out = append(out, coord.Cell(n.pos))
		case kindRangeRef, kindSum:
			out = append(out, n.rng)
		}
	}
	return out
}

// Eval evaluates the tree against ctx, resolving cell and range
// references through ctx.Resolve.
func (t *Tree) Eval(ctx expr.EvalContext) expr.Value {
	return t.eval(len(t.nodes)-1, ctx)
}

func (t *Tree) eval(i int, ctx expr.EvalContext) expr.Value {
	n := t.nodes[i]
	switch n.kind {
	case kindNumber:
		return expr.NumberValue(n.num)
	case kindString:
		s, _ := t.pool.String(n.handle)
		return expr.StringValue(s)
	case kindCellRef:
		return ctx.Resolve(n.pos)
	case kindRangeRef:
		// A bare range reference outside @sum has no well-defined scalar
		// value; treat it as a type mismatch rather than panicking.
		return expr.ErrorValue(expr.TypeMismatch)
	case kindSum:
		return t.evalSum(n.rng, ctx)
	case kindAdd, kindSub, kindMul, kindDiv:
		left := t.eval(n.left, ctx)
		right := t.eval(n.right, ctx)
		return applyBinary(n.kind, left, right)
	default:
		return expr.ErrorValue(expr.NotEvaluable)
	}
}

func (t *Tree) evalSum(rng coord.Range, ctx expr.EvalContext) expr.Value {
	var total float64
	ok := true
	rng.Positions(func(p coord.Position) bool {
		v := ctx.Resolve(p)
		switch v.Kind {
		case expr.KindNumber:
			total += v.Number
		case expr.KindError:
			if v.Err == expr.NotEvaluable {
				// Empty cells resolve as NotEvaluable; skip them rather
				// than poisoning the sum.
				return true
			}
			ok = false
			return false
		case expr.KindString:
			ok = false
			return false
		}
		return true
	})
	if !ok {
		return expr.ErrorValue(expr.TypeMismatch)
	}
	return expr.NumberValue(total)
}

func applyBinary(k kind, left, right expr.Value) expr.Value {
	if left.IsError() {
		return left
	}
	if right.IsError() {
		return right
	}
	if left.Kind != expr.KindNumber || right.Kind != expr.KindNumber {
		return expr.ErrorValue(expr.TypeMismatch)
	}
	switch k {
	case kindAdd:
		return expr.NumberValue(left.Number + right.Number)
	case kindSub:
		return expr.NumberValue(left.Number - right.Number)
	case kindMul:
		return expr.NumberValue(left.Number * right.Number)
	case kindDiv:
		if right.Number == 0 {
			return expr.ErrorValue(expr.DivisionByZero)
		}
		return expr.NumberValue(left.Number / right.Number)
	default:
		return expr.ErrorValue(expr.NotEvaluable)
	}
}
