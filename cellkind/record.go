// Package cellkind holds the kernel's cell-shaped data: the per-cell
// record, evaluation state, column metadata, and the ordered cell store
// keyed by coord.Position. Grounded on the teacher's shipDB.go (a map of
// mutable per-ship records with a parallel ordered index for iteration)
// generalized here to the kernel's sparse, position-keyed grid.
package cellkind

import "github.com/gridkernel/sheet/expr"

// State is a cell's place in the evaluation engine's single-queue
// lifecycle (spec §4.6).
type State int

const (
	// UpToDate cells have a Value consistent with their Expr and every
	// cell they (transitively) depend on.
	UpToDate State = iota
	// Dirty cells need recomputing but are not yet on the work queue.
	Dirty
	// Enqueued cells are on the work queue awaiting evaluation.
	Enqueued
	// Computing marks a cell whose Eval call is on the current call
	// stack; seeing this state again while resolving a reference is how
	// a cyclical reference is detected.
	Computing
)

func (s State) String() string {
	switch s {
	case UpToDate:
		return "up-to-date"
	case Dirty:
		return "dirty"
	case Enqueued:
		return "enqueued"
	case Computing:
		return "computing"
	default:
		return "unknown"
	}
}

// Record is everything the kernel stores for one non-empty cell: its
// expression, its most recently computed value, and its evaluation
// state. Expr is nil only transiently, never observable outside the
// kernel package.
type Record struct {
	Expr  expr.Tree
	Value expr.Value
	State State
}

// NewRecord returns a freshly inserted, not-yet-evaluated record for e.
func NewRecord(e expr.Tree) *Record {
	return &Record{Expr: e, Value: expr.NotEvaluableValue(), State: Dirty}
}
