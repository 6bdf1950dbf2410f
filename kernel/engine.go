package kernel

import (
	"github.com/gridkernel/sheet/cellkind"
	"github.com/gridkernel/sheet/coord"
	"github.com/gridkernel/sheet/expr"
)

// Update runs the dirty-mark-then-evaluate pass (spec §4.6) if the
// queue is non-empty; otherwise it is a no-op.
//
// The two phases share one FIFO queue: phase 1 seeds the transitive
// dirty set from whatever assignment/deletion enqueued, and phase 2
// drains the queue, with eval() itself enqueueing newly-dirty direct
// dependents as it goes. Phase 1 uses a traversal-local visited set
// rather than overloading cell state to stop recursion, so that a
// trigger position which is also reachable as someone else's dependent
// still gets its own dependents discovered exactly once.
func (s *Sheet) Update() {
	if len(s.queue) == 0 {
		return
	}
	triggers := append([]coord.Position(nil), s.queue...)
	visited := make(map[coord.Position]bool, len(triggers))
	for _, pos := range triggers {
		s.markDirty(pos, visited)
	}
	for len(s.queue) > 0 {
		pos := s.queue[0]
		s.queue = s.queue[1:]
		s.eval(pos)
	}
	s.hasChanges = false
}

func (s *Sheet) markDirty(pos coord.Position, visited map[coord.Position]bool) {
	if visited[pos] {
		return
	}
	visited[pos] = true
	if rec, ok := s.store.Get(pos); ok && rec.State == cellkind.UpToDate {
		rec.State = cellkind.Dirty
	}
	s.forEachDirectDependent(pos, func(dep coord.Position) {
		s.markDirty(dep, visited)
	})
}

// forEachDirectDependent calls fn for every live position whose
// expression directly references pos (spec §4.6: dep_index.search over
// Range(pos,pos), filtered through the live-cell index). A position that
// references pos through several ranges is passed to fn once per range.
func (s *Sheet) forEachDirectDependent(pos coord.Position, fn func(coord.Position)) {
	for _, e := range s.deps.Search(coord.Cell(pos)) {
		for _, dependentRange := range e.Dependents {
			for _, livePos := range s.live.Within(dependentRange) {
				fn(livePos)
			}
		}
	}
}

func (s *Sheet) enqueue(pos coord.Position) {
	if rec, ok := s.store.Get(pos); ok {
		// A Computing cell is on the eval stack and is brought up to date
		// when that call returns; its state is the cycle guard.
		if rec.State == cellkind.Enqueued || rec.State == cellkind.Computing {
			return
		}
		rec.State = cellkind.Enqueued
	}
	s.queue = append(s.queue, pos)
}

// eval implements spec §4.6's eval(pos): cache hit on up-to-date,
// cycle-guard on computing, otherwise compute and cache.
func (s *Sheet) eval(pos coord.Position) expr.Value {
	rec, ok := s.store.Get(pos)
	if !ok {
		s.forEachDirectDependent(pos, s.enqueue)
		return expr.NotEvaluableValue()
	}
	switch rec.State {
	case cellkind.UpToDate:
		return rec.Value
	case cellkind.Computing:
		return expr.ErrorValue(expr.CyclicalReference)
	}

	rec.State = cellkind.Computing
	v := rec.Expr.Eval(sheetContext{s})
	rec.Value = v
	rec.State = cellkind.UpToDate

	s.forEachDirectDependent(pos, func(dep coord.Position) {
		if depRec, ok := s.store.Get(dep); ok && depRec.State == cellkind.Dirty {
			s.enqueue(dep)
		}
	})
	return v
}

// sheetContext adapts Sheet.eval into expr.EvalContext without exposing
// eval itself on Sheet's public surface.
type sheetContext struct{ s *Sheet }

func (c sheetContext) Resolve(pos coord.Position) expr.Value { return c.s.eval(pos) }
