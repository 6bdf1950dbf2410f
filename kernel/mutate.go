package kernel

import (
	"github.com/gridkernel/sheet/cellkind"
	"github.com/gridkernel/sheet/coord"
	"github.com/gridkernel/sheet/expr"
	"github.com/gridkernel/sheet/undo"
)

// Insert is the single assignment entry point (spec §4.5): it replaces
// whatever is at pos with tree, re-homing dependent-index registrations,
// installing pool as pos's out-of-line string storage, and pushing a
// symmetric undo entry. pool may be nil if tree references no string
// literals.
func (s *Sheet) Insert(pos coord.Position, tree expr.Tree, pool expr.StringPool) error {
	return s.insert(pos, tree, pool, undo.TargetUndo, true)
}

func (s *Sheet) insert(pos coord.Position, tree expr.Tree, pool expr.StringPool, target undo.Target, clearRedos bool) error {
	old, existed := s.store.Get(pos)
	newRanges := tree.Ranges()
	// spec §4.5 step 1: one undo entry, one group-end marker, one queued
	// position, one live-cell-index insertion, one cell-store entry, one
	// string-map entry, plus k dependent-index inserts.
	if err := s.alloc.Reserve(len(newRanges) + 6); err != nil {
		return ErrOutOfMemory
	}

	if !s.live.Has(pos) {
		s.live.Insert(pos)
	}
	for _, r := range newRanges {
		s.deps.Put(r, coord.Cell(pos))
	}

	if existed {
		for _, r := range old.Expr.Ranges() {
			s.deps.RemoveValue(r, coord.Cell(pos))
		}
		oldPool, _ := s.store.Strings(pos)
		handle := s.log.Arena().Put(old.Expr, oldPool)
		s.log.Push(undo.Entry{Kind: undo.SetCell, Pos: toUndoPos(pos), Handle: handle}, target, clearRedos)
	} else {
		s.log.Push(undo.Entry{Kind: undo.DeleteCell, Pos: toUndoPos(pos)}, target, clearRedos)
	}

	s.store.Set(pos, cellkind.NewRecord(tree))
	s.store.SetStrings(pos, pool)
	s.enqueue(pos)
	s.hasChanges = true
	return nil
}

// Delete removes the cell at pos, if any, archiving its expression and
// string pool in the undo arena so the deletion can be reversed.
func (s *Sheet) Delete(pos coord.Position) error {
	return s.delete(pos, undo.TargetUndo, true)
}

func (s *Sheet) delete(pos coord.Position, target undo.Target, clearRedos bool) error {
	rec, ok := s.store.Get(pos)
	if !ok {
		return nil
	}
	if err := s.alloc.Reserve(1); err != nil {
		return ErrOutOfMemory
	}

	pool, _ := s.store.Strings(pos)
	for _, r := range rec.Expr.Ranges() {
		s.deps.RemoveValue(r, coord.Cell(pos))
	}
	s.store.Delete(pos)
	s.live.Remove(pos)
	handle := s.log.Arena().Put(rec.Expr, pool)
	s.log.Push(undo.Entry{Kind: undo.SetCell, Pos: toUndoPos(pos), Handle: handle}, target, clearRedos)
	s.enqueue(pos)
	s.hasChanges = true
	return nil
}

// DeleteInRange deletes every live cell within r, in cell-store order,
// as a single undo group (spec §4.5): the front-end still needs to call
// EndUndoGroup once this returns.
func (s *Sheet) DeleteInRange(r coord.Range) error {
	positions := s.store.WithinRange(r)
	for i, pos := range positions {
		if err := s.delete(pos, undo.TargetUndo, i == 0); err != nil {
			return err
		}
	}
	return nil
}
