package kernel

import "github.com/gridkernel/sheet/undo"

// EndUndoGroup marks the most recent undo entries, back to the last
// group boundary (or the start of the log), as one atomic user action.
// Every public mutation leaves the undo log un-terminated; callers that
// bundle several Sheet calls into one logical action call this once at
// the end (spec §6's separate "end_undo_group" front-end call).
func (s *Sheet) EndUndoGroup() {
	s.log.EndGroup(undo.TargetUndo)
}

// Undo pops and inverts the most recent undo group, if any, pushing the
// symmetric entries onto the redo log as one group.
func (s *Sheet) Undo() error {
	entries, ok := s.log.PopGroup(undo.TargetUndo)
	if !ok {
		return nil
	}
	for _, e := range entries {
		if err := s.applyInverse(e, undo.TargetRedo, false); err != nil {
			return err
		}
	}
	s.log.EndGroup(undo.TargetRedo)
	return nil
}

// Redo is the mirror of Undo: it replays the most recent redo group
// back onto the undo log.
func (s *Sheet) Redo() error {
	entries, ok := s.log.PopGroup(undo.TargetRedo)
	if !ok {
		return nil
	}
	for _, e := range entries {
		if err := s.applyInverse(e, undo.TargetUndo, false); err != nil {
			return err
		}
	}
	s.log.EndGroup(undo.TargetUndo)
	return nil
}

// applyInverse executes entry's inverse, emitting the symmetric entry
// onto target (spec §4.7 "Inversion semantics per entry kind").
func (s *Sheet) applyInverse(e undo.Entry, target undo.Target, clearRedos bool) error {
	pos := fromUndoPos(e.Pos)
	switch e.Kind {
	case undo.SetCell:
		tree, pool, ok := s.log.Arena().Take(e.Handle)
		if !ok {
			return nil
		}
		return s.insert(pos, tree, pool, target, clearRedos)
	case undo.DeleteCell:
		return s.delete(pos, target, clearRedos)
	case undo.SetColumnWidth:
		return s.setWidth(e.Col, e.Old, target, clearRedos)
	case undo.SetColumnPrecision:
		return s.setPrecision(e.Col, e.Old, target, clearRedos)
	default:
		return nil
	}
}
