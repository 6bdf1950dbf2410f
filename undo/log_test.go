package undo

import (
	"testing"

	"github.com/gridkernel/sheet/litexpr"
)

func TestArenaPutTakeRecyclesHandles(t *testing.T) {
	a := NewArena()
	tree, pool, err := litexpr.Parse(`1+1+"x"`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	h := a.Put(tree, pool)
	if h == 0 {
		t.Fatal("Put should never return the zero handle")
	}
	gotTree, gotPool, ok := a.Take(h)
	if !ok || gotTree != tree {
		t.Fatal("Take did not return the archived tree")
	}
	if len(gotPool.(litexpr.Pool)) != 1 || gotPool.(litexpr.Pool)[0] != "x" {
		t.Fatalf("Take did not return the archived string pool, got %v", gotPool)
	}
	if _, _, ok := a.Take(h); ok {
		t.Fatal("second Take of the same handle should fail")
	}
	h2 := a.Put(tree, pool)
	if h2 != h {
		t.Fatalf("expected the freed handle %d to be recycled, got %d", h, h2)
	}
}

func TestPushEndGroupAndPopGroup(t *testing.T) {
	l := NewLog()
	l.Push(Entry{Kind: SetCell, Pos: Pos{0, 0}}, TargetUndo, true)
	l.Push(Entry{Kind: SetCell, Pos: Pos{0, 1}}, TargetUndo, true)
	l.EndGroup(TargetUndo)

	if !l.EndsWithGroupMarker(TargetUndo) {
		t.Fatal("log should end with a group marker after EndGroup")
	}

	popped, ok := l.PopGroup(TargetUndo)
	if !ok {
		t.Fatal("PopGroup should find a group to pop")
	}
	if len(popped) != 2 {
		t.Fatalf("expected 2 entries in the group, got %d", len(popped))
	}
	if popped[0].Pos != (Pos{0, 1}) || popped[1].Pos != (Pos{0, 0}) {
		t.Fatalf("expected pop order to be last-pushed-first, got %+v", popped)
	}
	if l.UndoLen() != 0 {
		t.Fatalf("undo log should be empty after popping its only group, has %d entries", l.UndoLen())
	}
}

func TestPopGroupStopsAtEarlierGroupBoundary(t *testing.T) {
	l := NewLog()
	l.Push(Entry{Kind: SetCell, Pos: Pos{0, 0}}, TargetUndo, true)
	l.EndGroup(TargetUndo)
	l.Push(Entry{Kind: SetCell, Pos: Pos{1, 0}}, TargetUndo, true)
	l.EndGroup(TargetUndo)

	popped, ok := l.PopGroup(TargetUndo)
	if !ok || len(popped) != 1 || popped[0].Pos != (Pos{1, 0}) {
		t.Fatalf("expected only the most recent group to pop, got %+v", popped)
	}
	if l.UndoLen() != 1 {
		t.Fatalf("one earlier group should remain, UndoLen() = %d", l.UndoLen())
	}
	if !l.EndsWithGroupMarker(TargetUndo) {
		t.Fatal("remaining group should still end with its own marker")
	}
}

func TestPushWithClearRedosDropsRedoLog(t *testing.T) {
	l := NewLog()
	l.Push(Entry{Kind: DeleteCell, Pos: Pos{2, 2}}, TargetRedo, false)
	l.EndGroup(TargetRedo)
	if l.RedoLen() != 1 {
		t.Fatalf("RedoLen() = %d, want 1", l.RedoLen())
	}
	l.Push(Entry{Kind: SetCell, Pos: Pos{0, 0}}, TargetUndo, true)
	if l.RedoLen() != 0 {
		t.Fatalf("redo log should have been cleared, RedoLen() = %d", l.RedoLen())
	}
}

func TestEmptyLogEndsWithGroupMarkerVacuously(t *testing.T) {
	l := NewLog()
	if !l.EndsWithGroupMarker(TargetUndo) || !l.EndsWithGroupMarker(TargetRedo) {
		t.Fatal("an empty log satisfies the group-terminator invariant vacuously")
	}
}
