package depindex

import (
	"testing"

	"github.com/gridkernel/sheet/coord"
)

func cell(x, y int) coord.Position { return coord.Position{X: uint16(x), Y: uint16(y)} }

func TestDependentIndexPutAppends(t *testing.T) {
	d := NewDependentIndex()
	key := coord.NewRange(cell(0, 0), cell(4, 0))
	d.Put(key, coord.Cell(cell(5, 0)))
	d.Put(key, coord.Cell(cell(6, 0)))

	hits := d.Search(key)
	if len(hits) != 1 {
		t.Fatalf("expected a single indexed key, got %d", len(hits))
	}
	if len(hits[0].Dependents) != 2 {
		t.Fatalf("expected 2 dependents, got %d: %v", len(hits[0].Dependents), hits[0].Dependents)
	}
}

func TestDependentIndexRemoveValueGCsEmptyEntry(t *testing.T) {
	d := NewDependentIndex()
	key := coord.NewRange(cell(0, 0), cell(4, 0))
	dep := coord.Cell(cell(5, 0))
	d.Put(key, dep)

	if !d.RemoveValue(key, dep) {
		t.Fatal("RemoveValue should have found the dependent")
	}
	if hits := d.Search(key); len(hits) != 0 {
		t.Fatalf("expected the now-empty entry to be garbage collected, got %v", hits)
	}
	if d.RemoveValue(key, dep) {
		t.Fatal("RemoveValue on an already-removed dependent should report false")
	}
}

func TestDependentIndexSearchFindsOverlappingKeys(t *testing.T) {
	d := NewDependentIndex()
	rangeA := coord.NewRange(cell(0, 0), cell(4, 4))
	rangeB := coord.NewRange(cell(10, 10), cell(12, 12))
	d.Put(rangeA, coord.Cell(cell(0, 5)))
	d.Put(rangeB, coord.Cell(cell(10, 13)))

	hits := d.Search(coord.NewRange(cell(2, 2), cell(11, 11)))
	if len(hits) != 2 {
		t.Fatalf("expected both ranges to be found, got %d", len(hits))
	}
}

func TestLiveIndexMirrorsMembership(t *testing.T) {
	l := NewLiveIndex()
	a, b := cell(1, 1), cell(2, 2)
	l.Insert(a)
	l.Insert(b)
	if !l.Has(a) || !l.Has(b) {
		t.Fatal("expected both positions to be live")
	}
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
	if !l.Remove(a) {
		t.Fatal("Remove should report true for a live position")
	}
	if l.Has(a) {
		t.Fatal("a should no longer be live")
	}
	if l.Remove(a) {
		t.Fatal("second Remove of the same position should report false")
	}
}

func TestLiveIndexWithinConstrainsTraversal(t *testing.T) {
	l := NewLiveIndex()
	l.Insert(cell(0, 0))
	l.Insert(cell(100, 100))
	within := l.Within(coord.NewRange(cell(0, 0), cell(5, 5)))
	if len(within) != 1 || within[0] != cell(0, 0) {
		t.Fatalf("Within returned %v, want [(0,0)]", within)
	}
}
