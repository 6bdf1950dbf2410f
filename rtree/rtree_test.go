package rtree

import (
	"math/rand"
	"testing"

	"github.com/gridkernel/sheet/coord"
)

func rect(x1, y1, x2, y2 int) coord.Range {
	return coord.NewRange(
		coord.Position{X: uint16(x1), Y: uint16(y1)},
		coord.Position{X: uint16(x2), Y: uint16(y2)},
	)
}

// TestSpatialQuery is scenario S6 from the spec: three inserted rectangles,
// one query rectangle, exactly two expected matches.
func TestSpatialQuery(t *testing.T) {
	tr := New[string]()
	tr.Insert(rect(1, 1, 3, 3), "X")
	tr.Insert(rect(5, 5, 10, 10), "Y")
	tr.Insert(rect(0, 0, 2, 2), "Z")

	got := map[string]bool{}
	for _, e := range tr.RangeSearch(rect(2, 2, 4, 4)) {
		got[e.Value] = true
	}
	want := map[string]bool{"X": true, "Z": true}
	if len(got) != len(want) {
		t.Fatalf("RangeSearch returned %v, want %v", got, want)
	}
	for k := range want {
		if !got[k] {
			t.Errorf("missing expected match %q", k)
		}
	}
	if got["Y"] {
		t.Errorf("unexpected match Y")
	}
}

func randCell(n int) coord.Position {
	return coord.Position{X: uint16(rand.Intn(n)), Y: uint16(rand.Intn(n))}
}

// TestInsertAndSearchExhaustive checks invariant 8 (range_search returns
// exactly the intersecting keys, no duplicates, no omissions) against a
// brute-force scan, across inserts and deletes.
func TestInsertAndSearchExhaustive(t *testing.T) {
	tr := New[int]()
	type stored struct {
		key coord.Range
		id  int
	}
	var all []stored

	const n = 400
	for i := 0; i < n; i++ {
		a, b := randCell(40), randCell(40)
		key := coord.NewRange(a, b)
		tr.Insert(key, i)
		all = append(all, stored{key, i})
	}

	queries := []coord.Range{
		rect(0, 0, 39, 39),
		rect(10, 10, 20, 20),
		rect(0, 0, 0, 0),
		rect(35, 0, 39, 5),
	}
	for _, q := range queries {
		want := map[int]bool{}
		for _, s := range all {
			if s.key.Intersects(q) {
				want[s.id] = true
			}
		}
		got := map[int]int{}
		for _, e := range tr.RangeSearch(q) {
			got[e.Value]++
		}
		for id := range want {
			if got[id] != 1 {
				t.Fatalf("query %v: id %d found %d times, want 1", q, id, got[id])
			}
		}
		for id, count := range got {
			if !want[id] {
				t.Fatalf("query %v: unexpected match id %d (count %d)", q, id, count)
			}
		}
	}

	// Remove half the entries and re-check.
	removed := map[int]bool{}
	for i, s := range all {
		if i%2 == 0 {
			if !tr.Remove(s.key, func(v int) bool { return v == s.id }) {
				t.Fatalf("failed to remove id %d", s.id)
			}
			removed[s.id] = true
		}
	}
	if tr.Len() != n-len(removed) {
		t.Fatalf("Len() = %d, want %d", tr.Len(), n-len(removed))
	}
	for _, q := range queries {
		want := map[int]bool{}
		for _, s := range all {
			if !removed[s.id] && s.key.Intersects(q) {
				want[s.id] = true
			}
		}
		got := map[int]bool{}
		for _, e := range tr.RangeSearch(q) {
			got[e.Value] = true
		}
		if len(got) != len(want) {
			t.Fatalf("post-removal query %v: got %d matches, want %d", q, len(got), len(want))
		}
	}
}

func TestRemoveNonexistentReturnsFalse(t *testing.T) {
	tr := New[int]()
	tr.Insert(rect(0, 0, 1, 1), 1)
	if tr.Remove(rect(5, 5, 6, 6), nil) {
		t.Fatal("Remove should have returned false for an absent key")
	}
	if !tr.Remove(rect(0, 0, 1, 1), nil) {
		t.Fatal("Remove should have found the existing key")
	}
	if tr.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", tr.Len())
	}
}

func TestUpsertAppendsAndCreates(t *testing.T) {
	tr := New[[]int]()
	key := rect(1, 1, 2, 2)
	tr.Upsert(key, func() []int { return []int{1} }, func(old []int) []int { return append(old, 1) })
	tr.Upsert(key, func() []int { return []int{2} }, func(old []int) []int { return append(old, 2) })

	v, ok := tr.LookupExact(key)
	if !ok {
		t.Fatal("expected key to be present")
	}
	if len(v) != 2 || v[0] != 1 || v[1] != 2 {
		t.Fatalf("got %v, want [1 2]", v)
	}
}

func TestLargeTreeStructuralInvariants(t *testing.T) {
	tr := NewWithFanout[int](2, 4)
	const n = 2000
	ids := make([]coord.Range, n)
	for i := 0; i < n; i++ {
		ids[i] = rect(i%100, i/100, i%100, i/100)
		tr.Insert(ids[i], i)
	}
	if tr.Len() != n {
		t.Fatalf("Len() = %d, want %d", tr.Len(), n)
	}
	for i, key := range ids {
		v, ok := tr.LookupExact(key)
		if !ok || v != i {
			t.Fatalf("LookupExact(%v) = (%d, %v), want (%d, true)", key, v, ok, i)
		}
	}
	for i, key := range ids {
		if !tr.Remove(key, func(v int) bool { return v == i }) {
			t.Fatalf("failed to remove entry %d", i)
		}
	}
	if tr.Len() != 0 {
		t.Fatalf("Len() = %d after removing everything, want 0", tr.Len())
	}
}

func BenchmarkInsert(b *testing.B) {
	tr := New[int]()
	for i := 0; i < b.N; i++ {
		p := coord.Position{X: uint16(i % 60000), Y: uint16((i / 60000) % 60000)}
		tr.Insert(coord.Cell(p), i)
	}
}

func BenchmarkRangeSearch(b *testing.B) {
	tr := New[int]()
	for i := 0; i < 20000; i++ {
		p := coord.Position{X: uint16(i % 300), Y: uint16(i / 300)}
		tr.Insert(coord.Cell(p), i)
	}
	q := rect(10, 10, 30, 30)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.RangeSearch(q)
	}
}
