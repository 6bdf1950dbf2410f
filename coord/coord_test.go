package coord

import "testing"

func TestAddressRoundTrip(t *testing.T) {
	cases := []Position{
		{0, 0},
		{25, 0},
		{26, 0},
		{27, 5},
		{701, 0},  // ZZ0
		{702, 100}, // AAA100
		{MaxCoord, MaxCoord},
	}
	for _, pos := range cases {
		s := FormatAddress(pos)
		got, err := ParseAddress(s)
		if err != nil {
			t.Fatalf("ParseAddress(%q) (formatted from %v) failed: %s", s, pos, err)
		}
		if got != pos {
			t.Fatalf("round trip mismatch: %v -> %q -> %v", pos, s, got)
		}
	}
}

func TestFormatAddressKnownValues(t *testing.T) {
	table := []struct {
		pos  Position
		want string
	}{
		{Position{0, 0}, "A0"},
		{Position{25, 0}, "Z0"},
		{Position{26, 0}, "AA0"},
		{Position{0, 9}, "A9"},
	}
	for _, c := range table {
		got := FormatAddress(c.pos)
		if got != c.want {
			t.Errorf("FormatAddress(%v) = %q, want %q", c.pos, got, c.want)
		}
	}
}

func TestParseAddressRejectsGarbage(t *testing.T) {
	bad := []string{"", "1A", "A", "1", "A-1", "ZZZZZZZZZZZ1"}
	for _, s := range bad {
		if _, err := ParseAddress(s); err == nil {
			t.Errorf("ParseAddress(%q) should have failed", s)
		}
	}
}

func TestRangeIntersectsAndOverlapArea(t *testing.T) {
	a := NewRange(Position{1, 1}, Position{3, 3})
	b := NewRange(Position{2, 2}, Position{4, 4})
	if !a.Intersects(b) {
		t.Fatal("expected overlap")
	}
	if got := a.OverlapArea(b); got != 4 { // [2,3]x[2,3] = 2x2
		t.Fatalf("OverlapArea = %v, want 4", got)
	}
	c := NewRange(Position{10, 10}, Position{20, 20})
	if a.Intersects(c) {
		t.Fatal("did not expect overlap")
	}
	if got := a.OverlapArea(c); got != 0 {
		t.Fatalf("OverlapArea of disjoint ranges = %v, want 0", got)
	}
}

func TestRangeMerge(t *testing.T) {
	a := NewRange(Position{0, 0}, Position{1, 1})
	b := NewRange(Position{5, 5}, Position{6, 6})
	m := a.Merge(b)
	want := NewRange(Position{0, 0}, Position{6, 6})
	if !m.Equal(want) {
		t.Fatalf("Merge = %+v, want %+v", m, want)
	}
}

func TestRangePositionsRowMajor(t *testing.T) {
	r := NewRange(Position{0, 0}, Position{1, 1})
	var got []Position
	r.Positions(func(p Position) bool {
		got = append(got, p)
		return true
	})
	want := []Position{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	if len(got) != len(want) {
		t.Fatalf("got %d positions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d = %v, want %v", i, got[i], want[i])
		}
	}
}
