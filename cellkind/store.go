package cellkind

import (
	"sort"

	"github.com/gridkernel/sheet/coord"
	"github.com/gridkernel/sheet/expr"
)

// key pairs a position with its row-major hash, so the ordered slice can
// binary search without recomputing Hash() on every comparison.
type key struct {
	hash uint32
	pos  coord.Position
}

// Store is the kernel's ordered, sparse grid of cells: a hash-ordered key
// slice (row-major, matching coord.Position.Hash) alongside a map for
// O(1) lookup by position, plus the side map from position to a cell's
// out-of-line string pool (spec §3: "a side map from position to
// out-of-line string storage... absent entry ≡ empty string"). Grounded
// on the teacher's storage package, which keeps a slice for ordered
// iteration over a map keyed by MMSI.
type Store struct {
	keys    []key
	records map[coord.Position]*Record
	strings map[coord.Position]expr.StringPool
}

// NewStore returns an empty cell store.
func NewStore() *Store {
	return &Store{
		records: make(map[coord.Position]*Record),
		strings: make(map[coord.Position]expr.StringPool),
	}
}

// Len returns the number of live (non-empty) cells.
func (s *Store) Len() int { return len(s.keys) }

// Get returns the record at pos, if any.
func (s *Store) Get(pos coord.Position) (*Record, bool) {
	r, ok := s.records[pos]
	return r, ok
}

// search returns the index in s.keys where pos belongs (its current
// index if present, else its sorted insertion point) and whether it is
// already present.
func (s *Store) search(pos coord.Position) (idx int, found bool) {
	h := pos.Hash()
	i := sort.Search(len(s.keys), func(i int) bool { return s.keys[i].hash >= h })
	for i < len(s.keys) && s.keys[i].hash == h {
		if s.keys[i].pos == pos {
			return i, true
		}
		i++
	}
	return i, false
}

// Set inserts or overwrites the record at pos, maintaining sort order.
func (s *Store) Set(pos coord.Position, r *Record) {
	if _, exists := s.records[pos]; exists {
		s.records[pos] = r
		return
	}
	idx, _ := s.search(pos)
	s.keys = append(s.keys, key{})
	copy(s.keys[idx+1:], s.keys[idx:])
	s.keys[idx] = key{hash: pos.Hash(), pos: pos}
	s.records[pos] = r
}

// Delete removes the record at pos, if any, along with its string pool
// entry. Reports whether pos held a record.
func (s *Store) Delete(pos coord.Position) bool {
	if _, ok := s.records[pos]; !ok {
		return false
	}
	idx, found := s.search(pos)
	if found {
		s.keys = append(s.keys[:idx], s.keys[idx+1:]...)
	}
	delete(s.records, pos)
	delete(s.strings, pos)
	return true
}

// Strings returns pos's out-of-line string pool, if one is registered.
func (s *Store) Strings(pos coord.Position) (expr.StringPool, bool) {
	p, ok := s.strings[pos]
	return p, ok
}

// SetStrings registers pos's out-of-line string pool, replacing any
// previous one. A nil pool clears the entry, matching the "absent entry
// ≡ empty string" convention.
func (s *Store) SetStrings(pos coord.Position, pool expr.StringPool) {
	if pool == nil {
		delete(s.strings, pos)
		return
	}
	s.strings[pos] = pool
}

// Positions returns every live position in row-major order.
func (s *Store) Positions() []coord.Position {
	out := make([]coord.Position, len(s.keys))
	for i, k := range s.keys {
		out[i] = k.pos
	}
	return out
}

// Range calls yield for every live (position, record) pair in row-major
// order, stopping early if yield returns false.
func (s *Store) Range(yield func(coord.Position, *Record) bool) {
	for _, k := range s.keys {
		if !yield(k.pos, s.records[k.pos]) {
			return
		}
	}
}

// WithinRange returns every live position inside r, in row-major order.
// It scans the sorted key slice rather than a spatial index: the store
// has no notion of rectangles, only positions, so callers needing
// rectangle-bounded containment go through depindex.LiveIndex instead.
func (s *Store) WithinRange(r coord.Range) []coord.Position {
	var out []coord.Position
	for _, k := range s.keys {
		if r.ContainsPosition(k.pos) {
			out = append(out, k.pos)
		}
	}
	return out
}
