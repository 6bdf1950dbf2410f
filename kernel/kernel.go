// Package kernel is the spreadsheet engine: it wires cellkind.Store,
// depindex.DependentIndex, depindex.LiveIndex and undo.Log into the
// single Sheet type, and implements the dirty-mark/evaluate engine that
// keeps cell values consistent as cells are assigned and deleted.
//
// Grounded on the teacher's storage package, which wires Archive,
// ShipDB and the position/update RTree behind one boundary rather than
// splitting them into separately testable public packages; Sheet plays
// the same consolidating role here.
package kernel

import (
	"errors"

	"github.com/gridkernel/sheet/cellkind"
	"github.com/gridkernel/sheet/coord"
	"github.com/gridkernel/sheet/depindex"
	"github.com/gridkernel/sheet/undo"
)

// ErrOutOfMemory is the kernel's only mutation-time failure mode (spec
// §5/§7): every public mutator either succeeds or returns this, leaving
// the sheet exactly as it was before the call.
var ErrOutOfMemory = errors.New("kernel: out of memory")

// Allocator gates every kernel mutation before it touches any state.
// The default (unlimitedAllocator) always succeeds; callers that want a resource
// ceiling (e.g. a demo capped to N live cells) can supply their own and
// get deterministic, rollback-safe OutOfMemory behaviour for free. This
// is the kernel's answer to spec §9's unaddressed "the only failure is
// allocation" requirement: since Go's runtime allocator cannot be asked
// up front whether an allocation will succeed, Reserve is the
// injectable stand-in front-ends can use to simulate or enforce limits.
type Allocator interface {
	// Reserve is called before a mutation with the number of new
	// allocation-shaped effects it is about to perform (cell store
	// entries, dependent-index inserts, undo entries, ...). Returning a
	// non-nil error aborts the mutation before any state changes.
	Reserve(n int) error
}

type unlimitedAllocator struct{}

func (unlimitedAllocator) Reserve(int) error { return nil }

// Sheet is the kernel's top-level handle: one sparse grid of cells plus
// its spatial indexes, column metadata and undo/redo log.
type Sheet struct {
	store   *cellkind.Store
	deps    *depindex.DependentIndex
	live    *depindex.LiveIndex
	columns map[uint16]cellkind.Column
	log     *undo.Log
	alloc   Allocator

	queue      []coord.Position
	hasChanges bool
}

// Option configures a Sheet at construction time.
type Option func(*Sheet)

// WithAllocator installs a custom Allocator, e.g. one that enforces a
// maximum live-cell count for a demo or test.
func WithAllocator(a Allocator) Option {
	return func(s *Sheet) { s.alloc = a }
}

// NewSheet returns an empty sheet.
func NewSheet(opts ...Option) *Sheet {
	s := &Sheet{
		store:   cellkind.NewStore(),
		deps:    depindex.NewDependentIndex(),
		live:    depindex.NewLiveIndex(),
		columns: make(map[uint16]cellkind.Column),
		log:     undo.NewLog(),
		alloc:   unlimitedAllocator{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CellAt returns the record at pos, if any. The returned pointer is
// owned by the sheet; callers must not retain it across a mutation.
func (s *Sheet) CellAt(pos coord.Position) (*cellkind.Record, bool) {
	return s.store.Get(pos)
}

// ColumnAt returns col's display metadata, defaulting to
// cellkind.NewColumn() for a column never explicitly configured.
func (s *Sheet) ColumnAt(col uint16) cellkind.Column {
	if c, ok := s.columns[col]; ok {
		return c
	}
	return cellkind.NewColumn()
}

// HasChanges reports whether any mutation since the last Update() call
// is still pending.
func (s *Sheet) HasChanges() bool { return s.hasChanges }

// LiveCells returns every live position in row-major order, e.g. for a
// front-end's "next populated cell" navigation (spec §9 "Ordered cell
// store").
func (s *Sheet) LiveCells() []coord.Position { return s.store.Positions() }

func toUndoPos(p coord.Position) undo.Pos   { return undo.Pos{X: p.X, Y: p.Y} }
func fromUndoPos(p undo.Pos) coord.Position { return coord.Position{X: p.X, Y: p.Y} }
