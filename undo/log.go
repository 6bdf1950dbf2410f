// Package undo implements the kernel's undo/redo mechanics: two parallel
// append-only entry logs, group-terminator markers, and an arena holding
// displaced expression trees addressed by a small integer handle. The
// Undo/Redo drivers that know how to invert an entry live in kernel
// (they need the cell store); this package only owns the log, the
// markers and the arena, grounded on the teacher's periodicLogger
// (logger/periodic.go): a small mutation-tracking slice-backed struct
// with explicit invariants stated in comments rather than enforced by
// the type system.
package undo

import "github.com/gridkernel/sheet/expr"

// Target names which of the two logs an operation addresses.
type Target int

const (
	TargetUndo Target = iota
	TargetRedo
)

// Kind discriminates Entry's payload.
type Kind int

const (
	SetCell Kind = iota
	DeleteCell
	SetColumnWidth
	SetColumnPrecision
)

// Pos is a narrow stand-in for coord.Position, kept here so undo does
// not import coord directly; kernel converts at the boundary. X/Y carry the same 16-bit range.
type Pos struct {
	X, Y uint16
}

// Entry is one undo or redo log record. Fields unused by Kind are zero.
type Entry struct {
	Kind   Kind
	Pos    Pos
	Handle Handle // SetCell: the arena handle of the displaced expression
	Col    uint16 // SetColumnWidth / SetColumnPrecision
	Old    int    // SetColumnWidth / SetColumnPrecision: the prior value
}

// Handle addresses one archived expression tree in an Arena. The zero
// Handle is never issued by Arena.Put, so it doubles as a "no tree"
// sentinel (used by DeleteCell entries, which have none).
type Handle int

// archived is one arena slot: a displaced expression tree paired with the
// out-of-line string pool it was using (spec §4.7 "re-install the
// archived (expression, strings)"), so both are restored together.
type archived struct {
	tree expr.Tree
	pool expr.StringPool
}

// Arena holds expression trees (and their string pools) displaced by
// overwrite or delete, so that undo log entries can carry a small integer
// instead of a tree pointer (spec §9 "Undo storage"). Freed slots are
// recycled to bound growth across long undo/redo cycles.
type Arena struct {
	entries []archived
	free    []Handle
}

// NewArena returns an empty arena.
func NewArena() *Arena { return &Arena{} }

// Put archives tree and pool together and returns their handle. pool may
// be nil if the expression referenced no string literals.
func (a *Arena) Put(tree expr.Tree, pool expr.StringPool) Handle {
	e := archived{tree: tree, pool: pool}
	if n := len(a.free); n > 0 {
		h := a.free[n-1]
		a.free = a.free[:n-1]
		a.entries[h-1] = e
		return h
	}
	a.entries = append(a.entries, e)
	return Handle(len(a.entries))
}

// Take returns the tree and pool archived at h and frees the slot.
// Calling Take twice on the same handle, or on Handle(0), returns
// (nil, nil, false).
func (a *Arena) Take(h Handle) (expr.Tree, expr.StringPool, bool) {
	if h <= 0 || int(h) > len(a.entries) {
		return nil, nil, false
	}
	e := a.entries[h-1]
	if e.tree == nil {
		return nil, nil, false
	}
	a.entries[h-1] = archived{}
	a.free = append(a.free, h)
	return e.tree, e.pool, true
}

// Marker records which of the two group-terminator bits are set on a log
// entry at a given index.
type Marker struct {
	UndoEnd bool
	RedoEnd bool
}

// Log is the undo and redo stacks plus their group markers. Construct
// it with NewLog: the zero value has no marker map and no arena.
type Log struct {
	undo    []Entry
	redo    []Entry
	markers map[int]Marker // index is a position in either undo or redo, disambiguated by Target at call sites
	arena   *Arena
}

// NewLog returns an empty undo/redo log backed by its own arena.
func NewLog() *Log {
	return &Log{markers: make(map[int]Marker), arena: NewArena()}
}

// Arena returns the log's archived-expression arena.
func (l *Log) Arena() *Arena { return l.arena }

func (l *Log) stack(t Target) *[]Entry {
	if t == TargetUndo {
		return &l.undo
	}
	return &l.redo
}

// Push appends entry to target's log. If target is the undo log and
// clearRedos is true (the normal case for a fresh user action), the redo
// log and its markers for redo positions are discarded.
func (l *Log) Push(entry Entry, target Target, clearRedos bool) {
	if target == TargetUndo && clearRedos {
		l.redo = l.redo[:0]
		for k, m := range l.markers {
			if m.RedoEnd {
				l.clearGroupEnd(TargetRedo, k)
			}
		}
	}
	s := l.stack(target)
	*s = append(*s, entry)
}

// EndGroup marks the last entry of target's log as that log's group
// terminator. Idempotent; a no-op on an empty log.
func (l *Log) EndGroup(target Target) {
	s := l.stack(target)
	if len(*s) == 0 {
		return
	}
	idx := len(*s) - 1
	m := l.markers[idx]
	if target == TargetUndo {
		m.UndoEnd = true
	} else {
		m.RedoEnd = true
	}
	l.markers[idx] = m
}

func (l *Log) clearGroupEnd(target Target, idx int) {
	m, ok := l.markers[idx]
	if !ok {
		return
	}
	if target == TargetUndo {
		m.UndoEnd = false
	} else {
		m.RedoEnd = false
	}
	if !m.UndoEnd && !m.RedoEnd {
		delete(l.markers, idx)
	} else {
		l.markers[idx] = m
	}
}

func (l *Log) isGroupBoundary(target Target, idx int) bool {
	m, ok := l.markers[idx]
	if !ok {
		return false
	}
	if target == TargetUndo {
		return m.UndoEnd
	}
	return m.RedoEnd
}

// UndoLen and RedoLen report the current depth of each log, mostly for
// tests asserting invariant 5 (every non-empty log ends in a marker).
func (l *Log) UndoLen() int { return len(l.undo) }
func (l *Log) RedoLen() int { return len(l.redo) }

// EndsWithGroupMarker reports whether target's log, if non-empty, has
// its last entry marked as that log's group terminator.
func (l *Log) EndsWithGroupMarker(target Target) bool {
	s := l.stack(target)
	if len(*s) == 0 {
		return true
	}
	return l.isGroupBoundary(target, len(*s)-1)
}

// PopGroup pops one full group suffix off from's log (clearing its
// terminal marker first) and returns the entries in pop order
// (last-pushed first), along with whether there was anything to pop.
// kernel.Sheet.Undo and Redo drive this; Log itself does not know how to
// invert an entry.
func (l *Log) PopGroup(from Target) ([]Entry, bool) {
	s := l.stack(from)
	if len(*s) == 0 {
		return nil, false
	}
	l.clearGroupEnd(from, len(*s)-1)

	var popped []Entry
	for len(*s) > 0 {
		idx := len(*s) - 1
		e := (*s)[idx]
		*s = (*s)[:idx]
		popped = append(popped, e)
		if idx == 0 || l.isGroupBoundary(from, idx-1) {
			break
		}
	}
	return popped, true
}
