package kernel

import (
	"strconv"

	"github.com/gridkernel/sheet/cellkind"
	"github.com/gridkernel/sheet/coord"
	"github.com/gridkernel/sheet/expr"
	"github.com/gridkernel/sheet/undo"
)

// SetWidth sets col's display width, clamped to a minimum of 1 (spec §3
// "display width ≥ 1").
func (s *Sheet) SetWidth(col uint16, width int) error {
	return s.setWidth(col, width, undo.TargetUndo, true)
}

func (s *Sheet) setWidth(col uint16, width int, target undo.Target, clearRedos bool) error {
	if width < 1 {
		width = 1
	}
	if err := s.alloc.Reserve(1); err != nil {
		return ErrOutOfMemory
	}
	cur := s.ColumnAt(col)
	old := cur.Width
	cur.Width = width
	s.columns[col] = cur
	s.log.Push(undo.Entry{Kind: undo.SetColumnWidth, Col: col, Old: old}, target, clearRedos)
	return nil
}

// IncWidth and DecWidth adjust col's width by one.
func (s *Sheet) IncWidth(col uint16) error { return s.SetWidth(col, s.ColumnAt(col).Width+1) }
func (s *Sheet) DecWidth(col uint16) error { return s.SetWidth(col, s.ColumnAt(col).Width-1) }

// SetPrecision sets col's decimal precision, clamped to a minimum of 0.
func (s *Sheet) SetPrecision(col uint16, precision int) error {
	return s.setPrecision(col, precision, undo.TargetUndo, true)
}

func (s *Sheet) setPrecision(col uint16, precision int, target undo.Target, clearRedos bool) error {
	if precision < 0 {
		precision = 0
	}
	if err := s.alloc.Reserve(1); err != nil {
		return ErrOutOfMemory
	}
	cur := s.ColumnAt(col)
	old := cur.Precision
	cur.Precision = precision
	s.columns[col] = cur
	s.log.Push(undo.Entry{Kind: undo.SetColumnPrecision, Col: col, Old: old}, target, clearRedos)
	return nil
}

// IncPrecision and DecPrecision adjust col's precision by one.
func (s *Sheet) IncPrecision(col uint16) error {
	return s.SetPrecision(col, s.ColumnAt(col).Precision+1)
}
func (s *Sheet) DecPrecision(col uint16) error {
	return s.SetPrecision(col, s.ColumnAt(col).Precision-1)
}

// WidthNeededForColumn reports the display width col would need to
// render every live cell's value (formatted at precision decimal
// places) without truncation, capped at cap.
func (s *Sheet) WidthNeededForColumn(col uint16, precision int, cap int) int {
	need := 1
	s.store.Range(func(pos coord.Position, rec *cellkind.Record) bool {
		if pos.X != col {
			return true
		}
		if n := len(renderValue(rec.Value, precision)); n > need {
			need = n
		}
		return true
	})
	if need > cap {
		need = cap
	}
	return need
}

func renderValue(v expr.Value, precision int) string {
	switch v.Kind {
	case expr.KindNumber:
		return strconv.FormatFloat(v.Number, 'f', precision, 64)
	case expr.KindString:
		return v.Str
	default:
		return v.Err.String()
	}
}
