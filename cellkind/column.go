package cellkind

// DefaultWidth and DefaultPrecision are the values a column starts with
// before any SetWidth/SetPrecision call touches it (spec §4.3).
const (
	DefaultWidth     = 10
	DefaultPrecision = 2
)

// Column holds the per-column display metadata the kernel tracks
// independently of any cell: the display width in characters and the
// decimal precision used to render a numeric value.
type Column struct {
	Width     int
	Precision int
}

// NewColumn returns a column with the default width and precision.
func NewColumn() Column {
	return Column{Width: DefaultWidth, Precision: DefaultPrecision}
}
