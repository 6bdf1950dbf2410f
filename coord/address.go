package coord

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidAddress is returned when an address string isn't of the form
// <column letters><row digits>.
var ErrInvalidAddress = errors.New("coord: invalid cell address")

// ErrCoordOverflow is returned when an address parses but names a position
// outside [0, MaxCoord] on either axis.
var ErrCoordOverflow = errors.New("coord: address out of range")

// FormatAddress renders p using the bijective base-26 column naming scheme
// (A, B, ..., Z, AA, AB, ...) and the row coordinate verbatim as a decimal
// (row 0 is written "0", not "1"): Position{0,0} -> "A0", Position{26,0}
// -> "AA0". This matches the kernel's own scenario notation ("A0 = 1, A1
// = A0 + 1, ...") rather than the 1-based row numbers a spreadsheet UI
// would display.
func FormatAddress(p Position) string {
	var col []byte
	n := uint32(p.X) + 1
	for n > 0 {
		n--
		col = append(col, byte('A'+n%26))
		n /= 26
	}
	for i, j := 0, len(col)-1; i < j; i, j = i+1, j-1 {
		col[i], col[j] = col[j], col[i]
	}
	return string(col) + strconv.FormatUint(uint64(p.Y), 10)
}

// ParseAddress parses the inverse of FormatAddress.
func ParseAddress(s string) (Position, error) {
	i := 0
	for i < len(s) && isAlpha(s[i]) {
		i++
	}
	if i == 0 || i == len(s) {
		return Position{}, ErrInvalidAddress
	}
	colPart, rowPart := s[:i], s[i:]
	for _, c := range rowPart {
		if c < '0' || c > '9' {
			return Position{}, ErrInvalidAddress
		}
	}
	var col uint64
	for _, c := range strings.ToUpper(colPart) {
		col = col*26 + uint64(c-'A'+1)
		if col > uint64(MaxCoord)+2 {
			return Position{}, ErrCoordOverflow
		}
	}
	col--
	row, err := strconv.ParseUint(rowPart, 10, 32)
	if err != nil {
		return Position{}, ErrInvalidAddress
	}
	if col > uint64(MaxCoord) || row > uint64(MaxCoord) {
		return Position{}, ErrCoordOverflow
	}
	return Position{X: uint16(col), Y: uint16(row)}, nil
}

func isAlpha(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
