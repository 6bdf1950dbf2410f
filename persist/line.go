// Package persist is the pure text codec for the kernel's line-oriented
// persisted format: `let <POS> = <EXPR>` for numeric/expression cells,
// `label <POS> = <EXPR>` for string-leaning ones (spec §6). It never
// touches a file handle; Load and Save work on an io.Reader/io.Writer the
// caller opens (cmd/sheetctl opens the file it loads),
// matching spec's explicit "file loading/saving wrappers" Non-goal for
// the kernel itself. Grounded on the teacher's nmeais sentence decoders,
// which split one line into a verb and a payload by hand rather than
// reach for a generic record-format library.
package persist

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gridkernel/sheet/coord"
	"github.com/gridkernel/sheet/expr"
	"github.com/gridkernel/sheet/litexpr"
)

// Verb distinguishes the two statement forms the format accepts. Both
// parse identically; the verb is purely a hint to a renderer about
// whether the author intended a label or a computed value.
type Verb string

const (
	VerbLet   Verb = "let"
	VerbLabel Verb = "label"
)

// Line is one parsed statement: an assignment of an expression, plus its
// out-of-line string pool (spec §3), to a position. Pool is nil when Expr
// references no string literals.
type Line struct {
	Verb Verb
	Pos  coord.Position
	Expr expr.Tree
	Pool expr.StringPool
}

// ParseLine parses one non-empty statement line. Malformed verbs,
// addresses or expressions are reported as an error; Load (below)
// treats any such error as "skip this line" per spec's permissive load
// policy.
func ParseLine(s string) (Line, error) {
	s = strings.TrimSpace(s)
	fields := strings.SplitN(s, " ", 2)
	if len(fields) != 2 {
		return Line{}, fmt.Errorf("persist: malformed line %q", s)
	}
	verb := Verb(fields[0])
	if verb != VerbLet && verb != VerbLabel {
		return Line{}, fmt.Errorf("persist: unknown verb %q", fields[0])
	}
	rest := strings.SplitN(fields[1], "=", 2)
	if len(rest) != 2 {
		return Line{}, fmt.Errorf("persist: missing '=' in %q", s)
	}
	pos, err := coord.ParseAddress(strings.TrimSpace(rest[0]))
	if err != nil {
		return Line{}, fmt.Errorf("persist: %w", err)
	}
	tree, pool, err := litexpr.Parse(strings.TrimSpace(rest[1]))
	if err != nil {
		return Line{}, fmt.Errorf("persist: %w", err)
	}
	var sp expr.StringPool
	if len(pool) > 0 {
		sp = pool
	}
	return Line{Verb: verb, Pos: pos, Expr: tree, Pool: sp}, nil
}

// FormatLine renders l back to its persisted text form.
func FormatLine(l Line) (string, error) {
	var sb strings.Builder
	sb.WriteString(string(l.Verb))
	sb.WriteByte(' ')
	sb.WriteString(coord.FormatAddress(l.Pos))
	sb.WriteString(" = ")
	if err := l.Expr.Print(&sb, l.Pool); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Load reads every line from r, skipping blank lines and any line that
// fails to parse (spec §7 "load quietly skips bad lines"). It returns
// every successfully parsed statement, in file order.
func Load(r io.Reader) []Line {
	var lines []Line
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		line, err := ParseLine(text)
		if err != nil {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Save writes every line to w in order, one statement per line.
func Save(w io.Writer, lines []Line) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		text, err := FormatLine(l)
		if err != nil {
			return err
		}
		if _, err := bw.WriteString(text); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
