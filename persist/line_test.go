package persist

import (
	"strings"
	"testing"

	"github.com/gridkernel/sheet/coord"
)

func TestParseLineRoundTrip(t *testing.T) {
	line, err := ParseLine("let A0 = 1+2")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if line.Verb != VerbLet || line.Pos != (coord.Position{0, 0}) {
		t.Fatalf("ParseLine produced %+v", line)
	}
	text, err := FormatLine(line)
	if err != nil {
		t.Fatalf("FormatLine: %v", err)
	}
	if text != "let A0 = 1+2" {
		t.Fatalf("FormatLine = %q, want %q", text, "let A0 = 1+2")
	}
}

func TestParseLineRoundTripsStringLiteral(t *testing.T) {
	line, err := ParseLine(`label B2 = "hello"`)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if line.Pool == nil {
		t.Fatal("a string-literal expression should come back with a non-nil pool")
	}
	text, err := FormatLine(line)
	if err != nil {
		t.Fatalf("FormatLine: %v", err)
	}
	if text != `label B2 = "hello"` {
		t.Fatalf("FormatLine = %q, want %q", text, `label B2 = "hello"`)
	}
}

func TestParseLineRejectsMalformed(t *testing.T) {
	bad := []string{"", "let A0", "let A0 1", "foo A0 = 1", "let ZZZZZZZ = 1"}
	for _, s := range bad {
		if _, err := ParseLine(s); err == nil {
			t.Errorf("ParseLine(%q) should have failed", s)
		}
	}
}

func TestLoadSkipsBadLines(t *testing.T) {
	input := "let A0 = 1\n\nnot a valid line\nlabel B0 = \"hi\"\n"
	lines := Load(strings.NewReader(input))
	if len(lines) != 2 {
		t.Fatalf("Load returned %d lines, want 2: %+v", len(lines), lines)
	}
	if lines[0].Pos != (coord.Position{0, 0}) || lines[1].Pos != (coord.Position{1, 0}) {
		t.Fatalf("Load produced unexpected positions: %+v", lines)
	}
}

func TestSaveThenLoadIsIdentity(t *testing.T) {
	lines := []Line{}
	for _, text := range []string{"let A0 = 1", "let A1 = A0+1"} {
		l, err := ParseLine(text)
		if err != nil {
			t.Fatalf("ParseLine(%q): %v", text, err)
		}
		lines = append(lines, l)
	}
	var sb strings.Builder
	if err := Save(&sb, lines); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got := Load(strings.NewReader(sb.String()))
	if len(got) != len(lines) {
		t.Fatalf("round trip produced %d lines, want %d", len(got), len(lines))
	}
	for i := range lines {
		want, _ := FormatLine(lines[i])
		text, err := FormatLine(got[i])
		if err != nil || got[i].Verb != lines[i].Verb || got[i].Pos != lines[i].Pos || text != want {
			t.Fatalf("line %d: round trip produced %q (err %v), want %q", i, text, err, want)
		}
	}
}
