package ui

import (
	"strings"
	"testing"
)

func TestTableAlignment(t *testing.T) {
	tbl := NewTable(3)
	tbl.AddRow("ID", "NAME", "ITEMS")
	tbl.AddRow("countries", "Countries", "249")
	tbl.AddRow("cur", "Currencies", "160")

	out := tbl.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out)
	}

	// Second column starts at the same offset in every line.
	offset := strings.Index(lines[0], "NAME")
	if offset < 0 {
		t.Fatalf("header missing: %q", lines[0])
	}
	if idx := strings.Index(lines[1], "Countries"); idx != offset {
		t.Errorf("column misaligned: %d vs %d\n%s", idx, offset, out)
	}
	if idx := strings.Index(lines[2], "Currencies"); idx != offset {
		t.Errorf("column misaligned: %d vs %d\n%s", idx, offset, out)
	}
}

func TestTableEmpty(t *testing.T) {
	if out := NewTable(2).String(); out != "" {
		t.Errorf("empty table should render empty, got %q", out)
	}
}

func TestTableIgnoresExtraCells(t *testing.T) {
	tbl := NewTable(2)
	tbl.AddRow("a", "b", "c")
	out := tbl.String()
	if strings.Contains(out, "c") {
		t.Errorf("extra cell should be dropped, got %q", out)
	}
}
