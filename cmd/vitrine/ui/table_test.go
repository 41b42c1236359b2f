package ui

import (
	"strings"
	"testing"
)

func TestTable(t *testing.T) {
	table := NewTable("Catalog", "Tag", "Title")
	table.AddRow("pilot", "Household panel")

	styles := DefaultStyles()
	view := table.View(styles)

	if !strings.Contains(view, "Catalog") {
		t.Error("view missing title")
	}
	if !strings.Contains(view, "Household panel") {
		t.Error("view missing cell content")
	}
	if !strings.Contains(view, "Tag") {
		t.Error("view missing header")
	}
}

func TestTableEmptyRendersNothing(t *testing.T) {
	table := NewTable("Catalog", "Tag", "Title")
	if view := table.View(DefaultStyles()); view != "" {
		t.Errorf("expected empty view, got %q", view)
	}
}

func TestTablePadsShortRows(t *testing.T) {
	table := NewTable("", "A", "B", "C")
	table.AddRow("only")
	if got := len(table.Rows[0]); got != 3 {
		t.Fatalf("expected row padded to 3 cells, got %d", got)
	}
}

func TestTableClipsWideCells(t *testing.T) {
	table := NewTable("", "Preview")
	table.MaxCellWidth = 10
	table.AddRow("a cell well beyond the cap")

	view := table.View(DefaultStyles())
	if !strings.Contains(view, "…") {
		t.Error("expected clipped cell to carry a truncation mark")
	}
	if strings.Contains(view, "beyond the cap") {
		t.Error("expected cell content past the cap to be cut")
	}
}
