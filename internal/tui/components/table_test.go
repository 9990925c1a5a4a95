package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewTable(t *testing.T) {
	cols := []Column{
		{Title: "#", Width: 4},
		{Title: "Name", Width: 20},
	}

	table := NewTable(cols)
	if table == nil {
		t.Fatal("Expected non-nil table")
	}
	if !table.Empty() {
		t.Error("New table should be empty")
	}
	if table.RowCount() != 0 {
		t.Errorf("Expected 0 rows, got %d", table.RowCount())
	}
	if table.Width() != 30 {
		t.Errorf("Expected width 30, got %d", table.Width())
	}
}

func TestTable_SetRows(t *testing.T) {
	table := NewTable([]Column{{Title: "#", Width: 4}, {Title: "Name", Width: 20}})
	table.SetRows([][]string{
		{"1", "Slime"},
		{"2", "Dracky"},
	})
	table.AddRow("3", "Healer")

	if table.RowCount() != 3 {
		t.Errorf("Expected 3 rows, got %d", table.RowCount())
	}
	if table.Empty() {
		t.Error("Table should not be empty after setting rows")
	}
}

func TestTable_Render(t *testing.T) {
	table := NewTable([]Column{
		{Title: "Name", Width: 12},
		{Title: "HP", Width: 4, Align: lipgloss.Right},
	})
	table.AddRow("Slime", "8")
	table.AddRow("KingSlime", "120")

	output := table.Render()
	lines := strings.Split(output, "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected header, rule and 2 rows, got %d lines:\n%s", len(lines), output)
	}
	if !strings.Contains(lines[0], "Name") || !strings.Contains(lines[0], "HP") {
		t.Errorf("Expected headers in first line, got %q", lines[0])
	}
	if !strings.Contains(lines[2], "   8") {
		t.Errorf("Expected right-aligned HP, got %q", lines[2])
	}
	if !strings.Contains(output, "KingSlime") {
		t.Error("Expected row content in output")
	}
}

func TestTable_RenderFooter(t *testing.T) {
	table := NewTable([]Column{{Title: "Name", Width: 10}})
	table.AddRow("Slime")
	table.SetFooter("1 total")

	output := table.Render()
	if !strings.HasSuffix(output, "1 total") {
		t.Errorf("Expected footer at end, got %q", output)
	}
}

func TestFitCell(t *testing.T) {
	tests := []struct {
		cell     string
		col      Column
		expected string
	}{
		{"Slime", Column{Width: 8}, "Slime   "},
		{"Slime", Column{Width: 8, Align: lipgloss.Right}, "   Slime"},
		{"Slime", Column{Width: 9, Align: lipgloss.Center}, "  Slime  "},
		{"MetalKingSlime", Column{Width: 6}, "Metal…"},
	}

	for _, tt := range tests {
		if got := fitCell(tt.cell, tt.col); got != tt.expected {
			t.Errorf("fitCell(%q, %+v) = %q, want %q", tt.cell, tt.col, got, tt.expected)
		}
	}
}
