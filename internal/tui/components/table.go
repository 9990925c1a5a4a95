// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column defines a table column.
type Column struct {
	Title string
	Width int
	Align lipgloss.Position
}

// Table renders rows of text under fixed-width column headers. It is
// printed once into the session transcript, so it holds no selection state.
type Table struct {
	columns []Column
	rows    [][]string
	footer  string

	// Styles
	headerStyle lipgloss.Style
	rowStyle    lipgloss.Style
	rowAltStyle lipgloss.Style
	borderStyle lipgloss.Style
}

// NewTable creates a new table with the given columns.
func NewTable(columns []Column) *Table {
	return &Table{
		columns:     columns,
		rows:        [][]string{},
		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#66FF66")),
		rowStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")),
		rowAltStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")),
		borderStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")),
	}
}

// SetRows sets the table data.
func (t *Table) SetRows(rows [][]string) {
	t.rows = rows
}

// AddRow appends one row.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// SetFooter sets a line printed under the closing separator.
func (t *Table) SetFooter(footer string) {
	t.footer = footer
}

// SetStyles sets the table styles.
func (t *Table) SetStyles(header, row, rowAlt, border lipgloss.Style) {
	t.headerStyle = header
	t.rowStyle = row
	t.rowAltStyle = rowAlt
	t.borderStyle = border
}

// Width returns the rendered width of one row.
func (t *Table) Width() int {
	total := 0
	for _, col := range t.columns {
		total += col.Width + 3 // +3 for padding and separator
	}
	return total
}

// Render renders the table.
func (t *Table) Render() string {
	var b strings.Builder
	rule := t.borderStyle.Render(strings.Repeat("-", t.Width()))

	b.WriteString(t.renderRow(t.headers(), t.headerStyle))
	b.WriteString("\n")
	b.WriteString(rule)

	for i, row := range t.rows {
		style := t.rowStyle
		if i%2 == 1 {
			style = t.rowAltStyle
		}
		b.WriteString("\n")
		b.WriteString(t.renderRow(row, style))
	}

	if t.footer != "" {
		b.WriteString("\n")
		b.WriteString(rule)
		b.WriteString("\n")
		b.WriteString(t.borderStyle.Render(t.footer))
	}

	return b.String()
}

func (t *Table) headers() []string {
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.Title
	}
	return headers
}

func (t *Table) renderRow(cells []string, style lipgloss.Style) string {
	parts := make([]string, 0, len(t.columns))

	for i, col := range t.columns {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts = append(parts, style.Render(fitCell(cell, col)))
	}

	return " " + strings.Join(parts, " | ")
}

func fitCell(cell string, col Column) string {
	runes := []rune(cell)
	if col.Width > 0 && len(runes) > col.Width {
		cell = string(runes[:col.Width-1]) + "…"
		runes = []rune(cell)
	}

	switch col.Align {
	case lipgloss.Right:
		return fmt.Sprintf("%*s", col.Width, cell)
	case lipgloss.Center:
		padding := max(col.Width-len(runes), 0)
		leftPad := padding / 2
		return strings.Repeat(" ", leftPad) + cell + strings.Repeat(" ", padding-leftPad)
	default:
		return fmt.Sprintf("%-*s", col.Width, cell)
	}
}

// Empty returns true if the table has no rows.
func (t *Table) Empty() bool {
	return len(t.rows) == 0
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}
