package dex

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/monsterdex/monsterdex/internal/catalog"
	"github.com/monsterdex/monsterdex/internal/farm"
	"github.com/monsterdex/monsterdex/internal/models"
	"github.com/monsterdex/monsterdex/internal/tui/components"
	"github.com/monsterdex/monsterdex/internal/util"
)

// ListView renders a titled table of creatures.
type ListView struct {
	title string
	empty string
	table *components.Table
}

func creatureColumns(width int) []components.Column {
	cols := []components.Column{
		{Title: "#", Width: 4, Align: lipgloss.Right},
		{Title: "Name", Width: 14},
		{Title: "Family", Width: 8},
	}
	if width < 60 {
		return cols
	}
	return append(cols,
		components.Column{Title: "LVL", Width: 3, Align: lipgloss.Right},
		components.Column{Title: "HP", Width: 3, Align: lipgloss.Right},
		components.Column{Title: "MP", Width: 3, Align: lipgloss.Right},
		components.Column{Title: "ATK", Width: 3, Align: lipgloss.Right},
		components.Column{Title: "DEF", Width: 3, Align: lipgloss.Right},
		components.Column{Title: "Skills", Width: 28},
	)
}

func creatureRow(n int, c *models.Creature, width int) []string {
	row := []string{fmt.Sprintf("%d", n), c.Name, c.Family.String()}
	if width < 60 {
		return row
	}
	return append(row,
		fmt.Sprintf("%d", c.Stats.MaxLevel),
		fmt.Sprintf("%d", c.Stats.HP),
		fmt.Sprintf("%d", c.Stats.MP),
		fmt.Sprintf("%d", c.Stats.Attack),
		fmt.Sprintf("%d", c.Stats.Defense),
		strings.Join(c.Skills.Present(), ", "),
	)
}

// NewFamilyList lists the creatures of one family in catalog order.
func NewFamilyList(cat *catalog.Catalog, family models.Family, width int) *ListView {
	table := components.NewTable(creatureColumns(width))
	n := 0
	for c := range cat.FindByFamily(family) {
		n++
		table.AddRow(creatureRow(n, c, width)...)
	}
	table.SetFooter(fmt.Sprintf("%d in family", n))

	return &ListView{
		title: fmt.Sprintf("═══ %s FAMILY ═══", strings.ToUpper(family.String())),
		empty: fmt.Sprintf("No creatures of the %s family are documented.", string(family)),
		table: table,
	}
}

// NewLibraryList lists every creature in catalog order.
func NewLibraryList(cat *catalog.Catalog, width int) *ListView {
	table := components.NewTable(creatureColumns(width))
	n := 0
	for c := range cat.Creatures() {
		n++
		table.AddRow(creatureRow(n, c, width)...)
	}

	var counts []string
	for _, fc := range cat.Families() {
		if fc.Count > 0 {
			counts = append(counts, fmt.Sprintf("%s %d", fc.Family, fc.Count))
		}
	}
	table.SetFooter(fmt.Sprintf("%d total | %s", n, strings.Join(counts, ", ")))

	return &ListView{
		title: "═══ LIBRARY ═══",
		empty: "The library is empty.",
		table: table,
	}
}

// NewFarmList lists the farm entries in the order they were added.
func NewFarmList(f *farm.Farm, now time.Time, width int) *ListView {
	cols := []components.Column{
		{Title: "#", Width: 3, Align: lipgloss.Right},
		{Title: "Name", Width: 14},
		{Title: "Family", Width: 8},
	}
	if width >= 60 {
		cols = append(cols,
			components.Column{Title: "Added", Width: 14},
			components.Column{Title: "ID", Width: 8},
		)
	}

	table := components.NewTable(cols)
	for i, e := range f.Entries() {
		row := []string{fmt.Sprintf("%d", i+1), e.Creature.Name, e.Creature.Family.String()}
		if width >= 60 {
			row = append(row, util.RelativeTimeString(e.AddedAt, now), util.ShortID(e.ID))
		}
		table.AddRow(row...)
	}
	table.SetFooter(fmt.Sprintf("%d/%d slots used", f.Len(), f.Limit()))

	return &ListView{
		title: "═══ FARM ═══",
		empty: "The farm is empty. Look up a creature and answer y to add it.",
		table: table,
	}
}

// Empty reports whether the list has no rows.
func (v *ListView) Empty() bool {
	return v.table.Empty()
}

// Render renders the list.
func (v *ListView) Render() string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	var b strings.Builder
	b.WriteString(titleStyle.Render(v.title))
	b.WriteString("\n\n")

	if v.table.Empty() {
		b.WriteString(labelStyle.Render(v.empty))
		return b.String()
	}

	b.WriteString(v.table.Render())
	return b.String()
}
