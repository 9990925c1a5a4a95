// Package dex provides TUI views for catalog entries, listings and the farm.
package dex

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/monsterdex/monsterdex/internal/catalog"
	"github.com/monsterdex/monsterdex/internal/models"
)

// unresolvedMark follows names that no creature record documents.
const unresolvedMark = " *"

// EntryView renders the full entry of one creature.
type EntryView struct {
	catalog         *catalog.Catalog
	showResistances bool
}

// NewEntryView creates a new entry view over the catalog. With a nil
// catalog the view renders the relation lists the creature carries, without
// checking which names are documented.
func NewEntryView(cat *catalog.Catalog) *EntryView {
	return &EntryView{catalog: cat}
}

// SetShowResistances toggles the resistance table.
func (v *EntryView) SetShowResistances(show bool) {
	v.showResistances = show
}

// ShowResistances reports whether the resistance table is rendered.
func (v *EntryView) ShowResistances() bool {
	return v.showResistances
}

// Render renders the entry, responsive to the given width.
func (v *EntryView) Render(c *models.Creature, width int) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Underline(true)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#006600"))

	labelWidth := 5
	columnWidth := 16
	if width < 60 {
		columnWidth = 0
	}
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Width(labelWidth)

	if c == nil {
		return mutedStyle.Render("No creature selected")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("═══ %s | %s Family ═══", c.Name, c.Family)))
	b.WriteString("\n\n")

	// Stats, paired the way the game's status screen shows them
	b.WriteString(sectionStyle.Render("STATS"))
	b.WriteString("\n")
	s := c.Stats
	pairs := [][2]struct {
		label string
		value int
	}{
		{{"LVL", s.MaxLevel}, {"ATK", s.Attack}},
		{{"EXP", s.ExpGrowth}, {"DEF", s.Defense}},
		{{"HP", s.HP}, {"AGL", s.Agility}},
		{{"MP", s.MP}, {"INT", s.Intelligence}},
	}
	for _, p := range pairs {
		left := labelStyle.Render(p[0].label+":") + " " + valueStyle.Render(fmt.Sprintf("%d", p[0].value))
		right := labelStyle.Render(p[1].label+":") + " " + valueStyle.Render(fmt.Sprintf("%d", p[1].value))
		if columnWidth == 0 {
			b.WriteString(left + "\n" + right + "\n")
			continue
		}
		b.WriteString(lipgloss.NewStyle().Width(columnWidth).Render(left) + right + "\n")
	}
	b.WriteString("\n")

	// Skills
	b.WriteString(sectionStyle.Render("SKILLS"))
	b.WriteString("\n")
	for i, skill := range c.Skills {
		label := labelStyle.Render(fmt.Sprintf("%d:", i+1))
		if models.IsPlaceholderSkill(skill) {
			b.WriteString(label + " " + mutedStyle.Render("-") + "\n")
			continue
		}
		b.WriteString(label + " " + valueStyle.Render(skill) + "\n")
	}
	b.WriteString("\n")

	// Breeding
	b.WriteString(sectionStyle.Render("BREEDING"))
	b.WriteString("\n")
	unresolved := false

	pairsOf := v.parentPairs(c)
	if len(pairsOf) == 0 {
		b.WriteString(valueStyle.Render(fmt.Sprintf("There is no way to breed %s!", c.Name)))
		b.WriteString("\n")
	} else {
		b.WriteString(valueStyle.Render(c.Name + " can be bred with:"))
		b.WriteString("\n")
		for _, p := range pairsOf {
			line := "  " + v.refName(p.Pedigree)
			if p.Mate.Name != "" {
				line += " x " + v.refName(p.Mate)
			}
			unresolved = unresolved || v.unresolved(p.Pedigree) || (p.Mate.Name != "" && v.unresolved(p.Mate))
			b.WriteString(valueStyle.Render(line))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	children := v.producible(c)
	if len(children) == 0 {
		b.WriteString(valueStyle.Render(fmt.Sprintf("%s is not used in any breeding patterns!", c.Name)))
		b.WriteString("\n")
	} else {
		b.WriteString(valueStyle.Render(c.Name + " can produce:"))
		b.WriteString("\n")
		for _, child := range children {
			unresolved = unresolved || v.unresolved(child)
			b.WriteString(valueStyle.Render("  " + v.refName(child)))
			b.WriteString("\n")
		}
	}

	if unresolved {
		b.WriteString(mutedStyle.Render(strings.TrimSpace(unresolvedMark) + " not documented in the catalog"))
		b.WriteString("\n")
	}

	if v.showResistances {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("RESISTANCES"))
		b.WriteString("\n")
		b.WriteString(v.renderResistances(c, width))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (v *EntryView) renderResistances(c *models.Creature, width int) string {
	const cellWidth = 16
	cols := max(width/cellWidth, 1)
	tax := v.taxonomy()

	var b strings.Builder
	for i, value := range c.Resistances {
		cell := fmt.Sprintf("%-11s %2d", tax.ResistanceCategory(i).Label, value)
		if i%cols == cols-1 || i == len(c.Resistances)-1 {
			b.WriteString(cell)
			if i < len(c.Resistances)-1 {
				b.WriteString("\n")
			}
			continue
		}
		b.WriteString(fmt.Sprintf("%-*s", cellWidth, cell))
	}
	return b.String()
}

func (v *EntryView) parentPairs(c *models.Creature) []catalog.Pair {
	if v.catalog == nil {
		return catalog.PairUp(rawRefs(c.Parents))
	}
	return v.catalog.ParentPairs(c.Name)
}

func (v *EntryView) producible(c *models.Creature) []catalog.Ref {
	if v.catalog == nil {
		return rawRefs(c.Produces)
	}
	return v.catalog.ProducibleFrom(c.Name)
}

func (v *EntryView) taxonomy() *models.Taxonomy {
	if v.catalog == nil {
		return models.DefaultTaxonomy()
	}
	return v.catalog.Taxonomy()
}

// unresolved reports a ref the catalog could not match. Without a catalog
// nothing is reported.
func (v *EntryView) unresolved(r catalog.Ref) bool {
	return v.catalog != nil && !r.Resolved()
}

func (v *EntryView) refName(r catalog.Ref) string {
	if r.Resolved() {
		return r.Creature.Name
	}
	if v.unresolved(r) {
		return r.Name + unresolvedMark
	}
	return r.Name
}

func rawRefs(names []string) []catalog.Ref {
	refs := make([]catalog.Ref, len(names))
	for i, n := range names {
		refs[i] = catalog.Ref{Name: n}
	}
	return refs
}
