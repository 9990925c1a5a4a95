// Package catalog builds the immutable monster catalog from the data files
// and answers lookups against it. A built Catalog is never mutated and is
// safe for concurrent readers.
package catalog

import (
	"iter"

	"github.com/monsterdex/monsterdex/internal/models"
)

// Catalog holds the roster of creatures and both breeding relation indices.
type Catalog struct {
	tax     *models.Taxonomy
	roster  []*models.Creature
	byName  map[string]*models.Creature
	uses    relationIndex
	parents relationIndex
}

// Ref is a name taken from a relation file. Creature is nil when no creature
// record carries that name.
type Ref struct {
	Name     string
	Creature *models.Creature
}

// Resolved reports whether the name matched a creature record.
func (r Ref) Resolved() bool {
	return r.Creature != nil
}

// Pair is one (pedigree, mate) couple read positionally from a parent list.
// Mate.Name is empty when the list has an odd trailing name.
type Pair struct {
	Pedigree Ref
	Mate     Ref
}

// FamilyCount is the number of creatures in one family.
type FamilyCount struct {
	Family models.Family
	Count  int
}

// Taxonomy returns the taxonomy the catalog was built with.
func (c *Catalog) Taxonomy() *models.Taxonomy {
	return c.tax
}

// Len returns the number of creatures in the roster.
func (c *Catalog) Len() int {
	return len(c.roster)
}

// FindByName returns the creature whose name matches query, ignoring case
// and surrounding whitespace.
func (c *Catalog) FindByName(query string) (*models.Creature, bool) {
	creature, ok := c.byName[models.NameKey(query)]
	return creature, ok
}

// FindByFamily yields the creatures of the given family in file order.
// The sequence may be ranged over any number of times.
func (c *Catalog) FindByFamily(family models.Family) iter.Seq[*models.Creature] {
	return func(yield func(*models.Creature) bool) {
		for _, creature := range c.roster {
			if creature.Family != family {
				continue
			}
			if !yield(creature) {
				return
			}
		}
	}
}

// Creatures yields every creature in file order.
func (c *Catalog) Creatures() iter.Seq[*models.Creature] {
	return func(yield func(*models.Creature) bool) {
		for _, creature := range c.roster {
			if !yield(creature) {
				return
			}
		}
	}
}

// Families returns the creature count of every family in taxonomy order,
// including families with no members.
func (c *Catalog) Families() []FamilyCount {
	counts := make(map[models.Family]int)
	for _, creature := range c.roster {
		counts[creature.Family]++
	}

	families := c.tax.Families()
	out := make([]FamilyCount, 0, len(families))
	for _, f := range families {
		out = append(out, FamilyCount{Family: f, Count: counts[f]})
	}
	return out
}

// BreedingPartnersOf returns the raw parent list recorded for name, in file
// order. Names that appear in the list more than once are kept.
func (c *Catalog) BreedingPartnersOf(name string) []Ref {
	return c.resolve(c.parents.get(models.NameKey(name)))
}

// ParentPairs reads the parent list of name two names at a time. The
// grouping is positional only; nothing about the data guarantees it.
func (c *Catalog) ParentPairs(name string) []Pair {
	return PairUp(c.BreedingPartnersOf(name))
}

// PairUp groups refs two at a time. An odd trailing ref gets an empty mate.
func PairUp(refs []Ref) []Pair {
	pairs := make([]Pair, 0, (len(refs)+1)/2)
	for i := 0; i < len(refs); i += 2 {
		p := Pair{Pedigree: refs[i]}
		if i+1 < len(refs) {
			p.Mate = refs[i+1]
		}
		pairs = append(pairs, p)
	}
	return pairs
}

// ProducibleFrom returns the creatures name can help produce, in file order.
func (c *Catalog) ProducibleFrom(name string) []Ref {
	return c.resolve(c.uses.get(models.NameKey(name)))
}

// Unresolved returns every name mentioned in either relation file that no
// creature record carries. Each name appears once, in the order first seen
// (usage file first).
func (c *Catalog) Unresolved() []string {
	var out []string
	seen := make(map[string]bool)

	check := func(name string) {
		key := models.NameKey(name)
		if seen[key] {
			return
		}
		seen[key] = true
		if _, ok := c.byName[key]; !ok {
			out = append(out, name)
		}
	}

	for _, idx := range []*relationIndex{&c.uses, &c.parents} {
		for _, key := range idx.order {
			check(idx.names[key])
			for _, related := range idx.related[key] {
				check(related)
			}
		}
	}

	return out
}

// UsageEntries yields each usage-index entry as (parent, children), in the
// order the parent names first appeared in the usage file.
func (c *Catalog) UsageEntries() iter.Seq2[string, []string] {
	return c.uses.all()
}

// ParentEntries yields each parents-index entry as (child, parents), in the
// order the child names first appeared in the parentage file.
func (c *Catalog) ParentEntries() iter.Seq2[string, []string] {
	return c.parents.all()
}

func (c *Catalog) resolve(names []string) []Ref {
	refs := make([]Ref, len(names))
	for i, name := range names {
		refs[i] = Ref{Name: name, Creature: c.byName[models.NameKey(name)]}
	}
	return refs
}
