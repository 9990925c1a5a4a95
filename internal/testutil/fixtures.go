package testutil

import (
	"github.com/monsterdex/monsterdex/internal/models"
)

// FixtureCreature creates a test creature with sensible defaults.
func FixtureCreature(overrides ...func(*models.Creature)) *models.Creature {
	c := &models.Creature{
		Name:   "Slime",
		Family: models.FamilySlime,
		Stats: models.Stats{
			MaxLevel:     40,
			ExpGrowth:    1,
			HP:           4,
			MP:           2,
			Attack:       5,
			Defense:      6,
			Agility:      3,
			Intelligence: 3,
		},
		Skills:   models.Skills{"Blaze", "-", "Heal"},
		Parents:  []string{},
		Produces: []string{},
	}
	for i := range c.Resistances {
		c.Resistances[i] = i % 4
	}

	for _, override := range overrides {
		override(c)
	}

	return c
}

// FixtureNamedCreature creates a test creature with the given name and family.
func FixtureNamedCreature(name string, family models.Family, overrides ...func(*models.Creature)) *models.Creature {
	return FixtureCreature(append([]func(*models.Creature){func(c *models.Creature) {
		c.Name = name
		c.Family = family
	}}, overrides...)...)
}

// FamilyPtr returns a pointer to f.
func FamilyPtr(f models.Family) *models.Family {
	return &f
}
