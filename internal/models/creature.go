// Package models defines the domain models for monsterdex.
package models

import (
	"fmt"
	"strings"
)

// Field counts for one creature record.
const (
	StatCount       = 8
	SkillCount      = 3
	ResistanceCount = 27

	// RecordFieldCount is the exact token count of a creature line:
	// name, family, stats, skills, resistances.
	RecordFieldCount = 2 + StatCount + SkillCount + ResistanceCount
)

// Family is a creature family tag.
type Family string

const (
	FamilySlime    Family = "slime"
	FamilyDragon   Family = "dragon"
	FamilyBeast    Family = "beast"
	FamilyBird     Family = "bird"
	FamilyPlant    Family = "plant"
	FamilyBug      Family = "bug"
	FamilyDevil    Family = "devil"
	FamilyZombie   Family = "zombie"
	FamilyMaterial Family = "material"
	FamilyWater    Family = "water"
	FamilyUnknown  Family = "unknown"
)

// Valid returns true if the family is one of the known tags, including unknown.
func (f Family) Valid() bool {
	switch f {
	case FamilySlime, FamilyDragon, FamilyBeast, FamilyBird, FamilyPlant,
		FamilyBug, FamilyDevil, FamilyZombie, FamilyMaterial, FamilyWater,
		FamilyUnknown:
		return true
	default:
		return false
	}
}

// String returns the display string for the family.
func (f Family) String() string {
	if f == FamilyUnknown || f == "" {
		return "???"
	}
	return strings.ToUpper(string(f[:1])) + string(f[1:])
}

// Stats holds the eight numeric stat fields of a creature.
type Stats struct {
	MaxLevel     int `json:"max_level" yaml:"max_level"`
	ExpGrowth    int `json:"exp_growth" yaml:"exp_growth"`
	HP           int `json:"hp" yaml:"hp"`
	MP           int `json:"mp" yaml:"mp"`
	Attack       int `json:"attack" yaml:"attack"`
	Defense      int `json:"defense" yaml:"defense"`
	Agility      int `json:"agility" yaml:"agility"`
	Intelligence int `json:"intelligence" yaml:"intelligence"`
}

// StatNames lists the stat fields in file column order.
var StatNames = [StatCount]string{
	"max_level", "exp_growth", "hp", "mp", "attack", "defense", "agility", "intelligence",
}

// StatsFromValues builds Stats from values in file column order.
func StatsFromValues(v [StatCount]int) Stats {
	return Stats{
		MaxLevel:     v[0],
		ExpGrowth:    v[1],
		HP:           v[2],
		MP:           v[3],
		Attack:       v[4],
		Defense:      v[5],
		Agility:      v[6],
		Intelligence: v[7],
	}
}

// Values returns the stats in file column order.
func (s Stats) Values() [StatCount]int {
	return [StatCount]int{
		s.MaxLevel, s.ExpGrowth, s.HP, s.MP,
		s.Attack, s.Defense, s.Agility, s.Intelligence,
	}
}

// Skills holds the three innate skill slots of a creature.
type Skills [SkillCount]string

// Present returns the skills that are not placeholders, in slot order.
func (s Skills) Present() []string {
	var out []string
	for _, skill := range s {
		if !IsPlaceholderSkill(skill) {
			out = append(out, skill)
		}
	}
	return out
}

// IsPlaceholderSkill reports whether a skill token marks an empty slot.
func IsPlaceholderSkill(skill string) bool {
	switch strings.ToLower(strings.TrimSpace(skill)) {
	case "", "-", "--", "---", "none":
		return true
	default:
		return false
	}
}

// Resistances holds one value per resistance category, aligned with
// Taxonomy.ResistanceCategories.
type Resistances [ResistanceCount]int

// Creature represents one species entry in the catalog.
//
// Parents and Produces are derived from the relation files and hold raw
// creature names, which may not resolve to a catalog entry.
type Creature struct {
	Name        string      `json:"name" yaml:"name"`
	Family      Family      `json:"family" yaml:"family"`
	Stats       Stats       `json:"stats" yaml:"stats"`
	Skills      Skills      `json:"skills" yaml:"skills"`
	Resistances Resistances `json:"resistances" yaml:"resistances,flow"`

	Parents  []string `json:"parents" yaml:"parents,flow"`
	Produces []string `json:"produces" yaml:"produces,flow"`
}

// Key returns the case-insensitive lookup key for the creature.
func (c *Creature) Key() string {
	return NameKey(c.Name)
}

// Validate checks if the creature data is valid.
func (c *Creature) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !c.Family.Valid() {
		return fmt.Errorf("invalid family: %s", c.Family)
	}
	if c.Parents == nil || c.Produces == nil {
		return fmt.Errorf("relation lists must not be nil")
	}
	return nil
}

// NameKey normalizes a creature name for lookup.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
