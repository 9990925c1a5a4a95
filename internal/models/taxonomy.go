package models

import "strings"

// ResistanceCategory is one column of the resistance table: a short label and
// the skills the resistance value applies to.
type ResistanceCategory struct {
	Label  string   `json:"label" yaml:"label"`
	Skills []string `json:"skills" yaml:"skills,flow"`
}

// Taxonomy holds the fixed reference tables shared by the parser, the catalog
// and the interactive layer. Build it once with DefaultTaxonomy and pass it by
// pointer; it is never mutated after construction.
type Taxonomy struct {
	families    []Family
	aliases     map[string]Family
	resistances [ResistanceCount]ResistanceCategory
}

// DefaultTaxonomy returns the family and resistance tables for the game data.
func DefaultTaxonomy() *Taxonomy {
	families := []Family{
		FamilySlime, FamilyDragon, FamilyBeast, FamilyBird, FamilyPlant,
		FamilyBug, FamilyDevil, FamilyZombie, FamilyMaterial, FamilyWater,
		FamilyUnknown,
	}

	aliases := make(map[string]Family, len(families)+1)
	for _, f := range families {
		aliases[string(f)] = f
	}
	// The data files spell the unknown family as "???".
	aliases["???"] = FamilyUnknown

	return &Taxonomy{
		families: families,
		aliases:  aliases,
		resistances: [ResistanceCount]ResistanceCategory{
			{"Blaze", []string{"Blaze", "Blazemore", "Blazemost", "BigBang", "FireSlash"}},
			{"Firebal", []string{"Firebal", "Firebane", "Firebolt"}},
			{"Bang", []string{"Bang", "Boom", "Explodet"}},
			{"Infernos", []string{"WindBeast", "Vacuum", "Infernos", "Infermore", "Infermost", "MultiCut", "VacuSlash"}},
			{"Bolt", []string{"Lightning", "Bolt", "Zap", "Thordain", "Hellblast", "BoltSlash"}},
			{"IceBolt", []string{"IceBolt", "SnowStorm", "Blizzard", "IceSlash"}},
			{"Surround", []string{"Radiant", "Surround", "SandStorm"}},
			{"Sleep", []string{"Sleep", "NapAttack", "SleepAir", "SleepAll"}},
			{"Beat", []string{"EerieLite", "UltraDown", "Beat", "K.O.Dance", "Defeat"}},
			{"RobMagic", []string{"OddDance", "RobDance", "RobMagic"}},
			{"StopSpell", []string{"StopSpell"}},
			{"Panic", []string{"PaniDance", "PanicAll"}},
			{"Sap", []string{"Sap", "Defense", "SickLick"}},
			{"Slow", []string{"Slow", "SlowAll"}},
			{"Sacrifice", []string{"Sacrifice", "Kamikaze", "Ramming"}},
			{"MegaMagic", []string{"MegaMagic"}},
			{"FireAir", []string{"FireAir", "BlazeAir", "Scorching", "WhiteFire"}},
			{"FrigidAir", []string{"FrigidAir", "IceAir", "IceStorm", "WhiteAir"}},
			{"Poison", []string{"PoisonHit", "PoisonGas", "PoisonAir"}},
			{"Paralyze", []string{"Paralyze", "PalsyAir"}},
			{"Curse", []string{"Curse"}},
			{"LegSweep", []string{"LegSweep", "LushLicks", "Ahhh", "BigTrip", "WarCry", "LureDance"}},
			{"DanceShut", []string{"DanceShut"}},
			{"MouthShut", []string{"MouthShut"}},
			{"CallHelp", []string{"RockThrow", "CallHelp", "YellHelp"}},
			{"GigaSlash", []string{"GigaSlash"}},
			{"Geyser", []string{"Geyser", "Watershot", "Tidalwave"}},
		},
	}
}

// Families returns the family tags in display order. Unknown is last.
func (t *Taxonomy) Families() []Family {
	out := make([]Family, len(t.families))
	copy(out, t.families)
	return out
}

// LookupFamily returns the family named by s, case-insensitively.
// It reports false when s is not a family tag.
func (t *Taxonomy) LookupFamily(s string) (Family, bool) {
	f, ok := t.aliases[strings.ToLower(strings.TrimSpace(s))]
	return f, ok
}

// ParseFamily maps a family string from the data files to a tag.
// Unrecognized strings map to FamilyUnknown.
func (t *Taxonomy) ParseFamily(s string) Family {
	if f, ok := t.LookupFamily(s); ok {
		return f
	}
	return FamilyUnknown
}

// ResistanceCategories returns the 27 resistance categories in column order.
func (t *Taxonomy) ResistanceCategories() []ResistanceCategory {
	out := make([]ResistanceCategory, ResistanceCount)
	copy(out, t.resistances[:])
	return out
}

// ResistanceCategory returns the category for column i.
func (t *Taxonomy) ResistanceCategory(i int) ResistanceCategory {
	return t.resistances[i]
}
