package dex

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/monsterdex/monsterdex/internal/catalog"
	"github.com/monsterdex/monsterdex/internal/farm"
	"github.com/monsterdex/monsterdex/internal/models"
)

func creatureLine(name, family string, hp int) string {
	tokens := []string{name, family, "40", "1", strconv.Itoa(hp), "2", "5", "6", "3", "3", "Blaze", "-", "Heal"}
	for i := 0; i < models.ResistanceCount; i++ {
		tokens = append(tokens, strconv.Itoa(i%4))
	}
	return strings.Join(tokens, " ")
}

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	fsys := fstest.MapFS{
		catalog.DefaultUsageFile: {Data: []byte("Slime SlimeKnight KingSlime\n")},
		catalog.DefaultParentageFile: {Data: []byte(
			"SlimeKnight Slime Dragon\n" +
				"KingSlime Slime Slime Healer\n")},
		catalog.DefaultCreatureFile: {Data: []byte(strings.Join([]string{
			creatureLine("Slime", "slime", 8),
			creatureLine("SlimeKnight", "slime", 20),
			creatureLine("Dragon", "dragon", 60),
			creatureLine("Healer", "slime", 12),
		}, "\n") + "\n")},
	}
	cat, err := catalog.Build(context.Background(), fsys, catalog.DefaultFiles(), nil)
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}
	return cat
}

func TestEntryView_Render(t *testing.T) {
	cat := newTestCatalog(t)
	view := NewEntryView(cat)

	knight, _ := cat.FindByName("slimeknight")
	output := view.Render(knight, 120)

	for _, want := range []string{
		"SlimeKnight | Slime Family",
		"HP:",
		"20",
		"Blaze",
		"Heal",
		"SlimeKnight can be bred with:",
		"Slime x Dragon",
		"SlimeKnight is not used in any breeding patterns!",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
	if strings.Contains(output, "RESISTANCES") {
		t.Error("resistances shown while toggled off")
	}
}

func TestEntryView_RenderUnbreedable(t *testing.T) {
	cat := newTestCatalog(t)
	view := NewEntryView(cat)

	slime, _ := cat.FindByName("Slime")
	output := view.Render(slime, 120)

	if !strings.Contains(output, "There is no way to breed Slime!") {
		t.Errorf("expected empty breeding message:\n%s", output)
	}
	if !strings.Contains(output, "Slime can produce:") {
		t.Errorf("expected produce list:\n%s", output)
	}
	// KingSlime has relations but no creature record
	if !strings.Contains(output, "KingSlime *") {
		t.Errorf("expected unresolved marker on KingSlime:\n%s", output)
	}
	if !strings.Contains(output, "not documented in the catalog") {
		t.Error("expected unresolved legend")
	}
}

func TestEntryView_Resistances(t *testing.T) {
	cat := newTestCatalog(t)
	view := NewEntryView(cat)
	view.SetShowResistances(true)

	if !view.ShowResistances() {
		t.Fatal("expected toggle to stick")
	}

	dragon, _ := cat.FindByName("Dragon")
	output := view.Render(dragon, 120)
	if !strings.Contains(output, "RESISTANCES") || !strings.Contains(output, "Geyser") {
		t.Errorf("expected resistance table:\n%s", output)
	}
}

func TestEntryView_StoredCreature(t *testing.T) {
	view := NewEntryView(nil)
	view.SetShowResistances(true)

	stored := &models.Creature{
		Name:     "KingSlime",
		Family:   models.FamilySlime,
		Skills:   models.Skills{"Heal", "-", "-"},
		Parents:  []string{"Slime", "Slime", "Healer"},
		Produces: []string{"Zombie"},
	}
	output := view.Render(stored, 120)

	for _, want := range []string{
		"KingSlime | Slime Family",
		"Slime x Slime",
		"  Healer",
		"KingSlime can produce:",
		"Zombie",
		"RESISTANCES",
		"Geyser",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
	if strings.Contains(output, unresolvedMark) || strings.Contains(output, "not documented") {
		t.Errorf("stored relations should not be marked unresolved:\n%s", output)
	}
}

func TestEntryView_Nil(t *testing.T) {
	view := NewEntryView(newTestCatalog(t))
	if !strings.Contains(view.Render(nil, 80), "No creature selected") {
		t.Error("expected placeholder for nil creature")
	}
}

func TestFamilyList(t *testing.T) {
	cat := newTestCatalog(t)

	list := NewFamilyList(cat, models.FamilySlime, 120)
	output := list.Render()
	if !strings.Contains(output, "SLIME FAMILY") {
		t.Error("expected family title")
	}
	if !strings.Contains(output, "3 in family") {
		t.Errorf("expected count footer:\n%s", output)
	}
	if strings.Contains(output, "Dragon") {
		t.Error("dragon listed under slime family")
	}

	empty := NewFamilyList(cat, models.FamilyZombie, 120)
	if !empty.Empty() {
		t.Error("expected empty zombie list")
	}
	if !strings.Contains(empty.Render(), "No creatures of the zombie family") {
		t.Error("expected empty family message")
	}
}

func TestLibraryList(t *testing.T) {
	cat := newTestCatalog(t)

	output := NewLibraryList(cat, 120).Render()
	for _, want := range []string{"LIBRARY", "Slime", "Healer", "Dragon", "4 total"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in library:\n%s", want, output)
		}
	}

	narrow := NewLibraryList(cat, 40).Render()
	if strings.Contains(narrow, "Skills") {
		t.Error("expected skills column dropped on narrow terminal")
	}
}

func TestFarmList(t *testing.T) {
	cat := newTestCatalog(t)
	f := farm.New(3)

	if !NewFarmList(f, time.Now(), 120).Empty() {
		t.Fatal("expected empty farm list")
	}

	slime, _ := cat.FindByName("Slime")
	if _, err := f.Add(slime); err != nil {
		t.Fatalf("Add: %v", err)
	}

	output := NewFarmList(f, time.Now(), 120).Render()
	if !strings.Contains(output, "Slime") || !strings.Contains(output, "1/3 slots used") {
		t.Errorf("unexpected farm list:\n%s", output)
	}
}
