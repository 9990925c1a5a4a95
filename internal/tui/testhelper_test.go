package tui

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/monsterdex/monsterdex/internal/catalog"
	"github.com/monsterdex/monsterdex/internal/config"
	"github.com/monsterdex/monsterdex/internal/models"
)

func creatureLine(name, family string) string {
	tokens := []string{name, family, "40", "1", "8", "2", "5", "6", "3", "3", "Blaze", "-", "Heal"}
	for i := 0; i < models.ResistanceCount; i++ {
		tokens = append(tokens, strconv.Itoa(i%4))
	}
	return strings.Join(tokens, " ")
}

// newTestCatalog builds a small catalog from in-memory data files.
func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	fsys := fstest.MapFS{
		catalog.DefaultUsageFile: {Data: []byte(
			"Slime SlimeKnight KingSlime\n" +
				"Dragon SlimeKnight\n")},
		catalog.DefaultParentageFile: {Data: []byte(
			"SlimeKnight Slime Dragon\n" +
				"KingSlime Slime Slime\n")},
		catalog.DefaultCreatureFile: {Data: []byte(strings.Join([]string{
			creatureLine("Slime", "slime"),
			creatureLine("SlimeKnight", "slime"),
			creatureLine("Dragon", "dragon"),
			creatureLine("Healer", "slime"),
		}, "\n") + "\n")},
	}

	cat, err := catalog.Build(context.Background(), fsys, catalog.DefaultFiles(), nil)
	if err != nil {
		t.Fatalf("building test catalog: %v", err)
	}
	return cat
}

// newTestApp creates an App over the test catalog with a default config.
// The window is set to 120x40 and marked ready.
func newTestApp(t *testing.T) *App {
	t.Helper()
	return newTestAppWithConfig(t, config.Default())
}

func newTestAppWithConfig(t *testing.T, cfg *config.Config) *App {
	t.Helper()

	app := New(newTestCatalog(t), cfg)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	app.now = func() time.Time { return fixed }

	// Simulate a window size message to make the app ready
	app.width = 120
	app.height = 40
	app.ready = true
	app.updateViewDimensions()

	return app
}

// typeLine fills the prompt with text and presses enter.
func typeLine(app *App, text string) tea.Cmd {
	app.input.SetValue(text)
	_, cmd := app.Update(specialKeyMsg(tea.KeyEnter))
	return cmd
}

// lastBlock returns the newest transcript block.
func lastBlock(app *App) string {
	if len(app.transcript) == 0 {
		return ""
	}
	return app.transcript[len(app.transcript)-1]
}

// transcriptText joins the whole transcript.
func transcriptText(app *App) string {
	return strings.Join(app.transcript, "\n\n")
}

// keyMsg creates a tea.KeyMsg for a regular character key.
func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// specialKeyMsg creates a tea.KeyMsg for a special key type.
func specialKeyMsg(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}
