package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/monsterdex/monsterdex/internal/catalog"
	"github.com/monsterdex/monsterdex/internal/config"
)

func TestApp_InitialState(t *testing.T) {
	app := newTestApp(t)

	if !app.ready {
		t.Error("expected app to be ready")
	}
	if app.quitting {
		t.Error("expected app not to be quitting")
	}
	if app.mode != modeCommand {
		t.Error("expected command mode initially")
	}
	if app.farm.Len() != 0 {
		t.Error("expected empty farm")
	}
	if app.farm.Limit() != config.Default().Farm.Limit {
		t.Errorf("expected farm limit from config, got %d", app.farm.Limit())
	}
	if !strings.Contains(lastBlock(app), "Enter a creature name") {
		t.Error("expected welcome banner in transcript")
	}
}

func TestApp_View_NotReady(t *testing.T) {
	app := newTestApp(t)
	app.ready = false

	if !strings.Contains(app.View(), "Initializing") {
		t.Error("expected initialization message when not ready")
	}
}

func TestApp_View_Quitting(t *testing.T) {
	app := newTestApp(t)
	app.quitting = true

	if !strings.Contains(app.View(), "session closed") {
		t.Error("expected shutdown message when quitting")
	}
}

func TestApp_View_Chrome(t *testing.T) {
	app := newTestApp(t)
	output := app.View()

	for _, want := range []string{"MONSTERDEX", "CATALOG: 4", "FARM: 0/30", "[F10]Quit", commandPrompt} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}

func TestApp_Lookup(t *testing.T) {
	app := newTestApp(t)
	typeLine(app, "  SLIMEKNIGHT ")

	entry := app.transcript[len(app.transcript)-1]
	if !strings.Contains(entry, "SlimeKnight | Slime Family") {
		t.Fatalf("expected entry, got:\n%s", entry)
	}
	if !strings.Contains(entry, "SlimeKnight can be bred with:") {
		t.Error("expected breeding section")
	}
	if app.mode != modeConfirmAdd {
		t.Error("expected add-to-farm question after lookup")
	}
	if app.pending == nil || app.pending.Name != "SlimeKnight" {
		t.Errorf("expected pending SlimeKnight, got %+v", app.pending)
	}
	if app.input.Prompt != addPrompt {
		t.Errorf("expected add prompt, got %q", app.input.Prompt)
	}
}

func TestApp_AddToFarm(t *testing.T) {
	tests := []struct {
		reply   string
		added   bool
		message string
	}{
		{"y", true, "was added to the farm (1/30)"},
		{"YES", true, "was added to the farm"},
		{"n", false, "was not added"},
		{"maybe", false, "was not added"},
		{"", false, "was not added"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("reply %q", tt.reply), func(t *testing.T) {
			app := newTestApp(t)
			typeLine(app, "slime")
			typeLine(app, tt.reply)

			if got := app.farm.Contains("Slime"); got != tt.added {
				t.Errorf("farm contains Slime = %v, want %v", got, tt.added)
			}
			if !strings.Contains(lastBlock(app), tt.message) {
				t.Errorf("expected %q, got %q", tt.message, lastBlock(app))
			}
			if app.mode != modeCommand || app.pending != nil {
				t.Error("expected return to command mode")
			}
			if app.input.Prompt != commandPrompt {
				t.Errorf("expected command prompt, got %q", app.input.Prompt)
			}
		})
	}
}

func TestApp_AddToFarm_EscDeclines(t *testing.T) {
	app := newTestApp(t)
	typeLine(app, "slime")
	app.Update(specialKeyMsg(tea.KeyEscape))

	if app.farm.Len() != 0 {
		t.Error("expected Esc to decline")
	}
	if app.mode != modeCommand {
		t.Error("expected command mode after Esc")
	}
}

func TestApp_AddToFarm_Full(t *testing.T) {
	cfg := config.Default()
	cfg.Farm.Limit = 1
	app := newTestAppWithConfig(t, cfg)

	typeLine(app, "slime")
	typeLine(app, "y")
	typeLine(app, "dragon")
	typeLine(app, "y")

	if app.farm.Len() != 1 {
		t.Errorf("expected farm to stay at limit, got %d", app.farm.Len())
	}
	if len(app.alerts) == 0 || app.alerts[0].Level != AlertWarning {
		t.Fatalf("expected warning alert, got %+v", app.alerts)
	}
	if !strings.Contains(app.renderAlertBar(), "Farm is full") {
		t.Error("expected full farm warning in alert bar")
	}
}

func TestApp_ShowFarmAfterSearch(t *testing.T) {
	cfg := config.Default()
	cfg.Display.ShowFarmAfterSearch = true
	app := newTestAppWithConfig(t, cfg)

	typeLine(app, "healer")
	typeLine(app, "y")

	if !strings.Contains(lastBlock(app), "FARM") || !strings.Contains(lastBlock(app), "Healer") {
		t.Errorf("expected farm listing after answer, got:\n%s", lastBlock(app))
	}
}

func TestApp_UnknownName(t *testing.T) {
	app := newTestApp(t)
	typeLine(app, "slim")

	block := lastBlock(app)
	if !strings.Contains(block, `No creature named "slim".`) {
		t.Errorf("unexpected block %q", block)
	}
	if !strings.Contains(block, "Did you mean: Slime") {
		t.Errorf("expected suggestion, got %q", block)
	}
	if app.mode != modeCommand {
		t.Error("unknown name must not ask to add")
	}
}

func TestApp_LookCommand(t *testing.T) {
	fsys := fstest.MapFS{
		catalog.DefaultUsageFile:     {Data: []byte("Farm Slime\n")},
		catalog.DefaultParentageFile: {Data: []byte("Slime Farm\n")},
		catalog.DefaultCreatureFile: {Data: []byte(
			creatureLine("Farm", "beast") + "\n" + creatureLine("Slime", "slime") + "\n")},
	}
	cat, err := catalog.Build(context.Background(), fsys, catalog.DefaultFiles(), nil)
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}

	app := New(cat, config.Default())
	app.width, app.height, app.ready = 120, 40, true
	app.updateViewDimensions()

	typeLine(app, "farm")
	if !strings.Contains(lastBlock(app), "═══ FARM ═══") {
		t.Fatalf("bare command word should run the command, got:\n%s", lastBlock(app))
	}

	typeLine(app, "look farm")
	if !strings.Contains(lastBlock(app), "Farm | Beast Family") {
		t.Fatalf("expected creature entry, got:\n%s", lastBlock(app))
	}
	if app.mode != modeConfirmAdd || app.pending == nil || app.pending.Name != "Farm" {
		t.Error("look should offer to add the creature")
	}

	typeLine(app, "n")
	typeLine(app, "LOOK   Slime ")
	if !strings.Contains(lastBlock(app), "Slime | Slime Family") {
		t.Errorf("expected Slime entry, got:\n%s", lastBlock(app))
	}

	typeLine(app, "n")
	typeLine(app, "look")
	if !strings.Contains(lastBlock(app), "Usage: look <name>") {
		t.Errorf("expected usage hint, got:\n%s", lastBlock(app))
	}
}

func TestApp_FamilyLookup(t *testing.T) {
	app := newTestApp(t)

	// a creature named like its family wins over the family listing
	typeLine(app, "SLIME")
	if !strings.Contains(lastBlock(app), "Slime | Slime Family") {
		t.Fatalf("expected creature entry, got:\n%s", lastBlock(app))
	}
	typeLine(app, "n")

	typeLine(app, "family slime")
	block := lastBlock(app)
	if !strings.Contains(block, "SLIME FAMILY") {
		t.Fatalf("expected family listing, got:\n%s", block)
	}
	for _, name := range []string{"Slime", "SlimeKnight", "Healer"} {
		if !strings.Contains(block, name) {
			t.Errorf("expected %s in family listing", name)
		}
	}
	if strings.Contains(block, "Dragon") {
		t.Error("dragon listed under slime family")
	}

	typeLine(app, "Bird ")
	if !strings.Contains(lastBlock(app), "No creatures of the bird family") {
		t.Errorf("expected bare family name to list the family, got:\n%s", lastBlock(app))
	}
	if app.mode != modeCommand {
		t.Error("family listing must not ask to add")
	}

	typeLine(app, "family")
	if !strings.Contains(lastBlock(app), "FAMILIES") {
		t.Error("expected family overview")
	}

	typeLine(app, "family robots")
	if len(app.alerts) == 0 || !strings.Contains(app.alerts[0].Message, "robots") {
		t.Error("expected unknown family alert")
	}
}

func TestApp_Commands(t *testing.T) {
	tests := []struct {
		command string
		want    string
	}{
		{"library", "4 total"},
		{"farm", "The farm is empty"},
		{"save", "session only"},
		{"help", "COMMANDS"},
		{"clear", "Released 0 creature(s)"},
		{"release", "Usage: release"},
		{"release 3", `No farm slot "3"`},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			app := newTestApp(t)
			typeLine(app, tt.command)

			if !strings.Contains(lastBlock(app), tt.want) {
				t.Errorf("%s: expected %q in:\n%s", tt.command, tt.want, lastBlock(app))
			}
		})
	}
}

func TestApp_FarmLifecycle(t *testing.T) {
	app := newTestApp(t)

	for _, name := range []string{"slime", "dragon", "slime"} {
		typeLine(app, name)
		typeLine(app, "y")
	}
	if app.farm.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", app.farm.Len())
	}

	typeLine(app, "farm")
	if !strings.Contains(lastBlock(app), "3/30 slots used") {
		t.Errorf("unexpected farm listing:\n%s", lastBlock(app))
	}

	typeLine(app, "release 2")
	if app.farm.Contains("Dragon") {
		t.Error("expected Dragon released")
	}
	if app.farm.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", app.farm.Len())
	}

	typeLine(app, "clear")
	if app.farm.Len() != 0 {
		t.Error("expected empty farm after clear")
	}
	if !strings.Contains(lastBlock(app), "Released 2 creature(s)") {
		t.Errorf("unexpected clear message %q", lastBlock(app))
	}
}

func TestApp_ResistToggle(t *testing.T) {
	cfg := config.Default()
	cfg.Display.ShowResistances = false
	app := newTestAppWithConfig(t, cfg)

	typeLine(app, "dragon")
	typeLine(app, "n")
	if strings.Contains(transcriptText(app), "RESISTANCES") {
		t.Fatal("resistances shown while off")
	}

	typeLine(app, "resist")
	if !app.entryView.ShowResistances() {
		t.Fatal("expected resistances on")
	}
	if !strings.Contains(app.renderAlertBar(), "RESIST ON") {
		t.Error("expected status to show resistances on")
	}

	typeLine(app, "dragon")
	if !strings.Contains(lastBlock(app), "Geyser") {
		t.Error("expected resistance table after toggle")
	}
}

func TestApp_EchoesInput(t *testing.T) {
	app := newTestApp(t)
	typeLine(app, "library")

	if !strings.Contains(transcriptText(app), "> library") {
		t.Error("expected echoed command in transcript")
	}
}

func TestApp_ExitCommand(t *testing.T) {
	app := newTestApp(t)
	cmd := typeLine(app, "exit")

	if !app.quitting {
		t.Error("expected app to be quitting after exit")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
}

func TestApp_ClearScreen(t *testing.T) {
	app := newTestApp(t)
	typeLine(app, "library")
	app.Update(specialKeyMsg(tea.KeyCtrlL))

	if len(app.transcript) != 0 {
		t.Errorf("expected empty transcript, got %d blocks", len(app.transcript))
	}
}

func TestApp_TranscriptIsBounded(t *testing.T) {
	app := newTestApp(t)
	for i := 0; i < maxTranscriptBlocks; i++ {
		typeLine(app, "save")
	}

	if len(app.transcript) != maxTranscriptBlocks {
		t.Errorf("expected %d blocks, got %d", maxTranscriptBlocks, len(app.transcript))
	}
}

func TestApp_QuitConfirmation_Show(t *testing.T) {
	app := newTestApp(t)
	app.Update(specialKeyMsg(tea.KeyCtrlC))

	if !app.showConfirm {
		t.Error("expected quit confirmation to show")
	}
}

func TestApp_QuitConfirmation_Cancel(t *testing.T) {
	app := newTestApp(t)
	app.Update(specialKeyMsg(tea.KeyF10))
	app.Update(keyMsg("n"))

	if app.showConfirm {
		t.Error("expected quit confirmation to be dismissed")
	}
	if app.quitting {
		t.Error("expected app not to be quitting after cancel")
	}
}

func TestApp_QuitConfirmation_Confirm(t *testing.T) {
	app := newTestApp(t)
	app.Update(specialKeyMsg(tea.KeyCtrlC))
	_, cmd := app.Update(keyMsg("y"))

	if !app.quitting {
		t.Error("expected app to be quitting after confirm")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
}

func TestApp_QuitConfirmation_IgnoresOtherKeys(t *testing.T) {
	app := newTestApp(t)
	app.Update(specialKeyMsg(tea.KeyCtrlC))
	app.Update(keyMsg("x"))

	if !app.showConfirm {
		t.Error("expected confirmation to stay open on unrelated key")
	}
	if app.input.Value() != "" {
		t.Error("keys pressed during the dialog must not reach the prompt")
	}
}

func TestApp_ConfirmDialog_Render(t *testing.T) {
	app := newTestApp(t)
	app.showConfirm = true

	if !strings.Contains(app.View(), "CONFIRM EXIT") {
		t.Error("expected confirm dialog in output")
	}
}

func TestApp_WindowResize(t *testing.T) {
	app := newTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	if app.width != 80 || app.height != 24 {
		t.Errorf("expected 80x24, got %dx%d", app.width, app.height)
	}
	if app.output.Width != 80 {
		t.Errorf("expected transcript width 80, got %d", app.output.Width)
	}
	if app.output.Height != 24-chromeLines {
		t.Errorf("expected transcript height %d, got %d", 24-chromeLines, app.output.Height)
	}
}

func TestApp_AlertsCapped(t *testing.T) {
	app := newTestApp(t)
	for i := 0; i < 15; i++ {
		app.AddAlert(AlertInfo, fmt.Sprintf("alert %d", i))
	}

	if len(app.alerts) != 10 {
		t.Errorf("expected 10 alerts, got %d", len(app.alerts))
	}
	if app.alerts[0].Message != "alert 14" {
		t.Errorf("expected newest alert first, got %q", app.alerts[0].Message)
	}

	app.ClearAlerts()
	if len(app.alerts) != 0 {
		t.Error("expected alerts cleared")
	}
}
