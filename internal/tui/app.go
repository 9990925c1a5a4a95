package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/monsterdex/monsterdex/internal/catalog"
	"github.com/monsterdex/monsterdex/internal/config"
	"github.com/monsterdex/monsterdex/internal/farm"
	"github.com/monsterdex/monsterdex/internal/models"
	"github.com/monsterdex/monsterdex/internal/tui/views/dex"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const (
	// MaxContentWidth is the maximum width for content display
	MaxContentWidth = 120

	// header (2), alert bar (1), prompt (2), footer (2)
	chromeLines = 7

	maxTranscriptBlocks = 200
	suggestionLimit     = 3
)

const (
	commandPrompt = "> "
	addPrompt     = "Add to farm? (y/n) "
)

// promptMode selects how the next submitted line is read.
type promptMode int

const (
	modeCommand promptMode = iota
	modeConfirmAdd
)

// App is the main Bubble Tea application model.
type App struct {
	// Dependencies
	catalog *catalog.Catalog
	farm    *farm.Farm
	config  *config.Config
	now     func() time.Time

	// Views
	entryView *dex.EntryView

	// UI state
	theme       *Theme
	keys        KeyMap
	width       int
	height      int
	ready       bool
	quitting    bool
	showConfirm bool

	// Session
	input      textinput.Model
	output     viewport.Model
	transcript []string
	mode       promptMode
	pending    *models.Creature

	// Alerts
	alerts []Alert
}

// Alert represents a status line message.
type Alert struct {
	Level   AlertLevel
	Message string
	Time    time.Time
}

// AlertLevel indicates the severity of an alert.
type AlertLevel int

const (
	AlertInfo AlertLevel = iota
	AlertWarning
	AlertCritical
)

// New creates a new App instance over a loaded catalog.
func New(cat *catalog.Catalog, cfg *config.Config) *App {
	ti := textinput.New()
	ti.Prompt = commandPrompt
	ti.Placeholder = "creature name or command"
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()

	entryView := dex.NewEntryView(cat)
	entryView.SetShowResistances(cfg.Display.ShowResistances)

	a := &App{
		catalog:   cat,
		farm:      farm.New(cfg.Farm.Limit),
		config:    cfg,
		now:       time.Now,
		entryView: entryView,
		theme:     NewTheme(cfg.Display.ColorScheme),
		keys:      DefaultKeyMap(),
		input:     ti,
		output:    viewport.New(80, 20),
		alerts:    []Alert{},
	}
	a.appendBlock(a.renderWelcome())
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.updateViewDimensions()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// updateViewDimensions sizes the transcript and prompt to the terminal.
func (a *App) updateViewDimensions() {
	w := a.contentWidth()
	a.output.Width = w
	a.output.Height = ContentHeight(a.height, chromeLines)
	a.input.Width = max(w-lipgloss.Width(addPrompt)-1, 10)
	a.refreshOutput()
}

func (a *App) contentWidth() int {
	return ContentWidth(a.width, 40, MaxContentWidth)
}

// handleKeyPress processes key press events.
func (a *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle quit confirmation first (modal takes priority)
	if a.showConfirm {
		switch {
		case a.keys.Yes.Matches(msg), a.keys.Submit.Matches(msg):
			a.quitting = true
			return a, tea.Quit
		case a.keys.No.Matches(msg):
			a.showConfirm = false
		}
		return a, nil
	}

	switch {
	case a.keys.Quit.Matches(msg):
		a.showConfirm = true
		return a, nil

	case a.keys.Help.Matches(msg):
		a.appendBlock(a.renderHelp())
		return a, nil

	case a.keys.Clear.Matches(msg):
		a.transcript = nil
		a.refreshOutput()
		return a, nil

	case a.keys.IsScroll(msg):
		a.scroll(msg)
		return a, nil

	case a.keys.Submit.Matches(msg):
		line := a.input.Value()
		a.input.Reset()
		return a, a.submit(line)

	case a.keys.Cancel.Matches(msg):
		if a.mode == modeConfirmAdd {
			return a, a.submit("n")
		}
		a.input.Reset()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) scroll(msg tea.KeyMsg) {
	switch {
	case a.keys.ScrollUp.Matches(msg):
		a.output.SetYOffset(a.output.YOffset - a.output.Height)
	case a.keys.ScrollDown.Matches(msg):
		a.output.SetYOffset(a.output.YOffset + a.output.Height)
	case a.keys.Top.Matches(msg):
		a.output.GotoTop()
	case a.keys.Bottom.Matches(msg):
		a.output.GotoBottom()
	}
}

// submit handles one line entered at the prompt.
func (a *App) submit(line string) tea.Cmd {
	a.ClearAlerts()
	a.appendBlock(a.theme.Echo.Render(a.input.Prompt + strings.TrimSpace(line)))

	if a.mode == modeConfirmAdd {
		a.answerAdd(line)
		return nil
	}
	return a.execute(line)
}

// execute runs a command or looks the line up as a creature or family name.
func (a *App) execute(line string) tea.Cmd {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "farm":
		a.appendBlock(a.renderFarm())
	case "library":
		a.appendBlock(dex.NewLibraryList(a.catalog, a.contentWidth()).Render())
	case "family":
		a.family(fields[1:])
	case "save":
		a.appendBlock(a.theme.Muted.Render("Farms last for this session only. Nothing was written to disk."))
	case "resist":
		show := !a.entryView.ShowResistances()
		a.entryView.SetShowResistances(show)
		a.AddAlert(AlertInfo, "Resistances "+onOff(show))
		a.appendBlock(a.theme.Muted.Render("Resistance tables are now " + onOff(show) + "."))
	case "clear":
		n := a.farm.Len()
		a.farm.Clear()
		slog.Debug("farm cleared", "released", n)
		a.appendBlock(a.theme.Muted.Render(fmt.Sprintf("Released %d creature(s). The farm is empty.", n)))
	case "release":
		a.release(fields[1:])
	case "help":
		a.appendBlock(a.renderHelp())
	case "exit", "quit":
		a.quitting = true
		return tea.Quit
	case "look":
		name := strings.TrimSpace(strings.TrimSpace(line)[len(fields[0]):])
		if name == "" {
			a.appendBlock(a.theme.Warning.Render("Usage: look <name>"))
			return nil
		}
		a.lookup(name)
	default:
		a.lookup(strings.TrimSpace(line))
	}
	return nil
}

func (a *App) showFamily(family models.Family) {
	slog.Debug("family lookup", "family", family)
	a.appendBlock(dex.NewFamilyList(a.catalog, family, a.contentWidth()).Render())
}

// family lists one family when named, otherwise every family with its size.
func (a *App) family(args []string) {
	if len(args) > 0 {
		if family, ok := a.catalog.Taxonomy().LookupFamily(args[0]); ok {
			a.showFamily(family)
			return
		}
		a.AddAlert(AlertWarning, fmt.Sprintf("Unknown family %q", args[0]))
	}

	cells := make([]string, 0, len(a.catalog.Families()))
	for _, fc := range a.catalog.Families() {
		cells = append(cells, fmt.Sprintf("%-9s %3d", fc.Family, fc.Count))
	}
	a.appendBlock(a.theme.Title.Render("═══ FAMILIES ═══") + "\n\n" +
		a.theme.Primary.Render(Grid(cells, a.contentWidth(), 18)))
}

func (a *App) release(args []string) {
	entries := a.farm.Entries()
	if len(args) == 0 {
		a.appendBlock(a.theme.Warning.Render("Usage: release <number from the farm list>"))
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(entries) {
		a.appendBlock(a.theme.Warning.Render(fmt.Sprintf("No farm slot %q.", args[0])))
		return
	}

	entry := entries[n-1]
	if err := a.farm.Remove(entry.ID); err != nil {
		a.AddAlert(AlertCritical, err.Error())
		return
	}
	slog.Debug("farm entry released", "id", entry.ID, "name", entry.Creature.Name)
	a.appendBlock(a.theme.Muted.Render(fmt.Sprintf("%s was released from the farm.", entry.Creature.Name)))
}

// lookup shows a creature entry and asks whether to add it to the farm.
// A name that is not a creature but is a family tag lists the family.
func (a *App) lookup(name string) {
	c, ok := a.catalog.FindByName(name)
	if !ok {
		if family, isFamily := a.catalog.Taxonomy().LookupFamily(name); isFamily {
			a.showFamily(family)
			return
		}

		slog.Debug("creature not found", "query", name)
		msg := fmt.Sprintf("No creature named %q.", name)
		if hints := a.catalog.Suggest(name, suggestionLimit); len(hints) > 0 {
			msg += " Did you mean: " + strings.Join(hints, ", ") + "?"
		}
		a.appendBlock(a.theme.Warning.Render(msg))
		return
	}

	slog.Debug("creature lookup", "name", c.Name)
	a.appendBlock(a.entryView.Render(c, a.contentWidth()))

	a.pending = c
	a.mode = modeConfirmAdd
	a.input.Prompt = addPrompt
	a.input.Placeholder = "y/n"
}

// answerAdd reads the reply to the add-to-farm question. Anything but
// y or yes declines.
func (a *App) answerAdd(reply string) {
	c := a.pending
	a.pending = nil
	a.mode = modeCommand
	a.input.Prompt = commandPrompt
	a.input.Placeholder = "creature name or command"

	switch strings.ToLower(strings.TrimSpace(reply)) {
	case "y", "yes":
		if _, err := a.farm.Add(c); err != nil {
			if errors.Is(err, farm.ErrFull) {
				a.AddAlert(AlertWarning, fmt.Sprintf("Farm is full (%d/%d)", a.farm.Len(), a.farm.Limit()))
			}
			a.appendBlock(a.theme.Error.Render(err.Error()))
			break
		}
		slog.Debug("farm entry added", "name", c.Name, "size", a.farm.Len())
		a.appendBlock(a.theme.Success.Render(
			fmt.Sprintf("%s was added to the farm (%d/%d).", c.Name, a.farm.Len(), a.farm.Limit())))
	default:
		a.appendBlock(a.theme.Muted.Render(c.Name + " was not added."))
	}

	if a.config.Display.ShowFarmAfterSearch {
		a.appendBlock(a.renderFarm())
	}
}

// appendBlock adds one rendered block to the transcript and scrolls to it.
func (a *App) appendBlock(block string) {
	a.transcript = append(a.transcript, block)
	if len(a.transcript) > maxTranscriptBlocks {
		a.transcript = a.transcript[len(a.transcript)-maxTranscriptBlocks:]
	}
	a.refreshOutput()
}

func (a *App) refreshOutput() {
	a.output.SetContent(strings.Join(a.transcript, "\n\n"))
	a.output.GotoBottom()
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	if a.quitting {
		return a.theme.Title.Render("monsterdex session closed. The farm was not saved.")
	}

	var b strings.Builder

	// Header
	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	// Alert bar
	b.WriteString(a.renderAlertBar())
	b.WriteString("\n")

	// Main content area
	contentHeight := ContentHeight(a.height, chromeLines)
	if a.showConfirm {
		b.WriteString(a.renderConfirmDialog(contentHeight))
	} else {
		b.WriteString(a.renderContent(contentHeight))
	}

	// Prompt
	b.WriteString("\n")
	b.WriteString(a.theme.DrawHorizontalLine(a.width))
	b.WriteString("\n")
	b.WriteString(a.input.View())

	// Footer/status bar
	b.WriteString("\n")
	b.WriteString(a.renderFooter())

	return b.String()
}

// renderHeader renders the top header bar.
func (a *App) renderHeader() string {
	title := fmt.Sprintf("MONSTERDEX v%s", Version)
	info := fmt.Sprintf("CATALOG: %d | FARM: %d/%d", a.catalog.Len(), a.farm.Len(), a.farm.Limit())

	spacing := a.width - lipgloss.Width(title) - lipgloss.Width(info) - 4
	if spacing < 1 {
		spacing = 1
	}

	header := a.theme.Header.Render(title) +
		strings.Repeat(" ", spacing) +
		a.theme.Header.Render(info)

	return header + "\n" + a.theme.DrawDoubleLine(a.width)
}

// renderAlertBar renders the newest alert, or the session status.
func (a *App) renderAlertBar() string {
	var alertText string
	if len(a.alerts) > 0 {
		alert := a.alerts[0]
		switch alert.Level {
		case AlertCritical:
			alertText = a.theme.AlertCrit.Render("ERROR: " + alert.Message)
		case AlertWarning:
			alertText = a.theme.AlertWarn.Render("WARNING: " + alert.Message)
		default:
			alertText = a.theme.Alert.Render("INFO: " + alert.Message)
		}
	} else if a.mode == modeConfirmAdd {
		alertText = a.theme.Accent.Render("Add " + a.pending.Name + " to the farm?")
	} else {
		alertText = a.theme.Muted.Render("Enter a creature name, a family, or help")
	}

	status := a.theme.Value.Render("RESIST " + strings.ToUpper(onOff(a.entryView.ShowResistances())))
	return status + a.theme.StatusDivider.Render() + alertText
}

// renderContent renders the transcript within the content area.
func (a *App) renderContent(height int) string {
	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Top)

	contentStyle := lipgloss.NewStyle().
		Width(a.contentWidth()).
		Align(lipgloss.Left)

	return style.Render(contentStyle.Render(a.output.View()))
}

func (a *App) renderWelcome() string {
	return a.theme.Title.Render("═══ MONSTERDEX ═══") + "\n\n" +
		a.theme.Primary.Render("--> Enter a creature name to see its entry.") + "\n" +
		a.theme.Label.Render("(Alt commands: farm | library | family | save | help | exit)")
}

// renderFarm renders the farm list with a fill gauge.
func (a *App) renderFarm() string {
	list := dex.NewFarmList(a.farm, a.now(), a.contentWidth()).Render()
	gauge := a.theme.ProgressBar(float64(a.farm.Len()), float64(a.farm.Limit()), 32)
	return list + "\n" + gauge
}

// renderHelp renders the command reference.
func (a *App) renderHelp() string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("═══ HELP ═══"))
	b.WriteString("\n\n")

	b.WriteString(a.theme.Subtitle.Render("COMMANDS"))
	b.WriteString("\n")

	commands := [][2]string{
		{"<name>", "Show a creature entry, then offer to add it to the farm"},
		{"look <name>", "Look up a name that is also a command word"},
		{"<family>", "List every creature of a family"},
		{"family", "List families and their sizes"},
		{"library", "List every creature"},
		{"farm", "List the farm"},
		{"release <n>", "Remove slot n from the farm"},
		{"clear", "Empty the farm"},
		{"resist", "Toggle resistance tables"},
		{"save", "Farms last for the session only"},
		{"help", "Show this help"},
		{"exit", "End the session"},
	}
	for _, item := range commands {
		b.WriteString(a.theme.Primary.Render(fmt.Sprintf("    %-12s  %s", item[0], item[1])))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.theme.Subtitle.Render("FAMILIES"))
	b.WriteString("\n")
	families := a.catalog.Taxonomy().Families()
	cells := make([]string, len(families))
	for i, f := range families {
		cells[i] = "    " + string(f)
	}
	b.WriteString(a.theme.Primary.Render(Grid(cells, a.contentWidth(), 16)))
	b.WriteString("\n\n")

	b.WriteString(a.theme.Subtitle.Render("KEYS"))
	b.WriteString("\n")
	keys := [][2]string{
		{"Enter", "Submit"},
		{"Esc", "Clear input / answer no"},
		{"PgUp/PgDn", "Scroll"},
		{"Ctrl+L", "Clear screen"},
		{"F10", "Quit"},
	}
	for _, item := range keys {
		b.WriteString(a.theme.Primary.Render(fmt.Sprintf("    %-12s  %s", item[0], item[1])))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderConfirmDialog renders the quit confirmation dialog.
func (a *App) renderConfirmDialog(height int) string {
	dialog := a.theme.Dialog.Render(
		a.theme.Title.Render("CONFIRM EXIT") + "\n\n" +
			a.theme.Primary.Render("End the session? The farm is not saved.") + "\n\n" +
			a.theme.Label.Render("[Y]es  [N]o"),
	)

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return style.Render(dialog)
}

// renderFooter renders the bottom status bar.
func (a *App) renderFooter() string {
	help := a.keys.StatusBarHelp()
	if GetBreakpoint(a.width) == BreakpointNarrow {
		help = a.keys.CompactHelp()
	}
	return a.theme.DrawHorizontalLine(a.width) + "\n" + a.theme.StatusBar.Render(help)
}

// AddAlert adds a new alert to the display.
func (a *App) AddAlert(level AlertLevel, message string) {
	a.alerts = append([]Alert{{
		Level:   level,
		Message: message,
		Time:    a.now(),
	}}, a.alerts...)

	// Keep only last 10 alerts
	if len(a.alerts) > 10 {
		a.alerts = a.alerts[:10]
	}
}

// ClearAlerts removes all alerts.
func (a *App) ClearAlerts() {
	a.alerts = []Alert{}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Run starts the interactive session.
func Run(ctx context.Context, cat *catalog.Catalog, cfg *config.Config) error {
	app := New(cat, cfg)

	p := tea.NewProgram(app, tea.WithAltScreen())

	// Handle context cancellation
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	_, err := p.Run()
	return err
}
