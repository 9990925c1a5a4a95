// Package tui provides the interactive monsterdex session.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/monsterdex/monsterdex/internal/config"
)

// Theme contains all style definitions for the TUI.
type Theme struct {
	// Colors (raw values for reference)
	PrimaryColor   lipgloss.Color
	SecondaryColor lipgloss.Color
	AccentColor    lipgloss.Color
	MutedColor     lipgloss.Color

	// Color styles (for direct use)
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Accent    lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Success   lipgloss.Style
	Muted     lipgloss.Style

	// Component styles
	Header   lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Echo     lipgloss.Style
	Prompt   lipgloss.Style
	Dialog   lipgloss.Style

	// Alerts
	Alert     lipgloss.Style
	AlertWarn lipgloss.Style
	AlertCrit lipgloss.Style

	// Status bar
	StatusBar     lipgloss.Style
	StatusKey     lipgloss.Style
	StatusValue   lipgloss.Style
	StatusDivider lipgloss.Style
}

// NewTheme creates a new theme based on the color scheme configuration.
func NewTheme(scheme config.ColorScheme) *Theme {
	switch scheme {
	case config.ColorSchemeAmber:
		return newAmberTheme()
	case config.ColorSchemeWhite:
		return newWhiteTheme()
	default:
		return newGreenPhosphorTheme()
	}
}

// newGreenPhosphorTheme creates the classic green phosphor terminal theme.
func newGreenPhosphorTheme() *Theme {
	return buildTheme(palette{
		primary:   lipgloss.Color("#00FF00"),
		secondary: lipgloss.Color("#00AA00"),
		accent:    lipgloss.Color("#66FF66"),
		muted:     lipgloss.Color("#006600"),
		bar:       lipgloss.Color("#001100"),
		err:       lipgloss.Color("#FF4444"),
		warn:      lipgloss.Color("#FFAA00"),
		success:   lipgloss.Color("#00FF00"),
	})
}

// newAmberTheme creates an amber phosphor terminal theme.
func newAmberTheme() *Theme {
	return buildTheme(palette{
		primary:   lipgloss.Color("#FFAA00"),
		secondary: lipgloss.Color("#AA7700"),
		accent:    lipgloss.Color("#FFCC66"),
		muted:     lipgloss.Color("#664400"),
		bar:       lipgloss.Color("#110900"),
		err:       lipgloss.Color("#FF4444"),
		warn:      lipgloss.Color("#FFFF00"),
		success:   lipgloss.Color("#FFAA00"),
	})
}

// newWhiteTheme creates a monochrome terminal theme.
func newWhiteTheme() *Theme {
	return buildTheme(palette{
		primary:   lipgloss.Color("#FFFFFF"),
		secondary: lipgloss.Color("#AAAAAA"),
		accent:    lipgloss.Color("#FFFFFF"),
		muted:     lipgloss.Color("#555555"),
		bar:       lipgloss.Color("#111111"),
		err:       lipgloss.Color("#FF4444"),
		warn:      lipgloss.Color("#FFFF00"),
		success:   lipgloss.Color("#FFFFFF"),
	})
}

type palette struct {
	primary, secondary, accent, muted, bar lipgloss.Color
	err, warn, success                     lipgloss.Color
}

// buildTheme constructs a theme from a color palette.
func buildTheme(p palette) *Theme {
	t := &Theme{
		PrimaryColor:   p.primary,
		SecondaryColor: p.secondary,
		AccentColor:    p.accent,
		MutedColor:     p.muted,
	}

	t.Primary = lipgloss.NewStyle().Foreground(p.primary)
	t.Secondary = lipgloss.NewStyle().Foreground(p.secondary)
	t.Accent = lipgloss.NewStyle().Foreground(p.accent)
	t.Error = lipgloss.NewStyle().Foreground(p.err)
	t.Warning = lipgloss.NewStyle().Foreground(p.warn)
	t.Success = lipgloss.NewStyle().Foreground(p.success)
	t.Muted = lipgloss.NewStyle().Foreground(p.muted)

	t.Header = lipgloss.NewStyle().
		Foreground(p.primary).
		Bold(true).
		Padding(0, 1)

	t.Title = lipgloss.NewStyle().
		Foreground(p.accent).
		Bold(true)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(p.secondary).
		Underline(true)

	t.Label = lipgloss.NewStyle().
		Foreground(p.secondary)

	t.Value = lipgloss.NewStyle().
		Foreground(p.primary).
		Bold(true)

	// Echo - the user's own input in the transcript
	t.Echo = lipgloss.NewStyle().
		Foreground(p.accent).
		Bold(true)

	t.Prompt = lipgloss.NewStyle().
		Foreground(p.accent).
		Bold(true)

	t.Dialog = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(p.warn).
		Padding(1, 4)

	t.Alert = lipgloss.NewStyle().
		Foreground(p.primary).
		Bold(true)

	t.AlertWarn = lipgloss.NewStyle().
		Foreground(p.warn).
		Bold(true)

	t.AlertCrit = lipgloss.NewStyle().
		Foreground(p.err).
		Bold(true).
		Blink(true)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(p.secondary).
		Background(p.bar).
		Padding(0, 1)

	t.StatusKey = lipgloss.NewStyle().
		Foreground(p.accent).
		Bold(true)

	t.StatusValue = lipgloss.NewStyle().
		Foreground(p.primary)

	t.StatusDivider = lipgloss.NewStyle().
		Foreground(p.muted).
		SetString(" │ ")

	return t
}

// Box characters for drawing
const (
	BoxHorizontal       = "─"
	BoxDoubleHorizontal = "═"
)

// DrawHorizontalLine draws a horizontal line.
func (t *Theme) DrawHorizontalLine(width int) string {
	return t.Secondary.Render(strings.Repeat(BoxHorizontal, max(width, 0)))
}

// DrawDoubleLine draws a double horizontal line.
func (t *Theme) DrawDoubleLine(width int) string {
	return t.Primary.Render(strings.Repeat(BoxDoubleHorizontal, max(width, 0)))
}
