package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines all key bindings for the session.
type KeyMap struct {
	// Scrolling the transcript
	ScrollUp   Key
	ScrollDown Key
	Top        Key
	Bottom     Key

	// Actions
	Submit Key
	Cancel Key
	Quit   Key
	Help   Key
	Clear  Key

	// Confirm dialog
	Yes Key
	No  Key
}

// Key represents a key binding.
type Key struct {
	Keys    []string
	Help    string
	Enabled bool
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ScrollUp: Key{
			Keys:    []string{"pgup", "ctrl+u"},
			Help:    "scroll up",
			Enabled: true,
		},
		ScrollDown: Key{
			Keys:    []string{"pgdown", "ctrl+d"},
			Help:    "scroll down",
			Enabled: true,
		},
		Top: Key{
			Keys:    []string{"ctrl+home"},
			Help:    "top",
			Enabled: true,
		},
		Bottom: Key{
			Keys:    []string{"ctrl+end"},
			Help:    "bottom",
			Enabled: true,
		},

		Submit: Key{
			Keys:    []string{"enter"},
			Help:    "submit",
			Enabled: true,
		},
		Cancel: Key{
			Keys:    []string{"esc"},
			Help:    "cancel",
			Enabled: true,
		},
		Quit: Key{
			Keys:    []string{"ctrl+c", "f10"},
			Help:    "quit",
			Enabled: true,
		},
		Help: Key{
			Keys:    []string{"f1"},
			Help:    "help",
			Enabled: true,
		},
		Clear: Key{
			Keys:    []string{"ctrl+l"},
			Help:    "clear screen",
			Enabled: true,
		},

		Yes: Key{
			Keys:    []string{"y", "Y"},
			Help:    "yes",
			Enabled: true,
		},
		No: Key{
			Keys:    []string{"n", "N", "esc"},
			Help:    "no",
			Enabled: true,
		},
	}
}

// Matches checks if a key message matches this key binding.
func (k Key) Matches(msg tea.KeyMsg) bool {
	if !k.Enabled {
		return false
	}

	keyStr := msg.String()
	for _, key := range k.Keys {
		if keyStr == key {
			return true
		}
	}
	return false
}

// MatchesAny checks if a key message matches any of the provided key bindings.
func MatchesAny(msg tea.KeyMsg, keys ...Key) bool {
	for _, k := range keys {
		if k.Matches(msg) {
			return true
		}
	}
	return false
}

// IsScroll checks if the key message moves the transcript.
func (km KeyMap) IsScroll(msg tea.KeyMsg) bool {
	return MatchesAny(msg, km.ScrollUp, km.ScrollDown, km.Top, km.Bottom)
}

// StatusBarHelp returns the help text for the status bar.
func (km KeyMap) StatusBarHelp() string {
	return "[Enter]Submit [PgUp/PgDn]Scroll [F1]Help [Ctrl+L]Clear [F10]Quit"
}

// CompactHelp returns the status bar help for narrow terminals.
func (km KeyMap) CompactHelp() string {
	return "Enter:Go F1:Help F10:Quit"
}
