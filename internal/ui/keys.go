package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tailpane/internal/scroll"
)

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit        key.Binding
	Help        key.Binding
	CycleTheme  key.Binding
	ToggleTitle key.Binding
	Save        key.Binding
	Clear       key.Binding

	// Navigation
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding

	// Save prompt
	Confirm key.Binding
	Escape  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		ToggleTitle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Toggle title"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Save log"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Clear log"),
		),

		Up: key.NewBinding(
			key.WithKeys(scroll.Keys[scroll.LineUp]...),
			key.WithHelp("k/up", "Scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys(scroll.Keys[scroll.LineDown]...),
			key.WithHelp("j/down", "Scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys(scroll.Keys[scroll.Home]...),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys(scroll.Keys[scroll.End]...),
			key.WithHelp("G", "Go to tail"),
		),
		PageUp: key.NewBinding(
			key.WithKeys(scroll.Keys[scroll.PageUp]...),
			key.WithHelp("pgup/b", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys(scroll.Keys[scroll.PageDown]...),
			key.WithHelp("pgdn/f", "Page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys(scroll.Keys[scroll.HalfPageUp]...),
			key.WithHelp("ctrl+u", "Half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys(scroll.Keys[scroll.HalfPageDown]...),
			key.WithHelp("ctrl+d", "Half page down"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Save"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
	}
}

// Action maps a key press to a scroll action, or scroll.None.
func (k keyMap) Action(msg tea.KeyMsg) scroll.Action {
	switch {
	case key.Matches(msg, k.Up):
		return scroll.LineUp
	case key.Matches(msg, k.Down):
		return scroll.LineDown
	case key.Matches(msg, k.HalfPageUp):
		return scroll.HalfPageUp
	case key.Matches(msg, k.HalfPageDown):
		return scroll.HalfPageDown
	case key.Matches(msg, k.PageUp):
		return scroll.PageUp
	case key.Matches(msg, k.PageDown):
		return scroll.PageDown
	case key.Matches(msg, k.Top):
		return scroll.Home
	case key.Matches(msg, k.Bottom):
		return scroll.End
	}
	return scroll.None
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.HalfPageUp, k.HalfPageDown, k.Top, k.Bottom},
		{k.Save, k.Clear, k.ToggleTitle, k.CycleTheme, k.Help, k.Quit},
	}
}
