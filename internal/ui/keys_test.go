package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tailpane/internal/scroll"
)

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want scroll.Action
	}{
		{"k", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")}, scroll.LineUp},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, scroll.LineUp},
		{"j", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, scroll.LineDown},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, scroll.LineDown},
		{"ctrl+u", tea.KeyMsg{Type: tea.KeyCtrlU}, scroll.HalfPageUp},
		{"ctrl+d", tea.KeyMsg{Type: tea.KeyCtrlD}, scroll.HalfPageDown},
		{"pgup", tea.KeyMsg{Type: tea.KeyPgUp}, scroll.PageUp},
		{"pgdown", tea.KeyMsg{Type: tea.KeyPgDown}, scroll.PageDown},
		{"home", tea.KeyMsg{Type: tea.KeyHome}, scroll.Home},
		{"g", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")}, scroll.Home},
		{"end", tea.KeyMsg{Type: tea.KeyEnd}, scroll.End},
		{"G", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")}, scroll.End},
		{"s is not scrolling", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")}, scroll.None},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.Action(tt.msg); got != tt.want {
				t.Fatalf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

// teaKeys holds the KeyMsg types for the non-rune names in scroll.Keys.
var teaKeys = map[string]tea.KeyType{
	"up":     tea.KeyUp,
	"down":   tea.KeyDown,
	"pgup":   tea.KeyPgUp,
	"pgdown": tea.KeyPgDown,
	"home":   tea.KeyHome,
	"end":    tea.KeyEnd,
	"ctrl+u": tea.KeyCtrlU,
	"ctrl+d": tea.KeyCtrlD,
	" ":      tea.KeySpace,
}

func TestKeyMapAction_CoversSharedKeys(t *testing.T) {
	keys := DefaultKeyMap()
	for action, names := range scroll.Keys {
		for _, name := range names {
			msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
			if typ, ok := teaKeys[name]; ok {
				msg = tea.KeyMsg{Type: typ}
			}
			if msg.String() != name {
				t.Fatalf("KeyMsg for %q renders as %q", name, msg.String())
			}
			if got := keys.Action(msg); got != action {
				t.Fatalf("Action(%q) = %v, want %v", name, got, action)
			}
		}
	}
}

func TestFullHelpListsEveryBinding(t *testing.T) {
	keys := DefaultKeyMap()
	n := 0
	for _, col := range keys.FullHelp() {
		n += len(col)
	}
	if n != 14 {
		t.Fatalf("FullHelp has %d bindings, want 14", n)
	}
}
