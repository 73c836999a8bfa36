package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"pkt.systems/pslog"

	"github.com/five82/tailpane/internal/panel"
	"github.com/five82/tailpane/internal/prefs"
)

const promptMaxWidth = 72

func (m Model) openSavePrompt() (tea.Model, tea.Cmd) {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 4096
	input.Width = m.promptWidth()
	input.SetValue(m.panel.DefaultSavePath())
	input.CursorEnd()
	cmd := input.Focus()

	m.saveInput = input
	m.saving = true
	return m, cmd
}

func (m Model) handleSaveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.closeSavePrompt()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		answer := strings.TrimSpace(m.saveInput.Value())
		m.closeSavePrompt()
		if answer == "" {
			return m, nil
		}
		m.saveTo(answer)
		return m, nil
	}

	var cmd tea.Cmd
	m.saveInput, cmd = m.saveInput.Update(msg)
	return m, cmd
}

func (m *Model) closeSavePrompt() {
	m.saving = false
	m.saveInput.Blur()
}

// saveTo writes the backlog and reports the outcome on the status line.
func (m *Model) saveTo(path string) {
	log := pslog.Ctx(m.ctx).With("panel", m.panel.Name())

	abs, err := m.panel.SaveTo(path)
	if err != nil {
		log.Error("save log failed", "path", path, "err", err)
		m.status = "Save failed: " + err.Error()
		m.statusErr = true
		return
	}

	log.Info("log saved", "path", abs, "lines", m.panel.Len())
	m.status = "Saved " + abs
	m.statusErr = false

	if m.prefsPath != "" {
		if err := prefs.RememberSave(m.prefsPath, abs); err != nil {
			log.Warn("remember save dir failed", "err", err)
		}
	}
}

func (m Model) promptWidth() int {
	return max(10, min(promptMaxWidth, m.width-10))
}

// renderSavePrompt renders the save dialog centered over the screen.
func (m Model) renderSavePrompt() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Save log"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(panel.SaveQuery))
	b.WriteString("\n\n")
	b.WriteString(m.saveInput.View())
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("enter save • esc cancel"))

	box := styles.Modal.Width(m.promptWidth() + 6).Render(b.String())

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
	)
}
