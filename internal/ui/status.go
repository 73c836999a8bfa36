package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const statusSep = " • "

// renderStatus renders the single status line under the panel.
func (m Model) renderStatus() string {
	styles := m.theme.Styles()

	follow := styles.SuccessText.Render("auto-tail on")
	if !m.panel.Follow() {
		follow = styles.WarningText.Render("auto-tail off")
	}

	parts := []string{
		styles.MutedText.Render(fmt.Sprintf("%d lines", m.panel.Len())),
		follow,
	}

	if m.status != "" {
		style := styles.MutedText
		if m.statusErr {
			style = styles.DangerText
		}
		parts = append(parts, style.Render(m.status))
	}

	parts = append(parts, m.help.ShortHelpView(m.keys.ShortHelp()))

	return lipgloss.NewStyle().
		MaxWidth(m.width).
		Render(strings.Join(parts, styles.FaintText.Render(statusSep)))
}
