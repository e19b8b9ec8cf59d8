package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.Width == 0 {
		return "Initializing..."
	}

	panes := make([]string, 0, len(m.Regions))
	for i, r := range m.Regions {
		panes = append(panes, m.pane(i, r))
	}

	return lipgloss.JoinVertical(lipgloss.Left, panes...)
}

func (m *Model) pane(index int, r *Region) string {
	focused := index == m.Focused

	header := headerStyle(index, focused).Render(r.Label)
	if !r.Term.AtBottom() {
		header += " " + hintStyle.Render("scrolled, end to follow")
	}

	body := paneStyle.
		Height(r.Term.Height).
		MaxHeight(r.Term.Height).
		Render(r.Term.View())

	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}
