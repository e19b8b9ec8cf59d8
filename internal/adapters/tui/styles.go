package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/tsbuild/internal/ui/style"
)

var (
	hintStyle = lipgloss.NewStyle().
			Foreground(style.Slate).
			Faint(true)

	paneStyle = lipgloss.NewStyle().
			Padding(0, paneHorizontalPadding)
)

// headerStyle renders a region title. The focused region gets a filled badge.
func headerStyle(index int, focused bool) lipgloss.Style {
	s := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1)

	if focused {
		return s.Background(style.RegionColor(index)).Foreground(style.White)
	}
	return s.Foreground(style.RegionColor(index))
}
