// Package style provides shared UI styling primitives: brand colors, icons
// and the palette used to tell process regions apart.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	White  = lipgloss.Color("#FFFFFF")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Sky    = lipgloss.Color("#0EA5E9")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
)

// regionColors are assigned to display regions in order of first appearance.
var regionColors = []lipgloss.Color{Iris, Sky, Green, Yellow}

// RegionColor returns the accent color of the n-th display region.
func RegionColor(n int) lipgloss.Color {
	if n < 0 {
		n = 0
	}
	return regionColors[n%len(regionColors)]
}
