// Package tui implements the live display: one scrollable region per process label,
// stacked vertically and rendered with Bubble Tea.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

const (
	headerHeight          = 1
	paneHorizontalPadding = 1
)

// MsgAppendLine appends one line to the region for Label.
type MsgAppendLine struct {
	Label string
	Text  string
}

// MsgScrollToBottom moves the region for Label to its latest output.
type MsgScrollToBottom struct {
	Label string
}

// Region is one labeled output pane.
type Region struct {
	Label string
	Term  *Vterm
}

// Model is the Bubble Tea model of the display.
type Model struct {
	Regions []*Region
	Focused int
	Width   int
	Height  int

	byLabel map[string]*Region
	onExit  func()
}

// NewModel creates a model with one region per label, in order.
// Lines for an unknown label open a new region below the existing ones.
func NewModel(labels []string, onExit func()) *Model {
	m := &Model{
		byLabel: make(map[string]*Region, len(labels)),
		onExit:  onExit,
	}
	for _, label := range labels {
		m.region(label)
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.layout()

	case MsgAppendLine:
		m.region(msg.Label).Term.WriteLine(msg.Text)

	case MsgScrollToBottom:
		m.region(msg.Label).Term.ScrollToBottom()
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.onExit != nil {
			m.onExit()
		}
		return tea.Quit
	}

	if len(m.Regions) == 0 {
		return nil
	}

	switch msg.String() {
	case "tab":
		m.Focused = (m.Focused + 1) % len(m.Regions)
	case "shift+tab":
		m.Focused = (m.Focused - 1 + len(m.Regions)) % len(m.Regions)
	default:
		m.Regions[m.Focused].Term.Scroll(msg)
	}
	return nil
}

func (m *Model) region(label string) *Region {
	if r, ok := m.byLabel[label]; ok {
		return r
	}

	r := &Region{Label: label, Term: NewVterm()}
	m.Regions = append(m.Regions, r)
	m.byLabel[label] = r
	m.layout()
	return r
}

// layout splits the window height evenly across regions.
func (m *Model) layout() {
	if m.Width == 0 || len(m.Regions) == 0 {
		return
	}

	avail := m.Height - len(m.Regions)*headerHeight
	each := max(avail/len(m.Regions), 1)

	for _, r := range m.Regions {
		r.Term.SetWidth(m.Width - 2*paneHorizontalPadding)
		r.Term.SetHeight(each)
	}
}
