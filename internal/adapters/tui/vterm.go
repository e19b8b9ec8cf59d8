package tui

import (
	"bytes"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vito/midterm"
)

// Vterm is the scrollback of one display region, backed by a virtual terminal
// so control sequences emitted by the compiler render as they would on a tty.
type Vterm struct {
	vt      *midterm.Terminal
	Offset  int
	Height  int
	Width   int
	viewBuf *bytes.Buffer
	mu      sync.Mutex
}

// NewVterm creates an empty Vterm.
func NewVterm() *Vterm {
	return &Vterm{
		vt:      midterm.NewAutoResizingTerminal(),
		viewBuf: new(bytes.Buffer),
	}
}

// Write implements io.Writer. A region showing its latest output keeps following it.
func (v *Vterm) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	follow := v.Offset >= v.maxOffset()

	n, err := v.vt.Write(p)

	if follow {
		v.Offset = v.maxOffset()
	}

	return n, err
}

// WriteLine appends text as one terminal line.
func (v *Vterm) WriteLine(text string) {
	_, _ = v.Write([]byte(text + "\r\n"))
}

// ScrollToBottom jumps to the latest output.
func (v *Vterm) ScrollToBottom() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Offset = v.maxOffset()
}

// AtBottom reports whether the region is following its output.
func (v *Vterm) AtBottom() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.Offset >= v.maxOffset()
}

// SetHeight updates the number of visible rows.
func (v *Vterm) SetHeight(h int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if h < 1 {
		h = 1
	}

	follow := v.Offset >= v.maxOffset()
	v.Height = h

	if follow {
		v.Offset = v.maxOffset()
		return
	}
	v.Offset = min(v.Offset, v.maxOffset())
}

// SetWidth resizes the terminal columns.
func (v *Vterm) SetWidth(w int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if w < 1 {
		w = 1
	}
	v.Width = w
	v.vt.ResizeX(w)
}

// UsedHeight returns the number of lines written so far.
func (v *Vterm) UsedHeight() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.vt.UsedHeight()
}

// View renders the visible window of the scrollback.
func (v *Vterm) View() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.clamp()
	v.viewBuf.Reset()

	for i := range v.Height {
		row := v.Offset + i
		if row >= v.vt.UsedHeight() {
			break
		}
		if i > 0 {
			_ = v.viewBuf.WriteByte('\n')
		}
		_ = v.vt.RenderLine(v.viewBuf, row)
	}

	return v.viewBuf.String()
}

// Scroll handles the navigation keys of a focused region.
func (v *Vterm) Scroll(msg tea.KeyMsg) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch msg.String() {
	case "up", "k":
		v.Offset--
	case "down", "j":
		v.Offset++
	case "pgup":
		v.Offset -= v.Height
	case "pgdown":
		v.Offset += v.Height
	case "home", "g":
		v.Offset = 0
	case "end", "G":
		v.Offset = v.maxOffset()
	}

	v.clamp()
}

func (v *Vterm) clamp() {
	v.Offset = max(min(v.Offset, v.maxOffset()), 0)
}

func (v *Vterm) maxOffset() int {
	return max(v.vt.UsedHeight()-v.Height, 0)
}
