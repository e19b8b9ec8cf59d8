// Package linear provides a display that prints every line directly, prefixed with its label.
// It serves CI logs and terminals where the live display is unavailable.
package linear

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/tsbuild/internal/core/ports"
	"go.trai.ch/tsbuild/internal/ui/output"
	"go.trai.ch/tsbuild/internal/ui/style"
)

var _ ports.Display = (*Display)(nil)

// Display implements ports.Display by writing "[label] text" lines.
type Display struct {
	out  *termenv.Output
	exit chan struct{}

	mu     sync.Mutex
	colors map[string]termenv.Color
}

// NewDisplay creates a linear display writing to w. A nil w means stdout.
func NewDisplay(w io.Writer) *Display {
	if w == nil {
		w = os.Stdout
	}

	return &Display{
		out:    output.NewWithProfile(w, output.ColorProfileANSI),
		exit:   make(chan struct{}),
		colors: make(map[string]termenv.Color),
	}
}

// Start is a no-op; lines are written synchronously.
func (d *Display) Start(_ context.Context) error {
	return nil
}

// Stop is a no-op; later lines still reach the writer.
func (d *Display) Stop() error {
	return nil
}

// Wait is a no-op.
func (d *Display) Wait() error {
	return nil
}

// AppendLine prints text under the label prefix. Blank lines are skipped.
func (d *Display) AppendLine(label, text string) {
	text = strings.TrimRight(text, "\r\n")
	if strings.TrimSpace(text) == "" {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	prefix := d.out.String(fmt.Sprintf("[%s]", label)).Foreground(d.colorLocked(label))
	_, _ = fmt.Fprintf(d.out, "%s %s\n", prefix, text)
}

// ScrollToBottom is a no-op: output is never scrolled back.
func (d *Display) ScrollToBottom(string) {}

// Exit never closes. Interrupts reach the process as signals instead.
func (d *Display) Exit() <-chan struct{} {
	return d.exit
}

func (d *Display) colorLocked(label string) termenv.Color {
	if c, ok := d.colors[label]; ok {
		return c
	}
	c := d.out.Color(string(style.RegionColor(len(d.colors))))
	d.colors[label] = c
	return c
}
