package orchestrator

import (
	"bytes"
	"strings"
	"sync"

	"go.trai.ch/tsbuild/internal/core/ports"
)

// lineWriter forwards complete lines written to it into a display region.
type lineWriter struct {
	display ports.Display
	label   string

	mu  sync.Mutex
	buf []byte
}

func newLineWriter(display ports.Display, label string) *lineWriter {
	return &lineWriter{display: display, label: label}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.display.AppendLine(w.label, strings.TrimSuffix(string(w.buf[:i]), "\r"))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}
