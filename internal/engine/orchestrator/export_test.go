package orchestrator

import (
	"go.trai.ch/tsbuild/internal/core/domain"
	"go.trai.ch/tsbuild/internal/core/ports"
)

// SetState forces the lifecycle state.
func (o *Orchestrator) SetState(s domain.State) {
	o.state.Store(int32(s))
}

// Shutdown runs the shutdown coordinator with the given exit code.
func (o *Orchestrator) Shutdown(display ports.Display, code int, label string) error {
	return o.shutdown(display, exitResult{code: code, label: label})
}

// NewLineWriter exposes the display line writer.
var NewLineWriter = newLineWriter
