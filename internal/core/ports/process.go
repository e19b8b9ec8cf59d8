package ports

import (
	"context"
	"time"

	"go.trai.ch/tsbuild/internal/core/domain"
)

// ProcessRunner starts external processes.
//
//go:generate mockgen -source=process.go -destination=mocks/mock_process.go -package=mocks
type ProcessRunner interface {
	// RunOnce runs the process to completion and returns its trimmed combined output.
	// A non-zero exit returns a *domain.ProcessError carrying the output.
	RunOnce(ctx context.Context, spec domain.ProcessSpec) (string, error)

	// Spawn starts a long-running process without waiting for it.
	// onOutput is called once per output line, from a single goroutine.
	Spawn(ctx context.Context, spec domain.ProcessSpec, onOutput func(line string)) (ManagedProcess, error)
}

// ManagedProcess is a running external process owned by the orchestrator.
type ManagedProcess interface {
	// Label is the routing label of the process.
	Label() string
	// PID is the operating system process id.
	PID() int
	// Alive reports whether the process has not exited yet.
	Alive() bool
	// Done is closed once the process has exited and its output is drained.
	Done() <-chan struct{}
	// Wait blocks until the process exits and returns its status.
	Wait() domain.ExitStatus
	// Terminate asks the process group to stop and kills it once timeout elapses.
	Terminate(ctx context.Context, timeout time.Duration) error
}
