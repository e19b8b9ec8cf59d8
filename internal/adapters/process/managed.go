package process

import (
	"context"
	"errors"
	"os/exec"
	"syscall"
	"time"

	"go.trai.ch/tsbuild/internal/core/domain"
	"go.trai.ch/tsbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// managedProcess is a process started by Spawn. pty.Start makes it a session
// leader, so its pid is also its process group id.
type managedProcess struct {
	label  string
	pid    int
	done   chan struct{}
	status domain.ExitStatus
}

var _ ports.ManagedProcess = (*managedProcess)(nil)

func (p *managedProcess) Label() string { return p.label }

func (p *managedProcess) PID() int { return p.pid }

func (p *managedProcess) Done() <-chan struct{} { return p.done }

func (p *managedProcess) Alive() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// Wait blocks until the process exits and its output is drained.
func (p *managedProcess) Wait() domain.ExitStatus {
	<-p.done
	return p.status
}

// Terminate sends SIGTERM to the process group and escalates to SIGKILL
// once timeout elapses or ctx is done.
func (p *managedProcess) Terminate(ctx context.Context, timeout time.Duration) error {
	if !p.Alive() {
		return nil
	}

	if err := p.signal(syscall.SIGTERM); err != nil {
		return err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-p.done:
		return nil
	case <-timer.C:
	case <-ctx.Done():
	}

	if err := p.signal(syscall.SIGKILL); err != nil {
		return err
	}
	<-p.done
	return nil
}

func (p *managedProcess) signal(sig syscall.Signal) error {
	err := syscall.Kill(-p.pid, sig)
	if err == nil || errors.Is(err, syscall.ESRCH) {
		return nil
	}
	return zerr.With(zerr.With(zerr.Wrap(err, "failed to signal process group"), "pid", p.pid), "signal", sig.String())
}

func exitStatus(err error) domain.ExitStatus {
	if err == nil {
		return domain.ExitStatus{}
	}

	// Wait itself failed, so no exit code is known. Report an ordinary failure.
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return domain.ExitStatus{Code: 1, Err: err}
	}

	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return domain.ExitStatus{Code: -1, Signaled: true}
	}
	return domain.ExitStatus{Code: exitErr.ExitCode()}
}
