// Package process runs the external compiler tools, either to completion or
// as long-lived processes on a pseudo-terminal.
package process

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/creack/pty"
	"go.trai.ch/tsbuild/internal/core/domain"
	"go.trai.ch/tsbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// waitDelay lets late pipe writes land in the output buffer after exit.
	waitDelay = 100 * time.Millisecond
	// drainTimeout bounds how long output is drained after the process exits.
	drainTimeout = 2 * time.Second
)

// Runner implements ports.ProcessRunner using os/exec and pty.
type Runner struct{}

var _ ports.ProcessRunner = (*Runner)(nil)

// NewRunner creates a new Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// RunOnce runs the command with stdout and stderr captured into a single buffer.
func (r *Runner) RunOnce(ctx context.Context, spec domain.ProcessSpec) (string, error) {
	cmd := exec.CommandContext(ctx, spec.Command, spec.Args...) //nolint:gosec // command comes from settings
	cmd.Dir = spec.Dir
	cmd.Stdin = os.Stdin
	cmd.WaitDelay = waitDelay

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	if err := cmd.Start(); err != nil {
		return "", spawnError(spec, err)
	}

	err := cmd.Wait()
	output := strings.TrimSpace(buf.String())
	if err == nil {
		return output, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return output, &domain.ProcessError{
			Label:    spec.Label,
			Command:  spec.Command,
			ExitCode: exitErr.ExitCode(),
			Output:   output,
		}
	}
	return output, zerr.With(zerr.Wrap(err, "failed to wait for process"), "command", spec.String())
}

// Spawn starts the command on a pseudo-terminal in its own session.
// onOutput receives each line without its trailing carriage return.
func (r *Runner) Spawn(
	_ context.Context,
	spec domain.ProcessSpec,
	onOutput func(line string),
) (ports.ManagedProcess, error) {
	cmd := exec.Command(spec.Command, spec.Args...) //nolint:gosec // command comes from settings
	cmd.Dir = spec.Dir

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, spawnError(spec, err)
	}

	p := &managedProcess{
		label: spec.Label,
		pid:   cmd.Process.Pid,
		done:  make(chan struct{}),
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		readLines(ptmx, onOutput)
	}()

	go func() {
		err := cmd.Wait()

		// Background children may hold the terminal open after the leader exits.
		select {
		case <-ioDone:
		case <-time.After(drainTimeout):
		}
		_ = ptmx.Close()
		<-ioDone

		p.status = exitStatus(err)
		close(p.done)
	}()

	return p, nil
}

func readLines(r io.Reader, onOutput func(string)) {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" && onOutput != nil {
			line = strings.TrimSuffix(line, "\n")
			onOutput(strings.TrimSuffix(line, "\r"))
		}
		if err != nil {
			return
		}
	}
}

func spawnError(spec domain.ProcessSpec, err error) error {
	return errors.Join(domain.ErrSpawnFailed, zerr.With(zerr.Wrap(err, "cannot start "+spec.Command), "label", spec.Label))
}
