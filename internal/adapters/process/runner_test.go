package process_test

import (
	"context"
	"errors"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tsbuild/internal/adapters/process"
	"go.trai.ch/tsbuild/internal/core/domain"
)

func shell(label, script string, dir string) domain.ProcessSpec {
	return domain.ProcessSpec{Label: label, Command: "sh", Args: []string{"-c", script}, Dir: dir}
}

type lineCollector struct {
	mu    sync.Mutex
	lines []string
}

func (c *lineCollector) add(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, line)
}

func (c *lineCollector) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

func TestRunner_RunOnce_CombinedOutput(t *testing.T) {
	runner := process.NewRunner()

	out, err := runner.RunOnce(context.Background(), shell("tsc", "echo out; echo err >&2", t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, "out\nerr", out)
}

func TestRunner_RunOnce_NonZeroExit(t *testing.T) {
	runner := process.NewRunner()

	_, err := runner.RunOnce(context.Background(), shell("tsc", "echo 'src/a.ts(1,1): error TS1005'; exit 2", t.TempDir()))
	require.Error(t, err)

	var procErr *domain.ProcessError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, 2, procErr.ExitCode)
	assert.Equal(t, "tsc", procErr.Label)
	assert.Equal(t, "src/a.ts(1,1): error TS1005", err.Error())
}

func TestRunner_RunOnce_SilentFailure(t *testing.T) {
	runner := process.NewRunner()

	_, err := runner.RunOnce(context.Background(), shell("tsc-alias", "exit 3", t.TempDir()))
	require.Error(t, err)
	assert.Equal(t, "sh exited with code 3", err.Error())
}

func TestRunner_RunOnce_MissingCommand(t *testing.T) {
	runner := process.NewRunner()

	_, err := runner.RunOnce(context.Background(), domain.ProcessSpec{
		Label:   "tsc",
		Command: "tsbuild-definitely-not-installed",
	})
	require.ErrorIs(t, err, domain.ErrSpawnFailed)
}

func TestRunner_Spawn_DeliversLines(t *testing.T) {
	runner := process.NewRunner()
	var lines lineCollector

	proc, err := runner.Spawn(context.Background(), shell("tsc", "echo one; echo two", t.TempDir()), lines.add)
	require.NoError(t, err)
	assert.Equal(t, "tsc", proc.Label())
	assert.Positive(t, proc.PID())

	status := proc.Wait()
	assert.Equal(t, 0, status.Code)
	assert.False(t, status.Failed())
	assert.False(t, proc.Alive())
	assert.Equal(t, []string{"one", "two"}, lines.snapshot())
}

func TestRunner_Spawn_ExitCode(t *testing.T) {
	runner := process.NewRunner()

	proc, err := runner.Spawn(context.Background(), shell("tsc", "exit 4", t.TempDir()), nil)
	require.NoError(t, err)

	select {
	case <-proc.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("process did not exit")
	}
	status := proc.Wait()
	assert.Equal(t, 4, status.Code)
	assert.True(t, status.Failed())
}

func TestRunner_Spawn_MissingCommand(t *testing.T) {
	runner := process.NewRunner()

	_, err := runner.Spawn(context.Background(), domain.ProcessSpec{Label: "tsc", Command: "tsbuild-definitely-not-installed"}, nil)
	require.ErrorIs(t, err, domain.ErrSpawnFailed)
}

func TestManagedProcess_TerminateGraceful(t *testing.T) {
	runner := process.NewRunner()

	proc, err := runner.Spawn(context.Background(), shell("tsc", "sleep 30", t.TempDir()), nil)
	require.NoError(t, err)

	start := time.Now()
	require.NoError(t, proc.Terminate(context.Background(), 5*time.Second))
	assert.Less(t, time.Since(start), 5*time.Second)

	status := proc.Wait()
	assert.True(t, status.Signaled)
	assert.False(t, status.Failed())
}

func TestManagedProcess_TerminateEscalatesToKill(t *testing.T) {
	runner := process.NewRunner()
	ready := make(chan struct{})
	var once sync.Once

	proc, err := runner.Spawn(
		context.Background(),
		shell("tsc", "trap '' TERM; echo ready; sleep 30", t.TempDir()),
		func(line string) {
			if line == "ready" {
				once.Do(func() { close(ready) })
			}
		},
	)
	require.NoError(t, err)

	select {
	case <-ready:
	case <-time.After(10 * time.Second):
		t.Fatal("process never became ready")
	}

	require.NoError(t, proc.Terminate(context.Background(), 200*time.Millisecond))
	assert.False(t, proc.Alive())
	assert.True(t, proc.Wait().Signaled)
}

func TestManagedProcess_TerminateExitedIsNoop(t *testing.T) {
	runner := process.NewRunner()

	proc, err := runner.Spawn(context.Background(), shell("tsc", "true", t.TempDir()), nil)
	require.NoError(t, err)
	proc.Wait()

	require.NoError(t, proc.Terminate(context.Background(), time.Second))
}

func TestExitStatus(t *testing.T) {
	assert.Equal(t, domain.ExitStatus{}, process.ExitStatus(nil))

	exitErr := exec.Command("sh", "-c", "exit 4").Run()
	require.Error(t, exitErr)
	assert.Equal(t, domain.ExitStatus{Code: 4}, process.ExitStatus(exitErr))

	waitErr := errors.New("wait: no child processes")
	status := process.ExitStatus(waitErr)
	assert.Equal(t, 1, status.Code)
	assert.False(t, status.Signaled)
	assert.True(t, status.Failed())
	assert.ErrorIs(t, status.Err, waitErr)
}
