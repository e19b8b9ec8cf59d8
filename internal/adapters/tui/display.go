package tui

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/tsbuild/internal/core/ports"
	"go.trai.ch/tsbuild/internal/ui/output"
	"go.trai.ch/zerr"
)

// lineBuffer bounds the lines queued for the program. Lines beyond it are dropped.
const lineBuffer = 1024

var _ ports.Display = (*Display)(nil)

// Display runs the Bubble Tea program as a ports.Display.
type Display struct {
	program *tea.Program
	model   *Model
	msgs    chan tea.Msg
	stopped chan struct{}
	exit    chan struct{}
	errCh   chan error

	started  atomic.Bool
	stopOnce sync.Once
	exitOnce sync.Once
	waitOnce sync.Once
	waitErr  error
}

// NewDisplay creates a display with one region per label.
func NewDisplay(labels []string, opts ...tea.ProgramOption) *Display {
	lipgloss.SetColorProfile(output.ColorProfile())

	d := &Display{
		msgs:    make(chan tea.Msg, lineBuffer),
		stopped: make(chan struct{}),
		exit:    make(chan struct{}),
		errCh:   make(chan error, 1),
	}
	d.model = NewModel(labels, d.requestExit)
	d.program = tea.NewProgram(d.model, opts...)
	return d
}

// Start launches the program in a background goroutine.
func (d *Display) Start(_ context.Context) error {
	if !d.started.CompareAndSwap(false, true) {
		return nil
	}

	go d.forward()
	go func() {
		_, err := d.program.Run()
		d.errCh <- err
	}()
	return nil
}

// Stop asks the program to quit. Lines appended afterwards are dropped.
func (d *Display) Stop() error {
	d.stopOnce.Do(func() {
		close(d.stopped)
		if d.started.Load() {
			d.program.Quit()
		}
	})
	return nil
}

// Wait blocks until the program has restored the terminal.
func (d *Display) Wait() error {
	if !d.started.Load() {
		return nil
	}

	d.waitOnce.Do(func() {
		err := <-d.errCh
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			d.waitErr = zerr.Wrap(err, "display terminated")
		}
	})
	return d.waitErr
}

// AppendLine queues a line for the region of label.
func (d *Display) AppendLine(label, text string) {
	d.post(MsgAppendLine{Label: label, Text: text})
}

// ScrollToBottom queues a jump to the latest output of label.
func (d *Display) ScrollToBottom(label string) {
	d.post(MsgScrollToBottom{Label: label})
}

// Exit is closed when the user presses q or ctrl+c.
func (d *Display) Exit() <-chan struct{} {
	return d.exit
}

// Program returns the underlying tea.Program for testing.
func (d *Display) Program() *tea.Program {
	return d.program
}

func (d *Display) post(msg tea.Msg) {
	select {
	case <-d.stopped:
		return
	default:
	}

	select {
	case d.msgs <- msg:
	default:
	}
}

func (d *Display) forward() {
	for {
		select {
		case <-d.stopped:
			return
		case msg := <-d.msgs:
			d.program.Send(msg)
		}
	}
}

func (d *Display) requestExit() {
	d.exitOnce.Do(func() { close(d.exit) })
}
