package orchestrator_test

import (
	"context"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.trai.ch/tsbuild/internal/core/domain"
	"go.trai.ch/tsbuild/internal/core/ports"
)

// recorder keeps a shared, ordered log of lifecycle calls.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

func (r *recorder) index(call string) int {
	return slices.Index(r.list(), call)
}

type fakeLogger struct {
	rec *recorder

	mu    sync.Mutex
	out   io.Writer
	infos []string
	warns []string
	errs  []error
}

func (l *fakeLogger) write(msg string) {
	if l.out != nil {
		_, _ = io.WriteString(l.out, msg+"\n")
	}
}

func (l *fakeLogger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
	l.write(msg)
}

func (l *fakeLogger) Warn(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
	l.write(msg)
}

func (l *fakeLogger) Error(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, err)
	l.write(err.Error())
}

func (l *fakeLogger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
	if w == nil && l.rec != nil {
		l.rec.add("logger.restore")
	}
}

func (l *fakeLogger) warned(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.ContainsFunc(l.warns, func(m string) bool { return strings.Contains(m, substr) })
}

func (l *fakeLogger) loggedErrors() []error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.errs)
}

type fakeProcess struct {
	label      string
	pid        int
	rec        *recorder
	ignoreTerm bool
	onOutput   func(string)

	done   chan struct{}
	once   sync.Once
	status domain.ExitStatus
	killed atomic.Bool
}

func (p *fakeProcess) Label() string         { return p.label }
func (p *fakeProcess) PID() int              { return p.pid }
func (p *fakeProcess) Done() <-chan struct{} { return p.done }

func (p *fakeProcess) Alive() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

func (p *fakeProcess) Wait() domain.ExitStatus {
	<-p.done
	return p.status
}

func (p *fakeProcess) exit(status domain.ExitStatus) {
	p.once.Do(func() {
		p.status = status
		close(p.done)
	})
}

func (p *fakeProcess) emit(line string) {
	p.onOutput(line)
}

func (p *fakeProcess) Terminate(ctx context.Context, timeout time.Duration) error {
	p.rec.add("terminate:" + p.label)
	if !p.Alive() {
		return nil
	}
	if !p.ignoreTerm {
		p.exit(domain.ExitStatus{Code: -1, Signaled: true})
		return nil
	}
	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	}
	p.killed.Store(true)
	p.exit(domain.ExitStatus{Code: -1, Signaled: true})
	return nil
}

type fakeRunner struct {
	rec        *recorder
	runOnce    func(spec domain.ProcessSpec) (string, error)
	spawnErr   map[string]error
	ignoreTerm map[string]bool

	mu        sync.Mutex
	specs     []domain.ProcessSpec
	processes map[string]*fakeProcess
}

func newFakeRunner(rec *recorder) *fakeRunner {
	return &fakeRunner{rec: rec, processes: make(map[string]*fakeProcess)}
}

func (r *fakeRunner) RunOnce(_ context.Context, spec domain.ProcessSpec) (string, error) {
	r.rec.add("run:" + spec.Label)
	r.mu.Lock()
	r.specs = append(r.specs, spec)
	r.mu.Unlock()
	if r.runOnce != nil {
		return r.runOnce(spec)
	}
	return "", nil
}

func (r *fakeRunner) Spawn(_ context.Context, spec domain.ProcessSpec, onOutput func(string)) (ports.ManagedProcess, error) {
	if err := r.spawnErr[spec.Label]; err != nil {
		return nil, err
	}
	r.rec.add("spawn:" + spec.Label)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.specs = append(r.specs, spec)
	p := &fakeProcess{
		label:      spec.Label,
		pid:        1000 + len(r.processes),
		rec:        r.rec,
		ignoreTerm: r.ignoreTerm[spec.Label],
		onOutput:   onOutput,
		done:       make(chan struct{}),
	}
	r.processes[spec.Label] = p
	return p, nil
}

func (r *fakeRunner) process(label string) *fakeProcess {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.processes[label]
}

func (r *fakeRunner) spawned(label string) bool {
	return r.process(label) != nil
}

func (r *fakeRunner) allSpecs() []domain.ProcessSpec {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.specs)
}

type fakeWatcher struct {
	rec    *recorder
	events chan domain.SyncEvent
	once   sync.Once

	mu     sync.Mutex
	root   string
	ignore []string
}

func newFakeWatcher(rec *recorder) *fakeWatcher {
	return &fakeWatcher{rec: rec, events: make(chan domain.SyncEvent, 10)}
}

func (w *fakeWatcher) Start(_ context.Context, root string, ignore []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.root, w.ignore = root, ignore
	w.rec.add("watcher.start")
	return nil
}

func (w *fakeWatcher) Stop() error {
	w.once.Do(func() {
		w.rec.add("watcher.stop")
		close(w.events)
	})
	return nil
}

func (w *fakeWatcher) Events() iter.Seq[domain.SyncEvent] {
	return func(yield func(domain.SyncEvent) bool) {
		for ev := range w.events {
			if !yield(ev) {
				return
			}
		}
	}
}

type fakeDisplay struct {
	rec      *recorder
	startErr error
	stopErr  error
	waitErr  error
	exit     chan struct{}

	mu    sync.Mutex
	lines map[string][]string
}

func newFakeDisplay(rec *recorder) *fakeDisplay {
	return &fakeDisplay{rec: rec, exit: make(chan struct{}), lines: make(map[string][]string)}
}

func (d *fakeDisplay) Start(context.Context) error {
	d.rec.add("display.start")
	return d.startErr
}

func (d *fakeDisplay) Stop() error {
	d.rec.add("display.stop")
	return d.stopErr
}

func (d *fakeDisplay) Wait() error {
	d.rec.add("display.wait")
	return d.waitErr
}

func (d *fakeDisplay) AppendLine(label, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lines[label] = append(d.lines[label], text)
}

func (d *fakeDisplay) ScrollToBottom(label string) {
	d.rec.add("scroll:" + label)
}

func (d *fakeDisplay) Exit() <-chan struct{} {
	return d.exit
}

func (d *fakeDisplay) has(label, substr string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.ContainsFunc(d.lines[label], func(l string) bool { return strings.Contains(l, substr) })
}

func (d *fakeDisplay) regionLines(label string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.lines[label])
}

type fakeResolver struct {
	cfg domain.BuildConfig
	err error
}

func (r fakeResolver) Resolve(context.Context, string) (domain.BuildConfig, error) {
	return r.cfg, r.err
}

func describe(specs []domain.ProcessSpec) []string {
	out := make([]string, 0, len(specs))
	for _, s := range specs {
		out = append(out, fmt.Sprintf("%s: %s", s.Label, s.String()))
	}
	return out
}
