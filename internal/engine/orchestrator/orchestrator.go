// Package orchestrator drives a build: the initial compile, and in watch mode
// the long-running compiler, alias resolver, deletion sync and shutdown.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.trai.ch/tsbuild/internal/core/domain"
	"go.trai.ch/tsbuild/internal/core/ports"
	"go.trai.ch/tsbuild/internal/engine/distsync"
	"go.trai.ch/tsbuild/internal/engine/queue"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// readyMarker is printed by the compiler once its first watch pass completes.
const readyMarker = "Watching for file changes"

// Orchestrator owns the managed processes, the watcher and the display for one run.
type Orchestrator struct {
	resolver ports.ConfigResolver
	runner   ports.ProcessRunner
	watcher  ports.Watcher
	logger   ports.Logger
	tracer   ports.Tracer
	settings domain.Settings

	state atomic.Int32

	mu       sync.Mutex
	procs    []ports.ManagedProcess
	exits    chan ports.ManagedProcess
	watching bool
	syncer   *distsync.Synchronizer
	syncDone chan struct{}
}

// New creates an Orchestrator.
func New(
	resolver ports.ConfigResolver,
	runner ports.ProcessRunner,
	watcher ports.Watcher,
	logger ports.Logger,
	tracer ports.Tracer,
	settings domain.Settings,
) *Orchestrator {
	return &Orchestrator{
		resolver: resolver,
		runner:   runner,
		watcher:  watcher,
		logger:   logger,
		tracer:   tracer,
		settings: settings,
		exits:    make(chan ports.ManagedProcess, 2),
	}
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() domain.State {
	return domain.State(o.state.Load())
}

func (o *Orchestrator) transition(from, to domain.State) bool {
	return o.state.CompareAndSwap(int32(from), int32(to))
}

// Run performs the build described by args. In watch mode it blocks until the
// session ends and returns a *domain.ExitError when a managed process failed.
func (o *Orchestrator) Run(ctx context.Context, args domain.RunArgs, display ports.Display) error {
	if !o.transition(domain.StateIdle, domain.StateInitialBuild) {
		return zerr.With(zerr.Wrap(domain.ErrInvalidTransition, "orchestrator already ran"), "state", o.State().String())
	}

	ctx, span := o.tracer.Start(ctx, "build", ports.WithAttribute("watch", args.Watch))
	defer span.End()

	cfg, err := o.resolveConfig(ctx, args.Project)
	if err != nil {
		span.RecordError(err)
		o.state.Store(int32(domain.StateExited))
		return err
	}

	if err := o.clean(ctx, cfg); err != nil {
		span.RecordError(err)
		o.state.Store(int32(domain.StateExited))
		return err
	}

	buildErr := o.initialBuild(ctx, cfg)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return o.interrupted(ctx, cfg, args.Watch, ctxErr)
	}

	if !args.Watch {
		if buildErr != nil {
			span.RecordError(buildErr)
			if err := o.clean(ctx, cfg); err != nil {
				o.logger.Error(err)
			}
			o.state.Store(int32(domain.StateExited))
			return errors.Join(domain.ErrBuildFailure, buildErr)
		}
		o.transition(domain.StateInitialBuild, domain.StateOneShotDone)
		o.logger.Info("build completed")
		return nil
	}

	if buildErr != nil {
		o.logger.Warn("initial build failed, watching anyway")
	}

	if !o.transition(domain.StateInitialBuild, domain.StateWatchRunning) {
		return domain.Tag(domain.ErrInvalidTransition, "state", o.State().String())
	}
	return o.watch(ctx, cfg, display)
}

// interrupted ends a run whose initial build was cut short by cancellation.
// In watch mode this is the normal way to leave, so no error is returned.
// A one-shot build removes its partial output.
func (o *Orchestrator) interrupted(ctx context.Context, cfg domain.BuildConfig, watch bool, cause error) error {
	defer o.state.Store(int32(domain.StateExited))

	if watch {
		o.logger.Info("build interrupted")
		return nil
	}

	if err := o.clean(context.WithoutCancel(ctx), cfg); err != nil {
		o.logger.Error(err)
	}
	return zerr.Wrap(cause, "build interrupted")
}

func (o *Orchestrator) resolveConfig(ctx context.Context, project string) (domain.BuildConfig, error) {
	ctx, span := o.tracer.Start(ctx, "resolve-config")
	defer span.End()

	cfg, err := o.resolver.Resolve(ctx, project)
	if err != nil {
		span.RecordError(err)
		return cfg, err
	}
	span.SetAttribute("project", cfg.ProjectConfigPath)
	return cfg, nil
}

// clean removes the output root. A missing directory is not an error.
func (o *Orchestrator) clean(ctx context.Context, cfg domain.BuildConfig) error {
	_, span := o.tracer.Start(ctx, "clean", ports.WithAttribute("dir", cfg.OutputRoot))
	defer span.End()

	if err := os.RemoveAll(cfg.OutputRoot); err != nil {
		err = errors.Join(domain.ErrCleanFailed, zerr.With(err, "dir", cfg.OutputRoot))
		span.RecordError(err)
		return err
	}
	return nil
}

// initialBuild runs the compiler and then the alias resolver, stopping at the first failure.
func (o *Orchestrator) initialBuild(ctx context.Context, cfg domain.BuildConfig) error {
	steps := []struct {
		name string
		spec domain.ProcessSpec
	}{
		{"compile", o.compilerSpec(cfg)},
		{"resolve-aliases", o.aliasResolverSpec(cfg)},
	}

	for _, step := range steps {
		if err := o.runStep(ctx, step.name, step.spec); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) runStep(ctx context.Context, name string, spec domain.ProcessSpec) error {
	ctx, span := o.tracer.Start(ctx, name, ports.WithAttribute("command", spec.String()))
	defer span.End()

	o.logger.Info("running " + spec.String())
	out, err := o.runner.RunOnce(ctx, spec)
	if err != nil {
		var procErr *domain.ProcessError
		if errors.As(err, &procErr) {
			span.SetAttribute("exit_code", procErr.ExitCode)
		}
		span.RecordError(err)
		return err
	}
	if out != "" {
		o.logger.Info(out)
	}
	return nil
}

func (o *Orchestrator) compilerSpec(cfg domain.BuildConfig, extra ...string) domain.ProcessSpec {
	args := slices.Concat(extra, []string{"-p", cfg.ProjectConfigPath})
	return domain.NewProcessSpec(domain.LabelCompiler, o.settings.Compiler, cfg.ConfigDir, args...)
}

func (o *Orchestrator) aliasResolverSpec(cfg domain.BuildConfig, extra ...string) domain.ProcessSpec {
	args := slices.Concat(extra, []string{"-p", cfg.ProjectConfigPath})
	return domain.NewProcessSpec(domain.LabelAliasResolver, o.settings.AliasResolver, cfg.ConfigDir, args...)
}

// exitResult is how a watch session ended.
type exitResult struct {
	code  int
	label string
	err   error
}

func (o *Orchestrator) watch(ctx context.Context, cfg domain.BuildConfig, display ports.Display) error {
	if err := display.Start(ctx); err != nil {
		return o.shutdown(display, exitResult{code: 1, err: errors.Join(domain.ErrDisplayFailed, err)})
	}
	o.logger.SetOutput(newLineWriter(display, domain.LabelOrchestrator))

	ready := make(chan struct{})
	var readyOnce sync.Once
	onReady := func(line string) {
		if strings.Contains(line, readyMarker) {
			readyOnce.Do(func() { close(ready) })
		}
	}

	if err := o.spawn(ctx, o.compilerSpec(cfg, "--watch", "--preserveWatchOutput"), display, onReady); err != nil {
		return o.shutdown(display, exitResult{code: 1, err: err})
	}

	if res, stop := o.awaitReady(ctx, ready, display); stop {
		return o.shutdown(display, res)
	}

	if err := o.spawn(ctx, o.aliasResolverSpec(cfg, "--watch"), display, nil); err != nil {
		return o.shutdown(display, exitResult{code: 1, err: err})
	}

	if err := o.startSync(ctx, cfg); err != nil {
		return o.shutdown(display, exitResult{code: 1, err: err})
	}

	o.logger.Info("watching " + cfg.SourceRoot)
	return o.shutdown(display, o.awaitTrigger(ctx, display))
}

// spawn starts a managed process whose output is routed to its display region.
func (o *Orchestrator) spawn(
	ctx context.Context,
	spec domain.ProcessSpec,
	display ports.Display,
	observe func(line string),
) error {
	label := spec.Label
	proc, err := o.runner.Spawn(ctx, spec, func(line string) {
		display.AppendLine(label, line)
		if observe != nil {
			observe(line)
		}
	})
	if err != nil {
		return err
	}

	o.mu.Lock()
	o.procs = append(o.procs, proc)
	o.mu.Unlock()

	go func() {
		<-proc.Done()
		o.exits <- proc
	}()

	o.logger.Info(fmt.Sprintf("started %s (pid %d)", spec.String(), proc.PID()))
	return nil
}

func (o *Orchestrator) startSync(ctx context.Context, cfg domain.BuildConfig) error {
	if err := o.watcher.Start(ctx, cfg.SourceRoot, []string{cfg.OutputRoot}); err != nil {
		return err
	}

	syncer := distsync.New(cfg.Mapper(), queue.New(o.settings.Concurrency), o.logger)
	done := make(chan struct{})

	o.mu.Lock()
	o.watching = true
	o.syncer = syncer
	o.syncDone = done
	o.mu.Unlock()

	// Removals already queued finish even after the session is cancelled.
	syncCtx := context.WithoutCancel(ctx)
	go func() {
		defer close(done)
		syncer.Run(syncCtx, o.watcher.Events())
	}()
	return nil
}

// awaitReady holds back the alias resolver until the compiler finished its first pass.
func (o *Orchestrator) awaitReady(ctx context.Context, ready <-chan struct{}, display ports.Display) (exitResult, bool) {
	timer := time.NewTimer(o.settings.ReadyTimeout)
	defer timer.Stop()

	for {
		select {
		case <-ready:
			return exitResult{}, false
		case <-timer.C:
			o.logger.Warn(fmt.Sprintf("compiler not ready after %s, starting %s anyway",
				o.settings.ReadyTimeout, domain.LabelAliasResolver))
			return exitResult{}, false
		case <-ctx.Done():
			return exitResult{}, true
		case <-display.Exit():
			return exitResult{}, true
		case proc := <-o.exits:
			if res, stop := o.onExit(proc, display); stop {
				return res, true
			}
		}
	}
}

func (o *Orchestrator) awaitTrigger(ctx context.Context, display ports.Display) exitResult {
	for {
		select {
		case <-ctx.Done():
			return exitResult{}
		case <-display.Exit():
			return exitResult{}
		case proc := <-o.exits:
			if res, stop := o.onExit(proc, display); stop {
				return res
			}
		}
	}
}

// onExit decides whether a process exit ends the session. Clean exits and
// signal deaths are reported and tolerated.
func (o *Orchestrator) onExit(proc ports.ManagedProcess, display ports.Display) (exitResult, bool) {
	status := proc.Wait()
	display.ScrollToBottom(proc.Label())

	if status.Failed() {
		return exitResult{code: status.Code, label: proc.Label()}, true
	}

	how := fmt.Sprintf("with code %d", status.Code)
	if status.Signaled {
		how = "by signal"
	}
	o.logger.Warn(fmt.Sprintf("%s exited %s, continuing", proc.Label(), how))
	return exitResult{}, false
}

// shutdown tears the session down exactly once: display, logger, watcher and
// synchronizer, then the managed processes.
func (o *Orchestrator) shutdown(display ports.Display, res exitResult) error {
	if !o.transition(domain.StateWatchRunning, domain.StateShuttingDown) {
		return nil
	}

	stopErr := display.Stop()
	displayErr := display.Wait()
	o.logger.SetOutput(nil)
	for _, err := range []error{stopErr, displayErr} {
		if err != nil {
			o.logger.Warn("display: " + err.Error())
		}
	}

	o.stopSync()
	o.terminateAll()

	var err error
	switch {
	case res.err != nil:
		err = res.err
	case res.code != 0:
		o.logger.Error(zerr.With(domain.Tag(domain.ErrProcessCrash, "label", res.label), "exit_code", res.code))
		err = &domain.ExitError{Code: res.code, Label: res.label}
	default:
		o.logger.Info("watch session ended")
	}

	o.state.Store(int32(domain.StateExited))
	return err
}

func (o *Orchestrator) stopSync() {
	o.mu.Lock()
	watching, syncer, done := o.watching, o.syncer, o.syncDone
	o.mu.Unlock()

	if !watching {
		return
	}
	if err := o.watcher.Stop(); err != nil {
		o.logger.Warn("watcher: " + err.Error())
	}
	<-done
	syncer.Wait()
}

func (o *Orchestrator) terminateAll() {
	o.mu.Lock()
	procs := append([]ports.ManagedProcess(nil), o.procs...)
	o.mu.Unlock()

	var g errgroup.Group
	for _, proc := range procs {
		if !proc.Alive() {
			continue
		}
		g.Go(func() error {
			return proc.Terminate(context.Background(), o.settings.KillTimeout)
		})
	}
	if err := g.Wait(); err != nil {
		o.logger.Error(err)
	}
}
