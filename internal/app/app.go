// Package app implements the application layer for tsbuild.
package app

import (
	"cmp"
	"context"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/tsbuild/internal/adapters/detector"
	"go.trai.ch/tsbuild/internal/adapters/linear"
	"go.trai.ch/tsbuild/internal/adapters/tsconfig"
	"go.trai.ch/tsbuild/internal/adapters/tui"
	"go.trai.ch/tsbuild/internal/adapters/watcher"
	"go.trai.ch/tsbuild/internal/core/domain"
	"go.trai.ch/tsbuild/internal/core/ports"
	"go.trai.ch/tsbuild/internal/engine/orchestrator"
	"go.trai.ch/zerr"
)

// regionLabels are the display regions, top to bottom.
var regionLabels = []string{
	domain.LabelCompiler,
	domain.LabelAliasResolver,
	domain.LabelOrchestrator,
}

// App represents the main application logic.
type App struct {
	settings   ports.SettingsLoader
	runner     ports.ProcessRunner
	logger     ports.Logger
	tracer     ports.Tracer
	workDir    string
	stdout     io.Writer
	teaOptions []tea.ProgramOption
	newWatcher func(time.Duration, ports.Logger) (ports.Watcher, error)
}

func newWatcher(window time.Duration, logger ports.Logger) (ports.Watcher, error) {
	w, err := watcher.NewWatcher(window, logger)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// New creates a new App instance.
func New(settings ports.SettingsLoader, runner ports.ProcessRunner, log ports.Logger, tracer ports.Tracer) *App {
	return &App{
		settings:   settings,
		runner:     runner,
		logger:     log,
		tracer:     tracer,
		newWatcher: newWatcher,
	}
}

// WithTeaOptions adds bubbletea program options to the live display.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithWorkDir overrides the directory settings and tsconfig discovery start from.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// WithStdout redirects the linear display.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// Build runs one build, or a watch session when args.Watch is set.
func (a *App) Build(ctx context.Context, args domain.RunArgs) error {
	cwd, err := a.cwd()
	if err != nil {
		return zerr.Wrap(err, "cannot determine working directory")
	}

	settings, err := a.settings.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load settings")
	}

	// Only a watch session observes the source tree.
	var w ports.Watcher
	if args.Watch {
		w, err = a.newWatcher(settings.Debounce, a.logger)
		if err != nil {
			return err
		}
		defer func() { _ = w.Stop() }()
	}

	resolver := tsconfig.NewResolver(a.runner, settings.Compiler).WithWorkDir(cwd)
	orch := orchestrator.New(resolver, a.runner, w, a.logger, a.tracer, settings)

	return orch.Run(ctx, args, a.display(args, settings))
}

func (a *App) display(args domain.RunArgs, settings domain.Settings) ports.Display {
	mode := detector.ResolveMode(detector.DetectEnvironment(), cmp.Or(args.OutputMode, settings.OutputMode))
	if !args.Watch || mode != detector.ModeTUI {
		return linear.NewDisplay(a.stdout)
	}

	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithoutSignalHandler()}, a.teaOptions...)
	return tui.NewDisplay(regionLabels, opts...)
}

func (a *App) cwd() (string, error) {
	if a.workDir != "" {
		return a.workDir, nil
	}
	return os.Getwd()
}
