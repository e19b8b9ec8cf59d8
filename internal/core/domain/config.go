// Package domain holds the core types of the build orchestrator.
package domain

import (
	"path/filepath"
	"time"
)

const (
	// TSConfigFileName is the compiler configuration file discovered when no project is given.
	TSConfigFileName = "tsconfig.json"
	// SettingsFileName is the optional orchestrator settings file.
	SettingsFileName = "tsbuild.yaml"
)

// BuildConfig is the resolved build configuration. It is immutable once resolved.
type BuildConfig struct {
	// ProjectConfigPath is the absolute path of the tsconfig file.
	ProjectConfigPath string
	// ConfigDir is the directory containing ProjectConfigPath.
	ConfigDir string
	// SourceRoot is the absolute compilerOptions.rootDir.
	SourceRoot string
	// OutputRoot is the absolute compilerOptions.outDir.
	OutputRoot string
}

// Validate checks the invariants of a resolved configuration.
func (c BuildConfig) Validate() error {
	if c.OutputRoot == "" {
		return Tag(ErrMissingOutDir, "project", c.ProjectConfigPath)
	}
	if c.SourceRoot == "" {
		return Tag(ErrMissingRootDir, "project", c.ProjectConfigPath)
	}
	if filepath.Clean(c.OutputRoot) == filepath.Clean(c.SourceRoot) {
		return Tag(ErrOutputRootEqualsSource, "dir", c.OutputRoot)
	}
	return nil
}

// Mapper returns the path mapper for this configuration.
func (c BuildConfig) Mapper() PathMapper {
	return NewPathMapper(c.SourceRoot, c.OutputRoot)
}

// RunArgs are the parsed command line arguments of a build.
type RunArgs struct {
	// Watch enables watch mode.
	Watch bool
	// Project overrides tsconfig discovery. Empty means discover from the working directory.
	Project string
	// OutputMode selects the display: auto, tui or linear. Empty means the settings value.
	OutputMode string
}

// Settings are the tunables of the orchestrator, loaded from tsbuild.yaml.
type Settings struct {
	// Compiler is the compiler command line prefix.
	Compiler []string
	// AliasResolver is the alias resolver command line prefix.
	AliasResolver []string
	// Concurrency is the ceiling of concurrent deletion operations.
	Concurrency int
	// KillTimeout is how long a process may take to exit after SIGTERM.
	KillTimeout time.Duration
	// Debounce is the window used to coalesce filesystem events.
	Debounce time.Duration
	// ReadyTimeout bounds how long the alias resolver waits for the compiler's first pass.
	ReadyTimeout time.Duration
	// OutputMode is the default display mode.
	OutputMode string
}

// Default settings values.
const (
	DefaultConcurrency  = 10
	DefaultKillTimeout  = 3 * time.Second
	DefaultDebounce     = 50 * time.Millisecond
	DefaultReadyTimeout = 30 * time.Second
	DefaultOutputMode   = "auto"
)

// DefaultSettings returns the settings used when no tsbuild.yaml is present.
func DefaultSettings() Settings {
	return Settings{
		Compiler:      []string{"tsc"},
		AliasResolver: []string{"tsc-alias"},
		Concurrency:   DefaultConcurrency,
		KillTimeout:   DefaultKillTimeout,
		Debounce:      DefaultDebounce,
		ReadyTimeout:  DefaultReadyTimeout,
		OutputMode:    DefaultOutputMode,
	}
}
