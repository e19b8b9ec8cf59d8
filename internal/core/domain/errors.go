package domain

import "go.trai.ch/zerr"

var (
	// ErrUsage is returned when the command line is malformed.
	ErrUsage = zerr.New("invalid usage")

	// ErrConfig is returned when the build configuration cannot be resolved.
	ErrConfig = zerr.New("invalid build configuration")

	// ErrConfigNotFound is returned when no tsconfig.json can be discovered.
	ErrConfigNotFound = zerr.New("could not find tsconfig.json")

	// ErrShowConfigFailed is returned when the compiler cannot print the resolved configuration.
	ErrShowConfigFailed = zerr.New("failed to resolve compiler configuration")

	// ErrShowConfigParse is returned when the resolved configuration is not valid JSON.
	ErrShowConfigParse = zerr.New("failed to parse compiler configuration")

	// ErrMissingOutDir is returned when the compiler configuration has no outDir.
	ErrMissingOutDir = zerr.New("compilerOptions.outDir is not set")

	// ErrMissingRootDir is returned when the compiler configuration has no rootDir.
	ErrMissingRootDir = zerr.New("compilerOptions.rootDir is not set")

	// ErrOutputRootEqualsSource is returned when outDir and rootDir resolve to the same directory.
	ErrOutputRootEqualsSource = zerr.New("outDir must differ from rootDir")

	// ErrSettingsRead is returned when tsbuild.yaml exists but cannot be read.
	ErrSettingsRead = zerr.New("failed to read settings file")

	// ErrSettingsParse is returned when tsbuild.yaml cannot be parsed.
	ErrSettingsParse = zerr.New("failed to parse settings file")

	// ErrInvalidSettings is returned when a settings value is out of range.
	ErrInvalidSettings = zerr.New("invalid settings")

	// ErrBuildFailure is returned when the compiler or the alias resolver fails.
	ErrBuildFailure = zerr.New("build failed")

	// ErrCleanFailed is returned when the output root cannot be removed.
	ErrCleanFailed = zerr.New("failed to clean output directory")

	// ErrSyncFailure is returned when mirroring a source deletion into the output tree fails.
	ErrSyncFailure = zerr.New("failed to sync deletion")

	// ErrPathOutsideSource is returned when a path does not live under the source root.
	ErrPathOutsideSource = zerr.New("path is outside the source root")

	// ErrSpawnFailed is returned when an external process cannot be started.
	ErrSpawnFailed = zerr.New("failed to start process")

	// ErrProcessCrash is returned when a watch-mode process exits unexpectedly.
	ErrProcessCrash = zerr.New("process exited unexpectedly")

	// ErrWatcherFailed is returned when the source watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to watch source directory")

	// ErrDisplayFailed is returned when the live display cannot be started.
	ErrDisplayFailed = zerr.New("failed to start display")

	// ErrInvalidTransition is returned when the orchestrator is driven out of order.
	ErrInvalidTransition = zerr.New("invalid orchestrator state transition")
)

// Tag attaches metadata to a sentinel error. The result still matches the
// sentinel with errors.Is, which zerr.With on the sentinel itself would not.
func Tag(sentinel error, key string, value any) error {
	return zerr.With(zerr.Wrap(sentinel, ""), key, value)
}
