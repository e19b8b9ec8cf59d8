package domain

// State is a stage of the orchestrator lifecycle.
type State int32

const (
	// StateIdle is the state before a run starts.
	StateIdle State = iota
	// StateInitialBuild covers configuration, cleanup and the one-shot compile.
	StateInitialBuild
	// StateOneShotDone is terminal for a successful non-watch build.
	StateOneShotDone
	// StateWatchRunning is the long-running watch session.
	StateWatchRunning
	// StateShuttingDown is entered exactly once when the watch session ends.
	StateShuttingDown
	// StateExited is terminal after teardown.
	StateExited
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInitialBuild:
		return "initial-build"
	case StateOneShotDone:
		return "one-shot-done"
	case StateWatchRunning:
		return "watch-running"
	case StateShuttingDown:
		return "shutting-down"
	case StateExited:
		return "exited"
	default:
		return "unknown"
	}
}
