package app

import (
	"time"

	"go.trai.ch/tsbuild/internal/core/ports"
)

// WithWatcherFactory replaces the constructor of the source watcher.
func (a *App) WithWatcherFactory(f func(time.Duration, ports.Logger) (ports.Watcher, error)) *App {
	a.newWatcher = f
	return a
}
