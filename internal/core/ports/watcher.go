package ports

import (
	"context"
	"iter"

	"go.trai.ch/tsbuild/internal/core/domain"
)

// Watcher defines the interface for watching source deletions.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the given root directory recursively.
	// Directories listed in ignore are not watched.
	Start(ctx context.Context, root string, ignore []string) error
	// Stop stops the watcher and ends the event stream.
	Stop() error
	// Events returns an iterator of debounced deletion events.
	Events() iter.Seq[domain.SyncEvent]
}
