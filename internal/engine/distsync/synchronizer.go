// Package distsync mirrors source deletions into the compiled output tree.
package distsync

import (
	"context"
	"errors"
	"io/fs"
	"iter"
	"os"
	"sync"

	"go.trai.ch/tsbuild/internal/core/domain"
	"go.trai.ch/tsbuild/internal/core/ports"
	"go.trai.ch/tsbuild/internal/engine/queue"
	"go.trai.ch/zerr"
)

// Synchronizer removes the output artifacts of deleted sources.
// Failures are logged and never returned to the caller.
type Synchronizer struct {
	mapper domain.PathMapper
	queue  *queue.Queue
	logger ports.Logger
	wg     sync.WaitGroup
}

// New creates a Synchronizer that schedules file removals on q.
func New(mapper domain.PathMapper, q *queue.Queue, logger ports.Logger) *Synchronizer {
	return &Synchronizer{mapper: mapper, queue: q, logger: logger}
}

// Run applies every event from events until the stream ends or ctx is done.
func (s *Synchronizer) Run(ctx context.Context, events iter.Seq[domain.SyncEvent]) {
	for ev := range events {
		if ctx.Err() != nil {
			return
		}
		s.Apply(ctx, ev)
	}
}

// Apply mirrors a single deletion. File removals go through the queue keyed
// by source path; directory removals happen immediately.
func (s *Synchronizer) Apply(ctx context.Context, ev domain.SyncEvent) {
	switch ev.Kind {
	case domain.DirectoryDeleted:
		target, err := s.mapper.ToOutputPath(ev.Path)
		if err != nil {
			s.report(ev.Path, err)
			return
		}
		s.report(ev.Path, removeAll(target))

	case domain.FileDeleted:
		targets, err := s.mapper.EmittedArtifactPaths(ev.Path)
		if err != nil {
			s.report(ev.Path, err)
			return
		}

		result := s.queue.Enqueue(ctx, ev.Path, func(context.Context) error {
			return removeFiles(targets)
		})

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.report(ev.Path, <-result)
		}()
	}
}

// Wait blocks until every queued removal has settled and been reported.
func (s *Synchronizer) Wait() {
	s.queue.Wait()
	s.wg.Wait()
}

func (s *Synchronizer) report(path string, err error) {
	if err == nil || s.logger == nil {
		return
	}
	s.logger.Error(errors.Join(domain.ErrSyncFailure, zerr.With(err, "path", path)))
}

// removeFiles removes every path, treating a missing file as already removed.
func removeFiles(paths []string) error {
	var errs error
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

func removeAll(path string) error {
	if err := os.RemoveAll(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
