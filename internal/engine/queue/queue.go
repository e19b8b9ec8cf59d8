// Package queue serializes filesystem operations per path while bounding
// how many distinct paths are worked on at once.
package queue

import (
	"context"
	"fmt"
	"sync"

	"go.trai.ch/tsbuild/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/semaphore"
)

// Op is a unit of work keyed by path.
type Op func(ctx context.Context) error

// entry is the most recently enqueued operation for a key.
// done is closed once that operation has settled.
type entry struct {
	done chan struct{}
}

// Queue runs operations so that two operations with the same key never
// overlap and run in enqueue order. At most limit operations run at once.
type Queue struct {
	sem *semaphore.Weighted

	mu      sync.Mutex
	pending map[string]*entry

	wg sync.WaitGroup
}

// New creates a queue with the given concurrency ceiling.
// A non-positive limit falls back to domain.DefaultConcurrency.
func New(limit int) *Queue {
	if limit <= 0 {
		limit = domain.DefaultConcurrency
	}
	return &Queue{
		sem:     semaphore.NewWeighted(int64(limit)),
		pending: make(map[string]*entry),
	}
}

// Enqueue schedules op for key and returns a channel that receives its result.
// Ordering is fixed at call time: a later Enqueue for the same key runs
// strictly after this one settles, whether it succeeds, fails or panics.
func (q *Queue) Enqueue(ctx context.Context, key string, op Op) <-chan error {
	result := make(chan error, 1)
	cur := &entry{done: make(chan struct{})}

	q.mu.Lock()
	prev := q.pending[key]
	q.pending[key] = cur
	q.mu.Unlock()

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()

		if prev != nil {
			<-prev.done
		}

		err := q.run(ctx, key, op)
		q.settle(key, cur)
		result <- err
		close(result)
	}()

	return result
}

// Do enqueues op and waits for its result.
func (q *Queue) Do(ctx context.Context, key string, op Op) error {
	return <-q.Enqueue(ctx, key, op)
}

// Pending reports whether an operation for key is queued or running.
func (q *Queue) Pending(key string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.pending[key]
	return ok
}

// Len returns the number of keys with queued or running operations.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Wait blocks until every enqueued operation has settled.
func (q *Queue) Wait() {
	q.wg.Wait()
}

func (q *Queue) run(ctx context.Context, key string, op Op) (err error) {
	if err := q.sem.Acquire(ctx, 1); err != nil {
		return zerr.With(zerr.Wrap(err, "operation cancelled"), "key", key)
	}
	defer q.sem.Release(1)

	defer func() {
		if r := recover(); r != nil {
			err = zerr.With(zerr.New(fmt.Sprintf("operation panicked: %v", r)), "key", key)
		}
	}()

	return op(ctx)
}

// settle releases the key's successors and drops the map entry if no
// later operation has been queued for it.
func (q *Queue) settle(key string, cur *entry) {
	q.mu.Lock()
	defer q.mu.Unlock()

	close(cur.done)
	if q.pending[key] == cur {
		delete(q.pending, key)
	}
}
