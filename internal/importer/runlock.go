package importer

// runlock.go serializes import runs per domain.
//
// The engine is single-writer by design: a run owns its in-memory index and
// mutates it between rows, so two concurrent runs against the same domain
// would race on both the index and the catalog. The lock is the external
// serialization point the engine requires.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrRunInProgress is returned when another import run holds the domain slot
// and the wait timeout expires. Clients should retry after the active run
// completes.
var ErrRunInProgress = errors.New("an import run for this domain is already in progress")

// DefaultRunWait is how long Acquire waits for the active run to finish
// before rejecting.
const DefaultRunWait = 10 * time.Second

// RunLock grants at most one active import run per domain.
type RunLock struct {
	maxWait time.Duration

	mu    sync.Mutex
	slots map[string]chan struct{}
}

// NewRunLock creates a lock with the given wait timeout.
func NewRunLock(maxWait time.Duration) *RunLock {
	if maxWait <= 0 {
		maxWait = DefaultRunWait
	}
	return &RunLock{
		maxWait: maxWait,
		slots:   make(map[string]chan struct{}),
	}
}

func (l *RunLock) slot(domain string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[domain]
	if !ok {
		s = make(chan struct{}, 1)
		l.slots[domain] = s
	}
	return s
}

// Acquire claims the domain's run slot, waiting up to the configured timeout.
// Returns ErrRunInProgress if the slot stays occupied, or the context error
// if the caller gives up first. The caller must Release when the run ends.
func (l *RunLock) Acquire(ctx context.Context, domain string) error {
	s := l.slot(domain)

	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case s <- struct{}{}:
		return nil
	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrRunInProgress
	}
}

// Release frees the domain's run slot.
func (l *RunLock) Release(domain string) {
	select {
	case <-l.slot(domain):
	default:
		// Release without Acquire is a programming error; ignore rather
		// than block.
	}
}
