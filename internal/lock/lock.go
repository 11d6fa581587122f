// Package lock serializes work on a single roadmap. The SQL version check
// is what guarantees no lost updates; holding the lock first keeps
// concurrent completions of one roadmap from spending their retries
// against each other.
package lock

import (
	"context"
	"errors"
)

// ErrNotAcquired is returned when the context ends before the lock is held.
var ErrNotAcquired = errors.New("lock not acquired")

// Release gives up a held lock.
type Release func() error

type Locker interface {
	// Acquire blocks until key is held or ctx is done.
	Acquire(ctx context.Context, key string) (Release, error)
}

// RoadmapKey is the lock key for one roadmap.
func RoadmapKey(roadmapID string) string {
	return "preplock:roadmap:" + roadmapID
}
