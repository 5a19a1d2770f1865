// Package cache provides the time-bounded result cache that fronts the
// resolver.  Two backends implement the same contract: an in-process map
// (the default, matching single-replica deployments) and Redis for sharing
// entries between replicas.  Both serialize values as JSON so a cache hit
// returns a payload byte-identical to the original resolution.
package cache

import (
	"context"
	"time"

	"github.com/patwell/ipgate/pkg/errors"
)

// ErrMiss is returned by Get when a key is absent or its entry has outlived
// the TTL it was stored with.  Stale entries are ignored, not purged; the
// next Set for the key overwrites them.
var ErrMiss = errors.New(errors.CodeNotFound, "cache miss")

// Cache is the result-cache contract.  Implementations are safe for
// concurrent use; writes to the same key are last-writer-wins.
type Cache interface {
	// Get unmarshals the live value stored under key into dest, or returns
	// ErrMiss.  Any other error indicates a backend failure.
	Get(ctx context.Context, key string, dest interface{}) error

	// Set stores value under key with the given TTL, overwriting any prior
	// entry.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Size returns the number of stored entries (stale ones included) and
	// whether the backend can report it.  Redis cannot without a scan, so it
	// reports false.
	Size(ctx context.Context) (int, bool)

	// Ping verifies the backend is reachable.  The memory backend always
	// succeeds.
	Ping(ctx context.Context) error
}
