// Package resolver implements the lookup pipeline shared by the patent and
// trademark domains: cache check, override check, then an ordered fallback
// chain of upstream adapters, with every outcome written back to the cache.
package resolver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/patwell/ipgate/internal/cache"
	"github.com/patwell/ipgate/internal/domain/override"
	"github.com/patwell/ipgate/internal/domain/records"
	"github.com/patwell/ipgate/internal/infrastructure/monitoring/logging"
	"github.com/patwell/ipgate/pkg/errors"
)

// Adapter is one upstream source in the fallback chain.  Query returns the
// canonical records for a search term; SRC_* errors mean the source is
// unusable for this request and the chain advances.
type Adapter[T any] interface {
	Name() string
	Query(ctx context.Context, term string) ([]T, error)
}

// Instrumentation receives resolution telemetry.  *prometheus.Metrics
// satisfies it.
type Instrumentation interface {
	ObserveResolution(domain, source string, elapsed time.Duration)
	ObserveCacheAccess(domain string, hit bool)
	ObserveProviderCall(adapter, outcome string, elapsed time.Duration)
}

// nopInstrumentation discards all telemetry.
type nopInstrumentation struct{}

func (nopInstrumentation) ObserveResolution(string, string, time.Duration)   {}
func (nopInstrumentation) ObserveCacheAccess(string, bool)                   {}
func (nopInstrumentation) ObserveProviderCall(string, string, time.Duration) {}

// NopInstrumentation returns an Instrumentation that discards everything.
func NopInstrumentation() Instrumentation { return nopInstrumentation{} }

// Config assembles one domain's resolver.
type Config[T any] struct {
	// Domain labels cache keys, log lines and metrics ("patents",
	// "trademarks").
	Domain string

	// Cache holds prior aggregates; every resolution outcome is written
	// back with TTL.
	Cache cache.Cache
	TTL   time.Duration

	// Overrides is consulted after the cache and before any adapter.
	// FromOverride projects a stored record onto this domain's list.
	Overrides    *override.Store
	FromOverride func(override.Record) []T

	// Granted is the grant-signal predicate used for aggregate counts.
	Granted func(T) bool

	// Adapters is the upstream fallback chain, highest priority first.
	Adapters []Adapter[T]

	Logger  logging.Logger
	Metrics Instrumentation
}

// Resolver answers lookups for one domain.  Safe for concurrent use;
// concurrent lookups of the same key share a single upstream resolution.
type Resolver[T any] struct {
	cfg   Config[T]
	group singleflight.Group
}

// New builds a Resolver.  A nil Metrics defaults to the discard
// implementation; Logger, Cache and Overrides are required.
func New[T any](cfg Config[T]) *Resolver[T] {
	if cfg.Metrics == nil {
		cfg.Metrics = nopInstrumentation{}
	}
	return &Resolver[T]{cfg: cfg}
}

// CacheKey returns the cache key for a search term: the domain label joined
// to the normalized term.  Terms that normalize identically share one entry.
func (r *Resolver[T]) CacheKey(term string) string {
	return r.cfg.Domain + ":" + override.Normalize(term)
}

// Resolve answers one lookup.  The only error it returns is a validation
// error for a missing term; upstream failures surface inside the result
// (Source "error") so callers still get the canonical shape.
func (r *Resolver[T]) Resolve(ctx context.Context, term string) (records.SearchResult[T], error) {
	if strings.TrimSpace(term) == "" {
		return records.SearchResult[T]{}, errors.Validation("search term is required")
	}
	if override.Normalize(term) == "" {
		// The term carries no indexable characters, so it can never match
		// an override or a cached entry.  Answer empty immediately.
		empty := records.Aggregate([]T{}, r.cfg.Granted, records.SourceNone)
		empty.Message = fmt.Sprintf("no %s found for %q", r.cfg.Domain, term)
		return empty, nil
	}

	start := time.Now()
	key := r.CacheKey(term)

	var cached records.SearchResult[T]
	err := r.cfg.Cache.Get(ctx, key, &cached)
	switch {
	case err == nil:
		r.cfg.Metrics.ObserveCacheAccess(r.cfg.Domain, true)
		r.cfg.Logger.Debug("cache hit",
			logging.String("domain", r.cfg.Domain),
			logging.String("key", key),
			logging.String("source", string(cached.Source)),
		)
		return cached, nil
	case errors.IsCode(err, errors.CodeNotFound):
		r.cfg.Metrics.ObserveCacheAccess(r.cfg.Domain, false)
	default:
		// Backend failure reads as a miss; resolution proceeds.
		r.cfg.Metrics.ObserveCacheAccess(r.cfg.Domain, false)
		r.cfg.Logger.Warn("cache read failed",
			logging.String("key", key),
			logging.Err(err),
		)
	}

	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		return r.resolveUncached(ctx, key, term), nil
	})
	if err != nil {
		// The closure never errors; this is unreachable but kept for the
		// singleflight contract.
		return records.SearchResult[T]{}, err
	}

	result := v.(records.SearchResult[T])
	r.cfg.Metrics.ObserveResolution(r.cfg.Domain, string(result.Source), time.Since(start))
	return result, nil
}

// resolveUncached runs the override check and the adapter chain, then writes
// the outcome (whatever it is) back to the cache.
func (r *Resolver[T]) resolveUncached(ctx context.Context, key, term string) records.SearchResult[T] {
	result := r.lookup(ctx, term)

	if err := r.cfg.Cache.Set(ctx, key, result, r.cfg.TTL); err != nil {
		r.cfg.Logger.Warn("cache write failed",
			logging.String("key", key),
			logging.Err(err),
		)
	}
	return result
}

func (r *Resolver[T]) lookup(ctx context.Context, term string) records.SearchResult[T] {
	if rec, ok := r.cfg.Overrides.Lookup(override.Normalize(term)); ok {
		r.cfg.Logger.Info("resolved from override store",
			logging.String("domain", r.cfg.Domain),
			logging.String("client", rec.Name),
		)
		return records.Aggregate(r.cfg.FromOverride(rec), r.cfg.Granted, records.SourceClientDatabase)
	}

	for _, adapter := range r.cfg.Adapters {
		callStart := time.Now()
		list, err := adapter.Query(ctx, term)
		elapsed := time.Since(callStart)

		if err != nil {
			if errors.IsProvider(err) {
				r.cfg.Metrics.ObserveProviderCall(adapter.Name(), "error", elapsed)
				r.cfg.Logger.Warn("adapter failed, advancing chain",
					logging.String("domain", r.cfg.Domain),
					logging.String("adapter", adapter.Name()),
					logging.Err(err),
				)
				continue
			}
			r.cfg.Metrics.ObserveProviderCall(adapter.Name(), "error", elapsed)
			r.cfg.Logger.Error("resolution failed",
				logging.String("domain", r.cfg.Domain),
				logging.String("adapter", adapter.Name()),
				logging.Err(err),
			)
			failed := records.Aggregate([]T{}, r.cfg.Granted, records.SourceError)
			failed.Error = err.Error()
			return failed
		}

		if len(list) == 0 {
			r.cfg.Metrics.ObserveProviderCall(adapter.Name(), "empty", elapsed)
			continue
		}

		r.cfg.Metrics.ObserveProviderCall(adapter.Name(), "hit", elapsed)
		r.cfg.Logger.Info("resolved from upstream",
			logging.String("domain", r.cfg.Domain),
			logging.String("adapter", adapter.Name()),
			logging.Int("records", len(list)),
		)
		return records.Aggregate(list, r.cfg.Granted, records.SourceUSPTOAPI)
	}

	empty := records.Aggregate([]T{}, r.cfg.Granted, records.SourceNone)
	empty.Message = fmt.Sprintf("no %s found for %q", r.cfg.Domain, term)
	return empty
}
