// Package override implements the client override store: operator-curated
// patent and trademark lists keyed by normalized client name.  Overrides are
// consulted before any upstream call and always win when present.  The store
// is process-local; it is seeded at startup and mutated only through the
// admin surface.
package override

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/patwell/ipgate/internal/domain/records"
	"github.com/patwell/ipgate/pkg/errors"
)

// reNonAlphanumeric matches every character stripped by Normalize.
var reNonAlphanumeric = regexp.MustCompile(`[^a-z0-9]`)

// Normalize maps an entity name to its storage key: lowercase with every
// character outside [a-z0-9] removed.  It is pure and idempotent, and is used
// for both lookups and storage keys, so names that normalize identically
// collide by design ("Kidney-Aide, Inc." and "KIDNEYAIDE" share one record).
func Normalize(name string) string {
	return reNonAlphanumeric.ReplaceAllString(strings.ToLower(name), "")
}

// Record is one curated override entry.  Name preserves the display form the
// operator entered; the map key is Normalize(Name).
type Record struct {
	Name       string              `json:"name"`
	Patents    []records.Patent    `json:"patents"`
	Trademarks []records.Trademark `json:"trademarks"`
}

// Store is a concurrency-safe map of normalized name → Record.  Writes are
// last-writer-wins; entries live for the process lifetime.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Record
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{entries: make(map[string]Record)}
}

// Lookup returns the record stored under the already-normalized key.
func (s *Store) Lookup(key string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.entries[key]
	return rec, ok
}

// Upsert inserts or replaces the record at Normalize(name).  Missing patent
// or trademark lists default to empty.  Returns the storage key, or a
// validation error when the name is empty or normalizes to nothing.
func (s *Store) Upsert(name string, patents []records.Patent, trademarks []records.Trademark) (string, error) {
	key := Normalize(name)
	if strings.TrimSpace(name) == "" || key == "" {
		return "", errors.Validation("client name is required")
	}
	if patents == nil {
		patents = []records.Patent{}
	}
	if trademarks == nil {
		trademarks = []records.Trademark{}
	}

	s.mu.Lock()
	s.entries[key] = Record{Name: name, Patents: patents, Trademarks: trademarks}
	s.mu.Unlock()
	return key, nil
}

// Delete removes the record at Normalize(name) and reports whether one
// existed.
func (s *Store) Delete(name string) bool {
	key := Normalize(name)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	return true
}

// All returns a copy of every stored record keyed by normalized name.
func (s *Store) All() map[string]Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Record, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// ReadSeedFile parses a JSON seed file: an array of Records to load at
// startup.  The file is read once; the store never writes back.
func ReadSeedFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("override: failed to read seed file %q: %w", path, err)
	}
	var recs []Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("override: failed to parse seed file %q: %w", path, err)
	}
	return recs, nil
}

// Seed loads every record into the store via Upsert, skipping entries with
// empty names.  Returns the number of records loaded.
func (s *Store) Seed(recs []Record) int {
	loaded := 0
	for _, rec := range recs {
		if _, err := s.Upsert(rec.Name, rec.Patents, rec.Trademarks); err == nil {
			loaded++
		}
	}
	return loaded
}
