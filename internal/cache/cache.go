// Package cache provides the process-wide search result cache.
//
// Values are stored JSON-encoded so the store is type-erased; callers decode
// into the shape they expect. Every operation runs under one mutex over the
// whole keyspace and never performs I/O while holding it.
package cache

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/jonathan/skillscout/internal/logger"
	"github.com/jonathan/skillscout/internal/metrics"
)

// TTL is the maximum age of a cached entry. Entries at or past this age are absent.
const TTL = 4 * time.Hour

type entry struct {
	payload   []byte
	createdAt time.Time
}

// Store is an in-memory key -> value cache with TTL expiry.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
	log     logger.Logger
	metrics *metrics.Metrics
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for dropped writes.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) { s.log = logger.OrNop(l) }
}

// WithMetrics reports hits and misses to m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]entry),
		now:     time.Now,
		log:     logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get decodes the fresh entry for key into dst.
// It returns false when the key is unknown, the entry has expired, or the
// payload does not decode into dst.
func (s *Store) Get(key string, dst any) bool {
	s.mu.Lock()
	e, ok := s.entries[key]
	fresh := ok && s.now().Sub(e.createdAt) < TTL
	s.mu.Unlock()

	if !fresh {
		s.metrics.CacheLookup(false)
		return false
	}
	if err := json.Unmarshal(e.payload, dst); err != nil {
		s.log.Debug("cache payload did not decode", logger.String("key", key), logger.Error(err))
		s.metrics.CacheLookup(false)
		return false
	}
	s.metrics.CacheLookup(true)
	return true
}

// Set stores value under key, replacing any previous entry.
// A value that cannot be encoded is dropped and logged.
func (s *Store) Set(key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		s.log.Warn("cache value not encodable, skipping write", logger.String("key", key), logger.Error(err))
		return
	}

	s.mu.Lock()
	s.entries[key] = entry{payload: payload, createdAt: s.now()}
	s.mu.Unlock()
}

// Clear removes every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}

// Remove deletes the entry for key. Unknown keys are ignored.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Len reports the number of stored entries, expired ones included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Lookup is a typed wrapper around Store.Get.
func Lookup[T any](s *Store, key string) (T, bool) {
	var v T
	if !s.Get(key, &v) {
		var zero T
		return zero, false
	}
	return v, true
}
