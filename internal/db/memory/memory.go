// Package memory implements db.Store in process memory. Used when no Redis
// address is configured (local development) and in tests. Counters reset on
// restart; nothing else in the system depends on them surviving.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/propwijzer/propwijzer/internal/db"
)

var _ db.Store = (*Store)(nil)

type entry struct {
	value     int64
	expiresAt time.Time // zero = no expiry
}

// Store is an in-memory db.Store.
type Store struct {
	mu    sync.Mutex
	items map[string]*entry
	now   func() time.Time
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{items: make(map[string]*entry), now: time.Now}
}

// WithClock overrides the time source, for expiry tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() {}

// WaitForReady returns immediately.
func (s *Store) WaitForReady(context.Context, time.Duration) error { return nil }

// Get retrieves a value by key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.live(key)
	if e == nil {
		return nil, db.ErrKeyNotFound
	}
	return []byte(strconv.FormatInt(e.value, 10)), nil
}

// IncrBy atomically increments a key by the given amount.
func (s *Store) IncrBy(_ context.Context, key string, val int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.live(key)
	if e == nil {
		e = &entry{}
		s.items[key] = e
	}
	e.value += val
	return nil
}

// Expire sets TTL on a key. nx skips keys that already have an expiry.
func (s *Store) Expire(_ context.Context, key string, ttl time.Duration, nx bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.live(key)
	if e == nil {
		return nil
	}
	if nx && !e.expiresAt.IsZero() {
		return nil
	}
	e.expiresAt = s.now().Add(ttl)
	return nil
}

// live returns the entry for key, evicting it first if expired.
func (s *Store) live(key string) *entry {
	e, ok := s.items[key]
	if !ok {
		return nil
	}
	if !e.expiresAt.IsZero() && s.now().After(e.expiresAt) {
		delete(s.items, key)
		return nil
	}
	return e
}
