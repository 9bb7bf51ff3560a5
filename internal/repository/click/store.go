// Package click persists day-bucketed affiliate click and search query
// counters on top of the KV store.
package click

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/propwijzer/propwijzer/internal/db"
	"github.com/propwijzer/propwijzer/internal/domain"
)

// store is the consumer interface for counter operations (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	IncrBy(ctx context.Context, key string, val int64) error
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Store implements the counter repository (INCRBY + GET with TTL).
type Store struct {
	store     store
	keyPrefix string
	ttl       time.Duration
	now       func() time.Time
}

// New creates a counter store. ttl bounds how long day buckets are kept
// (recommended: 90 days).
func New(s store, keyPrefix string, ttl time.Duration) *Store {
	return &Store{
		store:     s,
		keyPrefix: keyPrefix,
		ttl:       ttl,
		now:       time.Now,
	}
}

// WithClock overrides the time source, for bucketing tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// IncrClick increments today's click counter for the firm.
func (s *Store) IncrClick(ctx context.Context, firmID string) error {
	return s.incr(ctx, s.clickKey(firmID, s.today()))
}

// IncrQuery increments today's counter for a normalized search query.
func (s *Store) IncrQuery(ctx context.Context, query string) error {
	return s.incr(ctx, s.keyPrefix+"queries:"+query+":"+s.today())
}

// ClickCounts returns per-day click counts for the firm, most recent day
// first, covering today and the (days-1) days before it. Missing buckets
// count as zero.
func (s *Store) ClickCounts(ctx context.Context, firmID string, days int) ([]domain.DayCount, error) {
	if days <= 0 {
		days = 1
	}

	out := make([]domain.DayCount, 0, days)
	day := s.now().UTC()
	for i := 0; i < days; i++ {
		bucket := day.AddDate(0, 0, -i).Format(time.DateOnly)
		count, err := s.get(ctx, s.clickKey(firmID, bucket))
		if err != nil {
			return nil, err
		}
		out = append(out, domain.DayCount{Day: bucket, Count: count})
	}
	return out, nil
}

func (s *Store) incr(ctx context.Context, key string) error {
	if err := s.store.IncrBy(ctx, key, 1); err != nil {
		return fmt.Errorf("counter INCRBY %s: %w", key, err)
	}

	// Set TTL only if the key has no expiry yet (NX, not reset on repeat).
	if err := s.store.Expire(ctx, key, s.ttl, true); err != nil {
		return fmt.Errorf("counter EXPIRE %s: %w", key, err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, key string) (int64, error) {
	data, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("counter GET %s: %w", key, err)
	}

	val, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("counter GET %s parse: %w", key, err)
	}
	return val, nil
}

func (s *Store) clickKey(firmID, day string) string {
	return s.keyPrefix + "clicks:" + firmID + ":" + day
}

func (s *Store) today() string {
	return s.now().UTC().Format(time.DateOnly)
}
