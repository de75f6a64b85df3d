package cache

import (
	"context"
	"sync"
	"time"

	"github.com/shopmall/backend/internal/domain/shared"
)

const defaultSweepInterval = 5 * time.Minute

// InMemoryIdempotencyStore keeps processed notification keys in a map of key -> expiry.
// Keys are not shared between processes, so it only suits a single instance.
// Expired keys are swept during writes at most once per sweep interval.
type InMemoryIdempotencyStore struct {
	mu        sync.Mutex
	expiries  map[string]time.Time
	now       func() time.Time
	sweepEach time.Duration
	lastSweep time.Time
}

// NewInMemoryIdempotencyStore creates an empty store
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	return newInMemoryIdempotencyStore(time.Now, defaultSweepInterval)
}

func newInMemoryIdempotencyStore(now func() time.Time, sweepEach time.Duration) *InMemoryIdempotencyStore {
	return &InMemoryIdempotencyStore{
		expiries:  make(map[string]time.Time),
		now:       now,
		sweepEach: sweepEach,
		lastSweep: now(),
	}
}

// MarkProcessed records key until ttl elapses.
// It returns false when the key is already recorded and still live.
func (s *InMemoryIdempotencyStore) MarkProcessed(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= s.sweepEach {
		s.sweep(now)
	}
	if expiry, ok := s.expiries[key]; ok && now.Before(expiry) {
		return false, nil
	}
	s.expiries[key] = now.Add(ttl)
	return true, nil
}

// IsProcessed reports whether key is recorded and not expired
func (s *InMemoryIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.expiries[key]
	return ok && s.now().Before(expiry), nil
}

// Close drops every key
func (s *InMemoryIdempotencyStore) Close() error {
	s.mu.Lock()
	s.expiries = make(map[string]time.Time)
	s.mu.Unlock()
	return nil
}

// Len returns the number of recorded keys, expired ones included until the next sweep
func (s *InMemoryIdempotencyStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.expiries)
}

func (s *InMemoryIdempotencyStore) sweep(now time.Time) {
	for key, expiry := range s.expiries {
		if !now.Before(expiry) {
			delete(s.expiries, key)
		}
	}
	s.lastSweep = now
}

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
