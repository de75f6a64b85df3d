package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is advanced by hand
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	isNew, err := store.MarkProcessed(ctx, "A1B2C3:2401011200000001", time.Hour)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = store.MarkProcessed(ctx, "A1B2C3:2401011200000001", time.Hour)
	require.NoError(t, err)
	assert.False(t, isNew, "redelivered notification must be reported as processed")

	processed, err := store.IsProcessed(ctx, "A1B2C3:2401011200000001")
	require.NoError(t, err)
	assert.True(t, processed)

	processed, err = store.IsProcessed(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestInMemoryIdempotencyStore_Expiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := newInMemoryIdempotencyStore(clock.Now, time.Minute)
	ctx := context.Background()

	_, _ = store.MarkProcessed(ctx, "short", 10*time.Second)
	_, _ = store.MarkProcessed(ctx, "long", time.Hour)
	clock.Advance(20 * time.Second)

	processed, _ := store.IsProcessed(ctx, "short")
	assert.False(t, processed)
	assert.Equal(t, 2, store.Len(), "no sweep before the interval")

	isNew, err := store.MarkProcessed(ctx, "short", 10*time.Second)
	require.NoError(t, err)
	assert.True(t, isNew, "expired key can be marked again")

	clock.Advance(time.Minute)
	_, _ = store.MarkProcessed(ctx, "other", time.Hour)
	assert.Equal(t, 2, store.Len(), "sweep drops the expired key")
}

func TestInMemoryIdempotencyStore_ConcurrentMark(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	ctx := context.Background()

	const workers = 50
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		fresh int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, err := store.MarkProcessed(ctx, "same", time.Hour); err == nil && ok {
				mu.Lock()
				fresh++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, fresh)
}

func TestInMemoryIdempotencyStore_Close(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	_, _ = store.MarkProcessed(context.Background(), "k", time.Hour)

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
	assert.Zero(t, store.Len())
}
