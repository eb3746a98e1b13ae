package tenant

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

// S6: cache has {A: now-100s, B: now-10s, C: now-100s}, threshold=30s ⇒
// after sweep cache = {B}.
func TestReaper_Sweep_EvictsOnlyExpiredEntries(t *testing.T) {
	cache := NewCache(nil, nil)
	now := time.Now()

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	cache.entries[a] = &poolEntry{pool: &pgxpool.Pool{}, lastAccessed: now.Add(-100 * time.Second)}
	cache.entries[b] = &poolEntry{pool: &pgxpool.Pool{}, lastAccessed: now.Add(-10 * time.Second)}
	cache.entries[c] = &poolEntry{pool: &pgxpool.Pool{}, lastAccessed: now.Add(-100 * time.Second)}

	reaper := NewReaper(cache, time.Minute, 30*time.Second)
	reaper.sweep()

	assert.Equal(t, 1, cache.Len())
	_, stillThere := cache.entries[b]
	assert.True(t, stillThere)
}

// Property 7: after a sweep at time T, the cache contains exactly those
// tenants with last_accessed > T - idle_threshold.
func TestReaper_Sweep_BoundaryIsInclusiveEviction(t *testing.T) {
	cache := NewCache(nil, nil)
	now := time.Now()
	id := uuid.New()

	// age == idle_threshold exactly: spec retains iff age < threshold, so
	// age >= threshold must be evicted.
	cache.entries[id] = &poolEntry{pool: &pgxpool.Pool{}, lastAccessed: now.Add(-30 * time.Second)}

	reaper := NewReaper(cache, time.Minute, 30*time.Second)
	reaper.sweep()

	assert.Equal(t, 0, cache.Len())
}

func TestReaper_Run_StopsOnContextCancel(t *testing.T) {
	cache := NewCache(nil, nil)
	reaper := NewReaper(cache, time.Millisecond, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		reaper.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reaper.Run did not return after context cancellation")
	}
}
