package tenant

import (
	"context"
	"log/slog"
	"time"
)

// Reaper periodically evicts Cache entries that have been idle for at least
// idleThreshold. It never panics out of its loop and never surfaces errors
// to callers — transient close errors are logged and swallowed.
type Reaper struct {
	cache         *Cache
	sweepInterval time.Duration
	idleThreshold time.Duration
}

// NewReaper creates a Reaper sweeping cache every sweepInterval, evicting
// entries idle past idleThreshold.
func NewReaper(cache *Cache, sweepInterval, idleThreshold time.Duration) *Reaper {
	return &Reaper{cache: cache, sweepInterval: sweepInterval, idleThreshold: idleThreshold}
}

// Run blocks, sweeping on a ticker until ctx is cancelled.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

// sweep evicts entries whose age is >= idleThreshold. Eviction decisions
// are made under the cache lock so a hit and a sweep can never disagree
// about whether an entry is live; the closed pools themselves are closed
// after the lock is released.
func (r *Reaper) sweep() {
	now := time.Now()

	r.cache.mu.Lock()
	var evicted []*poolEntry
	for id, e := range r.cache.entries {
		age := now.Sub(e.lastAccessed)
		if age >= r.idleThreshold {
			evicted = append(evicted, e)
			delete(r.cache.entries, id)
		}
	}
	r.cache.mu.Unlock()

	for _, e := range evicted {
		closePool(e.pool)
	}
}

// closePool closes p, recovering from any panic a misbehaving driver might
// raise during close so the reaper loop never dies.
func closePool(p interface{ Close() }) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("reaper: panic while closing tenant pool", "recovered", rec)
		}
	}()
	p.Close()
}
