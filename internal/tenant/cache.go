package tenant

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/singleflight"

	"github.com/lattice-db/tenantpool/pkg/telemetry"
)

var tracer = otel.Tracer("tenantpool/tenant")

// PoolBuilder builds a dedicated connection pool for a tenant's resolved
// credentials. Building may take seconds (DNS, TLS handshake, initial
// connect) — implementations must treat ctx as the install's deadline.
type PoolBuilder interface {
	Build(ctx context.Context, creds Credentials) (*pgxpool.Pool, error)
}

// Cache is the concurrent tenant→pool cache (C8). The zero value is not
// usable; construct with NewCache. Acquire is safe for concurrent use by
// any number of goroutines.
type Cache struct {
	mu       sync.Mutex
	entries  map[ID]*poolEntry
	resolver *CredentialResolver
	builder  PoolBuilder

	// group collapses concurrent first-time Acquire calls for the same
	// tenant into a single credentials-resolve + pool-build, so N
	// concurrent misses result in exactly one resolver invocation and one
	// pool construction (see the double-check rationale in Acquire).
	group singleflight.Group
}

// NewCache creates an empty Cache backed by resolver and builder.
func NewCache(resolver *CredentialResolver, builder PoolBuilder) *Cache {
	return &Cache{
		entries:  make(map[ID]*poolEntry),
		resolver: resolver,
		builder:  builder,
	}
}

// Acquire returns a shared pool handle for tenant id, creating one on first
// use. The returned pool is owned by the cache; callers must not close it.
//
// Hit path: the cache lock is held only for the read-modify-write of
// lastAccessed — no I/O happens while holding it.
//
// Miss path: the slow work (credential resolution, pool construction)
// happens outside the lock, coalesced per-tenant via singleflight. After
// the slow work completes, a second lock acquisition double-checks for a
// concurrent install; if one won the race, the just-built pool is closed
// and the existing handle is returned instead — this is what prevents two
// concurrent first-time requests from installing (and leaking) two pools.
func (c *Cache) Acquire(ctx context.Context, id ID) (*pgxpool.Pool, error) {
	if pool, ok := c.touch(id); ok {
		return pool, nil
	}

	result, err, _ := c.group.Do(id.String(), func() (any, error) {
		if pool, ok := c.touch(id); ok {
			return pool, nil
		}

		spanCtx, span := tracer.Start(ctx, "tenant.cache_install")
		defer span.End()

		creds, err := c.resolver.Resolve(spanCtx, id)
		if err != nil {
			telemetry.RecordError(spanCtx, err)
			return nil, err
		}

		pool, err := c.builder.Build(spanCtx, creds)
		if err != nil {
			telemetry.RecordError(spanCtx, err)
			return nil, fmt.Errorf("%w: %v", ErrPoolConstructionFailed, err)
		}

		c.mu.Lock()
		if existing, ok := c.entries[id]; ok {
			c.mu.Unlock()
			pool.Close()
			return existing.pool, nil
		}
		c.entries[id] = &poolEntry{pool: pool, lastAccessed: time.Now()}
		c.mu.Unlock()
		return pool, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*pgxpool.Pool), nil
}

// touch reports whether id has a live entry, bumping lastAccessed if so.
func (c *Cache) touch(id ID) (*pgxpool.Pool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	e.lastAccessed = time.Now()
	return e.pool, true
}

// Len reports the number of live entries. Intended for tests and metrics.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
