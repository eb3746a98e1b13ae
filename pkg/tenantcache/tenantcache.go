// Package tenantcache is an optional Redis-backed L2 cache sitting in front
// of the tenant credentials resolver's control-plane lookup. It caches
// tenant.Record — db_user and the still-encrypted password blob — never a
// decrypted password, mirroring the rate limiter's use of go-redis for
// short-lived, non-authoritative state.
package tenantcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lattice-db/tenantpool/internal/tenant"
)

const keyPrefix = "tenant:record:"

// Store is a Redis-backed tenant.RecordCache. The zero value is not usable;
// construct with NewStore.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a Store reading/writing through client with entries
// expiring after ttl.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Get returns the cached record for id, if present. A Redis miss is
// reported as (nil, false, nil), not an error — callers fall back to the
// control database on either a miss or an error.
func (s *Store) Get(ctx context.Context, id tenant.ID) (*tenant.Record, bool, error) {
	raw, err := s.client.Get(ctx, key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("tenantcache: get failed: %w", err)
	}

	var rec tenant.Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, false, fmt.Errorf("tenantcache: decode failed: %w", err)
	}
	return &rec, true, nil
}

// Set caches rec under its ID with the store's TTL.
func (s *Store) Set(ctx context.Context, rec tenant.Record) error {
	encoded, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("tenantcache: encode failed: %w", err)
	}
	if err := s.client.Set(ctx, key(rec.ID), encoded, s.ttl).Err(); err != nil {
		return fmt.Errorf("tenantcache: set failed: %w", err)
	}
	return nil
}

// Invalidate removes id's cached record, used when a tenant's credentials
// are rotated and the cache must not serve the stale ciphertext.
func (s *Store) Invalidate(ctx context.Context, id tenant.ID) error {
	if err := s.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("tenantcache: invalidate failed: %w", err)
	}
	return nil
}

func key(id tenant.ID) string {
	return keyPrefix + id.String()
}
