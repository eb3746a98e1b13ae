package main

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lattice-db/tenantpool/internal/tenant"
)

type contextKey string

const poolContextKey contextKey = "tenantPool"

// tenantResolverMiddleware extracts the x-tenant-id header (C10), acquires
// that tenant's pool from the cache (C8, resolving and building it on first
// use via C7), and stashes the pool in the request context for downstream
// handlers. Any failure short-circuits with the classified error envelope —
// handlers never see an unresolved tenant.
func tenantResolverMiddleware(cache *tenant.Cache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := tenant.ExtractID(r.Header)
			if err != nil {
				writeError(w, err)
				return
			}

			pool, err := cache.Acquire(r.Context(), id)
			if err != nil {
				writeError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), poolContextKey, pool)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// poolFromContext returns the tenant pool stashed by tenantResolverMiddleware.
// It panics if called outside that middleware's scope — a programmer error,
// not a request-time failure.
func poolFromContext(ctx context.Context) *pgxpool.Pool {
	return ctx.Value(poolContextKey).(*pgxpool.Pool)
}
