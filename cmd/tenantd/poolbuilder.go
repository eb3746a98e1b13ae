package main

import (
	"context"
	"net/url"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lattice-db/tenantpool/internal/tenant"
	"github.com/lattice-db/tenantpool/pkg/database"
)

// tenantDBPoolBuilder adapts pkg/database.NewTenantPool to the
// tenant.PoolBuilder contract the cache invokes on a first-time Acquire.
// Every tenant lives in the same physical Postgres cluster and database
// name; only the role (db_user, from the resolver's credentials) differs —
// SET ROLE, applied as an after-connect hook inside NewTenantPool, is what
// enforces row-level security per tenant, not a distinct DSN per tenant.
type tenantDBPoolBuilder struct {
	host, port, dbName, sslMode string
}

func newTenantDBPoolBuilder(host, port, dbName, sslMode string) *tenantDBPoolBuilder {
	return &tenantDBPoolBuilder{host: host, port: port, dbName: dbName, sslMode: sslMode}
}

func (b *tenantDBPoolBuilder) Build(ctx context.Context, creds tenant.Credentials) (*pgxpool.Pool, error) {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(creds.DBUser, creds.DBPassword.Expose()),
		Host:     b.host + ":" + b.port,
		Path:     "/" + b.dbName,
		RawQuery: "sslmode=" + b.sslMode,
	}

	return database.NewTenantPool(ctx, database.DefaultConfig(dsn.String()), creds.DBUser)
}
