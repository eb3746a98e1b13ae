// Package tenant implements the tenant identity, credential, and
// connection-pool-cache core: extracting a tenant id from a request,
// resolving its decrypted database credentials, and maintaining one
// dedicated pgxpool.Pool per tenant with idle eviction.
package tenant

import (
	"time"

	"github.com/google/uuid"

	"github.com/lattice-db/tenantpool/internal/secret"
)

// ID identifies a tenant. It is a UUID, equality- and hash-comparable, so
// it can be used directly as a map key.
type ID = uuid.UUID

// Record is the control-plane row for a tenant. It is read-only to this
// core — callers own writes to the tenants table.
type Record struct {
	ID                  ID
	DBUser              string
	DBPasswordEncrypted string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Credentials is the decrypted, ready-to-use credential pair for opening a
// tenant database connection. DBPassword is redacted from logging and
// serialization; it should be dropped as soon as the pool is built.
type Credentials struct {
	DBUser     string
	DBPassword secret.String
}
