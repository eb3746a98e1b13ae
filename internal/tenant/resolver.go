package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lattice-db/tenantpool/internal/secret"
)

// Decryptor is the external decryption capability this core consumes — see
// pkg/crypto.Encryptor.DecryptHex. It never appears in error messages this
// package returns.
type Decryptor interface {
	DecryptHex(ciphertextHex string) (string, error)
}

// RecordCache is an optional L2 cache in front of the control-plane lookup.
// It stores Record — including the still-encrypted password blob — never a
// decrypted Credentials value. See pkg/tenantcache.Store.
type RecordCache interface {
	Get(ctx context.Context, id ID) (*Record, bool, error)
	Set(ctx context.Context, rec Record) error
}

// CredentialResolver looks up a tenant's control-plane row and decrypts its
// stored password.
type CredentialResolver struct {
	pool      ControlPlaneQuerier
	decryptor Decryptor
	cache     RecordCache
}

// ControlPlaneQuerier is the subset of *pgxpool.Pool the resolver needs
// against the control database's tenants table.
type ControlPlaneQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewCredentialResolver creates a CredentialResolver reading from the
// control-plane pool and decrypting with decryptor.
func NewCredentialResolver(pool ControlPlaneQuerier, decryptor Decryptor) *CredentialResolver {
	return &CredentialResolver{pool: pool, decryptor: decryptor}
}

// WithRecordCache attaches an L2 record cache to r, returning r for
// chaining. A cache miss or cache error falls back silently to the
// control-plane lookup — the cache is strictly an optimization, never a
// source of truth.
func (r *CredentialResolver) WithRecordCache(cache RecordCache) *CredentialResolver {
	r.cache = cache
	return r
}

// Resolve looks up id in the control database and returns its decrypted
// credentials. Errors never include key material, ciphertext, or partial
// plaintext.
func (r *CredentialResolver) Resolve(ctx context.Context, id ID) (Credentials, error) {
	rec, err := r.lookupRecord(ctx, id)
	if err != nil {
		return Credentials{}, err
	}

	if rec.DBPasswordEncrypted == "" {
		return Credentials{}, ErrCredentialsMissing
	}

	plaintext, err := r.decryptor.DecryptHex(rec.DBPasswordEncrypted)
	if err != nil {
		return Credentials{}, ErrCredentialDecryptionFailed
	}

	return Credentials{
		DBUser:     rec.DBUser,
		DBPassword: secret.New(plaintext),
	}, nil
}

func (r *CredentialResolver) lookupRecord(ctx context.Context, id ID) (Record, error) {
	if r.cache != nil {
		if rec, hit, cacheErr := r.cache.Get(ctx, id); cacheErr == nil && hit {
			return *rec, nil
		}
	}

	var rec Record
	rec.ID = id

	err := r.pool.QueryRow(ctx,
		`SELECT db_user, db_password_encrypted FROM tenants WHERE id = $1`,
		id,
	).Scan(&rec.DBUser, &rec.DBPasswordEncrypted)

	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("tenant: control-plane lookup failed: %w", err)
	}

	if r.cache != nil {
		_ = r.cache.Set(ctx, rec)
	}

	return rec, nil
}
