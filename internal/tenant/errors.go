package tenant

import "errors"

var (
	// ErrHeaderMissing is returned by ExtractID when the x-tenant-id header
	// is absent.
	ErrHeaderMissing = errors.New("tenant: x-tenant-id header missing")

	// ErrHeaderInvalid is returned when the header value is present but not
	// valid UTF-8.
	ErrHeaderInvalid = errors.New("tenant: x-tenant-id header is not valid UTF-8")

	// ErrIDMalformed is returned when the header value is present and UTF-8
	// but does not parse as a UUID.
	ErrIDMalformed = errors.New("tenant: x-tenant-id header is not a valid UUID")

	// ErrNotFound is returned when no tenant row exists for the given ID.
	ErrNotFound = errors.New("tenant: not found")

	// ErrCredentialsMissing is returned when the tenant row has no encrypted
	// password set.
	ErrCredentialsMissing = errors.New("tenant: credentials missing")

	// ErrCredentialDecryptionFailed is returned when the decryption
	// capability rejects the stored ciphertext. It never wraps the
	// underlying decryption error, which could otherwise leak key or
	// ciphertext material through error chains.
	ErrCredentialDecryptionFailed = errors.New("tenant: credential decryption failed")

	// ErrPoolConstructionFailed is returned when the control database is
	// reachable but the tenant's own database is not.
	ErrPoolConstructionFailed = errors.New("tenant: pool construction failed")
)
