// Package apierr classifies the sentinel errors raised by internal/tenant and
// internal/query into HTTP statuses and a stable wire error code, the way
// internal/handler/response.go classifies domain errors.
package apierr

import (
	"errors"
	"log"
	"net/http"

	"github.com/lattice-db/tenantpool/internal/query"
	"github.com/lattice-db/tenantpool/internal/tenant"
)

// Classified is a (status, code) pair for an error's HTTP-facing rendering.
type Classified struct {
	Status int
	Code   string
}

// Classify maps err to the HTTP status and stable code it should be
// reported under. Unrecognized errors classify as 500/INTERNAL_ERROR and
// are logged — mirroring the teacher's HandleError default branch — since
// a caller must never leak an unclassified internal error's message.
func Classify(err error) Classified {
	switch {
	case errors.Is(err, tenant.ErrHeaderMissing),
		errors.Is(err, tenant.ErrHeaderInvalid),
		errors.Is(err, tenant.ErrIDMalformed),
		errors.Is(err, query.ErrUnsafeSortColumn):
		return Classified{http.StatusBadRequest, "VALIDATION_ERROR"}

	case errors.Is(err, tenant.ErrNotFound):
		return Classified{http.StatusNotFound, "NOT_FOUND"}

	case errors.Is(err, tenant.ErrCredentialsMissing),
		errors.Is(err, tenant.ErrCredentialDecryptionFailed),
		errors.Is(err, tenant.ErrPoolConstructionFailed),
		errors.Is(err, query.ErrQueryExecutionFailed):
		return Classified{http.StatusInternalServerError, "INTERNAL_ERROR"}

	default:
		log.Printf("apierr: unclassified error: %v", err)
		return Classified{http.StatusInternalServerError, "INTERNAL_ERROR"}
	}
}

// HTTPStatus is a convenience wrapper over Classify for callers that only
// need the status code.
func HTTPStatus(err error) int {
	return Classify(err).Status
}
