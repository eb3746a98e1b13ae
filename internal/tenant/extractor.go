package tenant

import (
	"net/http"
	"unicode/utf8"

	"github.com/google/uuid"
)

// HeaderName is the request header carrying the tenant identifier.
const HeaderName = "x-tenant-id"

// ExtractID reads HeaderName from headers and parses it as a UUID.
func ExtractID(headers http.Header) (ID, error) {
	raw := headers.Get(HeaderName)
	if raw == "" {
		return uuid.Nil, ErrHeaderMissing
	}
	if !utf8.ValidString(raw) {
		return uuid.Nil, ErrHeaderInvalid
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrIDMalformed
	}
	return id, nil
}
