// Package sqlsafe rejects identifiers that should never be interpolated
// into dynamically-built SQL, even when they've already passed an
// allow-list check. It is the last line of defense before a column name
// from a request reaches query text.
package sqlsafe

import "strings"

// reservedTokens are matched as case-insensitive substrings so both
// schema-qualified (information_schema.tables) and bare (oid, xmin) forms
// are blocked.
var reservedTokens = []string{
	"pg_",
	"information_schema.",
	"oid",
	"tableoid",
	"xmin",
	"xmax",
	"cmin",
	"cmax",
	"ctid",
	"pg_catalog",
	"pg_toast",
	"pg_internal",
	"pg_temp",
}

// Safe reports whether identifier is a lexically well-formed, non-reserved
// SQL identifier. It does not check allow-list membership — that's the
// caller's job (see query.Schema).
func Safe(identifier string) bool {
	if identifier == "" {
		return false
	}
	if strings.Contains(identifier, "..") {
		return false
	}
	if strings.HasPrefix(identifier, ".") || strings.HasSuffix(identifier, ".") {
		return false
	}
	for _, r := range identifier {
		if !isAllowedRune(r) {
			return false
		}
	}

	lower := strings.ToLower(identifier)
	for _, token := range reservedTokens {
		if strings.Contains(lower, token) {
			return false
		}
	}

	return true
}

func isAllowedRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_' || r == '.':
		return true
	default:
		return false
	}
}
