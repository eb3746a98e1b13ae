package dialect

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// inferPostgresCast guesses a Postgres cast suffix from the surface form of
// a bound value. Order matters: booleans and integers are checked before
// float (an integer literal also parses as a float) and UUID/JSON/timestamp
// are checked before falling through to "no cast".
func inferPostgresCast(value string) string {
	switch strings.ToLower(value) {
	case "true", "false":
		return "::boolean"
	}

	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		return "::bigint"
	}

	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return "::double precision"
	}

	if _, err := uuid.Parse(value); err == nil {
		return "::uuid"
	}

	if strings.HasPrefix(value, "{") || strings.HasPrefix(value, "[") {
		return "::jsonb"
	}

	if _, err := time.Parse(time.RFC3339, value); err == nil {
		return "::timestamp with time zone"
	}

	return ""
}
