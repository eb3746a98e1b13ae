// Package dialect renders dialect-specific SQL fragments: quoted
// identifiers, positional placeholders, and type-cast suffixes. It is the
// only place that knows how Postgres and SQLite differ syntactically.
package dialect

import (
	"strconv"
	"strings"
)

// Dialect renders the syntactic differences between SQL backends that the
// query builder needs: identifier quoting, positional placeholders, and
// value type-casts.
type Dialect interface {
	// Quote wraps identifier (which may be schema-qualified, "a.b") in the
	// dialect's identifier-quoting syntax.
	Quote(identifier string) string

	// Placeholder renders the positional bind marker for the given 1-based
	// position — the position of the *next* argument to be bound.
	Placeholder(position int) string

	// TypeCast returns a dialect-specific suffix (e.g. "::boolean") inferred
	// from the surface form of value, or "" if no cast applies.
	TypeCast(value string) string
}

func quoteParts(identifier string) string {
	parts := strings.Split(identifier, ".")
	quoted := make([]string, len(parts))
	for i, part := range parts {
		quoted[i] = `"` + strings.ReplaceAll(part, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ".")
}

type postgresDialect struct{}

// Postgres renders "$N" placeholders, double-quoted identifiers, and
// infers a best-effort type-cast suffix from the literal's surface form.
var Postgres Dialect = postgresDialect{}

func (postgresDialect) Quote(identifier string) string { return quoteParts(identifier) }

func (postgresDialect) Placeholder(position int) string {
	return "$" + strconv.Itoa(position)
}

func (postgresDialect) TypeCast(value string) string {
	return inferPostgresCast(value)
}

type sqliteDialect struct{}

// SQLite renders "?" placeholders and never casts — SQLite is dynamically
// typed and a cast suffix would be meaningless (and invalid) syntax there.
var SQLite Dialect = sqliteDialect{}

func (sqliteDialect) Quote(identifier string) string { return quoteParts(identifier) }

func (sqliteDialect) Placeholder(int) string { return "?" }

func (sqliteDialect) TypeCast(string) string { return "" }
