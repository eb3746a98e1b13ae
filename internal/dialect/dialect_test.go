package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostgres_Quote(t *testing.T) {
	assert.Equal(t, `"created_at"`, Postgres.Quote("created_at"))
	assert.Equal(t, `"users"."created_at"`, Postgres.Quote("users.created_at"))
	assert.Equal(t, `"weird""name"`, Postgres.Quote(`weird"name`))
}

func TestPostgres_Placeholder(t *testing.T) {
	assert.Equal(t, "$1", Postgres.Placeholder(1))
	assert.Equal(t, "$12", Postgres.Placeholder(12))
}

func TestSQLite_Placeholder(t *testing.T) {
	assert.Equal(t, "?", SQLite.Placeholder(1))
	assert.Equal(t, "?", SQLite.Placeholder(9))
}

func TestSQLite_NeverCasts(t *testing.T) {
	for _, v := range []string{"true", "42", "3.14", "{}"} {
		assert.Equal(t, "", SQLite.TypeCast(v))
	}
}

func TestPostgres_TypeCast(t *testing.T) {
	cases := []struct {
		value string
		want  string
	}{
		{"true", "::boolean"},
		{"false", "::boolean"},
		{"TRUE", "::boolean"},
		{"42", "::bigint"},
		{"-7", "::bigint"},
		{"3.14", "::double precision"},
		{"550e8400-e29b-41d4-a716-446655440000", "::uuid"},
		{`{"a":1}`, "::jsonb"},
		{"[1,2,3]", "::jsonb"},
		{"2024-01-01T00:00:00Z", "::timestamp with time zone"},
		{"plain text", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Postgres.TypeCast(tc.value), "value %q", tc.value)
	}
}
