package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-db/tenantpool/internal/dialect"
)

var userAllowList = []string{"id", "first_name", "last_name", "confirmed", "created_at"}

// S2: search across two allow-listed columns binds exactly one argument.
func TestWhereBuilder_Search(t *testing.T) {
	p := NewParams[testUser]().WithSearch("Ada", "first_name", "last_name")

	var b WhereBuilder[testUser]
	conditions, args := b.Build(userAllowList, dialect.Postgres, p)

	require.Len(t, conditions, 1)
	assert.Equal(t, `(LOWER("first_name") LIKE LOWER($1) OR LOWER("last_name") LIKE LOWER($1))`, conditions[0])
	assert.Equal(t, []any{"%Ada%"}, args)
}

// S3: filter with a boolean-shaped value gets a Postgres cast suffix.
func TestWhereBuilder_FilterWithCast(t *testing.T) {
	p := NewParams[testUser]().WithFilter("confirmed", "true")

	var b WhereBuilder[testUser]
	conditions, args := b.Build(userAllowList, dialect.Postgres, p)

	require.Len(t, conditions, 1)
	assert.Equal(t, `"confirmed" = $1::boolean`, conditions[0])
	assert.Equal(t, []any{"true"}, args)
}

// S4: date range with only "after" present.
func TestWhereBuilder_DateRangeAfterOnly(t *testing.T) {
	after := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewParams[testUser]().WithDateRange("created_at", &after, nil)

	var b WhereBuilder[testUser]
	conditions, args := b.Build(userAllowList, dialect.Postgres, p)

	require.Len(t, conditions, 1)
	assert.Equal(t, `"created_at" >= $1`, conditions[0])
	assert.Equal(t, []any{after}, args)
}

// S5: an unsafe/unlisted filter column is dropped, no fragment or argument.
func TestWhereBuilder_UnsafeFilterDropped(t *testing.T) {
	p := NewParams[testUser]().WithFilter("pg_user", "x")

	var b WhereBuilder[testUser]
	conditions, args := b.Build(userAllowList, dialect.Postgres, p)

	assert.Empty(t, conditions)
	assert.Empty(t, args)
}

func TestWhereBuilder_FilterNotInAllowListDropped(t *testing.T) {
	p := NewParams[testUser]().WithFilter("secret_internal_column", "x")

	var b WhereBuilder[testUser]
	conditions, args := b.Build(userAllowList, dialect.Postgres, p)

	assert.Empty(t, conditions)
	assert.Empty(t, args)
}

// Property 4: idempotence of Build given identical inputs.
func TestWhereBuilder_Idempotent(t *testing.T) {
	after := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewParams[testUser]().
		WithSearch("Ada", "first_name", "last_name").
		WithFilter("confirmed", "true").
		WithFilter("first_name", "Ada").
		WithDateRange("created_at", &after, nil)

	var b1, b2 WhereBuilder[testUser]
	c1, a1 := b1.Build(userAllowList, dialect.Postgres, p)
	c2, a2 := b2.Build(userAllowList, dialect.Postgres, p)

	assert.Equal(t, c1, c2)
	assert.Equal(t, a1, a2)
}

// Property 2: placeholder/argument parity.
func TestWhereBuilder_PlaceholderArgParity(t *testing.T) {
	after := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewParams[testUser]().
		WithSearch("Ada", "first_name", "last_name").
		WithFilter("confirmed", "true").
		WithDateRange("created_at", &after, nil)

	var b WhereBuilder[testUser]
	_, args := b.Build(userAllowList, dialect.Postgres, p)

	// search ($1) + confirmed filter ($2) + date after ($3)
	assert.Len(t, args, 3)
}

func TestWhereBuilder_RawEscapeHatch(t *testing.T) {
	var b WhereBuilder[testUser]
	b.Raw(`"status" = $1`, "archived")

	conditions, args := b.Build(userAllowList, dialect.Postgres, NewParams[testUser]())
	assert.Equal(t, []string{`"status" = $1`}, conditions)
	assert.Equal(t, []any{"archived"}, args)
}

func TestWhereBuilder_SQLiteNeverCasts(t *testing.T) {
	p := NewParams[testUser]().WithFilter("confirmed", "true")

	var b WhereBuilder[testUser]
	conditions, _ := b.Build(userAllowList, dialect.SQLite, p)

	require.Len(t, conditions, 1)
	assert.Equal(t, `"confirmed" = ?`, conditions[0])
}
