package query

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-db/tenantpool/internal/dialect"
)

type fetchUser struct {
	ID        string `db:"id" json:"id"`
	FirstName string `db:"first_name" json:"first_name"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

// S1: default params against a bare base SQL produce the documented CTE
// shape with no WHERE clause and the default sort/limit/offset.
func TestFetch_EmptyParams(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`WITH base_query AS \(SELECT \* FROM users\) SELECT COUNT\(\*\) FROM base_query`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(`WITH base_query AS \(SELECT \* FROM users\) SELECT \* FROM base_query ORDER BY "created_at" DESC LIMIT 10 OFFSET 0`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "first_name", "created_at"}))

	page, err := Fetch[fetchUser](context.Background(), mock, "SELECT * FROM users", NewParams[fetchUser](), dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)
	assert.Equal(t, 0, int(page.TotalPages))
	assert.Empty(t, page.Records)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetch_TotalPagesLaw(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM base_query`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(95)))
	mock.ExpectQuery(`SELECT \* FROM base_query`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "first_name", "created_at"}))

	p := NewParams[fetchUser]().WithPagination(1, 10)
	page, err := Fetch[fetchUser](context.Background(), mock, "SELECT * FROM users", p, dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, int64(10), page.TotalPages) // ceil(95/10)
}

func TestFetch_UnsafeSortColumnRejected(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	p := NewParams[fetchUser]().WithSort("pg_user", Desc)
	_, err = Fetch[fetchUser](context.Background(), mock, "SELECT * FROM users", p, dialect.Postgres)
	assert.ErrorIs(t, err, ErrUnsafeSortColumn)
}

func TestFetch_SortColumnNotInAllowListRejected(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	p := NewParams[fetchUser]().WithSort("not_a_real_column", Desc)
	_, err = Fetch[fetchUser](context.Background(), mock, "SELECT * FROM users", p, dialect.Postgres)
	assert.ErrorIs(t, err, ErrUnsafeSortColumn)
}

func TestFetch_QueryErrorWrapped(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM base_query`).WillReturnError(assert.AnError)

	_, err = Fetch[fetchUser](context.Background(), mock, "SELECT * FROM users", NewParams[fetchUser](), dialect.Postgres)
	assert.ErrorIs(t, err, ErrQueryExecutionFailed)
}
