package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testUser struct {
	ID        string `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Status    string `json:"status" db:"status"`
	CreatedAt string `json:"created_at" db:"created_at"`
}

func TestFromValues_Defaults(t *testing.T) {
	p := FromValues[testUser](url.Values{})

	assert.Equal(t, DefaultPage, p.Pagination.Page)
	assert.Equal(t, MinPageSize, p.Pagination.PageSize)
	assert.Equal(t, DefaultSortColumn, p.Sort.Column)
	assert.Equal(t, DefaultSortDir, p.Sort.Direction)
	assert.Empty(t, p.Search.Needle)
}

func TestFromValues_PageClamp(t *testing.T) {
	cases := []struct {
		page, pageSize string
		wantPage       int
		wantPageSize   int
	}{
		{"0", "0", DefaultPage, MinPageSize},
		{"-5", "5", 5, MinPageSize},
		{"3", "1000", 3, MaxPageSize},
		{"page=5", "page_size=7", 5, MinPageSize},
	}

	for _, tc := range cases {
		p := FromValues[testUser](url.Values{"page": {tc.page}, "page_size": {tc.pageSize}})
		assert.Equal(t, tc.wantPage, p.Pagination.Page, "page input %q", tc.page)
		assert.Equal(t, tc.wantPageSize, p.Pagination.PageSize, "page_size input %q", tc.pageSize)
	}
}

func TestFromValues_SearchNormalization(t *testing.T) {
	p := FromValues[testUser](url.Values{"search": {"  Ada   Lovelace!! "}})
	assert.Equal(t, "Ada Lovelace", p.Search.Needle)
}

func TestFromValues_SearchWhitespaceOnlyIsAbsent(t *testing.T) {
	p := FromValues[testUser](url.Values{"search": {"   "}})
	assert.Empty(t, p.Search.Needle)
}

func TestFromValues_SearchColumns(t *testing.T) {
	p := FromValues[testUser](url.Values{"search_columns": {"first_name, last_name ,, email"}})
	assert.Equal(t, []string{"first_name", "last_name", "email"}, p.Search.Columns)
}

func TestFromValues_SortDirection(t *testing.T) {
	p := FromValues[testUser](url.Values{"sort_direction": {"ascending"}})
	assert.Equal(t, Asc, p.Sort.Direction)
}

func TestFromValues_DateRange(t *testing.T) {
	p := FromValues[testUser](url.Values{
		"date_column": {"created_at"},
		"date_after":  {"2024-01-01T00:00:00Z"},
	})
	assert.Equal(t, "created_at", p.DateRange.Column)
	require := assert.New(t)
	require.NotNil(p.DateRange.After)
	require.Nil(p.DateRange.Before)
}

func TestFromValues_UnknownKeysBecomeFilters(t *testing.T) {
	p := FromValues[testUser](url.Values{"status": {"active"}})
	assert.Equal(t, "active", p.Filters["status"])
}

func TestParams_FluentBuilderClampsLikeFromValues(t *testing.T) {
	p := NewParams[testUser]().WithPagination(0, 1000)
	assert.Equal(t, DefaultPage, p.Pagination.Page)
	assert.Equal(t, MaxPageSize, p.Pagination.PageSize)
}

func TestParams_WithFilterRemovesOnEmptyValue(t *testing.T) {
	p := NewParams[testUser]().WithFilter("status", "active").WithFilter("status", "")
	_, ok := p.Filters["status"]
	assert.False(t, ok)
}
