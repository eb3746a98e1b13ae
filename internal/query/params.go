package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Tolerant-deserialization constants fixed by the data model (spec.md §3).
const (
	DefaultPage = 1
	MinPageSize = 10
	MaxPageSize = 50
	MaxFieldLen = 100

	DefaultSortColumn = "created_at"
	DefaultDateColumn = "created_at"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// DefaultSortDir is the direction applied when none is requested.
const DefaultSortDir = Desc

// Pagination is the clamped (page, page_size) pair.
type Pagination struct {
	Page     int
	PageSize int
}

// Sort names the column and direction to order results by. Column is
// validated against the allow-list and identifier safety filter at fetch
// time, not at construction time.
type Sort struct {
	Column    string
	Direction Direction
}

// Search holds a normalized search needle and the candidate columns to
// match it against.
type Search struct {
	Needle  string
	Columns []string
}

// DateRange restricts results to a column falling within [After, Before].
// Either bound may be nil.
type DateRange struct {
	Column string
	After  *time.Time
	Before *time.Time
}

// Params is the fully-parsed, immutable set of query parameters for record
// shape T. Construct it with FromValues (request query-string) or the
// fluent With* builder methods (programmatic callers); both paths apply the
// same clamping and normalization.
type Params[T any] struct {
	Pagination Pagination
	Sort       Sort
	Search     Search
	DateRange  DateRange
	Filters    map[string]string
}

// NewParams returns the documented defaults: page 1, page size
// MinPageSize, sort by DefaultSortColumn descending, no search, no date
// range, no filters.
func NewParams[T any]() Params[T] {
	return Params[T]{
		Pagination: Pagination{Page: DefaultPage, PageSize: MinPageSize},
		Sort:       Sort{Column: DefaultSortColumn, Direction: DefaultSortDir},
		Filters:    map[string]string{},
	}
}

// FromValues tolerantly parses request query-string values into Params.
// Every field degrades to its documented default rather than erroring:
// numeric fields keep only ASCII digits before parsing, the search string
// is normalized and length-capped, and any key not matching a recognized
// control key (page, page_size, sort_column, sort_direction, search,
// search_columns, date_column, date_after, date_before) is treated as a
// filter. Allow-list enforcement of filter/sort/date columns happens later,
// in WhereBuilder.Build and Fetch — not here.
func FromValues[T any](values url.Values) Params[T] {
	p := NewParams[T]()

	if v, ok := firstNonEmpty(values, "page"); ok {
		if n, ok := parseDigits(v); ok && n >= DefaultPage {
			p.Pagination.Page = n
		}
	}

	if v, ok := firstNonEmpty(values, "page_size"); ok {
		if n, ok := parseDigits(v); ok {
			p.Pagination.PageSize = clamp(n, MinPageSize, MaxPageSize)
		}
	}

	if v, ok := firstNonEmpty(values, "sort_column"); ok {
		p.Sort.Column = v
	}
	if v, ok := firstNonEmpty(values, "sort_direction"); ok {
		switch strings.ToLower(v) {
		case "ascending", "asc":
			p.Sort.Direction = Asc
		case "descending", "desc":
			p.Sort.Direction = Desc
		}
	}

	if v, ok := firstNonEmpty(values, "search"); ok {
		if needle, ok := normalizeSearch(v); ok {
			p.Search.Needle = needle
		}
	}
	if v, ok := firstNonEmpty(values, "search_columns"); ok {
		p.Search.Columns = splitTrimmed(v)
	}

	if v, ok := firstNonEmpty(values, "date_column"); ok {
		p.DateRange.Column = v
	} else if _, hasAfter := firstNonEmpty(values, "date_after"); hasAfter {
		p.DateRange.Column = DefaultDateColumn
	} else if _, hasBefore := firstNonEmpty(values, "date_before"); hasBefore {
		p.DateRange.Column = DefaultDateColumn
	}
	if v, ok := firstNonEmpty(values, "date_after"); ok {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			p.DateRange.After = &t
		}
	}
	if v, ok := firstNonEmpty(values, "date_before"); ok {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			p.DateRange.Before = &t
		}
	}

	controlKeys := map[string]struct{}{
		"page": {}, "page_size": {}, "sort_column": {}, "sort_direction": {},
		"search": {}, "search_columns": {}, "date_column": {}, "date_after": {}, "date_before": {},
	}
	for key := range values {
		if _, isControl := controlKeys[key]; isControl {
			continue
		}
		if v, ok := firstNonEmpty(values, key); ok {
			p.Filters[key] = v
		}
	}

	return p
}

func firstNonEmpty(values url.Values, key string) (string, bool) {
	vs, ok := values[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	v := strings.TrimSpace(vs[0])
	if v == "" {
		return "", false
	}
	return v, true
}

func parseDigits(s string) (int, bool) {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}
	return n, true
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// normalizeSearch strips control characters, retains alphanumerics, spaces
// and hyphens, collapses whitespace, and truncates to MaxFieldLen. Returns
// ok=false if the result is empty.
func normalizeSearch(s string) (string, bool) {
	var kept strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			kept.WriteRune(r)
		case r == ' ' || r == '-':
			kept.WriteRune(r)
		}
	}
	collapsed := strings.Join(strings.Fields(kept.String()), " ")
	if len(collapsed) > MaxFieldLen {
		collapsed = collapsed[:MaxFieldLen]
	}
	if collapsed == "" {
		return "", false
	}
	return collapsed, true
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// WithPagination sets page and page size, applying the same clamping as
// FromValues.
func (p Params[T]) WithPagination(page, pageSize int) Params[T] {
	if page < DefaultPage {
		page = DefaultPage
	}
	p.Pagination = Pagination{Page: page, PageSize: clamp(pageSize, MinPageSize, MaxPageSize)}
	return p
}

// WithSort sets the sort column and direction.
func (p Params[T]) WithSort(column string, direction Direction) Params[T] {
	p.Sort = Sort{Column: column, Direction: direction}
	return p
}

// WithSearch sets the search needle and candidate columns, applying the
// same normalization as FromValues.
func (p Params[T]) WithSearch(needle string, columns ...string) Params[T] {
	if n, ok := normalizeSearch(needle); ok {
		p.Search = Search{Needle: n, Columns: columns}
	} else {
		p.Search = Search{}
	}
	return p
}

// WithDateRange sets the date-range column and bounds. Either bound may be
// nil.
func (p Params[T]) WithDateRange(column string, after, before *time.Time) Params[T] {
	p.DateRange = DateRange{Column: column, After: after, Before: before}
	return p
}

// WithFilter sets a single filter value. An empty value removes the filter
// (mirrors "missing value ⇒ ignored").
func (p Params[T]) WithFilter(column, value string) Params[T] {
	filters := make(map[string]string, len(p.Filters)+1)
	for k, v := range p.Filters {
		filters[k] = v
	}
	if value == "" {
		delete(filters, column)
	} else {
		filters[column] = value
	}
	p.Filters = filters
	return p
}
