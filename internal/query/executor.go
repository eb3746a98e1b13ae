package query

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/lattice-db/tenantpool/internal/dialect"
	"github.com/lattice-db/tenantpool/internal/sqlsafe"
)

var tracer = otel.Tracer("tenantpool/query")

// Querier is the subset of *pgxpool.Pool that Fetch needs. *pgxpool.Pool
// and pgxmock.PgxPoolIface both satisfy it, mirroring the production/mock
// seam the teacher's postgres repositories use for testability.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Page is the paginated response returned by Fetch: the records window
// plus enough bookkeeping for the client to render pagination controls.
// It serializes as a flat JSON object with pagination fields hoisted to
// the top level (see the `json` tags).
type Page[T any] struct {
	Records    []T `json:"records"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
}

// Fetch composes a CTE around baseSQL, applies params' search/filter/date-range
// conditions (allow-listed against T's schema) and sort/pagination, then
// executes a COUNT and a windowed SELECT against pool. The WhereBuilder is
// invoked twice — once per statement — since each invocation must produce
// its own independent argument slice; both invocations are deterministic
// given identical inputs (see WhereBuilder.Build).
//
// The sort column is validated against T's allow-list and the identifier
// safety filter before use; an unsafe column yields ErrUnsafeSortColumn
// instead of unsafe SQL.
func Fetch[T any](ctx context.Context, pool Querier, baseSQL string, p Params[T], d dialect.Dialect) (*Page[T], error) {
	ctx, span := tracer.Start(ctx, "query.fetch")
	defer span.End()

	allowList := FieldNames[T]()
	allowed := make(map[string]struct{}, len(allowList))
	for _, c := range allowList {
		allowed[c] = struct{}{}
	}

	sortColumn := p.Sort.Column
	if sortColumn == "" {
		sortColumn = DefaultSortColumn
	}
	if _, ok := allowed[sortColumn]; !ok || !sqlsafe.Safe(sortColumn) {
		return nil, fmt.Errorf("%w: %q", ErrUnsafeSortColumn, sortColumn)
	}

	cte := "WITH base_query AS (" + baseSQL + ")"

	var countBuilder, mainBuilder WhereBuilder[T]
	countConditions, countArgs := countBuilder.Build(allowList, d, p)
	mainConditions, mainArgs := mainBuilder.Build(allowList, d, p)

	countWhereClause := ""
	if len(countConditions) > 0 {
		countWhereClause = " WHERE " + joinAnd(countConditions)
	}
	whereClause := ""
	if len(mainConditions) > 0 {
		whereClause = " WHERE " + joinAnd(mainConditions)
	}

	direction := "DESC"
	if p.Sort.Direction == Asc {
		direction = "ASC"
	}

	pageSize := p.Pagination.PageSize
	if pageSize <= 0 {
		pageSize = MinPageSize
	}
	page := p.Pagination.Page
	if page < DefaultPage {
		page = DefaultPage
	}
	offset := (page - 1) * pageSize

	countSQL := cte + " SELECT COUNT(*) FROM base_query" + countWhereClause
	mainSQL := fmt.Sprintf("%s SELECT * FROM base_query%s ORDER BY %s %s LIMIT %d OFFSET %d",
		cte, whereClause, d.Quote(sortColumn), direction, pageSize, offset)

	var total int64
	if err := pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		err = fmt.Errorf("%w: count query: %v", ErrQueryExecutionFailed, err)
		span.RecordError(err)
		return nil, err
	}

	rows, err := pool.Query(ctx, mainSQL, mainArgs...)
	if err != nil {
		err = fmt.Errorf("%w: select query: %v", ErrQueryExecutionFailed, err)
		span.RecordError(err)
		return nil, err
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		err = fmt.Errorf("%w: scanning rows: %v", ErrQueryExecutionFailed, err)
		span.RecordError(err)
		return nil, err
	}

	var totalPages int64
	if total > 0 {
		totalPages = (total + int64(pageSize) - 1) / int64(pageSize)
	}

	return &Page[T]{
		Records:    records,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func joinAnd(conditions []string) string {
	out := conditions[0]
	for _, c := range conditions[1:] {
		out += " AND " + c
	}
	return out
}
