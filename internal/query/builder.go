package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lattice-db/tenantpool/internal/dialect"
	"github.com/lattice-db/tenantpool/internal/ratelog"
	"github.com/lattice-db/tenantpool/internal/sqlsafe"
)

type rawCondition struct {
	condition string
	args      []any
}

// WhereBuilder assembles WHERE-clause fragments and their bound arguments
// from a Params[T], an allow-list, and a dialect. The zero value is usable;
// attach raw escape-hatch conditions with Raw before calling Build.
//
// Build is a pure function of (allowList, dialect, params) plus whatever
// was attached via Raw — calling it twice with the same inputs produces
// identical conditions and args.
type WhereBuilder[T any] struct {
	raw []rawCondition
}

// Raw attaches a caller-trusted condition string with its pre-bound
// arguments. It is an escape hatch for expressions outside the declarative
// model (search/filters/date-range); the caller is responsible for SQL
// injection safety of condition. Placeholders inside condition must use the
// dialect's own positional syntax and account for the argument position at
// which they'll be bound — callers needing this should coordinate with
// Build's output rather than guessing positions.
func (b *WhereBuilder[T]) Raw(condition string, args ...any) *WhereBuilder[T] {
	b.raw = append(b.raw, rawCondition{condition: condition, args: args})
	return b
}

// Build produces WHERE-clause condition fragments and their bound
// arguments for params, restricted to columns present in both allowList and
// the identifier safety filter. Conditions are emitted in a fixed order —
// search, filters (sorted by column name), date range, then any attached
// raw conditions — so repeated calls on identical inputs are idempotent.
func (b *WhereBuilder[T]) Build(allowList []string, d dialect.Dialect, p Params[T]) (conditions []string, args []any) {
	allowed := make(map[string]struct{}, len(allowList))
	for _, c := range allowList {
		allowed[c] = struct{}{}
	}
	isSafe := func(col string) bool {
		_, inAllowList := allowed[col]
		return inAllowList && sqlsafe.Safe(col)
	}

	conditions = make([]string, 0, 4)
	args = make([]any, 0, 4)

	// Search: one argument, regardless of how many columns match.
	if p.Search.Needle != "" {
		var matched []string
		for _, col := range p.Search.Columns {
			if isSafe(col) {
				matched = append(matched, col)
			}
		}
		if len(matched) > 0 {
			pos := len(args) + 1
			placeholder := d.Placeholder(pos)
			clauses := make([]string, len(matched))
			for i, col := range matched {
				clauses[i] = fmt.Sprintf("LOWER(%s) LIKE LOWER(%s)", d.Quote(col), placeholder)
			}
			conditions = append(conditions, "("+strings.Join(clauses, " OR ")+")")
			args = append(args, "%"+p.Search.Needle+"%")
		}
	}

	// Filters: sorted by key so Build is deterministic across calls despite
	// Params.Filters being a Go map.
	filterKeys := make([]string, 0, len(p.Filters))
	for k := range p.Filters {
		filterKeys = append(filterKeys, k)
	}
	sort.Strings(filterKeys)
	for _, col := range filterKeys {
		value := p.Filters[col]
		if !isSafe(col) {
			ratelog.DroppedColumn(col, "filter column not in allow-list or unsafe")
			continue
		}
		pos := len(args) + 1
		conditions = append(conditions, fmt.Sprintf("%s = %s%s", d.Quote(col), d.Placeholder(pos), d.TypeCast(value)))
		args = append(args, value)
	}

	// Date range.
	if p.DateRange.Column != "" {
		if !isSafe(p.DateRange.Column) {
			ratelog.DroppedColumn(p.DateRange.Column, "date range column not in allow-list or unsafe")
		} else {
			qcol := d.Quote(p.DateRange.Column)
			if p.DateRange.After != nil {
				pos := len(args) + 1
				conditions = append(conditions, fmt.Sprintf("%s >= %s", qcol, d.Placeholder(pos)))
				args = append(args, *p.DateRange.After)
			}
			if p.DateRange.Before != nil {
				pos := len(args) + 1
				conditions = append(conditions, fmt.Sprintf("%s <= %s", qcol, d.Placeholder(pos)))
				args = append(args, *p.DateRange.Before)
			}
		}
	}

	for _, rc := range b.raw {
		conditions = append(conditions, rc.condition)
		args = append(args, rc.args...)
	}

	return conditions, args
}
