// Package ratelog emits structured warning-level log entries for values the
// query builder silently drops — unknown filter columns, unsafe sort/date
// columns — so operators can see misuse without it reaching SQL text.
package ratelog

import "log/slog"

// DroppedColumn logs that column was rejected for reason and never reached
// the synthesized SQL.
func DroppedColumn(column, reason string) {
	slog.Warn("dropped unsafe or unknown column", "column", column, "reason", reason)
}
