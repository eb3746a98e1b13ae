package query

import "errors"

// ErrUnsafeSortColumn is returned by Fetch when the requested sort column
// fails the allow-list or identifier safety check. The executor refuses to
// emit unsafe SQL rather than fall back to a default.
var ErrUnsafeSortColumn = errors.New("query: sort column rejected by allow-list or safety filter")

// ErrQueryExecutionFailed wraps a driver-level error from the COUNT or SELECT
// statement. The driver error's text is appended to the message, but the
// driver error itself is not part of the errors.Is/errors.As chain; bound
// argument values are never added to the message by this package.
var ErrQueryExecutionFailed = errors.New("query: execution failed")
