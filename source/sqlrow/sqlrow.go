package sqlrow

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/kbukum/lazykit/errors"
	"github.com/kbukum/lazykit/lazy"
	"github.com/kbukum/lazykit/logger"
	"github.com/kbukum/lazykit/maybe"
	"github.com/kbukum/lazykit/task"
	"github.com/kbukum/lazykit/util"
)

const sourceName = "sql"

// Querier runs single-row queries. It is satisfied by *sql.DB, *sql.Tx
// and *sql.Conn.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Scanner converts a row into a value.
type Scanner[T any] func(*sql.Row) (T, error)

// QueryRowTask starts query on a task. sql.ErrNoRows completes the task
// with None; any other failure completes it with None and a SOURCE_FAILED
// error.
func QueryRowTask[T any](ctx context.Context, db Querier, scan Scanner[T], query string, args ...any) *task.Task[T] {
	switch {
	case maybe.IsNil(db):
		return failed[T](errors.NullArgument("db"))
	case scan == nil:
		return failed[T](errors.NullArgument("scan"))
	case query == "":
		return failed[T](errors.InvalidArgument("query", "must not be empty"))
	}
	return task.Go(ctx, func(ctx context.Context) (maybe.Maybe[T], error) {
		v, err := scan(db.QueryRowContext(ctx, query, args...))
		if stderrors.Is(err, sql.ErrNoRows) {
			return maybe.None[T](), nil
		}
		if err != nil {
			logger.Get("sqlrow").WithContext(ctx).Warn("query failed", logger.Fields(
				logger.FieldSource, sourceName,
				logger.FieldError, err.Error(),
			))
			return maybe.None[T](), errors.SourceFailed(sourceName, err)
		}
		return maybe.Of(v), nil
	})
}

// QueryRow returns a pipeline over the single row selected by query.
func QueryRow[T any](ctx context.Context, db Querier, scan Scanner[T], query string, args ...any) *lazy.Maybe[T] {
	return QueryRowTask(ctx, db, scan, query, args...).Lazy()
}

// Scalar returns a pipeline over the single column of the single row
// selected by query. A NULL column is None.
func Scalar[T any](ctx context.Context, db Querier, query string, args ...any) *lazy.Maybe[T] {
	scan := Scanner[*T](func(row *sql.Row) (*T, error) {
		var v sql.Null[T]
		if err := row.Scan(&v); err != nil {
			return nil, err
		}
		if !v.Valid {
			return nil, nil
		}
		return &v.V, nil
	})
	// A NULL scans to a nil pointer, which is None.
	out, _ := lazy.Map(QueryRow(ctx, db, scan, query, args...), util.Deref[T])
	return out
}

func failed[T any](err error) *task.Task[T] {
	t := task.New[T]()
	_ = t.Fail(err)
	return t
}
