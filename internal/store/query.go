package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// QueryTimeout bounds every repository call, connection acquisition included.
const QueryTimeout = 5 * time.Second

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type rowScanner interface {
	Scan(dest ...any) error
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, QueryTimeout)
}

// setIfPresent appends "column = $n" with its value only when value is set.
func setIfPresent(b sq.UpdateBuilder, column string, value *string) sq.UpdateBuilder {
	if value == nil {
		return b
	}
	return b.Set(column, *value)
}

func softDeleteQuery(table string) string {
	return "UPDATE " + table + " SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL"
}
