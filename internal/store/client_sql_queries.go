package store

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

const (
	itemsTable = "items"
	kvTable    = "kv"

	upsertItemsSuffix = "ON CONFLICT(collection, id) DO UPDATE SET payload = excluded.payload"
	upsertKVSuffix    = "ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at"

	// rows per multi-value INSERT, well below SQLite's variable limit
	upsertChunkSize = 200
	deleteChunkSize = 500
)

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

	fieldNamePattern      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)
	collectionNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// fieldExpr addresses a top-level or nested JSON field of the payload.
func fieldExpr(field string) string {
	if field == "id" {
		return "id"
	}
	return fmt.Sprintf("json_extract(payload, '$.%s')", field)
}

func createIndexQuery(field string) string {
	name := "idx_items_" + strings.ReplaceAll(field, ".", "_")
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (collection, %s)", name, itemsTable, fieldExpr(field))
}

func buildGetItemByIDQuery(collection, id string) (string, []any, error) {
	return psql.Select("payload").
		From(itemsTable).
		Where(sq.Eq{"collection": collection, "id": id}).
		ToSql()
}

func buildGetItemByIndexQuery(collection string, index int) (string, []any, error) {
	return psql.Select("payload").
		From(itemsTable).
		Where(sq.Eq{"collection": collection}).
		OrderBy("seq").
		Limit(1).
		Offset(uint64(index)).
		ToSql()
}

func buildGetItemsQuery(collection string, q ItemsQuery) (string, []any, error) {
	where := sq.Eq{"collection": collection}
	for field, value := range q.Where {
		where[fieldExpr(field)] = value
	}

	builder := psql.Select("payload").
		From(itemsTable).
		Where(where).
		OrderBy("seq")

	// SQLite only accepts OFFSET together with LIMIT
	if q.Limit >= 0 {
		builder = builder.Limit(uint64(q.Limit))
	} else {
		builder = builder.Limit(math.MaxInt64)
	}
	if q.Offset > 0 {
		builder = builder.Offset(uint64(q.Offset))
	}

	return builder.ToSql()
}

func buildCountItemsQuery(collection string) (string, []any, error) {
	return psql.Select("COUNT(*)").
		From(itemsTable).
		Where(sq.Eq{"collection": collection}).
		ToSql()
}

func buildUpdateItemQuery(collection, id string, patch []byte) (string, []any, error) {
	return psql.Update(itemsTable).
		Set("payload", sq.Expr("json_patch(payload, ?)", string(patch))).
		Where(sq.Eq{"collection": collection, "id": id}).
		ToSql()
}

func buildUpsertItemsQuery(collection string, items []ItemRecord) (string, []any, error) {
	builder := psql.Insert(itemsTable).Columns("collection", "id", "payload")
	for _, item := range items {
		builder = builder.Values(collection, item.ID, string(item.Payload))
	}
	return builder.Suffix(upsertItemsSuffix).ToSql()
}

func buildDeleteItemsQuery(collection string, ids []string) (string, []any, error) {
	return psql.Delete(itemsTable).
		Where(sq.Eq{"collection": collection, "id": ids}).
		ToSql()
}

func buildClearItemsQuery(collection string) (string, []any, error) {
	return psql.Delete(itemsTable).
		Where(sq.Eq{"collection": collection}).
		ToSql()
}

func buildGetKVQuery(key string) (string, []any, error) {
	return psql.Select("value").From(kvTable).Where(sq.Eq{"key": key}).ToSql()
}

func buildSetKVQuery(key string, value []byte, updatedAt int64) (string, []any, error) {
	return psql.Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, string(value), updatedAt).
		Suffix(upsertKVSuffix).
		ToSql()
}

func buildDeleteKVQuery(key string) (string, []any, error) {
	return psql.Delete(kvTable).Where(sq.Eq{"key": key}).ToSql()
}

func chunks[T any](s []T, size int) [][]T {
	out := make([][]T, 0, (len(s)+size-1)/size)
	for len(s) > size {
		out = append(out, s[:size])
		s = s[size:]
	}
	if len(s) > 0 {
		out = append(out, s)
	}
	return out
}
