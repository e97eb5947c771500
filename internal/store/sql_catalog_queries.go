package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/ana-muslim-newtab/models"
)

const upsertCatalogSuffix = `ON CONFLICT (id) DO UPDATE SET
	active = EXCLUDED.active,
	version = EXCLUDED.version,
	payload = EXCLUDED.payload,
	updated_at = NOW()`

var pgsql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func buildCatalogStatsQuery(catalog Catalog, minVersion int64) (string, []any, error) {
	return pgsql.Select("COUNT(*)", "MAX(version)").
		From(string(catalog)).
		Where(sq.GtOrEq{"version": minVersion}).
		ToSql()
}

func buildCatalogPageQuery(catalog Catalog, q models.SyncQuery) (string, []any, error) {
	return pgsql.Select("id", "active", "version", "payload").
		From(string(catalog)).
		Where(sq.GtOrEq{"version": q.MinVersion}).
		OrderBy("version", "id").
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Page) * uint64(q.Limit)).
		ToSql()
}

func buildCatalogMaxVersionQuery(catalog Catalog) (string, []any, error) {
	return pgsql.Select("COALESCE(MAX(version), 0)").From(string(catalog)).ToSql()
}

func buildSaveCatalogItemsQuery(catalog Catalog, items []CatalogItem) (string, []any, error) {
	builder := pgsql.Insert(string(catalog)).Columns("id", "active", "version", "payload")
	for _, item := range items {
		builder = builder.Values(item.ID, item.Active, item.Version, string(item.Payload))
	}
	return builder.Suffix(upsertCatalogSuffix).ToSql()
}
