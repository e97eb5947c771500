package store

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/ana-muslim-newtab/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// CatalogRepository reads and maintains the catalog served by the reference
// sync server.
type CatalogRepository interface {
	GetSyncPage(ctx context.Context, catalog Catalog, query models.SyncQuery) (CatalogPage, error)
	GetMaxVersion(ctx context.Context, catalog Catalog) (int64, error)
	SaveCatalogItems(ctx context.Context, catalog Catalog, items []CatalogItem) error
}

// Catalog names a catalog table.
type Catalog string

const (
	CatalogPhotos  Catalog = "photos"
	CatalogContent Catalog = "content"
)

// Valid reports whether c is a served catalog.
func (c Catalog) Valid() bool {
	return c == CatalogPhotos || c == CatalogContent
}

// CatalogItem is one catalog row.
type CatalogItem struct {
	ID      string
	Active  bool
	Version int64
	Payload json.RawMessage
}

// CatalogPage is a window of rows with version >= min_version, ordered by
// (version, id), plus the totals over every matching row.
type CatalogPage struct {
	Items []CatalogItem
	// Total counts every row matching min_version.
	Total int
	// MaxVersion is nil when no row matches.
	MaxVersion *int64
}
