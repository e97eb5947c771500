package service

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/ana-muslim-newtab/internal/store"
	"github.com/MKhiriev/ana-muslim-newtab/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// CatalogService serves the incremental feeds of the reference sync server.
type CatalogService interface {
	// GetSyncPage returns one page of rows with version >= query.MinVersion.
	// Active rows are reported as added, inactive rows as removed ids.
	GetSyncPage(ctx context.Context, catalog store.Catalog, query models.SyncQuery) (models.SyncResponse[json.RawMessage], error)

	// Import stores a JSON array of items under a new catalog version and
	// returns how many items were written.
	Import(ctx context.Context, catalog store.Catalog, data []byte) (int, error)
}

// AppInfoService reports build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
