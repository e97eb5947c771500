package state

import (
	"context"
	"net/url"

	"github.com/MKhiriev/ana-muslim-newtab/internal/store"
	"github.com/MKhiriev/ana-muslim-newtab/models"
)

// ItemSource is the part of a synced collection the state holders use.
// *service.DataService satisfies it.
type ItemSource[T models.Item] interface {
	Sync(ctx context.Context, force bool, forceParams url.Values) error
	GetItemByID(ctx context.Context, id string) (T, bool, error)
	GetItems(ctx context.Context, q store.ItemsQuery) ([]T, error)
	GetRandomItem(ctx context.Context) (T, bool, error)
	UpdateItem(ctx context.Context, id string, fields map[string]any) error
}

// FavoritesBucket persists the favorite photo ids.
type FavoritesBucket interface {
	Get(ctx context.Context) models.FavoritePhotos
	Set(ctx context.Context, path string, value any) error
}
