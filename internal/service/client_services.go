package service

import (
	"fmt"

	"github.com/MKhiriev/ana-muslim-newtab/internal/adapter"
	"github.com/MKhiriev/ana-muslim-newtab/internal/config"
	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
	"github.com/MKhiriev/ana-muslim-newtab/internal/store"
	"github.com/MKhiriev/ana-muslim-newtab/models"
)

// PhotosIndexedFields are the fields of a photo usable in ItemsQuery.Where.
var PhotosIndexedFields = []string{"cached"}

type ClientServices struct {
	Photos    *DataService[models.Photo]
	Content   *DataService[models.Content]
	Settings  *PreferenceBucket[models.Settings]
	Favorites *PreferenceBucket[models.FavoritePhotos]
	SyncJob   SyncJob
}

// NewClientServices wires the shipped collections and preference buckets.
func NewClientServices(storages *store.ClientStorages, remote adapter.SyncSource, cfg config.ClientApp, log *logger.Logger) (*ClientServices, error) {
	photos, err := NewDataService(DataServiceConfig[models.Photo]{
		Identifier:    models.PhotosCollection.String(),
		SyncURL:       cfg.PhotosSyncURL,
		SyncInterval:  cfg.SyncInterval,
		IndexedFields: PhotosIndexedFields,
		ItemMapper:    uncachedPhoto,
	}, storages.Items, storages.KV, remote, log)
	if err != nil {
		return nil, fmt.Errorf("photos data service: %w", err)
	}

	content, err := NewDataService(DataServiceConfig[models.Content]{
		Identifier:   models.ContentCollection.String(),
		SyncURL:      cfg.ContentSyncURL,
		SyncInterval: cfg.SyncInterval,
	}, storages.Items, storages.KV, remote, log)
	if err != nil {
		return nil, fmt.Errorf("content data service: %w", err)
	}

	settings, err := NewPreferenceBucket(storages.KV, models.SettingsBucket, models.DefaultSettings(), log)
	if err != nil {
		return nil, err
	}
	favorites, err := NewPreferenceBucket(storages.KV, models.FavoritePhotosBucket, models.DefaultFavoritePhotos(), log)
	if err != nil {
		return nil, err
	}

	return &ClientServices{
		Photos:    photos,
		Content:   content,
		Settings:  settings,
		Favorites: favorites,
		SyncJob:   NewSyncJob(log, photos, content),
	}, nil
}

// uncachedPhoto resets the cached flag of every synced photo; the asset
// cache sets it again once the photo has been picked.
func uncachedPhoto(p models.Photo) models.Photo {
	p.Cached = false
	return p
}
