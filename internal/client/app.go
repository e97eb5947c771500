package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/ana-muslim-newtab/internal/adapter"
	"github.com/MKhiriev/ana-muslim-newtab/internal/config"
	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
	"github.com/MKhiriev/ana-muslim-newtab/internal/service"
	"github.com/MKhiriev/ana-muslim-newtab/internal/state"
	"github.com/MKhiriev/ana-muslim-newtab/internal/store"
	"github.com/MKhiriev/ana-muslim-newtab/internal/tui"
	"github.com/MKhiriev/ana-muslim-newtab/internal/workers"
	"github.com/MKhiriev/ana-muslim-newtab/models"
)

// ErrUnknownCollection is returned for a collection name other than photos
// or content.
var ErrUnknownCollection = errors.New("unknown collection")

type App struct {
	cfg      *config.ClientConfig
	storages *store.ClientStorages
	services *service.ClientServices
	cache    *workers.PhotoCacheWorker

	Photos   *state.Photos
	Contents *state.Contents

	ui     UI
	logger *logger.Logger
}

// NewApp opens the local store and wires every client component.
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	storages := store.OpenClientStorages(cfg.Storage.DSN, log)
	remote := adapter.NewHTTPRemoteAdapter(cfg.Adapter, log)

	app, err := newApp(ctx, cfg, storages, remote, log)
	if err != nil {
		return nil, err
	}
	app.ui = tui.New(app.Photos, app.Contents, app.services.Settings, buildInfo, log)
	return app, nil
}

func newApp(ctx context.Context, cfg *config.ClientConfig, storages *store.ClientStorages, remote adapter.RemoteAdapter, log *logger.Logger) (*App, error) {
	services, err := service.NewClientServices(storages, remote, cfg.App, log)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create client services: %w", err)
	}

	cache := workers.NewPhotoCacheWorker(remote, cfg.Storage.CacheDir, cfg.Workers.CacheQueueSize, log)

	return &App{
		cfg:      cfg,
		storages: storages,
		services: services,
		cache:    cache,
		Photos:   state.NewPhotos(ctx, services.Photos, services.Favorites, cache, log),
		Contents: state.NewContents(services.Content, log),
		logger:   log,
	}, nil
}

func (a *App) Services() *service.ClientServices {
	return a.services
}

// Run starts the background sync job and the photo cache, shows the UI and
// stops the workers once the UI returns.
func (a *App) Run(ctx context.Context) error {
	if a.ui == nil {
		return errors.New("client has no ui")
	}

	ctx, cancel := context.WithCancel(ctx)
	background := workers.NewWorkers(
		workers.NewSyncWorker(a.services.SyncJob, a.cfg.Workers.SyncInterval),
		a.cache,
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		background.Run(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	a.logger.Info().Str("func", "App.Run").Msg("client started")
	return a.ui.Run(ctx)
}

// Sync syncs the named collections, every collection when none is named.
func (a *App) Sync(ctx context.Context, force bool, collections ...string) error {
	syncers, err := a.syncers(collections)
	if err != nil {
		return err
	}
	for _, s := range syncers {
		if err := s.Sync(ctx, force, nil); err != nil {
			return fmt.Errorf("sync %s: %w", s.Identifier(), err)
		}
	}
	return nil
}

// RandomPhoto picks a photo the way a new tab does and caches the assets the
// pick queued.
func (a *App) RandomPhoto(ctx context.Context) (*models.Photo, error) {
	if err := a.Photos.Dispatch(ctx, a.Photos.LoadPhoto("")); err != nil {
		return nil, err
	}
	a.cache.Flush(ctx)
	return a.Photos.State().Photo, nil
}

func (a *App) RandomContent(ctx context.Context) (*models.Content, error) {
	if err := a.Contents.Dispatch(ctx, a.Contents.LoadContent("")); err != nil {
		return nil, err
	}
	return a.Contents.State().Content, nil
}

// Clear drops the items and the cursor of the named collections, every
// collection when none is named.
func (a *App) Clear(ctx context.Context, collections ...string) error {
	targets := map[string]interface{ Clear(context.Context) error }{
		"photos":  a.services.Photos,
		"content": a.services.Content,
	}
	if len(collections) == 0 {
		collections = []string{"photos", "content"}
	}
	for _, name := range collections {
		target, ok := targets[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownCollection, name)
		}
		if err := target.Clear(ctx); err != nil {
			return fmt.Errorf("clear %s: %w", name, err)
		}
	}
	return nil
}

// Close waits for the store to settle and closes it.
func (a *App) Close() error {
	return a.storages.Close()
}

func (a *App) syncers(collections []string) ([]service.Syncer, error) {
	if len(collections) == 0 {
		return []service.Syncer{a.services.Photos, a.services.Content}, nil
	}
	out := make([]service.Syncer, 0, len(collections))
	for _, name := range collections {
		switch name {
		case "photos":
			out = append(out, a.services.Photos)
		case "content":
			out = append(out, a.services.Content)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
		}
	}
	return out, nil
}
