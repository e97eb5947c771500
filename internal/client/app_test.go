package client

import (
	"context"
	"encoding/json"
	"net/url"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/ana-muslim-newtab/internal/config"
	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
	"github.com/MKhiriev/ana-muslim-newtab/internal/mock"
	"github.com/MKhiriev/ana-muslim-newtab/internal/store"
	"github.com/MKhiriev/ana-muslim-newtab/models"
)

const (
	testPhotosURL  = "https://sync.test/sync_photos"
	testContentURL = "https://sync.test/sync_content"
)

func testConfig(t *testing.T) *config.ClientConfig {
	t.Helper()
	dir := t.TempDir()
	return &config.ClientConfig{
		App: config.ClientApp{
			PhotosSyncURL:  testPhotosURL,
			ContentSyncURL: testContentURL,
			SyncInterval:   time.Hour,
		},
		Adapter: config.ClientAdapter{RequestTimeout: time.Second},
		Storage: config.ClientStorage{
			DSN:      filepath.Join(dir, "newtab.db"),
			CacheDir: filepath.Join(dir, "photos"),
		},
		Workers: config.ClientWorkers{SyncInterval: time.Hour, CacheQueueSize: 4},
	}
}

func newTestApp(t *testing.T, remote *mock.MockRemoteAdapter) *App {
	t.Helper()
	cfg := testConfig(t)
	app, err := newApp(context.Background(), cfg, store.OpenClientStorages(cfg.Storage.DSN, logger.Nop()), remote, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func page(items ...string) models.SyncResponse[json.RawMessage] {
	added := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		added = append(added, json.RawMessage(item))
	}
	return models.SyncResponse[json.RawMessage]{Added: added, Removed: []string{}, Version: 1}
}

func TestApp_SyncPickAndClear(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteAdapter(ctrl)
	app := newTestApp(t, remote)

	remote.EXPECT().FetchSyncPage(gomock.Any(), testPhotosURL, gomock.Any()).
		Return(page(`{"id":"p1","active":true,"src":"https://img.test/p1.jpg"}`), nil)
	remote.EXPECT().FetchSyncPage(gomock.Any(), testContentURL, gomock.Any()).
		Return(page(`{"id":"c1","active":true,"type":"quran","content":"text"}`), nil)
	require.NoError(t, app.Sync(ctx, true))

	remote.EXPECT().Download(gomock.Any(), "https://img.test/p1.jpg", gomock.Any()).Return(nil)
	photo, err := app.RandomPhoto(ctx)
	require.NoError(t, err)
	require.NotNil(t, photo)
	assert.Equal(t, "p1", photo.ID)

	stored, ok, err := app.Services().Photos.GetItemByID(ctx, "p1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, stored.Cached)

	content, err := app.RandomContent(ctx)
	require.NoError(t, err)
	require.NotNil(t, content)
	assert.Equal(t, "c1", content.ID)

	require.NoError(t, app.Clear(ctx, "photos"))
	photo, err = app.RandomPhoto(ctx)
	require.NoError(t, err)
	assert.Nil(t, photo)

	count, err := app.Services().Content.GetItemsCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "other collections are kept")
}

func TestApp_UnknownCollection(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, mock.NewMockRemoteAdapter(gomock.NewController(t)))

	assert.ErrorIs(t, app.Sync(ctx, true, "videos"), ErrUnknownCollection)
	assert.ErrorIs(t, app.Clear(ctx, "videos"), ErrUnknownCollection)
}

func TestApp_SyncSingleCollection(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteAdapter(ctrl)
	app := newTestApp(t, remote)

	remote.EXPECT().FetchSyncPage(gomock.Any(), testContentURL, gomock.Any()).Return(page(), nil)
	require.NoError(t, app.Sync(ctx, true, "content"))
}

type waitingUI struct {
	synced <-chan struct{}
}

func (u waitingUI) Run(ctx context.Context) error {
	select {
	case <-u.synced:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestApp_RunStartsBackgroundSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteAdapter(ctrl)
	app := newTestApp(t, remote)

	synced := make(chan struct{})
	var once sync.Once
	remote.EXPECT().FetchSyncPage(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, url.Values) (models.SyncResponse[json.RawMessage], error) {
			once.Do(func() { close(synced) })
			return page(), nil
		}).AnyTimes()
	app.ui = waitingUI{synced: synced}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, app.Run(ctx))
}

func TestApp_RunWithoutUI(t *testing.T) {
	app := newTestApp(t, mock.NewMockRemoteAdapter(gomock.NewController(t)))
	assert.Error(t, app.Run(context.Background()))
}
