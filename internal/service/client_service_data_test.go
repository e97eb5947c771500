package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
	"github.com/MKhiriev/ana-muslim-newtab/internal/mock"
	"github.com/MKhiriev/ana-muslim-newtab/internal/store"
	"github.com/MKhiriev/ana-muslim-newtab/models"
)

const (
	testPhotosURL  = "http://sync.test/sync_photos"
	testContentURL = "http://sync.test/sync_content"
	testInterval   = time.Minute
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type dataFixture struct {
	storages *store.ClientStorages
	source   *mock.MockSyncSource
	clock    *testClock
	photos   *DataService[models.Photo]
	content  *DataService[models.Content]
}

func newDataFixture(t *testing.T) *dataFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &dataFixture{
		storages: store.OpenClientStorages(filepath.Join(t.TempDir(), "newtab.db"), logger.Nop()),
		source:   mock.NewMockSyncSource(ctrl),
		clock:    &testClock{now: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)},
	}
	t.Cleanup(func() { _ = f.storages.Close() })

	var err error
	f.photos, err = NewDataService(DataServiceConfig[models.Photo]{
		Identifier:    models.PhotosCollection.String(),
		SyncURL:       testPhotosURL,
		SyncInterval:  testInterval,
		IndexedFields: PhotosIndexedFields,
		ItemMapper:    uncachedPhoto,
	}, f.storages.Items, f.storages.KV, f.source, logger.Nop())
	require.NoError(t, err)
	f.photos.now = f.clock.Now

	f.content, err = NewDataService(DataServiceConfig[models.Content]{
		Identifier:   models.ContentCollection.String(),
		SyncURL:      testContentURL,
		SyncInterval: testInterval,
	}, f.storages.Items, f.storages.KV, f.source, logger.Nop())
	require.NoError(t, err)
	f.content.now = f.clock.Now

	return f
}

func rawItems(t *testing.T, items ...any) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		raw, err := json.Marshal(item)
		require.NoError(t, err)
		out = append(out, raw)
	}
	return out
}

func storedIDs(t *testing.T, s *DataService[models.Photo]) []string {
	t.Helper()
	photos, err := s.GetItems(context.Background(), store.ItemsQuery{Limit: store.NoLimit})
	require.NoError(t, err)
	ids := make([]string, 0, len(photos))
	for _, p := range photos {
		ids = append(ids, p.ID)
	}
	sort.Strings(ids)
	return ids
}

func TestNewDataService_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	items := mock.NewMockItemRepository(ctrl)
	kv := mock.NewMockKVRepository(ctrl)

	_, err := NewDataService(DataServiceConfig[models.Photo]{SyncURL: testPhotosURL}, items, kv, nil, logger.Nop())
	assert.ErrorIs(t, err, ErrEmptyIdentifier)

	_, err = NewDataService(DataServiceConfig[models.Photo]{Identifier: "photos", SyncURL: "/sync_photos"}, items, kv, nil, logger.Nop())
	assert.ErrorIs(t, err, ErrInvalidSyncURL)

	items.EXPECT().DeclareIndexes("photos", "bad field").Return(store.ErrInvalidName)
	_, err = NewDataService(DataServiceConfig[models.Photo]{
		Identifier:    "photos",
		SyncURL:       testPhotosURL,
		IndexedFields: []string{"bad field"},
	}, items, kv, nil, logger.Nop())
	assert.ErrorIs(t, err, store.ErrInvalidName)
}

func TestNewDataService_DefaultInterval(t *testing.T) {
	ctrl := gomock.NewController(t)
	items := mock.NewMockItemRepository(ctrl)
	items.EXPECT().DeclareIndexes("photos").Return(nil)

	s, err := NewDataService(DataServiceConfig[models.Photo]{Identifier: "photos", SyncURL: testPhotosURL},
		items, mock.NewMockKVRepository(ctrl), nil, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, DefaultSyncInterval, s.syncInterval)
}

func TestDataService_SyncEndToEnd(t *testing.T) {
	f := newDataFixture(t)
	ctx := context.Background()

	gomock.InOrder(
		f.source.EXPECT().
			FetchSyncPage(gomock.Any(), testPhotosURL, url.Values{"min_version": {"1"}, "page": {"0"}, "limit": {"50"}}).
			Return(models.SyncResponse[json.RawMessage]{
				Added:   rawItems(t, models.Photo{ID: "p1", Src: "https://img.test/p1.jpg", Active: true}),
				Removed: []string{},
				Page:    0, MaxPage: 0, Version: 1,
			}, nil),
		f.source.EXPECT().
			FetchSyncPage(gomock.Any(), testPhotosURL, url.Values{"min_version": {"2"}, "page": {"0"}, "limit": {"50"}}).
			Return(models.SyncResponse[json.RawMessage]{
				Added:   []json.RawMessage{},
				Removed: []string{"p1"},
				Page:    0, MaxPage: 0, Version: 2,
			}, nil),
	)

	assert.True(t, f.photos.ShouldSync(ctx))
	require.NoError(t, f.photos.Sync(ctx, false, nil))

	p1, ok, err := f.photos.GetItemByID(ctx, "p1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "https://img.test/p1.jpg", p1.Src)
	assert.False(t, f.photos.ShouldSync(ctx))

	f.clock.Advance(testInterval + time.Second)
	require.NoError(t, f.photos.Sync(ctx, false, nil))

	_, ok, err = f.photos.GetItemByID(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)

	cursor, ok := f.photos.Cursor(ctx)
	require.True(t, ok)
	assert.Equal(t, 0, cursor.PageOr(-1))
	assert.Equal(t, int64(3), cursor.VersionOr(-1))
}

// pagedRemote serves a fixed feed of version 1 split into pages.
func pagedRemote(t *testing.T, pages []models.SyncResponse[json.RawMessage]) func(context.Context, string, url.Values) (models.SyncResponse[json.RawMessage], error) {
	return func(_ context.Context, _ string, params url.Values) (models.SyncResponse[json.RawMessage], error) {
		if params.Get("min_version") != "1" {
			return models.SyncResponse[json.RawMessage]{Added: nil, Removed: nil, Page: 0, MaxPage: 0, Version: 1}, nil
		}
		page, err := strconv.Atoi(params.Get("page"))
		require.NoError(t, err)
		return pages[page], nil
	}
}

func TestDataService_SplitRunsConverge(t *testing.T) {
	pages := []models.SyncResponse[json.RawMessage]{
		{Added: rawItems(t, models.Photo{ID: "p1"}, models.Photo{ID: "p2"}), Removed: []string{}, Page: 0, MaxPage: 2, Version: 1},
		{Added: rawItems(t, models.Photo{ID: "p3"}), Removed: []string{"p1"}, Page: 1, MaxPage: 2, Version: 1},
		{Added: rawItems(t, models.Photo{ID: "p4"}, models.Photo{ID: "p5"}), Removed: []string{"p2"}, Page: 2, MaxPage: 2, Version: 1},
	}
	// every added id minus every removed id
	want := []string{"p3", "p4", "p5"}

	t.Run("forced back to back", func(t *testing.T) {
		f := newDataFixture(t)
		f.source.EXPECT().FetchSyncPage(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(pagedRemote(t, pages)).Times(4)

		for range 4 {
			require.NoError(t, f.photos.Sync(context.Background(), true, nil))
		}
		assert.Equal(t, want, storedIDs(t, f.photos))
	})

	t.Run("gated by the interval", func(t *testing.T) {
		f := newDataFixture(t)
		f.source.EXPECT().FetchSyncPage(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(pagedRemote(t, pages)).Times(3)

		for range 6 {
			// every other call lands inside the interval and is skipped
			require.NoError(t, f.photos.Sync(context.Background(), false, nil))
			require.NoError(t, f.photos.Sync(context.Background(), false, nil))
			f.clock.Advance(testInterval + time.Millisecond)
			if len(storedIDs(t, f.photos)) == len(want) {
				break
			}
		}
		assert.Equal(t, want, storedIDs(t, f.photos))
	})
}

func TestDataService_ShouldSync(t *testing.T) {
	f := newDataFixture(t)
	ctx := context.Background()
	f.source.EXPECT().FetchSyncPage(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.SyncResponse[json.RawMessage]{Page: 0, MaxPage: 0, Version: 1}, nil)

	assert.True(t, f.photos.ShouldSync(ctx), "no cursor yet")
	require.NoError(t, f.photos.Sync(ctx, false, nil))
	assert.False(t, f.photos.ShouldSync(ctx))

	f.clock.Advance(testInterval)
	assert.False(t, f.photos.ShouldSync(ctx), "exactly one interval is not stale yet")

	f.clock.Advance(time.Millisecond)
	assert.True(t, f.photos.ShouldSync(ctx))
}

func TestDataService_ShouldSync_CursorWithoutTimestamp(t *testing.T) {
	f := newDataFixture(t)
	ctx := context.Background()

	require.NoError(t, f.storages.KV.Set(ctx, store.CursorKey(f.photos.Identifier()), []byte(`{"page":1,"version":4}`)))
	assert.True(t, f.photos.ShouldSync(ctx))

	f.source.EXPECT().
		FetchSyncPage(gomock.Any(), testPhotosURL, url.Values{"min_version": {"4"}, "page": {"1"}, "limit": {"50"}}).
		Return(models.SyncResponse[json.RawMessage]{Page: 1, MaxPage: 3, Version: 4}, nil)
	require.NoError(t, f.photos.Sync(ctx, false, nil))

	cursor, ok := f.photos.Cursor(ctx)
	require.True(t, ok)
	assert.Equal(t, 2, cursor.PageOr(-1))
	assert.Equal(t, int64(4), cursor.VersionOr(-1))
	last, ok := cursor.LastUpdatedTime()
	require.True(t, ok)
	assert.Equal(t, f.clock.Now().UnixMilli(), last.UnixMilli())
}

func TestDataService_CorruptCursorIsIgnored(t *testing.T) {
	f := newDataFixture(t)
	ctx := context.Background()

	require.NoError(t, f.storages.KV.Set(ctx, store.CursorKey(f.photos.Identifier()), []byte(`{not json`)))
	assert.True(t, f.photos.ShouldSync(ctx))

	f.source.EXPECT().
		FetchSyncPage(gomock.Any(), testPhotosURL, url.Values{"min_version": {"1"}, "page": {"0"}, "limit": {"50"}}).
		Return(models.SyncResponse[json.RawMessage]{Page: 0, MaxPage: 0, Version: 1}, nil)
	require.NoError(t, f.photos.Sync(ctx, false, nil))
	assert.False(t, f.photos.ShouldSync(ctx))
}

func TestDataService_MidPassKeepsCursorVersion(t *testing.T) {
	f := newDataFixture(t)
	ctx := context.Background()

	// the response version is ignored until the last page
	f.source.EXPECT().FetchSyncPage(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.SyncResponse[json.RawMessage]{Page: 0, MaxPage: 2, Version: 9}, nil)
	require.NoError(t, f.photos.Sync(ctx, true, nil))

	cursor, ok := f.photos.Cursor(ctx)
	require.True(t, ok)
	assert.Equal(t, 1, cursor.PageOr(-1))
	assert.Equal(t, int64(1), cursor.VersionOr(-1))
}

func TestDataService_FailuresAreSoft(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"network", errors.New("dial tcp: connection refused")},
		{"status", errors.New("unexpected status: http 503")},
		{"request timeout", context.DeadlineExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDataFixture(t)
			ctx := context.Background()
			f.source.EXPECT().FetchSyncPage(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(models.SyncResponse[json.RawMessage]{}, tt.err)

			require.NoError(t, f.photos.Sync(ctx, false, nil))

			_, ok := f.photos.Cursor(ctx)
			assert.False(t, ok, "cursor must not move on failure")
			assert.True(t, f.photos.ShouldSync(ctx))
		})
	}
}

func TestDataService_StorageFailureIsSoft(t *testing.T) {
	ctrl := gomock.NewController(t)
	items := mock.NewMockItemRepository(ctrl)
	kv := mock.NewMockKVRepository(ctrl)
	source := mock.NewMockSyncSource(ctrl)

	items.EXPECT().DeclareIndexes("photos").Return(nil)
	s, err := NewDataService(DataServiceConfig[models.Photo]{Identifier: "photos", SyncURL: testPhotosURL}, items, kv, source, logger.Nop())
	require.NoError(t, err)

	kv.EXPECT().Get(gomock.Any(), "photos-info").Return(nil, false, nil).AnyTimes()
	source.EXPECT().FetchSyncPage(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.SyncResponse[json.RawMessage]{Added: rawItems(t, models.Photo{ID: "p1"}), Version: 1}, nil)
	items.EXPECT().BulkUpsert(gomock.Any(), "photos", gomock.Any()).Return(store.ErrExecutingQuery)

	// no BulkDelete and no cursor write after the failed upsert
	assert.NoError(t, s.Sync(context.Background(), false, nil))
}

func TestDataService_CancelledContextIsReturned(t *testing.T) {
	f := newDataFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	f.source.EXPECT().FetchSyncPage(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ url.Values) (models.SyncResponse[json.RawMessage], error) {
			cancel()
			return models.SyncResponse[json.RawMessage]{}, ctx.Err()
		})

	err := f.photos.Sync(ctx, true, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDataService_FreshCursorSkipsNetwork(t *testing.T) {
	f := newDataFixture(t)
	ctx := context.Background()

	cursor, err := json.Marshal(models.NewSyncCursor(0, 2, f.clock.Now()))
	require.NoError(t, err)
	require.NoError(t, f.storages.KV.Set(ctx, store.CursorKey(f.photos.Identifier()), cursor))

	// the mock fails the test on any fetch
	require.NoError(t, f.photos.Sync(ctx, false, nil))
}

func TestDataService_ForceParamsOverrideCursor(t *testing.T) {
	f := newDataFixture(t)
	ctx := context.Background()

	f.source.EXPECT().
		FetchSyncPage(gomock.Any(), testPhotosURL, url.Values{
			"min_version": {"1"},
			"page":        {"0"},
			"limit":       {"500"},
			"locale":      {"ar"},
		}).
		Return(models.SyncResponse[json.RawMessage]{Page: 0, MaxPage: 0, Version: 1}, nil)

	require.NoError(t, f.photos.Sync(ctx, true, url.Values{"limit": {"500"}, "locale": {"ar"}}))
}

func TestDataService_MapperAndMalformedItems(t *testing.T) {
	f := newDataFixture(t)
	ctx := context.Background()

	added := rawItems(t, models.Photo{ID: "p1", Cached: true}, models.Photo{ID: "p2"})
	added = append(added, json.RawMessage(`{"src":"no-id"}`), json.RawMessage(`"not an object"`))
	f.source.EXPECT().FetchSyncPage(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.SyncResponse[json.RawMessage]{Added: added, Page: 0, MaxPage: 0, Version: 1}, nil)

	require.NoError(t, f.photos.Sync(ctx, true, nil))
	assert.Equal(t, []string{"p1", "p2"}, storedIDs(t, f.photos))

	p1, ok, err := f.photos.GetItemByID(ctx, "p1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, p1.Cached, "synced photos start uncached")
}

func TestDataService_SyncIsNotReentrant(t *testing.T) {
	f := newDataFixture(t)
	release := make(chan struct{})
	entered := make(chan struct{})

	f.source.EXPECT().FetchSyncPage(gomock.Any(), testPhotosURL, gomock.Any()).
		DoAndReturn(func(context.Context, string, url.Values) (models.SyncResponse[json.RawMessage], error) {
			close(entered)
			<-release
			return models.SyncResponse[json.RawMessage]{Page: 0, MaxPage: 0, Version: 1}, nil
		}).Times(1)
	f.source.EXPECT().FetchSyncPage(gomock.Any(), testContentURL, gomock.Any()).
		Return(models.SyncResponse[json.RawMessage]{Page: 0, MaxPage: 0, Version: 1}, nil).Times(1)

	done := make(chan error, 1)
	go func() { done <- f.photos.Sync(context.Background(), true, nil) }()
	<-entered

	// a second photos sync returns at once, content is not held up
	assert.ErrorIs(t, f.photos.Sync(context.Background(), true, nil), ErrSyncInFlight)
	require.NoError(t, f.content.Sync(context.Background(), true, nil))

	close(release)
	require.NoError(t, <-done)
}

func TestDataService_GetRandomItem(t *testing.T) {
	f := newDataFixture(t)
	ctx := context.Background()

	_, ok, err := f.photos.GetRandomItem(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "empty collection")

	ids := []string{"p1", "p2", "p3", "p4", "p5"}
	for _, id := range ids {
		require.NoError(t, f.photos.BulkUpsert(ctx, models.Photo{ID: id}))
	}

	seen := make(map[string]int)
	for range 500 {
		p, ok, err := f.photos.GetRandomItem(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		require.Contains(t, ids, p.ID)
		seen[p.ID]++
	}
	for _, id := range ids {
		assert.Positive(t, seen[id], "item %s never drawn", id)
	}
}

func TestDataService_GetRandomItem_LastIndexReachable(t *testing.T) {
	f := newDataFixture(t)
	ctx := context.Background()
	require.NoError(t, f.photos.BulkUpsert(ctx, models.Photo{ID: "a"}, models.Photo{ID: "b"}))

	f.photos.intN = func(n int) int { return n - 1 }
	p, ok, err := f.photos.GetRandomItem(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", p.ID)
}

func TestDataService_ClearResetsCursor(t *testing.T) {
	f := newDataFixture(t)
	ctx := context.Background()

	f.source.EXPECT().FetchSyncPage(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.SyncResponse[json.RawMessage]{Added: rawItems(t, models.Photo{ID: "p1"}), Page: 0, MaxPage: 0, Version: 1}, nil)
	require.NoError(t, f.photos.Sync(ctx, false, nil))
	require.False(t, f.photos.ShouldSync(ctx))

	require.NoError(t, f.photos.Clear(ctx))

	count, err := f.photos.GetItemsCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.True(t, f.photos.ShouldSync(ctx))
}

func TestDataService_CollectionsAreIsolated(t *testing.T) {
	f := newDataFixture(t)
	ctx := context.Background()

	require.NoError(t, f.photos.BulkUpsert(ctx, models.Photo{ID: "x"}))
	require.NoError(t, f.content.BulkUpsert(ctx, models.Content{ID: "x", Type: models.ContentQuran}))
	require.NoError(t, f.content.Clear(ctx))

	_, ok, err := f.photos.GetItemByID(ctx, "x")
	require.NoError(t, err)
	assert.True(t, ok)
}
