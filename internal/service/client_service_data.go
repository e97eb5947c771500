// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/MKhiriev/ana-muslim-newtab/internal/adapter"
	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
	"github.com/MKhiriev/ana-muslim-newtab/internal/store"
	"github.com/MKhiriev/ana-muslim-newtab/models"
)

// DefaultSyncInterval applies when a [DataServiceConfig] leaves SyncInterval unset.
const DefaultSyncInterval = 8 * time.Hour

// Query parameter names of the sync endpoint.
const (
	paramMinVersion = "min_version"
	paramPage       = "page"
	paramLimit      = "limit"
)

// DataServiceConfig describes one synced collection.
type DataServiceConfig[T models.Item] struct {
	Identifier    string
	SyncURL       string
	SyncInterval  time.Duration
	IndexedFields []string
	// ItemMapper rewrites every item received from the remote before it is
	// stored. Nil keeps items as they are.
	ItemMapper func(T) T
}

// DataService keeps one local collection eventually consistent with its
// remote feed and serves reads from it.
type DataService[T models.Item] struct {
	items        *store.Collection[T]
	kv           store.KVRepository
	source       adapter.SyncSource
	syncURL      string
	syncInterval time.Duration
	mapper       func(T) T

	// syncMu makes Sync non-reentrant per collection.
	syncMu sync.Mutex

	now    func() time.Time
	intN   func(n int) int
	logger *logger.Logger
}

// NewDataService declares the indexed fields of cfg.Identifier on items and
// returns the service.
func NewDataService[T models.Item](
	cfg DataServiceConfig[T],
	items store.ItemRepository,
	kv store.KVRepository,
	source adapter.SyncSource,
	log *logger.Logger,
) (*DataService[T], error) {
	if cfg.Identifier == "" {
		return nil, ErrEmptyIdentifier
	}
	u, err := url.Parse(cfg.SyncURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSyncURL, cfg.SyncURL)
	}

	collection, err := store.NewCollection[T](items, cfg.Identifier, cfg.IndexedFields...)
	if err != nil {
		return nil, fmt.Errorf("declare collection %s: %w", cfg.Identifier, err)
	}

	interval := cfg.SyncInterval
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	mapper := cfg.ItemMapper
	if mapper == nil {
		mapper = func(item T) T { return item }
	}

	return &DataService[T]{
		items:        collection,
		kv:           kv,
		source:       source,
		syncURL:      cfg.SyncURL,
		syncInterval: interval,
		mapper:       mapper,
		now:          time.Now,
		intN:         rand.IntN,
		logger:       log,
	}, nil
}

func (s *DataService[T]) Identifier() string {
	return s.items.Name()
}

// Cursor returns the persisted sync cursor and false when there is none or
// it cannot be decoded.
func (s *DataService[T]) Cursor(ctx context.Context) (models.SyncCursor, bool) {
	var cursor models.SyncCursor

	raw, ok, err := s.kv.Get(ctx, store.CursorKey(s.Identifier()))
	if err != nil {
		s.logger.Warn().Err(err).
			Str("func", "DataService.Cursor").
			Str("collection", s.Identifier()).
			Msg("cannot read sync cursor")
		return cursor, false
	}
	if !ok {
		return cursor, false
	}
	if err = json.Unmarshal(raw, &cursor); err != nil {
		s.logger.Warn().Err(err).
			Str("func", "DataService.Cursor").
			Str("collection", s.Identifier()).
			Msg("corrupt sync cursor is ignored")
		return models.SyncCursor{}, false
	}
	return cursor, true
}

// ShouldSync implements [Syncer].
func (s *DataService[T]) ShouldSync(ctx context.Context) bool {
	cursor, ok := s.Cursor(ctx)
	if !ok {
		return true
	}
	last, ok := cursor.LastUpdatedTime()
	if !ok {
		return true
	}
	return s.now().Sub(last) > s.syncInterval
}

// Sync implements [Syncer].
func (s *DataService[T]) Sync(ctx context.Context, force bool, forceParams url.Values) error {
	log := s.logger.With().
		Str("func", "DataService.Sync").
		Str("collection", s.Identifier()).
		Logger()

	if !s.syncMu.TryLock() {
		log.Debug().Msg("sync already in flight")
		return ErrSyncInFlight
	}
	defer s.syncMu.Unlock()

	if !force && !s.ShouldSync(ctx) {
		return nil
	}

	cursor, _ := s.Cursor(ctx)
	params := s.syncParams(cursor, forceParams)

	page, err := s.source.FetchSyncPage(ctx, s.syncURL, params)
	if err != nil {
		return s.softFail(ctx, err, "fetch sync page")
	}

	added := make([]T, 0, len(page.Added))
	for _, raw := range page.Added {
		var item T
		if err = json.Unmarshal(raw, &item); err != nil || item.ItemID() == "" {
			log.Warn().Err(err).RawJSON("item", raw).Msg("skipping malformed item")
			continue
		}
		added = append(added, s.mapper(item))
	}

	if err = s.items.BulkUpsert(ctx, added...); err != nil {
		return s.softFail(ctx, err, "upsert added items")
	}
	if err = s.items.BulkDelete(ctx, page.Removed...); err != nil {
		return s.softFail(ctx, err, "delete removed items")
	}

	var next models.SyncCursor
	if page.Page+1 > page.MaxPage {
		next = models.NewSyncCursor(models.DefaultSyncPage, page.Version+1, s.now())
	} else {
		next = models.NewSyncCursor(page.Page+1, cursor.VersionOr(models.DefaultSyncMinVersion), s.now())
	}
	if err = s.saveCursor(ctx, next); err != nil {
		return s.softFail(ctx, err, "save sync cursor")
	}

	log.Info().
		Int("added", len(added)).
		Int("removed", len(page.Removed)).
		Int("page", page.Page).
		Int("max_page", page.MaxPage).
		Int64("version", page.Version).
		Msg("sync page applied")

	return nil
}

func (s *DataService[T]) syncParams(cursor models.SyncCursor, forceParams url.Values) url.Values {
	params := url.Values{}
	params.Set(paramMinVersion, strconv.FormatInt(cursor.VersionOr(models.DefaultSyncMinVersion), 10))
	params.Set(paramPage, strconv.Itoa(cursor.PageOr(models.DefaultSyncPage)))
	params.Set(paramLimit, strconv.Itoa(models.DefaultSyncLimit))
	for k, v := range forceParams {
		params[k] = append([]string(nil), v...)
	}
	return params
}

func (s *DataService[T]) saveCursor(ctx context.Context, cursor models.SyncCursor) error {
	raw, err := json.Marshal(cursor)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, store.CursorKey(s.Identifier()), raw)
}

// softFail logs err and drops it. A cancelled or expired ctx is returned.
func (s *DataService[T]) softFail(ctx context.Context, err error, op string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		s.logger.Debug().Err(err).
			Str("func", "DataService.Sync").
			Str("collection", s.Identifier()).
			Msgf("%s timed out", op)
		return nil
	}

	s.logger.Warn().Err(err).
		Str("func", "DataService.Sync").
		Str("collection", s.Identifier()).
		Msgf("%s failed, will retry on next sync", op)
	return nil
}

// GetRandomItem draws uniformly over [0, count). It reports false when the
// collection is empty.
func (s *DataService[T]) GetRandomItem(ctx context.Context) (T, bool, error) {
	count, err := s.items.GetItemsCount(ctx)
	if err != nil || count == 0 {
		var zero T
		return zero, false, err
	}
	return s.items.GetItemByIndex(ctx, s.intN(count))
}

func (s *DataService[T]) GetItemByID(ctx context.Context, id string) (T, bool, error) {
	return s.items.GetItemByID(ctx, id)
}

func (s *DataService[T]) GetItemByIndex(ctx context.Context, index int) (T, bool, error) {
	return s.items.GetItemByIndex(ctx, index)
}

func (s *DataService[T]) GetItems(ctx context.Context, q store.ItemsQuery) ([]T, error) {
	return s.items.GetItems(ctx, q)
}

func (s *DataService[T]) GetItemsCount(ctx context.Context) (int, error) {
	return s.items.GetItemsCount(ctx)
}

// UpdateItem merges fields into the stored item. Unknown ids are ignored.
func (s *DataService[T]) UpdateItem(ctx context.Context, id string, fields map[string]any) error {
	return s.items.UpdateItem(ctx, id, fields)
}

func (s *DataService[T]) BulkUpsert(ctx context.Context, items ...T) error {
	return s.items.BulkUpsert(ctx, items...)
}

func (s *DataService[T]) BulkDelete(ctx context.Context, ids ...string) error {
	return s.items.BulkDelete(ctx, ids...)
}

// Clear empties the collection together with its cursor, so the next Sync
// starts from scratch.
func (s *DataService[T]) Clear(ctx context.Context) error {
	return s.items.Clear(ctx)
}
