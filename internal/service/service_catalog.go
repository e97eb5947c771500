package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
	"github.com/MKhiriev/ana-muslim-newtab/internal/store"
	"github.com/MKhiriev/ana-muslim-newtab/models"
)

type catalogService struct {
	repo   store.CatalogRepository
	logger *logger.Logger
}

func NewCatalogService(repo store.CatalogRepository, logger *logger.Logger) CatalogService {
	return &catalogService{repo: repo, logger: logger}
}

func (s *catalogService) GetSyncPage(ctx context.Context, catalog store.Catalog, q models.SyncQuery) (models.SyncResponse[json.RawMessage], error) {
	var resp models.SyncResponse[json.RawMessage]

	if !catalog.Valid() {
		return resp, fmt.Errorf("%w: %q", ErrUnknownCatalog, catalog)
	}
	if q.Limit == 0 {
		q.Limit = models.DefaultSyncLimit
	}
	if q.Limit < 0 || q.Limit > models.MaxSyncLimit || q.Page < 0 || q.MinVersion < 0 {
		return resp, fmt.Errorf("%w: min_version=%d page=%d limit=%d", ErrInvalidSyncQuery, q.MinVersion, q.Page, q.Limit)
	}

	page, err := s.repo.GetSyncPage(ctx, catalog, q)
	if err != nil {
		return resp, fmt.Errorf("get sync page: %w", err)
	}

	resp.Added = make([]json.RawMessage, 0, len(page.Items))
	resp.Removed = make([]string, 0)
	for _, item := range page.Items {
		if item.Active {
			resp.Added = append(resp.Added, item.Payload)
		} else {
			resp.Removed = append(resp.Removed, item.ID)
		}
	}

	resp.Page = q.Page
	resp.MaxPage = maxPage(page.Total, q.Limit)
	if page.MaxVersion != nil {
		resp.Version = *page.MaxVersion
	} else {
		resp.Version = q.MinVersion - 1
	}

	logger.FromContext(ctx).Debug().
		Str("func", "catalogService.GetSyncPage").
		Str("catalog", string(catalog)).
		Int("total", page.Total).
		Int("added", len(resp.Added)).
		Int("removed", len(resp.Removed)).
		Int("page", resp.Page).
		Int("max_page", resp.MaxPage).
		Int64("version", resp.Version).
		Msg("sync page served")

	return resp, nil
}

// maxPage is the last zero-based page index, 0 for an empty result.
func maxPage(total, limit int) int {
	if total <= 0 {
		return 0
	}
	return (total+limit-1)/limit - 1
}

// Import stores every element of a JSON array under version max+1. Items
// need a string "id"; "active" defaults to true. The assigned version is
// written into each payload.
func (s *catalogService) Import(ctx context.Context, catalog store.Catalog, data []byte) (int, error) {
	if !catalog.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCatalog, catalog)
	}
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsArray() {
		return 0, fmt.Errorf("%w: import data must be a JSON array", ErrInvalidDataProvided)
	}

	current, err := s.repo.GetMaxVersion(ctx, catalog)
	if err != nil {
		return 0, fmt.Errorf("get max version: %w", err)
	}
	version := current + 1

	var (
		items   []store.CatalogItem
		itemErr error
	)
	gjson.ParseBytes(data).ForEach(func(idx, value gjson.Result) bool {
		id := value.Get("id")
		if !value.IsObject() || id.Type != gjson.String || id.String() == "" {
			itemErr = fmt.Errorf("%w: element %d has no string id", ErrInvalidDataProvided, idx.Int())
			return false
		}

		active := true
		if a := value.Get("active"); a.Exists() {
			active = a.Bool()
		}

		payload, err := sjson.SetBytes([]byte(value.Raw), "version", version)
		if err != nil {
			itemErr = fmt.Errorf("%w: element %d: %w", ErrInvalidDataProvided, idx.Int(), err)
			return false
		}
		if payload, err = sjson.SetBytes(payload, "active", active); err != nil {
			itemErr = fmt.Errorf("%w: element %d: %w", ErrInvalidDataProvided, idx.Int(), err)
			return false
		}

		items = append(items, store.CatalogItem{
			ID:      id.String(),
			Active:  active,
			Version: version,
			Payload: payload,
		})
		return true
	})
	if itemErr != nil {
		return 0, itemErr
	}
	if len(items) == 0 {
		return 0, nil
	}

	if err = s.repo.SaveCatalogItems(ctx, catalog, items); err != nil {
		return 0, fmt.Errorf("save catalog items: %w", err)
	}

	logger.FromContext(ctx).Info().
		Str("func", "catalogService.Import").
		Str("catalog", string(catalog)).
		Int("count", len(items)).
		Int64("version", version).
		Msg("catalog items imported")

	return len(items), nil
}
