package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/MKhiriev/ana-muslim-newtab/internal/config"
	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
	"github.com/MKhiriev/ana-muslim-newtab/internal/utils"
	"github.com/MKhiriev/ana-muslim-newtab/models"
)

type httpRemoteAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPRemoteAdapter constructs the resty-based [RemoteAdapter].
func NewHTTPRemoteAdapter(cfg config.ClientAdapter, log *logger.Logger) RemoteAdapter {
	return &httpRemoteAdapter{
		client: utils.NewHTTPClient(cfg.RequestTimeout),
		logger: log,
	}
}

// FetchSyncPage implements [SyncSource].
func (h *httpRemoteAdapter) FetchSyncPage(ctx context.Context, syncURL string, params url.Values) (models.SyncResponse[json.RawMessage], error) {
	var page models.SyncResponse[json.RawMessage]

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParamsFromValues(params).
		Get(syncURL)
	if err != nil {
		return page, fmt.Errorf("sync page request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return page, err
	}

	if err = json.Unmarshal(resp.Body(), &page); err != nil {
		return page, fmt.Errorf("%w: %w", ErrDecodingResponse, err)
	}
	if page.Page < 0 || page.MaxPage < 0 {
		return page, fmt.Errorf("%w: negative page %d/%d", ErrDecodingResponse, page.Page, page.MaxPage)
	}

	h.logger.Debug().
		Str("func", "httpRemoteAdapter.FetchSyncPage").
		Str("url", syncURL).
		Int("added", len(page.Added)).
		Int("removed", len(page.Removed)).
		Int("page", page.Page).
		Int("max_page", page.MaxPage).
		Int64("version", page.Version).
		Msg("sync page fetched")

	return page, nil
}

// Download implements [AssetDownloader]. The body is written to a temporary
// file next to dest and renamed on success.
func (h *httpRemoteAdapter) Download(ctx context.Context, assetURL, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create asset dir: %w", err)
	}

	tmp := dest + ".part"
	resp, err := h.client.R().
		SetContext(ctx).
		SetOutput(tmp).
		Get(assetURL)
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("asset request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("store asset: %w", err)
	}

	return nil
}
