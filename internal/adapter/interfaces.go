// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the remote side of the new tab: the paginated
// sync endpoints and the photo asset hosts.
//
// HTTP failures are mapped to the sentinels of errors.go so callers can use
// [errors.Is] without looking at status codes.
package adapter

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/MKhiriev/ana-muslim-newtab/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// SyncSource fetches one page of a collection's incremental feed.
type SyncSource interface {
	// FetchSyncPage issues GET syncURL?params. Any status other than 200, a
	// transport error or an undecodable body is returned as an error.
	FetchSyncPage(ctx context.Context, syncURL string, params url.Values) (models.SyncResponse[json.RawMessage], error)
}

// AssetDownloader stores remote assets on disk.
type AssetDownloader interface {
	// Download writes the body of assetURL to dest atomically.
	Download(ctx context.Context, assetURL, dest string) error
}

// RemoteAdapter groups everything the client needs from the network.
type RemoteAdapter interface {
	SyncSource
	AssetDownloader
}
