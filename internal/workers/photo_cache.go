// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/ana-muslim-newtab/internal/adapter"
	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
	"github.com/MKhiriev/ana-muslim-newtab/internal/utils"
	"github.com/MKhiriev/ana-muslim-newtab/models"
)

const maxCachedExtLen = 5

// PhotoCacheWorker downloads photos named in "cache-photo" directives into
// a local directory. It implements service.AssetCacher and [Worker].
type PhotoCacheWorker struct {
	queue      chan models.AssetMessage
	downloader adapter.AssetDownloader
	dir        string
	logger     *logger.Logger
}

func NewPhotoCacheWorker(downloader adapter.AssetDownloader, dir string, queueSize int, log *logger.Logger) *PhotoCacheWorker {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &PhotoCacheWorker{
		queue:      make(chan models.AssetMessage, queueSize),
		downloader: downloader,
		dir:        dir,
		logger:     log,
	}
}

// Post enqueues msg without blocking. Unknown directives and directives
// arriving while the queue is full are dropped.
func (w *PhotoCacheWorker) Post(msg models.AssetMessage) bool {
	if msg.Type != models.CachePhotoMessage || msg.URL == "" {
		return false
	}
	select {
	case w.queue <- msg:
		return true
	default:
		return false
	}
}

func (w *PhotoCacheWorker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-w.queue:
			w.cache(ctx, msg.URL)
		}
	}
}

// Flush caches every directive already queued and returns once the queue
// is empty. One-shot commands use it instead of Run.
func (w *PhotoCacheWorker) Flush(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-w.queue:
			w.cache(ctx, msg.URL)
		default:
			return
		}
	}
}

// PathFor returns where the asset at assetURL is cached.
func (w *PhotoCacheWorker) PathFor(assetURL string) string {
	return filepath.Join(w.dir, utils.HashString(assetURL)+assetExt(assetURL))
}

// Cached reports whether assetURL is already on disk.
func (w *PhotoCacheWorker) Cached(assetURL string) bool {
	_, err := os.Stat(w.PathFor(assetURL))
	return err == nil
}

func (w *PhotoCacheWorker) cache(ctx context.Context, assetURL string) {
	dest := w.PathFor(assetURL)
	if w.Cached(assetURL) {
		return
	}

	if err := w.downloader.Download(ctx, assetURL, dest); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		w.logger.Warn().Err(err).
			Str("func", "PhotoCacheWorker.cache").
			Str("url", assetURL).
			Msg("photo not cached")
		return
	}

	w.logger.Debug().
		Str("func", "PhotoCacheWorker.cache").
		Str("url", assetURL).
		Str("path", dest).
		Msg("photo cached")
}

func assetExt(assetURL string) string {
	u, err := url.Parse(assetURL)
	if err != nil {
		return ""
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if len(ext) < 2 || len(ext) > maxCachedExtLen {
		return ""
	}
	return ext
}
