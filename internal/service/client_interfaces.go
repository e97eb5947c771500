package service

import (
	"context"
	"net/url"
	"time"

	"github.com/MKhiriev/ana-muslim-newtab/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// Syncer is a collection that can be synchronized with its remote feed.
type Syncer interface {
	// Identifier returns the collection name, also used for the cursor key.
	Identifier() string

	// ShouldSync reports whether the cursor is missing or older than the
	// sync interval.
	ShouldSync(ctx context.Context) bool

	// Sync fetches at most one page of the remote feed and applies it.
	// Unless force is set it does nothing while ShouldSync is false.
	// forceParams override the query built from the cursor. Network and
	// storage failures are logged, not returned; only a cancelled ctx and
	// ErrSyncInFlight are.
	Sync(ctx context.Context, force bool, forceParams url.Values) error
}

// AssetCacher receives fire-and-forget cache directives.
type AssetCacher interface {
	// Post enqueues msg without blocking. It reports false when the
	// directive was dropped.
	Post(msg models.AssetMessage) bool
}

// SyncJob periodically syncs a set of collections in the background.
type SyncJob interface {
	// Start runs one sync round right away and then one per interval,
	// defaulting to 1 minute when interval is not positive. Any previously
	// running job is stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the background goroutines and waits for them to exit.
	Stop()
}
