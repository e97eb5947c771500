package models

import "time"

// SyncCursor is the persisted incremental sync position of a collection.
//
// All fields are optional: a cursor written by an older client, or one that
// has never completed a page, may lack any of them.
type SyncCursor struct {
	Page    *int   `json:"page,omitempty"`
	Version *int64 `json:"version,omitempty"`
	// LastUpdated is a Unix timestamp in milliseconds.
	LastUpdated *int64 `json:"lastUpdated,omitempty"`
}

// LastUpdatedTime returns LastUpdated as a time.Time and false when unset.
func (c SyncCursor) LastUpdatedTime() (time.Time, bool) {
	if c.LastUpdated == nil {
		return time.Time{}, false
	}
	return time.UnixMilli(*c.LastUpdated), true
}

// PageOr returns the cursor page or def when unset.
func (c SyncCursor) PageOr(def int) int {
	if c.Page == nil {
		return def
	}
	return *c.Page
}

// VersionOr returns the cursor version or def when unset.
func (c SyncCursor) VersionOr(def int64) int64 {
	if c.Version == nil {
		return def
	}
	return *c.Version
}

// NewSyncCursor builds a fully populated cursor stamped at now.
func NewSyncCursor(page int, version int64, now time.Time) SyncCursor {
	ms := now.UnixMilli()
	return SyncCursor{Page: &page, Version: &version, LastUpdated: &ms}
}

// SyncResponse is one page of the remote incremental feed.
//
// Added items are upserted by id, Removed ids are deleted. Page and MaxPage
// are zero-based; Version is the catalog version the page belongs to.
type SyncResponse[T any] struct {
	Added   []T      `json:"added"`
	Removed []string `json:"removed"`
	Page    int      `json:"page"`
	MaxPage int      `json:"max_page"`
	Version int64    `json:"version"`
}

// SyncQuery holds the paging parameters of a sync request.
type SyncQuery struct {
	MinVersion int64
	Page       int
	Limit      int
}

// Default paging values used when a cursor or request omits them.
const (
	DefaultSyncMinVersion int64 = 1
	DefaultSyncPage             = 0
	DefaultSyncLimit            = 50
	MaxSyncLimit                = 500
)
