package store

import (
	"context"
	"encoding/json"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// ItemRepository stores raw JSON items grouped by collection.
//
// Absent rows are reported with a false flag, never as an error. Every
// method waits for the store to finish initializing before touching the
// database.
type ItemRepository interface {
	GetItemByID(ctx context.Context, collection, id string) (json.RawMessage, bool, error)
	GetItemByIndex(ctx context.Context, collection string, index int) (json.RawMessage, bool, error)
	GetItems(ctx context.Context, collection string, query ItemsQuery) ([]json.RawMessage, error)
	GetItemsCount(ctx context.Context, collection string) (int, error)
	UpdateItem(ctx context.Context, collection, id string, fields map[string]any) error
	BulkUpsert(ctx context.Context, collection string, items []ItemRecord) error
	BulkDelete(ctx context.Context, collection string, ids []string) error
	Clear(ctx context.Context, collection string) error
	DeclareIndexes(collection string, fields ...string) error
}

// KVRepository stores small JSON documents such as sync cursors and
// preference blobs.
type KVRepository interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// ItemRecord is one row to upsert.
type ItemRecord struct {
	ID      string
	Payload json.RawMessage
}

// NoLimit disables the limit of an [ItemsQuery].
const NoLimit = -1

// ItemsQuery selects a window of a collection in insertion order.
type ItemsQuery struct {
	Offset int
	// Limit < 0 means unbounded.
	Limit int
	// Where matches indexed fields exactly. "id" is always indexed.
	Where map[string]any
}

// CursorKey is the KV key holding the sync cursor of a collection.
func CursorKey(collection string) string {
	return collection + "-info"
}
