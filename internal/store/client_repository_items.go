package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
)

type itemRepository struct {
	db     *lazyDB
	logger *logger.Logger

	mu      sync.Mutex
	indexed map[string]map[string]bool // collection -> declared fields
	created map[string]bool            // fields with an index in the database
}

// newItemRepository constructs the SQLite-backed [ItemRepository].
func newItemRepository(db *lazyDB, log *logger.Logger) ItemRepository {
	return &itemRepository{
		db:      db,
		logger:  log,
		indexed: make(map[string]map[string]bool),
		created: make(map[string]bool),
	}
}

// DeclareIndexes registers fields usable in ItemsQuery.Where for collection.
// The SQLite expression indexes are created on first use.
func (r *itemRepository) DeclareIndexes(collection string, fields ...string) error {
	if !collectionNamePattern.MatchString(collection) {
		return fmt.Errorf("%w: collection %q", ErrInvalidName, collection)
	}
	for _, f := range fields {
		if !fieldNamePattern.MatchString(f) {
			return fmt.Errorf("%w: field %q", ErrInvalidName, f)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.indexed[collection]
	if !ok {
		set = make(map[string]bool, len(fields))
		r.indexed[collection] = set
	}
	for _, f := range fields {
		set[f] = true
	}
	return nil
}

// conn waits for the database and creates any pending declared index.
func (r *itemRepository) conn(ctx context.Context) (*DB, error) {
	db, err := r.db.get(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, fields := range r.indexed {
		for f := range fields {
			if r.created[f] {
				continue
			}
			if _, err := db.ExecContext(ctx, createIndexQuery(f)); err != nil {
				r.logger.Err(err).Str("func", "itemRepository.conn").Str("field", f).Msg("failed to create index")
				return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			r.created[f] = true
		}
	}

	return db, nil
}

func (r *itemRepository) checkIndexed(collection string, where map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for field := range where {
		if field == "id" {
			continue
		}
		if !r.indexed[collection][field] {
			return fmt.Errorf("%w: %s.%s", ErrFieldNotIndexed, collection, field)
		}
	}
	return nil
}

func (r *itemRepository) GetItemByID(ctx context.Context, collection, id string) (json.RawMessage, bool, error) {
	query, args, err := buildGetItemByIDQuery(collection, id)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.queryOne(ctx, "itemRepository.GetItemByID", collection, query, args)
}

func (r *itemRepository) GetItemByIndex(ctx context.Context, collection string, index int) (json.RawMessage, bool, error) {
	if index < 0 {
		return nil, false, nil
	}

	query, args, err := buildGetItemByIndexQuery(collection, index)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.queryOne(ctx, "itemRepository.GetItemByIndex", collection, query, args)
}

func (r *itemRepository) queryOne(ctx context.Context, fn, collection, query string, args []any) (json.RawMessage, bool, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, false, err
	}

	var payload string
	err = db.QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		r.logger.Err(err).Str("func", fn).Str("collection", collection).Msg("failed to query item")
		return nil, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return json.RawMessage(payload), true, nil
}

func (r *itemRepository) GetItems(ctx context.Context, collection string, q ItemsQuery) ([]json.RawMessage, error) {
	if err := r.checkIndexed(collection, q.Where); err != nil {
		return nil, err
	}

	query, args, err := buildGetItemsQuery(collection, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "itemRepository.GetItems").Str("collection", collection).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]json.RawMessage, 0, 16)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		items = append(items, json.RawMessage(payload))
	}

	if err := rows.Err(); err != nil {
		r.logger.Err(err).Str("func", "itemRepository.GetItems").Str("collection", collection).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

func (r *itemRepository) GetItemsCount(ctx context.Context, collection string) (int, error) {
	query, args, err := buildCountItemsQuery(collection)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	db, err := r.conn(ctx)
	if err != nil {
		return 0, err
	}

	var count int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		r.logger.Err(err).Str("func", "itemRepository.GetItemsCount").Str("collection", collection).Msg("failed to count items")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return count, nil
}

// UpdateItem merges fields into the stored item with JSON merge-patch
// semantics. The id field is never patched. Missing ids are ignored.
func (r *itemRepository) UpdateItem(ctx context.Context, collection, id string, fields map[string]any) error {
	patch := make(map[string]any, len(fields))
	for k, v := range fields {
		if k != "id" {
			patch[k] = v
		}
	}
	if len(patch) == 0 {
		return nil
	}

	raw, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingPayload, err)
	}

	query, args, err := buildUpdateItemQuery(collection, id, raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	db, err := r.conn(ctx)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "itemRepository.UpdateItem").Str("collection", collection).Str("id", id).Msg("failed to update item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// BulkUpsert inserts or replaces items by id in one transaction. Replaced
// rows keep their position.
func (r *itemRepository) BulkUpsert(ctx context.Context, collection string, items []ItemRecord) error {
	if len(items) == 0 {
		return nil
	}

	db, err := r.conn(ctx)
	if err != nil {
		return err
	}

	return db.inTx(ctx, func(tx *sql.Tx) error {
		for _, chunk := range chunks(items, upsertChunkSize) {
			query, args, err := buildUpsertItemsQuery(collection, chunk)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				r.logger.Err(err).Str("func", "itemRepository.BulkUpsert").Str("collection", collection).Int("count", len(chunk)).Msg("failed to upsert items")
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
		return nil
	})
}

func (r *itemRepository) BulkDelete(ctx context.Context, collection string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	db, err := r.conn(ctx)
	if err != nil {
		return err
	}

	return db.inTx(ctx, func(tx *sql.Tx) error {
		for _, chunk := range chunks(ids, deleteChunkSize) {
			query, args, err := buildDeleteItemsQuery(collection, chunk)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				r.logger.Err(err).Str("func", "itemRepository.BulkDelete").Str("collection", collection).Int("count", len(chunk)).Msg("failed to delete items")
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
		return nil
	})
}

// Clear removes every item of collection together with its sync cursor.
func (r *itemRepository) Clear(ctx context.Context, collection string) error {
	itemsQuery, itemsArgs, err := buildClearItemsQuery(collection)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	cursorQuery, cursorArgs, err := buildDeleteKVQuery(CursorKey(collection))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	db, err := r.conn(ctx)
	if err != nil {
		return err
	}

	return db.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, itemsQuery, itemsArgs...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if _, err := tx.ExecContext(ctx, cursorQuery, cursorArgs...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		r.logger.Info().Str("func", "itemRepository.Clear").Str("collection", collection).Msg("collection cleared")
		return nil
	})
}
