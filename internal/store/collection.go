package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/ana-muslim-newtab/models"
)

// Collection is a typed view of one collection of an [ItemRepository].
type Collection[T models.Item] struct {
	name string
	repo ItemRepository
}

// NewCollection declares indexedFields on repo and returns the typed view.
func NewCollection[T models.Item](repo ItemRepository, name string, indexedFields ...string) (*Collection[T], error) {
	if err := repo.DeclareIndexes(name, indexedFields...); err != nil {
		return nil, err
	}
	return &Collection[T]{name: name, repo: repo}, nil
}

// Name returns the collection identifier.
func (c *Collection[T]) Name() string {
	return c.name
}

func (c *Collection[T]) GetItemByID(ctx context.Context, id string) (T, bool, error) {
	raw, ok, err := c.repo.GetItemByID(ctx, c.name, id)
	if err != nil || !ok {
		var zero T
		return zero, false, err
	}
	return decodeItem[T](raw)
}

// GetItemByIndex returns the item at a zero-based insertion position.
func (c *Collection[T]) GetItemByIndex(ctx context.Context, index int) (T, bool, error) {
	raw, ok, err := c.repo.GetItemByIndex(ctx, c.name, index)
	if err != nil || !ok {
		var zero T
		return zero, false, err
	}
	return decodeItem[T](raw)
}

func (c *Collection[T]) GetItems(ctx context.Context, q ItemsQuery) ([]T, error) {
	raws, err := c.repo.GetItems(ctx, c.name, q)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, len(raws))
	for _, raw := range raws {
		item, _, err := decodeItem[T](raw)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *Collection[T]) GetItemsCount(ctx context.Context) (int, error) {
	return c.repo.GetItemsCount(ctx, c.name)
}

func (c *Collection[T]) UpdateItem(ctx context.Context, id string, fields map[string]any) error {
	return c.repo.UpdateItem(ctx, c.name, id, fields)
}

func (c *Collection[T]) BulkUpsert(ctx context.Context, items ...T) error {
	records := make([]ItemRecord, 0, len(items))
	for _, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("%w: item %s: %w", ErrEncodingPayload, item.ItemID(), err)
		}
		records = append(records, ItemRecord{ID: item.ItemID(), Payload: raw})
	}
	return c.repo.BulkUpsert(ctx, c.name, records)
}

func (c *Collection[T]) BulkDelete(ctx context.Context, ids ...string) error {
	return c.repo.BulkDelete(ctx, c.name, ids)
}

// Clear empties the collection and drops its sync cursor.
func (c *Collection[T]) Clear(ctx context.Context) error {
	return c.repo.Clear(ctx, c.name)
}

func decodeItem[T models.Item](raw json.RawMessage) (T, bool, error) {
	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return item, false, fmt.Errorf("%w: %w", ErrDecodingPayload, err)
	}
	return item, true, nil
}
