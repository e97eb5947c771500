package state

import (
	"context"
	"encoding/json"
	"net/url"
	"slices"
	"sync"

	"github.com/MKhiriev/ana-muslim-newtab/internal/store"
	"github.com/MKhiriev/ana-muslim-newtab/models"
)

// memorySource is an in-memory ItemSource with a scripted random index.
type memorySource[T models.Item] struct {
	mu        sync.Mutex
	items     []T
	randomIdx int
	syncCalls int
	err       error
}

func (m *memorySource[T]) Sync(context.Context, bool, url.Values) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncCalls++
	return m.err
}

func (m *memorySource[T]) GetItemByID(_ context.Context, id string) (T, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	if m.err != nil {
		return zero, false, m.err
	}
	for _, item := range m.items {
		if item.ItemID() == id {
			return item, true, nil
		}
	}
	return zero, false, nil
}

func (m *memorySource[T]) GetItems(_ context.Context, q store.ItemsQuery) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []T
	for _, item := range m.items {
		if matches(item, q.Where) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memorySource[T]) GetRandomItem(context.Context) (T, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	if m.err != nil {
		return zero, false, m.err
	}
	if len(m.items) == 0 {
		return zero, false, nil
	}
	return m.items[m.randomIdx], true, nil
}

func (m *memorySource[T]) UpdateItem(_ context.Context, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, item := range m.items {
		if item.ItemID() != id {
			continue
		}
		var doc map[string]any
		raw, _ := json.Marshal(item)
		_ = json.Unmarshal(raw, &doc)
		for k, v := range fields {
			doc[k] = v
		}
		raw, _ = json.Marshal(doc)
		var updated T
		_ = json.Unmarshal(raw, &updated)
		m.items[i] = updated
	}
	return nil
}

func matches[T any](item T, where map[string]any) bool {
	var doc map[string]any
	raw, _ := json.Marshal(item)
	_ = json.Unmarshal(raw, &doc)
	for k, v := range where {
		if doc[k] != v {
			return false
		}
	}
	return true
}

type memoryFavorites struct {
	mu     sync.Mutex
	photos []string
	err    error
}

func (f *memoryFavorites) Get(context.Context) models.FavoritePhotos {
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.FavoritePhotos{Photos: slices.Clone(f.photos)}
}

func (f *memoryFavorites) Set(_ context.Context, path string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if path == "photos" {
		f.photos = slices.Clone(value.([]string))
	}
	return nil
}
