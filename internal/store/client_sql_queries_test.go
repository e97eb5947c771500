package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/ana-muslim-newtab/models"
)

func TestBuildGetItemsQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    ItemsQuery
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "unbounded",
			query:    ItemsQuery{Limit: NoLimit},
			wantSQL:  "SELECT payload FROM items WHERE collection = ? ORDER BY seq LIMIT 9223372036854775807",
			wantArgs: []any{"photos"},
		},
		{
			name:     "window",
			query:    ItemsQuery{Offset: 10, Limit: 5},
			wantSQL:  "SELECT payload FROM items WHERE collection = ? ORDER BY seq LIMIT 5 OFFSET 10",
			wantArgs: []any{"photos"},
		},
		{
			name:     "where indexed field",
			query:    ItemsQuery{Limit: NoLimit, Where: map[string]any{"cached": true}},
			wantSQL:  "SELECT payload FROM items WHERE collection = ? AND json_extract(payload, '$.cached') = ? ORDER BY seq LIMIT 9223372036854775807",
			wantArgs: []any{"photos", true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildGetItemsQuery("photos", tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuildUpsertItemsQuery(t *testing.T) {
	query, args, err := buildUpsertItemsQuery("photos", []ItemRecord{
		{ID: "p1", Payload: []byte(`{"id":"p1"}`)},
		{ID: "p2", Payload: []byte(`{"id":"p2"}`)},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "INSERT INTO items (collection,id,payload) VALUES (?,?,?),(?,?,?)"))
	assert.Contains(t, query, "ON CONFLICT(collection, id) DO UPDATE SET payload = excluded.payload")
	assert.Equal(t, []any{"photos", "p1", `{"id":"p1"}`, "photos", "p2", `{"id":"p2"}`}, args)
}

func TestBuildUpdateItemQuery(t *testing.T) {
	query, args, err := buildUpdateItemQuery("photos", "p1", []byte(`{"cached":true}`))
	require.NoError(t, err)
	assert.Equal(t, "UPDATE items SET payload = json_patch(payload, ?) WHERE collection = ? AND id = ?", query)
	assert.Equal(t, []any{`{"cached":true}`, "photos", "p1"}, args)
}

func TestBuildDeleteItemsQuery(t *testing.T) {
	query, args, err := buildDeleteItemsQuery("photos", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM items WHERE collection = ? AND id IN (?,?)", query)
	assert.Equal(t, []any{"photos", "a", "b"}, args)
}

func TestCreateIndexQuery(t *testing.T) {
	assert.Equal(t,
		"CREATE INDEX IF NOT EXISTS idx_items_author_url ON items (collection, json_extract(payload, '$.author.url'))",
		createIndexQuery("author.url"))
}

func TestBuildCatalogPageQuery(t *testing.T) {
	query, args, err := buildCatalogPageQuery(CatalogPhotos, models.SyncQuery{MinVersion: 3, Page: 2, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, active, version, payload FROM photos WHERE version >= $1 ORDER BY version, id LIMIT 50 OFFSET 100", query)
	assert.Equal(t, []any{int64(3)}, args)
}

func TestChunks(t *testing.T) {
	assert.Empty(t, chunks([]int{}, 3))
	assert.Equal(t, [][]int{{1, 2, 3}, {4, 5, 6}, {7}}, chunks([]int{1, 2, 3, 4, 5, 6, 7}, 3))
	assert.Equal(t, [][]int{{1, 2}}, chunks([]int{1, 2}, 3))
}
