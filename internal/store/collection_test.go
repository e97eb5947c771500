package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/ana-muslim-newtab/models"
)

func TestCollection_TypedRoundTrip(t *testing.T) {
	s := openTestStorages(t)
	ctx := context.Background()

	photos, err := NewCollection[models.Photo](s.Items, testCollection, "cached")
	require.NoError(t, err)
	assert.Equal(t, testCollection, photos.Name())

	require.NoError(t, photos.BulkUpsert(ctx,
		models.Photo{ID: "p1", Src: "https://img.test/1.jpg", Colors: []string{}},
		models.Photo{ID: "p2", Src: "https://img.test/2.jpg", Colors: []string{"#000"}},
	))

	got, ok, err := photos.GetItemByID(ctx, "p2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"#000"}, got.Colors)

	first, ok, err := photos.GetItemByIndex(ctx, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "p1", first.ID)

	require.NoError(t, photos.UpdateItem(ctx, "p1", map[string]any{"cached": true}))
	cached, err := photos.GetItems(ctx, ItemsQuery{Limit: NoLimit, Where: map[string]any{"cached": true}})
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "p1", cached[0].ID)

	require.NoError(t, photos.BulkDelete(ctx, "p1"))
	count, err := photos.GetItemsCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, photos.Clear(ctx))
	_, ok, err = photos.GetItemByID(ctx, "p2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCollection_DecodeError(t *testing.T) {
	s := openTestStorages(t)
	ctx := context.Background()

	require.NoError(t, s.Items.BulkUpsert(ctx, testCollection, []ItemRecord{
		{ID: "bad", Payload: []byte(`{"id":"bad","colors":"not-a-list"}`)},
	}))

	photos, err := NewCollection[models.Photo](s.Items, testCollection)
	require.NoError(t, err)

	_, _, err = photos.GetItemByID(ctx, "bad")
	assert.ErrorIs(t, err, ErrDecodingPayload)

	_, err = photos.GetItems(ctx, ItemsQuery{Limit: NoLimit})
	assert.ErrorIs(t, err, ErrDecodingPayload)
}

func TestNewCollection_InvalidNames(t *testing.T) {
	s := openTestStorages(t)

	_, err := NewCollection[models.Photo](s.Items, "bad name;", "cached")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = NewCollection[models.Photo](s.Items, testCollection, "cached') --")
	assert.ErrorIs(t, err, ErrInvalidName)
}
