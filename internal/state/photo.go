package state

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/url"
	"slices"

	"github.com/tidwall/sjson"

	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
	"github.com/MKhiriev/ana-muslim-newtab/internal/service"
	"github.com/MKhiriev/ana-muslim-newtab/internal/store"
	"github.com/MKhiriev/ana-muslim-newtab/models"
)

const favoritesPath = "photos"

// PhotoState is the displayed background photo and the favorite ids.
type PhotoState struct {
	Photo          *models.Photo
	FavoritePhotos []string
}

// IsFavorite reports whether the displayed photo is a favorite.
func (s PhotoState) IsFavorite() bool {
	return s.Photo != nil && slices.Contains(s.FavoritePhotos, s.Photo.ID)
}

// Photos is the photo state holder.
type Photos struct {
	*Store[PhotoState]

	photos    ItemSource[models.Photo]
	favorites FavoritesBucket
	cacher    service.AssetCacher

	intN   func(n int) int
	logger *logger.Logger
}

// NewPhotos loads the favorites from their bucket and returns the holder.
func NewPhotos(ctx context.Context, photos ItemSource[models.Photo], favorites FavoritesBucket, cacher service.AssetCacher, log *logger.Logger) *Photos {
	initial := PhotoState{FavoritePhotos: slices.Clone(favorites.Get(ctx).Photos)}
	if initial.FavoritePhotos == nil {
		initial.FavoritePhotos = []string{}
	}

	return &Photos{
		Store:     NewStore(initial),
		photos:    photos,
		favorites: favorites,
		cacher:    cacher,
		intN:      rand.IntN,
		logger:    log,
	}
}

// SyncPhotos syncs the photo collection. It changes no state.
func (p *Photos) SyncPhotos(force bool, params url.Values) Action[PhotoState] {
	return func(ctx context.Context) ([]Patch[PhotoState], error) {
		return nil, p.photos.Sync(ctx, force, params)
	}
}

// LoadPhoto displays the photo with the given id, or picks one when id is
// empty.
//
// Picking prefers photos already cached. The random photo drawn on every
// pick is marked cached and handed to the asset cache, so the pool of
// cached photos grows one photo per new tab.
func (p *Photos) LoadPhoto(id string) Action[PhotoState] {
	return func(ctx context.Context) ([]Patch[PhotoState], error) {
		if id != "" {
			photo, ok, err := p.photos.GetItemByID(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("load photo %s: %w", id, err)
			}
			return []Patch[PhotoState]{setPhoto(photoOrNil(photo, ok))}, nil
		}

		cached, err := p.photos.GetItems(ctx, store.ItemsQuery{Limit: store.NoLimit, Where: map[string]any{"cached": true}})
		if err != nil {
			return nil, fmt.Errorf("load cached photos: %w", err)
		}

		random, ok, err := p.photos.GetRandomItem(ctx)
		if err != nil {
			return nil, fmt.Errorf("load random photo: %w", err)
		}
		if ok && !random.Cached {
			p.cache(ctx, random)
		}

		if len(cached) > 0 {
			return []Patch[PhotoState]{setPhoto(&cached[p.intN(len(cached))])}, nil
		}
		return []Patch[PhotoState]{setPhoto(photoOrNil(random, ok))}, nil
	}
}

func (p *Photos) cache(ctx context.Context, photo models.Photo) {
	if err := p.photos.UpdateItem(ctx, photo.ID, map[string]any{"cached": true}); err != nil {
		p.logger.Warn().Err(err).
			Str("func", "Photos.cache").
			Str("photo", photo.ID).
			Msg("cannot mark photo as cached")
		return
	}
	if p.cacher == nil || photo.Src == "" {
		return
	}
	if !p.cacher.Post(models.AssetMessage{Type: models.CachePhotoMessage, URL: photo.Src}) {
		p.logger.Debug().
			Str("func", "Photos.cache").
			Str("photo", photo.ID).
			Msg("asset cache busy, directive dropped")
	}
}

// AddToFavoritePhotos adds id, or the displayed photo when id is empty, to
// the favorites. Without either nothing is written.
func (p *Photos) AddToFavoritePhotos(id string) Action[PhotoState] {
	return func(ctx context.Context) ([]Patch[PhotoState], error) {
		id = p.resolveID(id)
		if id == "" {
			return nil, nil
		}

		stored := p.favorites.Get(ctx).Photos
		if !slices.Contains(stored, id) {
			if err := p.favorites.Set(ctx, favoritesPath, append(slices.Clone(stored), id)); err != nil {
				return nil, fmt.Errorf("add favorite %s: %w", id, err)
			}
		}

		return []Patch[PhotoState]{Compute(func(prev PhotoState) PhotoState {
			if !slices.Contains(prev.FavoritePhotos, id) {
				prev.FavoritePhotos = append(slices.Clone(prev.FavoritePhotos), id)
			}
			return prev
		})}, nil
	}
}

// RemoveFromFavoritePhotos is the inverse of AddToFavoritePhotos.
func (p *Photos) RemoveFromFavoritePhotos(id string) Action[PhotoState] {
	return func(ctx context.Context) ([]Patch[PhotoState], error) {
		id = p.resolveID(id)
		if id == "" {
			return nil, nil
		}

		remaining := slices.DeleteFunc(slices.Clone(p.favorites.Get(ctx).Photos), func(v string) bool { return v == id })
		if err := p.favorites.Set(ctx, favoritesPath, remaining); err != nil {
			return nil, fmt.Errorf("remove favorite %s: %w", id, err)
		}

		return []Patch[PhotoState]{Compute(func(prev PhotoState) PhotoState {
			prev.FavoritePhotos = slices.DeleteFunc(slices.Clone(prev.FavoritePhotos), func(v string) bool { return v == id })
			return prev
		})}, nil
	}
}

// UpdatePhoto sets a dot path of the displayed photo in memory only.
func (p *Photos) UpdatePhoto(path string, value any) Action[PhotoState] {
	return func(ctx context.Context) ([]Patch[PhotoState], error) {
		return []Patch[PhotoState]{Compute(func(prev PhotoState) PhotoState {
			updated, err := setPath(prev.Photo, path, value)
			if err != nil {
				p.logger.Warn().Err(err).Str("func", "Photos.UpdatePhoto").Str("path", path).Msg("photo not updated")
				return prev
			}
			prev.Photo = updated
			return prev
		})}, nil
	}
}

func (p *Photos) resolveID(id string) string {
	if id != "" {
		return id
	}
	if photo := p.State().Photo; photo != nil {
		return photo.ID
	}
	return ""
}

func setPhoto(photo *models.Photo) Patch[PhotoState] {
	return Compute(func(prev PhotoState) PhotoState {
		prev.Photo = photo
		return prev
	})
}

func photoOrNil(photo models.Photo, ok bool) *models.Photo {
	if !ok {
		return nil
	}
	return &photo
}

// setPath returns a copy of item with value written at the dot path. A nil
// item is returned unchanged.
func setPath[T any](item *T, path string, value any) (*T, error) {
	if item == nil {
		return nil, nil
	}
	raw, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}
	if raw, err = sjson.SetBytes(raw, path, value); err != nil {
		return nil, err
	}
	var updated T
	if err = json.Unmarshal(raw, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
