package state

import (
	"context"
	"fmt"
	"net/url"

	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
	"github.com/MKhiriev/ana-muslim-newtab/models"
)

// ContentState is the displayed devotional text.
type ContentState struct {
	Content *models.Content
}

// Contents is the content state holder.
type Contents struct {
	*Store[ContentState]

	content ItemSource[models.Content]
	logger  *logger.Logger
}

func NewContents(content ItemSource[models.Content], log *logger.Logger) *Contents {
	return &Contents{
		Store:   NewStore(ContentState{}),
		content: content,
		logger:  log,
	}
}

func (c *Contents) SyncContent(force bool, params url.Values) Action[ContentState] {
	return func(ctx context.Context) ([]Patch[ContentState], error) {
		return nil, c.content.Sync(ctx, force, params)
	}
}

// LoadContent displays the item with the given id, or a random one when id
// is empty. A missing item clears the display.
func (c *Contents) LoadContent(id string) Action[ContentState] {
	return func(ctx context.Context) ([]Patch[ContentState], error) {
		var (
			item models.Content
			ok   bool
			err  error
		)
		if id != "" {
			item, ok, err = c.content.GetItemByID(ctx, id)
		} else {
			item, ok, err = c.content.GetRandomItem(ctx)
		}
		if err != nil {
			return nil, fmt.Errorf("load content: %w", err)
		}

		var next *models.Content
		if ok {
			next = &item
		}
		return []Patch[ContentState]{Replace(ContentState{Content: next})}, nil
	}
}

// UpdateContent sets a dot path of the displayed item in memory only.
func (c *Contents) UpdateContent(path string, value any) Action[ContentState] {
	return func(ctx context.Context) ([]Patch[ContentState], error) {
		return []Patch[ContentState]{Compute(func(prev ContentState) ContentState {
			updated, err := setPath(prev.Content, path, value)
			if err != nil {
				c.logger.Warn().Err(err).Str("func", "Contents.UpdateContent").Str("path", path).Msg("content not updated")
				return prev
			}
			return ContentState{Content: updated}
		})}, nil
	}
}
