package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
	"github.com/MKhiriev/ana-muslim-newtab/internal/store"
)

// PreferenceBucket is a JSON blob stored under one key, read with its
// declared defaults deep-merged in and written through dot paths.
//
// A bucket without a KV backend never fails: reads return the defaults and
// writes are dropped.
type PreferenceBucket[T any] struct {
	key      string
	defaults []byte
	kv       store.KVRepository

	mu     sync.Mutex
	logger *logger.Logger
}

// NewPreferenceBucket returns the bucket stored under key. kv may be nil.
func NewPreferenceBucket[T any](kv store.KVRepository, key string, defaults T, log *logger.Logger) (*PreferenceBucket[T], error) {
	if key == "" {
		return nil, ErrEmptyBucketKey
	}
	raw, err := json.Marshal(defaults)
	if err != nil {
		return nil, fmt.Errorf("%w: defaults of %s: %w", ErrInvalidPrefValue, key, err)
	}
	return &PreferenceBucket[T]{key: key, defaults: raw, kv: kv, logger: log}, nil
}

func (b *PreferenceBucket[T]) Key() string {
	return b.key
}

// Get returns the whole defaulted blob.
func (b *PreferenceBucket[T]) Get(ctx context.Context) T {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out T
	if err := json.Unmarshal(b.load(ctx), &out); err != nil {
		b.logger.Warn().Err(err).
			Str("func", "PreferenceBucket.Get").
			Str("bucket", b.key).
			Msg("stored preferences do not fit their shape, using defaults")
		out = b.decodeDefaults()
	}
	return out
}

// GetPath decodes the value at the dot path into out. It reports false when
// the path is absent or its value does not fit out.
func (b *PreferenceBucket[T]) GetPath(ctx context.Context, path string, out any) bool {
	raw, ok := b.Raw(ctx, path)
	if !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

// Raw returns the JSON at the dot path, or the whole defaulted blob when
// path is empty.
func (b *PreferenceBucket[T]) Raw(ctx context.Context, path string) (json.RawMessage, bool) {
	b.mu.Lock()
	blob := b.load(ctx)
	b.mu.Unlock()

	if path == "" {
		return append(json.RawMessage(nil), blob...), true
	}
	res := gjson.GetBytes(blob, path)
	if !res.Exists() {
		return nil, false
	}
	return json.RawMessage(res.Raw), true
}

// Set writes value at the dot path, leaving sibling keys untouched. An empty
// path replaces the whole blob.
func (b *PreferenceBucket[T]) Set(ctx context.Context, path string, value any) error {
	if b.kv == nil {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var (
		updated []byte
		err     error
	)
	if path == "" {
		updated, err = json.Marshal(value)
	} else {
		updated, err = sjson.SetBytes(b.load(ctx), path, value)
	}
	if err != nil {
		return fmt.Errorf("%w: %s.%s: %w", ErrInvalidPrefValue, b.key, path, err)
	}

	if err = b.kv.Set(ctx, b.key, updated); err != nil {
		return fmt.Errorf("save preferences %s: %w", b.key, err)
	}
	return nil
}

// Clear deletes the stored blob; the next read rebuilds the defaults.
func (b *PreferenceBucket[T]) Clear(ctx context.Context) error {
	if b.kv == nil {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.kv.Delete(ctx, b.key); err != nil {
		return fmt.Errorf("clear preferences %s: %w", b.key, err)
	}
	return nil
}

// load returns the stored blob merged over the defaults. Missing, unreadable
// or corrupt blobs yield the defaults.
func (b *PreferenceBucket[T]) load(ctx context.Context) []byte {
	if b.kv == nil {
		return b.defaults
	}

	stored, ok, err := b.kv.Get(ctx, b.key)
	if err != nil {
		b.logger.Warn().Err(err).
			Str("func", "PreferenceBucket.load").
			Str("bucket", b.key).
			Msg("cannot read preferences, using defaults")
		return b.defaults
	}
	if !ok {
		return b.defaults
	}
	if !gjson.ValidBytes(stored) {
		b.logger.Warn().
			Str("func", "PreferenceBucket.load").
			Str("bucket", b.key).
			Msg("corrupt preferences, using defaults")
		return b.defaults
	}

	defaults := gjson.ParseBytes(b.defaults)
	current := gjson.ParseBytes(stored)
	if !defaults.IsObject() || !current.IsObject() {
		return stored
	}

	merged, err := applyDefaults(stored, "", defaults)
	if err != nil {
		b.logger.Warn().Err(err).
			Str("func", "PreferenceBucket.load").
			Str("bucket", b.key).
			Msg("cannot merge defaults")
		return b.defaults
	}
	return merged
}

func (b *PreferenceBucket[T]) decodeDefaults() T {
	var out T
	_ = json.Unmarshal(b.defaults, &out)
	return out
}

// applyDefaults copies every key of defaults missing from doc at prefix,
// descending into objects present on both sides.
func applyDefaults(doc []byte, prefix string, defaults gjson.Result) ([]byte, error) {
	var err error
	defaults.ForEach(func(key, value gjson.Result) bool {
		path := escapePathKey(key.String())
		if prefix != "" {
			path = prefix + "." + path
		}

		current := gjson.GetBytes(doc, path)
		switch {
		case !current.Exists():
			doc, err = sjson.SetRawBytes(doc, path, []byte(value.Raw))
		case current.IsObject() && value.IsObject():
			doc, err = applyDefaults(doc, path, value)
		}
		return err == nil
	})
	return doc, err
}

var pathEscaper = strings.NewReplacer(`\`, `\\`, ".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`, "@", `\@`)

func escapePathKey(key string) string {
	return pathEscaper.Replace(key)
}
