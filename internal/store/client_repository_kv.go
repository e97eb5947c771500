package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
)

type kvRepository struct {
	db     *lazyDB
	logger *logger.Logger
	now    func() time.Time
}

// newKVRepository constructs the SQLite-backed [KVRepository].
func newKVRepository(db *lazyDB, log *logger.Logger) KVRepository {
	return &kvRepository{db: db, logger: log, now: time.Now}
}

func (r *kvRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := buildGetKVQuery(key)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	db, err := r.db.get(ctx)
	if err != nil {
		return nil, false, err
	}

	var value string
	err = db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		r.logger.Err(err).Str("func", "kvRepository.Get").Str("key", key).Msg("failed to read value")
		return nil, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return []byte(value), true, nil
}

func (r *kvRepository) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := buildSetKVQuery(key, value, r.now().Unix())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	db, err := r.db.get(ctx)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "kvRepository.Set").Str("key", key).Msg("failed to write value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *kvRepository) Delete(ctx context.Context, key string) error {
	query, args, err := buildDeleteKVQuery(key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	db, err := r.db.get(ctx)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "kvRepository.Delete").Str("key", key).Msg("failed to delete value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
