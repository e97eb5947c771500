package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
	"github.com/MKhiriev/ana-muslim-newtab/models"
)

const catalogRetryAttempts = 3

// catalogRepository is the PostgreSQL-backed [CatalogRepository].
type catalogRepository struct {
	*DB
	logger *logger.Logger
}

// NewCatalogRepository constructs a [CatalogRepository] over db.
func NewCatalogRepository(db *DB, log *logger.Logger) CatalogRepository {
	return &catalogRepository{DB: db, logger: log}
}

// GetSyncPage reads the stats and the requested page in one read-only
// snapshot so the page and its totals agree.
func (c *catalogRepository) GetSyncPage(ctx context.Context, catalog Catalog, q models.SyncQuery) (CatalogPage, error) {
	if !catalog.Valid() {
		return CatalogPage{}, fmt.Errorf("%w: %q", ErrUnknownCatalog, catalog)
	}

	log := logger.FromContext(ctx)

	statsQuery, statsArgs, err := buildCatalogStatsQuery(catalog, q.MinVersion)
	if err != nil {
		return CatalogPage{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	pageQuery, pageArgs, err := buildCatalogPageQuery(catalog, q)
	if err != nil {
		return CatalogPage{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var page CatalogPage
	err = c.withRetry(ctx, catalogRetryAttempts, func() error {
		page = CatalogPage{}
		tx, err := c.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
		}
		defer tx.Rollback() //nolint:errcheck

		var maxVersion sql.NullInt64
		if err := tx.QueryRowContext(ctx, statsQuery, statsArgs...).Scan(&page.Total, &maxVersion); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if maxVersion.Valid {
			page.MaxVersion = &maxVersion.Int64
		}

		rows, err := tx.QueryContext(ctx, pageQuery, pageArgs...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		page.Items = make([]CatalogItem, 0, q.Limit)
		for rows.Next() {
			var (
				item    CatalogItem
				payload []byte
			)
			if err := rows.Scan(&item.ID, &item.Active, &item.Version, &payload); err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRow, err)
			}
			item.Payload = payload
			page.Items = append(page.Items, item)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		return tx.Commit()
	})
	if err != nil {
		log.Err(err).
			Str("func", "catalogRepository.GetSyncPage").
			Str("catalog", string(catalog)).
			Int64("min_version", q.MinVersion).
			Int("page", q.Page).
			Msg("failed to read sync page")
		return CatalogPage{}, err
	}

	return page, nil
}

func (c *catalogRepository) GetMaxVersion(ctx context.Context, catalog Catalog) (int64, error) {
	if !catalog.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCatalog, catalog)
	}

	query, args, err := buildCatalogMaxVersionQuery(catalog)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var version int64
	err = c.withRetry(ctx, catalogRetryAttempts, func() error {
		return c.QueryRowContext(ctx, query, args...).Scan(&version)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "catalogRepository.GetMaxVersion").Str("catalog", string(catalog)).Msg("failed to read max version")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return version, nil
}

// SaveCatalogItems upserts items by id in one transaction.
func (c *catalogRepository) SaveCatalogItems(ctx context.Context, catalog Catalog, items []CatalogItem) error {
	if !catalog.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCatalog, catalog)
	}
	if len(items) == 0 {
		return nil
	}

	return c.inTx(ctx, func(tx *sql.Tx) error {
		for _, chunk := range chunks(items, upsertChunkSize) {
			query, args, err := buildSaveCatalogItemsQuery(catalog, chunk)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				logger.FromContext(ctx).Err(err).
					Str("func", "catalogRepository.SaveCatalogItems").
					Str("catalog", string(catalog)).
					Int("count", len(chunk)).
					Msg("failed to upsert catalog items")
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
		return nil
	})
}
