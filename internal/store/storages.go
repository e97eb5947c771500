package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
	"github.com/MKhiriev/ana-muslim-newtab/migrations"
)

// Storages groups the repositories of the reference sync server.
type Storages struct {
	CatalogRepository CatalogRepository

	db *DB
}

// NewStorages connects to PostgreSQL, applies migrations and wires the
// repositories.
func NewStorages(ctx context.Context, dsn string, log *logger.Logger) (*Storages, error) {
	log.Info().Str("func", "NewStorages").Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, dsn, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := migrations.MigrateServer(ctx, db.DB); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		CatalogRepository: NewCatalogRepository(db, log),
		db:                db,
	}, nil
}

// Close closes the database connection pool.
func (s *Storages) Close() error {
	return s.db.Close()
}
