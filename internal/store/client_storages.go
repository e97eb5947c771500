package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
	"github.com/MKhiriev/ana-muslim-newtab/migrations"
)

// ClientStorages groups the repositories of the client local store.
//
// OpenClientStorages returns at once; the database is opened and migrated in
// the background and every repository call waits for it transparently.
type ClientStorages struct {
	Items ItemRepository
	KV    KVRepository

	db *lazyDB
}

// OpenClientStorages starts opening the SQLite store at dsn.
func OpenClientStorages(dsn string, log *logger.Logger) *ClientStorages {
	l := newLazyDB()

	go func() {
		log.Info().Str("func", "OpenClientStorages").Msg("opening local store...")
		ctx := context.Background()

		db, err := NewConnectSQLite(ctx, dsn, log)
		if err != nil {
			l.resolve(nil, fmt.Errorf("sqlite connection error: %w", err))
			return
		}

		if err := migrations.MigrateClient(ctx, db.DB); err != nil {
			_ = db.Close()
			l.resolve(nil, fmt.Errorf("migration failed: %w", err))
			return
		}

		l.resolve(db, nil)
	}()

	return newClientStorages(l, log)
}

// NewClientStoragesFromDB wires the repositories to an already opened and
// migrated database.
func NewClientStoragesFromDB(db *DB, log *logger.Logger) *ClientStorages {
	l := newLazyDB()
	l.resolve(db, nil)
	return newClientStorages(l, log)
}

func newClientStorages(l *lazyDB, log *logger.Logger) *ClientStorages {
	return &ClientStorages{
		Items: newItemRepository(l, log),
		KV:    newKVRepository(l, log),
		db:    l,
	}
}

// Wait blocks until initialization finished and returns its error.
func (s *ClientStorages) Wait(ctx context.Context) error {
	_, err := s.db.get(ctx)
	return err
}

// Close waits for initialization and closes the database. Later calls fail
// with [ErrStoreClosed].
func (s *ClientStorages) Close() error {
	return s.db.close()
}

// lazyDB hands out a database that becomes available asynchronously.
type lazyDB struct {
	ready chan struct{}
	once  sync.Once

	mu     sync.RWMutex
	db     *DB
	err    error
	closed bool
}

func newLazyDB() *lazyDB {
	return &lazyDB{ready: make(chan struct{})}
}

func (l *lazyDB) resolve(db *DB, err error) {
	l.once.Do(func() {
		l.mu.Lock()
		l.db, l.err = db, err
		l.mu.Unlock()
		close(l.ready)
	})
}

func (l *lazyDB) get(ctx context.Context) (*DB, error) {
	select {
	case <-l.ready:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return nil, ErrStoreClosed
	}
	return l.db, l.err
}

func (l *lazyDB) close() error {
	<-l.ready

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || l.db == nil {
		l.closed = true
		return nil
	}
	l.closed = true
	return l.db.Close()
}
