package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
)

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// DB wraps *sql.DB with the driver specific error classifier and logger.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB wraps an already opened connection. It is used by tests and by
// callers that manage the connection themselves.
func NewDB(conn *sql.DB, classifier ErrorClassificator, log *logger.Logger) *DB {
	if classifier == nil {
		classifier = nonRetryableClassifier{}
	}
	return &DB{DB: conn, errorClassificator: classifier, logger: log}
}

// inTx runs fn inside a transaction, committing on success.
func (db *DB) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			db.logger.Err(rbErr).Str("func", "DB.inTx").Msg("rollback failed")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// withRetry calls fn up to attempts times while the classifier reports the
// error as retryable.
func (db *DB) withRetry(ctx context.Context, attempts int, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if db.errorClassificator.Classify(err) != Retryable || ctx.Err() != nil {
			return err
		}
		db.logger.Warn().Err(err).Str("func", "DB.withRetry").Int("attempt", i+1).Msg("retrying database call")
	}
	return err
}

type nonRetryableClassifier struct{}

func (nonRetryableClassifier) Classify(error) ErrorClassification { return NonRetryable }
