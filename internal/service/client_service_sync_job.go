package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
)

// DefaultSyncJobInterval applies when Start is given a non-positive interval.
const DefaultSyncJobInterval = time.Minute

type syncJob struct {
	syncers []Syncer
	logger  *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a SyncJob over syncers. The job is idle until Start is
// called.
func NewSyncJob(log *logger.Logger, syncers ...Syncer) SyncJob {
	return &syncJob{syncers: syncers, logger: log}
}

// Start implements SyncJob. Each collection syncs on its own goroutine, so a
// slow feed never delays another one; a round that finds a collection still
// syncing skips it. A running job is stopped first; concurrent Start and
// Stop calls are serialized.
func (j *syncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSyncJobInterval
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.stopLocked()

	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		j.round(jobCtx)
		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.round(jobCtx)
			}
		}
	}()
}

func (j *syncJob) round(ctx context.Context) {
	for _, s := range j.syncers {
		j.wg.Add(1)
		go func(s Syncer) {
			defer j.wg.Done()
			if err := s.Sync(ctx, false, nil); err != nil && !errors.Is(err, ErrSyncInFlight) {
				j.logger.Debug().Err(err).
					Str("func", "syncJob.round").
					Str("collection", s.Identifier()).
					Msg("sync interrupted")
			}
		}(s)
	}
}

// Stop implements SyncJob. Safe to call when the job is not running.
func (j *syncJob) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.stopLocked()
}

// stopLocked cancels the running job and waits for its goroutines. j.mu must
// be held; the job goroutines never take it.
func (j *syncJob) stopLocked() {
	if j.cancel != nil {
		j.cancel()
		j.cancel = nil
	}
	j.wg.Wait()
}
