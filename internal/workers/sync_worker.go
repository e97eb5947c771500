package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/ana-muslim-newtab/internal/service"
)

// SyncWorker runs a [service.SyncJob] for the lifetime of Run.
type SyncWorker struct {
	job      service.SyncJob
	interval time.Duration
}

func NewSyncWorker(job service.SyncJob, interval time.Duration) *SyncWorker {
	return &SyncWorker{job: job, interval: interval}
}

func (w *SyncWorker) Run(ctx context.Context) {
	w.job.Start(ctx, w.interval)
	<-ctx.Done()
	w.job.Stop()
}
