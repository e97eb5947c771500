// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
	"github.com/MKhiriev/ana-muslim-newtab/internal/mock"
)

// spySyncer counts Sync calls and can block inside Sync until released.
type spySyncer struct {
	id      string
	calls   atomic.Int64
	err     error
	block   chan struct{}
	entered chan struct{}
}

func (s *spySyncer) Identifier() string                { return s.id }
func (s *spySyncer) ShouldSync(_ context.Context) bool { return true }

func (s *spySyncer) Sync(ctx context.Context, _ bool, _ url.Values) error {
	s.calls.Add(1)
	if s.entered != nil {
		select {
		case s.entered <- struct{}{}:
		default:
		}
	}
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.err
}

func TestSyncJob_Start_SyncsImmediately(t *testing.T) {
	photos := &spySyncer{id: "photos"}
	content := &spySyncer{id: "content"}
	job := NewSyncJob(logger.Nop(), photos, content)

	job.Start(context.Background(), time.Hour)
	require.Eventually(t, func() bool {
		return photos.calls.Load() == 1 && content.calls.Load() == 1
	}, time.Second, 5*time.Millisecond)
	job.Stop()
}

func TestSyncJob_Start_CallsSyncOnTicker(t *testing.T) {
	spy := &spySyncer{id: "photos"}
	job := NewSyncJob(logger.Nop(), spy)

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "sync called %d times", got)
}

func TestSyncJob_Stop_StopsGoroutines(t *testing.T) {
	spy := &spySyncer{id: "photos"}
	job := NewSyncJob(logger.Nop(), spy)

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, callsAfterStop, spy.calls.Load())
}

func TestSyncJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	job := NewSyncJob(logger.Nop(), &spySyncer{id: "photos"})

	assert.NotPanics(t, func() { job.Stop() })
}

func TestSyncJob_DoubleStop_NoPanic(t *testing.T) {
	job := NewSyncJob(logger.Nop(), &spySyncer{id: "photos"})

	job.Start(context.Background(), 10*time.Millisecond)
	job.Stop()

	assert.NotPanics(t, func() { job.Stop() })
}

func TestSyncJob_NonPositiveInterval_UsesDefault(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		spy := &spySyncer{id: "photos"}
		job := NewSyncJob(logger.Nop(), spy)

		job.Start(context.Background(), interval)
		time.Sleep(30 * time.Millisecond)
		job.Stop()

		// only the immediate round ran
		assert.Equal(t, int64(1), spy.calls.Load())
	}
}

func TestSyncJob_SlowCollectionDoesNotBlockOthers(t *testing.T) {
	slow := &spySyncer{id: "photos", block: make(chan struct{}), entered: make(chan struct{}, 1)}
	fast := &spySyncer{id: "content"}
	job := NewSyncJob(logger.Nop(), slow, fast)

	job.Start(context.Background(), 10*time.Millisecond)
	<-slow.entered
	require.Eventually(t, func() bool { return fast.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	// Stop cancels the blocked sync as well
	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop hung on a blocked sync")
	}
}

func TestSyncJob_ContextCancel_StopsJob(t *testing.T) {
	spy := &spySyncer{id: "photos"}
	job := NewSyncJob(logger.Nop(), spy)
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop hung after context cancel")
	}
}

func TestSyncJob_SyncError_DoesNotStopJob(t *testing.T) {
	spy := &spySyncer{id: "photos", err: context.Canceled}
	job := NewSyncJob(logger.Nop(), spy)

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	assert.GreaterOrEqual(t, spy.calls.Load(), int64(3))
}

func TestSyncJob_Restart_KeepsSyncing(t *testing.T) {
	spy := &spySyncer{id: "photos"}
	job := NewSyncJob(logger.Nop(), spy)

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	before := spy.calls.Load()

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	assert.Greater(t, spy.calls.Load(), before)
}

func TestSyncJob_RoundUsesCursorGatedSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	syncer := mock.NewMockSyncer(ctrl)

	synced := make(chan struct{})
	syncer.EXPECT().Sync(gomock.Any(), false, url.Values(nil)).
		DoAndReturn(func(context.Context, bool, url.Values) error {
			close(synced)
			return nil
		})

	job := NewSyncJob(logger.Nop(), syncer)
	job.Start(context.Background(), time.Hour)
	<-synced
	job.Stop()
}

func TestSyncJob_ConcurrentStartLeavesOneRunningJob(t *testing.T) {
	spy := &spySyncer{id: "photos"}
	job := NewSyncJob(logger.Nop(), spy)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			job.Start(context.Background(), 5*time.Millisecond)
		}()
	}
	wg.Wait()
	job.Stop()

	// every job started above was cancelled, none keeps ticking
	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, callsAfterStop, spy.calls.Load())
}

func TestSyncJob_InFlightErrorKeepsJobTicking(t *testing.T) {
	spy := &spySyncer{id: "photos", err: ErrSyncInFlight}
	job := NewSyncJob(logger.Nop(), spy)

	job.Start(context.Background(), 5*time.Millisecond)
	require.Eventually(t, func() bool { return spy.calls.Load() >= 2 }, time.Second, time.Millisecond)
	job.Stop()
}
