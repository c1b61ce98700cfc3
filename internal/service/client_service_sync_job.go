package service

import (
	"context"
	"sync"
	"time"

	"github.com/savichev/memodeck/internal/adapter"
	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/internal/store"
)

type clientSyncJob struct {
	orchestrator SyncOrchestrator
	push         ClientPushService
	queue        store.MutationQueueRepository
	connectivity adapter.Connectivity
	logger       *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob creates a clientSyncJob that runs a sync cycle on a ticker
// and on every reconnect event. The job is idle until Start is called.
func NewClientSyncJob(
	orchestrator SyncOrchestrator,
	push ClientPushService,
	queue store.MutationQueueRepository,
	connectivity adapter.Connectivity,
	logger *logger.Logger,
) ClientSyncJob {
	return &clientSyncJob{
		orchestrator: orchestrator,
		push:         push,
		queue:        queue,
		connectivity: connectivity,
		logger:       logger,
	}
}

// Start implements ClientSyncJob. It stops any previously running job, then
// launches a background goroutine that calls SyncNow every interval and
// whenever connectivity flips back online. If interval is zero or negative it
// defaults to 30 seconds. The goroutine exits when ctx is cancelled or Stop
// is called.
func (j *clientSyncJob) Start(ctx context.Context, userID int64, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				_, _ = j.orchestrator.SyncNow(jobCtx, userID)
			case online := <-j.connectivity.Events():
				if online {
					_, _ = j.orchestrator.SyncNow(jobCtx, userID)
				}
			}
		}
	}()
}

// Stop implements ClientSyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is not
// running (no-op in that case).
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// Flush implements ClientSyncJob. It makes one time-bounded push attempt when
// the queue still holds mutations at shutdown. Failures are logged only; the
// queue is durable and the next start picks the items up again.
func (j *clientSyncJob) Flush(ctx context.Context, userID int64, timeout time.Duration) {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	flushCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	queued, err := j.queue.Len(flushCtx)
	if err != nil {
		j.logger.Err(err).Str("func", "*clientSyncJob.Flush").Msg("queue length check failed")
		return
	}
	if queued == 0 || !j.connectivity.IsOnline() {
		return
	}

	if _, err = j.push.Push(flushCtx, userID); err != nil {
		j.logger.Err(err).Str("func", "*clientSyncJob.Flush").Msg("shutdown flush failed, queued mutations kept")
	}
}
