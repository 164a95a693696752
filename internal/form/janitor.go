package form

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/card-keeper-bot/internal/logger"
)

// Janitor periodically expires idle form sessions. It implements the
// background worker contract: Run launches the sweep goroutine, Stop cancels
// it and waits for it to exit.
type Janitor struct {
	manager  *Manager
	interval time.Duration
	logger   *logger.Logger

	ctx    context.Context
	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewJanitor creates a Janitor sweeping manager every interval. If interval
// is zero or negative it defaults to one minute. The janitor is idle until
// Run is called and exits when ctx is cancelled or Stop is called.
func NewJanitor(ctx context.Context, manager *Manager, interval time.Duration, log *logger.Logger) *Janitor {
	if interval <= 0 {
		interval = time.Minute
	}

	return &Janitor{
		manager:  manager,
		interval: interval,
		logger:   log,
		ctx:      ctx,
	}
}

// Run starts the background sweep goroutine. Calling Run on an already
// running janitor restarts it.
func (j *Janitor) Run() {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(j.ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case now := <-t.C:
				if expired := j.manager.ExpireIdle(now); expired > 0 {
					j.logger.Info().
						Str("func", "Janitor.Run").
						Int("expired", expired).
						Msg("expired idle form sessions")
				}
			}
		}
	}()
}

// Stop cancels the sweep goroutine and blocks until it has fully exited.
// Safe to call when the janitor is not running.
func (j *Janitor) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
