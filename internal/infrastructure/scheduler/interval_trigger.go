// Package scheduler runs the sync loop on a fixed interval, replacing the
// external cron entry the one-shot binary was historically wired to.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sominastock/ordersync/internal/domain/ordersync"
)

// ErrAlreadyRunning indicates the trigger was started twice
var ErrAlreadyRunning = errors.New("scheduler: interval trigger already running")

// Runner executes one sync pass
type Runner interface {
	Run(ctx context.Context) error
}

// RunnerFunc adapts a function to the Runner interface
type RunnerFunc func(ctx context.Context) error

// Run implements Runner
func (f RunnerFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// IntervalTrigger invokes a runner at a fixed interval. The first pass
// fires immediately on Start; failures are logged and the loop keeps going.
type IntervalTrigger struct {
	interval time.Duration
	runner   Runner
	logger   *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewIntervalTrigger creates a new interval trigger
func NewIntervalTrigger(interval time.Duration, runner Runner, logger *zap.Logger) *IntervalTrigger {
	return &IntervalTrigger{
		interval: interval,
		runner:   runner,
		logger:   logger,
	}
}

// Start launches the trigger loop in a background goroutine
func (t *IntervalTrigger) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.isRunning {
		return ErrAlreadyRunning
	}

	ctx, t.cancel = context.WithCancel(ctx)
	t.isRunning = true

	t.wg.Add(1)
	go t.loop(ctx)

	t.logger.Info("interval trigger started", zap.Duration("interval", t.interval))
	return nil
}

// Stop cancels the loop and waits for an in-flight pass to finish
func (t *IntervalTrigger) Stop() {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return
	}
	t.isRunning = false
	cancel := t.cancel
	t.mu.Unlock()

	cancel()
	t.wg.Wait()
	t.logger.Info("interval trigger stopped")
}

func (t *IntervalTrigger) loop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.runOnce(ctx)
		}
	}
}

func (t *IntervalTrigger) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := t.runner.Run(ctx); err != nil {
		if errors.Is(err, ordersync.ErrRunInProgress) {
			t.logger.Info("sync pass skipped, previous run still holds the lock")
			return
		}
		t.logger.Error("sync pass failed", zap.Error(err))
	}
}
