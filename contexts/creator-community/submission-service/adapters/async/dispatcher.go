package async

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const defaultTaskTimeout = 30 * time.Second

// Dispatcher runs tasks on detached goroutines. Tasks get a fresh context
// with their own deadline, so a caller returning (or its request being
// cancelled) never cancels the dispatched work.
type Dispatcher struct {
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

func NewDispatcher(timeout time.Duration, logger *slog.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultTaskTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		timeout: timeout,
		logger:  logger,
	}
}

func (d *Dispatcher) Dispatch(name string, task func(ctx context.Context)) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if recovered := recover(); recovered != nil {
				d.logger.Error("background task panicked",
					"event", "dispatcher_task_panic",
					"module", "creator-community/submission-service",
					"layer", "adapter",
					"task", name,
					"panic", recovered,
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		task(ctx)
	}()
}

// Wait blocks until all dispatched tasks have finished. Used by shutdown
// paths and tests; production callers never wait on the request path.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// SyncDispatcher runs tasks inline. Test wiring only.
type SyncDispatcher struct {
	Timeout time.Duration
}

func (s SyncDispatcher) Dispatch(_ string, task func(ctx context.Context)) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultTaskTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	task(ctx)
}
