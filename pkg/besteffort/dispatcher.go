// Package besteffort runs side tasks whose outcome must never reach the caller.
//
// A task handed to Dispatcher.Go runs after the caller has committed its own
// work. Go returns nothing: failures and panics are logged and counted, then
// dropped. Callers that need a result should not use this package.
package besteffort

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
)

type Task func(ctx context.Context) error

// Stats counts finished tasks by outcome, plus tasks refused after Close.
type Stats struct {
	Succeeded uint64
	Failed    uint64
	Panicked  uint64
	Dropped   uint64
}

type Dispatcher struct {
	logger  *log.Logger
	timeout time.Duration

	mu      sync.Mutex
	closed  bool
	pending int
	idle    chan struct{} // closed while pending is zero

	succeeded atomic.Uint64
	failed    atomic.Uint64
	panicked  atomic.Uint64
	dropped   atomic.Uint64
}

// NewDispatcher bounds every task by timeout; zero means no bound.
func NewDispatcher(logger *log.Logger, timeout time.Duration) *Dispatcher {
	idle := make(chan struct{})
	close(idle)
	return &Dispatcher{logger: logger, timeout: timeout, idle: idle}
}

// Go starts task in the background. The task keeps the values of ctx (logger,
// correlation ID, trace span) but not its cancellation, so it survives the
// request that started it. After Close the task is logged and dropped.
func (d *Dispatcher) Go(ctx context.Context, name string, task Task) {
	logger := log.GetLoggerInstanceFromContext(ctx, d.logger).With("task", name)

	if !d.start() {
		d.dropped.Add(1)
		logger.Warn("Dispatcher is closed; dropping best-effort task")
		return
	}

	taskCtx := context.WithoutCancel(ctx)
	go func() {
		defer d.finish()
		d.run(taskCtx, logger, task)
	}()
}

func (d *Dispatcher) start() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return false
	}
	if d.pending == 0 {
		d.idle = make(chan struct{})
	}
	d.pending++
	return true
}

func (d *Dispatcher) finish() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending--
	if d.pending == 0 {
		close(d.idle)
	}
}

func (d *Dispatcher) run(ctx context.Context, logger *log.Logger, task Task) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			d.panicked.Add(1)
			logger.Error("Best-effort task panicked", "panic", fmt.Sprint(r))
		}
	}()

	if err := task(ctx); err != nil {
		d.failed.Add(1)
		logger.Error("Best-effort task failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return
	}

	d.succeeded.Add(1)
	logger.Debug("Best-effort task completed", "duration_ms", time.Since(start).Milliseconds())
}

// Wait blocks until no task is running or ctx is done. Tasks may still be
// started while it waits; use Close to stop intake first.
func (d *Dispatcher) Wait(ctx context.Context) error {
	d.mu.Lock()
	idle := d.idle
	d.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close refuses new tasks and waits for the ones already running.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	return d.Wait(ctx)
}

func (d *Dispatcher) Stats() Stats {
	return Stats{
		Succeeded: d.succeeded.Load(),
		Failed:    d.failed.Load(),
		Panicked:  d.panicked.Load(),
		Dropped:   d.dropped.Load(),
	}
}
