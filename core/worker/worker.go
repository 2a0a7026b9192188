// Package worker runs a Processor on a fixed polling interval until it is shut down.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/toan5ks1/code-challenge/common/errs"
	"github.com/toan5ks1/code-challenge/pkg/logger"
	"github.com/toan5ks1/code-challenge/pkg/logger/slogx"
)

const (
	// DefaultInterval is the polling interval used when none is configured.
	DefaultInterval = 15 * time.Second

	shutdownTimeout = 60 * time.Second
)

// Processor is a unit of periodic work.
type Processor interface {
	Name() string

	// Process runs one round of work. A returned error stops the worker.
	Process(ctx context.Context) error

	// Shutdown releases the resources held by the processor.
	Shutdown(ctx context.Context) error
}

// Worker polls a Processor. It runs one round immediately, then one per interval.
type Worker struct {
	Processor Processor
	Interval  time.Duration

	started  atomic.Bool
	quitOnce sync.Once
	quit     chan struct{}
	done     chan struct{}
}

func New(processor Processor, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Worker{
		Processor: processor,
		Interval:  interval,

		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
}

func (w *Worker) Shutdown() error {
	return w.ShutdownWithContext(context.Background())
}

func (w *Worker) ShutdownWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return w.ShutdownWithContext(ctx)
}

// ShutdownWithContext signals the worker to stop and waits for Run to return.
// A worker that never ran shuts its processor down directly.
// Calling it more than once is a no-op.
func (w *Worker) ShutdownWithContext(ctx context.Context) (err error) {
	w.quitOnce.Do(func() {
		close(w.quit)
		if w.started.CompareAndSwap(false, true) {
			close(w.done)
			err = w.shutdownProcessor(ctx)
			return
		}
		select {
		case <-w.done:
		case <-time.After(shutdownTimeout):
			err = errors.Wrap(errs.Timeout, "worker shutdown timeout")
		case <-ctx.Done():
			err = errors.Wrap(ctx.Err(), "worker shutdown context canceled")
		}
	})
	return
}

// Run polls the processor until the worker is shut down, ctx is done or a
// round fails. The processor is shut down on every exit. A worker runs at most once.
func (w *Worker) Run(ctx context.Context) (err error) {
	if !w.started.CompareAndSwap(false, true) {
		return errors.Wrap(errs.Unsupported, "worker already started or shut down")
	}
	defer close(w.done)

	ctx = logger.WithContext(ctx,
		slog.String("package", "worker"),
		slog.String("processor", w.Processor.Name()),
	)
	defer func() {
		if shutdownErr := w.shutdownProcessor(context.WithoutCancel(ctx)); shutdownErr != nil && err == nil {
			err = shutdownErr
		}
	}()

	if err := w.process(ctx); err != nil {
		return errors.WithStack(err)
	}

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-w.quit:
			logger.InfoContext(ctx, "Got quit signal, stopping worker")
			return nil
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := w.process(ctx); err != nil {
				return errors.WithStack(err)
			}
			logger.DebugContext(ctx, "Waiting for next polling interval")
		}
	}
}

func (w *Worker) shutdownProcessor(ctx context.Context) error {
	if err := w.Processor.Shutdown(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to shutdown processor", slogx.Error(err))
		return errors.Wrap(err, "processor shutdown failed")
	}
	return nil
}

func (w *Worker) process(ctx context.Context) error {
	start := time.Now()
	if err := w.Processor.Process(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		logger.ErrorContext(ctx, "Worker failed while processing", slogx.Error(err))
		return errors.Wrap(err, "process failed")
	}
	logger.DebugContext(ctx, "Processed successfully", slogx.Duration("duration", time.Since(start)))
	return nil
}
