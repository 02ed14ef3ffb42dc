// Package notify runs fire-and-forget side effects (emails, events) on a
// bounded worker pool. Callers get a Spawned handle they are free to drop;
// task failures only reach the log and metrics.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/nextelligentia/leadops/internal/metrics"
)

var (
	ErrQueueFull = errors.New("notification queue full")
	ErrStopped   = errors.New("dispatcher stopped")
)

// Task is one detached unit of work. Kind labels logs and metrics.
type Task struct {
	Kind string
	Run  func(ctx context.Context) error
}

// Spawned is the result of a task nobody is required to wait for.
type Spawned struct {
	done chan struct{}
	err  error
}

func newSpawned() *Spawned {
	return &Spawned{done: make(chan struct{})}
}

func (s *Spawned) finish(err error) {
	s.err = err
	close(s.done)
}

// Done is closed once the task has run or was dropped.
func (s *Spawned) Done() <-chan struct{} { return s.done }

// Err is only meaningful after Done is closed.
func (s *Spawned) Err() error { return s.err }

type queued struct {
	ctx     context.Context
	task    Task
	spawned *Spawned
}

type Dispatcher struct {
	queue   chan queued
	workers int
	timeout time.Duration
	logger  *slog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

func NewDispatcher(logger *slog.Logger, workers, queueSize int, timeout time.Duration) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Dispatcher{
		queue:   make(chan queued, queueSize),
		workers: workers,
		timeout: timeout,
		logger:  logger.With("component", "notify"),
	}
}

func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for q := range d.queue {
				d.run(q)
			}
		}()
	}
	d.logger.Info("dispatcher started", "workers", d.workers, "queue_size", cap(d.queue))
}

// Dispatch enqueues task without blocking. The task context keeps ctx values
// (request id) but not its cancellation, so it outlives the request.
func (d *Dispatcher) Dispatch(ctx context.Context, task Task) *Spawned {
	s := newSpawned()
	q := queued{ctx: context.WithoutCancel(ctx), task: task, spawned: s}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.drop(q, ErrStopped)
		return s
	}
	select {
	case d.queue <- q:
	default:
		d.drop(q, ErrQueueFull)
	}
	return s
}

func (d *Dispatcher) drop(q queued, reason error) {
	metrics.NotificationsTotal.WithLabelValues(q.task.Kind, "dropped").Inc()
	d.logger.WarnContext(q.ctx, "notification dropped", "kind", q.task.Kind, "reason", reason)
	q.spawned.finish(reason)
}

// run does not recover panics: a crashing side effect takes the process down.
func (d *Dispatcher) run(q queued) {
	metrics.NotificationsInFlight.Inc()
	defer metrics.NotificationsInFlight.Dec()

	ctx := q.ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	start := time.Now()
	err := q.task.Run(ctx)
	metrics.NotificationDuration.WithLabelValues(q.task.Kind).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.NotificationsTotal.WithLabelValues(q.task.Kind, "failed").Inc()
		d.logger.ErrorContext(q.ctx, "notification failed", "kind", q.task.Kind, "error", err)
	} else {
		metrics.NotificationsTotal.WithLabelValues(q.task.Kind, "sent").Inc()
		d.logger.InfoContext(q.ctx, "notification sent", "kind", q.task.Kind, "duration", time.Since(start))
	}
	q.spawned.finish(err)
}

// Shutdown stops accepting tasks and waits for queued ones to finish or ctx
// to expire.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("dispatcher shut down")
		return nil
	case <-ctx.Done():
		d.logger.Warn("dispatcher shutdown timed out", "pending", len(d.queue))
		return ctx.Err()
	}
}
