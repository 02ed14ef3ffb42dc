package notify_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nextelligentia/leadops/internal/metrics"
	"github.com/nextelligentia/leadops/internal/notify"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func wait(t *testing.T, s *notify.Spawned) error {
	t.Helper()
	select {
	case <-s.Done():
		return s.Err()
	case <-time.After(2 * time.Second):
		t.Fatal("task did not finish")
		return nil
	}
}

func TestDispatch_RunsTaskInBackground(t *testing.T) {
	d := notify.NewDispatcher(slog.Default(), 2, 10, time.Second)
	d.Start()
	defer d.Shutdown(context.Background())

	var ran atomic.Bool
	s := d.Dispatch(context.Background(), notify.Task{Kind: "test_ok", Run: func(context.Context) error {
		ran.Store(true)
		return nil
	}})

	if err := wait(t, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran.Load() {
		t.Error("task did not run")
	}
}

func TestDispatch_FailureIsReportedOnHandleOnly(t *testing.T) {
	d := notify.NewDispatcher(slog.Default(), 1, 10, time.Second)
	d.Start()
	defer d.Shutdown(context.Background())

	before := testutil.ToFloat64(metrics.NotificationsTotal.WithLabelValues("test_fail", "failed"))
	sendErr := errors.New("smtp down")
	s := d.Dispatch(context.Background(), notify.Task{Kind: "test_fail", Run: func(context.Context) error {
		return sendErr
	}})

	if err := wait(t, s); !errors.Is(err, sendErr) {
		t.Fatalf("want sendErr, got %v", err)
	}
	after := testutil.ToFloat64(metrics.NotificationsTotal.WithLabelValues("test_fail", "failed"))
	if after-before != 1 {
		t.Errorf("failed counter delta = %v, want 1", after-before)
	}
}

func TestDispatch_OutlivesCallerContext(t *testing.T) {
	d := notify.NewDispatcher(slog.Default(), 1, 10, time.Second)
	d.Start()
	defer d.Shutdown(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	s := d.Dispatch(ctx, notify.Task{Kind: "test_detached", Run: func(taskCtx context.Context) error {
		<-release
		return taskCtx.Err()
	}})
	cancel()
	close(release)

	if err := wait(t, s); err != nil {
		t.Fatalf("task saw caller cancellation: %v", err)
	}
}

func TestDispatch_TimeoutAppliesToTask(t *testing.T) {
	d := notify.NewDispatcher(slog.Default(), 1, 10, 20*time.Millisecond)
	d.Start()
	defer d.Shutdown(context.Background())

	s := d.Dispatch(context.Background(), notify.Task{Kind: "test_timeout", Run: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}})

	if err := wait(t, s); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want DeadlineExceeded, got %v", err)
	}
}

func TestDispatch_QueueFull_DropsWithoutBlocking(t *testing.T) {
	// not started: nothing drains the queue
	d := notify.NewDispatcher(slog.Default(), 1, 1, time.Second)

	noop := notify.Task{Kind: "test_full", Run: func(context.Context) error { return nil }}
	first := d.Dispatch(context.Background(), noop)
	second := d.Dispatch(context.Background(), noop)

	if err := wait(t, second); !errors.Is(err, notify.ErrQueueFull) {
		t.Fatalf("want ErrQueueFull, got %v", err)
	}

	d.Start()
	if err := wait(t, first); err != nil {
		t.Fatalf("queued task failed: %v", err)
	}
	_ = d.Shutdown(context.Background())
}

func TestShutdown_DrainsQueueThenRejects(t *testing.T) {
	d := notify.NewDispatcher(slog.Default(), 1, 10, time.Second)

	var count atomic.Int32
	task := notify.Task{Kind: "test_drain", Run: func(context.Context) error {
		count.Add(1)
		return nil
	}}
	for i := 0; i < 5; i++ {
		d.Dispatch(context.Background(), task)
	}
	d.Start()

	if err := d.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if got := count.Load(); got != 5 {
		t.Errorf("ran %d tasks, want 5", got)
	}

	late := d.Dispatch(context.Background(), task)
	if err := wait(t, late); !errors.Is(err, notify.ErrStopped) {
		t.Errorf("want ErrStopped, got %v", err)
	}
}
