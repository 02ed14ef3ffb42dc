package stats_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nextelligentia/leadops/internal/domain"
	"github.com/nextelligentia/leadops/internal/metrics"
	"github.com/nextelligentia/leadops/internal/stats"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeSource struct {
	calls atomic.Int32
	stats func(ctx context.Context) (*domain.DashboardStats, error)
}

func (f *fakeSource) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	f.calls.Add(1)
	return f.stats(ctx)
}

func TestRefresh_SetsGauges(t *testing.T) {
	src := &fakeSource{stats: func(context.Context) (*domain.DashboardStats, error) {
		return &domain.DashboardStats{TotalLeads: 12, NewLeads: 5, TotalJobs: 3, ActiveJobs: 2, TotalPortfolioItems: 8, TotalContacts: 1}, nil
	}}
	r, err := stats.NewRefresher(src, "@every 1m", discard)
	if err != nil {
		t.Fatal(err)
	}

	if err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]float64{"leads": 12, "leads_new": 5, "jobs": 3, "jobs_active": 2, "portfolio_items": 8, "contacts": 1}
	for label, v := range want {
		if got := testutil.ToFloat64(metrics.Entities.WithLabelValues(label)); got != v {
			t.Errorf("%s = %v, want %v", label, got, v)
		}
	}
}

func TestRefresh_PropagatesError(t *testing.T) {
	src := &fakeSource{stats: func(context.Context) (*domain.DashboardStats, error) {
		return nil, errors.New("db down")
	}}
	r, err := stats.NewRefresher(src, "*/5 * * * *", discard)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewRefresher_InvalidSpec(t *testing.T) {
	if _, err := stats.NewRefresher(&fakeSource{}, "every minute", discard); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestStart_RefreshesImmediatelyAndStopsOnCancel(t *testing.T) {
	src := &fakeSource{stats: func(context.Context) (*domain.DashboardStats, error) {
		return &domain.DashboardStats{}, nil
	}}
	r, err := stats.NewRefresher(src, "@every 1h", discard)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Start(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for src.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("no initial refresh")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
