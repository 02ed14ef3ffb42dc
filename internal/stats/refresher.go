// Package stats periodically copies dashboard counts into Prometheus gauges.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nextelligentia/leadops/internal/domain"
	"github.com/nextelligentia/leadops/internal/metrics"
	"github.com/robfig/cron/v3"
)

type source interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
}

type Refresher struct {
	source   source
	schedule cron.Schedule
	logger   *slog.Logger
}

// NewRefresher accepts a standard 5-field cron spec or a descriptor such as "@every 1m".
func NewRefresher(src source, spec string, logger *slog.Logger) (*Refresher, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse stats schedule %q: %w", spec, err)
	}
	return &Refresher{
		source:   src,
		schedule: sched,
		logger:   logger.With("component", "stats"),
	}, nil
}

// Start refreshes once, then on every schedule tick until ctx is done.
func (r *Refresher) Start(ctx context.Context) {
	r.logger.Info("stats refresher started")
	r.refresh(ctx)

	for {
		timer := time.NewTimer(time.Until(r.schedule.Next(time.Now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			r.logger.Info("stats refresher shut down")
			return
		case <-timer.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	if err := r.Refresh(ctx); err != nil && ctx.Err() == nil {
		r.logger.Error("refresh stats", "error", err)
	}
}

func (r *Refresher) Refresh(ctx context.Context) error {
	s, err := r.source.Stats(ctx)
	if err != nil {
		return err
	}
	metrics.Entities.WithLabelValues("leads").Set(float64(s.TotalLeads))
	metrics.Entities.WithLabelValues("leads_new").Set(float64(s.NewLeads))
	metrics.Entities.WithLabelValues("jobs").Set(float64(s.TotalJobs))
	metrics.Entities.WithLabelValues("jobs_active").Set(float64(s.ActiveJobs))
	metrics.Entities.WithLabelValues("portfolio_items").Set(float64(s.TotalPortfolioItems))
	metrics.Entities.WithLabelValues("contacts").Set(float64(s.TotalContacts))
	return nil
}
