package usecase

import (
	"context"
	"fmt"

	"github.com/nextelligentia/leadops/internal/domain"
	"github.com/nextelligentia/leadops/internal/repository"
	"golang.org/x/sync/errgroup"
)

type DashboardUsecase struct {
	leads     repository.LeadRepository
	jobs      repository.JobRepository
	portfolio repository.PortfolioRepository
	contacts  repository.ContactRepository
}

func NewDashboardUsecase(
	leads repository.LeadRepository,
	jobs repository.JobRepository,
	portfolio repository.PortfolioRepository,
	contacts repository.ContactRepository,
) *DashboardUsecase {
	return &DashboardUsecase{leads: leads, jobs: jobs, portfolio: portfolio, contacts: contacts}
}

// Stats runs every count concurrently and fails if any of them does.
func (u *DashboardUsecase) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	var s domain.DashboardStats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		s.TotalLeads, err = u.leads.Count(ctx, "")
		return wrapCount("leads", err)
	})
	g.Go(func() (err error) {
		s.NewLeads, err = u.leads.Count(ctx, domain.LeadStatusNew)
		return wrapCount("new leads", err)
	})
	g.Go(func() (err error) {
		s.TotalJobs, err = u.jobs.Count(ctx, "")
		return wrapCount("jobs", err)
	})
	g.Go(func() (err error) {
		s.ActiveJobs, err = u.jobs.Count(ctx, domain.JobStatusActive)
		return wrapCount("active jobs", err)
	})
	g.Go(func() (err error) {
		s.TotalPortfolioItems, err = u.portfolio.Count(ctx)
		return wrapCount("portfolio items", err)
	})
	g.Go(func() (err error) {
		s.TotalContacts, err = u.contacts.Count(ctx)
		return wrapCount("contacts", err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}

func wrapCount(what string, err error) error {
	if err != nil {
		return fmt.Errorf("count %s: %w", what, err)
	}
	return nil
}
