package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nextelligentia/leadops/internal/domain"
	"github.com/nextelligentia/leadops/internal/usecase"
)

type fakeJobRepo struct {
	create       func(ctx context.Context, job *domain.Job) (*domain.Job, error)
	getByID      func(ctx context.Context, id string) (*domain.Job, error)
	list         func(ctx context.Context, status domain.JobStatus) ([]*domain.Job, error)
	updateStatus func(ctx context.Context, id string, status domain.JobStatus) (*domain.Job, error)
	delete       func(ctx context.Context, id string) error
	count        func(ctx context.Context, status domain.JobStatus) (int64, error)
}

func (r *fakeJobRepo) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	return r.create(ctx, job)
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	return r.getByID(ctx, id)
}

func (r *fakeJobRepo) List(ctx context.Context, status domain.JobStatus) ([]*domain.Job, error) {
	return r.list(ctx, status)
}

func (r *fakeJobRepo) UpdateStatus(ctx context.Context, id string, status domain.JobStatus) (*domain.Job, error) {
	return r.updateStatus(ctx, id, status)
}

func (r *fakeJobRepo) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

func (r *fakeJobRepo) Count(ctx context.Context, status domain.JobStatus) (int64, error) {
	return r.count(ctx, status)
}

type fakePortfolioRepo struct {
	create  func(ctx context.Context, item *domain.PortfolioItem) (*domain.PortfolioItem, error)
	getByID func(ctx context.Context, id string) (*domain.PortfolioItem, error)
	list    func(ctx context.Context) ([]*domain.PortfolioItem, error)
	delete  func(ctx context.Context, id string) error
	count   func(ctx context.Context) (int64, error)
}

func (r *fakePortfolioRepo) Create(ctx context.Context, item *domain.PortfolioItem) (*domain.PortfolioItem, error) {
	return r.create(ctx, item)
}

func (r *fakePortfolioRepo) GetByID(ctx context.Context, id string) (*domain.PortfolioItem, error) {
	return r.getByID(ctx, id)
}

func (r *fakePortfolioRepo) List(ctx context.Context) ([]*domain.PortfolioItem, error) {
	return r.list(ctx)
}

func (r *fakePortfolioRepo) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

func (r *fakePortfolioRepo) Count(ctx context.Context) (int64, error) {
	return r.count(ctx)
}

type fakeContactRepo struct {
	create func(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	list   func(ctx context.Context) ([]*domain.Contact, error)
	count  func(ctx context.Context) (int64, error)
}

func (r *fakeContactRepo) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	return r.create(ctx, c)
}

func (r *fakeContactRepo) List(ctx context.Context) ([]*domain.Contact, error) {
	return r.list(ctx)
}

func (r *fakeContactRepo) Count(ctx context.Context) (int64, error) {
	return r.count(ctx)
}

// ---- jobs ----

func TestCreateJob_DefaultsToActive(t *testing.T) {
	var stored *domain.Job
	repo := &fakeJobRepo{create: func(_ context.Context, job *domain.Job) (*domain.Job, error) {
		stored = job
		out := *job
		out.ID = "job-1"
		return &out, nil
	}}

	job, err := usecase.NewJobUsecase(repo).CreateJob(context.Background(), usecase.CreateJobInput{
		Title:          "  Go Engineer ",
		Department:     "Engineering",
		Location:       "Remote",
		EmploymentType: "full-time",
		Description:    "Build things",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.ID != "job-1" || stored.Status != domain.JobStatusActive {
		t.Errorf("got %+v", stored)
	}
	if stored.Title != "Go Engineer" {
		t.Errorf("title not trimmed: %q", stored.Title)
	}
	if stored.Requirements == nil {
		t.Error("requirements should be an empty list, not nil")
	}
}

func TestCreateJob_RejectsUnknownEmploymentType(t *testing.T) {
	repo := &fakeJobRepo{create: func(context.Context, *domain.Job) (*domain.Job, error) {
		t.Fatal("repository must not be called")
		return nil, nil
	}}

	_, err := usecase.NewJobUsecase(repo).CreateJob(context.Background(), usecase.CreateJobInput{
		Title: "x", Department: "x", Location: "x", EmploymentType: "gig", Description: "x",
	})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["employmentType"]; !ok {
		t.Errorf("expected employmentType error, got %v", verr.Fields)
	}
}

func TestUpdateJobStatus(t *testing.T) {
	repo := &fakeJobRepo{updateStatus: func(_ context.Context, id string, status domain.JobStatus) (*domain.Job, error) {
		if id != "job-1" {
			return nil, domain.ErrJobNotFound
		}
		return &domain.Job{ID: id, Status: status}, nil
	}}
	uc := usecase.NewJobUsecase(repo)

	if job, err := uc.UpdateJobStatus(context.Background(), "job-1", domain.JobStatusClosed); err != nil || job.Status != domain.JobStatusClosed {
		t.Fatalf("got %+v, %v", job, err)
	}
	if _, err := uc.UpdateJobStatus(context.Background(), "nope", domain.JobStatusClosed); !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound, got %v", err)
	}
	var verr *domain.ValidationError
	if _, err := uc.UpdateJobStatus(context.Background(), "job-1", "paused"); !errors.As(err, &verr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestDeleteJob_NotFound(t *testing.T) {
	repo := &fakeJobRepo{delete: func(context.Context, string) error { return domain.ErrJobNotFound }}

	if err := usecase.NewJobUsecase(repo).DeleteJob(context.Background(), "x"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

// ---- portfolio ----

func TestCreatePortfolioItem_ValidatesURLs(t *testing.T) {
	repo := &fakePortfolioRepo{create: func(_ context.Context, item *domain.PortfolioItem) (*domain.PortfolioItem, error) {
		return item, nil
	}}
	uc := usecase.NewPortfolioUsecase(repo)

	bad := "not a url"
	_, err := uc.CreateItem(context.Background(), usecase.CreatePortfolioItemInput{
		Title: "Site", Category: "web", Description: "d", ImageURL: &bad,
	})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Fields["imageURL"] == "" {
		t.Fatalf("expected imageURL validation error, got %v", err)
	}

	blank := " "
	good := "https://example.com"
	item, err := uc.CreateItem(context.Background(), usecase.CreatePortfolioItemInput{
		Title: "Site", Category: "web", Description: "d", ImageURL: &blank, ProjectURL: &good,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ImageURL != nil {
		t.Error("blank image URL should be stored as nil")
	}
	if item.ProjectURL == nil || *item.ProjectURL != good {
		t.Errorf("project URL: %v", item.ProjectURL)
	}
}

func TestGetPortfolioItem_NotFound(t *testing.T) {
	repo := &fakePortfolioRepo{getByID: func(context.Context, string) (*domain.PortfolioItem, error) {
		return nil, domain.ErrPortfolioItemNotFound
	}}

	if _, err := usecase.NewPortfolioUsecase(repo).GetItem(context.Background(), "x"); !errors.Is(err, domain.ErrPortfolioItemNotFound) {
		t.Fatalf("expected ErrPortfolioItemNotFound, got %v", err)
	}
}

// ---- contacts ----

func TestCreateContact(t *testing.T) {
	repo := &fakeContactRepo{create: func(_ context.Context, c *domain.Contact) (*domain.Contact, error) {
		out := *c
		out.ID = "c-1"
		return &out, nil
	}}
	uc := usecase.NewContactUsecase(repo)

	c, err := uc.CreateContact(context.Background(), usecase.CreateContactInput{
		Name: "Ada", Email: " ADA@example.com ", Message: "Hello",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Email != "ada@example.com" || c.Subject != nil {
		t.Errorf("got %+v", c)
	}

	_, err = uc.CreateContact(context.Background(), usecase.CreateContactInput{Name: "Ada", Email: "bad", Message: ""})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Fields["email"] != "Please provide a valid email address" || verr.Fields["message"] != "Please provide a message" {
		t.Errorf("unexpected messages: %v", verr.Fields)
	}
}

// ---- dashboard ----

func TestDashboardStats(t *testing.T) {
	leads := &fakeLeadRepo{count: func(_ context.Context, status domain.LeadStatus) (int64, error) {
		if status == domain.LeadStatusNew {
			return 3, nil
		}
		return 10, nil
	}}
	jobs := &fakeJobRepo{count: func(_ context.Context, status domain.JobStatus) (int64, error) {
		if status == domain.JobStatusActive {
			return 2, nil
		}
		return 5, nil
	}}
	portfolio := &fakePortfolioRepo{count: func(context.Context) (int64, error) { return 7, nil }}
	contacts := &fakeContactRepo{count: func(context.Context) (int64, error) { return 4, nil }}

	got, err := usecase.NewDashboardUsecase(leads, jobs, portfolio, contacts).Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := domain.DashboardStats{TotalLeads: 10, NewLeads: 3, TotalJobs: 5, ActiveJobs: 2, TotalPortfolioItems: 7, TotalContacts: 4}
	if *got != want {
		t.Errorf("got %+v, want %+v", *got, want)
	}
}

func TestDashboardStats_AnyCountFails(t *testing.T) {
	leads := &fakeLeadRepo{count: func(context.Context, domain.LeadStatus) (int64, error) { return 1, nil }}
	jobs := &fakeJobRepo{count: func(context.Context, domain.JobStatus) (int64, error) { return 1, nil }}
	portfolio := &fakePortfolioRepo{count: func(context.Context) (int64, error) { return 0, errors.New("db down") }}
	contacts := &fakeContactRepo{count: func(context.Context) (int64, error) { return 1, nil }}

	if _, err := usecase.NewDashboardUsecase(leads, jobs, portfolio, contacts).Stats(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
