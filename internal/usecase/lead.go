package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nextelligentia/leadops/internal/domain"
	"github.com/nextelligentia/leadops/internal/email"
	"github.com/nextelligentia/leadops/internal/events"
	"github.com/nextelligentia/leadops/internal/metrics"
	"github.com/nextelligentia/leadops/internal/notify"
	"github.com/nextelligentia/leadops/internal/repository"
)

const (
	TaskLeadNotification = "lead_notification"
	TaskWelcomeEmail     = "welcome_email"
	TaskLeadEvent        = "lead_event"
)

type dispatcher interface {
	Dispatch(ctx context.Context, task notify.Task) *notify.Spawned
}

type LeadUsecase struct {
	repo       repository.LeadRepository
	dispatch   dispatcher
	email      email.Sender
	templates  email.Templates
	publisher  events.Publisher
	recipients []string
	logger     *slog.Logger
}

// NewLeadUsecase wires lead intake. recipients receive the operator
// notification; an empty list skips it.
func NewLeadUsecase(
	repo repository.LeadRepository,
	dispatch dispatcher,
	sender email.Sender,
	templates email.Templates,
	publisher events.Publisher,
	recipients []string,
	logger *slog.Logger,
) *LeadUsecase {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &LeadUsecase{
		repo:       repo,
		dispatch:   dispatch,
		email:      sender,
		templates:  templates,
		publisher:  publisher,
		recipients: recipients,
		logger:     logger.With("component", "leads"),
	}
}

// ErrNoLeadRecipients fails the operator notification when nobody is
// configured to receive it.
var ErrNoLeadRecipients = errors.New("no lead notification recipients configured")

type CreateLeadInput struct {
	FirstName      string   `validate:"required"`
	LastName       string   `validate:"required"`
	Email          string   `validate:"required,email"`
	CountryCode    string   `validate:"required"`
	Phone          string   `validate:"required"`
	Budget         string   `validate:"required"`
	Company        *string  `validate:"omitempty"`
	Region         string   `validate:"required"`
	Services       []string `validate:"required,min=1,dive,required"`
	ProjectDetails string   `validate:"required"`
}

var leadMessages = fieldMessages{
	"firstName":      "Please provide your first name",
	"lastName":       "Please provide your last name",
	"email":          "Please provide your email",
	"email.email":    "Please provide a valid email address",
	"countryCode":    "Please provide country code",
	"phone":          "Please provide your phone number",
	"budget":         "Please provide your budget",
	"region":         "Please provide your region",
	"services":       "Please select at least one service",
	"services.min":   "At least one service must be selected",
	"services[]":     "Services must not be blank",
	"projectDetails": "Please provide project details",
}

// CreatedLead is a stored lead plus the side effects it started. The
// notifications run detached; nobody has to wait on them.
type CreatedLead struct {
	Lead          *domain.Lead
	Notifications []*notify.Spawned
}

// CreateLead validates and stores a lead, then starts the operator
// notification, the welcome email and the lead event in the background.
// Their outcome never changes the result.
func (u *LeadUsecase) CreateLead(ctx context.Context, input CreateLeadInput) (*CreatedLead, error) {
	input = normalizeLead(input)
	if err := validateInput(input, leadMessages); err != nil {
		return nil, err
	}

	lead, err := u.repo.Create(ctx, &domain.Lead{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		CountryCode:    input.CountryCode,
		Phone:          input.Phone,
		Budget:         input.Budget,
		Company:        input.Company,
		Region:         input.Region,
		Services:       input.Services,
		ProjectDetails: input.ProjectDetails,
		Status:         domain.LeadStatusNew,
	})
	if err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}
	metrics.LeadsCreatedTotal.Inc()
	u.logger.InfoContext(ctx, "lead created", "lead_id", lead.ID)

	spawned := []*notify.Spawned{
		u.dispatch.Dispatch(ctx, notify.Task{Kind: TaskLeadNotification, Run: u.notifyOperators(lead)}),
		u.dispatch.Dispatch(ctx, notify.Task{Kind: TaskWelcomeEmail, Run: u.welcome(lead)}),
		u.dispatch.Dispatch(ctx, notify.Task{Kind: TaskLeadEvent, Run: u.publishCreated(lead)}),
	}
	return &CreatedLead{Lead: lead, Notifications: spawned}, nil
}

func (u *LeadUsecase) ListLeads(ctx context.Context) ([]*domain.Lead, error) {
	leads, err := u.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}

func (u *LeadUsecase) UpdateLeadStatus(ctx context.Context, id string, status domain.LeadStatus) (*domain.Lead, error) {
	if !status.Valid() {
		return nil, domain.NewValidationError("status", "Invalid status value")
	}
	lead, err := u.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, domain.ErrLeadNotFound) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, fmt.Errorf("update lead status: %w", err)
	}
	return lead, nil
}

func (u *LeadUsecase) notifyOperators(lead *domain.Lead) func(context.Context) error {
	return func(ctx context.Context) error {
		if len(u.recipients) == 0 {
			return ErrNoLeadRecipients
		}
		var errs []error
		for _, to := range u.recipients {
			msg, err := u.templates.LeadNotification(to, lead)
			if err != nil {
				return err
			}
			if err := u.email.Send(ctx, msg); err != nil {
				errs = append(errs, fmt.Errorf("notify %s: %w", to, err))
			}
		}
		return errors.Join(errs...)
	}
}

func (u *LeadUsecase) welcome(lead *domain.Lead) func(context.Context) error {
	return func(ctx context.Context) error {
		msg, err := u.templates.Welcome(lead)
		if err != nil {
			return err
		}
		return u.email.Send(ctx, msg)
	}
}

func (u *LeadUsecase) publishCreated(lead *domain.Lead) func(context.Context) error {
	return func(ctx context.Context) error {
		return u.publisher.Publish(ctx, events.SubjectLeadCreated, events.LeadCreated{
			ID:        lead.ID,
			FirstName: lead.FirstName,
			LastName:  lead.LastName,
			Email:     lead.Email,
			Company:   lead.Company,
			Region:    lead.Region,
			Budget:    lead.Budget,
			Services:  lead.Services,
			CreatedAt: lead.CreatedAt,
		})
	}
}

func normalizeLead(in CreateLeadInput) CreateLeadInput {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.CountryCode = strings.TrimSpace(in.CountryCode)
	if in.CountryCode == "" {
		in.CountryCode = domain.DefaultCountryCode
	}
	in.Phone = strings.TrimSpace(in.Phone)
	in.Budget = strings.TrimSpace(in.Budget)
	in.Company = optional(in.Company)
	in.Region = strings.TrimSpace(in.Region)
	in.Services = trimAll(in.Services)
	in.ProjectDetails = strings.TrimSpace(in.ProjectDetails)
	return in
}
