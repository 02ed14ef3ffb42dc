package domain

import (
	"errors"
	"time"
)

var ErrLeadNotFound = errors.New("lead not found")

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusLost      LeadStatus = "lost"
)

// Valid reports whether s is one of the known lead statuses. Any valid status
// may follow any other.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusLost:
		return true
	}
	return false
}

const DefaultCountryCode = "+92"

type Lead struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string
	CountryCode    string
	Phone          string
	Budget         string
	Company        *string // nil when not provided
	Region         string
	Services       []string
	ProjectDetails string
	Status         LeadStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (l *Lead) FullName() string {
	return l.FirstName + " " + l.LastName
}
