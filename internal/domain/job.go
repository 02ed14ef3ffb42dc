package domain

import (
	"errors"
	"time"
)

var ErrJobNotFound = errors.New("job not found")

type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
)

func (s JobStatus) Valid() bool {
	return s == JobStatusActive || s == JobStatusClosed
}

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full-time"
	EmploymentPartTime   EmploymentType = "part-time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
)

// Job is a careers-page posting.
type Job struct {
	ID             string
	Title          string
	Department     string
	Location       string
	EmploymentType EmploymentType
	Description    string
	Requirements   []string
	Status         JobStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
