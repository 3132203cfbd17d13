package model

import (
	"findjob-backend/internal/apperror"
	"fmt"
	"strings"
	"time"
)

// JobStatus is the lifecycle state of a job posting.
type JobStatus string

// Job posting statuses. Transitions are employer initiated only.
const (
	JobStatusDraft     JobStatus = "draft"
	JobStatusActive    JobStatus = "active"
	JobStatusClosed    JobStatus = "closed"
	JobStatusCompleted JobStatus = "completed"
)

var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusDraft:     {JobStatusActive},
	JobStatusActive:    {JobStatusClosed, JobStatusCompleted},
	JobStatusClosed:    {JobStatusCompleted},
	JobStatusCompleted: {},
}

// Valid reports whether s is a known status.
func (s JobStatus) Valid() bool {
	_, ok := jobTransitions[s]
	return ok
}

// CanTransitionTo reports whether a posting in status s may move to next.
// Staying in the same status is always allowed.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	if s == next {
		return s.Valid()
	}
	for _, allowed := range jobTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// EditableJobInfo is part of job posting that owner can write
type EditableJobInfo struct {
	Title       string       `gorm:"type:text;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Skills      string       `gorm:"type:text" json:"skills"`
	Salary      string       `gorm:"type:text;not null" json:"salary"`
	TimeWork    string       `gorm:"type:text" json:"time_work"`
	Location    string       `gorm:"type:text;not null" json:"location"`
	Coordinates *Coordinates `gorm:"type:jsonb" json:"coordinates"`
	WorkHours   int          `gorm:"not null;check:work_hours > 0" json:"work_hours"`
	CategoryID  uint         `gorm:"not null;index" json:"category_id"`
}

// Validate checks posting fields before they are written.
func (e *EditableJobInfo) Validate() error {
	ve := &apperror.ValidationError{}
	if strings.TrimSpace(e.Title) == "" {
		ve.Add("title", "must not be empty")
	}
	if e.WorkHours <= 0 {
		ve.Add("work_hours", "must be greater than 0")
	}
	if strings.TrimSpace(e.Salary) == "" {
		ve.Add("salary", "must not be empty")
	}
	if strings.TrimSpace(e.Location) == "" {
		ve.Add("location", "must not be empty")
	}
	if e.CategoryID == 0 {
		ve.Add("category_id", "is required")
	}
	if e.Coordinates != nil {
		if err := e.Coordinates.Validate("coordinates"); err != nil {
			cv, _ := apperror.AsValidation(err)
			ve.Fields = append(ve.Fields, cv.Fields...)
		}
	}
	return ve.OrNil()
}

// Job is a posting owned by exactly one employer.
type Job struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployerID uint      `gorm:"not null;index;<-:create" json:"employer_id"`
	Employer   *Employer `gorm:"foreignKey:EmployerID;constraint:OnDelete:CASCADE" json:"employer,omitempty"`
	EditableJobInfo
	Category  *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
	Status    JobStatus `gorm:"type:text;not null;default:'draft';index" json:"status"`
	CreatedAt time.Time `json:"created_at"`

	Applications  []Application  `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
	WorkSchedules []WorkSchedule `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
}

// SetStatus move job to next status or return ValidationError.
func (j *Job) SetStatus(next JobStatus) error {
	if !next.Valid() {
		return apperror.Invalid("status", fmt.Sprintf("unknown status %q", next))
	}
	if !j.Status.CanTransitionTo(next) {
		return apperror.Invalid("status", fmt.Sprintf("cannot change status from %s to %s", j.Status, next))
	}
	j.Status = next
	return nil
}

// AcceptsApplications reports whether candidates may currently apply.
func (j *Job) AcceptsApplications() bool {
	return j.Status == JobStatusActive
}

// IsPublic reports whether posting is visible to non-owners.
func (j *Job) IsPublic() bool {
	return j.Status != JobStatusDraft
}
