package model

import (
	"findjob-backend/internal/apperror"
	"fmt"
	"time"
)

// ApplicationStatus is the lifecycle state of an application.
type ApplicationStatus string

// Application statuses. Approved and rejected are terminal.
const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// IsTerminal reports whether no further transition is possible.
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusApproved || s == ApplicationStatusRejected
}

// Application is a candidate's request to be considered for a job posting.
type Application struct {
	ID          uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID       uint              `gorm:"not null;uniqueIndex:idx_application_job_candidate;<-:create" json:"job_id"`
	Job         *Job              `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"job,omitempty"`
	CandidateID uint              `gorm:"not null;uniqueIndex:idx_application_job_candidate;index;<-:create" json:"candidate_id"`
	Candidate   *Candidate        `gorm:"foreignKey:CandidateID;constraint:OnDelete:CASCADE" json:"candidate,omitempty"`
	CVLink      string            `gorm:"type:text" json:"cv_link"`
	Status      ApplicationStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	AppliedDate time.Time         `gorm:"autoCreateTime;<-:create" json:"applied_date"`
}

// Decide moves a pending application to a terminal status. Repeating the
// current terminal status is a no-op reported by changed == false; moving
// between two different terminal statuses fails.
func (a *Application) Decide(next ApplicationStatus) (changed bool, err error) {
	if !next.IsTerminal() {
		return false, apperror.Invalid("status", fmt.Sprintf("cannot decide application as %q", next))
	}
	if a.Status == next {
		return false, nil
	}
	if a.Status != ApplicationStatusPending {
		return false, apperror.Invalid("status", fmt.Sprintf("application is already %s", a.Status))
	}
	a.Status = next
	return true, nil
}
