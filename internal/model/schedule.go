package model

import (
	"findjob-backend/internal/apperror"
	"time"
)

// WorkScheduleStatus is the state of a work shift.
type WorkScheduleStatus string

// Work schedule statuses.
const (
	WorkScheduleScheduled WorkScheduleStatus = "scheduled"
	WorkScheduleCompleted WorkScheduleStatus = "completed"
	WorkScheduleCancelled WorkScheduleStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s WorkScheduleStatus) Valid() bool {
	switch s {
	case WorkScheduleScheduled, WorkScheduleCompleted, WorkScheduleCancelled:
		return true
	}
	return false
}

// WorkSchedule is a shift attached to a job posting.
type WorkSchedule struct {
	ID        uint               `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID     uint               `gorm:"not null;index;<-:create" json:"job_id"`
	Job       *Job               `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
	StartTime time.Time          `gorm:"not null" json:"start_time"`
	EndTime   time.Time          `gorm:"not null" json:"end_time"`
	Status    WorkScheduleStatus `gorm:"type:text;not null;default:'scheduled'" json:"status"`
}

// Validate checks the time window and status.
func (w *WorkSchedule) Validate() error {
	ve := &apperror.ValidationError{}
	if w.StartTime.IsZero() || w.EndTime.IsZero() {
		ve.Add("start_time", "start_time and end_time are required")
	} else if !w.StartTime.Before(w.EndTime) {
		ve.Add("start_time", "must be before end_time")
	}
	if w.Status != "" && !w.Status.Valid() {
		ve.Add("status", "must be one of scheduled, completed, cancelled")
	}
	return ve.OrNil()
}
