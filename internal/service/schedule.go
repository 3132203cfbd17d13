package service

import (
	"context"
	"time"

	"findjob-backend/internal/apperror"
	"findjob-backend/internal/model"
	"findjob-backend/internal/policy"
	"findjob-backend/internal/validation"

	"gorm.io/gorm"
)

// ScheduleService manages work shifts of postings.
type ScheduleService struct{ Deps }

// ScheduleInput is the body of POST /work-schedules.
type ScheduleInput struct {
	JobID     uint      `json:"job_id" validate:"required"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// ScheduleStatusInput is the body of PATCH /work-schedules/{id}.
type ScheduleStatusInput struct {
	Status model.WorkScheduleStatus `json:"status" validate:"required,oneof=scheduled completed cancelled"`
}

// Create adds a shift to a posting owned by the caller.
func (s *ScheduleService) Create(ctx context.Context, caller *model.User, in ScheduleInput) (model.WorkSchedule, error) {
	if err := requireUser(caller); err != nil {
		return model.WorkSchedule{}, err
	}
	if err := validation.Struct(&in); err != nil {
		return model.WorkSchedule{}, err
	}
	ws := model.WorkSchedule{
		JobID:     in.JobID,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Status:    model.WorkScheduleScheduled,
	}
	if err := ws.Validate(); err != nil {
		return model.WorkSchedule{}, err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job model.Job
		if err := tx.First(&job, in.JobID).Error; err != nil {
			return notFound(err)
		}
		ws.Job = &job
		if err := s.Authz.Authorize(caller, policy.ActionUpdate, &ws); err != nil {
			return err
		}
		return tx.Omit("Job").Create(&ws).Error
	})
	if err != nil {
		return model.WorkSchedule{}, err
	}
	ws.Job = nil
	return ws, nil
}

// List return shifts of one posting, or of every posting the caller owns
// when jobID is zero. Candidates see shifts of postings they were approved for.
func (s *ScheduleService) List(ctx context.Context, caller *model.User, jobID uint) ([]model.WorkSchedule, error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}
	q := s.DB.WithContext(ctx).Model(&model.WorkSchedule{})
	if jobID != 0 {
		q = q.Where("job_id = ?", jobID)
	}
	switch {
	case caller.IsAdmin():
	case isEmployer(caller):
		id, _ := caller.EmployerID()
		q = q.Where("job_id IN (?)", s.DB.WithContext(ctx).Model(&model.Job{}).Select("id").Where("employer_id = ?", id))
	case isCandidate(caller):
		id, _ := caller.CandidateID()
		q = q.Where("job_id IN (?)", s.DB.WithContext(ctx).Model(&model.Application{}).Select("job_id").
			Where("candidate_id = ? AND status = ?", id, model.ApplicationStatusApproved))
	default:
		return nil, apperror.ErrForbidden
	}

	shifts := []model.WorkSchedule{}
	if err := q.Order("start_time ASC").Order("id ASC").Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

// SetStatus changes the status of a shift.
func (s *ScheduleService) SetStatus(ctx context.Context, caller *model.User, id uint, in ScheduleStatusInput) (model.WorkSchedule, error) {
	if err := requireUser(caller); err != nil {
		return model.WorkSchedule{}, err
	}
	if err := validation.Struct(&in); err != nil {
		return model.WorkSchedule{}, err
	}
	var ws model.WorkSchedule
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Job").First(&ws, id).Error; err != nil {
			return notFound(err)
		}
		if err := s.Authz.Authorize(caller, policy.ActionUpdate, &ws); err != nil {
			return err
		}
		ws.Status = in.Status
		return tx.Model(&model.WorkSchedule{}).Where("id = ?", ws.ID).Update("status", ws.Status).Error
	})
	if err != nil {
		return model.WorkSchedule{}, err
	}
	return ws, nil
}

func isEmployer(u *model.User) bool {
	_, ok := u.EmployerID()
	return ok
}

func isCandidate(u *model.User) bool {
	_, ok := u.CandidateID()
	return ok
}
