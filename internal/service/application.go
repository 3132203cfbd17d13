package service

import (
	"context"
	"fmt"
	"strings"

	"findjob-backend/internal/apperror"
	"findjob-backend/internal/metrics"
	"findjob-backend/internal/model"
	"findjob-backend/internal/notify"
	"findjob-backend/internal/policy"
	"findjob-backend/internal/validation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ApplicationService runs the application lifecycle.
type ApplicationService struct{ Deps }

// ApplyInput is the body of POST /apply.
type ApplyInput struct {
	JobID  uint   `json:"job_id" validate:"required"`
	CVLink string `json:"cv_link" validate:"omitempty,cvlink"`
}

var applicationUniqueFields = map[string]string{
	"idx_application_job_candidate": "job_id",
}

// Create submits the caller's application to an active posting.
// A candidate may apply to the same posting only once.
func (s *ApplicationService) Create(ctx context.Context, caller *model.User, in ApplyInput) (model.Application, error) {
	if err := requireUser(caller); err != nil {
		return model.Application{}, err
	}
	candidateID, ok := caller.CandidateID()
	if !ok {
		return model.Application{}, apperror.ErrForbidden
	}
	if err := validation.Struct(&in); err != nil {
		return model.Application{}, err
	}

	var app model.Application
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job model.Job
		if err := tx.First(&job, in.JobID).Error; err != nil {
			return notFound(err)
		}
		if !job.IsPublic() {
			return apperror.ErrNotFound
		}
		if !job.AcceptsApplications() {
			return apperror.Invalid("job_id", fmt.Sprintf("job is %s and does not accept applications", job.Status))
		}

		dup, err := exists(tx, &model.Application{}, "job_id = ? AND candidate_id = ?", job.ID, candidateID)
		if err != nil {
			return err
		}
		if dup {
			return apperror.Invalid("job_id", "already applied to this job")
		}

		cvLink := strings.TrimSpace(in.CVLink)
		if cvLink == "" && caller.Candidate != nil {
			cvLink = caller.Candidate.CVLink
		}
		app = model.Application{
			JobID:       job.ID,
			CandidateID: candidateID,
			CVLink:      cvLink,
			Status:      model.ApplicationStatusPending,
		}
		return tx.Omit(clause.Associations).Create(&app).Error
	})
	if err != nil {
		return model.Application{}, uniqueViolation(err, applicationUniqueFields, "job_id")
	}
	metrics.ApplicationsTotal.WithLabelValues(string(app.Status)).Inc()
	return app, nil
}

// Approve accepts a pending application.
func (s *ApplicationService) Approve(ctx context.Context, caller *model.User, id uint) (model.Application, error) {
	return s.decide(ctx, caller, id, model.ApplicationStatusApproved)
}

// Reject declines a pending application.
func (s *ApplicationService) Reject(ctx context.Context, caller *model.User, id uint) (model.Application, error) {
	return s.decide(ctx, caller, id, model.ApplicationStatusRejected)
}

// decide applies a terminal status. The candidate is notified once per real
// transition; repeating the current status changes nothing.
func (s *ApplicationService) decide(ctx context.Context, caller *model.User, id uint, next model.ApplicationStatus) (model.Application, error) {
	if err := requireUser(caller); err != nil {
		return model.Application{}, err
	}
	// Only employers and admins decide; hiding applications as not found
	// applies to employers who don't own the posting.
	if !caller.IsAdmin() && !isEmployer(caller) {
		return model.Application{}, apperror.ErrForbidden
	}

	var app model.Application
	var changed bool
	err := s.transact(ctx, func(tx *gorm.DB, out *notify.Outbox) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Job").
			Preload("Candidate.User").
			First(&app, id).Error; err != nil {
			return notFound(err)
		}
		if !s.Authz.Allow(caller, policy.ActionRead, &app) {
			return apperror.ErrNotFound
		}
		if err := s.Authz.Authorize(caller, policy.ActionDecide, &app); err != nil {
			return err
		}

		var err error
		changed, err = app.Decide(next)
		if err != nil || !changed {
			return err
		}
		if err := tx.Model(&model.Application{}).Where("id = ?", app.ID).Update("status", app.Status).Error; err != nil {
			return err
		}

		if app.Candidate == nil || app.Candidate.User == nil {
			return nil
		}
		title := ""
		if app.Job != nil {
			title = app.Job.Title
		}
		return out.Notify(tx, app.Candidate.User, notify.Message{
			Subject: "Job Application Update",
			Body:    fmt.Sprintf("Your application for %q has been %s.", title, app.Status),
			Email:   true,
		})
	})
	if err != nil {
		return model.Application{}, err
	}
	if changed {
		metrics.ApplicationsTotal.WithLabelValues(string(app.Status)).Inc()
	}
	return app, nil
}

// List return the applications the caller may see: their own as a candidate,
// those to their postings as an employer, all as an administrator.
func (s *ApplicationService) List(ctx context.Context, caller *model.User) ([]model.Application, error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}
	apps := []model.Application{}
	q := scopedApplications(s.DB.WithContext(ctx).Model(&model.Application{}), caller)
	if err := q.Preload("Job").Order("applications.applied_date DESC").Order("applications.id DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Get return one application within the caller's scope. Out-of-scope
// applications are reported as not found.
func (s *ApplicationService) Get(ctx context.Context, caller *model.User, id uint) (model.Application, error) {
	if err := requireUser(caller); err != nil {
		return model.Application{}, err
	}
	var app model.Application
	q := scopedApplications(s.DB.WithContext(ctx).Model(&model.Application{}), caller)
	if err := q.Preload("Job").Where("applications.id = ?", id).First(&app).Error; err != nil {
		return model.Application{}, notFound(err)
	}
	return app, nil
}

// ListByJob return the applications to one posting for its owner or an administrator.
func (s *ApplicationService) ListByJob(ctx context.Context, caller *model.User, jobID uint) ([]model.Application, error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}
	var job model.Job
	if err := s.DB.WithContext(ctx).First(&job, jobID).Error; err != nil {
		return nil, notFound(err)
	}
	if err := s.Authz.Authorize(caller, policy.ActionRead, &job); err != nil {
		return nil, err
	}
	apps := []model.Application{}
	if err := s.DB.WithContext(ctx).
		Preload("Candidate").
		Where("job_id = ?", job.ID).
		Order("applied_date ASC").Order("id ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func scopedApplications(q *gorm.DB, caller *model.User) *gorm.DB {
	if caller.IsAdmin() {
		return q
	}
	if id, ok := caller.CandidateID(); ok {
		return q.Where("applications.candidate_id = ?", id)
	}
	if id, ok := caller.EmployerID(); ok {
		return q.Where("applications.job_id IN (?)",
			q.Session(&gorm.Session{NewDB: true}).Model(&model.Job{}).Select("id").Where("employer_id = ?", id))
	}
	return q.Where("1 = 0")
}
